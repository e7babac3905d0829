package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

// forceColor enables ANSI output for the duration of a test.
func forceColor(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })
}

// plainOutput disables styling so rendered text can be compared directly.
func plainOutput(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestStyles(t *testing.T) {
	forceColor(t)

	out := StyleSuccess.Render("Test")
	assert.Contains(t, out, "Test")
	assert.NotEqual(t, "Test", out, "Style should add ANSI codes when forced")
}

func TestScoreStyle(t *testing.T) {
	forceColor(t)

	assert.Equal(t, StyleScoreHigh.Render("9"), ScoreStyle(9).Render("9"))
	assert.Equal(t, StyleScoreMid.Render("5"), ScoreStyle(5).Render("5"))
	assert.Equal(t, StyleScoreLow.Render("2"), ScoreStyle(2).Render("2"))
}
