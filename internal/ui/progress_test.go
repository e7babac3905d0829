package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/josephgoksu/codecrew/internal/agents/crew"
	"github.com/stretchr/testify/assert"
)

func TestProgressReporter(t *testing.T) {
	plainOutput(t)
	var buf bytes.Buffer
	p := NewProgressReporter(&buf)

	p.Started(strings.Repeat("x", 80))
	p.StepStarted(crew.StepPlan)
	p.StepDone(crew.StepPlan, "Created 3 tasks")
	p.StepStarted(crew.StepReview)
	p.StepDone(crew.StepReview, "Quality score: 8/10")
	p.Stop()

	want := "🤖 Processing: " + strings.Repeat("x", 50) + "...\n" +
		"📋 Planning tasks...\n" +
		"   Created 3 tasks\n" +
		"🔍 Reviewing code...\n" +
		"   Quality score: 8/10\n"
	assert.Equal(t, want, buf.String())
}

func TestProgressReporter_NoSpinnerOffTerminal(t *testing.T) {
	p := NewProgressReporter(&bytes.Buffer{})
	assert.Nil(t, p.spinner)
}
