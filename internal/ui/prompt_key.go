package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// PromptAPIKey prompts for the API key of provider with masked input.
func PromptAPIKey(provider string) (string, error) {
	finalModel, err := tea.NewProgram(newAPIKeyModel(provider)).Run()
	if err != nil {
		return "", fmt.Errorf("run key prompt: %w", err)
	}

	result := finalModel.(apiKeyModel)
	if result.quit {
		return "", fmt.Errorf("api key: %w", ErrSelectionCancelled)
	}
	return strings.TrimSpace(result.value), nil
}

func newAPIKeyModel(provider string) apiKeyModel {
	ti := textinput.New()
	ti.Placeholder = llm.APIKeyEnvVar(provider)
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 256
	ti.Width = 50

	return apiKeyModel{provider: provider, textInput: ti}
}

type apiKeyModel struct {
	provider  string
	textInput textinput.Model
	value     string
	quit      bool
}

func (m apiKeyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m apiKeyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.value = m.textInput.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m apiKeyModel) View() string {
	s := "\n" + StyleSelectTitle.Render(fmt.Sprintf("🔑 %s API key", m.provider)) + "\n"
	s += StyleSelectDim.Render("It will be stored locally in ~/.codecrew/config.yaml") + "\n\n"
	s += m.textInput.View() + "\n\n"
	s += StyleSelectDim.Render("Press Enter to confirm • Esc to cancel") + "\n"
	return s
}
