package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/codecrew/internal/config"
	"github.com/josephgoksu/codecrew/internal/llm"
)

// ErrSelectionCancelled is returned when the user backs out of a prompt.
var ErrSelectionCancelled = errors.New("selection cancelled")

// ProviderOption is one row of the provider picker.
type ProviderOption struct {
	ID          string
	Name        string
	Description string
	HasAPIKey   bool
}

// buildProviderOptions creates provider options from the model registry.
func buildProviderOptions() []ProviderOption {
	providers := llm.GetProviders()
	options := make([]ProviderOption, 0, len(providers))

	for _, p := range providers {
		key, _ := config.ResolveAPIKey(llm.Provider(p.ID))
		hasKey := p.IsLocal || key != ""

		var desc string
		if p.IsLocal {
			desc = "Local, private, free"
		} else {
			desc = fmt.Sprintf("$%.2f-$%.2f/1M • %d models", p.MinPrice, p.MaxPrice, p.ModelCount)
			if !hasKey {
				desc += fmt.Sprintf(" • %s not set", llm.APIKeyEnvVar(p.ID))
			}
		}

		options = append(options, ProviderOption{
			ID:          p.ID,
			Name:        p.DisplayName,
			Description: desc,
			HasAPIKey:   hasKey,
		})
	}

	return options
}

// PromptLLMProvider prompts the user to select an LLM provider.
func PromptLLMProvider() (string, error) {
	m := providerSelectModel{options: buildProviderOptions()}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("run provider selection: %w", err)
	}

	result := finalModel.(providerSelectModel)
	if result.quit {
		return "", fmt.Errorf("provider: %w", ErrSelectionCancelled)
	}
	return result.selectedID, nil
}

// LLMSelection contains the result of provider + model selection.
type LLMSelection struct {
	Provider string
	Model    string
}

// PromptLLMSelection runs an interactive provider then model selection flow.
func PromptLLMSelection() (*LLMSelection, error) {
	provider, err := PromptLLMProvider()
	if err != nil {
		return nil, err
	}

	model, err := PromptModelSelection(provider)
	if err != nil {
		return nil, err
	}

	return &LLMSelection{Provider: provider, Model: model}, nil
}

type providerSelectModel struct {
	options    []ProviderOption
	cursor     int
	selectedID string
	quit       bool
}

func (m providerSelectModel) Init() tea.Cmd {
	return nil
}

func (m providerSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			m.selectedID = m.options[m.cursor].ID
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m providerSelectModel) View() string {
	s := "\n" + StyleSelectTitle.Render("🤖 Select AI Provider") + "\n\n"

	for i, opt := range m.options {
		cursor := "  "
		style := StyleSelectNormal

		if m.cursor == i {
			cursor = "▶ "
			style = StyleSelectActive
		}

		line := cursor + style.Render(fmt.Sprintf("%-10s", opt.Name))
		line += StyleSelectDim.Render(" " + opt.Description)
		s += line + "\n"
	}

	s += "\n" + StyleSelectDim.Render("↑/↓ navigate • enter select • esc cancel") + "\n"
	return s
}
