package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type aiOption struct {
	id    string
	title string
}

var aiOptions = []aiOption{
	{id: "", title: "None — rule-based dialect dictionary only"},
	{id: "openai", title: "OpenAI"},
	{id: "openrouter", title: "OpenRouter"},
	{id: "custom", title: "Custom OpenAI-compatible endpoint"},
}

// AIProviderStep picks the optional AI normalization backend.
type AIProviderStep struct {
	cursor int
}

func NewAIProviderStep() Step {
	return &AIProviderStep{}
}

func (s *AIProviderStep) Init() tea.Cmd {
	return nil
}

func (s *AIProviderStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(aiOptions)-1 {
			s.cursor++
		}
	case "enter":
		state.AIProvider = aiOptions[s.cursor].id
		if state.AIProvider == "openrouter" {
			state.AIBaseURL = "https://openrouter.ai/api"
		}
		return nil, nil
	}
	return s, nil
}

func (s *AIProviderStep) View(state *InstallState) string {
	var sb strings.Builder
	sb.WriteString("Use an AI backend to normalize dialect queries?\n\n")
	for i, opt := range aiOptions {
		if i == s.cursor {
			sb.WriteString(selStyle.Render(fmt.Sprintf("> %s", opt.title)) + "\n")
		} else {
			sb.WriteString(itemStyle.Render(opt.title) + "\n")
		}
	}
	sb.WriteString("\n(↑/↓ to move, enter to confirm)\n")
	return sb.String()
}

// AIKeyStep collects the API key; skipped when no AI backend was chosen.
type AIKeyStep struct {
	input textinput.Model
}

func NewAIKeyStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	ti.Placeholder = "sk-..."
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'

	return &AIKeyStep{
		input: ti,
	}
}

func (s *AIKeyStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *AIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.AIProvider == "" {
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		state.AIAPIKey = s.input.Value()
		return nil, nil
	}
	return s, cmd
}

func (s *AIKeyStep) View(state *InstallState) string {
	return "Enter your AI provider API key:\n\n" +
		s.input.View() + "\n\n" +
		"(press enter to confirm)\n"
}
