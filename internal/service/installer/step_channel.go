package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type channelOption struct {
	id    string
	title string
}

var channelOptions = []channelOption{
	{id: "cli", title: "CLI only (local terminal chat)"},
	{id: "telegram", title: "Telegram only"},
	{id: "both", title: "CLI and Telegram"},
}

// ChannelStep selects which transports the bot listens on.
type ChannelStep struct {
	cursor int
}

func NewChannelStep() Step {
	return &ChannelStep{}
}

func (s *ChannelStep) Init() tea.Cmd {
	return nil
}

func (s *ChannelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
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
		if s.cursor < len(channelOptions)-1 {
			s.cursor++
		}
	case "enter":
		choice := channelOptions[s.cursor].id
		state.EnableCLI = choice == "cli" || choice == "both"
		state.EnableTelegram = choice == "telegram" || choice == "both"
		return nil, nil
	}
	return s, nil
}

func (s *ChannelStep) View(state *InstallState) string {
	var sb strings.Builder
	sb.WriteString("Where should PartsBot answer?\n\n")
	for i, opt := range channelOptions {
		if i == s.cursor {
			sb.WriteString(selStyle.Render(fmt.Sprintf("> %s", opt.title)) + "\n")
		} else {
			sb.WriteString(itemStyle.Render(opt.title) + "\n")
		}
	}
	sb.WriteString("\n(↑/↓ to move, enter to confirm)\n")
	return sb.String()
}
