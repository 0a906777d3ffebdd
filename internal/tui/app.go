package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/format37/biographer/internal/app"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type tabID int

const (
	tabBiographical tabID = iota
	tabGeneral
	tabData
	tabCount
)

// Model is the tabbed front-end: a biographical journal tab, a general chat
// tab, and a data summary tab. Each chat tab owns its display log; the
// Biographer owns everything durable.
type Model struct {
	bio *app.Biographer

	active    tabID
	input     textarea.Model
	histories map[app.Category]string
	dataInfo  string
	status    string
	loading   bool
	spinner   int

	windowWidth  int
	windowHeight int
	keys         keyMap
}

func New(biographer *app.Biographer) *Model {
	ta := textarea.New()
	ta.Placeholder = biographer.Config.UIText.BiographicalTab.InputPlaceholder
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.Prompt = "▍ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFgMuted))
	ta.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color(colorFgMuted))

	return &Model{
		bio:          biographer,
		active:       tabBiographical,
		input:        ta,
		histories:    make(map[app.Category]string),
		windowWidth:  80,
		windowHeight: 24,
		keys:         defaultKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.welcomeCmd(app.CategoryBiographical),
		m.welcomeCmd(app.CategoryGeneral),
		m.statsCmd(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.input.SetWidth(msg.Width - 8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.active = (m.active + 1) % tabCount
			m.syncPlaceholder()
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			return m, m.statsCmd()

		case key.Matches(msg, m.keys.NewSession):
			if cat, ok := m.activeCategory(); ok && !m.loading {
				m.input.Reset()
				m.status = ""
				m.loading = true
				return m, tea.Batch(m.newSessionCmd(cat), m.spinCmd())
			}
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			cat, ok := m.activeCategory()
			if !ok {
				return m, m.statsCmd()
			}
			if m.loading {
				return m, nil
			}
			input := m.input.Value()
			m.input.Reset()
			m.status = ""
			m.loading = true
			return m, tea.Batch(m.submitCmd(cat, input, m.histories[cat]), m.spinCmd())
		}

	case welcomeMsg:
		m.loading = false
		m.histories[msg.category] = msg.log
		return m, nil

	case turnMsg:
		m.loading = false
		if msg.err != nil {
			// Storage failures are the one error class that must reach the
			// user.
			m.status = fmt.Sprintf("Could not save this turn: %v", msg.err)
			return m, nil
		}
		m.histories[msg.category] = msg.log
		return m, nil

	case statsMsg:
		m.dataInfo = msg.info
		return m, nil

	case spinMsg:
		if m.loading {
			m.spinner++
			return m, m.spinCmd()
		}
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	var b strings.Builder

	ui := m.bio.Config.UIText
	b.WriteString(headerStyle.Render(ui.AppTitle))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(ui.AppSubtitle))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	switch m.active {
	case tabData:
		b.WriteString(descriptionStyle.Render(ui.DataTab.Description))
		b.WriteString("\n")
		info := m.dataInfo
		if info == "" {
			info = m.bio.Config.Messages.NoConversations
		}
		b.WriteString(historyStyle.Width(m.windowWidth - 4).Render(info))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.bio.Config.Messages.PrivacyInfo))
		b.WriteString("\n")
	default:
		cat, _ := m.activeCategory()
		tab := ui.BiographicalTab
		if cat == app.CategoryGeneral {
			tab = ui.GeneralTab
		}
		b.WriteString(descriptionStyle.Render(tab.Description))
		b.WriteString("\n")
		b.WriteString(historyStyle.Width(m.windowWidth - 4).Render(m.histories[cat]))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.loading {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		b.WriteString(loadingStyle.Render(frames[m.spinner%len(frames)] + " Thinking..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(statusErrorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.keys.footer()))
	return b.String()
}

func (m *Model) renderTabBar() string {
	ui := m.bio.Config.UIText
	titles := []string{ui.BiographicalTab.Title, ui.GeneralTab.Title, ui.DataTab.Title}
	parts := make([]string, len(titles))
	for i, title := range titles {
		if tabID(i) == m.active {
			parts[i] = activeTabStyle.Render(title)
		} else {
			parts[i] = tabStyle.Render(title)
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) activeCategory() (app.Category, bool) {
	switch m.active {
	case tabBiographical:
		return app.CategoryBiographical, true
	case tabGeneral:
		return app.CategoryGeneral, true
	}
	return "", false
}

func (m *Model) syncPlaceholder() {
	switch m.active {
	case tabBiographical:
		m.input.Placeholder = m.bio.Config.UIText.BiographicalTab.InputPlaceholder
	case tabGeneral:
		m.input.Placeholder = m.bio.Config.UIText.GeneralTab.InputPlaceholder
	}
}

type welcomeMsg struct {
	category app.Category
	log      string
}

type turnMsg struct {
	category app.Category
	log      string
	err      error
}

type statsMsg struct {
	info string
}

type spinMsg struct{}

func (m *Model) welcomeCmd(cat app.Category) tea.Cmd {
	return func() tea.Msg {
		return welcomeMsg{category: cat, log: m.bio.WelcomeMessage(context.Background(), cat)}
	}
}

func (m *Model) newSessionCmd(cat app.Category) tea.Cmd {
	return func() tea.Msg {
		return welcomeMsg{category: cat, log: m.bio.StartSession(context.Background(), cat)}
	}
}

func (m *Model) submitCmd(cat app.Category, input, history string) tea.Cmd {
	return func() tea.Msg {
		log, _, err := m.bio.SubmitTurn(context.Background(), cat, input, history)
		return turnMsg{category: cat, log: log, err: err}
	}
}

func (m *Model) statsCmd() tea.Cmd {
	return func() tea.Msg {
		return statsMsg{info: m.bio.DataInfo()}
	}
}

func (m *Model) spinCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(time.Time) tea.Msg {
		return spinMsg{}
	})
}
