package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/salat/internal/app"
	"github.com/mmcdole/salat/internal/domain"
	"github.com/mmcdole/salat/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// viewMode selects which surface has input focus
type viewMode int

const (
	modeMain viewMode = iota
	modeMenu
	modeAdding
)

const widgetWidth = 34

// Model is the Bubble Tea model for the widget
type Model struct {
	orch *app.Orchestrator

	snap  app.Snapshot
	mode  viewMode
	ready bool

	cursor     int // prayer row cursor (main view)
	menuCursor int // saved-location cursor (menu overlay)
	menuFilter string

	cityInput textinput.Model

	statusMsg   string
	statusIsErr bool

	width  int
	height int
}

// NewModel creates the widget model around an orchestrator
func NewModel(orch *app.Orchestrator) Model {
	input := textinput.New()
	input.Placeholder = "Enter city..."
	input.CharLimit = 64
	input.Width = widgetWidth - 10

	return Model{
		orch:      orch,
		snap:      orch.Snapshot(),
		cityInput: input,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(StartCmd(m.orch), TickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		// The tick is never blocked by in-flight fetches; it only reads.
		m.snap = m.orch.Snapshot()
		return m, TickCmd()

	case StartedMsg:
		m.ready = true
		m.snap = m.orch.Snapshot()
		return m, nil

	case LocationSelectedMsg:
		// Selecting always closes the menu overlay.
		m.mode = modeMain
		m.menuFilter = ""
		m.snap = m.orch.Snapshot()
		m.setStatus("Showing "+msg.Location.DisplayName(), false)
		return m, nil

	case LocationAddedMsg:
		m.mode = modeMain
		m.menuFilter = ""
		m.cityInput.Reset()
		m.snap = m.orch.Snapshot()
		m.setStatus("Added "+msg.Location.DisplayName(), false)
		return m, nil

	case LocationRemovedMsg:
		m.snap = m.orch.Snapshot()
		if m.menuCursor >= len(m.filteredSaved()) {
			m.menuCursor = max(0, len(m.filteredSaved())-1)
		}
		return m, nil

	case RefreshedMsg:
		m.snap = m.orch.Snapshot()
		m.setStatus("Schedule refreshed", false)
		return m, nil

	case ErrMsg:
		m.setStatus(msg.Error(), true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAdding:
		return m.handleAddingKey(msg)
	case modeMenu:
		return m.handleMenuKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m", "l":
		m.mode = modeMenu
		m.menuCursor = 0
		m.menuFilter = ""
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(domain.PrayerOrder)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
		if m.snap.Times != nil {
			m.orch.ToggleCompleted(domain.PrayerOrder[m.cursor])
			m.snap = m.orch.Snapshot()
		}
		return m, nil
	case "r":
		m.setStatus("Refreshing...", false)
		return m, RetryCmd(m.orch)
	}
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	saved := m.filteredSaved()

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeMain
		m.menuFilter = ""
		return m, nil
	case "up":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down":
		if m.menuCursor < len(saved)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter":
		if m.menuCursor < len(saved) {
			return m, SelectLocationCmd(m.orch, saved[m.menuCursor])
		}
		return m, nil
	case "+":
		m.mode = modeAdding
		m.cityInput.Reset()
		m.cityInput.Focus()
		return m, textinput.Blink
	case "ctrl+d":
		if m.menuCursor < len(saved) {
			return m, RemoveLocationCmd(m.orch, saved[m.menuCursor].City)
		}
		return m, nil
	case "backspace":
		if m.menuFilter != "" {
			m.menuFilter = m.menuFilter[:len(m.menuFilter)-1]
			m.menuCursor = 0
		}
		return m, nil
	}

	// Any other printable rune narrows the list.
	if len(msg.Runes) == 1 {
		m.menuFilter += string(msg.Runes)
		m.menuCursor = 0
	}
	return m, nil
}

func (m Model) handleAddingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeMenu
		m.cityInput.Blur()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.cityInput.Value())
		if query == "" {
			return m, nil
		}
		m.cityInput.Blur()
		m.setStatus("Searching "+query+"...", false)
		return m, AddLocationCmd(m.orch, query)
	}

	var cmd tea.Cmd
	m.cityInput, cmd = m.cityInput.Update(msg)
	return m, cmd
}

// filteredSaved narrows the saved list by the typed menu filter.
func (m Model) filteredSaved() []domain.Location {
	saved := m.snap.Saved
	if m.menuFilter == "" {
		return saved
	}

	cities := make([]string, len(saved))
	for i, l := range saved {
		cities[i] = l.City
	}

	matches := fuzzy.Find(m.menuFilter, cities)
	out := make([]domain.Location, 0, len(matches))
	for _, match := range matches {
		out = append(out, saved[match.Index])
	}
	return out
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsErr = isErr
}

// === View ===

func (m Model) View() string {
	var body string
	switch m.mode {
	case modeMenu, modeAdding:
		body = m.menuView()
	default:
		body = m.mainView()
	}

	widget := styles.WidgetBorder.Width(widgetWidth).Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, widget)
	}
	return widget
}

func (m Model) mainView() string {
	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteString("\n\n")

	next := m.snap.Next
	b.WriteString(styles.NextLabelStyle.Render(strings.ToUpper(next.Name)))
	b.WriteString("\n")
	b.WriteString(styles.NextTimeStyle.Render(next.Time))
	b.WriteString("  ")
	b.WriteString(styles.CountdownStyle.Render(next.Countdown))
	b.WriteString("\n\n")

	for i, name := range domain.PrayerOrder {
		b.WriteString(m.prayerRow(i, name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine("space toggle · m locations · r refresh · q quit"))
	return b.String()
}

func (m Model) prayerRow(i int, name string) string {
	at := "--:--"
	if m.snap.Times != nil {
		at = m.snap.Times.At(name)
	}
	row := fmt.Sprintf("%-10s %s", name, at)

	style := styles.RowStyle
	switch {
	case m.snap.Completed[name]:
		style = styles.CompletedRowStyle
	case name == m.snap.Next.Name:
		style = styles.NextRowStyle
	case m.snap.Elapsed[name]:
		style = styles.ElapsedRowStyle
	}

	marker := "  "
	if i == m.cursor {
		marker = "> "
	}
	return marker + style.Render(row)
}

func (m Model) headerLine() string {
	badge := "LOADING..."
	if m.snap.Active != nil {
		badge = m.snap.Active.DisplayName()
	}
	left := styles.CityBadge.Render(badge)
	right := styles.ClockStyle.Render(m.snap.Clock)

	gap := widgetWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) menuView() string {
	var b strings.Builder

	b.WriteString(styles.MenuTitleStyle.Render("Locations"))
	if m.menuFilter != "" {
		b.WriteString(styles.StatusStyle.Render("  /" + m.menuFilter))
	}
	b.WriteString("\n\n")

	saved := m.filteredSaved()
	if len(saved) == 0 {
		b.WriteString(styles.StatusStyle.Render("  (no saved locations)"))
		b.WriteString("\n")
	}
	for i, loc := range saved {
		marker := "  "
		if i == m.menuCursor {
			marker = "> "
		}
		style := styles.MenuItemStyle
		if m.snap.Active != nil && m.snap.Active.Same(loc) {
			style = styles.MenuActiveStyle
		}
		b.WriteString(marker + style.Render(loc.City))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.mode == modeAdding {
		b.WriteString(m.cityInput.View())
		b.WriteString("\n")
		b.WriteString(m.statusLine("enter search · esc back"))
	} else {
		b.WriteString(m.statusLine("enter select · + add · ctrl+d remove · esc close"))
	}
	return b.String()
}

func (m Model) statusLine(hint string) string {
	if m.statusMsg != "" {
		if m.statusIsErr {
			return styles.ErrorStyle.Render(m.statusMsg)
		}
		return styles.StatusStyle.Render(m.statusMsg)
	}
	return styles.StatusStyle.Render(hint)
}
