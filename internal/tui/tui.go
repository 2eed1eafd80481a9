// Package tui provides a Bubble Tea TUI for viewing exported timeline
// documents.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fakeyudi/internsim/internal/export"
)

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Active tab: bright, underlined
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// Inactive tab: muted
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	// Separator between tabs
	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	// Section heading inside a tab
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// Key=value label
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	modeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	// Selected row in the Generations list
	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabSummary tabID = iota
	tabGenerations
	tabEvents
	tabCount
)

var tabNames = [tabCount]string{"Summary", "Generations", "Events"}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	doc      *export.TimelineDocument
	filename string

	activeTab tabID
	viewports [tabCount]viewport.Model
	width     int
	height    int
	ready     bool

	// Generations tab: cursor position and expanded set
	genCursor    int
	expandedGens map[int]bool
}

// New creates a new TUI model for the given document and source filename.
func New(doc *export.TimelineDocument, filename string) Model {
	return Model{
		doc:          doc,
		filename:     filepath.Base(filename),
		expandedGens: make(map[int]bool),
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(doc *export.TimelineDocument, filename string) error {
	p := tea.NewProgram(New(doc, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
		case "1", "2", "3":
			m.activeTab = tabID(msg.String()[0] - '1')
		case "up", "k":
			if m.activeTab == tabGenerations && m.genCursor > 0 {
				m.genCursor--
				m.rebuildGenerationsViewport()
				return m, nil
			}
		case "down", "j":
			if m.activeTab == tabGenerations && m.genCursor < len(m.doc.Generations)-1 {
				m.genCursor++
				m.rebuildGenerationsViewport()
				return m, nil
			}
		case "enter", " ":
			if m.activeTab == tabGenerations && len(m.doc.Generations) > 0 {
				if m.expandedGens[m.genCursor] {
					delete(m.expandedGens, m.genCursor)
				} else {
					m.expandedGens[m.genCursor] = true
				}
				m.rebuildGenerationsViewport()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	// ── Row 1: title bar ──────────────────────────────────────────────────────
	title := titleStyle.Width(m.width).Render("  internsim  " + m.filename)

	// ── Row 2: tab bar ────────────────────────────────────────────────────────
	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, tabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	// ── Row 3…N-1: scrollable content ────────────────────────────────────────
	content := m.viewports[m.activeTab].View()

	// ── Row N: status / hint bar ──────────────────────────────────────────────
	hint := "  ←/→ tab  ↑/↓ scroll  1-3 jump  q quit"
	if m.activeTab == tabGenerations {
		hint += "  ↑/↓ select  enter expand/collapse"
	}
	// show scroll % on the right
	pct := fmt.Sprintf("%3.0f%%", m.viewports[m.activeTab].ScrollPercent()*100)
	pad := m.width - lipgloss.Width(hint) - len(pct) - 2
	if pad < 1 {
		pad = 1
	}
	status := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + pct)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, status)
}

// ── Viewport content ───────────────

func (m *Model) initViewports() {
	contentHeight := m.height - 3 // title + tabs + status
	if contentHeight < 1 {
		contentHeight = 1
	}
	for i := tabID(0); i < tabCount; i++ {
		m.viewports[i] = viewport.New(m.width, contentHeight)
	}
	m.viewports[tabSummary].SetContent(m.renderSummary())
	m.rebuildGenerationsViewport()
	m.viewports[tabEvents].SetContent(m.doc.Text())
}

func (m *Model) rebuildGenerationsViewport() {
	if !m.ready {
		return
	}
	m.viewports[tabGenerations].SetContent(m.renderGenerations())
}

func (m *Model) renderSummary() string {
	var sb strings.Builder
	s := m.doc.Session

	sb.WriteString("\n" + sectionHeader.Render("  Session") + "\n\n")
	fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("Created:"), timeStyle.Render(s.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	fmt.Fprintf(&sb, "  %s %d week(s) across %d generation(s)\n", labelStyle.Render("Timeline:"), s.WeekCount, len(m.doc.Generations))
	if s.Model != "" {
		fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("Model:"), s.Model)
	}
	if s.Author != "" {
		fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("Author:"), s.Author)
	}
	fmt.Fprintf(&sb, "  %s %s\n", labelStyle.Render("ID:"), dimStyle.Render(s.ID))
	return sb.String()
}

func (m *Model) renderGenerations() string {
	if len(m.doc.Generations) == 0 {
		return dimStyle.Render("\n  No generations in this document.")
	}

	var sb strings.Builder
	sb.WriteString("\n")
	for i, g := range m.doc.Generations {
		endWeek := g.StartWeek + g.Weeks - 1
		span := fmt.Sprintf("week %d", g.StartWeek)
		if g.Weeks > 1 {
			span = fmt.Sprintf("weeks %d-%d", g.StartWeek, endWeek)
		}
		disc := g.Discipline
		if disc == "" {
			disc = "all disciplines"
		}
		row := fmt.Sprintf("  %d. %s  %s  %s", i+1, modeStyle.Render(g.Mode), disc, timeStyle.Render(span))
		if i == m.genCursor {
			row = selectedRowStyle.Render(row)
		}
		sb.WriteString(row + "\n")

		if m.expandedGens[i] {
			for _, line := range strings.Split(strings.TrimRight(g.Text, "\n"), "\n") {
				sb.WriteString("     " + line + "\n")
			}
		}
	}
	sb.WriteString("\n" + hintStyle.Render("  enter to expand a generation's events"))
	return sb.String()
}
