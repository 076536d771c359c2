package tui

import (
	"fmt"
	"strings"

	"timetabler/pkg/catalog"
	"timetabler/pkg/search"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const resultRows = 12

var (
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// recheckMsg asks the model to report its viewport again after a re-render.
type recheckMsg struct{}

// resultsModel is the scrolling lecture list. Typing edits the text query, the arrow
// keys move the cursor, and rows near the bottom of the window reveal the next page.
type resultsModel struct {
	session *search.Session
	input   textinput.Model
	rows    int
	cursor  int
	offset  int

	chosen   *catalog.Lecture
	quitting bool
}

func newResultsModel(session *search.Session) *resultsModel {
	ti := textinput.New()
	ti.Placeholder = "Search lectures by title or code..."
	ti.SetValue(session.Options().Query)
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	return &resultsModel{session: session, input: ti, rows: resultRows}
}

func (m *resultsModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.recheck())
}

func (m *resultsModel) recheck() tea.Cmd {
	if !m.session.NeedsProximityCheck() {
		return nil
	}
	return func() tea.Msg { return recheckMsg{} }
}

// viewportEnd is one past the last row currently on screen.
func (m *resultsModel) viewportEnd() int {
	return min(m.offset+m.rows, len(m.session.Visible()))
}

func (m *resultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.rows = max(3, msg.Height-8)
		m.scroll()
		return m, nil

	case recheckMsg:
		m.session.Observe(m.viewportEnd())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			visible := m.session.Visible()
			if len(visible) > 0 {
				lecture := visible[m.cursor]
				m.chosen = &lecture
				return m, tea.Quit
			}
			return m, nil
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.session.Visible())-1 {
				m.cursor++
			}
			m.scroll()
			m.session.Observe(m.viewportEnd())
			return m, nil
		}
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != prev {
		opts := m.session.Options()
		opts.Query = strings.TrimSpace(m.input.Value())
		if m.session.SetOptions(opts) {
			m.cursor, m.offset = 0, 0
		}
		return m, tea.Batch(cmd, m.recheck())
	}
	return m, cmd
}

// scroll keeps the cursor inside the window.
func (m *resultsModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.rows {
		m.offset = m.cursor - m.rows + 1
	}
}

func (m *resultsModel) View() string {
	if m.quitting || m.chosen != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	visible := m.session.Visible()
	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("No lectures match the current filters"))
		b.WriteString("\n")
	}

	end := m.viewportEnd()
	for i := m.offset; i < end; i++ {
		l := visible[i]
		line := fmt.Sprintf("%-8s %s  %s학년 %s학점  %s", l.ID, l.Title, gradeLabel(l.Grade), l.Credits, dimStyle.Render(catalog.MajorTag(l.Major)))
		if i == m.cursor {
			b.WriteString(accentStyle.Render("▸ ") + selectedStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d shown · page %d/%d · ↑/↓ move · enter add · esc back",
		len(visible), m.session.Total(), m.session.Page(), m.session.LastPage())))
	return b.String()
}

func gradeLabel(grade int) string {
	if grade <= 0 {
		return "-"
	}
	return fmt.Sprint(grade)
}

// runResults shows the list and returns the chosen lecture, nil when cancelled.
func runResults(session *search.Session) (*catalog.Lecture, error) {
	final, err := tea.NewProgram(newResultsModel(session)).Run()
	if err != nil {
		return nil, err
	}
	return final.(*resultsModel).chosen, nil
}
