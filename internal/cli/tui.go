package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mieza/pkg/geometry"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ComponentListModel - Interactive component type browser
// =============================================================================

// ComponentListModel is the bubbletea model for browsing component templates.
// Typing filters the list by kind name; enter selects the highlighted kind.
type ComponentListModel struct {
	All      []geometry.Template
	Visible  []geometry.Template
	Filter   string
	Cursor   int
	Offset   int
	Height   int
	Selected *geometry.Template
}

// NewComponentListModel creates a browser over templates.
func NewComponentListModel(templates []geometry.Template) ComponentListModel {
	return ComponentListModel{
		All:     templates,
		Visible: templates,
		Height:  15,
	}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1)
		case tea.KeyDown:
			m.move(1)
		case tea.KeyEnter:
			if len(m.Visible) == 0 {
				return m, nil
			}
			t := m.Visible[m.Cursor]
			m.Selected = &t
			return m, tea.Quit
		case tea.KeyBackspace:
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.applyFilter()
			}
		case tea.KeyRunes:
			m.Filter += string(msg.Runes)
			m.applyFilter()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *ComponentListModel) move(delta int) {
	next := m.Cursor + delta
	if next < 0 || next >= len(m.Visible) {
		return
	}
	m.Cursor = next
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m *ComponentListModel) applyFilter() {
	m.Cursor, m.Offset = 0, 0
	if m.Filter == "" {
		m.Visible = m.All
		return
	}
	needle := strings.ToLower(m.Filter)
	m.Visible = nil
	for _, t := range m.All {
		if strings.Contains(t.Kind.String(), needle) {
			m.Visible = append(m.Visible, t)
		}
	}
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Component Types"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ show pins  type to filter  esc quit"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("filter: ") + StyleValue.Render(m.Filter))
	b.WriteString("\n\n")

	if len(m.Visible) == 0 {
		b.WriteString(StyleWarning.Render("  no matching component types"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Visible))
	b.WriteString(templatesTable(m.Visible[m.Offset:end], m.Offset, m.Cursor))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Visible))))

	return b.String()
}
