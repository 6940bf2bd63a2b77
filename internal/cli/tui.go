package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listGrabbedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ReorderModel - Interactive input ordering
// =============================================================================

// ReorderModel is the bubbletea model for reordering input images.
//
// The cursor moves with up/down (k/j). Space grabs the item under the
// cursor, after which up/down carry it along; K/J move it one step without
// grabbing. Enter confirms, q or esc aborts.
type ReorderModel struct {
	Items     []string
	Cursor    int
	Grabbed   bool
	Confirmed bool
	Aborted   bool
	Height    int
	Offset    int
}

// NewReorderModel creates a reorder model over a copy of items.
func NewReorderModel(items []string) ReorderModel {
	return ReorderModel{
		Items:  append([]string(nil), items...),
		Height: 15,
	}
}

func (m ReorderModel) Init() tea.Cmd {
	return nil
}

func (m ReorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		case " ":
			m.Grabbed = !m.Grabbed
		case "up", "k":
			if m.Grabbed {
				m = m.move(-1)
			} else if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Grabbed {
				m = m.move(1)
			} else if m.Cursor < len(m.Items)-1 {
				m.Cursor++
			}
		case "K", "shift+up":
			m = m.move(-1)
		case "J", "shift+down":
			m = m.move(1)
		}
		m = m.scroll()
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m = m.scroll()
	}
	return m, nil
}

// move swaps the item under the cursor with its neighbour in direction d
// and keeps the cursor on the moved item.
func (m ReorderModel) move(d int) ReorderModel {
	to := m.Cursor + d
	if to < 0 || to >= len(m.Items) {
		return m
	}
	items := append([]string(nil), m.Items...)
	items[m.Cursor], items[to] = items[to], items[m.Cursor]
	m.Items = items
	m.Cursor = to
	return m
}

// scroll keeps the cursor inside the visible window.
func (m ReorderModel) scroll() ReorderModel {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m ReorderModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Order Images"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space grab  K/J move  ⏎ confirm  q abort"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Items))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%3d  %s", cursor, i, filepath.Base(m.Items[i]))

		switch {
		case i == m.Cursor && m.Grabbed:
			b.WriteString(listGrabbedStyle.Render(line))
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		if dir := filepath.Dir(m.Items[i]); dir != "." {
			b.WriteString("  " + listDimStyle.Render(dir))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Items))))
	return b.String()
}

// reorderInputs lets the user reorder inputs interactively. It returns nil
// when the user aborts.
func reorderInputs(inputs []string) ([]string, error) {
	final, err := tea.NewProgram(NewReorderModel(inputs)).Run()
	if err != nil {
		return nil, fmt.Errorf("reorder: %w", err)
	}
	m := final.(ReorderModel)
	if !m.Confirmed {
		return nil, nil
	}
	return m.Items, nil
}
