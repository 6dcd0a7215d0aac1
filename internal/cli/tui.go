package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/archview/archview/pkg/model"
	"github.com/archview/archview/pkg/workspace"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// ContainerListModel is the bubbletea model for interactive container
// selection.
type ContainerListModel struct {
	Containers []*model.Container
	Cursor     int
	Selected   *model.Container
}

// NewContainerListModel creates a new container list model.
func NewContainerListModel(containers []*model.Container) ContainerListModel {
	return ContainerListModel{Containers: containers}
}

func (m ContainerListModel) Init() tea.Cmd {
	return nil
}

func (m ContainerListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Containers)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Containers[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ContainerListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Container"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, c := range m.Containers {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		components := fmt.Sprintf("%d components", len(c.Components()))
		tech := c.Technology()
		if tech == "" {
			tech = "—"
		}

		line := fmt.Sprintf("%s%-25s %-15s %s", cursor, c.Name(), listDimStyle.Render(tech), listDimStyle.Render(components))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Containers))))

	return b.String()
}

// pickContainer resolves the focus container when no --container flag was
// given: a single-container workspace is picked automatically, otherwise an
// interactive list is shown.
func pickContainer(ws *workspace.Workspace) (string, error) {
	containers := ws.Containers()
	switch len(containers) {
	case 0:
		return "", fmt.Errorf("workspace %q has no containers", ws.Name)
	case 1:
		return containers[0].Name(), nil
	}

	p := tea.NewProgram(NewContainerListModel(containers))
	result, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("container selection: %w", err)
	}
	final, ok := result.(ContainerListModel)
	if !ok || final.Selected == nil {
		return "", fmt.Errorf("no container selected")
	}
	return final.Selected.Name(), nil
}
