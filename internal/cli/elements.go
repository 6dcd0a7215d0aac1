package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/archview/archview/pkg/workspace"
)

// elementsCommand creates the elements command for inspecting a workspace.
func (c *CLI) elementsCommand() *cobra.Command {
	var container string

	cmd := &cobra.Command{
		Use:   "elements [workspace.json]",
		Short: "List containers and components in a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := workspace.ReadFile(args[0])
			if err != nil {
				return err
			}
			if container != "" {
				return printComponents(ws, container)
			}
			return printContainers(ws)
		},
	}

	cmd.Flags().StringVarP(&container, "container", "c", "", "list components of a single container")
	return cmd
}

func printContainers(ws *workspace.Workspace) error {
	containers := ws.Containers()
	if len(containers) == 0 {
		printWarning("Workspace %q has no containers", ws.Name)
		return nil
	}

	fmt.Println(StyleTitle.Render(ws.Name))
	if ws.Description != "" {
		printDetail("%s", ws.Description)
	}

	rows := [][]string{}
	for _, c := range containers {
		sysName := "—"
		if sys := ws.Model.OwningSoftwareSystem(c); sys != nil {
			sysName = sys.Name()
		}
		rows = append(rows, []string{
			c.Name(), sysName, orDash(c.Technology()), fmt.Sprintf("%d", len(c.Components())),
		})
	}
	printTable([]string{"Container", "System", "Technology", "Components"}, rows)
	return nil
}

func printComponents(ws *workspace.Workspace, name string) error {
	c, err := ws.FindContainer(name)
	if err != nil {
		return fmt.Errorf("container %q: %w", name, err)
	}

	fmt.Println(StyleTitle.Render(c.Name()))
	if c.Description() != "" {
		printDetail("%s", c.Description())
	}

	components := c.Components()
	if len(components) == 0 {
		printWarning("Container %q has no components", name)
		return nil
	}
	rows := [][]string{}
	for _, cmp := range components {
		rows = append(rows, []string{cmp.Name(), orDash(cmp.Technology()), orDash(cmp.Description())})
	}
	printTable([]string{"Component", "Technology", "Description"}, rows)
	return nil
}

func printTable(headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return listNormalStyle
		})

	fmt.Println(t.Render())
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
