package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/geometry"
)

// componentsCommand creates the components command for browsing templates.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		asJSON      bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:     "components [kind]",
		Aliases: []string{"kinds"},
		Short:   "List component types and their pins",
		Long: `List component types and their pins.

Without an argument every component type is listed with its size and pin
names. With a kind (or one of its aliases, e.g. "npn" or "led") the pins of
that type are shown with their offsets, direction, and class.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := c.templates(args)
			if err != nil {
				return err
			}
			switch {
			case asJSON:
				return printTemplatesJSON(templates)
			case interactive:
				return runComponentBrowser(templates)
			case len(args) == 1:
				printTemplate(templates[0])
			default:
				printTemplates(templates)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print templates as JSON")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse templates interactively")

	return cmd
}

// templates looks up the requested kind, or every registered kind.
func (c *CLI) templates(args []string) ([]geometry.Template, error) {
	reg := geometry.Standard()
	kinds := reg.Kinds()
	if len(args) == 1 {
		k, err := circuit.ParseKind(args[0])
		if err != nil {
			return nil, err
		}
		kinds = []circuit.Kind{k}
	}

	out := make([]geometry.Template, 0, len(kinds))
	for _, k := range kinds {
		t, err := reg.Lookup(k)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func printTemplatesJSON(templates []geometry.Template) error {
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(stdinArg, append(data, '\n'))
}

// templatesTable renders the summary table, highlighting the cursor row when
// cursor is in range.
func templatesTable(templates []geometry.Template, offset, cursor int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(templates))
	for i, t := range templates {
		rows[i] = []string{
			t.Kind.String(),
			fmt.Sprintf("%gx%g", t.Size.Width, t.Size.Height),
			strings.Join(t.PinNames(), " "),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Size", "Pins").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case offset+row == cursor:
				return listSelectedStyle
			case col == 0:
				return StyleHighlight
			}
			return StyleDim
		}).
		Render()
}

func printTemplates(templates []geometry.Template) {
	fmt.Fprintln(stdout, templatesTable(templates, 0, -1))
	printDetail("%s", plural(len(templates), "component type"))
}

// pinTable renders one template's pins.
func pinTable(t geometry.Template) string {
	rows := make([][]string, len(t.Pins))
	for i, p := range t.Pins {
		rows[i] = []string{p.Name, fmt.Sprintf("(%g, %g)", p.Offset.X, p.Offset.Y), p.Direction.String(), p.Class.String()}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pin", "Offset", "Direction", "Class").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		}).
		Render()
}

func printTemplate(t geometry.Template) {
	fmt.Fprintln(stdout, StyleTitle.Render(t.Kind.String()))
	printKeyValue("size", fmt.Sprintf("%g x %g", t.Size.Width, t.Size.Height))
	fmt.Fprintln(stdout, pinTable(t))
}

// runComponentBrowser runs the interactive browser and prints the pick.
func runComponentBrowser(templates []geometry.Template) error {
	final, err := tea.NewProgram(NewComponentListModel(templates)).Run()
	if err != nil {
		return fmt.Errorf("component browser: %w", err)
	}
	if m, ok := final.(ComponentListModel); ok && m.Selected != nil {
		printTemplate(*m.Selected)
	}
	return nil
}
