package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"baro/links"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newListCmd(opts *rootOptions) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List links, best fuzzy match first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			c, repaired, err := links.LoadOrRepair(cfg.Links.Path)
			if err != nil {
				return err
			}
			if repaired {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s needed repair; showing recovered links\n", cfg.Links.Path)
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			store := links.NewStore(c, nil, nil, cfg.Links.Path)
			return printLinks(cmd, links.Search(store.FilterByTag(tag), query))
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "only links carrying this tag")
	return cmd
}

func printLinks(cmd *cobra.Command, results []links.Result) error {
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "no links")
		return nil
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		l := r.Link
		command := l.RunCommand
		if len(l.Arguments) > 0 {
			command += " " + strings.Join(l.Arguments, " ")
		}
		var flags []string
		if l.Elevated {
			flags = append(flags, "elevated")
		}
		if l.NewWindow {
			flags = append(flags, "new-window")
		}
		rows = append(rows, []string{
			strings.Join(l.Names, "/"),
			command,
			strings.Join(l.Tags, ","),
			strings.Join(flags, ","),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "COMMAND", "TAGS", "FLAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(out, t.Render())
	return nil
}
