package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cassdao/internal/cqlbuilder"
	"cassdao/schema"
)

func newDescribeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show column classification and sample statements for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.adapter(args[0])
			if err != nil {
				return err
			}
			if err := a.EnsureLoaded(cmd.Context()); err != nil {
				return err
			}

			info := a.TableInfo()
			out := cmd.OutOrStdout()
			title := color.New(color.FgCyan, color.Bold)

			title.Fprintf(out, "%s\n", a.QualifiedTable())
			for _, col := range info.Columns() {
				c, _ := info.Classification(col)
				fmt.Fprintf(out, "  %-24s %s\n", col, classificationColor(c).Sprint(c))
			}

			keys := info.PrimaryKeys()
			keyFilter := make(map[string]interface{}, len(keys))
			for _, k := range keys {
				keyFilter[k] = nil
			}
			where := cqlbuilder.WhereClause(keyFilter)
			var values []string
			for _, col := range info.Columns() {
				if !a.IsPrimaryKey(col) {
					values = append(values, col)
				}
			}

			table := a.QualifiedTable()
			title.Fprintln(out, "\nstatements")
			for _, stmt := range []string{
				cqlbuilder.BuildSelect(table, a.SelectColumns(nil), where),
				cqlbuilder.BuildInsert(table, info.Columns()),
				cqlbuilder.BuildUpdate(table, values, where),
				cqlbuilder.BuildDelete(table, where),
			} {
				if strings.TrimSpace(stmt) != "" {
					fmt.Fprintf(out, "  %s\n", stmt)
				}
			}
			return nil
		},
	}
}

func classificationColor(c schema.Classification) *color.Color {
	switch c {
	case schema.PrimaryKey:
		return color.New(color.FgYellow, color.Bold)
	case schema.Index:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}
