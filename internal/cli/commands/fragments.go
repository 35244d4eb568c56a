package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

func newFragmentsCommand(opts *rootOptions) *cobra.Command {
	var columns []string
	var where []string

	cmd := &cobra.Command{
		Use:   "fragments <table>",
		Short: "Print the projection, assignment and predicate fragments for a table",
		Long: `Print the projection, assignment and predicate fragments for a table.

Without --columns the table metadata is loaded and the full column list is used.
A --where value containing commas is treated as a list and renders an IN predicate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseAssignments(where)
			if err != nil {
				return err
			}
			a, err := opts.adapter(args[0])
			if err != nil {
				return err
			}

			if columns == nil {
				if err := a.EnsureLoaded(cmd.Context()); err != nil {
					return err
				}
				columns = a.TableInfo().Columns()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "select: %s\n", a.SelectColumns(columns))
			fmt.Fprintf(out, "pairs:  %s\n", a.ColumnsPair(columns))

			fields := make([]string, 0, len(filter))
			for f := range filter {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(out, "where:  %s\n", a.WherePair(f, filter[f]))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&columns, "columns", nil, "explicit column list")
	cmd.Flags().StringArrayVar(&where, "where", nil, "predicate as field=value (repeatable)")
	return cmd
}

// parseAssignments turns field=value pairs into a parameter map. Values with
// commas become string slices.
func parseAssignments(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected field=value", p)
		}
		if strings.Contains(v, ",") {
			out[k] = strings.Split(v, ",")
			continue
		}
		out[k] = v
	}
	return out, nil
}
