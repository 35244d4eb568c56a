package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"cassdao"
)

func newExecCommand(opts *rootOptions) *cobra.Command {
	var params []string
	var consistency string
	var pageSize int

	cmd := &cobra.Command{
		Use:   "exec <table> <cql>",
		Short: "Execute a CQL statement with named parameters and print the rows as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := parseAssignments(params)
			if err != nil {
				return err
			}
			a, err := opts.adapter(args[0])
			if err != nil {
				return err
			}

			rows, res, err := a.Execute(cmd.Context(), args[1], bound, &cassdao.QueryOptions{
				Consistency: consistency,
				PageSize:    pageSize,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(rows); err != nil {
				return err
			}
			if res.PageState != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "more rows available (page state %x)\n", res.PageState)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "named parameter as name=value (repeatable)")
	cmd.Flags().StringVar(&consistency, "query-consistency", "", "consistency level for this statement")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "page size for this statement")
	return cmd
}
