package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of the schema in dependency order",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer s.Close()

		tables, err := s.resolveTables(ctx, nil)
		if err != nil {
			return err
		}
		ordered, err := s.orderedTables(ctx, tables)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Schema %s (%s): %d tables\n", s.schema, s.dialect.Name(), len(ordered))
		for i, t := range ordered {
			deps := "-"
			if len(t.Dependencies) > 0 {
				deps = strings.Join(t.Dependencies, ", ")
			}
			fmt.Fprintf(out, "[%02d] %-30s (Dependencies: %s)\n", i+1, t.Name, deps)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
