package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pattyshack/garnet/parser/grammar"
)

func newTablesCmd() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Describe the compiled ruby grammar automaton",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			result, err := grammar.Compiled()
			if err != nil {
				return err
			}

			if summary {
				fmt.Fprintf(
					out,
					"%d states, %d rules, %d conflicts, %d unreduced rules\n",
					result.Tables.NumStates(),
					result.Tables.NumRules(),
					len(result.Conflicts),
					len(result.UnreducedRules))
				return nil
			}

			return result.WriteReport(out)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", false, "print only the table sizes")
	return cmd
}
