package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/parser"
)

func newReferenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reference",
		Short: "List the keywords and functions usable in patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, rule := range parser.Tokenizer().Rules() {
				if len(rule.Completions) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s\n", rule.Type)
				for _, c := range rule.Completions {
					fmt.Fprintf(out, "  %-42s %s\n", c.Template, c.Description)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}
