package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/parser"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <pattern>",
		Short: "Validate a pattern without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := shouldUseColor(opts.noColor)
			if _, errs := parser.Parse(args[0]); len(errs) > 0 {
				formatParseErrors(cmd.ErrOrStderr(), args[0], errs, useColor)
				return errs[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), colorize("ok", colorGreen, useColor))
			return nil
		},
	}
}
