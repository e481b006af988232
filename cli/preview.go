package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/rename"
)

func newPreviewCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <pattern> <path>...",
		Short: "Show the names a pattern would produce, without renaming",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, paths, err := opts.resolvePattern(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("at least one input path is required")
			}

			for _, path := range paths {
				d, err := rename.Stat(path)
				if err != nil {
					return err
				}
				// CheckOnly keeps the preview instant: counters show as 1
				// instead of triggering a directory scan per file
				name, err := rename.CalculateFileName(d, pattern, rename.Options{
					CheckOnly:        true,
					KeepInvalidChars: opts.keepInvalidChars,
					TargetPath:       opts.target,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, name)
			}
			return nil
		},
	}
	addPatternFlags(cmd, opts)
	return cmd
}
