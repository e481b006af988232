package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/rename"
)

func newApplyCmd(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply <pattern> <path>...",
		Short: "Rename files to the names a pattern produces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, paths, err := opts.resolvePattern(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("at least one input path is required")
			}

			// files are renamed one at a time so each counter resolution
			// sees the names claimed by the previous ones
			for _, path := range paths {
				d, err := rename.Stat(path)
				if err != nil {
					return err
				}
				name, err := rename.CalculateFileName(d, pattern, rename.Options{
					KeepInvalidChars: opts.keepInvalidChars,
					TargetPath:       opts.target,
				})
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if name == "" {
					return fmt.Errorf("%s: pattern produced an empty name", path)
				}

				targetDir := opts.target
				if targetDir == "" {
					targetDir = d.Path()
				}
				dest := filepath.Join(targetDir, name)

				if dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, dest)
					continue
				}
				slog.Debug("renaming", "from", d.FullPathName(), "to", dest)
				if err := os.Rename(d.FullPathName(), dest); err != nil {
					return fmt.Errorf("renaming %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, dest)
			}
			return nil
		},
	}
	addPatternFlags(cmd, opts)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the renames without performing them")
	return cmd
}
