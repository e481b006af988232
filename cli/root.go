// Package cli wires the rename engine into the bulirename command.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/preset"
)

// options carries the flags shared by the evaluating subcommands
type options struct {
	target           string
	keepInvalidChars bool
	presetName       string
	presetsFile      string
	verbose          bool
	noColor          bool
}

// NewRootCmd builds the bulirename command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "bulirename",
		Short:         "Rename files from metadata-driven formula patterns",
		Long: `bulirename derives file names from formula patterns mixing literal
text, {...} metadata keywords and [func:...] transformations, for
example:

  bulirename preview '{file:baseName}_{date}.{file:ext}' photo.png
  bulirename apply 'img_{counter:####}.{file:ext}' *.jpg

Run "bulirename reference" for the full keyword and function catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.presetsFile, "presets-file", "", "Path to the presets file (default: per-user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newPreviewCmd(opts),
		newApplyCmd(opts),
		newCheckCmd(opts),
		newReferenceCmd(),
		newPresetCmd(opts),
	)
	return rootCmd
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// addPatternFlags registers the flags shared by preview and apply
func addPatternFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Target directory (default: each file's own directory)")
	cmd.Flags().BoolVar(&opts.keepInvalidChars, "keep-invalid-chars", false, "Keep characters the platform forbids in file names")
	cmd.Flags().StringVarP(&opts.presetName, "preset", "p", "", "Use a stored preset instead of a pattern argument")
}

// resolvePattern returns the formula to evaluate: the --preset lookup
// when set, the first positional argument otherwise. The remaining
// arguments are the input paths.
func (o *options) resolvePattern(args []string) (pattern string, paths []string, err error) {
	if o.presetName == "" {
		if len(args) == 0 {
			return "", nil, fmt.Errorf("a pattern argument or --preset is required")
		}
		return args[0], args[1:], nil
	}

	path := o.presetsFile
	if path == "" {
		if path, err = preset.DefaultPath(); err != nil {
			return "", nil, err
		}
	}
	store, err := preset.Load(path)
	if err != nil {
		return "", nil, err
	}
	pattern, ok := store.Get(o.presetName)
	if !ok {
		return "", nil, fmt.Errorf("unknown preset %q", o.presetName)
	}
	slog.Debug("using preset", "name", o.presetName, "pattern", pattern)
	return pattern, args, nil
}
