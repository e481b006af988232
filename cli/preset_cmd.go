package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bulicmd/bulirename/preset"
)

func newPresetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage stored formula presets",
	}

	storePath := func() (string, error) {
		if opts.presetsFile != "" {
			return opts.presetsFile, nil
		}
		return preset.DefaultPath()
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storePath()
			if err != nil {
				return err
			}
			store, err := preset.Load(path)
			if err != nil {
				return err
			}
			for _, name := range store.Names() {
				pattern, _ := store.Get(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", name, pattern)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name> <pattern>",
		Short: "Store a preset (the pattern is validated first)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storePath()
			if err != nil {
				return err
			}
			store, err := preset.Load(path)
			if err != nil {
				return err
			}
			if err := store.Set(args[0], args[1]); err != nil {
				return err
			}
			return store.Save(path)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := storePath()
			if err != nil {
				return err
			}
			store, err := preset.Load(path)
			if err != nil {
				return err
			}
			if !store.Delete(args[0]) {
				return fmt.Errorf("unknown preset %q", args[0])
			}
			return store.Save(path)
		},
	})

	return cmd
}
