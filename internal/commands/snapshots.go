package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/xsheet/internal/store"
)

func addSnapshots(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List, extract or delete named snapshots in the store.",
		Example: `
xsheet snapshots
xsheet snapshots get autosave recovered.xsheet.yaml
xsheet snapshots rm autosave
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := store.Open(o.cfg.Store.Dir)
			if err != nil {
				return err
			}
			for _, name := range s.Names(cmd.Context()) {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get NAME FILE",
		Short: "Write a snapshot out as a sheet file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := store.Open(o.cfg.Store.Dir)
			if err != nil {
				return err
			}
			state, err := s.Load(args[0])
			if err != nil {
				return err
			}
			return store.WriteFile(args[1], state)
		},
	}

	rm := &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a snapshot.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := store.Open(o.cfg.Store.Dir)
			if err != nil {
				return err
			}
			return s.Delete(args[0])
		},
	}

	cmd.AddCommand(get, rm)
	topLevel.AddCommand(cmd)
}
