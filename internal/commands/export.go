package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/xsheet/internal/app"
	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/store"
)

func addExport(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "export FILE DIR",
		Short: "Write one frame descriptor per frame and a manifest into DIR.",
		Example: `
xsheet export walk.xsheet.yaml out/
xsheet export --workers 4 walk.xsheet.yaml out/
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			state, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			exporter := &export.Exporter{
				Renderer: export.DescriptorRenderer{},
				Workers:  o.cfg.Export.Workers,
				Dir:      args[1],
				Pattern:  o.cfg.Export.Pattern,
			}
			if err := app.ExportSheet(cmd.Context(), exporter, state); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d frames to %s\n", len(state.Frames), args[1])
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
