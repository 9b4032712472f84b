package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/store"
	"github.com/bethropolis/xsheet/plugins/stats"
)

func addInspect(topLevel *cobra.Command, o *options) {
	var frames bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Summarize a sheet: cels, holds, blanks and keyframes.",
		Example: `
xsheet inspect walk.xsheet.yaml
xsheet inspect --frames walk.xsheet.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			state, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			shots := export.Plan(state)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, stats.Report(state.FrameRate, export.Summarize(shots)))
			if !frames {
				return nil
			}
			for _, shot := range shots {
				fmt.Fprintln(out, describe(shot))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&frames, "frames", false, "List what every frame exposes")

	topLevel.AddCommand(cmd)
}

func describe(shot export.Shot) string {
	key := " "
	if shot.Keyframe {
		key = "*"
	}
	switch {
	case shot.Blank:
		return fmt.Sprintf("%4d%s -", shot.Frame+1, key)
	case shot.Held:
		return fmt.Sprintf("%4d%s | %s (from %d)", shot.Frame+1, key, shot.Layer, shot.Source+1)
	default:
		return fmt.Sprintf("%4d%s %s", shot.Frame+1, key, shot.Layer)
	}
}
