package app

import (
	"context"
	"path/filepath"

	"github.com/bethropolis/xsheet/internal/export"
	"github.com/bethropolis/xsheet/internal/types"
)

// ExportSheet renders every frame of state with exporter and writes the
// manifest into the export directory.
func ExportSheet(ctx context.Context, exporter *export.Exporter, state types.SheetState) error {
	shots := export.Plan(state)
	files, err := exporter.Run(ctx, shots)
	if err != nil {
		return err
	}
	return export.WriteManifest(filepath.Join(exporter.Dir, ManifestFileName), export.Manifest{
		FrameRate: state.FrameRate,
		Shots:     shots,
		Files:     files,
	})
}
