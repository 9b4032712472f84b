// Package store persists sheet state as YAML, either as standalone files
// or as named snapshots in an on-disk key/value store.
package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bethropolis/xsheet/internal/sheet"
	"github.com/bethropolis/xsheet/internal/types"
)

var ErrUnsupportedVersion = errors.New("unsupported sheet version")

// Encode marshals state to YAML, stamping the current schema version.
func Encode(state types.SheetState) ([]byte, error) {
	if state.Version == 0 {
		state.Version = types.StateVersion
	}
	if state.Frames == nil {
		state.Frames = []types.FrameState{}
	}
	return yaml.Marshal(state)
}

// Decode parses YAML produced by Encode and checks that it describes a
// consistent sheet. A missing version is read as the current one.
func Decode(data []byte) (types.SheetState, error) {
	var state types.SheetState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return types.SheetState{}, fmt.Errorf("parse sheet: %w", err)
	}
	if state.Version == 0 {
		state.Version = types.StateVersion
	}
	if state.Version > types.StateVersion {
		return types.SheetState{}, fmt.Errorf("version %d: %w", state.Version, ErrUnsupportedVersion)
	}
	if _, err := sheet.FromState(state); err != nil {
		return types.SheetState{}, fmt.Errorf("invalid sheet: %w", err)
	}
	return state, nil
}

// WriteFile writes state to a YAML file.
func WriteFile(path string, state types.SheetState) error {
	data, err := Encode(state)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a sheet from a YAML file.
func ReadFile(path string) (types.SheetState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SheetState{}, err
	}
	return Decode(data)
}
