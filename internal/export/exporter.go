package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/xsheet/internal/logger"
)

const DefaultPattern = "frame_%04d.png"

// Renderer produces one image for a shot at path.
type Renderer interface {
	RenderFrame(ctx context.Context, shot Shot, path string) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, shot Shot, path string) error

func (f RendererFunc) RenderFrame(ctx context.Context, shot Shot, path string) error {
	return f(ctx, shot, path)
}

// Exporter renders shots into Dir, several at a time.
type Exporter struct {
	Renderer Renderer
	Workers  int    // Defaults to the number of CPUs
	Dir      string // Created if missing
	Pattern  string // fmt pattern taking the frame index
}

// Run renders every shot and returns the output paths in frame order.
// The first failure cancels the remaining renders.
func (e *Exporter) Run(ctx context.Context, shots []Shot) ([]string, error) {
	if e.Renderer == nil {
		return nil, errors.New("export: no renderer")
	}
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	pattern := e.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	paths := make([]string, len(shots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, shot := range shots {
		shot := shot
		path := filepath.Join(e.Dir, fmt.Sprintf(pattern, shot.Frame))
		paths[i] = path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.Renderer.RenderFrame(ctx, shot, path); err != nil {
				return fmt.Errorf("frame %d: %w", shot.Frame, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Errorf("Export: %v", err)
		return nil, err
	}
	logger.InfoTagf("export", "Rendered %d frames into %s with %d workers", len(shots), e.Dir, workers)
	return paths, nil
}

// Manifest is the plan written next to rendered frames so an encoder can
// assemble them at the right rate.
type Manifest struct {
	FrameRate float64  `yaml:"frame_rate"`
	Shots     []Shot   `yaml:"shots"`
	Files     []string `yaml:"files,omitempty"`
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DescriptorRenderer stands in for a paint host: instead of pixels it
// writes a YAML descriptor naming the layer each frame exposes.
type DescriptorRenderer struct{}

func (DescriptorRenderer) RenderFrame(ctx context.Context, shot Shot, path string) error {
	data, err := yaml.Marshal(shot)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
