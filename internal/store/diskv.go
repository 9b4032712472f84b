package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"github.com/bethropolis/xsheet/internal/logger"
	"github.com/bethropolis/xsheet/internal/types"
)

const fileExt = ".yaml"

var ErrNotFound = errors.New("sheet not found")

// Store keeps named sheet snapshots under one directory, one YAML file
// per name.
type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open creates a Store rooted at dir. The directory is created on the
// first write.
func Open(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store: directory required")
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:          dir,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes state under name, replacing any earlier snapshot.
func (s *Store) Save(name string, state types.SheetState) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	data, err := Encode(state)
	if err != nil {
		return err
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("store: save %q: %w", name, err)
	}
	logger.DebugTagf("store", "Saved %q (%d frames)", name, len(state.Frames))
	return nil
}

// Load reads the snapshot saved under name.
func (s *Store) Load(name string) (types.SheetState, error) {
	key, err := toKey(name)
	if err != nil {
		return types.SheetState{}, err
	}
	data, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.SheetState{}, fmt.Errorf("%q: %w", name, ErrNotFound)
		}
		return types.SheetState{}, fmt.Errorf("store: load %q: %w", name, err)
	}
	state, err := Decode(data)
	if err != nil {
		return types.SheetState{}, fmt.Errorf("store: load %q: %w", name, err)
	}
	return state, nil
}

// Has reports whether a snapshot exists under name.
func (s *Store) Has(name string) bool {
	key, err := toKey(name)
	if err != nil {
		return false
	}
	return s.d.Has(key)
}

// Delete removes the snapshot saved under name.
func (s *Store) Delete(name string) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	if !s.d.Has(key) {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return s.d.Erase(key)
}

// Names lists saved snapshot names in sorted order.
func (s *Store) Names(ctx context.Context) []string {
	names := make([]string, 0)
	for key := range s.d.Keys(ctx.Done()) {
		name, err := fromKey(key)
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + fileExt,
	}
}

// pathToKeyTransform also sees directories and stray files while diskv
// walks the base path; those map to keys fromKey rejects.
func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) > 0 || !strings.HasSuffix(pathKey.FileName, fileExt) {
		return ""
	}
	return strings.TrimSuffix(pathKey.FileName, fileExt)
}

// toKey encodes a snapshot name so any name is a safe file name.
func toKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("store: sheet name required")
	}
	return base64.RawURLEncoding.EncodeToString([]byte(name)), nil
}

func fromKey(key string) (string, error) {
	if key == "" {
		return "", errors.New("store: empty key")
	}
	b, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
