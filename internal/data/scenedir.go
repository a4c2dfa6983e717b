package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pgeditor/editor/internal/component"
)

// ErrSceneNotFound is returned when a named layout does not exist.
var ErrSceneNotFound = errors.New("scene not found")

const sceneExt = ".yaml"

// SceneDir stores named layouts as YAML files in one directory. It is the
// save target when no database is configured.
type SceneDir struct {
	dir string
}

func NewSceneDir(dir string) *SceneDir {
	return &SceneDir{dir: dir}
}

func (d *SceneDir) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid scene name %q", name)
	}
	return filepath.Join(d.dir, name+sceneExt), nil
}

func (d *SceneDir) Save(_ context.Context, name string, props []component.Snapshot) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create scenes dir: %w", err)
	}
	return WriteScene(p, name, props)
}

func (d *SceneDir) Load(_ context.Context, name string) ([]component.Snapshot, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	sf, err := LoadScene(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrSceneNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sf.Props, nil
}

// List returns the names of stored layouts in alphabetical order. A missing
// directory holds no scenes.
func (d *SceneDir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != sceneExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), sceneExt))
	}
	sort.Strings(names)
	return names, nil
}
