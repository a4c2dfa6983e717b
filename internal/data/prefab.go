package data

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/pgeditor/editor/internal/component"
	"gopkg.in/yaml.v3"
)

// ErrUnknownPrefab is returned when an edit names a prefab the catalog lacks.
var ErrUnknownPrefab = errors.New("unknown prefab")

// Prefab is a placeable object type.
type Prefab struct {
	Name      string  `yaml:"name"`
	Scale     float64 `yaml:"scale"`     // uniform spawn scale, 0 means 1
	Brushable bool    `yaml:"brushable"` // may be painted with the brush
	Lift      float64 `yaml:"lift"`      // spawn height above the picked ground point
}

type prefabListFile struct {
	Prefabs []Prefab `yaml:"prefabs"`
}

// PrefabTable holds all prefabs indexed by name.
type PrefabTable struct {
	prefabs map[string]*Prefab
}

// LoadPrefabTable loads prefabs.yaml.
func LoadPrefabTable(path string) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	return ParsePrefabTable(raw)
}

// ParsePrefabTable parses prefab YAML already in memory.
func ParsePrefabTable(raw []byte) (*PrefabTable, error) {
	var f prefabListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}
	t := &PrefabTable{prefabs: make(map[string]*Prefab, len(f.Prefabs))}
	for i := range f.Prefabs {
		p := &f.Prefabs[i]
		if p.Name == "" {
			return nil, fmt.Errorf("parse prefab list: entry %d has no name", i)
		}
		if _, dup := t.prefabs[p.Name]; dup {
			return nil, fmt.Errorf("parse prefab list: duplicate prefab %q", p.Name)
		}
		if p.Scale == 0 {
			p.Scale = 1
		}
		t.prefabs[p.Name] = p
	}
	return t, nil
}

// DefaultPrefabTable is the built-in catalog used when no prefab file exists.
func DefaultPrefabTable() *PrefabTable {
	t := &PrefabTable{prefabs: make(map[string]*Prefab, 3)}
	for _, p := range []Prefab{
		{Name: "crate", Scale: 1},
		{Name: "rock", Scale: 1, Brushable: true},
		{Name: "tree", Scale: 1, Brushable: true},
	} {
		p := p
		t.prefabs[p.Name] = &p
	}
	return t
}

// Get returns the prefab called name, or nil.
func (t *PrefabTable) Get(name string) *Prefab {
	return t.prefabs[name]
}

// Count returns the number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}

// Names lists prefab names alphabetically.
func (t *PrefabTable) Names() []string {
	out := make([]string, 0, len(t.prefabs))
	for n := range t.prefabs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Place builds the spawn snapshot for prefab name picked at ground point at.
func (t *PrefabTable) Place(name string, at component.Vec3) (component.Snapshot, error) {
	p := t.prefabs[name]
	if p == nil {
		return component.Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownPrefab, name)
	}
	tr := component.FromTranslation(at.Add(component.Vec3{Y: p.Lift}))
	tr.Scale = component.Vec3{X: p.Scale, Y: p.Scale, Z: p.Scale}
	return component.Snapshot{Prefab: name, Transform: tr}, nil
}
