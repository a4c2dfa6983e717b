package data

import (
	"fmt"
	"os"

	"github.com/pgeditor/editor/internal/component"
	"gopkg.in/yaml.v3"
)

// SceneFile is a scene layout on disk: a flat list of props.
type SceneFile struct {
	Name  string               `yaml:"name"`
	Props []component.Snapshot `yaml:"props"`
}

// LoadScene loads a scene layout YAML.
func LoadScene(path string) (*SceneFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	sf, err := ParseScene(raw)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sf, nil
}

// ParseScene decodes a layout and fills omitted rotation and scale with identity.
func ParseScene(raw []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	for i := range sf.Props {
		t := &sf.Props[i].Transform
		if t.Rotation == (component.Quat{}) {
			t.Rotation = component.IdentityQuat
		}
		if t.Scale == (component.Vec3{}) {
			t.Scale = component.Vec3{X: 1, Y: 1, Z: 1}
		}
	}
	return &sf, nil
}

// WriteScene writes props to path as a layout YAML.
func WriteScene(path, name string, props []component.Snapshot) error {
	raw, err := yaml.Marshal(&SceneFile{Name: name, Props: props})
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write scene %s: %w", path, err)
	}
	return nil
}
