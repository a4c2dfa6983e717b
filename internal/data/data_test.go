package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pgeditor/editor/internal/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefabYAML = `
prefabs:
  - name: lamp
    lift: 0.5
  - name: boulder
    scale: 3
    brushable: true
`

func TestParsePrefabTable(t *testing.T) {
	tbl, err := ParsePrefabTable([]byte(prefabYAML))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())
	assert.Equal(t, []string{"boulder", "lamp"}, tbl.Names())
	assert.Equal(t, 1.0, tbl.Get("lamp").Scale, "zero scale defaults to 1")
	assert.True(t, tbl.Get("boulder").Brushable)
	assert.Nil(t, tbl.Get("nope"))
}

func TestParsePrefabTableRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"no name":   "prefabs:\n  - scale: 2\n",
		"duplicate": "prefabs:\n  - name: a\n  - name: a\n",
		"bad yaml":  "prefabs: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePrefabTable([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestPlace(t *testing.T) {
	tbl, err := ParsePrefabTable([]byte(prefabYAML))
	require.NoError(t, err)

	s, err := tbl.Place("lamp", component.Vec3{X: 1, Z: 2})
	require.NoError(t, err)
	assert.Equal(t, component.Vec3{X: 1, Y: 0.5, Z: 2}, s.Transform.Translation)
	assert.Equal(t, component.IdentityQuat, s.Transform.Rotation)

	_, err = tbl.Place("ghost", component.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownPrefab)
}

func TestDefaultPrefabTable(t *testing.T) {
	tbl := DefaultPrefabTable()
	assert.Equal(t, []string{"crate", "rock", "tree"}, tbl.Names())
	assert.False(t, tbl.Get("crate").Brushable)
}

func TestSceneRoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	props := []component.Snapshot{
		{Prefab: "rock", Transform: component.FromTranslation(component.Vec3{X: 4, Z: -2})},
	}
	require.NoError(t, WriteScene(path, "meadow", props))

	sf, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "meadow", sf.Name)
	assert.Equal(t, props, sf.Props)
}

func TestParseSceneFillsIdentity(t *testing.T) {
	sf, err := ParseScene([]byte(`
name: bare
props:
  - prefab: crate
    transform:
      translation: {x: 1, y: 0, z: 1}
`))
	require.NoError(t, err)
	require.Len(t, sf.Props, 1)
	tr := sf.Props[0].Transform
	assert.Equal(t, component.IdentityQuat, tr.Rotation)
	assert.Equal(t, component.Vec3{X: 1, Y: 1, Z: 1}, tr.Scale)
}

func TestLoadSceneMissing(t *testing.T) {
	_, err := LoadScene(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestSceneDir(t *testing.T) {
	ctx := context.Background()
	dir := NewSceneDir(filepath.Join(t.TempDir(), "scenes"))

	names, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = dir.Load(ctx, "meadow")
	assert.ErrorIs(t, err, ErrSceneNotFound)

	props := []component.Snapshot{{Prefab: "tree", Transform: component.FromTranslation(component.Vec3{X: 2})}}
	require.NoError(t, dir.Save(ctx, "meadow", props))
	require.NoError(t, dir.Save(ctx, "bog", nil))

	got, err := dir.Load(ctx, "meadow")
	require.NoError(t, err)
	assert.Equal(t, props, got)

	names, err = dir.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bog", "meadow"}, names)

	assert.Error(t, dir.Save(ctx, "../escape", props))
}

func TestShippedPrefabs(t *testing.T) {
	tbl, err := LoadPrefabTable(filepath.Join("..", "..", "data", "prefabs.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 7, tbl.Count())
	require.NotNil(t, tbl.Get("tree"))
	assert.True(t, tbl.Get("tree").Brushable)
	assert.Equal(t, 1.0, tbl.Get("crate").Scale)
}
