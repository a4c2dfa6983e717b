package component

// Transform is the transform-like state the change log reads and writes.
// Pure data; plain value comparison decides whether a drag moved anything.
type Transform struct {
	Translation Vec3 `yaml:"translation"`
	Rotation    Quat `yaml:"rotation"`
	Scale       Vec3 `yaml:"scale"`
}

// FromTranslation returns a transform at p with identity rotation and unit scale.
func FromTranslation(p Vec3) Transform {
	return Transform{
		Translation: p,
		Rotation:    IdentityQuat,
		Scale:       Vec3{1, 1, 1},
	}
}

// Translated returns t moved by d.
func (t Transform) Translated(d Vec3) Transform {
	t.Translation = t.Translation.Add(d)
	return t
}

// Prop marks an entity as a user-placed scene object.
type Prop struct {
	Prefab string
}

// Ghost marks transient tool visuals (brush cursor, selection box). Ghosts are
// never part of history and are skipped by picking and scene saves.
type Ghost struct {
	Tool string
}

// Snapshot is everything needed to recreate a prop: used by spawn and despawn edits.
type Snapshot struct {
	Prefab    string    `yaml:"prefab"`
	Transform Transform `yaml:"transform"`
}
