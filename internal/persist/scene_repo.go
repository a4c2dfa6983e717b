package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgeditor/editor/internal/component"
	"go.uber.org/zap"
)

// ErrSceneNotFound is returned by Load when no scene has the given name.
var ErrSceneNotFound = errors.New("scene not found")

// SceneRepo stores named scene layouts. Saving a name replaces its props.
type SceneRepo struct {
	db *DB
}

func NewSceneRepo(db *DB) *SceneRepo {
	return &SceneRepo{db: db}
}

var propColumns = []string{
	"scene_name", "ord", "prefab",
	"tx", "ty", "tz",
	"rx", "ry", "rz", "rw",
	"sx", "sy", "sz",
}

// Save replaces the stored layout of name with props in one transaction.
func (r *SceneRepo) Save(ctx context.Context, name string, props []component.Snapshot) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", name, err)
	}
	defer tx.Rollback(ctx)

	snapshotID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO scenes (name, snapshot_id, saved_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET snapshot_id = EXCLUDED.snapshot_id, saved_at = EXCLUDED.saved_at`,
		name, snapshotID)
	if err != nil {
		return fmt.Errorf("upsert scene %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM scene_props WHERE scene_name = $1`, name); err != nil {
		return fmt.Errorf("clear props of %s: %w", name, err)
	}

	rows := make([][]any, 0, len(props))
	for i, p := range props {
		t := p.Transform
		rows = append(rows, []any{
			name, int32(i), p.Prefab,
			t.Translation.X, t.Translation.Y, t.Translation.Z,
			t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
			t.Scale.X, t.Scale.Y, t.Scale.Z,
		})
	}
	if len(rows) > 0 {
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"scene_props"}, propColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy props of %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save %s: %w", name, err)
	}
	r.db.log.Debug("scene saved", zap.String("scene", name), zap.Int("props", len(props)), zap.Stringer("snapshot", snapshotID))
	return nil
}

// Load returns the props of name in the order they were saved.
func (r *SceneRepo) Load(ctx context.Context, name string) ([]component.Snapshot, error) {
	var snapshotID uuid.UUID
	err := r.db.Pool.QueryRow(ctx, `SELECT snapshot_id FROM scenes WHERE name = $1`, name).Scan(&snapshotID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrSceneNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", name, err)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT prefab, tx, ty, tz, rx, ry, rz, rw, sx, sy, sz
		 FROM scene_props WHERE scene_name = $1 ORDER BY ord`, name)
	if err != nil {
		return nil, fmt.Errorf("load props of %s: %w", name, err)
	}
	defer rows.Close()

	var out []component.Snapshot
	for rows.Next() {
		var s component.Snapshot
		t := &s.Transform
		if err := rows.Scan(
			&s.Prefab,
			&t.Translation.X, &t.Translation.Y, &t.Translation.Z,
			&t.Rotation.X, &t.Rotation.Y, &t.Rotation.Z, &t.Rotation.W,
			&t.Scale.X, &t.Scale.Y, &t.Scale.Z,
		); err != nil {
			return nil, fmt.Errorf("scan prop of %s: %w", name, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns every stored scene name in alphabetical order.
func (r *SceneRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM scenes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list scenes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
