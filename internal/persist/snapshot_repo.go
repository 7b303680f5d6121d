package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SnapshotRepo keeps named snapshots in PostgreSQL.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save replaces the snapshot stored under name in a single transaction.
func (r *SnapshotRepo) Save(ctx context.Context, name string, s *Snapshot) error {
	err := r.db.WithTx(ctx, pgx.TxOptions{}, func(tx pgx.Tx) error {
		// child rows cascade
		if _, err := tx.Exec(ctx, `DELETE FROM snapshots WHERE name = $1`, name); err != nil {
			return fmt.Errorf("clear: %w", err)
		}
		c := s.Craft
		if _, err := tx.Exec(ctx,
			`INSERT INTO snapshots (name, version, tick, points, collected, lost,
			   craft_x, craft_y, craft_vx, craft_vy, craft_heading, craft_alive, saved_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			name, s.Version, int64(s.Tick), s.Score.Points, s.Score.Collected, s.Score.Lost,
			c.X, c.Y, c.VX, c.VY, c.Heading, c.Alive, s.SavedAt,
		); err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		batch := &pgx.Batch{}
		for i, p := range s.Planets {
			batch.Queue(
				`INSERT INTO snapshot_planets (snapshot_name, idx, orbit_radius, angular_speed, angle, radius, color)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				name, i, p.OrbitRadius, p.AngularSpeed, p.Angle, p.Radius, int64(p.Color),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("planets: %w", err)
		}

		rows := make([][]any, len(s.Garbage))
		for i, g := range s.Garbage {
			rows[i] = []any{name, i, g.X, g.Y, g.Size, int64(g.Color)}
		}
		if _, err := tx.CopyFrom(ctx,
			pgx.Identifier{"snapshot_garbage"},
			[]string{"snapshot_name", "idx", "x", "y", "size", "color"},
			pgx.CopyFromRows(rows),
		); err != nil {
			return fmt.Errorf("garbage: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}
	r.db.log.Debug("snapshot stored",
		zap.String("name", name),
		zap.Int("planets", len(s.Planets)),
		zap.Int("garbage", len(s.Garbage)),
	)
	return nil
}

// Load reads the snapshot stored under name from one consistent view.
// Returns ErrSnapshotNotFound if there is none.
func (r *SnapshotRepo) Load(ctx context.Context, name string) (*Snapshot, error) {
	s := &Snapshot{}
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := r.db.WithTx(ctx, opts, func(tx pgx.Tx) error {
		var tick int64
		c := &s.Craft
		err := tx.QueryRow(ctx,
			`SELECT version, tick, points, collected, lost,
			        craft_x, craft_y, craft_vx, craft_vy, craft_heading, craft_alive, saved_at
			 FROM snapshots WHERE name = $1`, name,
		).Scan(&s.Version, &tick, &s.Score.Points, &s.Score.Collected, &s.Score.Lost,
			&c.X, &c.Y, &c.VX, &c.VY, &c.Heading, &c.Alive, &s.SavedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("header: %w", err)
		}
		s.Tick = uint64(tick)

		rows, _ := tx.Query(ctx,
			`SELECT orbit_radius, angular_speed, angle, radius, color
			 FROM snapshot_planets WHERE snapshot_name = $1 ORDER BY idx`, name)
		s.Planets, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (PlanetState, error) {
			var p PlanetState
			var color int64
			err := row.Scan(&p.OrbitRadius, &p.AngularSpeed, &p.Angle, &p.Radius, &color)
			p.Color = uint32(color)
			return p, err
		})
		if err != nil {
			return fmt.Errorf("planets: %w", err)
		}

		rows, _ = tx.Query(ctx,
			`SELECT x, y, size, color FROM snapshot_garbage WHERE snapshot_name = $1 ORDER BY idx`, name)
		s.Garbage, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (GarbageState, error) {
			var g GarbageState
			var color int64
			err := row.Scan(&g.X, &g.Y, &g.Size, &color)
			g.Color = uint32(color)
			return g, err
		})
		if err != nil {
			return fmt.Errorf("garbage: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrSnapshotNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return s, nil
}

// Delete removes the named snapshot; deleting a missing one is not an error.
func (r *SnapshotRepo) Delete(ctx context.Context, name string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM snapshots WHERE name = $1`, name)
	return err
}
