package persist

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orbitsweep/orbitsweep/internal/world"
	"go.uber.org/zap"
)

func TestFileStoreRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	want := &Snapshot{
		Version: SnapshotVersion,
		Tick:    1234,
		Score:   world.Score{Points: 7, Collected: 5, Lost: 1},
		Craft:   CraftState{X: 1, Y: 2, VX: 3, VY: 4, Heading: 270, Alive: true},
		Planets: []PlanetState{{OrbitRadius: 30000, AngularSpeed: 0.03, Angle: 1.5, Radius: 900, Color: 0x11223344}},
		Garbage: []GarbageState{{X: 10, Y: 20, Size: 12, Color: 0xffffffff}, {X: -5, Y: 6, Size: 7}},
		SavedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	ctx := context.Background()
	if err := fs.Save(ctx, "slot1", want); err != nil {
		t.Fatal(err)
	}
	got, err := fs.Load(ctx, "slot1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Tick != want.Tick || got.Score != want.Score || got.Craft != want.Craft {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Planets) != 1 || got.Planets[0] != want.Planets[0] {
		t.Fatalf("planets %+v", got.Planets)
	}
	if len(got.Garbage) != 2 || got.Garbage[1] != want.Garbage[1] {
		t.Fatalf("garbage %+v", got.Garbage)
	}
	if !got.SavedAt.Equal(want.SavedAt) {
		t.Fatalf("saved_at %v", got.SavedAt)
	}
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fs.Load(context.Background(), "none"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("missing snapshot: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.msgpack"), []byte{0xc1}, 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = fs.Load(context.Background(), "bad")
	if err == nil || errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("corrupt snapshot must be a distinct error, got %v", err)
	}
	if err := fs.Save(context.Background(), "../escape", &Snapshot{}); err == nil {
		t.Fatal("path traversal accepted")
	}
}

func TestPackColor(t *testing.T) {
	c := world.Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}
	if v := PackColor(c); v != 0x12345678 || UnpackColor(v) != c {
		t.Fatalf("pack %x", v)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Save(ctx, "done", &Snapshot{Version: SnapshotVersion}); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "done"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load(ctx, "done"); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("after delete: %v", err)
	}
	if err := store.Delete(ctx, "done"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := store.Delete(ctx, "../x"); err == nil {
		t.Fatal("path outside the store accepted")
	}
}
