package ecs

import "testing"

func TestStaleHandleDetected(t *testing.T) {
	w := NewWorld()
	store := NewDenseStore[int](4)
	w.Registry().Register(store)

	a := w.CreateEntity()
	store.Set(a, 1)
	w.MarkForDestruction(a)
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Fatalf("flushed %d, want 1", n)
	}

	b := w.CreateEntity()
	store.Set(b, 2)
	if a.Index() != b.Index() {
		t.Fatalf("expected slot reuse: a=%d b=%d", a.Index(), b.Index())
	}
	if w.Alive(a) {
		t.Fatal("stale handle reported alive")
	}
	if _, ok := store.Get(a); ok {
		t.Fatal("stale handle resolved to the new occupant")
	}
	store.Remove(a)
	if v, ok := store.Get(b); !ok || *v != 2 {
		t.Fatalf("removing stale handle disturbed live component: %v %v", v, ok)
	}
}

func TestDenseStoreSwapRemoveKeepsIndex(t *testing.T) {
	p := NewEntityPool()
	s := NewDenseStore[string](4)
	ids := []EntityID{p.Create(), p.Create(), p.Create()}
	for i, id := range ids {
		s.Set(id, string(rune('a'+i)))
	}
	s.Remove(ids[0])
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
	for i, id := range ids[1:] {
		v, ok := s.Get(id)
		if !ok || *v != string(rune('b'+i)) {
			t.Errorf("id %d: got %v %v", id, v, ok)
		}
	}
	seen := 0
	s.Each(func(EntityID, *string) { seen++ })
	if seen != 2 {
		t.Errorf("Each visited %d", seen)
	}
}

func TestDuplicateDestroyIgnored(t *testing.T) {
	w := NewWorld()
	store := NewDenseStore[int](2)
	w.Registry().Register(store)
	id := w.CreateEntity()
	store.Set(id, 7)
	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Fatalf("destroyed %d, want 1", n)
	}
	if w.Pool().Live() != 0 || store.Len() != 0 {
		t.Fatalf("live=%d len=%d", w.Pool().Live(), store.Len())
	}
	if w.Pending() != 0 {
		t.Fatal("queue not cleared")
	}
}

func TestZeroIDNeverAlive(t *testing.T) {
	p := NewEntityPool()
	p.Create()
	if p.Alive(0) {
		t.Fatal("zero EntityID must not be alive")
	}
}
