package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// DenseStore keeps components packed in a slice for cache-friendly, ordered
// iteration. Removal swaps the last element into the hole, so iteration order
// is insertion order until the first removal.
type DenseStore[T any] struct {
	ids    []EntityID
	data   []T
	sparse map[uint32]int // slot index → dense position
}

func NewDenseStore[T any](capacity int) *DenseStore[T] {
	return &DenseStore[T]{
		ids:    make([]EntityID, 0, capacity),
		data:   make([]T, 0, capacity),
		sparse: make(map[uint32]int, capacity),
	}
}

// Set inserts or replaces the component for id.
func (s *DenseStore[T]) Set(id EntityID, c T) {
	if pos, ok := s.sparse[id.Index()]; ok {
		s.ids[pos] = id
		s.data[pos] = c
		return
	}
	s.sparse[id.Index()] = len(s.data)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

// Get returns a pointer into the store. The pointer is invalidated by the
// next Set or Remove.
func (s *DenseStore[T]) Get(id EntityID) (*T, bool) {
	pos, ok := s.sparse[id.Index()]
	if !ok || s.ids[pos] != id {
		return nil, false
	}
	return &s.data[pos], true
}

func (s *DenseStore[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

// Remove deletes id's component. A stale handle whose slot was reused does
// not touch the newer occupant.
func (s *DenseStore[T]) Remove(id EntityID) {
	pos, ok := s.sparse[id.Index()]
	if !ok || s.ids[pos] != id {
		return
	}
	last := len(s.data) - 1
	if pos != last {
		s.ids[pos] = s.ids[last]
		s.data[pos] = s.data[last]
		s.sparse[s.ids[pos].Index()] = pos
	}
	var zero T
	s.data[last] = zero
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	delete(s.sparse, id.Index())
}

func (s *DenseStore[T]) Len() int { return len(s.data) }

// Each visits every component in dense order. fn must not add or remove.
func (s *DenseStore[T]) Each(fn func(EntityID, *T)) {
	for i := range s.data {
		fn(s.ids[i], &s.data[i])
	}
}

// Clear drops every component.
func (s *DenseStore[T]) Clear() {
	clear(s.sparse)
	clear(s.data)
	s.ids = s.ids[:0]
	s.data = s.data[:0]
}
