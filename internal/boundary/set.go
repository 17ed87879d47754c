package boundary

import (
	log "github.com/sirupsen/logrus"
)

// Set keeps one boundary per rendered item, keyed by item id.
type Set struct {
	items map[string]*Boundary
	log   log.FieldLogger
}

func NewSet(logger log.FieldLogger) *Set {
	return &Set{items: make(map[string]*Boundary), log: logger}
}

// Get returns the boundary for id, creating it with onClear on first use.
func (s *Set) Get(id string, onClear func()) *Boundary {
	b, ok := s.items[id]
	if !ok {
		b = New(onClear, s.log)
		s.items[id] = b
	}
	return b
}

// Prune forgets boundaries whose id is not in keep.
func (s *Set) Prune(keep []string) {
	live := make(map[string]bool, len(keep))
	for _, id := range keep {
		live[id] = true
	}
	for id := range s.items {
		if !live[id] {
			delete(s.items, id)
		}
	}
}

// Failed returns the ids of the failed boundaries among ids, in the given
// order.
func (s *Set) Failed(ids []string) []string {
	var out []string
	for _, id := range ids {
		if b, ok := s.items[id]; ok && b.Failed() {
			out = append(out, id)
		}
	}
	return out
}

// Dismiss dismisses the boundary for id if it exists.
func (s *Set) Dismiss(id string) {
	if b, ok := s.items[id]; ok {
		b.Dismiss()
	}
}
