package inbox

import (
	log "github.com/sirupsen/logrus"

	"formidamail/internal/model"
)

// Op names the mutation carried by a Change.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUndo   Op = "undo"
)

// Change is published to subscribers after every successful mutation.
type Change struct {
	Op     Op
	Record model.EmailRecord
	Index  int // position the record was added at, removed from or restored to
	State  model.InboxState
}

// Store owns the ordered email collection and a single-slot undo of the
// last removal.
//
// A Store is not safe for concurrent use. Every call, including the
// driver's tick closures, must run on the goroutine that owns the session.
type Store struct {
	emails  []model.EmailRecord
	removed *model.RemovedInfo
	log     log.FieldLogger

	subs   map[int]func(Change)
	order  []int
	nextID int
}

// NewStore builds a store seeded with the given records. Duplicate seed ids
// are dropped, keeping the first occurrence.
func NewStore(seed []model.EmailRecord, logger log.FieldLogger) *Store {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Store{
		emails: make([]model.EmailRecord, 0, len(seed)),
		log:    logger,
		subs:   make(map[int]func(Change)),
	}
	for _, rec := range seed {
		if s.indexOf(rec.ID) >= 0 {
			s.log.WithField("id", rec.ID).Warn("seed_duplicate_id")
			continue
		}
		s.emails = append(s.emails, rec)
	}
	return s
}

func (s *Store) indexOf(id string) int {
	for i, e := range s.emails {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Len is the number of emails currently held.
func (s *Store) Len() int {
	return len(s.emails)
}

// Add appends rec to the end of the collection. The pending removal, if
// any, is left alone. A record whose id is already present is rejected.
func (s *Store) Add(rec model.EmailRecord) bool {
	if s.indexOf(rec.ID) >= 0 {
		s.log.WithField("id", rec.ID).Warn("add_duplicate_id")
		return false
	}
	s.emails = append(s.emails, rec)
	s.log.WithFields(log.Fields{"id": rec.ID, "count": len(s.emails)}).Debug("email_added")
	s.publish(OpAdd, rec, len(s.emails)-1)
	return true
}

// Remove deletes the email with the given id and remembers it for Undo,
// replacing whatever removal was pending before. An unknown id is logged
// and leaves the store untouched.
func (s *Store) Remove(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		s.log.WithField("id", id).Warn("remove_not_found")
		return false
	}

	rec := s.emails[idx]
	if s.removed != nil {
		s.log.WithFields(log.Fields{
			"id":        id,
			"discarded": s.removed.Record.ID,
		}).Debug("undo_slot_overwritten")
	}

	s.emails = append(s.emails[:idx:idx], s.emails[idx+1:]...)
	s.removed = &model.RemovedInfo{Record: rec, Index: idx}
	s.log.WithFields(log.Fields{"id": id, "index": idx, "count": len(s.emails)}).Debug("email_removed")
	s.publish(OpRemove, rec, idx)
	return true
}

// Undo puts the last removed email back at the position it was removed
// from and clears the undo slot.
func (s *Store) Undo() bool {
	if s.removed == nil {
		s.log.Warn("undo_nothing_pending")
		return false
	}

	info := *s.removed
	s.removed = nil

	if s.indexOf(info.Record.ID) >= 0 {
		s.log.WithField("id", info.Record.ID).Warn("undo_conflict")
		return false
	}

	idx := info.Index
	if idx > len(s.emails) {
		idx = len(s.emails)
	}
	if idx < 0 {
		idx = 0
	}

	emails := make([]model.EmailRecord, 0, len(s.emails)+1)
	emails = append(emails, s.emails[:idx]...)
	emails = append(emails, info.Record)
	emails = append(emails, s.emails[idx:]...)
	s.emails = emails

	s.log.WithFields(log.Fields{"id": info.Record.ID, "index": idx, "count": len(s.emails)}).Debug("email_restored")
	s.publish(OpUndo, info.Record, idx)
	return true
}

// Snapshot returns a copy of the store's state that shares no memory with it.
func (s *Store) Snapshot() model.InboxState {
	st := model.InboxState{
		Emails: make([]model.EmailRecord, len(s.emails)),
	}
	copy(st.Emails, s.emails)
	if s.removed != nil {
		info := *s.removed
		st.Removed = &info
	}
	return st
}

// Subscribe registers fn to be called after every successful mutation.
// Subscribers run synchronously, in registration order. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return func() {
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *Store) publish(op Op, rec model.EmailRecord, idx int) {
	if len(s.order) == 0 {
		return
	}
	ids := append([]int(nil), s.order...)
	for _, id := range ids {
		fn, ok := s.subs[id]
		if !ok {
			continue
		}
		fn(Change{Op: op, Record: rec, Index: idx, State: s.Snapshot()})
	}
}
