package app

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"formidamail/internal/inbox"
	"formidamail/internal/ingest"
	"formidamail/internal/journal"
	"formidamail/internal/mockdata"
	"formidamail/internal/model"
	"formidamail/internal/session"
)

// Journal records session activity.
type Journal interface {
	Append(ctx context.Context, e journal.Entry) (int64, error)
}

type Config struct {
	Authenticated bool
	Seed          []model.EmailRecord // nil means model.Seed()
	Capacity      int
	Interval      time.Duration

	Dispatch  ingest.Dispatcher
	Generator ingest.Generator // defaults to a randomly seeded mockdata generator
	Logger    log.FieldLogger
	Journal   Journal
}

// Scope owns the state of one mounted inbox view: its store, its session
// flag and the driver feeding the store. Scopes share nothing.
type Scope struct {
	Store  *inbox.Store
	Auth   *session.Flag
	Driver *ingest.Driver

	once sync.Once
	log  log.FieldLogger
}

// Open builds a scope and starts its driver. The caller must Close it,
// typically with defer, so the driver is stopped on every exit path.
func Open(ctx context.Context, cfg Config) *Scope {
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	seed := cfg.Seed
	if seed == nil {
		seed = model.Seed()
	}
	gen := cfg.Generator
	if gen == nil {
		gen = mockdata.New(0)
	}

	s := &Scope{
		Store: inbox.NewStore(seed, logger.WithField("component", "store")),
		Auth:  session.NewFlag(cfg.Authenticated, logger.WithField("component", "session")),
		log:   logger,
	}
	if cfg.Journal != nil {
		s.attachJournal(ctx, cfg.Journal)
	}

	s.Driver = ingest.Start(ctx, ingest.Config{
		Store:     s.Store,
		Generator: gen,
		Capacity:  cfg.Capacity,
		Interval:  cfg.Interval,
		Dispatch:  cfg.Dispatch,
		Logger:    logger.WithField("component", "driver"),
	})
	return s
}

func (s *Scope) attachJournal(ctx context.Context, j Journal) {
	write := func(e journal.Entry) {
		if _, err := j.Append(ctx, e); err != nil {
			s.log.WithError(err).WithField("op", e.Op).Error("journal_append_failed")
		}
	}

	s.Store.Subscribe(func(c inbox.Change) {
		write(journal.Entry{
			Op:            string(c.Op),
			EmailID:       c.Record.ID,
			Index:         c.Index,
			Count:         len(c.State.Emails),
			Authenticated: s.Auth.IsAuthenticated(),
		})
	})
	s.Auth.Subscribe(func(authenticated bool) {
		op := "logout"
		if authenticated {
			op = "login"
		}
		write(journal.Entry{
			Op:            op,
			Count:         s.Store.Len(),
			Authenticated: authenticated,
		})
	})
}

// Close stops the driver. It is safe to call more than once.
func (s *Scope) Close() {
	s.once.Do(func() {
		s.Driver.Stop()
		s.log.Debug("scope_closed")
	})
}
