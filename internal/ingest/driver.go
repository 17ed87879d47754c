package ingest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"formidamail/internal/model"
)

const (
	DefaultCapacity = 5
	DefaultInterval = 4 * time.Second
)

// Store is the part of the inbox store the driver feeds.
type Store interface {
	Len() int
	Add(rec model.EmailRecord) bool
}

// Generator produces the records the driver adds.
type Generator interface {
	Generate(overrides model.EmailRecord) model.EmailRecord
}

// Dispatcher runs task on the goroutine that owns the store.
type Dispatcher func(task func())

type Config struct {
	Store     Store
	Generator Generator
	Capacity  int
	Interval  time.Duration

	// Dispatch hands each tick to the store's owner. When nil the tick runs
	// on the driver's own goroutine, which is only safe if nothing else
	// touches the store.
	Dispatch Dispatcher
	Logger   log.FieldLogger
}

type State int32

const (
	Active State = iota
	Stopped
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Driver periodically tops up a store with generated records until it
// holds Capacity emails. A driver is started once and stopped once; it
// cannot be restarted.
type Driver struct {
	cfg    Config
	state  atomic.Int32
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Start launches a driver in the Active state. The driver stops when Stop
// is called or ctx is cancelled, whichever happens first.
func Start(ctx context.Context, cfg Config) *Driver {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}
	if cfg.Dispatch == nil {
		cfg.Dispatch = func(task func()) { task() }
	}

	ctx, cancel := context.WithCancel(ctx)
	d := &Driver{
		cfg:    cfg,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	d.state.Store(int32(Active))

	cfg.Logger.WithFields(log.Fields{
		"capacity": cfg.Capacity,
		"interval": cfg.Interval,
	}).Debug("driver_started")

	go d.run(ctx)
	return d
}

func (d *Driver) run(ctx context.Context) {
	defer close(d.done)
	defer d.markStopped()

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if d.State() == Stopped {
				return
			}
			d.cfg.Dispatch(func() { d.Tick() })
		}
	}
}

func (d *Driver) markStopped() {
	d.once.Do(func() {
		d.state.Store(int32(Stopped))
		d.cfg.Logger.Debug("driver_stopped")
	})
}

// Stop cancels the timer and waits for the driver goroutine to exit. Ticks
// that were already handed to the dispatcher become no-ops. Calling Stop
// more than once is harmless.
func (d *Driver) Stop() {
	d.markStopped()
	d.cancel()
	<-d.done
}

func (d *Driver) State() State {
	return State(d.state.Load())
}

// Tick performs one ingestion step on the calling goroutine and reports
// whether a record was added.
func (d *Driver) Tick() bool {
	if d.State() == Stopped {
		return false
	}
	if d.cfg.Store.Len() >= d.cfg.Capacity {
		return false
	}
	rec := d.cfg.Generator.Generate(model.EmailRecord{})
	if !d.cfg.Store.Add(rec) {
		return false
	}
	d.cfg.Logger.WithField("id", rec.ID).Trace("driver_ingested")
	return true
}
