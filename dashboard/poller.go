// Package dashboard keeps the admin dashboard's data fresh.
//
// A Poller fetches the five dashboard data sets concurrently, publishes them
// as one snapshot only when all five succeed, and repeats on a fixed
// interval until its context is cancelled.
package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"posadmin/models"
	"posadmin/store"
)

// DefaultInterval is the time between two fetch cycles.
const DefaultInterval = 30 * time.Second

// State is the poller's position in its Idle -> Loading -> Ready|Errored cycle.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Errored
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	}
	return "unknown"
}

// Fetcher reads the dashboard data sets. *api.Client implements it.
type Fetcher interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
	SalesChart(ctx context.Context) ([]models.SalesPoint, error)
	OrderBreakdown(ctx context.Context) ([]models.OrderTypeBreakdown, error)
	TopItems(ctx context.Context) ([]models.TopItem, error)
	RecentOrders(ctx context.Context) ([]models.RecentOrder, error)
}

// Options configures a Poller. The zero value is usable.
type Options struct {
	Interval time.Duration
	Logger   *log.Logger
	// OnUpdate is called after every settled cycle with the resulting state
	// and the published snapshot (nil if none has been published yet).
	OnUpdate func(State, *models.DashboardSnapshot)
	// OnError receives the error of every failed cycle.
	OnError func(error)
}

// Poller drives the dashboard fetch cycle.
type Poller struct {
	fetcher  Fetcher
	store    store.Store
	interval time.Duration
	logger   *log.Logger
	onUpdate func(State, *models.DashboardSnapshot)
	onError  func(error)
	now      func() time.Time

	mu       sync.RWMutex
	state    State
	snapshot *models.DashboardSnapshot
	lastErr  error
	closed   bool
}

// NewPoller creates a Poller reading from f, gated on the session in s.
func NewPoller(f Fetcher, s store.Store, opts Options) *Poller {
	p := &Poller{
		fetcher:  f,
		store:    s,
		interval: opts.Interval,
		logger:   opts.Logger,
		onUpdate: opts.OnUpdate,
		onError:  opts.OnError,
		now:      time.Now,
	}
	if p.interval <= 0 {
		p.interval = DefaultInterval
	}
	if p.logger == nil {
		p.logger = log.Default()
	}
	return p
}

// Run fetches immediately and then on every interval until ctx is done.
// Without a valid session it returns at once, leaving the poller idle with
// no data. After Run returns no further state updates happen, even for a
// cycle that was in flight.
func (p *Poller) Run(ctx context.Context) error {
	if _, ok := p.store.Load(); !ok {
		p.mu.Lock()
		p.state = Idle
		p.mu.Unlock()
		return nil
	}

	p.mu.Lock()
	p.closed = false
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
	}()

	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.Refresh(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Refresh runs a single fetch cycle and publishes its outcome. A failed
// cycle keeps the previous snapshot. Nothing is published if ctx is done
// or the poller has been torn down by the time the cycle settles; the state
// then returns to what it was before the cycle started.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.closed || ctx.Err() != nil {
		p.mu.Unlock()
		return ctx.Err()
	}
	prev := p.state
	p.state = Loading
	p.mu.Unlock()

	snap, err := p.fetch(ctx)

	p.mu.Lock()
	if p.closed || ctx.Err() != nil {
		// The discarded cycle must not leave the poller looking busy.
		if p.state == Loading {
			p.state = prev
		}
		p.mu.Unlock()
		return ctx.Err()
	}
	if err != nil {
		p.state = Errored
		p.lastErr = err
	} else {
		p.state = Ready
		p.snapshot = snap
		p.lastErr = nil
	}
	state, published := p.state, p.snapshot
	p.mu.Unlock()

	if err != nil {
		p.logger.Printf("Failed to load dashboard data: %v", err)
		if p.onError != nil {
			p.onError(err)
		}
	}
	if p.onUpdate != nil {
		p.onUpdate(state, published)
	}
	return err
}

// fetch issues the five reads concurrently. The first failure cancels the
// others and fails the whole cycle.
func (p *Poller) fetch(ctx context.Context) (*models.DashboardSnapshot, error) {
	snap := &models.DashboardSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := p.fetcher.Stats(gctx)
		if err != nil {
			return err
		}
		snap.Stats = *stats
		return nil
	})
	g.Go(func() error {
		points, err := p.fetcher.SalesChart(gctx)
		snap.SalesChart = points
		return err
	})
	g.Go(func() error {
		breakdown, err := p.fetcher.OrderBreakdown(gctx)
		snap.OrderBreakdown = breakdown
		return err
	})
	g.Go(func() error {
		items, err := p.fetcher.TopItems(gctx)
		snap.TopItems = items
		return err
	})
	g.Go(func() error {
		orders, err := p.fetcher.RecentOrders(gctx)
		snap.RecentOrders = orders
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.FetchedAt = p.now()
	return snap, nil
}

// State returns the current state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Loading reports whether a cycle is in progress.
func (p *Poller) Loading() bool {
	return p.State() == Loading
}

// Snapshot returns the last published snapshot, or nil.
// The returned value must not be modified.
func (p *Poller) Snapshot() *models.DashboardSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Err returns the error of the last cycle, if it failed.
func (p *Poller) Err() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastErr
}
