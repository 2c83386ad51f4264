// Package session owns a grid between searches and serialises access to it:
// one search at a time per grid, no edits while a search runs, and an
// asynchronous mode that hands trace events to another goroutine over a
// channel.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Starath/GridPath_BE/grid"
	"github.com/Starath/GridPath_BE/pathfinding"
)

type Session struct {
	busy atomic.Bool

	mu     sync.RWMutex
	grid   *grid.Grid
	source grid.TileSource
	delay  time.Duration
}

func New(g *grid.Grid) *Session {
	return &Session{grid: g}
}

// NewFromLayout builds the grid from layout and re-imports the layout's
// obstacles, start and goal before every search.
func NewFromLayout(layout *grid.Layout) *Session {
	return NewWithSource(grid.FromLayout(layout), layout)
}

// NewWithSource attaches src to an existing grid. Endpoints missing from src
// keep the grid's values.
func NewWithSource(g *grid.Grid, src grid.TileSource) *Session {
	return &Session{grid: g, source: src}
}

// SetStepDelay pauses after every event delivered by Start, for animation.
func (s *Session) SetStepDelay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

func (s *Session) Busy() bool { return s.busy.Load() }

func (s *Session) acquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return pathfinding.ErrSearchInProgress
	}
	return nil
}

func (s *Session) release() { s.busy.Store(false) }

// Update applies fn to the grid. It fails with ErrSearchInProgress instead of
// waiting when a search is active. An attached layout is detached, since the
// grid is now the source of truth.
func (s *Session) Update(fn func(g *grid.Grid) error) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = nil
	return fn(s.grid)
}

// Replace swaps in a new grid built from layout.
func (s *Session) Replace(layout *grid.Layout) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = grid.FromLayout(layout)
	s.source = layout
	return nil
}

// Snapshot returns a copy of the current grid.
func (s *Session) Snapshot() *grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

// prepare rebuilds obstacles and endpoints from the attached layout and
// validates them. Must be called with busy held.
func (s *Session) prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source != nil {
		s.grid.ImportObstacles(s.source)
		s.grid.ImportEndpoints(s.source)
	}
	if err := s.grid.Validate(); err != nil {
		return fmt.Errorf("%w: %w", pathfinding.ErrInvalidConfig, err)
	}
	return nil
}

func (s *Session) search(ctx context.Context, strategy pathfinding.Strategy, reporter pathfinding.Reporter) (*pathfinding.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	started := time.Now()
	log.Printf("[INFO] %s search started: %s -> %s on %dx%d grid (%d obstacles)",
		strategy.Algorithm(), s.grid.Start, s.grid.Goal, s.grid.Width, s.grid.Height, s.grid.ObstacleCount())
	result, err := pathfinding.Search(ctx, s.grid, strategy, reporter)
	if err != nil {
		log.Printf("[WARN] %s search stopped after %s: %v", strategy.Algorithm(), time.Since(started), err)
		return result, err
	}
	log.Printf("[INFO] %s search finished in %s (found: %t, visited: %d)",
		strategy.Algorithm(), time.Since(started), result.Found, result.NodesVisited)
	return result, nil
}

// Run searches synchronously, sending events to reporter on the calling
// goroutine.
func (s *Session) Run(ctx context.Context, algorithm string, reporter pathfinding.Reporter) (*pathfinding.Result, error) {
	strategy, err := ByName(algorithm)
	if err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	if err := s.prepare(); err != nil {
		return nil, err
	}
	return s.search(ctx, strategy, reporter)
}

// Run is a search executing in the background.
type Run struct {
	events chan pathfinding.Event
	done   chan struct{}
	cancel context.CancelFunc

	result *pathfinding.Result
	err    error
}

// Events delivers trace events in order and is closed when the search ends.
// The consumer must drain it or call Cancel.
func (r *Run) Events() <-chan pathfinding.Event { return r.events }

// Wait blocks until the search ends.
func (r *Run) Wait() (*pathfinding.Result, error) {
	<-r.done
	return r.result, r.err
}

// Cancel asks the search to stop at its next frontier pop.
func (r *Run) Cancel() { r.cancel() }

// Done is closed once the result is available.
func (r *Run) Done() <-chan struct{} { return r.done }

type channelReporter struct {
	ctx    context.Context
	events chan<- pathfinding.Event
	delay  time.Duration
}

func (c channelReporter) Report(e pathfinding.Event) {
	select {
	case c.events <- e:
	case <-c.ctx.Done():
		return
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-c.ctx.Done():
		}
	}
}

// Start launches the search on a background goroutine. Busy sessions and
// invalid configurations are rejected before anything is started.
func (s *Session) Start(ctx context.Context, algorithm string, buffer int) (*Run, error) {
	strategy, err := ByName(algorithm)
	if err != nil {
		return nil, err
	}
	if err := s.acquire(); err != nil {
		return nil, err
	}
	if err := s.prepare(); err != nil {
		s.release()
		return nil, err
	}

	s.mu.RLock()
	delay := s.delay
	s.mu.RUnlock()

	ctx, cancel := context.WithCancel(ctx)
	run := &Run{
		events: make(chan pathfinding.Event, buffer),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer close(run.done)
		defer cancel()
		defer s.release()
		run.result, run.err = s.search(ctx, strategy, channelReporter{ctx: ctx, events: run.events, delay: delay})
		close(run.events)
	}()
	return run, nil
}
