// Package engine runs the real-time simulation loop. It owns the single
// mutable game state: the one-second tick and every user intent serialize
// on the engine's lock, so no caller ever observes a half-applied
// mutation. Observers (persistence, broadcast) see immutable clones.
package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/madangkara/internal/game"
)

var (
	// ErrNoPendingEvent is returned when a choice arrives with no event waiting.
	ErrNoPendingEvent = errors.New("no pending event")
	// ErrInvalidChoice is returned for an out-of-range event choice index.
	ErrInvalidChoice = errors.New("invalid event choice")
)

// statusEvery controls the periodic kingdom status log line.
const statusEvery = 60 * time.Second

// Engine drives the simulation forward in real time.
type Engine struct {
	Interval time.Duration // tick cadence (default 1 second)

	// OnChange runs after every state mutation with a deep copy of the new
	// state. It must not block for long and its failures are its own; the
	// mutation that triggered it has already committed.
	OnChange func(*game.State)

	// OnNotify receives user-visible notifications from the tick reducer
	// (quest completions, achievement unlocks).
	OnNotify func(game.Notification)

	mu      sync.Mutex
	catalog *game.Catalog
	state   *game.State
	pending *game.Event

	running  bool
	stopCh   chan struct{}
	stopOnce sync.Once

	events *scheduler
}

// New creates an engine around an existing state snapshot.
func New(catalog *game.Catalog, state *game.State) *Engine {
	return &Engine{
		Interval: time.Second,
		catalog:  catalog,
		state:    state,
		stopCh:   make(chan struct{}),
	}
}

// SetEventProducer wires a narrative event source. interval and chance
// control the probabilistic schedule; a nil or disabled producer leaves
// the feature off entirely.
func (e *Engine) SetEventProducer(p Producer, interval time.Duration, chance float64) {
	e.events = newScheduler(e, p, interval, chance)
}

// Run ticks the simulation until Stop is called. Blocks.
func (e *Engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	slog.Info("simulation started", "interval", e.Interval)

	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()
	lastStatus := time.Now()

	for {
		select {
		case <-e.stopCh:
			slog.Info("simulation stopped")
			return
		case <-ticker.C:
			e.Step()
			if e.events != nil {
				e.events.maybeRequest()
			}
			if time.Since(lastStatus) >= statusEvery {
				e.logStatus()
				lastStatus = time.Now()
			}
		}
	}
}

// Stop halts the loop. Safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
}

// Step advances the simulation by exactly one tick. Exported so tests can
// drive the engine without wall-clock time.
func (e *Engine) Step() {
	e.mu.Lock()
	notes := e.catalog.Advance(e.state)
	snapshot := e.state.Clone()
	e.mu.Unlock()

	for _, n := range notes {
		slog.Info("notification", "kind", n.Kind, "title", n.Title)
		if e.OnNotify != nil {
			e.OnNotify(n)
		}
	}
	e.changed(snapshot)
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() *game.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Bonuses returns the current research bonus set.
func (e *Engine) Bonuses() game.Bonuses {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.ComputeBonuses(e.state.ResearchedTechnologies)
}

// Catalog exposes the immutable data tables for read-only use.
func (e *Engine) Catalog() *game.Catalog {
	return e.catalog
}

// StartUpgrade validates and enqueues a construction order.
func (e *Engine) StartUpgrade(buildingID int) error {
	return e.mutate(func() error {
		return e.catalog.StartUpgrade(e.state, buildingID)
	})
}

// StartTraining validates and enqueues a training order.
func (e *Engine) StartTraining(buildingID int, troop game.TroopType, quantity int) error {
	return e.mutate(func() error {
		return e.catalog.StartTraining(e.state, buildingID, troop, quantity)
	})
}

// StartResearch validates and enqueues a research order.
func (e *Engine) StartResearch(techID string) error {
	return e.mutate(func() error {
		return e.catalog.StartResearch(e.state, techID)
	})
}

// Attack resolves a battle against a monster and applies the outcome.
func (e *Engine) Attack(monsterID string) (*game.BattleReport, error) {
	var report *game.BattleReport
	err := e.mutate(func() error {
		var innerErr error
		report, innerErr = e.catalog.Attack(e.state, monsterID)
		return innerErr
	})
	return report, err
}

// PendingEvent returns the narrative event awaiting a decision, or nil.
func (e *Engine) PendingEvent() *game.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// ChooseEvent applies one choice of the pending event and clears it.
func (e *Engine) ChooseEvent(choice int) error {
	return e.mutate(func() error {
		if e.pending == nil {
			return ErrNoPendingEvent
		}
		if choice < 0 || choice >= len(e.pending.Choices) {
			return ErrInvalidChoice
		}
		e.catalog.ResolveEvent(e.state, e.pending.Choices[choice].Consequences)
		e.pending = nil
		return nil
	})
}

// DismissEvent discards the pending event without consequences.
func (e *Engine) DismissEvent() {
	e.mu.Lock()
	e.pending = nil
	e.mu.Unlock()
}

// offerEvent parks a produced event for the player. If one is already
// waiting, the new event is dropped; the prompt is a single slot.
func (e *Engine) offerEvent(ev *game.Event) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending != nil {
		return false
	}
	e.pending = ev
	return true
}

// mutate runs fn under the engine lock and, on success, hands a snapshot
// to OnChange. Rejections leave the state untouched.
func (e *Engine) mutate(fn func() error) error {
	e.mu.Lock()
	err := fn()
	var snapshot *game.State
	if err == nil {
		snapshot = e.state.Clone()
	}
	e.mu.Unlock()

	if err != nil {
		return err
	}
	e.changed(snapshot)
	return nil
}

func (e *Engine) changed(snapshot *game.State) {
	if e.OnChange != nil {
		e.OnChange(snapshot)
	}
}

func (e *Engine) logStatus() {
	e.mu.Lock()
	s := e.state
	pangan := int64(s.Resources[game.ResourcePangan])
	kayu := int64(s.Resources[game.ResourceKayu])
	batu := int64(s.Resources[game.ResourceBatu])
	besi := int64(s.Resources[game.ResourceBijihBesi])
	emas := int64(s.Resources[game.ResourceEmas])
	timers := len(s.Timers)
	researched := len(s.ResearchedTechnologies)
	e.mu.Unlock()

	slog.Info("kingdom status",
		"pangan", humanize.Comma(pangan),
		"kayu", humanize.Comma(kayu),
		"batu", humanize.Comma(batu),
		"bijih_besi", humanize.Comma(besi),
		"emas", humanize.Comma(emas),
		"timers", timers,
		"researched", researched,
	)
}
