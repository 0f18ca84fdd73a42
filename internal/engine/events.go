// Probabilistic narrative event scheduling. The producer call is the only
// latency-bearing operation in the system, so it runs fire-and-forget in
// its own goroutine: at most one request is ever outstanding, and a
// failure simply means no event this cycle.
package engine

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/madangkara/internal/game"
)

// Producer supplies narrative events. A (nil, nil) return means no event
// was available — disabled configuration and soft failures look the same.
type Producer interface {
	Enabled() bool
	Generate() (*game.Event, error)
}

type scheduler struct {
	engine   *Engine
	producer Producer
	interval time.Duration
	chance   float64

	nextRoll time.Time
	inFlight atomic.Bool
}

func newScheduler(e *Engine, p Producer, interval time.Duration, chance float64) *scheduler {
	return &scheduler{
		engine:   e,
		producer: p,
		interval: interval,
		chance:   chance,
		nextRoll: time.Now().Add(interval),
	}
}

// maybeRequest is called once per tick from the run loop. When the roll
// window elapses it rolls the dice and, on a hit, launches a request —
// unless one is already in flight.
func (s *scheduler) maybeRequest() {
	if s.producer == nil || !s.producer.Enabled() {
		return
	}
	if time.Now().Before(s.nextRoll) {
		return
	}
	s.nextRoll = time.Now().Add(s.interval)

	if rand.Float64() >= s.chance {
		return
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return
	}

	requestID := uuid.NewString()
	slog.Debug("requesting narrative event", "request_id", requestID)

	go func() {
		defer s.inFlight.Store(false)

		ev, err := s.producer.Generate()
		if err != nil {
			slog.Warn("narrative event failed", "request_id", requestID, "error", err)
			return
		}
		if ev == nil {
			slog.Debug("no narrative event this cycle", "request_id", requestID)
			return
		}
		if !s.engine.offerEvent(ev) {
			slog.Debug("narrative event dropped, one already pending", "request_id", requestID)
			return
		}
		slog.Info("narrative event", "request_id", requestID, "title", ev.Title)
	}()
}
