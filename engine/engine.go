// Package engine implements the game state of a falling-block puzzle: piece
// shapes and their rotation, the 10x20 playing field with its collision and
// lock-in rules, and the fixed-interval gravity loop that drives them.
//
// The loop is organised as an ordered pipeline of systems run by a
// Scheduler once per frame. Each frame receives the elapsed wall-clock time
// and the input events polled by the frontend; structural changes (locking
// a piece, spawning the next) are queued on the frame's Commands and applied
// after every system has run.
//
// Everything here is single-threaded. A frontend calls Engine.Step from its
// own frame callback, or hands control to Engine.Run for a ticker-driven
// loop.
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
)

type options struct {
	seed       uint64
	seeded     bool
	interval   time.Duration
	spawn      Position
	logger     *log.Logger
	mode       CollisionMode
	allowMoves bool
}

// Option configures an Engine.
type Option func(*options)

// WithSeed makes piece selection deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithTickInterval sets the gravity period. Non-positive values are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithSpawn sets where new pieces appear.
func WithSpawn(pos Position) Option {
	return func(o *options) {
		o.spawn = pos
	}
}

// WithLogger sets the logger used for spawn and lock events.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCollisionMode selects edge or footprint collision.
func WithCollisionMode(mode CollisionMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithHorizontalMoves enables the move-left/right events.
func WithHorizontalMoves(enabled bool) Option {
	return func(o *options) {
		o.allowMoves = enabled
	}
}

// Engine owns the game state and the system pipeline that advances it.
type Engine struct {
	state     *State
	scheduler *Scheduler
}

// New creates an engine with an empty field and a freshly spawned piece.
func New(opts ...Option) *Engine {
	o := options{
		interval: DefaultTickInterval,
		spawn:    DefaultSpawn,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var rng *rand.Rand
	if o.seeded {
		rng = rand.New(rand.NewPCG(o.seed, o.seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	state := newState(rng, o.interval, o.spawn, o.logger)
	state.Field.SetCollisionMode(o.mode)

	scheduler := NewScheduler(state)
	scheduler.Register(&InputSystem{AllowMoves: o.allowMoves})
	scheduler.Register(&GravitySystem{})

	return &Engine{
		state:     state,
		scheduler: scheduler,
	}
}

// Step advances one frame by dt after applying events. It returns true once
// a quit event has been processed.
func (e *Engine) Step(dt time.Duration, events ...Event) bool {
	if e.state.Quit {
		return true
	}
	e.scheduler.Once(dt, events...)
	return e.state.Quit
}

// Run drives frames from a ticker until ctx is done or src delivers a quit
// event. It returns ctx.Err() when stopped by the context.
func (e *Engine) Run(ctx context.Context, interval time.Duration, src EventSource) error {
	return e.scheduler.Run(ctx, interval, src)
}

// Field returns the playing field. Callers must not mutate it.
func (e *Engine) Field() *Field {
	return e.state.Field
}

// Active returns a copy of the falling piece.
func (e *Engine) Active() Piece {
	return e.state.Active.Copy()
}

// State exposes the full game state for inspection.
func (e *Engine) State() *State {
	return e.state
}

// Stats returns per-system execution statistics.
func (e *Engine) Stats() *SchedulerStats {
	return e.scheduler.Stats()
}

// Quit reports whether the engine has stopped.
func (e *Engine) Quit() bool {
	return e.state.Quit
}
