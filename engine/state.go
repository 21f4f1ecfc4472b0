package engine

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
)

// DefaultTickInterval is the gravity period used when none is configured.
const DefaultTickInterval = 100 * time.Millisecond

// Phase is the loop's current state.
type Phase int

const (
	// Falling is the normal state: one active piece under gravity.
	Falling Phase = iota
	// Locking lasts from the tick that detects a collision until the frame's
	// commands are flushed and a new piece is active.
	Locking
)

func (p Phase) String() string {
	if p == Locking {
		return "locking"
	}
	return "falling"
}

// State is all mutable game data. It is owned by a single goroutine.
type State struct {
	Field    *Field
	Active   Piece
	Phase    Phase
	Quit     bool
	Elapsed  time.Duration
	Interval time.Duration
	Spawn    Position

	Ticks  int64
	Locked int64

	spawned *intmap.Map[Kind, int64]
	rng     *rand.Rand
	logger  *log.Logger
}

func newState(rng *rand.Rand, interval time.Duration, spawn Position, logger *log.Logger) *State {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &State{
		Field:    NewField(),
		Interval: interval,
		Spawn:    spawn,
		spawned:  intmap.New[Kind, int64](int(kindCount)),
		rng:      rng,
		logger:   logger,
	}
	s.spawnPiece()
	return s
}

// SpawnCount returns how many pieces of kind have been spawned so far.
func (s *State) SpawnCount(kind Kind) int64 {
	n, _ := s.spawned.Get(kind)
	return n
}

// spawnPiece replaces the active piece with a fresh random one.
func (s *State) spawnPiece() {
	s.Active = RandomPiece(s.rng, s.Spawn)
	n, _ := s.spawned.Get(s.Active.Kind)
	s.spawned.Put(s.Active.Kind, n+1)
	s.Phase = Falling
	s.logger.Debug("spawned piece", "kind", s.Active.Kind, "x", s.Active.Position.X, "y", s.Active.Position.Y)
}

// lock merges piece into the field.
func (s *State) lock(piece Piece) {
	written := s.Field.Place(piece)
	s.Locked++
	s.logger.Debug("locked piece", "kind", piece.Kind, "x", piece.Position.X, "y", piece.Position.Y, "cells", written)
}
