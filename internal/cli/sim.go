package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"github.com/spf13/cobra"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/internal/config"
)

type simOptions struct {
	Frames       int
	Step         time.Duration
	RotateChance float64
	MoveChance   float64
}

func newSimCmd() *cobra.Command {
	opts := simOptions{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the engine headless with scripted input and print a report",
		Long: `sim steps the engine with a fixed frame delta and random rotate/move
input drawn from the configured seed. When a freshly spawned piece overlaps
the stack the round ends and a new field is started.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg, err := configFromContext(ctx)
			if err != nil {
				return err
			}
			if opts.Frames <= 0 || opts.Step <= 0 {
				return fmt.Errorf("%w: frames and step must be positive", config.ErrInvalid)
			}

			logger.Info("running simulation", "frames", opts.Frames, "step", opts.Step)
			report, err := simulate(ctx, cfg, opts, logger)
			if err != nil {
				return err
			}
			logger.Info("simulation finished", "rounds", report.Rounds, "locked", report.Locked)

			return report.Generate(cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&opts.Frames, "frames", 6000, "number of frames to run")
	cmd.Flags().DurationVar(&opts.Step, "step", 16*time.Millisecond, "simulated time per frame")
	cmd.Flags().Float64Var(&opts.RotateChance, "rotate", 0.05, "chance of a rotate event per frame")
	cmd.Flags().Float64Var(&opts.MoveChance, "move", 0.05, "chance of a move event per frame")

	return cmd
}

// simulate runs opts.Frames frames, starting a new engine each time the
// stack reaches the spawn point.
func simulate(ctx context.Context, cfg *config.Config, opts simOptions, logger *log.Logger) (*Report, error) {
	report := &Report{
		Frames:       opts.Frames,
		Step:         opts.Step,
		TickInterval: cfg.TickInterval,
		Seed:         cfg.Seed,
		Collision:    cfg.Collision,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0, opts.Frames),
		},
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	input := rand.New(rand.NewPCG(seed, seed+1))

	newRound := func(round int) *engine.Engine {
		engineOpts := cfg.EngineOptions(logger)
		if cfg.Seed != 0 {
			engineOpts = append(engineOpts, engine.WithSeed(cfg.Seed+uint64(round)))
		}
		return engine.New(engineOpts...)
	}

	totals := newRoundTotals()
	e := newRound(0)

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	for i := 0; i < opts.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		events := scriptedEvents(input, opts)
		locked := e.State().Locked

		updateStart := time.Now()
		e.Step(opts.Step, events...)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.FramesRun++

		if e.State().Locked > locked && toppedOut(e) {
			logger.Debug("round over", "round", report.Rounds, "locked", e.State().Locked, "filled", e.Field().FilledCount())
			totals.add(e)
			report.Rounds++
			e = newRound(report.Rounds)
		}
	}
	totals.add(e)

	report.TotalTime = time.Since(start)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Ticks = totals.ticks
	report.Locked = totals.locked
	report.Spawned = totals.spawned()
	report.Systems = totals.systemStats()
	return report, nil
}

func scriptedEvents(r *rand.Rand, opts simOptions) []engine.Event {
	var events []engine.Event
	if r.Float64() < opts.RotateChance {
		events = append(events, engine.EventRotate)
	}
	if r.Float64() < opts.MoveChance {
		if r.IntN(2) == 0 {
			events = append(events, engine.EventMoveLeft)
		} else {
			events = append(events, engine.EventMoveRight)
		}
	}
	return events
}

// toppedOut reports whether the freshly spawned piece already overlaps the
// stack.
func toppedOut(e *engine.Engine) bool {
	active := e.Active()
	return e.Field().Overlaps(&active)
}

// roundTotals sums engine counters over every round of a simulation.
type roundTotals struct {
	ticks   int64
	locked  int64
	kinds   *intmap.Map[engine.Kind, int64]
	systems []engine.SystemStats
}

func newRoundTotals() *roundTotals {
	return &roundTotals{kinds: intmap.New[engine.Kind, int64](len(engine.Kinds))}
}

func (t *roundTotals) add(e *engine.Engine) {
	state := e.State()
	t.ticks += state.Ticks
	t.locked += state.Locked
	for _, kind := range engine.Kinds {
		n, _ := t.kinds.Get(kind)
		t.kinds.Put(kind, n+state.SpawnCount(kind))
	}

	stats := e.Stats()
	if t.systems == nil {
		t.systems = make([]engine.SystemStats, len(stats.Systems))
		for i, s := range stats.Systems {
			t.systems[i] = engine.SystemStats{Name: s.Name}
		}
	}
	for i, s := range stats.Systems {
		sum := &t.systems[i]
		sum.ExecutionCount += s.ExecutionCount
		sum.TotalDuration += s.TotalDuration
		sum.LastDuration = s.LastDuration
		if s.ExecutionCount > 0 && (sum.MinDuration == 0 || s.MinDuration < sum.MinDuration) {
			sum.MinDuration = s.MinDuration
		}
		if s.MaxDuration > sum.MaxDuration {
			sum.MaxDuration = s.MaxDuration
		}
	}
}

func (t *roundTotals) spawned() []KindCount {
	counts := make([]KindCount, 0, len(engine.Kinds))
	for _, kind := range engine.Kinds {
		n, _ := t.kinds.Get(kind)
		counts = append(counts, KindCount{Kind: kind, Count: n})
	}
	return counts
}

func (t *roundTotals) systemStats() []engine.SystemStats {
	for i := range t.systems {
		if n := t.systems[i].ExecutionCount; n > 0 {
			t.systems[i].AvgDuration = t.systems[i].TotalDuration / time.Duration(n)
		}
	}
	return t.systems
}
