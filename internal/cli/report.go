package cli

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/engine"
)

// Report summarises a headless simulation run.
type Report struct {
	// Configuration
	Frames       int
	Step         time.Duration
	TickInterval time.Duration
	Seed         uint64
	Collision    string

	// Results
	FramesRun  int64
	Ticks      int64
	Locked     int64
	Rounds     int
	TotalTime  time.Duration
	UpdateTime Stats
	Spawned    []KindCount
	Systems    []engine.SystemStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// KindCount is how many pieces of one kind were spawned.
type KindCount struct {
	Kind  engine.Kind
	Count int64
}

// Stats holds min/max/avg over duration samples.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Blockfall Simulation Report

## Configuration
- **Frames:** {{.Frames}} x {{.Step}} (simulated {{simulated .Frames .Step}})
- **Tick Interval:** {{.TickInterval}}
- **Seed:** {{if .Seed}}{{.Seed}}{{else}}random{{end}}
- **Collision:** {{.Collision}}

## Results
- **Frames Run:** {{.FramesRun}}
- **Gravity Ticks:** {{.Ticks}}
- **Pieces Locked:** {{.Locked}}
- **Rounds:** {{.Rounds}}
- **Wall Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Pieces Spawned
{{range .Spawned}}- {{.Kind}}: {{.Count}}
{{end}}
## Systems
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"simulated": func(frames int, step time.Duration) string {
		return fmt.Sprint(time.Duration(frames) * step)
	},
}

// Generate writes the report as markdown to w.
func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
