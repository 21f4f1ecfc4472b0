// Package debugui provides a Dear ImGui overlay showing live engine state:
// frame timing, per-system execution statistics, the active piece and spawn
// counts per kind.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/blockfall/engine"
)

// Overlay renders the debug windows. Call Render between the backend's
// BeginFrame and EndFrame.
type Overlay struct {
	frames *frameHistory
}

// NewOverlay keeps frame times for the last historyFrames frames.
func NewOverlay(historyFrames int) *Overlay {
	return &Overlay{frames: newFrameHistory(historyFrames)}
}

// WantsKeyboard reports whether ImGui is consuming keyboard input, in which
// case game keys should be ignored this frame.
func WantsKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// Render draws the overlay for e after a frame that took dt.
func (o *Overlay) Render(e *engine.Engine, dt time.Duration) {
	o.frames.add(dt)

	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	state := e.State()
	active := e.Active()

	imgui.Text(fmt.Sprintf("Phase: %s", state.Phase))
	imgui.Text(fmt.Sprintf("Gravity ticks: %d (every %s)", state.Ticks, state.Interval))
	imgui.Text(fmt.Sprintf("Locked pieces: %d", state.Locked))
	imgui.Text(fmt.Sprintf("Filled cells: %d", e.Field().FilledCount()))
	imgui.Text(fmt.Sprintf("Active: %s at (%d, %d), alignment %d",
		active.Kind, active.Position.X, active.Position.Y, active.Shape.Alignment))

	avg := o.frames.average()
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps(avg)))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &o.frames.samples[0], int32(len(o.frames.samples)))

	if imgui.TreeNodeStr("Systems") {
		renderSystemTable(e.Stats())
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Spawned") {
		for _, kind := range engine.Kinds {
			imgui.BulletText(fmt.Sprintf("%s: %d", kind, state.SpawnCount(kind)))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func renderSystemTable(stats *engine.SchedulerStats) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Runs")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()

	for _, s := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(s.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
		imgui.TableNextColumn()
		imgui.Text(s.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.MaxDuration.String())
	}

	imgui.EndTable()
}

func fps(avgMillis float32) float32 {
	if avgMillis <= 0 {
		return 0
	}
	return 1000.0 / avgMillis
}
