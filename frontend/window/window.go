// Package window runs the engine inside an Ebiten window: it polls the
// keyboard once per frame, feeds wall-clock deltas to the engine and draws
// the field, its border and the active piece as outlined blocks.
package window

import (
	"context"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kamstrup/intmap"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/engine/debugui"
	debugui_ebiten "github.com/plus3/blockfall/engine/debugui/ebiten"
	"github.com/plus3/blockfall/frontend"
)

var (
	backgroundColor = color.RGBA{A: 255}
	outlineColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options configure the window.
type Options struct {
	Title    string
	CellSize int
	Margin   int
	Debug    bool
	Logger   *log.Logger
}

// Game implements ebiten.Game around an engine.
type Game struct {
	ctx       context.Context
	engine    *engine.Engine
	layout    frontend.Layout
	lastFrame time.Time
	lastDelta time.Duration
	blocks    *intmap.Map[uint32, *ebiten.Image]
	logger    *log.Logger

	overlay *debugui.Overlay
	imgui   *debugui_ebiten.ImguiBackend
}

// NewGame prepares a window for e. With Debug set, the window is created by
// the ImGui backend and the engine overlay is drawn on top.
func NewGame(ctx context.Context, e *engine.Engine, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := &Game{
		ctx:    ctx,
		engine: e,
		layout: frontend.NewLayout(opts.CellSize, opts.Margin),
		blocks: intmap.New[uint32, *ebiten.Image](16),
		logger: logger,
	}

	w, h := g.layout.ScreenSize()
	if opts.Debug {
		g.overlay = debugui.NewOverlay(120)
		g.imgui = debugui_ebiten.NewImguiBackend(opts.Title, w*2, h)
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(opts.Title)
	}
	return g
}

// Run blocks until the window is closed, the engine quits or ctx is done.
// It returns ctx.Err() when stopped by the context.
func Run(ctx context.Context, e *engine.Engine, opts Options) error {
	g := NewGame(ctx, e, opts)
	g.logger.Info("opening window", "cell", opts.CellSize, "debug", opts.Debug)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return ctx.Err()
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	now := time.Now()
	if g.lastFrame.IsZero() {
		g.lastFrame = now
	}
	g.lastDelta = now.Sub(g.lastFrame)
	g.lastFrame = now

	if g.imgui != nil {
		g.imgui.BeginFrame()
		defer g.imgui.EndFrame()
	}

	var events []engine.Event
	if g.imgui == nil || !debugui.WantsKeyboard() {
		events = pollKeyboard()
	}

	if g.engine.Step(g.lastDelta, events...) {
		g.logger.Info("quit requested")
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.overlay.Render(g.engine, g.lastDelta)
	}
	return nil
}

// pollKeyboard maps freshly pressed keys onto engine events.
func pollKeyboard() []engine.Event {
	var events []engine.Event
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if ev, ok := keyEvents[key]; ok {
			events = append(events, ev)
		}
	}
	return events
}

var keyEvents = map[ebiten.Key]engine.Event{
	ebiten.KeyEscape:     engine.EventQuit,
	ebiten.KeySpace:      engine.EventRotate,
	ebiten.KeyArrowLeft:  engine.EventMoveLeft,
	ebiten.KeyArrowRight: engine.EventMoveRight,
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for _, c := range frontend.BorderCells() {
		g.drawBlock(screen, c.Y, c.X, frontend.BorderColor)
	}

	snap := frontend.Capture(g.engine)
	for row := range snap.Blocks {
		for col, block := range snap.Blocks[row] {
			if block.Filled {
				g.drawBlock(screen, row, col, block.Color)
			}
		}
	}

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.layout.ScreenSize()
}

func (g *Game) drawBlock(screen *ebiten.Image, row, col int, c color.RGBA) {
	rect := g.layout.Rect(row, col)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	screen.DrawImage(g.blockImage(c), op)
}

// blockImage returns the cached outlined square for colour c.
func (g *Game) blockImage(c color.RGBA) *ebiten.Image {
	key := packRGBA(c)
	if img, ok := g.blocks.Get(key); ok {
		return img
	}

	size := g.layout.CellSize
	img := ebiten.NewImage(size, size)
	img.Fill(outlineColor)
	vector.DrawFilledRect(img, 1, 1, float32(size-2), float32(size-2), c, false)

	g.blocks.Put(key, img)
	return img
}

func packRGBA(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}
