// Package frontend holds the renderer-neutral view of a running engine that
// the window and terminal frontends draw from.
package frontend

import (
	"image"
	"image/color"

	"github.com/plus3/blockfall/engine"
)

// BorderColor is the colour of the frame drawn around the field.
var BorderColor = color.RGBA{R: 127, G: 127, B: 127, A: 255}

// Block is one square of a snapshot.
type Block struct {
	Filled bool
	Active bool
	Color  color.RGBA
}

// Snapshot is a copy of the field with the active piece drawn over it.
type Snapshot struct {
	Blocks [engine.FieldHeight][engine.FieldWidth]Block
	Piece  engine.Piece
	Phase  engine.Phase
	Locked int64
	Ticks  int64
}

// Capture reads the engine's current state. Active piece cells outside the
// field are left out.
func Capture(e *engine.Engine) Snapshot {
	var s Snapshot
	field := e.Field()
	for row := 0; row < engine.FieldHeight; row++ {
		for col := 0; col < engine.FieldWidth; col++ {
			cell := field.Cell(row, col)
			s.Blocks[row][col] = Block{Filled: cell.Filled, Color: cell.Color}
		}
	}

	s.Piece = e.Active()
	for _, c := range s.Piece.Cells() {
		if !engine.Inside(c.Y, c.X) {
			continue
		}
		s.Blocks[c.Y][c.X] = Block{Filled: true, Active: true, Color: s.Piece.Color}
	}

	state := e.State()
	s.Phase = state.Phase
	s.Locked = state.Locked
	s.Ticks = state.Ticks
	return s
}

// Layout maps field coordinates to pixels. The border occupies column -1,
// column FieldWidth and row FieldHeight.
type Layout struct {
	Origin   image.Point
	CellSize int
}

// Rect returns the screen rectangle of the cell at (row, col).
func (l Layout) Rect(row, col int) image.Rectangle {
	p := image.Point{
		X: l.Origin.X + col*l.CellSize,
		Y: l.Origin.Y + row*l.CellSize,
	}
	return image.Rectangle{Min: p, Max: p.Add(image.Point{X: l.CellSize, Y: l.CellSize})}
}

// Bounds is the smallest rectangle containing the field and its border.
func (l Layout) Bounds() image.Rectangle {
	return l.Rect(0, -1).Union(l.Rect(engine.FieldHeight, engine.FieldWidth))
}

// ScreenSize is the window size that shows the field and border with the
// same margin right and below as left and above.
func (l Layout) ScreenSize() (int, int) {
	b := l.Bounds()
	return b.Max.X + b.Min.X, b.Max.Y + b.Min.Y
}

// NewLayout places the field so the border starts margin pixels from the
// top-left corner of the screen.
func NewLayout(cellSize, margin int) Layout {
	return Layout{
		Origin:   image.Point{X: margin + cellSize, Y: margin},
		CellSize: cellSize,
	}
}

// BorderCells lists the field coordinates, as (col, row) positions, of the
// frame: both side walls and the floor including its corners.
func BorderCells() []engine.Position {
	cells := make([]engine.Position, 0, 2*engine.FieldHeight+engine.FieldWidth+2)
	for row := 0; row < engine.FieldHeight; row++ {
		cells = append(cells,
			engine.Position{X: -1, Y: row},
			engine.Position{X: engine.FieldWidth, Y: row},
		)
	}
	for col := -1; col <= engine.FieldWidth; col++ {
		cells = append(cells, engine.Position{X: col, Y: engine.FieldHeight})
	}
	return cells
}
