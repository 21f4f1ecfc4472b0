package engine

import (
	"fmt"
	"image/color"
	"math/rand/v2"
)

// Kind identifies one of the seven tetromino variants.
type Kind uint8

const (
	Long Kind = iota
	Square
	Tee
	Zee
	InverseZee
	Jay
	El

	kindCount
)

// Kinds lists every variant in declaration order.
var Kinds = [...]Kind{Long, Square, Tee, Zee, InverseZee, Jay, El}

func (k Kind) String() string {
	switch k {
	case Long:
		return "Long"
	case Square:
		return "Square"
	case Tee:
		return "Tee"
	case Zee:
		return "Zee"
	case InverseZee:
		return "InverseZee"
	case Jay:
		return "Jay"
	case El:
		return "El"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the seven variants.
func (k Kind) Valid() bool {
	return k < kindCount
}

type kindLayout struct {
	shape Shape
	color color.RGBA
}

var kindLayouts = [kindCount]kindLayout{
	Long: {
		shape: ParseShape(
			"....",
			"****",
			"....",
			"....",
		),
		color: color.RGBA{R: 0, G: 255, B: 255, A: 255},
	},
	Square: {
		shape: ParseShape(
			"....",
			".**.",
			".**.",
			"....",
		),
		color: color.RGBA{R: 255, G: 255, B: 0, A: 255},
	},
	Tee: {
		shape: ParseShape(
			"....",
			".***",
			"..*.",
			"....",
		),
		color: color.RGBA{R: 255, G: 0, B: 255, A: 255},
	},
	Zee: {
		shape: ParseShape(
			"....",
			".**.",
			"..**",
			"....",
		),
		color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
	},
	InverseZee: {
		shape: ParseShape(
			"....",
			".**.",
			"**..",
			"....",
		),
		color: color.RGBA{R: 0, G: 255, B: 0, A: 255},
	},
	Jay: {
		shape: ParseShape(
			"....",
			"..*.",
			"..*.",
			".**.",
		),
		color: color.RGBA{R: 0, G: 0, B: 255, A: 255},
	},
	El: {
		shape: ParseShape(
			"....",
			".*..",
			".*..",
			".**.",
		),
		color: color.RGBA{R: 255, G: 165, B: 0, A: 255},
	},
}

// Position is a location in field coordinates: X counts columns from the
// left, Y counts rows from the top.
type Position struct {
	X, Y int
}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// DefaultSpawn is where new pieces appear unless configured otherwise.
var DefaultSpawn = Position{X: 3, Y: 0}

// Piece is an active tetromino. Position is the top-left corner of its 4x4
// shape window and may lie outside the field while a move is being tried.
type Piece struct {
	Kind     Kind
	Shape    Shape
	Color    color.RGBA
	Position Position
}

// NewPiece returns a piece of the given kind at DefaultSpawn with alignment 0.
// It panics if kind is not one of the seven variants.
func NewPiece(kind Kind) Piece {
	return NewPieceAt(kind, DefaultSpawn)
}

// NewPieceAt is NewPiece with an explicit spawn position.
func NewPieceAt(kind Kind, pos Position) Piece {
	if !kind.Valid() {
		panic(fmt.Sprintf("engine: invalid piece kind %d", uint8(kind)))
	}
	layout := kindLayouts[kind]
	return Piece{
		Kind:     kind,
		Shape:    layout.shape,
		Color:    layout.color,
		Position: pos,
	}
}

// RandomPiece picks one of the seven kinds with equal probability.
func RandomPiece(r *rand.Rand, pos Position) Piece {
	return NewPieceAt(Kind(r.IntN(int(kindCount))), pos)
}

// Rotate turns the piece's shape in place. It is never validated against the
// field.
func (p *Piece) Rotate() {
	p.Shape.Rotate()
}

// Bounds returns the current shape's occupied extents.
func (p *Piece) Bounds() Bounds {
	return p.Shape.Bounds()
}

// Copy returns an independent copy of the piece.
func (p Piece) Copy() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells returns the field coordinates of every occupied cell, row-major.
func (p *Piece) Cells() []Position {
	cells := make([]Position, 0, 4)
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if p.Shape.Cells[j][i] {
				cells = append(cells, Position{X: p.Position.X + i, Y: p.Position.Y + j})
			}
		}
	}
	return cells
}
