package engine

import "image/color"

const (
	FieldWidth  = 10
	FieldHeight = 20
)

// Direction is the axis along which a collision is tested.
type Direction int

const (
	Down Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Delta is the one-cell offset a move in d applies.
func (d Direction) Delta() Position {
	switch d {
	case Left:
		return Position{X: -1}
	case Right:
		return Position{X: 1}
	default:
		return Position{Y: 1}
	}
}

// Cell is a single field square. The zero value is empty.
type Cell struct {
	Filled bool
	Color  color.RGBA
}

// CollisionMode selects how much of a piece is tested on the way down.
type CollisionMode int

const (
	// EdgeCollision tests only the piece's leading row (or column for
	// sideways moves). A piece whose higher cells overhang a settled block
	// can pass through it.
	EdgeCollision CollisionMode = iota
	// FootprintCollision tests every occupied cell.
	FootprintCollision
)

// Field is the fixed-size grid of settled blocks. Cells are only ever
// filled, never cleared.
type Field struct {
	cells [FieldHeight][FieldWidth]Cell
	mode  CollisionMode
}

// NewField returns an empty field using edge collision.
func NewField() *Field {
	return &Field{}
}

// SetCollisionMode switches the test used by Collides.
func (f *Field) SetCollisionMode(mode CollisionMode) {
	f.mode = mode
}

// Inside reports whether (row, col) is a field coordinate.
func Inside(row, col int) bool {
	return row >= 0 && row < FieldHeight && col >= 0 && col < FieldWidth
}

// Cell returns the cell at (row, col); out-of-range coordinates read as
// empty.
func (f *Field) Cell(row, col int) Cell {
	if !Inside(row, col) {
		return Cell{}
	}
	return f.cells[row][col]
}

// Filled reports whether (row, col) holds a settled block.
func (f *Field) Filled(row, col int) bool {
	return f.Cell(row, col).Filled
}

// FilledCount returns the number of settled blocks.
func (f *Field) FilledCount() int {
	n := 0
	for j := range f.cells {
		for i := range f.cells[j] {
			if f.cells[j][i].Filled {
				n++
			}
		}
	}
	return n
}

// Collides reports whether piece, at its current position, may not advance
// further in dir. In footprint mode every occupied cell is checked.
func (f *Field) Collides(piece *Piece, dir Direction) bool {
	if f.mode == FootprintCollision {
		return f.Overlaps(piece)
	}
	switch dir {
	case Left, Right:
		return f.collidesSideways(piece, dir)
	default:
		return f.collidesDown(piece)
	}
}

// collidesDown tests the piece's lowest occupied row against the floor and
// the settled blocks on that row.
func (f *Field) collidesDown(piece *Piece) bool {
	b := piece.Bounds()
	pos := piece.Position
	checkLine := pos.Y + b.MaxRow
	if checkLine < 0 {
		return false
	}
	if checkLine >= FieldHeight {
		return true
	}
	for i := pos.X + b.MinCol; i <= pos.X+b.MaxCol; i++ {
		if i < 0 || i >= FieldWidth {
			continue
		}
		if piece.Shape.Occupied(b.MaxRow, i-pos.X) && f.cells[checkLine][i].Filled {
			return true
		}
	}
	return false
}

// collidesSideways mirrors collidesDown onto the leading column.
func (f *Field) collidesSideways(piece *Piece, dir Direction) bool {
	b := piece.Bounds()
	pos := piece.Position
	edge := b.MinCol
	if dir == Right {
		edge = b.MaxCol
	}
	checkCol := pos.X + edge
	if checkCol < 0 || checkCol >= FieldWidth {
		return true
	}
	for j := pos.Y + b.MinRow; j <= pos.Y+b.MaxRow; j++ {
		if j < 0 || j >= FieldHeight {
			continue
		}
		if piece.Shape.Occupied(j-pos.Y, edge) && f.cells[j][checkCol].Filled {
			return true
		}
	}
	return false
}

// Overlaps reports whether any occupied cell of piece lies beyond the side
// walls or the floor, or on top of a settled block. Rows above the field are
// allowed.
func (f *Field) Overlaps(piece *Piece) bool {
	for _, c := range piece.Cells() {
		if c.X < 0 || c.X >= FieldWidth || c.Y >= FieldHeight {
			return true
		}
		if c.Y >= 0 && f.cells[c.Y][c.X].Filled {
			return true
		}
	}
	return false
}

// Place merges the piece's occupied cells into the grid in its colour.
// Cells falling outside the field are dropped. It returns the number of
// cells written.
func (f *Field) Place(piece Piece) int {
	written := 0
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if !piece.Shape.Cells[j][i] {
				continue
			}
			y, x := piece.Position.Y+j, piece.Position.X+i
			if !Inside(y, x) {
				continue
			}
			f.cells[y][x] = Cell{Filled: true, Color: piece.Color}
			written++
		}
	}
	return written
}
