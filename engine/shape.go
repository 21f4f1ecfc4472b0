package engine

import "strings"

// ShapeSize is the edge length of every piece's occupancy matrix.
const ShapeSize = 4

// Bounds is the inclusive bounding box of a shape's occupied cells, in local
// shape coordinates.
type Bounds struct {
	MinCol, MinRow int
	MaxCol, MaxRow int
}

// emptyBounds is returned for a shape without any occupied cell.
var emptyBounds = Bounds{MinCol: ShapeSize, MinRow: ShapeSize, MaxCol: -1, MaxRow: -1}

// Empty reports whether b is the sentinel produced by an all-empty shape.
func (b Bounds) Empty() bool {
	return b.MaxCol < b.MinCol || b.MaxRow < b.MinRow
}

// Shape is a 4x4 occupancy matrix together with the number of quarter turns
// applied to it so far.
type Shape struct {
	Cells     [ShapeSize][ShapeSize]bool
	Alignment int
}

// ParseShape builds a shape from four rows where '*' marks an occupied cell.
// Any other rune, or a missing row/column, is empty.
func ParseShape(rows ...string) Shape {
	var s Shape
	for j := 0; j < ShapeSize && j < len(rows); j++ {
		for i, r := range []rune(rows[j]) {
			if i >= ShapeSize {
				break
			}
			s.Cells[j][i] = r == '*'
		}
	}
	return s
}

// Occupied reports whether the local cell at (row, col) is filled. Cells
// outside the 4x4 window are empty.
func (s *Shape) Occupied(row, col int) bool {
	if row < 0 || row >= ShapeSize || col < 0 || col >= ShapeSize {
		return false
	}
	return s.Cells[row][col]
}

// Rotate replaces the matrix with its transpose on even alignments and with
// its point reflection across the anti-diagonal on odd ones. Four calls
// restore the original layout.
func (s *Shape) Rotate() {
	var next [ShapeSize][ShapeSize]bool
	odd := s.Alignment%2 == 1
	for i := 0; i < ShapeSize; i++ {
		for j := 0; j < ShapeSize; j++ {
			if odd {
				next[i][j] = s.Cells[ShapeSize-1-j][ShapeSize-1-i]
			} else {
				next[i][j] = s.Cells[j][i]
			}
		}
	}
	s.Cells = next
	s.Alignment = (s.Alignment + 1) % 4
}

// Bounds scans all cells and returns the extents of the occupied ones.
func (s *Shape) Bounds() Bounds {
	b := emptyBounds
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if !s.Cells[j][i] {
				continue
			}
			b.MinCol = min(b.MinCol, i)
			b.MinRow = min(b.MinRow, j)
			b.MaxCol = max(b.MaxCol, i)
			b.MaxRow = max(b.MaxRow, j)
		}
	}
	return b
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	return s
}

func (s Shape) String() string {
	var b strings.Builder
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if s.Cells[j][i] {
				b.WriteByte('*')
			} else {
				b.WriteByte('.')
			}
		}
		if j < ShapeSize-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
