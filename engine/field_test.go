package engine_test

import (
	"image/color"
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pieceAt(kind engine.Kind, x, y int) engine.Piece {
	return engine.NewPieceAt(kind, engine.Position{X: x, Y: y})
}

func TestNewFieldIsEmpty(t *testing.T) {
	field := engine.NewField()

	assert.Equal(t, 0, field.FilledCount())
	for row := 0; row < engine.FieldHeight; row++ {
		for col := 0; col < engine.FieldWidth; col++ {
			assert.False(t, field.Filled(row, col))
		}
	}
	assert.Equal(t, engine.Cell{}, field.Cell(-1, 0))
	assert.Equal(t, engine.Cell{}, field.Cell(0, engine.FieldWidth))
}

func TestCollidesDown(t *testing.T) {
	t.Run("floor", func(t *testing.T) {
		field := engine.NewField()

		resting := pieceAt(engine.Long, 3, 18)
		assert.False(t, field.Collides(&resting, engine.Down), "bottom row 19 is still inside the field")

		below := pieceAt(engine.Long, 3, 19)
		assert.True(t, field.Collides(&below, engine.Down), "bottom row 20 is past the floor")
	})

	t.Run("floor ignores field contents", func(t *testing.T) {
		field := engine.NewField()
		field.Place(pieceAt(engine.Long, 0, 5))

		piece := pieceAt(engine.Jay, 6, 17)
		assert.True(t, field.Collides(&piece, engine.Down))
	})

	t.Run("above the field", func(t *testing.T) {
		field := engine.NewField()
		piece := pieceAt(engine.Long, 0, -5)
		assert.False(t, field.Collides(&piece, engine.Down))
	})

	t.Run("settled block on the lowest row", func(t *testing.T) {
		field := engine.NewField()
		field.Place(pieceAt(engine.Square, 0, 17)) // rows 18-19, cols 1-2

		hit := pieceAt(engine.Long, 0, 17)
		assert.True(t, field.Collides(&hit, engine.Down))

		above := pieceAt(engine.Long, 0, 16)
		assert.False(t, field.Collides(&above, engine.Down))

		aside := pieceAt(engine.Long, 5, 17)
		assert.False(t, field.Collides(&aside, engine.Down))
	})

	t.Run("columns outside the field are skipped", func(t *testing.T) {
		field := engine.NewField()
		piece := pieceAt(engine.Long, -2, 10)
		assert.False(t, field.Collides(&piece, engine.Down))

		piece = pieceAt(engine.Long, 8, 10)
		assert.False(t, field.Collides(&piece, engine.Down))
	})
}

func TestCollidesAfterPlace(t *testing.T) {
	field := engine.NewField()
	piece := pieceAt(engine.Long, 2, 10)

	require.False(t, field.Collides(&piece, engine.Down))
	field.Place(piece)

	again := pieceAt(engine.Long, 2, 10)
	assert.True(t, field.Collides(&again, engine.Down))
}

func TestEdgeCollisionMissesOverhang(t *testing.T) {
	// A settled block under the Tee's left arm is invisible to the
	// lowest-row test but caught by the footprint test.
	field := engine.NewField()
	field.Place(pieceAt(engine.Long, -2, 5)) // fills (6,0) and (6,1)

	tee := pieceAt(engine.Tee, 0, 5) // arm on row 6, stem on row 7
	assert.False(t, field.Collides(&tee, engine.Down))

	field.SetCollisionMode(engine.FootprintCollision)
	assert.True(t, field.Collides(&tee, engine.Down))
	assert.True(t, field.Overlaps(&tee))
}

func TestCollidesSideways(t *testing.T) {
	field := engine.NewField()

	tests := []struct {
		name string
		x    int
		dir  engine.Direction
		want bool
	}{
		{"left wall", -1, engine.Left, true},
		{"left inside", 0, engine.Left, false},
		{"right wall", 7, engine.Right, true},
		{"right inside", 6, engine.Right, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			piece := pieceAt(engine.Long, tt.x, 0)
			assert.Equal(t, tt.want, field.Collides(&piece, tt.dir))
		})
	}

	t.Run("settled block", func(t *testing.T) {
		field := engine.NewField()
		field.Place(pieceAt(engine.Square, 4, 0)) // rows 1-2, cols 5-6

		piece := pieceAt(engine.Long, 2, 0)
		assert.True(t, field.Collides(&piece, engine.Right))

		piece = pieceAt(engine.Long, 1, 0)
		assert.False(t, field.Collides(&piece, engine.Right))
	})
}

func TestPlaceClipsOutOfBounds(t *testing.T) {
	tests := []struct {
		name    string
		piece   engine.Piece
		written int
		filled  [][2]int
	}{
		{"right edge", pieceAt(engine.Long, 8, 0), 2, [][2]int{{1, 8}, {1, 9}}},
		{"left edge", pieceAt(engine.Long, -2, 0), 2, [][2]int{{1, 0}, {1, 1}}},
		{"below floor", pieceAt(engine.Jay, 0, 18), 1, [][2]int{{19, 2}}},
		{"above ceiling", pieceAt(engine.El, 0, -3), 2, [][2]int{{0, 1}, {0, 2}}},
		{"fully inside", pieceAt(engine.Square, 4, 4), 4, [][2]int{{5, 5}, {5, 6}, {6, 5}, {6, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := engine.NewField()
			written := field.Place(tt.piece)

			assert.Equal(t, tt.written, written)
			assert.Equal(t, tt.written, field.FilledCount())
			for _, rc := range tt.filled {
				cell := field.Cell(rc[0], rc[1])
				assert.True(t, cell.Filled, "row %d col %d", rc[0], rc[1])
				assert.Equal(t, tt.piece.Color, cell.Color)
			}
		})
	}
}

func TestPlaceKeepsPerCellColour(t *testing.T) {
	field := engine.NewField()
	long := pieceAt(engine.Long, 0, 18)    // row 19, cols 0-3
	square := pieceAt(engine.Square, 0, 16) // rows 17-18, cols 1-2

	field.Place(long)
	field.Place(square)

	cyan := color.RGBA{R: 0, G: 255, B: 255, A: 255}
	yellow := color.RGBA{R: 255, G: 255, B: 0, A: 255}

	for col := 0; col < 4; col++ {
		assert.Equal(t, cyan, field.Cell(19, col).Color)
	}
	assert.Equal(t, yellow, field.Cell(18, 1).Color)
	assert.Equal(t, yellow, field.Cell(18, 2).Color)
	assert.False(t, field.Filled(18, 0))
	assert.Equal(t, 8, field.FilledCount())
}
