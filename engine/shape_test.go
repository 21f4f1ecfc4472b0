package engine_test

import (
	"testing"

	"github.com/plus3/blockfall/engine"
	"github.com/stretchr/testify/assert"
)

func TestInitialBounds(t *testing.T) {
	tests := []struct {
		kind engine.Kind
		want engine.Bounds
	}{
		{engine.Long, engine.Bounds{MinCol: 0, MinRow: 1, MaxCol: 3, MaxRow: 1}},
		{engine.Square, engine.Bounds{MinCol: 1, MinRow: 1, MaxCol: 2, MaxRow: 2}},
		{engine.Tee, engine.Bounds{MinCol: 1, MinRow: 1, MaxCol: 3, MaxRow: 2}},
		{engine.Zee, engine.Bounds{MinCol: 1, MinRow: 1, MaxCol: 3, MaxRow: 2}},
		{engine.InverseZee, engine.Bounds{MinCol: 0, MinRow: 1, MaxCol: 2, MaxRow: 2}},
		{engine.Jay, engine.Bounds{MinCol: 1, MinRow: 1, MaxCol: 2, MaxRow: 3}},
		{engine.El, engine.Bounds{MinCol: 1, MinRow: 1, MaxCol: 2, MaxRow: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			piece := engine.NewPiece(tt.kind)
			assert.Equal(t, tt.want, piece.Bounds())
			assert.False(t, piece.Bounds().Empty())
			assert.Equal(t, 0, piece.Shape.Alignment)
		})
	}
}

func TestRotateFourTimesRestoresShape(t *testing.T) {
	for _, kind := range engine.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			piece := engine.NewPiece(kind)
			original := piece.Shape.Cells

			for i := 1; i <= 4; i++ {
				piece.Rotate()
				assert.Equal(t, i%4, piece.Shape.Alignment)
				assert.False(t, piece.Bounds().Empty(), "rotation %d emptied the shape", i)
			}

			assert.Equal(t, original, piece.Shape.Cells)
		})
	}
}

func TestSquareBoundsStableUnderRotation(t *testing.T) {
	piece := engine.NewPiece(engine.Square)
	want := piece.Bounds()

	for i := 0; i < 4; i++ {
		piece.Rotate()
		assert.Equal(t, want, piece.Bounds())
	}
}

func TestRotateAlternatesTransforms(t *testing.T) {
	piece := engine.NewPiece(engine.Long)

	// first call transposes: the horizontal bar becomes column 1
	piece.Rotate()
	assert.Equal(t, engine.Bounds{MinCol: 1, MinRow: 0, MaxCol: 1, MaxRow: 3}, piece.Bounds())

	// second call reflects through the anti-diagonal: column 1 becomes row 2
	piece.Rotate()
	assert.Equal(t, engine.Bounds{MinCol: 0, MinRow: 2, MaxCol: 3, MaxRow: 2}, piece.Bounds())
}

func TestEmptyShapeBounds(t *testing.T) {
	var s engine.Shape
	assert.True(t, s.Bounds().Empty())
}

func TestParseShape(t *testing.T) {
	s := engine.ParseShape(
		".*",
		"**x*",
	)

	assert.True(t, s.Occupied(0, 1))
	assert.True(t, s.Occupied(1, 0))
	assert.False(t, s.Occupied(1, 2))
	assert.True(t, s.Occupied(1, 3))
	assert.False(t, s.Occupied(2, 0))
	assert.False(t, s.Occupied(-1, 0))
	assert.False(t, s.Occupied(0, 4))
	assert.Equal(t, ".*..\n**.*\n....\n....", s.String())
}

func TestShapeCloneIsIndependent(t *testing.T) {
	piece := engine.NewPiece(engine.Tee)
	clone := piece.Copy()

	clone.Rotate()
	clone.Position.Y = 7

	assert.Equal(t, 0, piece.Shape.Alignment)
	assert.Equal(t, engine.DefaultSpawn, piece.Position)
	assert.NotEqual(t, piece.Shape.Cells, clone.Shape.Cells)
}
