package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/cholla/internal/grid"
)

func fillBlock(b *grid.Block) {
	for i := range b.Density {
		b.Density[i] = 1.5
		b.Energy[i] = 3.0
	}
}

func TestMemoryWriterRoundTrip(t *testing.T) {
	b := grid.NewBlock(3, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	fillBlock(b)
	w := &MemoryWriter{}
	require.NoError(t, w.WriteSnapshot(7, 1.25, b, nil))

	s, err := w.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 7, s.Step)
	assert.Equal(t, 1.25, s.Time)

	b2 := grid.NewBlock(3, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	step, tm, err := RestoreInto(s, b2)
	require.NoError(t, err)
	assert.Equal(t, 7, step)
	assert.Equal(t, 1.25, tm)
	assert.Equal(t, b.Density, b2.Density)
}

func TestMemoryWriterReadBeforeWriteErrors(t *testing.T) {
	w := &MemoryWriter{}
	_, err := w.ReadSnapshot()
	assert.Error(t, err)
}

func TestJSONWriterEncodesToBuffer(t *testing.T) {
	b := grid.NewBlock(2, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	fillBlock(b)
	var buf bytes.Buffer
	w := NewJSONWriter(&buf, nil)
	require.NoError(t, w.WriteSnapshot(1, 0.1, b, nil))
	assert.Greater(t, buf.Len(), 0)

	s, err := w.ReadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Step)
}

func TestRestoreIntoRejectsShapeMismatch(t *testing.T) {
	b := grid.NewBlock(3, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	s := toSnapshot(0, 0, b, nil)
	other := grid.NewBlock(4, 1, 1, 1, grid.Geometry{Dx: 1}, grid.Features{})
	_, _, err := RestoreInto(s, other)
	assert.Error(t, err)
}
