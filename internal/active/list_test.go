package active

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unixpickle/model3d/model2d"
)

func TestPickRandom(t *testing.T) {
	t.Parallel()

	l := New()
	for i := 0; i < 4; i++ {
		l.Push(model2d.XY(float64(i), 0))
	}

	assert.Equal(t, 0, l.PickRandom(0))
	assert.Equal(t, 1, l.PickRandom(0.25))
	assert.Equal(t, 2, l.PickRandom(0.5))
	assert.Equal(t, 3, l.PickRandom(0.99999999))
	assert.Equal(t, 3, l.PickRandom(1)) // clamped
}

func TestPickRandom_SingleEntry(t *testing.T) {
	t.Parallel()

	l := New()
	l.Push(model2d.XY(1, 1))

	for _, u := range []float64{0, 0.3, 0.5, 0.999999} {
		assert.Equal(t, 0, l.PickRandom(u))
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	a, b, c, d := model2d.XY(0, 0), model2d.XY(1, 0), model2d.XY(2, 0), model2d.XY(3, 0)

	l := New()
	for _, p := range []model2d.Coord{a, b, c, d} {
		l.Push(p)
	}

	l.Remove(1)
	assert.Equal(t, 3, l.Len())

	got := []model2d.Coord{}
	for i := 0; i < l.Len(); i++ {
		got = append(got, l.At(i))
	}
	assert.ElementsMatch(t, []model2d.Coord{a, c, d}, got)
	assert.Equal(t, a, l.At(0)) // entries before the hole stay put

	l.Remove(l.Len() - 1)
	l.Remove(0)
	l.Remove(0)
	assert.True(t, l.IsEmpty())
}

func TestClearAndClone(t *testing.T) {
	t.Parallel()

	l := New()
	l.Push(model2d.XY(1, 2))
	l.Push(model2d.XY(3, 4))

	cp := l.Clone()
	l.Clear()

	assert.True(t, l.IsEmpty())
	assert.Equal(t, 2, cp.Len())
	assert.Equal(t, model2d.XY(3, 4), cp.At(1))

	cp.Push(model2d.XY(5, 6))
	assert.Equal(t, 0, l.Len())
}
