package active

import (
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// List holds accepted points that may still spawn new candidates.
// Order means nothing; removal swaps the last entry into the hole.
type List struct {
	points []model2d.Coord
}

// New returns an empty list.
func New() *List {
	return &List{points: []model2d.Coord{}}
}

// Push appends p.
func (l *List) Push(p model2d.Coord) {
	l.points = append(l.points, p)
}

// PickRandom maps u, a uniform value in [0, 1), to an index in [0, Len()).
// The list must not be empty.
func (l *List) PickRandom(u float64) int {
	i := int(u * float64(len(l.points)))
	if i >= len(l.points) {
		i = len(l.points) - 1
	} else if i < 0 {
		i = 0
	}
	return i
}

// At returns the point at index i.
func (l *List) At(i int) model2d.Coord {
	return l.points[i]
}

// Remove drops the entry at i in O(1).
func (l *List) Remove(i int) {
	essentials.UnorderedDelete(&l.points, i)
}

// IsEmpty returns true if there is nothing left to spawn from.
func (l *List) IsEmpty() bool {
	return len(l.points) == 0
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.points)
}

// Clear empties the list, keeping the backing array.
func (l *List) Clear() {
	l.points = l.points[:0]
}

// Clone returns an independent copy.
func (l *List) Clone() *List {
	return &List{points: append([]model2d.Coord{}, l.points...)}
}
