package grid

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/gridwave/geom"
)

// ErrShapeMismatch means the relation cache no longer lines up with the
// point or wave slices it was built for.
var ErrShapeMismatch = errors.New("relation cache shape mismatch")

// Relation is the precomputed geometry between one point and one wave.
type Relation struct {
	Distance float64 // From the point's origin to the wave's origin
	Angle    float64 // Direction from the point toward the wave's origin
}

// Relations is indexed [point][wave]. Column order always tracks the order
// of the caller's active wave slice.
type Relations [][]Relation

func relate(pt Point, w Wave) Relation {
	return Relation{
		Distance: geom.Distance(pt.OriginX, pt.OriginY, w.X, w.Y),
		Angle:    geom.Angle(pt.OriginX, pt.OriginY, w.X, w.Y),
	}
}

// BuildRelations computes the full matrix for every (point, wave) pair.
func BuildRelations(points []Point, waves []Wave) Relations {
	rel := make(Relations, len(points))
	for i, pt := range points {
		row := make([]Relation, len(waves), len(waves)+4)
		for j, w := range waves {
			row[j] = relate(pt, w)
		}
		rel[i] = row
	}
	return rel
}

// AddWave appends one column for w without touching existing entries.
func (r Relations) AddWave(points []Point, w Wave) Relations {
	for i, pt := range points {
		r[i] = append(r[i], relate(pt, w))
	}
	return r
}

// RemoveWave deletes column i from every row, keeping the remaining columns
// in order.
func (r Relations) RemoveWave(i int) Relations {
	for p, row := range r {
		if i < 0 || i >= len(row) {
			continue
		}
		r[p] = append(row[:i], row[i+1:]...)
	}
	return r
}

// Shape returns the number of rows and the column count of the first row.
func (r Relations) Shape() (rows, cols int) {
	if len(r) == 0 {
		return 0, 0
	}
	return len(r), len(r[0])
}

// Check verifies the cache is exactly len(points) x len(waves).
func (r Relations) Check(points []Point, waves []Wave) error {
	if len(r) != len(points) {
		return fmt.Errorf("%w: %d rows for %d points", ErrShapeMismatch, len(r), len(points))
	}
	for i, row := range r {
		if len(row) != len(waves) {
			return fmt.Errorf("%w: row %d has %d columns for %d waves", ErrShapeMismatch, i, len(row), len(waves))
		}
	}
	return nil
}
