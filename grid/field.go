package grid

import "math"

// Point is one lattice cell.
type Point struct {
	OriginX, OriginY   float64 // Lattice position, set once by BuildField
	DisplayX, DisplayY float64 // Rendered position, recomputed every frame
	Size               float64 // Rendered size in [DotBaseSize, DotMaxSize]
}

// BuildField tiles points across the canvas. Each dot's trailing edge sits on
// its tile's bottom-right boundary. Points are column-major and the order is
// stable for the lifetime of the slice.
func BuildField(p Params, dims Dimensions) []Point {
	cols := dims.Cols(p.TileSize)
	rows := dims.Rows(p.TileSize)
	points := make([]Point, 0, cols*rows)

	for c := 0; c < cols; c++ {
		for r := 0; r < rows; r++ {
			x := float64(c+1)*p.TileSize - p.DotBaseSize
			y := float64(r+1)*p.TileSize - p.DotBaseSize
			points = append(points, Point{
				OriginX:  x,
				OriginY:  y,
				DisplayX: x,
				DisplayY: y,
				Size:     p.DotBaseSize,
			})
		}
	}
	return points
}

// Field updates points in place from the active waves. It keeps scratch
// buffers between frames so the hot path does not allocate.
type Field struct {
	crests []float64
}

// Update recomputes every point's display position and size from its origin
// and the waves whose crest band covers it. rel must be len(points) x
// len(waves). A point no wave touches ends exactly at its origin and base size.
func (f *Field) Update(p Params, points []Point, waves []Wave, rel Relations) {
	if cap(f.crests) < len(waves) {
		f.crests = make([]float64, len(waves))
	}
	crests := f.crests[:len(waves)]
	for j, w := range waves {
		crests[j] = w.EasedCrest(p)
	}

	for i := range points {
		pt := &points[i]
		pt.DisplayX = pt.OriginX
		pt.DisplayY = pt.OriginY
		pt.Size = p.DotBaseSize

		if len(waves) == 0 {
			continue
		}

		var dx, dy, grow float64
		touched := false
		row := rel[i]
		for j := range waves {
			w := &waves[j]
			aoe := w.AreaOfEffect
			if aoe <= 0 {
				continue
			}
			distFromCrest := math.Abs(row[j].Distance - crests[j])
			if distFromCrest > aoe {
				continue
			}
			touched = true

			// Push away from the wave origin.
			mag := p.DotPositionResistance * p.PercEasing((aoe-distFromCrest)/aoe) * aoe * w.Strength
			dx -= math.Cos(row[j].Angle) * mag
			dy -= math.Sin(row[j].Angle) * mag

			grow += p.DotSizeResistance * p.DotSizeEasing(1-distFromCrest/aoe) * w.Strength
		}
		if !touched {
			continue
		}

		size := math.Min(math.Max(p.DotBaseSize+grow, p.DotBaseSize), p.DotMaxSize)
		half := (size - p.DotBaseSize) / 2
		pt.Size = size
		pt.DisplayX = pt.OriginX + dx - half
		pt.DisplayY = pt.OriginY + dy - half
	}
}

// Update is Field.Update without scratch reuse, for one-off callers.
func Update(p Params, points []Point, waves []Wave, rel Relations) {
	var f Field
	f.Update(p, points, waves, rel)
}
