package geometry

import "math"

// DefaultStep is the spacing used by [Distributed] when step is not positive.
const DefaultStep = 0.25

// AverageDistribution returns the evenly spaced interior points of the unit
// interval: start+step, start+2*step, ... while the value stays strictly
// below 1. A non-positive step yields nil.
//
// Values are rounded to 1e-9 so that repeated float addition does not leak
// into callers (0.1+0.2 style drift).
func AverageDistribution(step, start float64) []float64 {
	if step <= 0 || math.IsNaN(step) || math.IsNaN(start) {
		return nil
	}
	var out []float64
	for i := 1; ; i++ {
		v := round(start + float64(i)*step)
		if v >= 1 {
			break
		}
		out = append(out, v)
	}
	return out
}

func round(f float64) float64 {
	return math.Round(f*1e9) / 1e9
}

// Distributed returns a factory whose geometries carry connection
// constraints at every distributed coordinate on all four sides:
// top (c,0), left (0,c), right (1,c) and bottom (c,1).
func Distributed(step, start float64) Factory {
	if step <= 0 {
		step = DefaultStep
	}
	coords := AverageDistribution(step, start)
	constraints := make([]ConnectionConstraint, 0, len(coords)*4)
	for _, c := range coords {
		constraints = append(constraints,
			ConnectionConstraint{Point: Point{X: c, Y: 0}, Perimeter: true},
			ConnectionConstraint{Point: Point{X: 0, Y: c}, Perimeter: true},
			ConnectionConstraint{Point: Point{X: 1, Y: c}, Perimeter: true},
			ConnectionConstraint{Point: Point{X: c, Y: 1}, Perimeter: true},
		)
	}
	return func(x, y, width, height float64) *Geometry {
		g := Default(x, y, width, height)
		g.Constraints = append([]ConnectionConstraint(nil), constraints...)
		return g
	}
}
