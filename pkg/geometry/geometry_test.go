package geometry

import (
	"math"
	"slices"
	"testing"
)

func TestAverageDistribution(t *testing.T) {
	tests := []struct {
		name        string
		step, start float64
		want        []float64
	}{
		{"quarters", 0.25, 0, []float64{0.25, 0.5, 0.75}},
		{"tenths", 0.1, 0, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}},
		{"offset start", 0.25, 0.5, []float64{0.75}},
		{"step too large", 1, 0, nil},
		{"zero step", 0, 0, nil},
		{"negative step", -0.1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageDistribution(tt.step, tt.start)
			if !slices.Equal(got, tt.want) {
				t.Errorf("AverageDistribution(%v, %v) = %v, want %v", tt.step, tt.start, got, tt.want)
			}
		})
	}
}

func TestDistributedConstraints(t *testing.T) {
	g := Distributed(0.5, 0)(10, 20, 100, 50)

	if g.X != 10 || g.Y != 20 || g.Width != 100 || g.Height != 50 {
		t.Errorf("bounds = %+v", g)
	}
	want := []ConnectionConstraint{
		{Point{0.5, 0}, true},
		{Point{0, 0.5}, true},
		{Point{1, 0.5}, true},
		{Point{0.5, 1}, true},
	}
	if !slices.Equal(g.Constraints, want) {
		t.Errorf("constraints = %v, want %v", g.Constraints, want)
	}
}

func TestDistributedFactoryCopiesConstraints(t *testing.T) {
	f := Distributed(0.25, 0)
	a := f(0, 0, 1, 1)
	b := f(0, 0, 1, 1)
	a.Constraints[0].Point.X = 99
	if b.Constraints[0].Point.X == 99 {
		t.Error("geometries from one factory must not share constraints")
	}
	if len(a.Constraints) != 12 {
		t.Errorf("len(constraints) = %d, want 12", len(a.Constraints))
	}
}

func TestDistributedDefaultsStep(t *testing.T) {
	if got := len(Distributed(0, 0)(0, 0, 1, 1).Constraints); got != 12 {
		t.Errorf("non-positive step should fall back to %v, got %d constraints", DefaultStep, got)
	}
}

func TestBounds(t *testing.T) {
	parent := &Geometry{X: 100, Y: 50, Width: 200, Height: 100}

	abs := &Geometry{X: 10, Y: 5, Width: 20, Height: 10}
	if p, _ := abs.Bounds(parent); p != (Point{110, 55}) {
		t.Errorf("absolute child origin = %v", p)
	}

	rel := &Geometry{X: 0.5, Y: 1, Width: 20, Height: 10, Relative: true}
	if p, _ := rel.Bounds(parent); p != (Point{200, 150}) {
		t.Errorf("relative child origin = %v", p)
	}

	if p, s := abs.Bounds(nil); p != (Point{10, 5}) || s != (Size{20, 10}) {
		t.Errorf("top-level bounds = %v %v", p, s)
	}
}

func TestFinite(t *testing.T) {
	if (Point{X: math.NaN()}).IsFinite() {
		t.Error("NaN point reported finite")
	}
	if (Size{Width: math.Inf(1)}).IsFinite() {
		t.Error("Inf size reported finite")
	}
	if !(Size{Width: -1}).IsNegative() {
		t.Error("negative width not detected")
	}
}

func TestClone(t *testing.T) {
	g := Distributed(0.5, 0)(0, 0, 1, 1)
	c := g.Clone()
	c.Constraints[0].Perimeter = false
	if !g.Constraints[0].Perimeter {
		t.Error("Clone shares constraint slice")
	}
	var nilGeo *Geometry
	if nilGeo.Clone() != nil {
		t.Error("Clone(nil) should be nil")
	}
}
