package particles

import (
	"math"
	"testing"
)

func TestSystem_FieldAndPotential(t *testing.T) {
	s := NewSystem()
	mustSpawn(t, s, Particle{Mass: 1, Charge: 1})

	fx, fy := s.Field(2, 0)
	if math.Abs(fx+0.25) > 1e-12 || fy != 0 {
		t.Errorf("Field(2, 0) = (%v, %v), want (-0.25, 0)", fx, fy)
	}
	if got := s.Potential(2, 0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Potential(2, 0) = %v, want 0.5", got)
	}

	// Field is not scaled by K.
	s.FlipK()
	if fx2, _ := s.Field(2, 0); fx2 != fx {
		t.Errorf("Field changed with K: %v vs %v", fx2, fx)
	}
}

func TestSystem_FieldSingularity(t *testing.T) {
	s := NewSystem()
	mustSpawn(t, s, Particle{X: 5, Y: 5, Mass: 1, Charge: 1})

	fx, fy := s.Field(5, 5)
	if !math.IsNaN(fx) || !math.IsNaN(fy) {
		t.Errorf("Field on a particle = (%v, %v), want NaN", fx, fy)
	}
	if got := s.Potential(5, 5); !math.IsInf(got, 1) {
		t.Errorf("Potential on a particle = %v, want +Inf", got)
	}

	s.MinDistance = 1
	fx, fy = s.Field(5, 5)
	if fx != 0 || fy != 0 {
		t.Errorf("floored Field = (%v, %v), want (0, 0)", fx, fy)
	}
	if got := s.Potential(5, 5); got != 1 {
		t.Errorf("floored Potential = %v, want 1", got)
	}
	if got := s.Potential(5, 15); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("Potential beyond floor = %v, want 0.1", got)
	}
}

func TestGrid_Point(t *testing.T) {
	g := Grid{XCount: 3, YCount: 1, Width: 100, Height: 60}

	tests := []struct {
		i, j  int
		wantX float64
		wantY float64
	}{
		{0, 0, 25, 30},
		{1, 0, 50, 30},
		{2, 0, 75, 30},
	}
	for _, tt := range tests {
		x, y := g.Point(tt.i, tt.j)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("Point(%d, %d) = (%v, %v), want (%v, %v)", tt.i, tt.j, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestSystem_SampleField(t *testing.T) {
	s := NewSystem()
	mustSpawn(t, s, Particle{X: 80, Y: 50, Mass: 1, Charge: 1})

	samples := s.SampleField(Grid{XCount: 1, YCount: 1, Width: 100, Height: 100})
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	got := samples[0]
	if got.X != 50 || got.Y != 50 {
		t.Errorf("sample origin = (%v, %v), want (50, 50)", got.X, got.Y)
	}
	if !got.Valid {
		t.Fatal("expected a valid sample")
	}
	if math.Abs(got.DX-FieldArrowLength) > 1e-9 || math.Abs(got.DY) > 1e-9 {
		t.Errorf("arrow = (%v, %v), want (%v, 0)", got.DX, got.DY, FieldArrowLength)
	}
	if math.Abs(got.Magnitude-1.0/900) > 1e-12 {
		t.Errorf("magnitude = %v, want %v", got.Magnitude, 1.0/900)
	}
}

func TestSystem_SampleFieldOrderAndLength(t *testing.T) {
	s := NewSystem()
	mustSpawn(t, s,
		Particle{X: 13, Y: 17, Mass: 1, Charge: 10},
		Particle{X: 71, Y: 40, Mass: 1, Charge: -10},
	)
	g := Grid{XCount: 4, YCount: 3, Width: 100, Height: 80}

	samples := s.SampleField(g)
	if len(samples) != 12 {
		t.Fatalf("expected 12 samples, got %d", len(samples))
	}
	for i := 0; i < g.XCount; i++ {
		for j := 0; j < g.YCount; j++ {
			smp := samples[i*g.YCount+j]
			x, y := g.Point(i, j)
			if smp.X != x || smp.Y != y {
				t.Errorf("sample %d,%d at (%v, %v), want (%v, %v)", i, j, smp.X, smp.Y, x, y)
			}
			if l := math.Hypot(smp.DX, smp.DY); math.Abs(l-FieldArrowLength) > 1e-9 {
				t.Errorf("sample %d,%d arrow length %v", i, j, l)
			}
		}
	}
}

func TestSystem_SampleFieldDegenerate(t *testing.T) {
	s := NewSystem()

	for _, smp := range s.SampleField(Grid{XCount: 2, YCount: 2, Width: 10, Height: 10}) {
		if smp.Valid || smp.DX != 0 || smp.DY != 0 || smp.Magnitude != 0 {
			t.Errorf("empty system produced %+v", smp)
		}
	}

	// Grid point (50, 50) sits exactly on the particle.
	mustSpawn(t, s, Particle{X: 50, Y: 50, Mass: 1, Charge: 1})
	samples := s.SampleField(Grid{XCount: 1, YCount: 1, Width: 100, Height: 100})
	if samples[0].Valid {
		t.Errorf("expected invalid sample on a particle, got %+v", samples[0])
	}

	if got := s.SampleField(Grid{XCount: 0, YCount: 5, Width: 1, Height: 1}); got != nil {
		t.Errorf("expected nil for empty grid, got %d samples", len(got))
	}
}

func TestSystem_SamplePotential(t *testing.T) {
	s := NewSystem()
	mustSpawn(t, s, Particle{X: 0, Y: 0, Mass: 1, Charge: 10})

	g := Grid{XCount: 2, YCount: 1, Width: 90, Height: 80}
	cells := s.SamplePotential(g)
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	for i, c := range cells {
		if c.Width != 45 || c.Height != 80 {
			t.Errorf("cell %d size = %vx%v, want 45x80", i, c.Width, c.Height)
		}
		want := s.Potential(c.X, c.Y)
		if c.Potential != want {
			t.Errorf("cell %d potential = %v, want %v", i, c.Potential, want)
		}
	}
	// (30, 40) is 50 away from the charge.
	if cells[0].X != 30 || math.Abs(cells[0].Potential-0.2) > 1e-12 {
		t.Errorf("cell 0 = %+v, want potential 0.2 at x=30", cells[0])
	}
}

func TestGrid_PointOrigin(t *testing.T) {
	g := Grid{XCount: 1, YCount: 1, Width: 10, Height: 20, OriginX: -5, OriginY: 100}
	if x, y := g.Point(0, 0); x != 0 || y != 110 {
		t.Errorf("Point(0, 0) = (%v, %v), want (0, 110)", x, y)
	}
}
