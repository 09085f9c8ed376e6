package colorcode

import "testing"

func TestFiberInfoFirstTube(t *testing.T) {
	info, ok := FiberInfo(1, 144)
	if !ok {
		t.Fatalf("FiberInfo(1, 144) not ok")
	}
	if info.TubeNumber != 1 || info.PositionInTube != 1 {
		t.Errorf("expected tube 1 position 1, got tube %d position %d", info.TubeNumber, info.PositionInTube)
	}
	if info.TubeColor.Name != "blue" || info.FiberColor.Name != "blue" {
		t.Errorf("expected blue/blue, got %s/%s", info.TubeColor.Name, info.FiberColor.Name)
	}
	if info.TubeGroup != 1 {
		t.Errorf("expected tube group 1, got %d", info.TubeGroup)
	}
}

func TestFiberInfoTubeBoundaries(t *testing.T) {
	tests := []struct {
		fiber      int
		count      int
		tube       int
		pos        int
		fiberColor string
		tubeColor  string
	}{
		{12, 144, 1, 12, "aqua", "blue"},
		{13, 144, 2, 1, "blue", "orange"},
		{144, 144, 12, 12, "aqua", "aqua"},
		{25, 48, 3, 1, "blue", "green"},
		{96, 96, 8, 12, "aqua", "black"},
		{288, 288, 24, 12, "aqua", "aqua"},
	}

	for _, tt := range tests {
		info, ok := FiberInfo(tt.fiber, tt.count)
		if !ok {
			t.Fatalf("FiberInfo(%d, %d) not ok", tt.fiber, tt.count)
		}
		if info.TubeNumber != tt.tube || info.PositionInTube != tt.pos {
			t.Errorf("fiber %d/%d: expected tube %d pos %d, got tube %d pos %d",
				tt.fiber, tt.count, tt.tube, tt.pos, info.TubeNumber, info.PositionInTube)
		}
		if info.FiberColor.Name != tt.fiberColor {
			t.Errorf("fiber %d/%d: expected fiber color %s, got %s", tt.fiber, tt.count, tt.fiberColor, info.FiberColor.Name)
		}
		if info.TubeColor.Name != tt.tubeColor {
			t.Errorf("fiber %d/%d: expected tube color %s, got %s", tt.fiber, tt.count, tt.tubeColor, info.TubeColor.Name)
		}
	}
}

func TestFiberInfoOutOfRange(t *testing.T) {
	cases := []struct{ fiber, count int }{
		{0, 144},
		{-1, 144},
		{145, 144},
		{13, 12},
		{1, 100}, // unsupported cable size
		{1, 0},
	}
	for _, c := range cases {
		if _, ok := FiberInfo(c.fiber, c.count); ok {
			t.Errorf("FiberInfo(%d, %d) should not resolve", c.fiber, c.count)
		}
	}
}

func TestFiberNumberRoundTrip(t *testing.T) {
	for _, count := range ValidFiberCounts {
		for n := 1; n <= count; n++ {
			info, ok := FiberInfo(n, count)
			if !ok {
				t.Fatalf("FiberInfo(%d, %d) not ok", n, count)
			}
			back, ok := FiberNumber(info.TubeNumber, info.PositionInTube, count)
			if !ok {
				t.Fatalf("FiberNumber(%d, %d, %d) not ok", info.TubeNumber, info.PositionInTube, count)
			}
			if back != n {
				t.Fatalf("round trip failed for fiber %d/%d: got %d", n, count, back)
			}
		}
	}
}

func TestFiberNumberInvalid(t *testing.T) {
	cases := []struct{ tube, pos, count int }{
		{0, 1, 144},
		{1, 0, 144},
		{1, 13, 144},
		{13, 1, 144}, // beyond last tube
		{2, 1, 12},
		{1, 1, 99},
	}
	for _, c := range cases {
		if _, ok := FiberNumber(c.tube, c.pos, c.count); ok {
			t.Errorf("FiberNumber(%d, %d, %d) should not resolve", c.tube, c.pos, c.count)
		}
	}
}

func TestColorPeriodicity(t *testing.T) {
	// Fiber color repeats every 12 fibers; tube color repeats every 12 tubes.
	for _, count := range ValidFiberCounts {
		for n := 1; n+FibersPerTube <= count; n++ {
			a, _ := FiberInfo(n, count)
			b, _ := FiberInfo(n+FibersPerTube, count)
			if a.FiberColor != b.FiberColor {
				t.Fatalf("fiber color at %d and %d differ in %dF cable", n, n+FibersPerTube, count)
			}
		}
	}

	// 288F has 24 tubes: tube 13 repeats tube 1's color in group 2.
	t1, _ := FiberInfo(1, 288)
	t13, _ := FiberInfo(1+12*FibersPerTube, 288)
	if t1.TubeColor != t13.TubeColor {
		t.Errorf("tube 13 should repeat tube 1's color")
	}
	if t13.TubeGroup != 2 {
		t.Errorf("tube 13 should be in group 2, got %d", t13.TubeGroup)
	}
}

func TestTubesFor(t *testing.T) {
	tubes := TubesFor(144)
	if len(tubes) != 12 {
		t.Fatalf("expected 12 tubes for 144F, got %d", len(tubes))
	}
	if tubes[0].StartFiber != 1 || tubes[0].EndFiber != 12 {
		t.Errorf("tube 1 range: got %d-%d", tubes[0].StartFiber, tubes[0].EndFiber)
	}
	if tubes[11].StartFiber != 133 || tubes[11].EndFiber != 144 {
		t.Errorf("tube 12 range: got %d-%d", tubes[11].StartFiber, tubes[11].EndFiber)
	}
	if tubes[11].TubeColor.Name != "aqua" {
		t.Errorf("tube 12 should be aqua, got %s", tubes[11].TubeColor.Name)
	}

	tubes = TubesFor(288)
	if len(tubes) != 24 {
		t.Fatalf("expected 24 tubes for 288F, got %d", len(tubes))
	}
	if tubes[12].TubeGroup != 2 {
		t.Errorf("tube 13 should be group 2, got %d", tubes[12].TubeGroup)
	}
	if tubes[12].TubeColor != tubes[0].TubeColor {
		t.Errorf("tube 13 color should repeat tube 1")
	}

	if TubesFor(100) != nil {
		t.Errorf("unsupported count should return nil")
	}
}

func TestFibersInTube(t *testing.T) {
	fibers := FibersInTube(2, 144)
	if len(fibers) != 12 {
		t.Fatalf("expected 12 fibers in tube 2, got %d", len(fibers))
	}
	if fibers[0].FiberNumber != 13 || fibers[11].FiberNumber != 24 {
		t.Errorf("tube 2 fiber range: got %d-%d", fibers[0].FiberNumber, fibers[11].FiberNumber)
	}
	for i, f := range fibers {
		if f.PositionInTube != i+1 {
			t.Errorf("fiber %d: expected position %d, got %d", f.FiberNumber, i+1, f.PositionInTube)
		}
	}

	if FibersInTube(13, 144) != nil {
		t.Errorf("tube 13 does not exist in a 144F cable")
	}
	if FibersInTube(1, 37) != nil {
		t.Errorf("unsupported cable size should return nil")
	}
}

func TestPaletteIsStable(t *testing.T) {
	p := Palette()
	if len(p) != FibersPerTube {
		t.Fatalf("expected %d palette entries, got %d", FibersPerTube, len(p))
	}
	if p[0].Name != "blue" || p[6].Name != "red" || p[11].Name != "aqua" {
		t.Errorf("palette order changed: %s, %s, %s", p[0].Name, p[6].Name, p[11].Name)
	}

	// Mutating the returned slice must not affect the engine.
	p[0].Name = "mutated"
	q := Palette()
	if q[0].Name != "blue" {
		t.Errorf("Palette returned a shared backing array")
	}
}
