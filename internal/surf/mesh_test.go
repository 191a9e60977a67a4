package surf

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// testPhysics is a small grid for fast tests: 10x10 cells, 10m spacing,
// 100m extent.
func testPhysics() OceanPhysics {
	p := DefaultOceanPhysics()
	p.GridSize = 10
	p.GridSpacing = 10
	return p
}

func TestNewOceanGridCounts(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	wantVerts := (p.GridSize + 1) * (p.GridSize + 1)
	if len(g.Vertices) != wantVerts {
		t.Errorf("vertex count = %d, want %d", len(g.Vertices), wantVerts)
	}
	wantIdx := p.GridSize * p.GridSize * 6
	if len(g.Indices) != wantIdx {
		t.Errorf("index count = %d, want %d", len(g.Indices), wantIdx)
	}
	if len(g.FilteredIndices) != wantIdx {
		t.Errorf("initial filtered index count = %d, want %d", len(g.FilteredIndices), wantIdx)
	}

	// Flat and centered on the origin.
	half := float32(p.GridSize) * p.GridSpacing / 2
	for i, v := range g.Vertices {
		if v.Position.Y() != 0 {
			t.Fatalf("vertex %d not flat: %v", i, v.Position)
		}
		if v.Position.X() < -half || v.Position.X() > half ||
			v.Position.Z() < -half || v.Position.Z() > half {
			t.Fatalf("vertex %d outside grid: %v", i, v.Position)
		}
	}
}

func TestRemEuclid(t *testing.T) {
	tests := []struct {
		v, m, want float32
	}{
		{5, 100, 5},
		{105, 100, 5},
		{-5, 100, 95},
		{-105, 100, 95},
		{0, 100, 0},
		{100, 100, 0},
		{-350, 100, 50}, // multiple wraps in one step
	}
	for _, tt := range tests {
		if got := remEuclid(tt.v, tt.m); absf(got-tt.want) > 1e-4 {
			t.Errorf("remEuclid(%v, %v) = %v, want %v", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestUpdateTreadmillWrap(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	// The two scenarios from one tick with camera delta +10 on a 100m grid:
	// local 45 slides to 35 (no wrap), local -48 slides to -58 and wraps to 42.
	if got := remEuclid(45-10+50, 100) - 50; absf(got-35) > 1e-4 {
		t.Errorf("in-range vertex landed at %v, want 35", got)
	}
	if got := remEuclid(-48-10+50, 100) - 50; absf(got-42) > 1e-4 {
		t.Errorf("wrapped vertex landed at %v, want 42", got)
	}

	// After any update every local coordinate is in [-half, half).
	half := float32(p.GridSize) * p.GridSpacing / 2
	g.Update(1, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{0, 0, 10}, p)
	for i, v := range g.Vertices {
		for _, c := range []float32{v.Position.X(), v.Position.Z()} {
			if c < -half || c >= half {
				t.Fatalf("vertex %d out of range after wrap: %v", i, v.Position)
			}
		}
	}
}

func TestUpdateHugeDeltaStaysBounded(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	// A camera jump of many extents in a single tick must still land every
	// vertex in range.
	g.Update(1, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{1234.5, 0, -987.6}, p)
	half := float32(p.GridSize) * p.GridSpacing / 2
	for i, v := range g.Vertices {
		if v.Position.X() < -half || v.Position.X() >= half ||
			v.Position.Z() < -half || v.Position.Z() >= half {
			t.Fatalf("vertex %d out of range after huge delta: %v", i, v.Position)
		}
	}
}

func TestBaseHeightCacheStable(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	cam := mgl32.Vec3{}
	g.Update(1, p.DetailAmplitude, p.DetailFrequency, cam, p)
	snap := append([]float32(nil), g.baseHeights...)

	// Same camera: no vertex wraps, so the base cache must not change even as
	// time (and the detail layer) moves on.
	g.Update(2, p.DetailAmplitude, p.DetailFrequency, cam, p)
	for i := range snap {
		if g.baseHeights[i] != snap[i] {
			t.Fatalf("base height %d recomputed without a wrap: %v vs %v", i, g.baseHeights[i], snap[i])
		}
	}
}

func TestBaseHeightRecomputeOnWrap(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	g.Update(1, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{}, p)
	snap := append([]float32(nil), g.baseHeights...)

	// Moving exactly one extent wraps every vertex onto new world terrain.
	extent := float32(p.GridSize) * p.GridSpacing
	g.Update(2, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{0, 0, extent}, p)

	changed := 0
	for i := range snap {
		if g.baseHeights[i] != snap[i] {
			changed++
		}
	}
	if changed == 0 {
		t.Fatal("full-extent camera jump must recompute base heights")
	}
}

func TestBaseTerrainIgnoresDetailParams(t *testing.T) {
	p := testPhysics()
	a := NewOceanGrid(p)
	b := NewOceanGrid(p)

	// Audio modulation reaches only the detail layer; the physics surface
	// must be identical regardless.
	a.Update(1, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{0, 0, 30}, p)
	b.Update(1, p.DetailAmplitude*4, p.DetailFrequency*2, mgl32.Vec3{0, 0, 30}, p)
	for i := range a.baseHeights {
		if a.baseHeights[i] != b.baseHeights[i] {
			t.Fatalf("base height %d depends on detail params: %v vs %v", i, a.baseHeights[i], b.baseHeights[i])
		}
	}
}

func TestFilterStretchedTriangles(t *testing.T) {
	// 64m extent with 2m spacing: the stretch threshold (20m) is well below
	// the ~62m seam edges a wrap produces.
	p := testPhysics()
	p.GridSize = 32
	p.GridSpacing = 2
	g := NewOceanGrid(p)

	// Half-extent move wraps a band of vertices; the seam triangles span the
	// grid and must be dropped for the tick.
	g.Update(1, p.DetailAmplitude, p.DetailFrequency, mgl32.Vec3{0, 0, 32}, p)

	if len(g.FilteredIndices)%3 != 0 {
		t.Fatalf("filtered indices not whole triangles: %d", len(g.FilteredIndices))
	}
	if len(g.FilteredIndices) >= len(g.Indices) {
		t.Fatal("seam triangles must be filtered after a wrap")
	}

	maxEdge := p.GridSpacing * stretchFactor
	maxEdgeSq := maxEdge * maxEdge
	for i := 0; i+2 < len(g.FilteredIndices); i += 3 {
		v0 := g.Vertices[g.FilteredIndices[i]].Position
		v1 := g.Vertices[g.FilteredIndices[i+1]].Position
		v2 := g.Vertices[g.FilteredIndices[i+2]].Position
		if distSq(v0, v1) >= maxEdgeSq || distSq(v1, v2) >= maxEdgeSq || distSq(v2, v0) >= maxEdgeSq {
			t.Fatalf("stretched triangle survived at %d", i)
		}
	}
}

func TestQueryBaseTerrainMatchesCache(t *testing.T) {
	p := testPhysics()
	g := NewOceanGrid(p)

	cam := mgl32.Vec3{0, 0, 7}
	g.Update(1, 0, p.DetailFrequency, cam, p) // zero detail amplitude isolates the base layer

	for i, v := range g.Vertices {
		worldX := cam.X() + v.Position.X()
		worldZ := cam.Z() + v.Position.Z()
		want := g.QueryBaseTerrain(worldX, worldZ, p)
		if math.Abs(float64(v.Position.Y()-want)) > 1e-3 {
			t.Fatalf("vertex %d height %v, query says %v", i, v.Position.Y(), want)
		}
	}
}
