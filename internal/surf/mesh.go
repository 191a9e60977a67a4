package surf

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
)

// wrapEpsilon is the position change above which a vertex counts as wrapped
// (relocated to the far side of the grid) this tick.
const wrapEpsilon = 0.01

// stretchFactor: any triangle edge longer than stretchFactor * grid spacing
// is a wrap artifact and gets filtered for the tick.
const stretchFactor = 10.0

// Vertex is one ocean mesh vertex. X/Z are camera-relative (treadmill)
// coordinates, Y is the combined base + detail height.
type Vertex struct {
	Position mgl32.Vec3
	UV       mgl32.Vec2
}

type noiseGen struct {
	p *perlin.Perlin
}

func newNoiseGen(seed int64) noiseGen {
	return noiseGen{p: perlin.NewPerlin(2, 2, 3, seed)}
}

func (n noiseGen) Sample3D(x, y, z float64) float64 {
	return n.p.Noise3D(x, y, z)
}

// OceanGrid is a fixed-size vertex grid that simulates an unbounded surface:
// vertices flow opposite to camera motion and wrap toroidally, so the mesh
// never regenerates. Two height layers share the grid: a cached,
// time-independent base terrain used for physics, and an always-recomputed
// audio-reactive detail ripple.
type OceanGrid struct {
	Vertices []Vertex
	Indices  []uint32
	// FilteredIndices excludes triangles stretched by wrapping; recomputed
	// every tick, always a subset of Indices in whole triangles.
	FilteredIndices []uint32

	noise         noiseGen
	gridSize      int
	gridSpacing   float32
	lastCameraPos mgl32.Vec3

	// Base terrain cache, index-aligned with Vertices. A cached height is
	// valid iff the matching dirty flag is clear.
	baseHeights []float32
	dirtyBase   []bool
}

// NewOceanGrid builds a flat (GridSize+1)^2 XZ plane centered on the origin
// with full triangle indices. Vertex and index counts never change after
// this.
func NewOceanGrid(physics OceanPhysics) *OceanGrid {
	gridSize := physics.GridSize
	spacing := physics.GridSpacing
	half := float32(gridSize) * spacing / 2

	vertices := make([]Vertex, 0, (gridSize+1)*(gridSize+1))
	for z := 0; z <= gridSize; z++ {
		for x := 0; x <= gridSize; x++ {
			vertices = append(vertices, Vertex{
				Position: mgl32.Vec3{float32(x)*spacing - half, 0, float32(z)*spacing - half},
				UV:       mgl32.Vec2{float32(x) / float32(gridSize), float32(z) / float32(gridSize)},
			})
		}
	}

	// Counter-clockwise winding, two triangles per cell.
	indices := make([]uint32, 0, gridSize*gridSize*6)
	for z := 0; z < gridSize; z++ {
		for x := 0; x < gridSize; x++ {
			topLeft := uint32(z*(gridSize+1) + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*(gridSize+1) + x)
			bottomRight := bottomLeft + 1
			indices = append(indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}

	n := len(vertices)
	g := &OceanGrid{
		Vertices:        vertices,
		Indices:         indices,
		FilteredIndices: append([]uint32(nil), indices...),
		noise:           newNoiseGen(physics.NoiseSeed),
		gridSize:        gridSize,
		gridSpacing:     spacing,
		baseHeights:     make([]float32, n),
		dirtyBase:       make([]bool, n),
	}
	for i := range g.dirtyBase {
		g.dirtyBase[i] = true // everything needs its first base sample
	}
	return g
}

// QueryBaseTerrain returns the stable terrain height at an arbitrary world
// position, bypassing the per-vertex cache. For physics and collision
// callers; never touches the live mesh.
func (g *OceanGrid) QueryBaseTerrain(worldX, worldZ float32, physics OceanPhysics) float32 {
	v := g.noise.Sample3D(
		float64(worldX*physics.BaseTerrainFrequency),
		float64(worldZ*physics.BaseTerrainFrequency),
		0, // base terrain is time-independent
	)
	return float32(v) * physics.BaseTerrainAmplitude
}

// Update advances the surface one tick: advect opposite to camera motion,
// wrap vertices toroidally, recompute base heights only for relocated
// vertices, add the audio-modulated detail layer everywhere, and filter
// stretched triangles. Mutates in place; never fails.
func (g *OceanGrid) Update(timeS, detailAmplitude, detailFrequency float32, cameraPos mgl32.Vec3, physics OceanPhysics) {
	detailT := float64(timeS * physics.WaveSpeed)

	cameraDelta := cameraPos.Sub(g.lastCameraPos)
	g.lastCameraPos = cameraPos

	extent := float32(g.gridSize) * g.gridSpacing
	half := extent / 2

	for i := range g.Vertices {
		v := &g.Vertices[i]

		// Treadmill: camera moves forward, grid flows backward.
		localX := v.Position.X() - cameraDelta.X()
		localZ := v.Position.Z() - cameraDelta.Z()

		// Toroidal wrap via true modulo, so arbitrary overflow in one tick
		// still lands in [-half, half).
		wrappedX := remEuclid(localX+half, extent) - half
		wrappedZ := remEuclid(localZ+half, extent) - half

		wrapped := absf(wrappedX-localX) > wrapEpsilon || absf(wrappedZ-localZ) > wrapEpsilon

		// World coordinates of the (post-wrap) vertex.
		worldX := cameraPos.X() + wrappedX
		worldZ := cameraPos.Z() + wrappedZ

		// Base layer: recompute only when the vertex now stands for a new
		// physical location; otherwise the cache is valid by invariant.
		baseHeight := g.baseHeights[i]
		if wrapped || g.dirtyBase[i] {
			baseHeight = float32(g.noise.Sample3D(
				float64(worldX*physics.BaseTerrainFrequency),
				float64(worldZ*physics.BaseTerrainFrequency),
				0,
			)) * physics.BaseTerrainAmplitude
			g.baseHeights[i] = baseHeight
			g.dirtyBase[i] = false
		}

		// Detail layer: animated and audio-reactive, so never cached.
		detailHeight := float32(g.noise.Sample3D(
			float64(worldX*detailFrequency),
			float64(worldZ*detailFrequency),
			detailT,
		)) * detailAmplitude

		v.Position = mgl32.Vec3{wrappedX, baseHeight + detailHeight, wrappedZ}
	}

	g.filterStretchedTriangles()
}

// filterStretchedTriangles rebuilds FilteredIndices, dropping any triangle
// with an edge longer than stretchFactor * spacing. Such edges only appear
// for the single tick in which one of the triangle's vertices wrapped to the
// opposite side of the grid.
func (g *OceanGrid) filterStretchedTriangles() {
	maxEdge := g.gridSpacing * stretchFactor
	maxEdgeSq := maxEdge * maxEdge

	g.FilteredIndices = g.FilteredIndices[:0]
	for t := 0; t+2 < len(g.Indices); t += 3 {
		i0, i1, i2 := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		v0 := g.Vertices[i0].Position
		v1 := g.Vertices[i1].Position
		v2 := g.Vertices[i2].Position

		if distSq(v0, v1) < maxEdgeSq && distSq(v1, v2) < maxEdgeSq && distSq(v2, v0) < maxEdgeSq {
			g.FilteredIndices = append(g.FilteredIndices, i0, i1, i2)
		}
	}
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}

// remEuclid maps v into [0, m) like Rust's rem_euclid (math.Mod keeps the
// dividend's sign, so negative inputs need the correction).
func remEuclid(v, m float32) float32 {
	r := float32(math.Mod(float64(v), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
