package surf

import "github.com/go-gl/mathgl/mgl32"

// TerrainParams are the audio-modulated values consumed by the mesh engine
// and the renderer each tick.
type TerrainParams struct {
	DetailAmplitude float32
	DetailFrequency float32
	LineWidth       float32
}

// MapBands translates a band snapshot into terrain parameters. Pure: only
// the detail layer is modulated, keeping the base terrain physics surface
// immune to audio.
func MapBands(bands AudioBands, physics OceanPhysics, mapping AudioReactiveMapping) TerrainParams {
	return TerrainParams{
		DetailAmplitude: physics.DetailAmplitude + bands.Low*mapping.BassToAmplitude,
		DetailFrequency: physics.DetailFrequency + bands.Mid*mapping.MidToFrequency,
		LineWidth:       physics.BaseLineWidth + bands.High*mapping.HighToLineWidth,
	}
}

// OceanSystem couples the grid with its physics parameters and audio
// mapping. Single-threaded: only the render loop may call Update.
type OceanSystem struct {
	Grid    *OceanGrid
	Physics OceanPhysics
	mapping AudioReactiveMapping
}

func NewOceanSystem(physics OceanPhysics, mapping AudioReactiveMapping) *OceanSystem {
	return &OceanSystem{
		Grid:    NewOceanGrid(physics),
		Physics: physics,
		mapping: mapping,
	}
}

// Update maps the band snapshot to terrain parameters, advances the mesh one
// tick, and returns the parameters for the renderer's uniforms.
func (o *OceanSystem) Update(timeS float32, bands AudioBands, cameraPos mgl32.Vec3) TerrainParams {
	p := MapBands(bands, o.Physics, o.mapping)
	o.Grid.Update(timeS, p.DetailAmplitude, p.DetailFrequency, cameraPos, o.Physics)
	return p
}

// HeightAt exposes the stable terrain height for physics callers (for
// example the floating camera preset).
func (o *OceanSystem) HeightAt(worldX, worldZ float32) float32 {
	return o.Grid.QueryBaseTerrain(worldX, worldZ, o.Physics)
}
