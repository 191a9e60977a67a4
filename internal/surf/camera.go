package surf

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CameraPath computes an eye position and look-at target for a point in
// time. Pure parametric motion; no state.
type CameraPath interface {
	EyeTarget(timeS float64) (eye, target mgl32.Vec3)
}

// FixedCamera keeps the eye stationary while the grid flows beneath it at a
// simulated velocity. Default preset.
type FixedCamera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	// SimulatedVelocity flows the grid forward (m/s) despite the eye not
	// moving.
	SimulatedVelocity float32
}

func DefaultFixedCamera() FixedCamera {
	return FixedCamera{
		Position:          mgl32.Vec3{0, 101, 0}, // just above the tallest hills
		Target:            mgl32.Vec3{0, 0, 100},
		SimulatedVelocity: 150,
	}
}

func (c FixedCamera) EyeTarget(timeS float64) (mgl32.Vec3, mgl32.Vec3) {
	return c.Position, c.Target
}

// BasicPath is straight-line flight at constant altitude, looking slightly
// down toward the surface.
type BasicPath struct {
	Altitude     float32 // meters
	ForwardSpeed float32 // meters per second
	LookAhead    float32 // meters
}

func DefaultBasicPath() BasicPath {
	return BasicPath{Altitude: 30, ForwardSpeed: 150, LookAhead: 150}
}

func (p BasicPath) EyeTarget(timeS float64) (mgl32.Vec3, mgl32.Vec3) {
	z := float32(timeS) * p.ForwardSpeed
	eye := mgl32.Vec3{0, p.Altitude, z}
	// Target ahead and ~40% lower than the eye for a downward angle.
	target := mgl32.Vec3{0, p.Altitude * 0.6, z + p.LookAhead}
	return eye, target
}

// Journey is the cinematic preset: layered sine motion on every axis with
// sweeping arcs, weaving forward progress, and altitude swoops.
type Journey struct {
	XFreqPrimary, XAmpPrimary     float32
	XFreqSecondary, XAmpSecondary float32

	ZForwardSpeed                 float32
	ZWeaveFreqPrimary, ZWeaveAmpPrimary     float32
	ZWeaveFreqSecondary, ZWeaveAmpSecondary float32

	YBaseAltitude              float32
	YSwoopFreq, YSwoopAmp      float32
	YDetailFreq, YDetailAmp    float32
	YMinAltitude               float32

	TargetXPanFreq, TargetXPanAmp float32
	TargetZAhead                  float32
	TargetZOscFreq, TargetZOscAmp float32
	TargetYFraction               float32
	TargetYOscFreq, TargetYOscAmp float32
}

func DefaultJourney() Journey {
	return Journey{
		XFreqPrimary: 0.2, XAmpPrimary: 80,
		XFreqSecondary: 0.7, XAmpSecondary: 30,

		ZForwardSpeed:     8,
		ZWeaveFreqPrimary: 0.5, ZWeaveAmpPrimary: 40,
		ZWeaveFreqSecondary: 1.1, ZWeaveAmpSecondary: 20,

		YBaseAltitude: 80,
		YSwoopFreq:    0.3, YSwoopAmp: 30,
		YDetailFreq: 1.3, YDetailAmp: 10,
		YMinAltitude: 50,

		TargetXPanFreq: 0.4, TargetXPanAmp: 50,
		TargetZAhead:   200,
		TargetZOscFreq: 0.6, TargetZOscAmp: 30,
		TargetYFraction: 0.7,
		TargetYOscFreq:  0.5, TargetYOscAmp: 20,
	}
}

func (p Journey) EyeTarget(timeS float64) (mgl32.Vec3, mgl32.Vec3) {
	t := timeS

	x := sinf(t*float64(p.XFreqPrimary))*p.XAmpPrimary +
		cosf(t*float64(p.XFreqSecondary))*p.XAmpSecondary

	zForward := float32(t) * p.ZForwardSpeed
	zWeave := sinf(t*float64(p.ZWeaveFreqPrimary))*p.ZWeaveAmpPrimary +
		cosf(t*float64(p.ZWeaveFreqSecondary))*p.ZWeaveAmpSecondary
	z := zForward + zWeave

	y := p.YBaseAltitude +
		sinf(t*float64(p.YSwoopFreq))*p.YSwoopAmp +
		sinf(t*float64(p.YDetailFreq))*p.YDetailAmp
	if y < p.YMinAltitude {
		y = p.YMinAltitude
	}

	eye := mgl32.Vec3{x, y, z}
	target := mgl32.Vec3{
		x + sinf(t*float64(p.TargetXPanFreq))*p.TargetXPanAmp,
		y*p.TargetYFraction + sinf(t*float64(p.TargetYOscFreq))*p.TargetYOscAmp,
		z + p.TargetZAhead + cosf(t*float64(p.TargetZOscFreq))*p.TargetZOscAmp,
	}
	return eye, target
}

// FloatingPath flies forward while hugging the base terrain at a fixed
// height, via the mesh engine's stable-height query.
type FloatingPath struct {
	HeightAboveTerrain float32
	ForwardSpeed       float32
	LookAhead          float32

	// HeightAt samples the stable base terrain (OceanSystem.HeightAt).
	HeightAt func(worldX, worldZ float32) float32
}

func DefaultFloatingPath(heightAt func(x, z float32) float32) FloatingPath {
	return FloatingPath{
		HeightAboveTerrain: 20,
		ForwardSpeed:       150,
		LookAhead:          150,
		HeightAt:           heightAt,
	}
}

func (p FloatingPath) EyeTarget(timeS float64) (mgl32.Vec3, mgl32.Vec3) {
	z := float32(timeS) * p.ForwardSpeed
	y := p.HeightAt(0, z) + p.HeightAboveTerrain
	eye := mgl32.Vec3{0, y, z}
	aheadY := p.HeightAt(0, z+p.LookAhead) + p.HeightAboveTerrain*0.5
	target := mgl32.Vec3{0, aheadY, z + p.LookAhead}
	return eye, target
}

// CameraSystem wraps a path and produces the view-projection matrix plus the
// position the mesh engine advects against.
type CameraSystem struct {
	path CameraPath
}

func NewCameraSystem(path CameraPath) *CameraSystem {
	return &CameraSystem{path: path}
}

// FlowPos is the position the ocean grid treadmills against. For the fixed
// preset the eye never moves, so a simulated forward velocity stands in.
func (c *CameraSystem) FlowPos(timeS float64) mgl32.Vec3 {
	eye, _ := c.path.EyeTarget(timeS)
	if fixed, ok := c.path.(FixedCamera); ok {
		return eye.Add(mgl32.Vec3{0, 0, fixed.SimulatedVelocity * float32(timeS)})
	}
	return eye
}

// ViewProj returns the combined view-projection matrix and eye position.
// The camera never rolls; Y stays up.
func (c *CameraSystem) ViewProj(timeS float64, aspect float32, cfg RenderConfig) (mgl32.Mat4, mgl32.Vec3) {
	eye, target := c.path.EyeTarget(timeS)
	view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(cfg.FOVDegrees), aspect, cfg.NearPlane, cfg.FarPlane)
	return proj.Mul4(view), eye
}

func sinf(x float64) float32 { return float32(math.Sin(x)) }
func cosf(x float64) float32 { return float32(math.Cos(x)) }
