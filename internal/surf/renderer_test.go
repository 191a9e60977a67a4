package surf

import (
	"testing"
)

func TestPackedMeshCoversEye(t *testing.T) {
	p := testPhysics()
	half := float32(p.GridSize) * p.GridSpacing / 2
	cfg := DefaultRenderConfig()

	o := NewOceanSystem(p, DefaultAudioReactiveMapping())
	presets := []struct {
		name string
		path CameraPath
	}{
		{"fixed", DefaultFixedCamera()},
		{"basic", DefaultBasicPath()},
		{"cinematic", DefaultJourney()},
		{"floating", DefaultFloatingPath(o.HeightAt)},
	}

	buf := make([]float32, len(o.Grid.Vertices)*5)
	for _, preset := range presets {
		t.Run(preset.name, func(t *testing.T) {
			cam := NewCameraSystem(preset.path)
			for _, ts := range []float64{0.5, 10, 30, 90} {
				// The fixed preset's flow position runs far ahead of its
				// stationary eye; the packed surface must still surround the
				// eye, not the flow position.
				o.Update(float32(ts), AudioBands{}, cam.FlowPos(ts))
				_, eye := cam.ViewProj(ts, 16.0/9.0, cfg)
				packOceanVertices(buf, o.Grid, eye)

				minX, maxX := buf[0], buf[0]
				minZ, maxZ := buf[2], buf[2]
				for i := 1; i < len(o.Grid.Vertices); i++ {
					x, z := buf[i*5], buf[i*5+2]
					if x < minX {
						minX = x
					}
					if x > maxX {
						maxX = x
					}
					if z < minZ {
						minZ = z
					}
					if z > maxZ {
						maxZ = z
					}
				}
				if eye.X() < minX || eye.X() > maxX || eye.Z() < minZ || eye.Z() > maxZ {
					t.Fatalf("t=%v: eye (%v, %v) outside packed surface x [%v, %v] z [%v, %v]",
						ts, eye.X(), eye.Z(), minX, maxX, minZ, maxZ)
				}
				// And the surface spans the full grid around it, not a sliver.
				if maxX-minX < half || maxZ-minZ < half {
					t.Fatalf("t=%v: packed surface degenerate: x span %v, z span %v", ts, maxX-minX, maxZ-minZ)
				}
			}
		})
	}
}
