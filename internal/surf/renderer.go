package surf

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer draws the ocean mesh and the sky. It owns the GPU buffers; the
// mesh engine only ever hands it CPU-side vertex and index slices.
type Renderer struct {
	// Ocean program.
	oceanProg uint32
	oceanVAO  uint32
	oceanVBO  uint32
	oceanEBO  uint32

	uViewProj  int32
	uTime      int32
	uLineWidth int32
	uGridSize  int32

	// Sky program (fullscreen quad).
	skyProg uint32
	skyVAO  uint32
	skyVBO  uint32
	skyTime int32

	indexCount int32

	// Reusable upload buffer to avoid per-frame heap allocations.
	vertBuf []float32
}

// NewRenderer allocates GPU buffers sized for the grid's fixed vertex and
// index counts.
func NewRenderer(grid *OceanGrid) (*Renderer, error) {
	oceanProg, err := linkProgram(oceanVertSrc, oceanFragSrc)
	if err != nil {
		return nil, fmt.Errorf("ocean program: %w", err)
	}
	skyProg, err := linkProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		gl.DeleteProgram(oceanProg)
		return nil, fmt.Errorf("sky program: %w", err)
	}

	r := &Renderer{
		oceanProg: oceanProg,
		skyProg:   skyProg,
		vertBuf:   make([]float32, len(grid.Vertices)*5),
	}

	// Ocean VAO/VBO/EBO. Vertex layout: vec3 position + vec2 uv, 20 bytes.
	gl.GenVertexArrays(1, &r.oceanVAO)
	gl.GenBuffers(1, &r.oceanVBO)
	gl.GenBuffers(1, &r.oceanEBO)
	gl.BindVertexArray(r.oceanVAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.oceanVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertBuf)*4, nil, gl.STREAM_DRAW)
	stride := int32(5 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.oceanEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(grid.Indices)*4, nil, gl.STREAM_DRAW)

	gl.UseProgram(oceanProg)
	r.uViewProj = gl.GetUniformLocation(oceanProg, gl.Str("uViewProj\x00"))
	r.uTime = gl.GetUniformLocation(oceanProg, gl.Str("uTime\x00"))
	r.uLineWidth = gl.GetUniformLocation(oceanProg, gl.Str("uLineWidth\x00"))
	r.uGridSize = gl.GetUniformLocation(oceanProg, gl.Str("uGridSize\x00"))
	gl.Uniform1f(r.uGridSize, float32(grid.gridSize))

	// Sky: fullscreen quad in NDC.
	gl.GenVertexArrays(1, &r.skyVAO)
	gl.GenBuffers(1, &r.skyVBO)
	gl.BindVertexArray(r.skyVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.skyVBO)
	quad := [12]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	gl.UseProgram(skyProg)
	r.skyTime = gl.GetUniformLocation(skyProg, gl.Str("uTime\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.oceanVBO, r.oceanEBO, r.skyVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.oceanVAO, r.skyVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.oceanProg, r.skyProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

// packOceanVertices fills dst with this tick's interleaved position and UV
// data. Vertex x/z are camera-relative, so the render eye's x/z is added
// back: the surface stays centered under the viewer no matter how far the
// advection position has flowed ahead of a stationary eye.
func packOceanVertices(dst []float32, grid *OceanGrid, eye mgl32.Vec3) {
	for i, v := range grid.Vertices {
		dst[i*5] = v.Position.X() + eye.X()
		dst[i*5+1] = v.Position.Y()
		dst[i*5+2] = v.Position.Z() + eye.Z()
		dst[i*5+3] = v.UV.X()
		dst[i*5+4] = v.UV.Y()
	}
}

// UploadMesh streams this tick's vertex positions and filtered indices to
// the GPU, anchored at the render eye.
func (r *Renderer) UploadMesh(grid *OceanGrid, eye mgl32.Vec3) {
	packOceanVertices(r.vertBuf, grid, eye)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.oceanVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.vertBuf)*4, gl.Ptr(&r.vertBuf[0]))

	r.indexCount = int32(len(grid.FilteredIndices))
	if r.indexCount > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.oceanEBO)
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(grid.FilteredIndices)*4, gl.Ptr(&grid.FilteredIndices[0]))
	}
}

// Draw renders the sky then the ocean with the tick's audio-modulated line
// width.
func (r *Renderer) Draw(viewProj mgl32.Mat4, timeS, lineWidth float32, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Sky first, depth writes off so the ocean always draws over it.
	gl.DepthMask(false)
	gl.UseProgram(r.skyProg)
	gl.BindVertexArray(r.skyVAO)
	gl.Uniform1f(r.skyTime, timeS)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.DepthMask(true)

	if r.indexCount == 0 {
		return
	}
	gl.UseProgram(r.oceanProg)
	gl.BindVertexArray(r.oceanVAO)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(r.uTime, timeS)
	gl.Uniform1f(r.uLineWidth, lineWidth)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
}
