package surf

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Ocean vertex shader: world-space grid vertices through the view-projection
// matrix, passing UV and height to the fragment stage.
const oceanVertSrc = `#version 410 core

layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aUV;

uniform mat4 uViewProj;

out vec2 vUV;
out float vHeight;
out float vDepth;

void main() {
    vUV = aUV;
    vHeight = aPos.y;
    vec4 clip = uViewProj * vec4(aPos, 1.0);
    vDepth = clip.w;
    gl_Position = clip;
}
` + "\x00"

// Ocean fragment shader: neon wireframe over a dark surface. Grid lines come
// from the UV lattice; uLineWidth is audio-modulated and widens the glow.
const oceanFragSrc = `#version 410 core

uniform float uTime;
uniform float uLineWidth;
uniform float uGridSize;

in vec2 vUV;
in float vHeight;
in float vDepth;
out vec4 FragColor;

void main() {
    vec2 cell = fract(vUV * uGridSize);
    vec2 d = min(cell, 1.0 - cell);
    vec2 fw = fwidth(vUV * uGridSize) + 1e-6;
    float line = 1.0 - smoothstep(0.0, uLineWidth * 40.0 + 1.0, min(d.x / fw.x, d.y / fw.y));

    // Synthwave palette: cyan troughs to magenta crests, slowly hue-cycling.
    float h = clamp(vHeight * 0.01 + 0.5, 0.0, 1.0);
    vec3 trough = vec3(0.0, 0.8, 0.9);
    vec3 crest = vec3(0.9, 0.2, 0.9);
    vec3 lineColor = mix(trough, crest, h) * (0.8 + 0.2 * sin(uTime * 0.2));

    vec3 base = vec3(0.02, 0.01, 0.06);
    vec3 color = mix(base, lineColor, line);

    // Fade to the horizon so the wrap seam never pops.
    float fog = clamp(vDepth / 1500.0, 0.0, 1.0);
    color = mix(color, vec3(0.05, 0.01, 0.10), fog);

    FragColor = vec4(color, 1.0);
}
` + "\x00"

// Sky vertex shader: a VBO fullscreen quad in NDC (no gl_VertexID).
const skyVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;

out vec2 vNDC;

void main() {
    vNDC = aPos;
    gl_Position = vec4(aPos, 0.9999, 1.0);
}
` + "\x00"

// Sky fragment shader: vertical dusk gradient with a slow color drift.
const skyFragSrc = `#version 410 core

uniform float uTime;

in vec2 vNDC;
out vec4 FragColor;

void main() {
    float y = vNDC.y * 0.5 + 0.5;
    vec3 horizon = vec3(0.45, 0.10, 0.35) * (0.9 + 0.1 * sin(uTime * 0.1));
    vec3 zenith = vec3(0.02, 0.01, 0.08);
    vec3 color = mix(horizon, zenith, smoothstep(0.0, 0.8, y));
    FragColor = vec4(color, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
