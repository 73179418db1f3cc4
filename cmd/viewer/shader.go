package main

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute locations match the slots the mesh loader binds: position is
// always 0, and normal and map1 follow the declaration order of the
// meshes this viewer is pointed at.
const vertexSource = `#version 450 core
layout (location = 0) in vec4 position;
layout (location = 1) in vec3 normal;
layout (location = 2) in vec2 map1;

uniform mat4 mv;
uniform mat4 proj;

out vec3 vNormal;
out vec2 vUV;

void main() {
	gl_Position = proj * mv * position;
	vNormal = mat3(mv) * normal;
	vUV = map1;
}
`

const fragmentSource = `#version 450 core
layout (binding = 0) uniform sampler2D tex;
uniform bool textured;

in vec3 vNormal;
in vec2 vUV;
out vec4 color;

void main() {
	float light = 0.3 + 0.7 * max(dot(normalize(vNormal), vec3(0.0, 0.0, 1.0)), 0.0);
	vec4 base = textured ? texture(tex, vUV) : vec4(0.8);
	color = vec4(base.rgb * light, base.a);
}
`

type program struct {
	id   uint32
	mv   int32
	proj int32
	tex  int32
}

func compile(kind uint32, source string) (uint32, error) {
	s := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(s, 1, src, nil)
	gl.CompileShader(s)

	var ok int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(s, n, nil, gl.Str(log))
		gl.DeleteShader(s)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(log, "\x00"))
	}
	return s, nil
}

func newProgram() (*program, error) {
	vs, err := compile(gl.VERTEX_SHADER, vertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := compile(gl.FRAGMENT_SHADER, fragmentSource)
	if err != nil {
		return nil, err
	}
	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
		return nil, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return &program{
		id:   id,
		mv:   gl.GetUniformLocation(id, gl.Str("mv\x00")),
		proj: gl.GetUniformLocation(id, gl.Str("proj\x00")),
		tex:  gl.GetUniformLocation(id, gl.Str("textured\x00")),
	}, nil
}

func (p *program) use(mv, proj mgl32.Mat4, textured bool) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.mv, 1, false, &mv[0])
	gl.UniformMatrix4fv(p.proj, 1, false, &proj[0])
	var t int32
	if textured {
		t = 1
	}
	gl.Uniform1i(p.tex, t)
}
