package direction

import (
	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
uniform float aspectRatio;
uniform float rotation;
uniform vec2 offset;
void main() {
    float c = cos(rotation);
    float s = sin(rotation);
    vec2 p = vec2(aPos.x * c - aPos.y * s, aPos.x * s + aPos.y * c) + offset;
    gl_Position = vec4(p.x / aspectRatio, p.y, 0.0, 1.0);
}
`

const fragmentShader = `#version 410 core
uniform vec3 directionColor;
out vec4 FragColor;
void main() {
    FragColor = vec4(directionColor, 1.0);
}
`

// Direction indicator vertices (arrow shape pointing up)
var arrowVertices = []float32{
	// Arrow body
	-0.01, -0.08,
	0.01, -0.08,
	0.01, -0.02,
	-0.01, -0.02,
	// Arrow head
	-0.03, -0.02,
	0.03, -0.02,
	0.0, 0.02,
}

// Letter strokes as line pairs
var letters = map[world.BlockFace][]float32{
	world.FaceNorth: {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, -0.02,
		0.02, -0.02, 0.02, 0.02,
	},
	world.FaceEast: {
		-0.02, -0.02, -0.02, 0.02,
		-0.02, 0.02, 0.02, 0.02,
		-0.02, 0.0, 0.01, 0.0,
		-0.02, -0.02, 0.02, -0.02,
	},
	world.FaceSouth: {
		0.02, 0.02, -0.02, 0.02,
		-0.02, 0.02, -0.02, 0.0,
		-0.02, 0.0, 0.02, 0.0,
		0.02, 0.0, 0.02, -0.02,
		0.02, -0.02, -0.02, -0.02,
	},
	world.FaceWest: {
		-0.02, 0.02, -0.02, -0.02,
		-0.02, -0.02, -0.01, 0.0,
		-0.01, 0.0, 0.01, -0.02,
		0.01, -0.02, 0.02, 0.0,
		0.02, 0.0, 0.02, 0.02,
	},
}

// Direction draws a compass arrow at the bottom of the screen and the
// letter of the cardinal direction the player faces.
type Direction struct {
	shader    *graphics.Shader
	vao       uint32
	vbo       uint32
	letterVAO uint32
	letterVBO uint32
}

// NewDirection creates a new direction renderable
func NewDirection() *Direction {
	return &Direction{}
}

// Init initializes the direction rendering system
func (d *Direction) Init() error {
	var err error
	d.shader, err = graphics.NewShader(vertexShader, fragmentShader)
	if err != nil {
		return err
	}

	d.vao, d.vbo = lineBuffer(arrowVertices, gl.STATIC_DRAW)
	d.letterVAO, d.letterVBO = lineBuffer(nil, gl.DYNAMIC_DRAW)
	return nil
}

// Render renders the direction indicator
func (d *Direction) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderDirection")()

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	d.shader.Use()
	d.shader.SetFloat("aspectRatio", ctx.Camera.AspectRatio)
	d.renderDirection(ctx.Player)
}

// Dispose cleans up OpenGL resources
func (d *Direction) Dispose() {
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
	}
	if d.letterVAO != 0 {
		gl.DeleteVertexArrays(1, &d.letterVAO)
	}
	if d.letterVBO != 0 {
		gl.DeleteBuffers(1, &d.letterVBO)
	}
	if d.shader != nil {
		d.shader.Delete()
	}
}

func lineBuffer(vertices []float32, usage uint32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), usage)
	}

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	return vao, vbo
}

func (d *Direction) renderDirection(p *player.Player) {
	d.shader.SetVec3("directionColor", mgl32.Vec3{1, 0, 0})

	// The arrow points up when looking north (yaw 90) and turns with the
	// view, so east is to the right.
	d.shader.SetFloat("rotation", mgl32.DegToRad(float32(p.CamYaw-90)))
	d.shader.SetVec2("offset", mgl32.Vec2{0, -0.85})

	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.LINE_LOOP, 0, 4)
	gl.DrawArrays(gl.LINE_LOOP, 4, 3)

	vertices := letters[p.Heading()]
	d.shader.SetFloat("rotation", 0)
	d.shader.SetVec2("offset", mgl32.Vec2{0, -0.72})

	gl.BindVertexArray(d.letterVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.letterVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/2))
	gl.BindVertexArray(0)
}
