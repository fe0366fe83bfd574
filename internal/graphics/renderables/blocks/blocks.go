package blocks

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/instances"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const vertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aOffset;
layout (location = 3) in vec4 aColor;

uniform mat4 view;
uniform mat4 proj;

out vec3 Normal;
out vec4 Color;

void main() {
    Normal = aNormal;
    Color = aColor;
    gl_Position = proj * view * vec4(aPos + aOffset, 1.0);
}
`

const fragmentShader = `#version 410 core
in vec3 Normal;
in vec4 Color;

uniform vec3 lightDir;

out vec4 FragColor;

void main() {
    float diff = max(dot(normalize(Normal), normalize(-lightDir)), 0.0);
    FragColor = vec4(Color.rgb * (0.45 + 0.55 * diff), Color.a);
}
`

// Cube vertices with position and normal attributes
var cubeVertices = []float32{
	// NORTH
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,

	// SOUTH
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,
	0.5, -0.5, -0.5, 0, 0, -1,

	// WEST
	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, -0.5, -1, 0, 0,

	// EAST
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,

	// TOP
	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,

	// BOTTOM
	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
}

var lightDir = mgl32.Vec3{-0.4, -1.0, -0.3}

// Blocks draws every block as an instanced unit cube. It is the world's
// rendering listener: adds and removes only touch CPU-side instance data,
// which is uploaded on the next Render.
type Blocks struct {
	shader      *graphics.Shader
	vao         uint32
	cubeVBO     uint32
	instanceVBO uint32

	set *instances.Set
}

var _ world.Listener = (*Blocks)(nil)

// NewBlocks creates a new blocks renderable
func NewBlocks(catalog *registry.Catalog) *Blocks {
	return &Blocks{set: instances.NewSet(catalog)}
}

func (b *Blocks) BlockAdded(blk world.Block)   { b.set.BlockAdded(blk) }
func (b *Blocks) BlockRemoved(blk world.Block) { b.set.BlockRemoved(blk) }

// Init initializes the blocks rendering system
func (b *Blocks) Init() error {
	var err error
	b.shader, err = graphics.NewShader(vertexShader, fragmentShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)

	gl.GenBuffers(1, &b.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, instances.Stride*4, 0)
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 4, gl.FLOAT, false, instances.Stride*4, 3*4)
	gl.VertexAttribDivisor(3, 1)

	gl.BindVertexArray(0)
	// Blocks added before Init still need their first upload.
	b.set.MarkDirty()
	return nil
}

// Render draws all block instances
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderBlocks")()

	data := b.set.Data()
	if b.set.TakeDirty() && len(data) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.instanceVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	}
	if b.set.Len() == 0 {
		return
	}

	b.shader.Use()
	b.shader.SetMat4("view", ctx.View)
	b.shader.SetMat4("proj", ctx.Proj)
	b.shader.SetVec3("lightDir", lightDir)

	gl.BindVertexArray(b.vao)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, int32(len(cubeVertices)/6), int32(b.set.Len()))
	gl.BindVertexArray(0)
}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.cubeVBO != 0 {
		gl.DeleteBuffers(1, &b.cubeVBO)
	}
	if b.instanceVBO != 0 {
		gl.DeleteBuffers(1, &b.instanceVBO)
	}
	if b.shader != nil {
		b.shader.Delete()
	}
}
