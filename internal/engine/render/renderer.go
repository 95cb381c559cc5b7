// Package render draws skeleton bone quads with OpenGL.
package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/skelrig/internal/engine/render/shaders"
	"github.com/Faultbox/skelrig/internal/engine/shader"
	"github.com/Faultbox/skelrig/pkg/math"
	"github.com/Faultbox/skelrig/pkg/rig"
)

// BoneRenderer draws one textured quad per bone in z-order.
type BoneRenderer struct {
	// Shader
	program uint32

	// Uniform locations
	locProjection int32
	locModel      int32
	locTexture    int32
	locTint       int32

	// Unit quad mesh
	vao uint32
	vbo uint32

	// Fallback for bones without an assigned texture
	fallbackTex uint32

	projection math.Mat4
}

// NewBoneRenderer creates a new bone renderer.
func NewBoneRenderer() (*BoneRenderer, error) {
	br := &BoneRenderer{}

	program, err := shader.CompileProgram(shaders.BoneVertexShader, shaders.BoneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("bone shader: %w", err)
	}
	br.program = program

	// Get uniform locations
	br.locProjection = shader.GetUniform(program, "uProjection")
	br.locModel = shader.GetUniform(program, "uModel")
	br.locTexture = shader.GetUniform(program, "uTexture")
	br.locTint = shader.GetUniform(program, "uTint")

	br.createQuad()
	br.createFallbackTexture()

	return br, nil
}

func (br *BoneRenderer) createQuad() {
	// Unit quad in [0,1]x[0,1], scaled to bone size by the model matrix.
	// V is flipped so texture row 0 lands at the top of the quad.
	vertices := []float32{
		// Position (XY), TexCoord (UV)
		0.0, 0.0, 0.0, 1.0, // Bottom-left
		1.0, 0.0, 1.0, 1.0, // Bottom-right
		1.0, 1.0, 1.0, 0.0, // Top-right
		0.0, 0.0, 0.0, 1.0, // Bottom-left
		1.0, 1.0, 1.0, 0.0, // Top-right
		0.0, 1.0, 0.0, 0.0, // Top-left
	}

	gl.GenVertexArrays(1, &br.vao)
	gl.BindVertexArray(br.vao)

	gl.GenBuffers(1, &br.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, br.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	// Position attribute (location 0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)

	// TexCoord attribute (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (br *BoneRenderer) createFallbackTexture() {
	white := []uint8{255, 255, 255, 255}
	gl.GenTextures(1, &br.fallbackTex)
	gl.BindTexture(gl.TEXTURE_2D, br.fallbackTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(white))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Begin clears the frame and sets the projection for the given viewport size.
// Screen Y grows downward, matching the draw record coordinate space.
func (br *BoneRenderer) Begin(width, height int32) {
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	br.projection = math.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// DrawList renders every record of the list in order. Records were sorted
// by z-order at traversal time, so back-to-front alpha blending holds.
func (br *BoneRenderer) DrawList(list rig.DrawList) {
	if br.vao == 0 {
		return
	}

	gl.UseProgram(br.program)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UniformMatrix4fv(br.locProjection, 1, false, &br.projection[0])
	gl.Uniform4f(br.locTint, 1, 1, 1, 1)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(br.locTexture, 0)

	gl.BindVertexArray(br.vao)

	for _, rec := range list.Records {
		model := br.modelMatrix(list, rec)
		gl.UniformMatrix4fv(br.locModel, 1, false, &model[0])

		tex := rec.Texture
		if tex == 0 {
			tex = br.fallbackTex
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)

		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
}

// modelMatrix places the unit quad for one bone record: size the quad,
// shift it so the pivot sits at the local origin, apply world scale and
// rotation, translate to the world position, then mirror the whole pose
// about the skeleton origin when the skeleton is flipped.
func (br *BoneRenderer) modelMatrix(list rig.DrawList, rec rig.DrawRecord) math.Mat4 {
	m := math.Translate(rec.X, rec.Y, 0)
	m = m.Mul(math.RotateZ(math.DegToRad(rec.Rotation)))
	m = m.Mul(math.Scale(rec.ScaleX, rec.ScaleY, 1))
	m = m.Mul(math.Translate(-rec.PivotX*rec.Width, -rec.PivotY*rec.Height, 0))
	m = m.Mul(math.Scale(rec.Width, rec.Height, 1))

	if list.FlipX {
		mirror := math.Translate(list.OriginX, 0, 0)
		mirror = mirror.Mul(math.Scale(-1, 1, 1))
		mirror = mirror.Mul(math.Translate(-list.OriginX, 0, 0))
		m = mirror.Mul(m)
	}

	return m
}

// Destroy releases all resources.
func (br *BoneRenderer) Destroy() {
	if br.vao != 0 {
		gl.DeleteVertexArrays(1, &br.vao)
		br.vao = 0
	}
	if br.vbo != 0 {
		gl.DeleteBuffers(1, &br.vbo)
		br.vbo = 0
	}
	if br.fallbackTex != 0 {
		gl.DeleteTextures(1, &br.fallbackTex)
		br.fallbackTex = 0
	}
	if br.program != 0 {
		gl.DeleteProgram(br.program)
		br.program = 0
	}
}
