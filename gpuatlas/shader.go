package gpuatlas

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
)

//go:embed shaders/msdf_text.wgsl
var msdfTextShaderSource string

// ShaderSource returns the WGSL source of the MSDF text shader.
func ShaderSource() string {
	return msdfTextShaderSource
}

// CompileShader compiles the MSDF text shader to SPIR-V words.
func CompileShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(msdfTextShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpuatlas: failed to compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return spirvCode, nil
}

// TextUniforms is the uniform buffer of the text shader.
// Matches the TextUniforms struct in msdf_text.wgsl.
type TextUniforms struct {
	// Transform maps quad positions to clip space (column-major).
	Transform [16]float32

	// Color is the premultiplied RGBA text color.
	Color [4]float32

	// MSDFParams holds px_range, atlas width, atlas height and a reserved
	// slot.
	MSDFParams [4]float32
}

// Uniforms builds the shader uniforms for drawing glyphs from this
// manager's atlases. pxRange is the distance range baked into the rasters,
// the faces' border in texels.
func (m *Manager) Uniforms(transform [16]float32, color [4]float32, pxRange float32) TextUniforms {
	return TextUniforms{
		Transform:  transform,
		Color:      color,
		MSDFParams: [4]float32{pxRange, float32(m.config.Width), float32(m.config.Height), 0},
	}
}

// Bytes returns the uniforms in the std140 layout of the shader.
func (u TextUniforms) Bytes() []byte {
	buf := make([]byte, 0, (16+4+4)*4)
	for _, v := range u.Transform {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range u.Color {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range u.MSDFParams {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}

// TextVertex is one vertex of a glyph quad.
// Matches the VertexInput struct in msdf_text.wgsl.
type TextVertex struct {
	X, Y float32
	U, V float32
}

// TextQuad is a positioned glyph quad.
type TextQuad struct {
	// Corners in the caller's space, y up.
	X0, Y0, X1, Y1 float32

	// UV coordinates in the atlas. (U0, V0) pairs with (X0, Y0).
	U0, V0, U1, V1 float32
}

// Quad places the glyph with its origin at (x, y), scaled so that one em is
// size units.
func (c Coords) Quad(x, y, size float32) TextQuad {
	return TextQuad{
		X0: x + c.Render.MinX*size,
		Y0: y + c.Render.MinY*size,
		X1: x + c.Render.MaxX*size,
		Y1: y + c.Render.MaxY*size,
		U0: c.U0,
		V0: c.V0,
		U1: c.U1,
		V1: c.V1,
	}
}

// Vertices returns the two triangles of the quad.
func (q TextQuad) Vertices() [6]TextVertex {
	bl := TextVertex{q.X0, q.Y0, q.U0, q.V0}
	br := TextVertex{q.X1, q.Y0, q.U1, q.V0}
	tl := TextVertex{q.X0, q.Y1, q.U0, q.V1}
	tr := TextVertex{q.X1, q.Y1, q.U1, q.V1}
	return [6]TextVertex{bl, br, tr, bl, tr, tl}
}
