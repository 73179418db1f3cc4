package glbackend

import (
	"github.com/go-gl/gl/v4.5-core/gl"

	"sb6-assets/internal/gpu"
)

// S3TC is an extension and has no constants in the core profile bindings.
const (
	compressedRGBS3TCDXT1  = 0x83F0
	compressedRGBAS3TCDXT1 = 0x83F1
	compressedRGBAS3TCDXT3 = 0x83F2
	compressedRGBAS3TCDXT5 = 0x83F3
)

var internalFormats = map[gpu.Format]uint32{
	gpu.FormatR8:           gl.R8,
	gpu.FormatRG8:          gl.RG8,
	gpu.FormatRGB8:         gl.RGB8,
	gpu.FormatRGBA8:        gl.RGBA8,
	gpu.FormatSRGB8:        gl.SRGB8,
	gpu.FormatSRGB8Alpha8:  gl.SRGB8_ALPHA8,
	gpu.FormatR16:          gl.R16,
	gpu.FormatRG16:         gl.RG16,
	gpu.FormatRGBA16:       gl.RGBA16,
	gpu.FormatR16F:         gl.R16F,
	gpu.FormatRG16F:        gl.RG16F,
	gpu.FormatRGB16F:       gl.RGB16F,
	gpu.FormatRGBA16F:      gl.RGBA16F,
	gpu.FormatR32F:         gl.R32F,
	gpu.FormatRG32F:        gl.RG32F,
	gpu.FormatRGB32F:       gl.RGB32F,
	gpu.FormatRGBA32F:      gl.RGBA32F,
	gpu.FormatR8UI:         gl.R8UI,
	gpu.FormatR32UI:        gl.R32UI,
	gpu.FormatRGBA8UI:      gl.RGBA8UI,
	gpu.FormatBC1RGB:       compressedRGBS3TCDXT1,
	gpu.FormatBC1RGBA:      compressedRGBAS3TCDXT1,
	gpu.FormatBC2:          compressedRGBAS3TCDXT3,
	gpu.FormatBC3:          compressedRGBAS3TCDXT5,
	gpu.FormatBC4:          gl.COMPRESSED_RED_RGTC1,
	gpu.FormatBC5:          gl.COMPRESSED_RG_RGTC2,
	gpu.FormatBC6HSigned:   gl.COMPRESSED_RGB_BPTC_SIGNED_FLOAT,
	gpu.FormatBC6HUnsigned: gl.COMPRESSED_RGB_BPTC_UNSIGNED_FLOAT,
	gpu.FormatBC7:          gl.COMPRESSED_RGBA_BPTC_UNORM,
	gpu.FormatBC7SRGB:      gl.COMPRESSED_SRGB_ALPHA_BPTC_UNORM,
	gpu.FormatETC2RGB8:     gl.COMPRESSED_RGB8_ETC2,
	gpu.FormatETC2RGBA8:    gl.COMPRESSED_RGBA8_ETC2_EAC,
}

func internalFormat(f gpu.Format) (uint32, bool) {
	v, ok := internalFormats[f]
	return v, ok
}

func pixelFormat(o gpu.PixelOrder, integer bool) (uint32, bool) {
	var f, i uint32
	switch o {
	case gpu.OrderRed:
		f, i = gl.RED, gl.RED_INTEGER
	case gpu.OrderRG:
		f, i = gl.RG, gl.RG_INTEGER
	case gpu.OrderRGB:
		f, i = gl.RGB, gl.RGB_INTEGER
	case gpu.OrderBGR:
		f, i = gl.BGR, gl.BGR_INTEGER
	case gpu.OrderRGBA:
		f, i = gl.RGBA, gl.RGBA_INTEGER
	case gpu.OrderBGRA:
		f, i = gl.BGRA, gl.BGRA_INTEGER
	default:
		return 0, false
	}
	if integer {
		return i, true
	}
	return f, true
}

func componentType(t gpu.ComponentType) (uint32, bool) {
	switch t {
	case gpu.TypeByte:
		return gl.BYTE, true
	case gpu.TypeUnsignedByte:
		return gl.UNSIGNED_BYTE, true
	case gpu.TypeShort:
		return gl.SHORT, true
	case gpu.TypeUnsignedShort:
		return gl.UNSIGNED_SHORT, true
	case gpu.TypeInt:
		return gl.INT, true
	case gpu.TypeUnsignedInt:
		return gl.UNSIGNED_INT, true
	case gpu.TypeHalfFloat:
		return gl.HALF_FLOAT, true
	case gpu.TypeFloat:
		return gl.FLOAT, true
	case gpu.TypeDouble:
		return gl.DOUBLE, true
	}
	return 0, false
}

func textureTarget(t gpu.Target) (uint32, bool) {
	switch t {
	case gpu.Target1D:
		return gl.TEXTURE_1D, true
	case gpu.Target1DArray:
		return gl.TEXTURE_1D_ARRAY, true
	case gpu.Target2D:
		return gl.TEXTURE_2D, true
	case gpu.Target2DArray:
		return gl.TEXTURE_2D_ARRAY, true
	case gpu.Target3D:
		return gl.TEXTURE_3D, true
	case gpu.TargetCube:
		return gl.TEXTURE_CUBE_MAP, true
	case gpu.TargetCubeArray:
		return gl.TEXTURE_CUBE_MAP_ARRAY, true
	}
	return 0, false
}

func primitive(p gpu.Primitive) (uint32, bool) {
	switch p {
	case gpu.Triangles:
		return gl.TRIANGLES, true
	case gpu.Points:
		return gl.POINTS, true
	case gpu.Lines:
		return gl.LINES, true
	case gpu.Patches:
		return gl.PATCHES, true
	}
	return 0, false
}
