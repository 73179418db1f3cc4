package ktx

import "sb6-assets/internal/gpu"

// OpenGL codes stored in KTX headers. Only these values are accepted; the
// rest of the module sees gpu descriptors.
const (
	glByte          = 0x1400
	glUnsignedByte  = 0x1401
	glShort         = 0x1402
	glUnsignedShort = 0x1403
	glInt           = 0x1404
	glUnsignedInt   = 0x1405
	glFloat         = 0x1406
	glHalfFloat     = 0x140B

	glRed  = 0x1903
	glRG   = 0x8227
	glRGB  = 0x1907
	glBGR  = 0x80E0
	glRGBA = 0x1908
	glBGRA = 0x80E1

	glRedInteger  = 0x8D94
	glRGInteger   = 0x8228
	glRGBInteger  = 0x8D98
	glBGRInteger  = 0x8D9A
	glRGBAInteger = 0x8D99
	glBGRAInteger = 0x8D9B

	glR8              = 0x8229
	glRG8             = 0x822B
	glRGB8            = 0x8051
	glRGBA8           = 0x8058
	glSRGB8           = 0x8C41
	glSRGB8Alpha8     = 0x8C43
	glR16             = 0x822A
	glRG16            = 0x822C
	glRGBA16          = 0x805B
	glR16F            = 0x822D
	glRG16F           = 0x822F
	glRGB16F          = 0x881B
	glRGBA16F         = 0x881A
	glR32F            = 0x822E
	glRG32F           = 0x8230
	glRGB32F          = 0x8815
	glRGBA32F         = 0x8814
	glR8UI            = 0x8232
	glR32UI           = 0x8236
	glRGBA8UI         = 0x8D7C
	glCompressedDXT1  = 0x83F0
	glCompressedDXT1A = 0x83F1
	glCompressedDXT3  = 0x83F2
	glCompressedDXT5  = 0x83F3
	glCompressedRGTC1 = 0x8DBB
	glCompressedRGTC2 = 0x8DBD
	glCompressedBPTC  = 0x8E8C
	glCompressedBPTCS = 0x8E8D
	glCompressedBPTCF = 0x8E8E
	glCompressedBPTCU = 0x8E8F
	glCompressedETC2  = 0x9274
	glCompressedETC2A = 0x9278
)

var glTypes = map[uint32]gpu.ComponentType{
	glByte:          gpu.TypeByte,
	glUnsignedByte:  gpu.TypeUnsignedByte,
	glShort:         gpu.TypeShort,
	glUnsignedShort: gpu.TypeUnsignedShort,
	glInt:           gpu.TypeInt,
	glUnsignedInt:   gpu.TypeUnsignedInt,
	glFloat:         gpu.TypeFloat,
	glHalfFloat:     gpu.TypeHalfFloat,
}

var glFormats = map[uint32]gpu.PixelOrder{
	glRed:  gpu.OrderRed,
	glRG:   gpu.OrderRG,
	glRGB:  gpu.OrderRGB,
	glBGR:  gpu.OrderBGR,
	glRGBA: gpu.OrderRGBA,
	glBGRA: gpu.OrderBGRA,
}

// glIntegerFormats are the glFormat values of integer internal formats.
var glIntegerFormats = map[uint32]gpu.PixelOrder{
	glRedInteger:  gpu.OrderRed,
	glRGInteger:   gpu.OrderRG,
	glRGBInteger:  gpu.OrderRGB,
	glBGRInteger:  gpu.OrderBGR,
	glRGBAInteger: gpu.OrderRGBA,
	glBGRAInteger: gpu.OrderBGRA,
}

var glInternalFormats = map[uint32]gpu.Format{
	glR8:              gpu.FormatR8,
	glRG8:             gpu.FormatRG8,
	glRGB8:            gpu.FormatRGB8,
	glRGBA8:           gpu.FormatRGBA8,
	glSRGB8:           gpu.FormatSRGB8,
	glSRGB8Alpha8:     gpu.FormatSRGB8Alpha8,
	glR16:             gpu.FormatR16,
	glRG16:            gpu.FormatRG16,
	glRGBA16:          gpu.FormatRGBA16,
	glR16F:            gpu.FormatR16F,
	glRG16F:           gpu.FormatRG16F,
	glRGB16F:          gpu.FormatRGB16F,
	glRGBA16F:         gpu.FormatRGBA16F,
	glR32F:            gpu.FormatR32F,
	glRG32F:           gpu.FormatRG32F,
	glRGB32F:          gpu.FormatRGB32F,
	glRGBA32F:         gpu.FormatRGBA32F,
	glR8UI:            gpu.FormatR8UI,
	glR32UI:           gpu.FormatR32UI,
	glRGBA8UI:         gpu.FormatRGBA8UI,
	glCompressedDXT1:  gpu.FormatBC1RGB,
	glCompressedDXT1A: gpu.FormatBC1RGBA,
	glCompressedDXT3:  gpu.FormatBC2,
	glCompressedDXT5:  gpu.FormatBC3,
	glCompressedRGTC1: gpu.FormatBC4,
	glCompressedRGTC2: gpu.FormatBC5,
	glCompressedBPTC:  gpu.FormatBC7,
	glCompressedBPTCS: gpu.FormatBC7SRGB,
	glCompressedBPTCF: gpu.FormatBC6HSigned,
	glCompressedBPTCU: gpu.FormatBC6HUnsigned,
	glCompressedETC2:  gpu.FormatETC2RGB8,
	glCompressedETC2A: gpu.FormatETC2RGBA8,
}

// glCode reverses one of the tables above. Used by the encoder.
func glCode[V comparable](table map[uint32]V, v V) (uint32, bool) {
	for code, got := range table {
		if got == v {
			return code, true
		}
	}
	return 0, false
}

// baseChannels maps glBaseInternalFormat to a channel count. Some writers
// store the integer variant as the base of integer textures, so both are
// accepted. Unrecognized values yield 0.
func baseChannels(base uint32) int {
	switch base {
	case glRed, glRedInteger:
		return 1
	case glRG, glRGInteger:
		return 2
	case glRGB, glBGR, glRGBInteger, glBGRInteger:
		return 3
	case glRGBA, glBGRA, glRGBAInteger, glBGRAInteger:
		return 4
	}
	return 0
}
