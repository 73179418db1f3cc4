package gpu

import "fmt"

// Target is the dimensionality of a texture.
type Target int

const (
	TargetNone Target = iota
	Target1D
	Target1DArray
	Target2D
	Target2DArray
	Target3D
	TargetCube
	TargetCubeArray
)

var targetNames = [...]string{
	TargetNone:      "none",
	Target1D:        "1D",
	Target1DArray:   "1D-array",
	Target2D:        "2D",
	Target2DArray:   "2D-array",
	Target3D:        "3D",
	TargetCube:      "cube",
	TargetCubeArray: "cube-array",
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return fmt.Sprintf("Target(%d)", int(t))
	}
	return targetNames[t]
}

// Layered reports whether the target's third storage dimension counts
// array layers (or layer-faces) rather than depth.
func (t Target) Layered() bool {
	switch t {
	case Target1DArray, Target2DArray, TargetCube, TargetCubeArray:
		return true
	}
	return false
}

// ComponentType is the scalar type of a vertex component, index or texel channel.
type ComponentType int

const (
	TypeNone ComponentType = iota
	TypeByte
	TypeUnsignedByte
	TypeShort
	TypeUnsignedShort
	TypeInt
	TypeUnsignedInt
	TypeHalfFloat
	TypeFloat
	TypeDouble
)

var componentSizes = [...]int{
	TypeNone:          0,
	TypeByte:          1,
	TypeUnsignedByte:  1,
	TypeShort:         2,
	TypeUnsignedShort: 2,
	TypeInt:           4,
	TypeUnsignedInt:   4,
	TypeHalfFloat:     2,
	TypeFloat:         4,
	TypeDouble:        8,
}

var componentNames = [...]string{
	TypeNone:          "none",
	TypeByte:          "i8",
	TypeUnsignedByte:  "u8",
	TypeShort:         "i16",
	TypeUnsignedShort: "u16",
	TypeInt:           "i32",
	TypeUnsignedInt:   "u32",
	TypeHalfFloat:     "f16",
	TypeFloat:         "f32",
	TypeDouble:        "f64",
}

// Size is the byte width of one component.
func (c ComponentType) Size() int {
	if c < 0 || int(c) >= len(componentSizes) {
		return 0
	}
	return componentSizes[c]
}

func (c ComponentType) String() string {
	if c < 0 || int(c) >= len(componentNames) {
		return fmt.Sprintf("ComponentType(%d)", int(c))
	}
	return componentNames[c]
}

// PixelOrder is the channel order of client-side pixel data.
type PixelOrder int

const (
	OrderNone PixelOrder = iota
	OrderRed
	OrderRG
	OrderRGB
	OrderBGR
	OrderRGBA
	OrderBGRA
)

// Channels is the number of channels in one pixel.
func (o PixelOrder) Channels() int {
	switch o {
	case OrderRed:
		return 1
	case OrderRG:
		return 2
	case OrderRGB, OrderBGR:
		return 3
	case OrderRGBA, OrderBGRA:
		return 4
	}
	return 0
}

func (o PixelOrder) String() string {
	switch o {
	case OrderRed:
		return "R"
	case OrderRG:
		return "RG"
	case OrderRGB:
		return "RGB"
	case OrderBGR:
		return "BGR"
	case OrderRGBA:
		return "RGBA"
	case OrderBGRA:
		return "BGRA"
	}
	return "none"
}

// PixelLayout describes client pixel data handed to an upload.
type PixelLayout struct {
	Order PixelOrder
	Type  ComponentType
}

// PixelSize is the byte size of one pixel, 0 if the layout is incomplete.
func (l PixelLayout) PixelSize() int {
	return l.Order.Channels() * l.Type.Size()
}

// Format is the storage format of a texture on the device.
type Format int

const (
	FormatNone Format = iota
	FormatR8
	FormatRG8
	FormatRGB8
	FormatRGBA8
	FormatSRGB8
	FormatSRGB8Alpha8
	FormatR16
	FormatRG16
	FormatRGBA16
	FormatR16F
	FormatRG16F
	FormatRGB16F
	FormatRGBA16F
	FormatR32F
	FormatRG32F
	FormatRGB32F
	FormatRGBA32F
	FormatR8UI
	FormatR32UI
	FormatRGBA8UI

	// Block compressed formats.
	FormatBC1RGB
	FormatBC1RGBA
	FormatBC2
	FormatBC3
	FormatBC4
	FormatBC5
	FormatBC6HSigned
	FormatBC6HUnsigned
	FormatBC7
	FormatBC7SRGB
	FormatETC2RGB8
	FormatETC2RGBA8
)

var formatNames = [...]string{
	FormatNone:         "none",
	FormatR8:           "R8",
	FormatRG8:          "RG8",
	FormatRGB8:         "RGB8",
	FormatRGBA8:        "RGBA8",
	FormatSRGB8:        "SRGB8",
	FormatSRGB8Alpha8:  "SRGB8_ALPHA8",
	FormatR16:          "R16",
	FormatRG16:         "RG16",
	FormatRGBA16:       "RGBA16",
	FormatR16F:         "R16F",
	FormatRG16F:        "RG16F",
	FormatRGB16F:       "RGB16F",
	FormatRGBA16F:      "RGBA16F",
	FormatR32F:         "R32F",
	FormatRG32F:        "RG32F",
	FormatRGB32F:       "RGB32F",
	FormatRGBA32F:      "RGBA32F",
	FormatR8UI:         "R8UI",
	FormatR32UI:        "R32UI",
	FormatRGBA8UI:      "RGBA8UI",
	FormatBC1RGB:       "BC1_RGB",
	FormatBC1RGBA:      "BC1_RGBA",
	FormatBC2:          "BC2",
	FormatBC3:          "BC3",
	FormatBC4:          "BC4",
	FormatBC5:          "BC5",
	FormatBC6HSigned:   "BC6H_SF",
	FormatBC6HUnsigned: "BC6H_UF",
	FormatBC7:          "BC7",
	FormatBC7SRGB:      "BC7_SRGB",
	FormatETC2RGB8:     "ETC2_RGB8",
	FormatETC2RGBA8:    "ETC2_RGBA8",
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// Compressed reports whether f is a block compressed format.
func (f Format) Compressed() bool {
	return f >= FormatBC1RGB && f <= FormatETC2RGBA8
}

// Integer reports whether f is sampled as unnormalized integers. Uploads
// to such formats use the *_INTEGER pixel formats.
func (f Format) Integer() bool {
	switch f {
	case FormatR8UI, FormatR32UI, FormatRGBA8UI:
		return true
	}
	return false
}

// BlockBytes is the size of one 4x4 block for compressed formats, 0 otherwise.
func (f Format) BlockBytes() int {
	switch f {
	case FormatBC1RGB, FormatBC1RGBA, FormatBC4, FormatETC2RGB8:
		return 8
	case FormatBC2, FormatBC3, FormatBC5, FormatBC6HSigned, FormatBC6HUnsigned,
		FormatBC7, FormatBC7SRGB, FormatETC2RGBA8:
		return 16
	}
	return 0
}
