package ktx

import (
	"fmt"
	"image"
	"math"

	"sb6-assets/internal/gpu"
)

// LevelImage decodes one 2D slice of a level: an array layer or cube face
// for layered targets, a depth slice for 3D textures. Float and 16-bit data
// is clamped to [0, 1] and quantized to 8 bits.
func (f *File) LevelImage(level, slice int) (*image.NRGBA, error) {
	if level < 0 || level >= len(f.Levels) {
		return nil, fmt.Errorf("ktx: level %d outside %d levels", level, len(f.Levels))
	}
	if f.Format.Compressed() {
		return nil, fmt.Errorf("ktx: cannot decode compressed format %v", f.Format)
	}
	lvl := f.Levels[level]
	slices := lvl.Layers
	if f.Target == gpu.Target3D {
		slices = lvl.Depth
	}
	if slice < 0 || slice >= slices {
		return nil, fmt.Errorf("ktx: slice %d outside %d", slice, slices)
	}

	typeSize := f.Layout.Type.Size()
	channels := f.Layout.Order.Channels()
	stride := Stride(typeSize, channels, lvl.Width, f.RowAlignment)
	rows := lvl.Height
	base := slice * stride * rows

	img := image.NewNRGBA(image.Rect(0, 0, lvl.Width, rows))
	for y := 0; y < rows; y++ {
		row := lvl.Data[base+y*stride:]
		for x := 0; x < lvl.Width; x++ {
			var c [4]uint8
			c[3] = 255
			for ch := 0; ch < channels; ch++ {
				c[ch] = f.component(row[(x*channels+ch)*typeSize:])
			}
			switch f.Layout.Order {
			case gpu.OrderBGR, gpu.OrderBGRA:
				c[0], c[2] = c[2], c[0]
			}
			i := img.PixOffset(x, y)
			copy(img.Pix[i:i+4], c[:])
		}
	}
	return img, nil
}

// Slices is the number of decodable 2D slices in a level.
func (f *File) Slices(level int) int {
	if level < 0 || level >= len(f.Levels) {
		return 0
	}
	if f.Target == gpu.Target3D {
		return f.Levels[level].Depth
	}
	return f.Levels[level].Layers
}

// component reads one channel value in host order.
func (f *File) component(b []byte) uint8 {
	switch f.Layout.Type {
	case gpu.TypeUnsignedByte:
		return b[0]
	case gpu.TypeByte:
		return uint8(max(int8(b[0]), 0)) << 1
	case gpu.TypeUnsignedShort:
		return uint8(hostUint16(b) >> 8)
	case gpu.TypeShort:
		return uint8(max(int16(hostUint16(b)), 0) >> 7)
	case gpu.TypeUnsignedInt:
		return uint8(hostUint32(b) >> 24)
	case gpu.TypeInt:
		return uint8(max(int32(hostUint32(b)), 0) >> 23)
	case gpu.TypeHalfFloat:
		return unitToByte(halfToFloat(hostUint16(b)))
	case gpu.TypeFloat:
		return unitToByte(math.Float32frombits(hostUint32(b)))
	}
	return 0
}

// Level data is already in little-endian host order: big-endian files are
// swapped during Parse.
func hostUint16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func hostUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// halfToFloat expands an IEEE 754 binary16 value.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h) & 0x3FF
	switch exp {
	case 0:
		if mant == 0 {
			return math.Float32frombits(sign)
		}
		// Subnormal: normalize.
		e := uint32(127 - 15 + 1)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3FF
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case 0x1F:
		return math.Float32frombits(sign | 0xFF<<23 | mant<<13)
	}
	return math.Float32frombits(sign | (exp+127-15)<<23 | mant<<13)
}
