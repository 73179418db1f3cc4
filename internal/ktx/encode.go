package ktx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
	"math"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
)

// Params describes a texture to build with New.
type Params struct {
	Target        gpu.Target
	Format        gpu.Format
	Layout        gpu.PixelLayout // ignored for compressed formats
	Width         int
	Height        int
	Depth         int
	ArrayElements int
	RowAlignment  int
}

// New assembles a File from level data already laid out in file order. It
// runs the same validation as Parse, so a File from New always encodes to
// something Parse accepts.
func New(s Params, levels [][]byte, kv []KeyValue) (*File, error) {
	internal, ok := glCode(glInternalFormats, s.Format)
	if !ok {
		return nil, asset.Formatf("ktx", "no GL code for %v", s.Format)
	}
	h := Header{
		Endianness:            endianNative,
		GLTypeSize:            1,
		GLInternalFormat:      internal,
		PixelWidth:            uint32(s.Width),
		PixelHeight:           uint32(s.Height),
		PixelDepth:            uint32(s.Depth),
		NumberOfArrayElements: uint32(s.ArrayElements),
		NumberOfMipmapLevels:  uint32(len(levels)),
	}
	if s.Target == gpu.TargetCube || s.Target == gpu.TargetCubeArray {
		h.NumberOfFaces = 6
	} else {
		h.NumberOfFaces = 1
	}

	if s.Format.Compressed() {
		h.GLBaseInternalFormat = compressedBase(s.Format)
	} else {
		if h.GLType, ok = glCode(glTypes, s.Layout.Type); !ok {
			return nil, asset.Formatf("ktx", "no GL code for %v", s.Layout.Type)
		}
		if h.GLBaseInternalFormat, ok = glCode(glFormats, s.Layout.Order); !ok {
			return nil, asset.Formatf("ktx", "no GL code for %v", s.Layout.Order)
		}
		h.GLFormat = h.GLBaseInternalFormat
		if s.Format.Integer() {
			h.GLFormat, _ = glCode(glIntegerFormats, s.Layout.Order)
		}
		h.GLTypeSize = uint32(s.Layout.Type.Size())
	}

	target, err := h.Target()
	if err != nil {
		return nil, err
	}
	if target != s.Target {
		return nil, fmt.Errorf("ktx: dimensions describe a %v texture, not %v", target, s.Target)
	}

	f := &File{
		Header:       h,
		Order:        binary.LittleEndian,
		Target:       target,
		RowAlignment: Options{RowAlignment: s.RowAlignment}.alignment(),
		KeyValues:    kv,
	}
	if err := f.resolveFormat(); err != nil {
		return nil, err
	}
	if n, limit := len(levels), chainLength(h, target); n == 0 || n > limit {
		return nil, asset.Formatf("ktx", "%d levels, need 1..%d", n, limit)
	}
	for i, data := range levels {
		size, err := levelSize(h, i, f.RowAlignment, f.Format.BlockBytes())
		if err != nil {
			return nil, err
		}
		if uint64(len(data)) != size {
			return nil, fmt.Errorf("ktx: level %d has %d bytes, layout needs %d", i, len(data), size)
		}
		w, ht, d := LevelDims(h, i)
		f.Levels = append(f.Levels, Level{Width: w, Height: ht, Depth: d, Layers: h.Layers(), Data: data})
	}
	return f, nil
}

func compressedBase(f gpu.Format) uint32 {
	switch f {
	case gpu.FormatBC4:
		return glRed
	case gpu.FormatBC5:
		return glRG
	case gpu.FormatBC1RGB, gpu.FormatBC6HSigned, gpu.FormatBC6HUnsigned, gpu.FormatETC2RGB8:
		return glRGB
	}
	return glRGBA
}

// Encode writes f as a little-endian KTX file. opts.ImageSizePrefix adds
// the per-level imageSize fields; RowAlignment is taken from f.
func Encode(w io.Writer, f *File, opts Options) error {
	var buf bytes.Buffer
	buf.Write(Identifier[:])

	var kv bytes.Buffer
	for _, p := range f.KeyValues {
		n := len(p.Key) + 1 + len(p.Value)
		binary.Write(&kv, binary.LittleEndian, uint32(n))
		kv.WriteString(p.Key)
		kv.WriteByte(0)
		kv.Write(p.Value)
		kv.Write(make([]byte, (4-n%4)%4))
	}

	h := f.Header
	h.Endianness = endianNative
	h.BytesOfKeyValueData = uint32(kv.Len())
	h.NumberOfMipmapLevels = uint32(len(f.Levels))
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return err
	}
	buf.Write(kv.Bytes())

	for _, lvl := range f.Levels {
		if opts.ImageSizePrefix {
			size := len(lvl.Data)
			if f.Target == gpu.TargetCube && h.NumberOfArrayElements == 0 {
				size /= 6
			}
			binary.Write(&buf, binary.LittleEndian, uint32(size))
		}
		buf.Write(lvl.Data)
		if opts.ImageSizePrefix {
			buf.Write(make([]byte, (4-len(lvl.Data)%4)%4))
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// FromImages builds an RGBA8 2D texture, one image per level. Level i
// must be the size LevelDims gives for its index.
func FromImages(levels []*image.NRGBA, kv []KeyValue) (*File, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("ktx: no images")
	}
	b := levels[0].Bounds()
	data := make([][]byte, len(levels))
	for i, img := range levels {
		ib := img.Bounds()
		row := ib.Dx() * 4
		px := make([]byte, 0, row*ib.Dy())
		for y := ib.Min.Y; y < ib.Max.Y; y++ {
			off := img.PixOffset(ib.Min.X, y)
			px = append(px, img.Pix[off:off+row]...)
		}
		data[i] = px
	}
	return New(Params{
		Target: gpu.Target2D,
		Format: gpu.FormatRGBA8,
		Layout: gpu.PixelLayout{Order: gpu.OrderRGBA, Type: gpu.TypeUnsignedByte},
		Width:  b.Dx(),
		Height: b.Dy(),
	}, data, kv)
}

// FromFloatRGB builds an RGB32F 2D texture from tightly packed RGB float
// levels, e.g. decoded Radiance images.
func FromFloatRGB(width, height int, levels [][]float32, kv []KeyValue) (*File, error) {
	data := make([][]byte, len(levels))
	for i, lvl := range levels {
		px := make([]byte, 4*len(lvl))
		for j, v := range lvl {
			binary.LittleEndian.PutUint32(px[4*j:], math.Float32bits(v))
		}
		data[i] = px
	}
	return New(Params{
		Target: gpu.Target2D,
		Format: gpu.FormatRGB32F,
		Layout: gpu.PixelLayout{Order: gpu.OrderRGB, Type: gpu.TypeFloat},
		Width:  width,
		Height: height,
	}, data, kv)
}
