package ktx

import (
	"bytes"
	"encoding/binary"
	"os"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
	"sb6-assets/internal/logging"
)

// Options control how level data is laid out in the file.
type Options struct {
	// RowAlignment is the padding of each uncompressed row. 0 means
	// DefaultRowAlignment; 1 reads tightly packed files.
	RowAlignment int

	// ImageSizePrefix expects a u32 imageSize before every level, as
	// written by KTX 1.1 tools.
	ImageSizePrefix bool

	// SkipMipGeneration uploads single-level files as they are instead of
	// allocating a full chain and generating it on the device.
	SkipMipGeneration bool
}

func (o Options) alignment() int {
	switch o.RowAlignment {
	case 1, 2, 4, 8:
		return o.RowAlignment
	}
	return DefaultRowAlignment
}

// KeyValue is one metadata pair. Values are kept as raw bytes.
type KeyValue struct {
	Key   string
	Value []byte
}

// Level is one mip level of pixel data, all layers and faces included.
type Level struct {
	Width  int
	Height int
	Depth  int
	Layers int
	Data   []byte
}

// File is a parsed texture container.
type File struct {
	Header       Header
	Order        binary.ByteOrder
	Target       gpu.Target
	Format       gpu.Format
	Layout       gpu.PixelLayout // zero for compressed files
	RowAlignment int
	KeyValues    []KeyValue
	Levels       []Level

	SkipMipGeneration bool
}

// Read loads and parses a KTX file.
func Read(path string, opts Options) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, asset.ReadError("ktx", path, err)
	}
	return Parse(data, opts)
}

// Parse decodes a KTX file held in memory. Level data of little-endian
// files aliases data; big-endian files are swapped into fresh buffers.
func Parse(data []byte, opts Options) (*File, error) {
	h, order, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	target, err := h.Target()
	if err != nil {
		return nil, err
	}

	f := &File{
		Header:       h,
		Order:        order,
		Target:       target,
		RowAlignment: opts.alignment(),

		SkipMipGeneration: opts.SkipMipGeneration,
	}
	if err := f.resolveFormat(); err != nil {
		return nil, err
	}

	if n, limit := h.Levels(), chainLength(h, target); n > limit {
		return nil, asset.Formatf("ktx", "%d mip levels for a %dx%dx%d texture (max %d)",
			n, h.PixelWidth, h.PixelHeight, h.PixelDepth, limit)
	}

	kv, err := asset.Slice(data, HeaderSize, uint64(h.BytesOfKeyValueData))
	if err != nil {
		return nil, err
	}
	f.KeyValues = parseKeyValues(kv, order)

	log := logging.Logger()
	log.Debug("ktx header",
		"target", target, "format", f.Format, "width", h.PixelWidth, "height", h.PixelHeight,
		"depth", h.PixelDepth, "layers", h.Layers(), "levels", h.Levels(), "order", order)

	off := uint64(HeaderSize) + uint64(h.BytesOfKeyValueData)
	for i := 0; i < h.Levels(); i++ {
		size, err := levelSize(h, i, f.RowAlignment, f.Format.BlockBytes())
		if err != nil {
			return nil, err
		}
		if opts.ImageSizePrefix {
			prefix, err := asset.Slice(data, off, 4)
			if err != nil {
				return nil, err
			}
			declared := uint64(order.Uint32(prefix))
			// Non-array cubes store the size of one face.
			if target == gpu.TargetCube && h.NumberOfArrayElements == 0 {
				declared *= 6
			}
			if declared != size {
				return nil, asset.Formatf("ktx", "level %d imageSize %d, expected %d", i, declared, size)
			}
			off += 4
		}
		px, err := asset.Slice(data, off, size)
		if err != nil {
			return nil, err
		}
		if order == binary.BigEndian {
			px = swapPixels(px, int(h.GLTypeSize))
		}
		w, ht, d := LevelDims(h, i)
		f.Levels = append(f.Levels, Level{Width: w, Height: ht, Depth: d, Layers: h.Layers(), Data: px})
		log.Debug("ktx level", "level", i, "width", w, "height", ht, "depth", d, "bytes", size)

		off += size
		if opts.ImageSizePrefix {
			off = (off + 3) &^ 3
		}
	}
	return f, nil
}

// resolveFormat translates the GL codes of the header into gpu descriptors.
func (f *File) resolveFormat() error {
	h := f.Header
	format, ok := glInternalFormats[h.GLInternalFormat]
	if !ok {
		return asset.Formatf("ktx", "unknown internal format 0x%04x", h.GLInternalFormat)
	}
	f.Format = format

	if h.Compressed() {
		if !format.Compressed() {
			return asset.Formatf("ktx", "glType 0 with uncompressed internal format %v", format)
		}
		return nil
	}
	if format.Compressed() {
		return asset.Formatf("ktx", "compressed internal format %v with glType 0x%04x", format, h.GLType)
	}

	typ, ok := glTypes[h.GLType]
	if !ok {
		return asset.Formatf("ktx", "unknown glType 0x%04x", h.GLType)
	}
	if int(h.GLTypeSize) != typ.Size() {
		return asset.Formatf("ktx", "glTypeSize %d does not match %v", h.GLTypeSize, typ)
	}
	order, ok := glFormats[h.GLFormat]
	integer := false
	if !ok {
		order, ok = glIntegerFormats[h.GLFormat]
		integer = ok
	}
	if !ok {
		return asset.Formatf("ktx", "unknown glFormat 0x%04x", h.GLFormat)
	}
	if integer != format.Integer() {
		return asset.Formatf("ktx", "glFormat 0x%04x does not match internal format %v", h.GLFormat, format)
	}
	channels := baseChannels(h.GLBaseInternalFormat)
	if channels == 0 {
		return asset.Formatf("ktx", "unknown base internal format 0x%04x", h.GLBaseInternalFormat)
	}
	if order.Channels() != channels {
		return asset.Formatf("ktx", "glFormat %v has %d channels, base format has %d", order, order.Channels(), channels)
	}
	f.Layout = gpu.PixelLayout{Order: order, Type: typ}
	return nil
}

// parseKeyValues splits the metadata block. Malformed trailing data is
// logged and dropped; the block is never needed to upload the texture.
func parseKeyValues(kv []byte, order binary.ByteOrder) []KeyValue {
	var out []KeyValue
	r := asset.NewReader(kv, order)
	for r.Remaining() >= 4 {
		n := int(r.U32())
		pair := r.Bytes(n)
		if r.Err() != nil {
			logging.Logger().Warn("ktx: truncated key/value data", "offset", r.Offset(), "size", n)
			break
		}
		key, value, found := bytes.Cut(pair, []byte{0})
		if !found {
			logging.Logger().Warn("ktx: key without terminator", "key", string(pair))
			break
		}
		out = append(out, KeyValue{Key: string(key), Value: bytes.TrimSuffix(value, []byte{0})})
		if pad := (4 - n%4) % 4; pad <= r.Remaining() {
			r.Skip(pad)
		} else {
			break
		}
	}
	return out
}

// Value returns the metadata value stored under key.
func (f *File) Value(key string) ([]byte, bool) {
	for _, kv := range f.KeyValues {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// swapPixels copies px and reverses each typeSize-byte element.
func swapPixels(px []byte, typeSize int) []byte {
	if typeSize != 2 && typeSize != 4 && typeSize != 8 {
		return px
	}
	out := make([]byte, len(px))
	copy(out, px)
	for i := 0; i+typeSize <= len(out); i += typeSize {
		e := out[i : i+typeSize]
		for a, b := 0, typeSize-1; a < b; a, b = a+1, b-1 {
			e[a], e[b] = e[b], e[a]
		}
	}
	return out
}
