package ktx

import (
	"bytes"
	"encoding/binary"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
)

// rawFile writes a header in the given order followed by payload, without
// any validation, so tests can build malformed files.
func rawFile(h Header, order binary.ByteOrder, kv, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write(Identifier[:])
	h.Endianness = endianNative
	h.BytesOfKeyValueData = uint32(len(kv))
	binary.Write(&buf, order, h)
	buf.Write(kv)
	buf.Write(payload)
	return buf.Bytes()
}

func rgba8Header(w, h uint32) Header {
	return Header{
		GLType:               glUnsignedByte,
		GLTypeSize:           1,
		GLFormat:             glRGBA,
		GLInternalFormat:     glRGBA8,
		GLBaseInternalFormat: glRGBA,
		PixelWidth:           w,
		PixelHeight:          h,
		NumberOfFaces:        1,
	}
}

func TestTargetDecisionTable(t *testing.T) {
	tests := []struct {
		name                          string
		height, depth, arrays, faces uint32
		want                          gpu.Target
	}{
		{"1D", 0, 0, 0, 0, gpu.Target1D},
		{"1D array", 0, 0, 4, 0, gpu.Target1DArray},
		{"2D", 8, 0, 0, 0, gpu.Target2D},
		{"2D with one face", 8, 0, 0, 1, gpu.Target2D},
		{"2D array", 8, 0, 3, 0, gpu.Target2DArray},
		{"3D", 8, 8, 0, 0, gpu.Target3D},
		{"cube", 8, 0, 0, 6, gpu.TargetCube},
		{"cube array", 8, 0, 2, 6, gpu.TargetCubeArray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Header{PixelWidth: 8, PixelHeight: tt.height, PixelDepth: tt.depth,
				NumberOfArrayElements: tt.arrays, NumberOfFaces: tt.faces}
			got, err := h.Target()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTargetInsane(t *testing.T) {
	tests := []struct {
		name string
		h    Header
	}{
		{"zero width", Header{PixelWidth: 0, PixelHeight: 4}},
		{"depth without height", Header{PixelWidth: 4, PixelHeight: 0, PixelDepth: 4}},
		{"three faces", Header{PixelWidth: 4, PixelHeight: 4, NumberOfFaces: 3}},
		{"1D cube", Header{PixelWidth: 4, NumberOfFaces: 6}},
		{"3D cube", Header{PixelWidth: 4, PixelHeight: 4, PixelDepth: 4, NumberOfFaces: 6}},
		{"3D array", Header{PixelWidth: 4, PixelHeight: 4, PixelDepth: 4, NumberOfArrayElements: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.h.Target()
			require.Error(t, err)
			assert.ErrorIs(t, err, asset.ErrFormat)
			assert.Contains(t, err.Error(), "insane texture")
		})
	}
}

func TestParseRejectsBadIdentifier(t *testing.T) {
	data := rawFile(rgba8Header(1, 1), binary.LittleEndian, nil, make([]byte, 4))
	data[1] = 'X'
	_, err := Parse(data, Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)

	_, err = Parse([]byte{0xAB, 0x4B}, Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseRejectsBadEndianness(t *testing.T) {
	data := rawFile(rgba8Header(1, 1), binary.LittleEndian, nil, make([]byte, 4))
	binary.LittleEndian.PutUint32(data[12:], 0xDEADBEEF)
	_, err := Parse(data, Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseDepthWithoutHeight(t *testing.T) {
	h := rgba8Header(4, 0)
	h.PixelDepth = 4
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 256)), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseUnknownBaseFormat(t *testing.T) {
	h := rgba8Header(2, 2)
	h.GLBaseInternalFormat = 0x1234
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseTypeSizeMismatch(t *testing.T) {
	h := rgba8Header(2, 2)
	h.GLTypeSize = 4
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 64)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseTooManyLevels(t *testing.T) {
	h := rgba8Header(4, 4)
	h.NumberOfMipmapLevels = 4
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 1024)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestParseTruncated(t *testing.T) {
	h := rgba8Header(4, 4)
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 63)), Options{})
	assert.ErrorIs(t, err, asset.ErrTruncated)
	assert.ErrorIs(t, err, asset.ErrIO)

	// Key/value block running past the end of the file.
	data := rawFile(h, binary.LittleEndian, nil, nil)
	binary.LittleEndian.PutUint32(data[60:], 1000)
	_, err = Parse(data, Options{})
	assert.ErrorIs(t, err, asset.ErrTruncated)
}

func TestParseZeroLevelsMeansOne(t *testing.T) {
	h := rgba8Header(2, 2)
	h.NumberOfMipmapLevels = 0
	f, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	require.NoError(t, err)
	assert.Len(t, f.Levels, 1)
}

func TestParseBigEndian(t *testing.T) {
	h := Header{
		GLType:               glUnsignedShort,
		GLTypeSize:           2,
		GLFormat:             glRed,
		GLInternalFormat:     glR16,
		GLBaseInternalFormat: glRed,
		PixelWidth:           2,
		PixelHeight:          1,
		NumberOfFaces:        1,
	}
	payload := []byte{0x12, 0x34, 0xAB, 0xCD}
	data := rawFile(h, binary.BigEndian, nil, payload)
	require.Equal(t, []byte{4, 3, 2, 1}, data[12:16])

	f, err := Parse(data, Options{})
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, f.Order)
	assert.Equal(t, uint32(2), f.Header.PixelWidth)
	assert.Equal(t, gpu.FormatR16, f.Format)
	assert.Equal(t, []byte{0x34, 0x12, 0xCD, 0xAB}, f.Levels[0].Data)
	// The caller's buffer is untouched.
	assert.Equal(t, payload, data[len(data)-4:])
}

func TestKeyValues(t *testing.T) {
	var kv bytes.Buffer
	binary.Write(&kv, binary.LittleEndian, uint32(len("KTXorientation\x00S=r,T=d\x00")))
	kv.WriteString("KTXorientation\x00S=r,T=d\x00")
	kv.Write(make([]byte, 1))
	binary.Write(&kv, binary.LittleEndian, uint32(4))
	kv.WriteString("abc\x00")

	f, err := Parse(rawFile(rgba8Header(1, 1), binary.LittleEndian, kv.Bytes(), make([]byte, 4)), Options{})
	require.NoError(t, err)
	require.Len(t, f.KeyValues, 2)
	v, ok := f.Value("KTXorientation")
	require.True(t, ok)
	assert.Equal(t, "S=r,T=d", string(v))
	v, ok = f.Value("abc")
	require.True(t, ok)
	assert.Empty(t, v)
	_, ok = f.Value("missing")
	assert.False(t, ok)
}

func TestStride(t *testing.T) {
	assert.Equal(t, 12, Stride(1, 3, 3, 4))
	assert.Equal(t, 9, Stride(1, 3, 3, 1))
	assert.Equal(t, 16, Stride(4, 4, 1, 4))
	assert.Equal(t, 6, Stride(1, 3, 2, 2))
}

func TestLevelDimsHalveAndClamp(t *testing.T) {
	h := Header{PixelWidth: 256, PixelHeight: 256}
	w, ht, _ := LevelDims(h, 1)
	assert.Equal(t, [2]int{128, 128}, [2]int{w, ht})
	w, ht, _ = LevelDims(h, 7)
	assert.Equal(t, [2]int{2, 2}, [2]int{w, ht})
	for level := 0; level < 16; level++ {
		w, ht, d := LevelDims(h, level)
		assert.GreaterOrEqual(t, w, 1)
		assert.GreaterOrEqual(t, ht, 1)
		assert.GreaterOrEqual(t, d, 1)
	}
	assert.Equal(t, 9, FullChain(256, 256))
	assert.Equal(t, 9, FullChain(256, 3))
	assert.Equal(t, 1, FullChain(1))
}

func TestLevelSizes(t *testing.T) {
	h := rgba8Header(256, 256)
	prev := uint64(0)
	for level := 0; level < 9; level++ {
		size, err := levelSize(h, level, 4, 0)
		require.NoError(t, err)
		if level > 0 {
			// RGBA8 rows stay aligned, so each level is a quarter of the last.
			assert.Equal(t, prev/4, size)
		}
		prev = size
	}
	assert.Equal(t, uint64(4), prev)

	cubeArray := h
	cubeArray.NumberOfFaces = 6
	cubeArray.NumberOfArrayElements = 2
	size, err := levelSize(cubeArray, 0, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(256*256*4*12), size)
}

func TestCompressedLevels(t *testing.T) {
	h := Header{
		GLTypeSize:           1,
		GLInternalFormat:     glCompressedDXT1,
		GLBaseInternalFormat: glRGB,
		PixelWidth:           8,
		PixelHeight:          8,
		NumberOfFaces:        1,
		NumberOfMipmapLevels: 4,
	}
	// 8x8 = 4 blocks, then 1 block for 4x4, 2x2 and 1x1.
	payload := make([]byte, 32+8+8+8)
	f, err := Parse(rawFile(h, binary.LittleEndian, nil, payload), Options{})
	require.NoError(t, err)
	assert.Equal(t, gpu.FormatBC1RGB, f.Format)
	require.Len(t, f.Levels, 4)
	assert.Len(t, f.Levels[0].Data, 32)
	assert.Len(t, f.Levels[3].Data, 8)

	dev := gpu.NewRecorder()
	tex, err := f.Upload(dev, 0)
	require.NoError(t, err)
	rec := dev.Textures[tex.Handle]
	require.Len(t, rec.Uploads, 4)
	assert.Equal(t, gpu.FormatBC1RGB, rec.Uploads[0].Format)
	assert.False(t, rec.Mipmapped)
}

func TestCompressedFormatMismatch(t *testing.T) {
	h := rgba8Header(4, 4)
	h.GLInternalFormat = glCompressedDXT5
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 64)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func solidLevels(s Params, levels int, fill byte) [][]byte {
	h := Header{
		GLType:                glUnsignedByte,
		GLTypeSize:            1,
		GLBaseInternalFormat:  glRGBA,
		PixelWidth:            uint32(s.Width),
		PixelHeight:           uint32(s.Height),
		PixelDepth:            uint32(s.Depth),
		NumberOfArrayElements: uint32(s.ArrayElements),
		NumberOfFaces:         1,
	}
	if s.Target == gpu.TargetCube || s.Target == gpu.TargetCubeArray {
		h.NumberOfFaces = 6
	}
	out := make([][]byte, levels)
	for i := range out {
		size, _ := levelSize(h, i, 4, 0)
		out[i] = bytes.Repeat([]byte{fill}, int(size))
	}
	return out
}

var rgba8 = gpu.PixelLayout{Order: gpu.OrderRGBA, Type: gpu.TypeUnsignedByte}

func TestUploadEveryTarget(t *testing.T) {
	tests := []struct {
		params  Params
		storage [3]int
	}{
		{Params{Target: gpu.Target1D, Width: 8}, [3]int{8, 1, 1}},
		{Params{Target: gpu.Target1DArray, Width: 8, ArrayElements: 3}, [3]int{8, 3, 1}},
		{Params{Target: gpu.Target2D, Width: 8, Height: 4}, [3]int{8, 4, 1}},
		{Params{Target: gpu.Target2DArray, Width: 8, Height: 4, ArrayElements: 5}, [3]int{8, 4, 5}},
		{Params{Target: gpu.Target3D, Width: 8, Height: 4, Depth: 2}, [3]int{8, 4, 2}},
		{Params{Target: gpu.TargetCube, Width: 4, Height: 4}, [3]int{4, 4, 6}},
		{Params{Target: gpu.TargetCubeArray, Width: 4, Height: 4, ArrayElements: 2}, [3]int{4, 4, 12}},
	}
	for _, tt := range tests {
		t.Run(tt.params.Target.String(), func(t *testing.T) {
			s := tt.params
			s.Format = gpu.FormatRGBA8
			s.Layout = rgba8
			f, err := New(s, solidLevels(s, 2, 0x7F), nil)
			require.NoError(t, err)

			dev := gpu.NewRecorder()
			tex, err := f.Upload(dev, 0)
			require.NoError(t, err)
			assert.Equal(t, s.Target, tex.Target)
			assert.Equal(t, tt.storage, [3]int{tex.Width, tex.Height, tex.Depth})

			rec := dev.Textures[tex.Handle]
			require.NotNil(t, rec.Storage)
			assert.Equal(t, 2, rec.Storage.Levels)
			require.Len(t, rec.Uploads, 2)
			assert.Equal(t, tt.storage, [3]int{rec.Uploads[0].Width, rec.Uploads[0].Height, rec.Uploads[0].Depth})
			assert.False(t, rec.Mipmapped)
		})
	}
}

func TestUploadSingleLevelGeneratesMipmaps(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 16, Height: 4}
	f, err := New(s, solidLevels(s, 1, 1), nil)
	require.NoError(t, err)

	dev := gpu.NewRecorder()
	tex, err := f.Upload(dev, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, tex.Levels)
	rec := dev.Textures[tex.Handle]
	assert.True(t, rec.Mipmapped)
	assert.Len(t, rec.Uploads, 1)
	assert.Equal(t, "GenerateMipmap()", dev.Ops[len(dev.Ops)-1])
}

func TestUploadReusesExistingTexture(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 2, 1), nil)
	require.NoError(t, err)

	dev := gpu.NewRecorder()
	tex, err := f.Upload(dev, gpu.Texture(42))
	require.NoError(t, err)
	assert.Equal(t, gpu.Texture(42), tex.Handle)
	for _, op := range dev.Ops {
		assert.NotContains(t, op, "CreateTexture")
	}
}

func TestRoundTripThroughFile(t *testing.T) {
	for _, prefix := range []bool{false, true} {
		s := Params{Target: gpu.TargetCube, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 4, Height: 4}
		kv := []KeyValue{{Key: "tool", Value: []byte("test")}}
		f, err := New(s, solidLevels(s, 3, 9), kv)
		require.NoError(t, err)

		var buf bytes.Buffer
		opts := Options{ImageSizePrefix: prefix}
		require.NoError(t, Encode(&buf, f, opts))

		path := filepath.Join(t.TempDir(), "cube.ktx")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

		dev := gpu.NewRecorder()
		tex, err := Load(dev, path, 0, opts)
		require.NoError(t, err)
		assert.Equal(t, gpu.TargetCube, tex.Target)
		assert.Equal(t, 3, tex.Levels)
		assert.Equal(t, 4*4*4*6+2*2*4*6+1*1*4*6, dev.UploadedBytes())

		back, err := Read(path, opts)
		require.NoError(t, err)
		v, _ := back.Value("tool")
		assert.Equal(t, "test", string(v))
	}
}

func TestImageSizePrefixMismatch(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 1, 0), nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, Options{ImageSizePrefix: true}))
	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[HeaderSize:], 3)
	_, err = Parse(data, Options{ImageSizePrefix: true})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestNewRejectsWrongLevelSize(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	_, err := New(s, [][]byte{make([]byte, 15)}, nil)
	assert.Error(t, err)

	s.Target = gpu.Target3D
	_, err = New(s, [][]byte{make([]byte, 16)}, nil)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(gpu.NewRecorder(), filepath.Join(t.TempDir(), "nope.ktx"), 0, Options{})
	assert.ErrorIs(t, err, asset.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadPropagatesDeviceErrors(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 2, 0), nil)
	require.NoError(t, err)

	dev := gpu.NewRecorder()
	dev.Fail["UploadSubImage"] = assert.AnError
	_, err = f.Upload(dev, 0)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRowAlignmentOne(t *testing.T) {
	// 3x2 RGB8 tightly packed is 18 bytes; with 4-byte rows it is 24.
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGB8,
		Layout: gpu.PixelLayout{Order: gpu.OrderRGB, Type: gpu.TypeUnsignedByte},
		Width: 3, Height: 2, RowAlignment: 1}
	f, err := New(s, [][]byte{make([]byte, 18)}, nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, Options{}))

	_, err = Parse(buf.Bytes(), Options{})
	assert.ErrorIs(t, err, asset.ErrTruncated)

	back, err := Parse(buf.Bytes(), Options{RowAlignment: 1})
	require.NoError(t, err)
	tex, err := back.Upload(gpu.NewRecorder(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Levels)
}

func TestIntegerFormatRoundTrip(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatR8UI,
		Layout: gpu.PixelLayout{Order: gpu.OrderRed, Type: gpu.TypeUnsignedByte},
		Width: 4, Height: 2}
	f, err := New(s, [][]byte{bytes.Repeat([]byte{3}, 8)}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(glRedInteger), f.Header.GLFormat)
	assert.Equal(t, uint32(glRed), f.Header.GLBaseInternalFormat)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, Options{}))
	back, err := Parse(buf.Bytes(), Options{})
	require.NoError(t, err)
	assert.Equal(t, gpu.FormatR8UI, back.Format)
	assert.Equal(t, s.Layout, back.Layout)

	dev := gpu.NewRecorder()
	_, err = back.Upload(dev, 0)
	require.NoError(t, err)
}

func TestParseIntegerGLFormat(t *testing.T) {
	h := rgba8Header(2, 2)
	h.GLInternalFormat = glRGBA8UI
	h.GLFormat = glRGBAInteger
	back, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	require.NoError(t, err)
	assert.Equal(t, gpu.FormatRGBA8UI, back.Format)
	assert.Equal(t, gpu.OrderRGBA, back.Layout.Order)

	// Integer base formats are accepted too.
	h.GLBaseInternalFormat = glRGBAInteger
	_, err = Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	require.NoError(t, err)

	h = rgba8Header(2, 2)
	h.GLInternalFormat = glR32UI
	h.GLType, h.GLTypeSize = glUnsignedInt, 4
	h.GLFormat, h.GLBaseInternalFormat = glRedInteger, glRed
	back, err = Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	require.NoError(t, err)
	assert.Equal(t, gpu.FormatR32UI, back.Format)
}

func TestParseIntegerFormatMismatch(t *testing.T) {
	// Integer glFormat on a normalized internal format.
	h := rgba8Header(2, 2)
	h.GLFormat = glRGBAInteger
	_, err := Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)

	// Normalized glFormat on an integer internal format.
	h = rgba8Header(2, 2)
	h.GLInternalFormat = glRGBA8UI
	_, err = Parse(rawFile(h, binary.LittleEndian, nil, make([]byte, 16)), Options{})
	assert.ErrorIs(t, err, asset.ErrFormat)
}

func TestUploadSkipMipGeneration(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 16, Height: 4}
	f, err := New(s, solidLevels(s, 1, 1), nil)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f, Options{}))

	back, err := Parse(buf.Bytes(), Options{SkipMipGeneration: true})
	require.NoError(t, err)
	assert.Equal(t, 1, back.Storage().Levels)

	dev := gpu.NewRecorder()
	tex, err := back.Upload(dev, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tex.Levels)
	assert.False(t, dev.Textures[tex.Handle].Mipmapped)
	assert.NotContains(t, dev.Ops, "GenerateMipmap()")
}

func TestUploadFailureDeletesCreatedTexture(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 1, 0), nil)
	require.NoError(t, err)

	for _, step := range []string{"AllocateStorage", "UploadSubImage", "GenerateMipmap"} {
		t.Run(step, func(t *testing.T) {
			dev := gpu.NewRecorder()
			dev.Fail[step] = assert.AnError
			_, err := f.Upload(dev, 0)
			assert.ErrorIs(t, err, assert.AnError)
			assert.Equal(t, "DeleteTexture(1)", dev.Ops[len(dev.Ops)-1])
			assert.Empty(t, dev.Textures)
		})
	}
}

func TestUploadFailureKeepsExistingTexture(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 2, 0), nil)
	require.NoError(t, err)

	dev := gpu.NewRecorder()
	dev.Fail["UploadSubImage"] = assert.AnError
	_, err = f.Upload(dev, gpu.Texture(42))
	assert.ErrorIs(t, err, assert.AnError)
	for _, op := range dev.Ops {
		assert.NotContains(t, op, "DeleteTexture")
	}
}

func TestUploadCreateFailureDeletesNothing(t *testing.T) {
	s := Params{Target: gpu.Target2D, Format: gpu.FormatRGBA8, Layout: rgba8, Width: 2, Height: 2}
	f, err := New(s, solidLevels(s, 1, 0), nil)
	require.NoError(t, err)

	dev := gpu.NewRecorder()
	dev.Fail["CreateTexture"] = assert.AnError
	_, err = f.Upload(dev, 0)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"CreateTexture(2D)"}, dev.Ops)
}
