package imageutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, solid(4, 2, color.NRGBA{10, 20, 30, 128})))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{10, 20, 30, 128}, img.NRGBAAt(3, 1))
}

func TestLoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, solid(3, 3, color.NRGBA{200, 100, 50, 255})))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{200, 100, 50, 255}, img.NRGBAAt(1, 1))
}

func TestLoadJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.JPG")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, solid(8, 8, color.NRGBA{128, 128, 128, 255}), &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())
	c := img.NRGBAAt(4, 4)
	assert.InDelta(t, 128, int(c.R), 3)
	assert.InDelta(t, 128, int(c.G), 3)
	assert.InDelta(t, 128, int(c.B), 3)
	assert.Equal(t, uint8(255), c.A)
}

func TestLoadTGA(t *testing.T) {
	src := solid(2, 2, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 128})
	path := filepath.Join(t.TempDir(), "a.tga")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, tga.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 255, 0, 128}, img.NRGBAAt(1, 0))
}

func TestLoadTGABottomLeftOrigin(t *testing.T) {
	// Uncompressed 24-bit true color, 2x2, no origin flags: rows are stored
	// bottom first.
	data := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 0, 2, 0, 24, 0}
	data = append(data, 255, 0, 0, 255, 0, 0) // bottom row, BGR blue
	data = append(data, 0, 0, 255, 0, 0, 255) // top row, BGR red
	path := filepath.Join(t.TempDir(), "b.tga")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, img.NRGBAAt(1, 1))
}

func TestLoadPicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(1, 1, color.NRGBA{1, 2, 3, 255})))

	// PNG bytes under a .bmp name go to the BMP decoder and fail.
	misnamed := filepath.Join(dir, "a.bmp")
	require.NoError(t, os.WriteFile(misnamed, buf.Bytes(), 0o644))
	_, err := Load(misnamed)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "a.gif")
	require.NoError(t, os.WriteFile(unknown, buf.Bytes(), 0o644))
	_, err = Load(unknown)
	assert.ErrorContains(t, err, "unknown extension")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	junk := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(junk, []byte("not an image"), 0o644))
	_, err = Load(junk)
	assert.Error(t, err)
}

func TestLoadHDR(t *testing.T) {
	// Two flat RGBE pixels: 1.0 red and 0.5 grey.
	data := []byte("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 1 +X 2\n")
	data = append(data, 128, 0, 0, 129, 128, 128, 128, 128)
	path := filepath.Join(t.TempDir(), "sky.hdr")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	img, err := LoadHDR(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	require.Len(t, img.Pix, 6)
	assert.InDelta(t, 1.0, img.Pix[0], 0.01)
	assert.InDelta(t, 0.0, img.Pix[1], 0.01)
	assert.InDelta(t, 0.5, img.Pix[3], 0.01)
}

func TestIsHDR(t *testing.T) {
	assert.True(t, IsHDR("a/b/Sky.HDR"))
	assert.False(t, IsHDR("sky.png"))
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{255, 0, 0, 255})
	dst := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), dst.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, dst.NRGBAAt(1, 0))
}

func TestMipChainSizes(t *testing.T) {
	levels := MipChain(solid(5, 3, color.NRGBA{1, 2, 3, 255}))
	var sizes []image.Point
	for _, l := range levels {
		sizes = append(sizes, l.Bounds().Size())
	}
	assert.Equal(t, []image.Point{{5, 3}, {2, 1}, {1, 1}}, sizes)

	assert.Len(t, MipChain(solid(256, 256, color.NRGBA{A: 255})), 9)
	assert.Len(t, MipChain(solid(1, 1, color.NRGBA{A: 255})), 1)
}

func TestDownsampleKeepsSolidColor(t *testing.T) {
	out := Downsample(solid(8, 8, color.NRGBA{90, 60, 30, 255}), 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.NRGBA{90, 60, 30, 255}, out.NRGBAAt(x, y))
		}
	}
}

func TestDownsampleNoDarkFringe(t *testing.T) {
	img := solid(8, 8, color.NRGBA{})
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	out := Downsample(img, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := out.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			assert.Zero(t, c.G)
			assert.Zero(t, c.B)
		}
	}
	assert.Equal(t, uint8(255), out.NRGBAAt(3, 2).R)
}

func TestDownsampleSameSize(t *testing.T) {
	img := solid(2, 2, color.NRGBA{A: 255})
	assert.Same(t, img, Downsample(img, 2, 2))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := solid(4, 4, color.NRGBA{40, 80, 120, 255})

	pngPath := filepath.Join(dir, "sub", "a.png")
	require.NoError(t, Save(pngPath, img, "png"))
	back, err := Load(pngPath)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, back.Pix)

	webpPath := filepath.Join(dir, "a.webp")
	require.NoError(t, Save(webpPath, img, "webp"))
	st, err := os.Stat(webpPath)
	require.NoError(t, err)
	assert.NotZero(t, st.Size())

	assert.Error(t, Save(filepath.Join(dir, "a.gif"), img, "gif"))
}
