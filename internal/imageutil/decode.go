// Package imageutil decodes source images for texture conversion and
// builds downsampled mip chains.
package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"golang.org/x/image/bmp"
)

// FloatImage is a linear RGB image with three float32 components per pixel.
type FloatImage struct {
	Width  int
	Height int
	Pix    []float32
}

// IsHDR reports whether path names a Radiance RGBE file.
func IsHDR(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".hdr" || ext == ".pic"
}

// Load reads a PNG, JPEG, TGA or BMP file as NRGBA. The decoder is chosen
// by extension: TGA has no magic bytes, so content sniffing cannot tell it
// apart from the others.
func Load(path string) (*image.NRGBA, error) {
	var decode func(io.Reader) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		decode = png.Decode
	case ".jpg", ".jpeg":
		decode = jpeg.Decode
	case ".tga":
		decode = tga.Decode
	case ".bmp":
		decode = bmp.Decode
	default:
		return nil, fmt.Errorf("imageutil: unknown extension: %q", ext)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageutil: read %s: %w", path, err)
	}
	img, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imageutil: decode %s: %w", path, err)
	}
	return ToNRGBA(img), nil
}

// LoadHDR reads a Radiance RGBE file without clamping.
func LoadHDR(path string) (*FloatImage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageutil: read %s: %w", path, err)
	}
	img, err := rgbe.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("imageutil: decode %s: %w", path, err)
	}
	m, ok := img.(hdr.Image)
	if !ok {
		return nil, fmt.Errorf("imageutil: %s: decoder returned %T, not an HDR image", path, img)
	}

	b := m.Bounds()
	out := &FloatImage{Width: b.Dx(), Height: b.Dy(), Pix: make([]float32, 0, 3*b.Dx()*b.Dy())}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := m.HDRAt(x, y).HDRRGBA()
			out.Pix = append(out.Pix, float32(r), float32(g), float32(bl))
		}
	}
	return out, nil
}

// ToNRGBA converts any image to NRGBA with its origin at (0, 0).
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray:
		// Opaque sources draw straight across.
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
