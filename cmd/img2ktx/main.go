package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"sb6-assets/internal/imageutil"
	"sb6-assets/internal/ktx"
	"sb6-assets/internal/logging"
)

func main() {
	mips := flag.Bool("mips", false, "Store a downsampled mip chain instead of the base level only")
	prefix := flag.Bool("imagesize", false, "Write the 4-byte imageSize prefix before each level")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	logging.Setup(*verbose)

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: img2ktx [-mips] in.{png,jpg,tga,bmp,hdr} out.ktx")
		os.Exit(2)
	}
	in, out := flag.Arg(0), flag.Arg(1)

	f, err := convert(in, *mips)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var buf bytes.Buffer
	if err := ktx.Encode(&buf, f, ktx.Options{ImageSizePrefix: *prefix}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: write %s: %v\n", out, err)
		os.Exit(1)
	}
	fmt.Printf("OK  %s -> %s  (%v %dx%d, %d levels, %d bytes)\n",
		in, out, f.Format, f.Header.PixelWidth, f.Header.PixelHeight, len(f.Levels), buf.Len())
}

func convert(path string, mips bool) (*ktx.File, error) {
	kv := []ktx.KeyValue{{Key: "source", Value: append([]byte(filepath.Base(path)), 0)}}

	if imageutil.IsHDR(path) {
		img, err := imageutil.LoadHDR(path)
		if err != nil {
			return nil, err
		}
		if mips {
			logging.Logger().Warn("img2ktx: float sources keep one level; the loader generates the rest")
		}
		return ktx.FromFloatRGB(img.Width, img.Height, [][]float32{img.Pix}, kv)
	}

	img, err := imageutil.Load(path)
	if err != nil {
		return nil, err
	}
	levels := []*image.NRGBA{img}
	if mips {
		levels = imageutil.MipChain(img)
	}
	return ktx.FromImages(levels, kv)
}
