package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sb6-assets/internal/imageutil"
	"sb6-assets/internal/ktx"
	"sb6-assets/internal/logging"
)

func main() {
	out := flag.String("out", ".", "Output directory")
	format := flag.String("format", "webp", "Image format: webp or png")
	align := flag.Int("align", ktx.DefaultRowAlignment, "Row alignment of level data")
	prefix := flag.Bool("imagesize", false, "Levels carry a 4-byte imageSize prefix")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	logging.Setup(*verbose)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ktxdump [-out dir] [-format webp|png] file.ktx...")
		os.Exit(2)
	}

	opts := ktx.Options{RowAlignment: *align, ImageSizePrefix: *prefix}
	failed := false
	for _, arg := range flag.Args() {
		if err := dump(arg, *out, *format, opts); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", arg, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func dump(path, outDir, format string, opts ktx.Options) error {
	f, err := ktx.Read(path, opts)
	if err != nil {
		return err
	}
	if f.Format.Compressed() {
		return fmt.Errorf("%v is block compressed, nothing to decode", f.Format)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written := 0
	for level := range f.Levels {
		for slice := 0; slice < f.Slices(level); slice++ {
			img, err := f.LevelImage(level, slice)
			if err != nil {
				return err
			}
			name := filepath.Join(outDir, fmt.Sprintf("%s_l%d_s%d.%s", stem, level, slice, format))
			if err := imageutil.Save(name, img, format); err != nil {
				return err
			}
			b := img.Bounds()
			fmt.Printf("OK  %s level %d slice %d -> %s  (%dx%d)\n", path, level, slice, name, b.Dx(), b.Dy())
			written++
		}
	}
	fmt.Printf("%s: %d images written\n", path, written)
	return nil
}
