package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"strings"

	"sb6-assets/internal/ktx"
	"sb6-assets/internal/logging"
)

func main() {
	align := flag.Int("align", ktx.DefaultRowAlignment, "Row alignment of level data (1 for tightly packed files)")
	prefix := flag.Bool("imagesize", false, "Levels carry a 4-byte imageSize prefix")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()
	logging.Setup(*verbose)

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ktxinfo [-align n] [-imagesize] file.ktx...")
		os.Exit(2)
	}

	opts := ktx.Options{RowAlignment: *align, ImageSizePrefix: *prefix}
	failed := false
	for _, arg := range flag.Args() {
		f, err := ktx.Read(arg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			failed = true
			continue
		}
		printFile(arg, f)
	}
	if failed {
		os.Exit(1)
	}
}

func printFile(path string, f *ktx.File) {
	h := f.Header
	endian := "little"
	if f.Order == binary.BigEndian {
		endian = "big"
	}
	fmt.Printf("\n=== %s ===\n", path)
	fmt.Printf("  target:     %v\n", f.Target)
	fmt.Printf("  format:     %v", f.Format)
	if !f.Format.Compressed() {
		fmt.Printf(" (%v %v)", f.Layout.Order, f.Layout.Type)
	}
	fmt.Println()
	fmt.Printf("  size:       %dx%dx%d\n", h.PixelWidth, h.PixelHeight, h.PixelDepth)
	fmt.Printf("  arrays:     %d  faces: %d  layers: %d\n", h.NumberOfArrayElements, h.NumberOfFaces, h.Layers())
	fmt.Printf("  endianness: %s\n", endian)
	fmt.Printf("  gl codes:   type=0x%04x format=0x%04x internal=0x%04x base=0x%04x\n",
		h.GLType, h.GLFormat, h.GLInternalFormat, h.GLBaseInternalFormat)

	if len(f.KeyValues) > 0 {
		fmt.Println("--- KEY/VALUE ---")
		for _, kv := range f.KeyValues {
			fmt.Printf("  %s = %s\n", kv.Key, printable(kv.Value))
		}
	}

	fmt.Printf("--- LEVELS (%d", len(f.Levels))
	if len(f.Levels) == 1 && !f.Format.Compressed() {
		fmt.Print(", rest generated on upload")
	}
	fmt.Println(") ---")
	for i, l := range f.Levels {
		fmt.Printf("  [%d] %dx%dx%d layers=%d bytes=%d\n", i, l.Width, l.Height, l.Depth, l.Layers, len(l.Data))
	}
}

func printable(b []byte) string {
	s := strings.TrimRight(string(b), "\x00")
	for _, r := range s {
		if r < 0x20 || r > 0x7E {
			return fmt.Sprintf("<%d bytes>", len(b))
		}
	}
	return s
}
