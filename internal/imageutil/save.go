package imageutil

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// Save writes img as WebP (lossless) or PNG, creating parent directories.
func Save(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "webp":
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("imageutil: webp encode %s: %w", path, err)
		}
	case "png":
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("imageutil: png encode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("imageutil: unknown image format %q", format)
	}
	return f.Close()
}
