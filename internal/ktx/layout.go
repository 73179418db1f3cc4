package ktx

import (
	"math/bits"

	"sb6-assets/internal/asset"
)

// DefaultRowAlignment is the row padding of uncompressed level data.
const DefaultRowAlignment = 4

// Stride is the padded byte length of one row of width pixels.
// pad must be a power of two.
func Stride(typeSize, channels, width, pad int) int {
	if pad < 1 {
		pad = 1
	}
	stride := typeSize * channels * width
	return (stride + pad - 1) &^ (pad - 1)
}

// LevelDims returns the pixel dimensions of a mip level. Each dimension
// halves per level, rounding down, and never drops below 1. A zero height
// or depth in the header stays 1 at every level.
func LevelDims(h Header, level int) (w, ht, d int) {
	w = int(h.PixelWidth)
	ht = max(int(h.PixelHeight), 1)
	d = max(int(h.PixelDepth), 1)
	for i := 0; i < level; i++ {
		w = max(w>>1, 1)
		ht = max(ht>>1, 1)
		d = max(d>>1, 1)
	}
	return w, ht, d
}

// levelSize is the byte size of one mip level: every layer and face of it.
func levelSize(h Header, level, pad, blockBytes int) (uint64, error) {
	w, ht, d := LevelDims(h, level)
	var factors []uint64
	if h.Compressed() {
		if blockBytes == 0 {
			return 0, asset.Formatf("ktx", "compressed texture without a block size")
		}
		factors = []uint64{uint64((w + 3) / 4), uint64((ht + 3) / 4), uint64(blockBytes), uint64(d)}
	} else {
		channels := baseChannels(h.GLBaseInternalFormat)
		if channels == 0 {
			return 0, asset.Formatf("ktx", "unknown base internal format 0x%04x", h.GLBaseInternalFormat)
		}
		factors = []uint64{uint64(Stride(int(h.GLTypeSize), channels, w, pad)), uint64(ht), uint64(d)}
	}
	factors = append(factors, uint64(h.Layers()))

	size := uint64(1)
	for _, f := range factors {
		hi, lo := bits.Mul64(size, f)
		if hi != 0 || lo > maxLevelBytes {
			return 0, asset.Formatf("ktx", "level %d size overflows", level)
		}
		size = lo
	}
	return size, nil
}

// maxLevelBytes bounds a single level; anything larger is a corrupt header.
const maxLevelBytes = 1 << 40

// FullChain is the level count of a complete mip chain for the given extent.
func FullChain(dims ...int) int {
	m := 1
	for _, d := range dims {
		m = max(m, d)
	}
	n := 1
	for m > 1 {
		m >>= 1
		n++
	}
	return n
}
