// Package ktx reads and writes KTX 1.1 texture containers and uploads
// them, every mip level included, to a gpu.Device.
package ktx

import (
	"bytes"
	"encoding/binary"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
)

// Identifier opens every KTX 1.1 file.
var Identifier = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x31, 0x31, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	// HeaderSize covers the identifier and the 13 u32 fields.
	HeaderSize = 12 + 13*4

	endianNative  = 0x04030201
	endianSwapped = 0x01020304
)

// Header mirrors the fixed KTX header after the identifier.
type Header struct {
	Endianness            uint32
	GLType                uint32
	GLTypeSize            uint32
	GLFormat              uint32
	GLInternalFormat      uint32
	GLBaseInternalFormat  uint32
	PixelWidth            uint32
	PixelHeight           uint32
	PixelDepth            uint32
	NumberOfArrayElements uint32
	NumberOfFaces         uint32
	NumberOfMipmapLevels  uint32
	BytesOfKeyValueData   uint32
}

// ParseHeader validates the identifier and decodes the header in the byte
// order the file declares. Big-endian files are swapped here; the returned
// order is the one to use for the rest of the file.
func ParseHeader(data []byte) (Header, binary.ByteOrder, error) {
	if len(data) < len(Identifier) {
		return Header{}, nil, asset.Formatf("ktx", "file too short for identifier (%d bytes)", len(data))
	}
	if !bytes.Equal(data[:len(Identifier)], Identifier[:]) {
		return Header{}, nil, asset.Formatf("ktx", "bad identifier % x", data[:len(Identifier)])
	}

	r := asset.NewReader(data, binary.LittleEndian)
	r.Seek(len(Identifier))
	var order binary.ByteOrder
	switch e := r.U32(); e {
	case endianNative:
		order = binary.LittleEndian
	case endianSwapped:
		order = binary.BigEndian
	default:
		if r.Err() != nil {
			return Header{}, nil, r.Err()
		}
		return Header{}, nil, asset.Formatf("ktx", "bad endianness marker 0x%08x", e)
	}

	r.SetOrder(order)
	h := Header{
		Endianness:            endianNative,
		GLType:                r.U32(),
		GLTypeSize:            r.U32(),
		GLFormat:              r.U32(),
		GLInternalFormat:      r.U32(),
		GLBaseInternalFormat:  r.U32(),
		PixelWidth:            r.U32(),
		PixelHeight:           r.U32(),
		PixelDepth:            r.U32(),
		NumberOfArrayElements: r.U32(),
		NumberOfFaces:         r.U32(),
		NumberOfMipmapLevels:  r.U32(),
		BytesOfKeyValueData:   r.U32(),
	}
	if err := r.Err(); err != nil {
		return Header{}, nil, err
	}
	return h, order, nil
}

// Target infers the texture target from which dimensions are set and
// checks the header for combinations no texture can have.
func (h Header) Target() (gpu.Target, error) {
	faces := h.NumberOfFaces
	if faces == 1 {
		faces = 0
	}
	if faces != 0 && faces != 6 {
		return gpu.TargetNone, asset.Formatf("ktx", "insane texture: %d faces", h.NumberOfFaces)
	}

	target := gpu.TargetNone
	switch {
	case h.PixelHeight == 0:
		if h.NumberOfArrayElements == 0 {
			target = gpu.Target1D
		} else {
			target = gpu.Target1DArray
		}
	case h.PixelDepth == 0:
		switch {
		case h.NumberOfArrayElements == 0 && faces == 0:
			target = gpu.Target2D
		case h.NumberOfArrayElements == 0:
			target = gpu.TargetCube
		case faces == 0:
			target = gpu.Target2DArray
		default:
			target = gpu.TargetCubeArray
		}
	default:
		target = gpu.Target3D
	}

	switch {
	case h.PixelWidth == 0:
		return gpu.TargetNone, asset.Formatf("ktx", "insane texture: zero width")
	case h.PixelHeight == 0 && h.PixelDepth != 0:
		return gpu.TargetNone, asset.Formatf("ktx", "insane texture: depth %d without height", h.PixelDepth)
	case faces == 6 && target != gpu.TargetCube && target != gpu.TargetCubeArray:
		return gpu.TargetNone, asset.Formatf("ktx", "insane texture: cube faces on a %v texture", target)
	case target == gpu.Target3D && h.NumberOfArrayElements != 0:
		return gpu.TargetNone, asset.Formatf("ktx", "insane texture: 3D texture with %d array elements", h.NumberOfArrayElements)
	}
	return target, nil
}

// Levels is the number of mip levels stored in the file; 0 in the header means 1.
func (h Header) Levels() int {
	if h.NumberOfMipmapLevels == 0 {
		return 1
	}
	return int(h.NumberOfMipmapLevels)
}

// Layers is the number of 2D images per level: array elements times faces,
// each counted as at least 1.
func (h Header) Layers() int {
	return int(uint64(max(h.NumberOfArrayElements, 1)) * uint64(max(h.NumberOfFaces, 1)))
}

// Compressed reports whether the file holds block compressed data.
func (h Header) Compressed() bool {
	return h.GLType == 0
}
