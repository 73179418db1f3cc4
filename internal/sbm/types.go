// Package sbm reads and writes SB6M mesh containers: a chunked file with a
// vertex attribute table, one shared vertex blob, optional indices and a
// list of sub-object draw ranges.
package sbm

import (
	"fmt"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
)

// FourCC packs four characters little-endian first.
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Magic is the first field of every mesh file.
var Magic = FourCC('S', 'B', '6', 'M')

// ChunkType tags a chunk.
type ChunkType uint32

var (
	ChunkIndexData     = ChunkType(FourCC('I', 'N', 'D', 'X'))
	ChunkVertexData    = ChunkType(FourCC('V', 'R', 'T', 'X'))
	ChunkVertexAttribs = ChunkType(FourCC('A', 'T', 'R', 'B'))
	ChunkSubObjectList = ChunkType(FourCC('O', 'L', 'S', 'T'))
	ChunkComment       = ChunkType(FourCC('C', 'M', 'N', 'T'))
	ChunkData          = ChunkType(FourCC('D', 'A', 'T', 'A'))
)

func (c ChunkType) String() string {
	b := []byte{byte(c), byte(c >> 8), byte(c >> 16), byte(c >> 24)}
	for _, x := range b {
		if x < 0x20 || x > 0x7E {
			return fmt.Sprintf("0x%08x", uint32(c))
		}
	}
	return string(b)
}

// Known reports whether c is one of the six chunk types.
func (c ChunkType) Known() bool {
	switch c {
	case ChunkIndexData, ChunkVertexData, ChunkVertexAttribs, ChunkSubObjectList, ChunkComment, ChunkData:
		return true
	}
	return false
}

const (
	headerSize       = 16
	chunkHeaderSize  = 8
	attribRecordSize = 84
	attribNameSize   = 64
	subObjectSize    = 8
)

// Header is the fixed file header.
type Header struct {
	Magic     uint32
	Size      uint32
	NumChunks uint32
	Flags     uint32
}

// Chunk locates one chunk in the file.
type Chunk struct {
	Type   ChunkType
	Offset uint32
	Size   uint32
}

// Vertex attribute flags.
const (
	FlagNormalized uint32 = 0x1
	FlagInteger    uint32 = 0x2
)

// VertexAttribute is one entry of the attribute table. DataOffset is
// relative to the start of the vertex blob.
type VertexAttribute struct {
	Name       string
	Size       uint32
	Type       uint32
	Stride     uint32
	Flags      uint32
	DataOffset uint32
}

func (a VertexAttribute) Normalized() bool { return a.Flags&FlagNormalized != 0 }
func (a VertexAttribute) Integer() bool    { return a.Flags&FlagInteger != 0 }

// GL component type codes accepted in attribute and index records.
const (
	glByte          = 0x1400
	glUnsignedByte  = 0x1401
	glShort         = 0x1402
	glUnsignedShort = 0x1403
	glInt           = 0x1404
	glUnsignedInt   = 0x1405
	glFloat         = 0x1406
	glDouble        = 0x140A
	glHalfFloat     = 0x140B
)

var componentTypes = map[uint32]gpu.ComponentType{
	glByte:          gpu.TypeByte,
	glUnsignedByte:  gpu.TypeUnsignedByte,
	glShort:         gpu.TypeShort,
	glUnsignedShort: gpu.TypeUnsignedShort,
	glInt:           gpu.TypeInt,
	glUnsignedInt:   gpu.TypeUnsignedInt,
	glFloat:         gpu.TypeFloat,
	glDouble:        gpu.TypeDouble,
	glHalfFloat:     gpu.TypeHalfFloat,
}

// ComponentType translates the stored type code.
func (a VertexAttribute) ComponentType() (gpu.ComponentType, error) {
	t, ok := componentTypes[a.Type]
	if !ok {
		return gpu.TypeNone, asset.Formatf("sbm", "attribute %q has unknown type 0x%04x", a.Name, a.Type)
	}
	return t, nil
}

// glCodeFor is the reverse of componentTypes.
func glCodeFor(t gpu.ComponentType) (uint32, bool) {
	for code, ct := range componentTypes {
		if ct == t {
			return code, true
		}
	}
	return 0, false
}

// VertexData describes the shared vertex blob. DataOffset is absolute.
type VertexData struct {
	DataSize      uint32
	DataOffset    uint32
	TotalVertices uint32
}

// IndexData describes the optional index blob. IndexDataOffset is absolute.
type IndexData struct {
	IndexType       uint32
	IndexCount      uint32
	IndexDataOffset uint32
}

// RawData is a DATA chunk; encoding 0 means the bytes are stored as is.
type RawData struct {
	Encoding   uint32
	DataOffset uint32
	DataLength uint32
}

// SubObject is a drawable vertex range of the shared buffer.
type SubObject struct {
	First uint32
	Count uint32
}

// File is a parsed mesh container. VertexBytes and IndexBytes alias the
// parsed buffer.
type File struct {
	Header      Header
	Chunks      []Chunk
	Attributes  []VertexAttribute
	Vertex      VertexData
	Index       *IndexData
	IndexType   gpu.ComponentType
	SubObjects  []SubObject // as stored
	Comments    []string
	Raw         []RawData
	VertexBytes []byte
	IndexBytes  []byte

	// SubObjectList is set when the file carries an OLST chunk, even an
	// empty one.
	SubObjectList bool
}

// Ranges returns the draw ranges of the mesh. A file without a sub-object
// list is one implicit sub-object spanning every vertex; an explicit empty
// list stays empty.
func (f *File) Ranges() []SubObject {
	if !f.SubObjectList {
		return []SubObject{{First: 0, Count: f.Vertex.TotalVertices}}
	}
	return append([]SubObject(nil), f.SubObjects...)
}
