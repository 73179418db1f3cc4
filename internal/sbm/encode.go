package sbm

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"sb6-assets/internal/gpu"
)

// Builder assembles a mesh file. Attributes are stored as separate tightly
// packed blocks of the vertex blob, in the order they are added.
type Builder struct {
	attrs      []VertexAttribute
	vertices   []byte
	total      int
	indexType  gpu.ComponentType
	indices    []byte
	indexCount int
	subObjects []SubObject
	comments   []string
	err        error
}

// AddFloats appends an attribute of components float32 values per vertex.
// Every attribute must cover the same number of vertices.
func (b *Builder) AddFloats(name string, components int, values []float32) *Builder {
	data := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return b.AddAttribute(name, components, gpu.TypeFloat, 0, data)
}

// AddAttribute appends an attribute with raw little-endian component data.
func (b *Builder) AddAttribute(name string, components int, typ gpu.ComponentType, flags uint32, data []byte) *Builder {
	if b.err != nil {
		return b
	}
	code, ok := glCodeFor(typ)
	switch {
	case !ok:
		b.err = fmt.Errorf("sbm: attribute %q: no type code for %v", name, typ)
		return b
	case len(name) >= attribNameSize:
		b.err = fmt.Errorf("sbm: attribute name %q longer than %d bytes", name, attribNameSize-1)
		return b
	case components < 1 || components > 4:
		b.err = fmt.Errorf("sbm: attribute %q: %d components", name, components)
		return b
	}
	elem := components * typ.Size()
	if len(data)%elem != 0 {
		b.err = fmt.Errorf("sbm: attribute %q: %d bytes is not a multiple of %d", name, len(data), elem)
		return b
	}
	n := len(data) / elem
	if len(b.attrs) > 0 && n != b.total {
		b.err = fmt.Errorf("sbm: attribute %q has %d vertices, earlier attributes have %d", name, n, b.total)
		return b
	}
	b.total = n
	b.attrs = append(b.attrs, VertexAttribute{
		Name:       name,
		Size:       uint32(components),
		Type:       code,
		Flags:      flags,
		DataOffset: uint32(len(b.vertices)),
	})
	b.vertices = append(b.vertices, data...)
	return b
}

// SetIndices stores 32-bit indices, or 16-bit ones when every value fits.
func (b *Builder) SetIndices(indices []uint32) *Builder {
	wide := false
	for _, ix := range indices {
		if ix > math.MaxUint16 {
			wide = true
			break
		}
	}
	b.indexCount = len(indices)
	if wide {
		b.indexType = gpu.TypeUnsignedInt
		b.indices = make([]byte, 4*len(indices))
		for i, ix := range indices {
			binary.LittleEndian.PutUint32(b.indices[4*i:], ix)
		}
	} else {
		b.indexType = gpu.TypeUnsignedShort
		b.indices = make([]byte, 2*len(indices))
		for i, ix := range indices {
			binary.LittleEndian.PutUint16(b.indices[2*i:], uint16(ix))
		}
	}
	return b
}

// AddSubObject appends a draw range.
func (b *Builder) AddSubObject(first, count uint32) *Builder {
	b.subObjects = append(b.subObjects, SubObject{First: first, Count: count})
	return b
}

// AddComment appends a CMNT chunk.
func (b *Builder) AddComment(text string) *Builder {
	b.comments = append(b.comments, text)
	return b
}

// Bytes encodes the mesh: header, chunks, then the vertex and index blobs.
func (b *Builder) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.attrs) == 0 {
		return nil, fmt.Errorf("sbm: mesh without attributes")
	}
	for i, s := range b.subObjects {
		if uint64(s.First)+uint64(s.Count) > uint64(b.total) {
			return nil, fmt.Errorf("sbm: sub-object %d outside %d vertices", i, b.total)
		}
	}

	var chunks bytes.Buffer
	numChunks := 0
	le := binary.LittleEndian

	for _, c := range b.comments {
		text := append([]byte(c), 0)
		text = append(text, make([]byte, (4-len(text)%4)%4)...)
		binary.Write(&chunks, le, [2]uint32{uint32(ChunkComment), uint32(chunkHeaderSize + len(text))})
		chunks.Write(text)
		numChunks++
	}

	binary.Write(&chunks, le, [3]uint32{uint32(ChunkVertexAttribs), uint32(12 + attribRecordSize*len(b.attrs)), uint32(len(b.attrs))})
	for _, a := range b.attrs {
		var name [attribNameSize]byte
		copy(name[:], a.Name)
		chunks.Write(name[:])
		binary.Write(&chunks, le, [5]uint32{a.Size, a.Type, a.Stride, a.Flags, a.DataOffset})
	}
	numChunks++

	// VRTX and INDX carry absolute offsets into the blobs after the chunk table.
	tableSize := chunks.Len() + 20
	if b.indices != nil {
		tableSize += 20
	}
	if len(b.subObjects) > 0 {
		tableSize += 12 + subObjectSize*len(b.subObjects)
	}
	vertexOffset := headerSize + tableSize
	indexOffset := vertexOffset + len(b.vertices)

	binary.Write(&chunks, le, [5]uint32{uint32(ChunkVertexData), 20, uint32(len(b.vertices)), uint32(vertexOffset), uint32(b.total)})
	numChunks++

	if b.indices != nil {
		code, _ := glCodeFor(b.indexType)
		binary.Write(&chunks, le, [5]uint32{uint32(ChunkIndexData), 20, code, uint32(b.indexCount), uint32(indexOffset)})
		numChunks++
	}
	if len(b.subObjects) > 0 {
		binary.Write(&chunks, le, [3]uint32{uint32(ChunkSubObjectList), uint32(12 + subObjectSize*len(b.subObjects)), uint32(len(b.subObjects))})
		for _, s := range b.subObjects {
			binary.Write(&chunks, le, [2]uint32{s.First, s.Count})
		}
		numChunks++
	}

	var out bytes.Buffer
	binary.Write(&out, le, Header{Magic: Magic, Size: headerSize, NumChunks: uint32(numChunks)})
	out.Write(chunks.Bytes())
	out.Write(b.vertices)
	out.Write(b.indices)
	return out.Bytes(), nil
}

// WriteTo encodes the mesh to w.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	data, err := b.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
