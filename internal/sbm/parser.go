package sbm

import (
	"encoding/binary"
	"os"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
	"sb6-assets/internal/logging"
)

// Read loads and parses a mesh file.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, asset.ReadError("sbm", path, err)
	}
	return Parse(data)
}

// Parse decodes a mesh file held in memory.
func Parse(data []byte) (*File, error) {
	r := asset.NewReader(data, binary.LittleEndian)
	h := Header{Magic: r.U32(), Size: r.U32(), NumChunks: r.U32(), Flags: r.U32()}
	if err := r.Err(); err != nil {
		return nil, err
	}
	if h.Magic != Magic {
		return nil, asset.Formatf("sbm", "bad magic %v", ChunkType(h.Magic))
	}
	if h.Size < headerSize {
		return nil, asset.Formatf("sbm", "header size %d below %d", h.Size, headerSize)
	}

	f := &File{Header: h}
	p := parser{f: f, data: data}
	log := logging.Logger()

	off := uint64(h.Size)
	for i := uint32(0); i < h.NumChunks; i++ {
		hdr, err := asset.Slice(data, off, chunkHeaderSize)
		if err != nil {
			return nil, err
		}
		c := Chunk{
			Type:   ChunkType(binary.LittleEndian.Uint32(hdr)),
			Offset: uint32(off),
			Size:   binary.LittleEndian.Uint32(hdr[4:]),
		}
		if c.Size < chunkHeaderSize {
			return nil, asset.Formatf("sbm", "chunk %d (%v) has size %d", i, c.Type, c.Size)
		}
		body, err := asset.Slice(data, off, uint64(c.Size))
		if err != nil {
			return nil, err
		}
		log.Debug("sbm chunk", "index", i, "type", c.Type, "offset", c.Offset, "size", c.Size)

		if err := p.chunk(c, body); err != nil {
			return nil, err
		}
		f.Chunks = append(f.Chunks, c)
		off += uint64(c.Size)
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	f    *File
	data []byte
	seen map[ChunkType]bool
}

func (p *parser) chunk(c Chunk, body []byte) error {
	switch c.Type {
	case ChunkVertexAttribs, ChunkVertexData, ChunkIndexData, ChunkSubObjectList:
		if p.seen == nil {
			p.seen = make(map[ChunkType]bool)
		}
		if p.seen[c.Type] {
			return asset.Formatf("sbm", "duplicate %v chunk at offset %d", c.Type, c.Offset)
		}
		p.seen[c.Type] = true
	}

	r := asset.NewReader(body, binary.LittleEndian)
	r.Skip(chunkHeaderSize)

	switch c.Type {
	case ChunkVertexAttribs:
		return p.attributes(c, r)
	case ChunkVertexData:
		return p.vertexData(c, r)
	case ChunkIndexData:
		return p.indexData(c, r)
	case ChunkSubObjectList:
		return p.subObjects(c, r)
	case ChunkComment:
		p.f.Comments = append(p.f.Comments, r.Str(r.Remaining()))
		return nil
	case ChunkData:
		return p.raw(c, r)
	default:
		logging.Logger().Warn("sbm: skipping unknown chunk", "type", c.Type, "offset", c.Offset, "size", c.Size)
		return nil
	}
}

func (p *parser) attributes(c Chunk, r *asset.Reader) error {
	n := r.U32()
	if r.Err() != nil {
		return asset.Formatf("sbm", "%v chunk too small (%d bytes)", c.Type, c.Size)
	}
	if uint64(n)*attribRecordSize > uint64(r.Remaining()) {
		return asset.Formatf("sbm", "%d vertex attributes do not fit in %d-byte chunk", n, c.Size)
	}
	attrs := make([]VertexAttribute, 0, n)
	for i := uint32(0); i < n; i++ {
		a := VertexAttribute{
			Name:       r.Str(attribNameSize),
			Size:       r.U32(),
			Type:       r.U32(),
			Stride:     r.U32(),
			Flags:      r.U32(),
			DataOffset: r.U32(),
		}
		attrs = append(attrs, a)
	}
	if err := r.Err(); err != nil {
		return err
	}
	p.f.Attributes = attrs
	return nil
}

func (p *parser) vertexData(c Chunk, r *asset.Reader) error {
	v := VertexData{DataSize: r.U32(), DataOffset: r.U32(), TotalVertices: r.U32()}
	if r.Err() != nil {
		return asset.Formatf("sbm", "%v chunk too small (%d bytes)", c.Type, c.Size)
	}
	b, err := asset.Slice(p.data, uint64(v.DataOffset), uint64(v.DataSize))
	if err != nil {
		return err
	}
	p.f.Vertex = v
	p.f.VertexBytes = b
	return nil
}

func (p *parser) indexData(c Chunk, r *asset.Reader) error {
	ix := IndexData{IndexType: r.U32(), IndexCount: r.U32(), IndexDataOffset: r.U32()}
	if r.Err() != nil {
		return asset.Formatf("sbm", "%v chunk too small (%d bytes)", c.Type, c.Size)
	}
	t, ok := componentTypes[ix.IndexType]
	if !ok || (t != gpu.TypeUnsignedByte && t != gpu.TypeUnsignedShort && t != gpu.TypeUnsignedInt) {
		return asset.Formatf("sbm", "unsupported index type 0x%04x", ix.IndexType)
	}
	b, err := asset.Slice(p.data, uint64(ix.IndexDataOffset), uint64(ix.IndexCount)*uint64(t.Size()))
	if err != nil {
		return err
	}
	p.f.Index = &ix
	p.f.IndexType = t
	p.f.IndexBytes = b
	return nil
}

func (p *parser) subObjects(c Chunk, r *asset.Reader) error {
	n := r.U32()
	if r.Err() != nil {
		return asset.Formatf("sbm", "%v chunk too small (%d bytes)", c.Type, c.Size)
	}
	if uint64(n)*subObjectSize > uint64(r.Remaining()) {
		return asset.Formatf("sbm", "%d sub-objects do not fit in %d-byte chunk", n, c.Size)
	}
	subs := make([]SubObject, 0, n)
	for i := uint32(0); i < n; i++ {
		subs = append(subs, SubObject{First: r.U32(), Count: r.U32()})
	}
	if err := r.Err(); err != nil {
		return err
	}
	p.f.SubObjects = subs
	p.f.SubObjectList = true
	return nil
}

func (p *parser) raw(c Chunk, r *asset.Reader) error {
	d := RawData{Encoding: r.U32(), DataOffset: r.U32(), DataLength: r.U32()}
	if r.Err() != nil {
		return asset.Formatf("sbm", "%v chunk too small (%d bytes)", c.Type, c.Size)
	}
	if _, err := asset.Slice(p.data, uint64(d.DataOffset), uint64(d.DataLength)); err != nil {
		return err
	}
	p.f.Raw = append(p.f.Raw, d)
	return nil
}

// finish checks what can only be checked once every chunk is read.
func (p *parser) finish() error {
	f := p.f
	if !p.seen[ChunkVertexData] {
		return asset.Formatf("sbm", "mesh has no %v chunk", ChunkVertexData)
	}
	if !p.seen[ChunkVertexAttribs] {
		return asset.Formatf("sbm", "mesh has no %v chunk", ChunkVertexAttribs)
	}
	total := uint64(f.Vertex.TotalVertices)
	for i, s := range f.SubObjects {
		if uint64(s.First)+uint64(s.Count) > total {
			return asset.Formatf("sbm", "sub-object %d [%d, +%d) outside %d vertices", i, s.First, s.Count, total)
		}
	}
	return nil
}
