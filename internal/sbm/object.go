package sbm

import (
	"fmt"

	"sb6-assets/internal/asset"
	"sb6-assets/internal/gpu"
	"sb6-assets/internal/logging"
)

// BoundAttributes are the attribute names given a vertex slot. Each is
// bound at its index in the file's attribute table; other attributes stay
// in the vertex data unbound.
var BoundAttributes = map[string]bool{
	"position": true,
	"normal":   true,
	"map1":     true,
	"tangent":  true,
}

// Object is a mesh uploaded to a device.
type Object struct {
	dev          gpu.Device
	vao          gpu.VertexArray
	vertexBuffer gpu.Buffer
	indexBuffer  gpu.Buffer

	vertexCount uint32
	indexCount  uint32
	indexType   gpu.ComponentType

	attributes []VertexAttribute
	bindings   []gpu.AttributeBinding
	subObjects []SubObject
}

// Load reads a mesh file and uploads it to dev. The file bytes are not
// retained.
func Load(dev gpu.Device, path string) (*Object, error) {
	f, err := Read(path)
	if err != nil {
		return nil, err
	}
	o, err := NewObject(dev, f)
	if err != nil {
		return nil, fmt.Errorf("sbm: load %s: %w", path, err)
	}
	return o, nil
}

// NewObject uploads a parsed mesh: one vertex buffer, a vertex array with
// the recognized attributes bound, and an index buffer if the file has one.
func NewObject(dev gpu.Device, f *File) (*Object, error) {
	o := &Object{
		dev:         dev,
		vertexCount: f.Vertex.TotalVertices,
		attributes:  append([]VertexAttribute(nil), f.Attributes...),
		subObjects:  f.Ranges(),
	}

	var err error
	if o.vertexBuffer, err = dev.CreateBuffer(gpu.VertexBuffer, f.VertexBytes); err != nil {
		return nil, err
	}
	if o.vao, err = dev.CreateVertexArray(); err != nil {
		return nil, err
	}

	for i, a := range f.Attributes {
		if !BoundAttributes[a.Name] {
			logging.Logger().Debug("sbm: attribute not bound", "name", a.Name, "index", i)
			continue
		}
		b, err := binding(uint32(i), a, f.Vertex)
		if err != nil {
			return nil, err
		}
		if err := dev.BindVertexAttribute(o.vao, o.vertexBuffer, b); err != nil {
			return nil, err
		}
		o.bindings = append(o.bindings, b)
	}

	if f.Index != nil {
		if o.indexBuffer, err = dev.CreateBuffer(gpu.IndexBuffer, f.IndexBytes); err != nil {
			return nil, err
		}
		if err := dev.BindIndexBuffer(o.vao, o.indexBuffer); err != nil {
			return nil, err
		}
		o.indexCount = f.Index.IndexCount
		o.indexType = f.IndexType
	}
	return o, nil
}

// binding validates one attribute against the vertex blob. A zero stride
// means tightly packed components.
func binding(slot uint32, a VertexAttribute, v VertexData) (gpu.AttributeBinding, error) {
	t, err := a.ComponentType()
	if err != nil {
		return gpu.AttributeBinding{}, err
	}
	if a.Size < 1 || a.Size > 4 {
		return gpu.AttributeBinding{}, asset.Formatf("sbm", "attribute %q has %d components", a.Name, a.Size)
	}
	elem := uint64(a.Size) * uint64(t.Size())
	if v.TotalVertices > 0 {
		stride := uint64(a.Stride)
		if stride == 0 {
			stride = elem
		}
		end := uint64(a.DataOffset) + uint64(v.TotalVertices-1)*stride + elem
		if end > uint64(v.DataSize) {
			return gpu.AttributeBinding{}, asset.Formatf("sbm", "attribute %q reads to byte %d of %d-byte vertex data",
				a.Name, end, v.DataSize)
		}
	}
	return gpu.AttributeBinding{
		Slot:       slot,
		Components: int(a.Size),
		Type:       t,
		Normalized: a.Normalized(),
		Integer:    a.Integer(),
		Stride:     a.Stride,
		Offset:     a.DataOffset,
	}, nil
}

// SubObjectCount is the number of draw ranges. It is 1 for files without a
// sub-object list and 0 for files whose list is empty.
func (o *Object) SubObjectCount() int {
	return len(o.subObjects)
}

// SubObjectInfo returns the range of sub-object index, or (0, 0) when the
// index is out of range. It never fails, so callers may index with
// i % SubObjectCount() or past the end and simply draw nothing.
func (o *Object) SubObjectInfo(index int) (first, count uint32) {
	if index < 0 || index >= len(o.subObjects) {
		return 0, 0
	}
	s := o.subObjects[index]
	return s.First, s.Count
}

// Render draws sub-object 0.
func (o *Object) Render(instanceCount, baseInstance int) error {
	return o.RenderSubObject(0, instanceCount, baseInstance)
}

// RenderSubObject draws one sub-object. Indexed meshes always draw their
// whole index range.
func (o *Object) RenderSubObject(index, instanceCount, baseInstance int) error {
	d := gpu.DrawCall{
		Primitive:     gpu.Triangles,
		InstanceCount: uint32(max(instanceCount, 1)),
		BaseInstance:  uint32(max(baseInstance, 0)),
	}
	if o.indexBuffer != 0 {
		d.Indexed = true
		d.IndexType = o.indexType
		d.Count = o.indexCount
	} else {
		d.First, d.Count = o.SubObjectInfo(index)
	}
	return o.dev.Draw(o.vao, d)
}

// VertexArray is the device vertex array holding the bindings.
func (o *Object) VertexArray() gpu.VertexArray { return o.vao }

// VertexCount is the total number of vertices in the shared buffer.
func (o *Object) VertexCount() uint32 { return o.vertexCount }

// Indexed reports whether the mesh draws through an index buffer.
func (o *Object) Indexed() bool { return o.indexBuffer != 0 }

// Attributes is the full attribute table, bound or not.
func (o *Object) Attributes() []VertexAttribute { return o.attributes }

// Bindings lists the attributes bound to slots.
func (o *Object) Bindings() []gpu.AttributeBinding { return o.bindings }
