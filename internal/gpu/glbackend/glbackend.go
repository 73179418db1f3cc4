// Package glbackend implements gpu.Device on an OpenGL 4.5 core context
// using direct state access. Every method must run on the thread that owns
// the context.
package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"

	"sb6-assets/internal/gpu"
	"sb6-assets/internal/logging"
)

// Device is a gpu.Device over the current GL context.
type Device struct {
	storage map[gpu.Texture]gpu.Storage
}

var _ gpu.Device = (*Device)(nil)

// New loads the GL entry points. The context must already be current.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("glbackend: init: %w", err)
	}
	logging.Logger().Info("gl context",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{storage: make(map[gpu.Texture]gpu.Storage)}, nil
}

func check(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("glbackend: %s: GL error 0x%04x", op, code)
	}
	return nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}

func (d *Device) CreateBuffer(kind gpu.BufferKind, data []byte) (gpu.Buffer, error) {
	var id uint32
	gl.CreateBuffers(1, &id)
	// Zero-sized storage is invalid; an empty mesh still gets a buffer.
	gl.NamedBufferStorage(id, max(len(data), 1), ptr(data), 0)
	if err := check("create " + kind.String() + " buffer"); err != nil {
		gl.DeleteBuffers(1, &id)
		return 0, err
	}
	return gpu.Buffer(id), nil
}

func (d *Device) CreateVertexArray() (gpu.VertexArray, error) {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return gpu.VertexArray(id), check("create vertex array")
}

// BindVertexAttribute gives every attribute its own binding point so
// per-attribute strides and offsets map directly.
func (d *Device) BindVertexAttribute(vao gpu.VertexArray, buf gpu.Buffer, a gpu.AttributeBinding) error {
	typ, ok := componentType(a.Type)
	if !ok {
		return fmt.Errorf("glbackend: attribute %d: unsupported type %v", a.Slot, a.Type)
	}
	stride := a.Stride
	if stride == 0 {
		stride = uint32(a.Components * a.Type.Size())
	}
	v := uint32(vao)
	gl.VertexArrayVertexBuffer(v, a.Slot, uint32(buf), int(a.Offset), int32(stride))
	switch {
	case a.Type == gpu.TypeDouble:
		gl.VertexArrayAttribLFormat(v, a.Slot, int32(a.Components), typ, 0)
	case a.Integer:
		gl.VertexArrayAttribIFormat(v, a.Slot, int32(a.Components), typ, 0)
	default:
		gl.VertexArrayAttribFormat(v, a.Slot, int32(a.Components), typ, a.Normalized, 0)
	}
	gl.VertexArrayAttribBinding(v, a.Slot, a.Slot)
	gl.EnableVertexArrayAttrib(v, a.Slot)
	return check(fmt.Sprintf("bind attribute %d", a.Slot))
}

func (d *Device) BindIndexBuffer(vao gpu.VertexArray, buf gpu.Buffer) error {
	gl.VertexArrayElementBuffer(uint32(vao), uint32(buf))
	return check("bind index buffer")
}

func (d *Device) CreateTexture(target gpu.Target) (gpu.Texture, error) {
	t, ok := textureTarget(target)
	if !ok {
		return 0, fmt.Errorf("glbackend: unsupported texture target %v", target)
	}
	var id uint32
	gl.CreateTextures(t, 1, &id)
	return gpu.Texture(id), check("create texture")
}

func (d *Device) AllocateStorage(tex gpu.Texture, s gpu.Storage) error {
	if _, ok := d.storage[tex]; ok {
		return fmt.Errorf("glbackend: texture %d already has storage", tex)
	}
	f, ok := internalFormat(s.Format)
	if !ok {
		return fmt.Errorf("glbackend: unsupported format %v", s.Format)
	}
	id, levels := uint32(tex), int32(s.Levels)
	switch s.Target {
	case gpu.Target1D:
		gl.TextureStorage1D(id, levels, f, int32(s.Width))
	case gpu.Target1DArray, gpu.Target2D, gpu.TargetCube:
		gl.TextureStorage2D(id, levels, f, int32(s.Width), int32(s.Height))
	case gpu.Target2DArray, gpu.Target3D, gpu.TargetCubeArray:
		gl.TextureStorage3D(id, levels, f, int32(s.Width), int32(s.Height), int32(s.Depth))
	default:
		return fmt.Errorf("glbackend: unsupported texture target %v", s.Target)
	}
	if err := check("allocate " + s.Target.String() + " storage"); err != nil {
		return err
	}
	d.storage[tex] = s
	return nil
}

func (d *Device) UploadSubImage(tex gpu.Texture, u gpu.SubImage) error {
	s, ok := d.storage[tex]
	if !ok {
		return fmt.Errorf("glbackend: upload to texture %d without storage", tex)
	}
	format, ok := pixelFormat(u.Layout.Order, s.Format.Integer())
	if !ok {
		return fmt.Errorf("glbackend: unsupported pixel order %v", u.Layout.Order)
	}
	typ, ok := componentType(u.Layout.Type)
	if !ok {
		return fmt.Errorf("glbackend: unsupported pixel type %v", u.Layout.Type)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, int32(max(u.Alignment, 1)))

	id, level, px := uint32(tex), int32(u.Level), ptr(u.Data)
	switch s.Target {
	case gpu.Target1D:
		gl.TextureSubImage1D(id, level, int32(u.X), int32(u.Width), format, typ, px)
	case gpu.Target1DArray, gpu.Target2D:
		gl.TextureSubImage2D(id, level, int32(u.X), int32(u.Y), int32(u.Width), int32(u.Height), format, typ, px)
	default:
		// Cube faces are layers under direct state access.
		gl.TextureSubImage3D(id, level, int32(u.X), int32(u.Y), int32(u.Z),
			int32(u.Width), int32(u.Height), int32(u.Depth), format, typ, px)
	}
	return check(fmt.Sprintf("upload level %d", u.Level))
}

func (d *Device) UploadCompressedSubImage(tex gpu.Texture, u gpu.SubImage) error {
	s, ok := d.storage[tex]
	if !ok {
		return fmt.Errorf("glbackend: upload to texture %d without storage", tex)
	}
	f, ok := internalFormat(u.Format)
	if !ok || !u.Format.Compressed() {
		return fmt.Errorf("glbackend: %v is not a compressed format", u.Format)
	}
	id, level, size, px := uint32(tex), int32(u.Level), int32(len(u.Data)), ptr(u.Data)
	switch s.Target {
	case gpu.Target2D, gpu.Target1DArray:
		gl.CompressedTextureSubImage2D(id, level, int32(u.X), int32(u.Y), int32(u.Width), int32(u.Height), f, size, px)
	case gpu.Target2DArray, gpu.TargetCube, gpu.TargetCubeArray, gpu.Target3D:
		gl.CompressedTextureSubImage3D(id, level, int32(u.X), int32(u.Y), int32(u.Z),
			int32(u.Width), int32(u.Height), int32(u.Depth), f, size, px)
	default:
		return fmt.Errorf("glbackend: compressed %v textures are not supported", s.Target)
	}
	return check(fmt.Sprintf("upload compressed level %d", u.Level))
}

func (d *Device) GenerateMipmap(tex gpu.Texture) error {
	gl.GenerateTextureMipmap(uint32(tex))
	return check("generate mipmap")
}

func (d *Device) Draw(vao gpu.VertexArray, c gpu.DrawCall) error {
	mode, ok := primitive(c.Primitive)
	if !ok {
		return fmt.Errorf("glbackend: unsupported primitive %d", c.Primitive)
	}
	gl.BindVertexArray(uint32(vao))
	if c.Indexed {
		typ, ok := componentType(c.IndexType)
		if !ok {
			return fmt.Errorf("glbackend: unsupported index type %v", c.IndexType)
		}
		gl.DrawElementsInstancedBaseInstance(mode, int32(c.Count), typ, nil, int32(c.InstanceCount), c.BaseInstance)
	} else {
		gl.DrawArraysInstancedBaseInstance(mode, int32(c.First), int32(c.Count), int32(c.InstanceCount), c.BaseInstance)
	}
	return check("draw")
}

// Bind makes tex current on texture unit unit.
func (d *Device) Bind(unit uint32, tex gpu.Texture) {
	gl.BindTextureUnit(unit, uint32(tex))
}

func (d *Device) DeleteTexture(tex gpu.Texture) error {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
	delete(d.storage, tex)
	return check("delete texture")
}
