// Package gpu describes the device-side resources the asset loaders
// create. Loaders decide what bytes go where; a Device owns the actual
// buffers and textures.
package gpu

// Handles are opaque non-zero identifiers issued by a Device.
type (
	Buffer      uint32
	VertexArray uint32
	Texture     uint32
)

// BufferKind selects the binding point of a buffer.
type BufferKind int

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
)

func (k BufferKind) String() string {
	if k == IndexBuffer {
		return "index"
	}
	return "vertex"
}

// AttributeBinding maps a range of a vertex buffer onto an attribute slot.
type AttributeBinding struct {
	Slot       uint32
	Components int
	Type       ComponentType
	Normalized bool
	Integer    bool
	Stride     uint32
	Offset     uint32
}

// Storage is the immutable allocation of a texture. Depth holds the depth
// of 3D textures or the layer count of 2D array and cube targets
// (6 for cubes, 6*elements for cube arrays). 1D arrays carry their layer
// count in Height.
type Storage struct {
	Target Target
	Levels int
	Format Format
	Width  int
	Height int
	Depth  int
}

// SubImage is one upload into a texture level. For 2D arrays and cubes Z
// and Depth address layers; for 1D arrays Y and Height do. Alignment is the row alignment of Data (1, 2, 4 or 8).
// Compressed uploads leave Layout zero and set Format.
type SubImage struct {
	Level     int
	X, Y, Z   int
	Width     int
	Height    int
	Depth     int
	Layout    PixelLayout
	Format    Format
	Alignment int
	Data      []byte
}

// Primitive is the assembly mode of a draw.
type Primitive int

const (
	Triangles Primitive = iota
	Points
	Lines
	Patches
)

// DrawCall is an instanced draw of a vertex array.
type DrawCall struct {
	Primitive     Primitive
	First         uint32
	Count         uint32
	Indexed       bool
	IndexType     ComponentType
	InstanceCount uint32
	BaseInstance  uint32
}

// Device is the resource sink consumed by the loaders. Implementations
// need not be safe for concurrent use.
type Device interface {
	CreateBuffer(kind BufferKind, data []byte) (Buffer, error)
	CreateVertexArray() (VertexArray, error)
	BindVertexAttribute(vao VertexArray, buf Buffer, a AttributeBinding) error
	BindIndexBuffer(vao VertexArray, buf Buffer) error

	CreateTexture(target Target) (Texture, error)
	AllocateStorage(tex Texture, s Storage) error
	UploadSubImage(tex Texture, u SubImage) error
	UploadCompressedSubImage(tex Texture, u SubImage) error
	GenerateMipmap(tex Texture) error
	DeleteTexture(tex Texture) error

	Draw(vao VertexArray, d DrawCall) error
}
