package gpu

import (
	"fmt"
	"strings"
)

// RecordedBuffer is a buffer created on a Recorder.
type RecordedBuffer struct {
	Kind BufferKind
	Data []byte
}

// RecordedVertexArray holds the bindings made on one vertex array.
type RecordedVertexArray struct {
	Attributes  []AttributeBinding
	Buffers     []Buffer // parallel to Attributes
	IndexBuffer Buffer
}

// RecordedTexture holds the storage and uploads of one texture.
type RecordedTexture struct {
	Target    Target
	Storage   *Storage
	Uploads   []SubImage
	Mipmapped bool
}

// RecordedDraw is one Draw call.
type RecordedDraw struct {
	VertexArray VertexArray
	Call        DrawCall
}

// Recorder is an in-memory Device. It keeps every resource and call so
// tools can validate files without a GPU and tests can assert on what a
// loader asked for. Uploaded byte slices are copied.
type Recorder struct {
	Buffers      map[Buffer]*RecordedBuffer
	VertexArrays map[VertexArray]*RecordedVertexArray
	Textures     map[Texture]*RecordedTexture
	Draws        []RecordedDraw

	// Ops lists call names in order, e.g. "CreateTexture(2D)".
	Ops []string

	// Fail makes the named method return the given error.
	Fail map[string]error

	next uint32
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Buffers:      make(map[Buffer]*RecordedBuffer),
		VertexArrays: make(map[VertexArray]*RecordedVertexArray),
		Textures:     make(map[Texture]*RecordedTexture),
		Fail:         make(map[string]error),
	}
}

// Reset drops all recorded state but keeps handle numbering monotonic.
func (r *Recorder) Reset() {
	r.Buffers = make(map[Buffer]*RecordedBuffer)
	r.VertexArrays = make(map[VertexArray]*RecordedVertexArray)
	r.Textures = make(map[Texture]*RecordedTexture)
	r.Draws = nil
	r.Ops = nil
}

// UploadedBytes sums the payload of every texture upload.
func (r *Recorder) UploadedBytes() int {
	n := 0
	for _, t := range r.Textures {
		for _, u := range t.Uploads {
			n += len(u.Data)
		}
	}
	return n
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) op(name string, args ...any) error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	r.Ops = append(r.Ops, name+"("+strings.Join(parts, ",")+")")
	if err := r.Fail[name]; err != nil {
		return err
	}
	return nil
}

func (r *Recorder) CreateBuffer(kind BufferKind, data []byte) (Buffer, error) {
	if err := r.op("CreateBuffer", kind, len(data)); err != nil {
		return 0, err
	}
	b := Buffer(r.id())
	r.Buffers[b] = &RecordedBuffer{Kind: kind, Data: append([]byte(nil), data...)}
	return b, nil
}

func (r *Recorder) CreateVertexArray() (VertexArray, error) {
	if err := r.op("CreateVertexArray"); err != nil {
		return 0, err
	}
	v := VertexArray(r.id())
	r.VertexArrays[v] = &RecordedVertexArray{}
	return v, nil
}

func (r *Recorder) BindVertexAttribute(vao VertexArray, buf Buffer, a AttributeBinding) error {
	if err := r.op("BindVertexAttribute", a.Slot); err != nil {
		return err
	}
	v, ok := r.VertexArrays[vao]
	if !ok {
		return fmt.Errorf("gpu: unknown vertex array %d", vao)
	}
	b, ok := r.Buffers[buf]
	if !ok || b.Kind != VertexBuffer {
		return fmt.Errorf("gpu: %d is not a vertex buffer", buf)
	}
	if a.Components < 1 || a.Components > 4 {
		return fmt.Errorf("gpu: attribute %d has %d components", a.Slot, a.Components)
	}
	v.Attributes = append(v.Attributes, a)
	v.Buffers = append(v.Buffers, buf)
	return nil
}

func (r *Recorder) BindIndexBuffer(vao VertexArray, buf Buffer) error {
	if err := r.op("BindIndexBuffer"); err != nil {
		return err
	}
	v, ok := r.VertexArrays[vao]
	if !ok {
		return fmt.Errorf("gpu: unknown vertex array %d", vao)
	}
	b, ok := r.Buffers[buf]
	if !ok || b.Kind != IndexBuffer {
		return fmt.Errorf("gpu: %d is not an index buffer", buf)
	}
	v.IndexBuffer = buf
	return nil
}

func (r *Recorder) CreateTexture(target Target) (Texture, error) {
	if err := r.op("CreateTexture", target); err != nil {
		return 0, err
	}
	if target == TargetNone {
		return 0, fmt.Errorf("gpu: texture without target")
	}
	t := Texture(r.id())
	r.Textures[t] = &RecordedTexture{Target: target}
	return t, nil
}

// texture returns the record for tex. Handles not issued by this Recorder
// (caller-provided textures) are adopted on first use with the given target.
func (r *Recorder) texture(tex Texture, target Target) *RecordedTexture {
	t, ok := r.Textures[tex]
	if !ok {
		t = &RecordedTexture{Target: target}
		r.Textures[tex] = t
	}
	return t
}

func (r *Recorder) AllocateStorage(tex Texture, s Storage) error {
	if err := r.op("AllocateStorage", s.Target, s.Levels, s.Format, s.Width, s.Height, s.Depth); err != nil {
		return err
	}
	if tex == 0 {
		return fmt.Errorf("gpu: storage for texture 0")
	}
	t := r.texture(tex, s.Target)
	if t.Storage != nil {
		return fmt.Errorf("gpu: texture %d storage is immutable", tex)
	}
	if t.Target != s.Target {
		return fmt.Errorf("gpu: texture %d is %v, storage is %v", tex, t.Target, s.Target)
	}
	if s.Levels < 1 || s.Width < 1 || s.Height < 1 || s.Depth < 1 {
		return fmt.Errorf("gpu: bad storage %+v", s)
	}
	st := s
	t.Storage = &st
	return nil
}

func (r *Recorder) UploadSubImage(tex Texture, u SubImage) error {
	if err := r.op("UploadSubImage", u.Level, u.Width, u.Height, u.Depth, len(u.Data)); err != nil {
		return err
	}
	return r.upload(tex, u)
}

func (r *Recorder) UploadCompressedSubImage(tex Texture, u SubImage) error {
	if err := r.op("UploadCompressedSubImage", u.Level, u.Width, u.Height, u.Depth, len(u.Data)); err != nil {
		return err
	}
	if !u.Format.Compressed() {
		return fmt.Errorf("gpu: %v is not a compressed format", u.Format)
	}
	return r.upload(tex, u)
}

func (r *Recorder) upload(tex Texture, u SubImage) error {
	t, ok := r.Textures[tex]
	if !ok || t.Storage == nil {
		return fmt.Errorf("gpu: upload to texture %d without storage", tex)
	}
	s := t.Storage
	if u.Level < 0 || u.Level >= s.Levels {
		return fmt.Errorf("gpu: level %d outside %d levels", u.Level, s.Levels)
	}
	w, h, d := LevelExtent(*s, u.Level)
	if u.X < 0 || u.Y < 0 || u.Z < 0 || u.X+u.Width > w || u.Y+u.Height > h || u.Z+u.Depth > d {
		return fmt.Errorf("gpu: region %dx%dx%d+%d,%d,%d outside level %d (%dx%dx%d)",
			u.Width, u.Height, u.Depth, u.X, u.Y, u.Z, u.Level, w, h, d)
	}
	c := u
	c.Data = append([]byte(nil), u.Data...)
	t.Uploads = append(t.Uploads, c)
	return nil
}

func (r *Recorder) GenerateMipmap(tex Texture) error {
	if err := r.op("GenerateMipmap"); err != nil {
		return err
	}
	t, ok := r.Textures[tex]
	if !ok {
		return fmt.Errorf("gpu: unknown texture %d", tex)
	}
	t.Mipmapped = true
	return nil
}

func (r *Recorder) DeleteTexture(tex Texture) error {
	if err := r.op("DeleteTexture", tex); err != nil {
		return err
	}
	if _, ok := r.Textures[tex]; !ok {
		return fmt.Errorf("gpu: unknown texture %d", tex)
	}
	delete(r.Textures, tex)
	return nil
}

func (r *Recorder) Draw(vao VertexArray, d DrawCall) error {
	if err := r.op("Draw", d.First, d.Count, d.InstanceCount, d.BaseInstance); err != nil {
		return err
	}
	if _, ok := r.VertexArrays[vao]; !ok {
		return fmt.Errorf("gpu: draw with unknown vertex array %d", vao)
	}
	r.Draws = append(r.Draws, RecordedDraw{VertexArray: vao, Call: d})
	return nil
}

// LevelExtent returns the width, height and depth-or-layers of a mip level.
// Width, height and 3D depth halve per level and stop at 1; layers do not shrink.
// 1D arrays keep their layer count in Height.
func LevelExtent(s Storage, level int) (w, h, d int) {
	w, h, d = s.Width, s.Height, s.Depth
	for i := 0; i < level; i++ {
		w = max(w>>1, 1)
		if s.Target != Target1D && s.Target != Target1DArray {
			h = max(h>>1, 1)
		}
		if s.Target == Target3D {
			d = max(d>>1, 1)
		}
	}
	return w, h, d
}

var _ Device = (*Recorder)(nil)
