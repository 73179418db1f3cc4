package asset

import (
	"encoding/binary"
	"fmt"
)

// Reader reads fixed-width fields from an in-memory file. Every read is
// checked against the buffer; the first out-of-range read latches an
// ErrTruncated error and all later reads return zero values.
type Reader struct {
	data  []byte
	off   int
	order binary.ByteOrder
	err   error
}

// NewReader returns a Reader over data starting at offset 0.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

// Err reports the first bounds violation, if any.
func (r *Reader) Err() error { return r.err }

// Offset is the current read position.
func (r *Reader) Offset() int { return r.off }

// Len is the total buffer size.
func (r *Reader) Len() int { return len(r.data) }

// Remaining is the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Order returns the byte order used for multi-byte fields.
func (r *Reader) Order() binary.ByteOrder { return r.order }

// SetOrder switches the byte order for subsequent reads.
func (r *Reader) SetOrder(order binary.ByteOrder) { r.order = order }

// Seek moves to an absolute offset. Seeking to len(data) is allowed.
func (r *Reader) Seek(off int) {
	if r.err != nil {
		return
	}
	if off < 0 || off > len(r.data) {
		r.fail(off, 0)
		return
	}
	r.off = off
}

// Skip advances n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// Str reads an n-byte field and cuts it at the first NUL. Control bytes
// left before the terminator are dropped.
func (r *Reader) Str(n int) string {
	b := r.take(n)
	if b == nil {
		return ""
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c == 0 {
			break
		}
		if c < 0x20 {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// Slice returns data[off:off+n] after checking the range, without moving
// the cursor. The range is computed in 64 bits so huge declared sizes fail
// instead of wrapping.
func Slice(data []byte, off, n uint64) ([]byte, error) {
	end := off + n
	if end < off || end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: range [%d, %d) outside %d-byte file", ErrTruncated, off, end, len(data))
	}
	return data[off:end], nil
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.off {
		r.fail(r.off, n)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) fail(off, n int) {
	r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, off, len(r.data))
	r.off = len(r.data)
}
