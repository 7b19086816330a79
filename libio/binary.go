package libio

import (
	"encoding/binary"
	"io"
)

// Reader decodes little endian values from a stream. The first error sticks,
// every later call returns a zero value.
type Reader struct {
	Err   error
	src   io.Reader
	pos   int
	start int
}

func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Offset is the stream position where the most recent value began.
func (r *Reader) Offset() int {
	return r.start
}

// Source is the remaining stream, for consumers that wrap it in another decoder.
func (r *Reader) Source() io.Reader {
	return r.src
}

func (r *Reader) advance(n int, err error) bool {
	r.start = r.pos
	r.pos += n
	if err != nil && r.Err == nil {
		r.Err = err
	}
	return r.Err == nil
}

// Value fills a fixed size value, a pointer to one or a slice of them.
func (r *Reader) Value(dst any) bool {
	if r.Err != nil {
		return false
	}
	err := binary.Read(r.src, binary.LittleEndian, dst)
	n := 0
	if err == nil {
		n = binary.Size(dst)
	}
	return r.advance(n, err)
}

func (r *Reader) Bytes(n int) []byte {
	if r.Err != nil {
		return nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(r.src, buf)
	if !r.advance(read, err) {
		return nil
	}
	return buf
}

func (r *Reader) Uint32() uint32 {
	buf := r.Bytes(4)
	if buf == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(buf)
}

// Blob reads a byte slice prefixed by its uint32 length.
func (r *Reader) Blob() []byte {
	n := r.Uint32()
	if n == 0 {
		return nil
	}
	return r.Bytes(int(n))
}

func (r *Reader) String() string {
	return string(r.Blob())
}

// Writer is the encoding side of Reader.
type Writer struct {
	Err error
	dst io.Writer
	buf [4]byte
}

func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

func (w *Writer) Value(v any) bool {
	if w.Err == nil {
		w.Err = binary.Write(w.dst, binary.LittleEndian, v)
	}
	return w.Err == nil
}

func (w *Writer) Bytes(p []byte) bool {
	if w.Err == nil {
		_, w.Err = w.dst.Write(p)
	}
	return w.Err == nil
}

func (w *Writer) Uint32(v uint32) bool {
	binary.LittleEndian.PutUint32(w.buf[:], v)
	return w.Bytes(w.buf[:4])
}

func (w *Writer) Uint16(v uint16) bool {
	binary.LittleEndian.PutUint16(w.buf[:], v)
	return w.Bytes(w.buf[:2])
}

func (w *Writer) Blob(p []byte) bool {
	w.Uint32(uint32(len(p)))
	return w.Bytes(p)
}

func (w *Writer) String(s string) bool {
	return w.Blob([]byte(s))
}
