package ros

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
)

// MessageWriter serializes message fields in ROS wire order.
// The first error is kept and every later write becomes a no-op.
type MessageWriter struct {
	buf *bytes.Buffer
	enc LEByteEncoder
	err error
}

// NewMessageWriter returns a writer appending to buf.
func NewMessageWriter(buf *bytes.Buffer) *MessageWriter {
	return &MessageWriter{buf: buf}
}

// Err returns the first error encountered while writing.
func (w *MessageWriter) Err() error {
	return w.err
}

func (w *MessageWriter) Bool(v bool) {
	if w.err == nil {
		w.enc.EncodeBool(w.buf, v)
	}
}

func (w *MessageWriter) Int8(v int8) {
	if w.err == nil {
		w.enc.EncodeInt8(w.buf, v)
	}
}

func (w *MessageWriter) Uint8(v uint8) {
	if w.err == nil {
		w.enc.EncodeUint8(w.buf, v)
	}
}

func (w *MessageWriter) Int32(v int32) {
	if w.err == nil {
		w.enc.EncodeInt32(w.buf, v)
	}
}

func (w *MessageWriter) Uint32(v uint32) {
	if w.err == nil {
		w.enc.EncodeUint32(w.buf, v)
	}
}

func (w *MessageWriter) Float32(v float32) {
	if w.err == nil {
		w.enc.EncodeFloat32(w.buf, v)
	}
}

func (w *MessageWriter) Float64(v float64) {
	if w.err == nil {
		w.enc.EncodeFloat64(w.buf, v)
	}
}

func (w *MessageWriter) String(v string) {
	if w.err == nil {
		w.enc.EncodeString(w.buf, v)
	}
}

// Time writes a ROS time as seconds and nanoseconds. The zero time is written as 0.0.
func (w *MessageWriter) Time(t time.Time) {
	if t.IsZero() {
		w.Uint32(0)
		w.Uint32(0)
		return
	}
	w.Uint32(uint32(t.Unix()))
	w.Uint32(uint32(t.Nanosecond()))
}

// Len writes the length prefix of a variable sized array.
func (w *MessageWriter) Len(n int) {
	w.Uint32(uint32(n))
}

func (w *MessageWriter) Bytes(v []uint8) {
	w.Len(len(v))
	if w.err == nil {
		w.buf.Write(v)
	}
}

func (w *MessageWriter) Float64s(v []float64) {
	w.Len(len(v))
	for _, f := range v {
		w.Float64(f)
	}
}

func (w *MessageWriter) Strings(v []string) {
	w.Len(len(v))
	for _, s := range v {
		w.String(s)
	}
}

// Message writes a nested message inline.
func (w *MessageWriter) Message(m Message) {
	if w.err != nil {
		return
	}
	if err := m.Serialize(w.buf); err != nil {
		w.err = errors.Wrapf(err, "serializing nested %s", m.Type().Name())
	}
}

// MessageReader deserializes message fields in ROS wire order.
// The first error is kept and every later read returns a zero value.
type MessageReader struct {
	buf *bytes.Reader
	dec LEByteDecoder
	err error
}

// NewMessageReader returns a reader consuming buf.
func NewMessageReader(buf *bytes.Reader) *MessageReader {
	return &MessageReader{buf: buf}
}

// Err returns the first error encountered while reading.
func (r *MessageReader) Err() error {
	return r.err
}

func (r *MessageReader) fail(err error, what string) {
	if err != nil && r.err == nil {
		r.err = errors.Wrapf(err, "reading %s", what)
	}
}

func (r *MessageReader) Bool() bool {
	if r.err != nil {
		return false
	}
	v, err := r.dec.DecodeBool(r.buf)
	r.fail(err, "bool")
	return v
}

func (r *MessageReader) Int8() int8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeInt8(r.buf)
	r.fail(err, "int8")
	return v
}

func (r *MessageReader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeUint8(r.buf)
	r.fail(err, "uint8")
	return v
}

func (r *MessageReader) Int32() int32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeInt32(r.buf)
	r.fail(err, "int32")
	return v
}

func (r *MessageReader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeUint32(r.buf)
	r.fail(err, "uint32")
	return v
}

func (r *MessageReader) Float32() float32 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeFloat32(r.buf)
	r.fail(err, "float32")
	return v
}

func (r *MessageReader) Float64() float64 {
	if r.err != nil {
		return 0
	}
	v, err := r.dec.DecodeFloat64(r.buf)
	r.fail(err, "float64")
	return v
}

func (r *MessageReader) String() string {
	if r.err != nil {
		return ""
	}
	v, err := r.dec.DecodeString(r.buf)
	r.fail(err, "string")
	return v
}

// Time reads a ROS time; 0.0 reads back as the zero time.
func (r *MessageReader) Time() time.Time {
	secs := r.Uint32()
	nsecs := r.Uint32()
	if secs == 0 && nsecs == 0 {
		return time.Time{}
	}
	return time.Unix(int64(secs), int64(nsecs))
}

// Len reads an array length prefix. Lengths larger than the remaining
// buffer are rejected so a corrupt prefix cannot force a huge allocation.
func (r *MessageReader) Len() int {
	n := r.Uint32()
	if r.err == nil && int(n) > r.buf.Len() {
		r.err = errors.Errorf("array length %d exceeds remaining %d bytes", n, r.buf.Len())
		return 0
	}
	return int(n)
}

func (r *MessageReader) Bytes() []uint8 {
	n := r.Len()
	if r.err != nil {
		return nil
	}
	v, err := r.dec.DecodeUint8Array(r.buf, n)
	r.fail(err, "uint8[]")
	return v
}

func (r *MessageReader) Float64s() []float64 {
	n := r.Len()
	if r.err != nil {
		return nil
	}
	v, err := r.dec.DecodeFloat64Array(r.buf, n)
	r.fail(err, "float64[]")
	return v
}

func (r *MessageReader) Strings() []string {
	n := r.Len()
	if r.err != nil {
		return nil
	}
	v, err := r.dec.DecodeStringArray(r.buf, n)
	r.fail(err, "string[]")
	return v
}

// Message reads a nested message inline.
func (r *MessageReader) Message(m Message) {
	if r.err != nil {
		return
	}
	if err := m.Deserialize(r.buf); err != nil {
		r.err = errors.Wrapf(err, "deserializing nested %s", m.Type().Name())
	}
}
