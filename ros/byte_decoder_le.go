package ros

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// LEByteDecoder is a little-endian byte decoder, implements the ByteDecoder interface.
type LEByteDecoder struct{}

var _ ByteDecoder = LEByteDecoder{}

// LEByteEncoder is a little-endian byte encoder, implements the ByteEncoder interface.
type LEByteEncoder struct{}

var _ ByteEncoder = LEByteEncoder{}

// Array decoders.

// DecodeUint8Array decodes an array of uint8 values.
func (d LEByteDecoder) DecodeUint8Array(buf *bytes.Reader, size int) ([]uint8, error) {
	if size > buf.Len() {
		return nil, errors.Errorf("uint8 array of %d exceeds remaining %d bytes", size, buf.Len())
	}
	slice := make([]uint8, size)
	if size == 0 {
		return slice, nil
	}
	n, err := buf.Read(slice)
	if n != size || err != nil {
		return slice, errors.New("Did not read entire uint8 buffer")
	}

	return slice, nil
}

// DecodeFloat64Array decodes an array of float64 values.
func (d LEByteDecoder) DecodeFloat64Array(buf *bytes.Reader, size int) ([]float64, error) {
	if size*8 > buf.Len() {
		return nil, errors.Errorf("float64 array of %d exceeds remaining %d bytes", size, buf.Len())
	}
	var arr [8]byte
	slice := make([]float64, size)
	for i := 0; i < size; i++ {
		if n, err := buf.Read(arr[:]); n != 8 || err != nil {
			return slice, errors.New("Could not read 8 bytes from buffer")
		}
		slice[i] = math.Float64frombits(binary.LittleEndian.Uint64(arr[:]))
	}

	return slice, nil
}

// DecodeStringArray decodes an array of strings.
func (d LEByteDecoder) DecodeStringArray(buf *bytes.Reader, size int) ([]string, error) {
	if size*4 > buf.Len() {
		return nil, errors.Errorf("string array of %d exceeds remaining %d bytes", size, buf.Len())
	}
	slice := make([]string, size)
	for i := 0; i < size; i++ {
		s, err := d.DecodeString(buf)
		if err != nil {
			return slice, err
		}
		slice[i] = s
	}

	return slice, nil
}

// Singular decoders.

// DecodeBool decodes a boolean.
func (d LEByteDecoder) DecodeBool(buf *bytes.Reader) (bool, error) {
	raw, err := d.DecodeUint8(buf)
	return (raw != 0x00), err
}

// DecodeInt8 decodes an int8.
func (d LEByteDecoder) DecodeInt8(buf *bytes.Reader) (int8, error) {
	raw, err := d.DecodeUint8(buf)
	return int8(raw), err
}

// DecodeUint8 decodes a uint8.
func (d LEByteDecoder) DecodeUint8(buf *bytes.Reader) (uint8, error) {
	var arr [1]byte
	if n, err := buf.Read(arr[:]); n != 1 || err != nil {
		return 0, errors.New("Could not read 1 byte from buffer")
	}
	return arr[0], nil
}

// DecodeInt32 decodes an int32.
func (d LEByteDecoder) DecodeInt32(buf *bytes.Reader) (int32, error) {
	raw, err := d.DecodeUint32(buf)
	return int32(raw), err
}

// DecodeUint32 decodes a uint32.
func (d LEByteDecoder) DecodeUint32(buf *bytes.Reader) (uint32, error) {
	var arr [4]byte
	if n, err := buf.Read(arr[:]); n != 4 || err != nil {
		return 0, errors.New("Could not read 4 bytes from buffer")
	}
	return binary.LittleEndian.Uint32(arr[:]), nil
}

// DecodeFloat32 decodes a float32.
func (d LEByteDecoder) DecodeFloat32(buf *bytes.Reader) (float32, error) {
	raw, err := d.DecodeUint32(buf)
	return math.Float32frombits(raw), err
}

// DecodeFloat64 decodes a float64.
func (d LEByteDecoder) DecodeFloat64(buf *bytes.Reader) (float64, error) {
	var arr [8]byte
	if n, err := buf.Read(arr[:]); n != 8 || err != nil {
		return 0, errors.New("Could not read 8 bytes from buffer")
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(arr[:])), nil
}

// DecodeString decodes a length prefixed string.
func (d LEByteDecoder) DecodeString(buf *bytes.Reader) (string, error) {
	size, err := d.DecodeUint32(buf)
	if err != nil {
		return "", errors.Wrap(err, "decoding string size")
	}
	raw, err := d.DecodeUint8Array(buf, int(size))
	if err != nil {
		return "", errors.Wrap(err, "decoding string body")
	}
	return string(raw), nil
}

// Singular encoders.

// EncodeBool encodes a boolean as a single byte.
func (e LEByteEncoder) EncodeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(0x01)
		return
	}
	buf.WriteByte(0x00)
}

// EncodeInt8 encodes an int8.
func (e LEByteEncoder) EncodeInt8(buf *bytes.Buffer, v int8) {
	buf.WriteByte(byte(v))
}

// EncodeUint8 encodes a uint8.
func (e LEByteEncoder) EncodeUint8(buf *bytes.Buffer, v uint8) {
	buf.WriteByte(v)
}

// EncodeInt32 encodes an int32.
func (e LEByteEncoder) EncodeInt32(buf *bytes.Buffer, v int32) {
	e.EncodeUint32(buf, uint32(v))
}

// EncodeUint32 encodes a uint32.
func (e LEByteEncoder) EncodeUint32(buf *bytes.Buffer, v uint32) {
	var arr [4]byte
	binary.LittleEndian.PutUint32(arr[:], v)
	buf.Write(arr[:])
}

// EncodeFloat32 encodes a float32.
func (e LEByteEncoder) EncodeFloat32(buf *bytes.Buffer, v float32) {
	e.EncodeUint32(buf, math.Float32bits(v))
}

// EncodeFloat64 encodes a float64.
func (e LEByteEncoder) EncodeFloat64(buf *bytes.Buffer, v float64) {
	var arr [8]byte
	binary.LittleEndian.PutUint64(arr[:], math.Float64bits(v))
	buf.Write(arr[:])
}

// EncodeString encodes a length prefixed string.
func (e LEByteEncoder) EncodeString(buf *bytes.Buffer, v string) {
	e.EncodeUint32(buf, uint32(len(v)))
	buf.WriteString(v)
}
