package ros

import "bytes"

// ByteDecoder provides the primitive decoders message deserialization expects.
type ByteDecoder interface {
	DecodeUint8Array(buf *bytes.Reader, size int) ([]uint8, error)
	DecodeFloat64Array(buf *bytes.Reader, size int) ([]float64, error)
	DecodeStringArray(buf *bytes.Reader, size int) ([]string, error)

	DecodeBool(buf *bytes.Reader) (bool, error)
	DecodeInt8(buf *bytes.Reader) (int8, error)
	DecodeInt32(buf *bytes.Reader) (int32, error)
	DecodeUint8(buf *bytes.Reader) (uint8, error)
	DecodeUint32(buf *bytes.Reader) (uint32, error)
	DecodeFloat32(buf *bytes.Reader) (float32, error)
	DecodeFloat64(buf *bytes.Reader) (float64, error)
	DecodeString(buf *bytes.Reader) (string, error)
}

// ByteEncoder is the counterpart of ByteDecoder.
type ByteEncoder interface {
	EncodeBool(buf *bytes.Buffer, v bool)
	EncodeInt8(buf *bytes.Buffer, v int8)
	EncodeInt32(buf *bytes.Buffer, v int32)
	EncodeUint8(buf *bytes.Buffer, v uint8)
	EncodeUint32(buf *bytes.Buffer, v uint32)
	EncodeFloat32(buf *bytes.Buffer, v float32)
	EncodeFloat64(buf *bytes.Buffer, v float64)
	EncodeString(buf *bytes.Buffer, v string)
}
