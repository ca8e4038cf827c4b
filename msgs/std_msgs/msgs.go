// Package std_msgs holds the standard ROS message types used by the planning nodes.
package std_msgs

import (
	"bytes"
	"time"

	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfHeader = ros.NewStaticMessageType("std_msgs/Header", "2176decaecbce78abc3b96ef049fabed",
		"uint32 seq\ntime stamp\nstring frame_id",
		func() ros.Message { return new(Header) })
	TypeOfString = ros.NewStaticMessageType("std_msgs/String", "992ce8a1687cec8c8bd883ec73ca41d1",
		"string data",
		func() ros.Message { return new(String) })
	TypeOfMultiArrayDimension = ros.NewStaticMessageType("std_msgs/MultiArrayDimension", "4cd0c83a8683deae40ecdac60e53bfa8",
		"string label\nuint32 size\nuint32 stride",
		func() ros.Message { return new(MultiArrayDimension) })
	TypeOfMultiArrayLayout = ros.NewStaticMessageType("std_msgs/MultiArrayLayout", "0fed2a11c13e11c5571b4e2a995a91a3",
		"MultiArrayDimension[] dim\nuint32 data_offset",
		func() ros.Message { return new(MultiArrayLayout) })
	TypeOfFloat64MultiArray = ros.NewStaticMessageType("std_msgs/Float64MultiArray", "4b7d974086d4060e7db4613a7e6c3ba4",
		"MultiArrayLayout layout\nfloat64[] data",
		func() ros.Message { return new(Float64MultiArray) })
)

type Header struct {
	Seq     uint32
	Stamp   time.Time
	FrameID string
}

func (m *Header) Type() ros.MessageType { return TypeOfHeader }

func (m *Header) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Uint32(m.Seq)
	w.Time(m.Stamp)
	w.String(m.FrameID)
	return w.Err()
}

func (m *Header) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Seq = r.Uint32()
	m.Stamp = r.Time()
	m.FrameID = r.String()
	return r.Err()
}

type String struct {
	Data string
}

func (m *String) Type() ros.MessageType { return TypeOfString }

func (m *String) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Data)
	return w.Err()
}

func (m *String) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Data = r.String()
	return r.Err()
}

type MultiArrayDimension struct {
	Label  string
	Size   uint32
	Stride uint32
}

func (m *MultiArrayDimension) Type() ros.MessageType { return TypeOfMultiArrayDimension }

func (m *MultiArrayDimension) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Label)
	w.Uint32(m.Size)
	w.Uint32(m.Stride)
	return w.Err()
}

func (m *MultiArrayDimension) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Label = r.String()
	m.Size = r.Uint32()
	m.Stride = r.Uint32()
	return r.Err()
}

type MultiArrayLayout struct {
	Dim        []MultiArrayDimension
	DataOffset uint32
}

func (m *MultiArrayLayout) Type() ros.MessageType { return TypeOfMultiArrayLayout }

func (m *MultiArrayLayout) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Len(len(m.Dim))
	for i := range m.Dim {
		w.Message(&m.Dim[i])
	}
	w.Uint32(m.DataOffset)
	return w.Err()
}

func (m *MultiArrayLayout) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Dim = make([]MultiArrayDimension, r.Len())
	for i := range m.Dim {
		r.Message(&m.Dim[i])
	}
	m.DataOffset = r.Uint32()
	return r.Err()
}

type Float64MultiArray struct {
	Layout MultiArrayLayout
	Data   []float64
}

func (m *Float64MultiArray) Type() ros.MessageType { return TypeOfFloat64MultiArray }

func (m *Float64MultiArray) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Layout)
	w.Float64s(m.Data)
	return w.Err()
}

func (m *Float64MultiArray) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Layout)
	m.Data = r.Float64s()
	return r.Err()
}
