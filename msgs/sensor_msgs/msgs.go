// Package sensor_msgs holds the ROS sensor message types used by perception.
package sensor_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// PointField datatypes.
const (
	PointFieldInt8    uint8 = 1
	PointFieldUint8   uint8 = 2
	PointFieldInt16   uint8 = 3
	PointFieldUint16  uint8 = 4
	PointFieldInt32   uint8 = 5
	PointFieldUint32  uint8 = 6
	PointFieldFloat32 uint8 = 7
	PointFieldFloat64 uint8 = 8
)

var (
	TypeOfPointField = ros.NewStaticMessageType("sensor_msgs/PointField", "268eacb2962780ceac86cbd17e328150",
		"uint8 INT8    = 1\nuint8 UINT8   = 2\nuint8 INT16   = 3\nuint8 UINT16  = 4\nuint8 INT32   = 5\nuint8 UINT32  = 6\nuint8 FLOAT32 = 7\nuint8 FLOAT64 = 8\nstring name\nuint32 offset\nuint8  datatype\nuint32 count",
		func() ros.Message { return new(PointField) })
	TypeOfPointCloud2 = ros.NewStaticMessageType("sensor_msgs/PointCloud2", "1158d486dd51d683ce2f1be655c3c181",
		"Header header\nuint32 height\nuint32 width\nPointField[] fields\nbool    is_bigendian\nuint32  point_step\nuint32  row_step\nuint8[] data\nbool is_dense",
		func() ros.Message { return new(PointCloud2) })
	TypeOfJointState = ros.NewStaticMessageType("sensor_msgs/JointState", "3066dcd76a6cfaef579bd0f34173e9fd",
		"Header header\nstring[] name\nfloat64[] position\nfloat64[] velocity\nfloat64[] effort",
		func() ros.Message { return new(JointState) })
)

type PointField struct {
	Name     string
	Offset   uint32
	Datatype uint8
	Count    uint32
}

func (m *PointField) Type() ros.MessageType { return TypeOfPointField }

func (m *PointField) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Name)
	w.Uint32(m.Offset)
	w.Uint8(m.Datatype)
	w.Uint32(m.Count)
	return w.Err()
}

func (m *PointField) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Name = r.String()
	m.Offset = r.Uint32()
	m.Datatype = r.Uint8()
	m.Count = r.Uint32()
	return r.Err()
}

type PointCloud2 struct {
	Header      std_msgs.Header
	Height      uint32
	Width       uint32
	Fields      []PointField
	IsBigendian bool
	PointStep   uint32
	RowStep     uint32
	Data        []uint8
	IsDense     bool
}

func (m *PointCloud2) Type() ros.MessageType { return TypeOfPointCloud2 }

// Points is the number of points in the cloud.
func (m *PointCloud2) Points() int {
	return int(m.Height) * int(m.Width)
}

// IsEmpty reports whether the cloud carries no points.
func (m *PointCloud2) IsEmpty() bool {
	return m.Points() == 0 && len(m.Data) == 0
}

func (m *PointCloud2) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Header)
	w.Uint32(m.Height)
	w.Uint32(m.Width)
	w.Len(len(m.Fields))
	for i := range m.Fields {
		w.Message(&m.Fields[i])
	}
	w.Bool(m.IsBigendian)
	w.Uint32(m.PointStep)
	w.Uint32(m.RowStep)
	w.Bytes(m.Data)
	w.Bool(m.IsDense)
	return w.Err()
}

func (m *PointCloud2) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Header)
	m.Height = r.Uint32()
	m.Width = r.Uint32()
	m.Fields = make([]PointField, r.Len())
	for i := range m.Fields {
		r.Message(&m.Fields[i])
	}
	m.IsBigendian = r.Bool()
	m.PointStep = r.Uint32()
	m.RowStep = r.Uint32()
	m.Data = r.Bytes()
	m.IsDense = r.Bool()
	return r.Err()
}

type JointState struct {
	Header   std_msgs.Header
	Name     []string
	Position []float64
	Velocity []float64
	Effort   []float64
}

func (m *JointState) Type() ros.MessageType { return TypeOfJointState }

func (m *JointState) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Header)
	w.Strings(m.Name)
	w.Float64s(m.Position)
	w.Float64s(m.Velocity)
	w.Float64s(m.Effort)
	return w.Err()
}

func (m *JointState) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Header)
	m.Name = r.Strings()
	m.Position = r.Float64s()
	m.Velocity = r.Float64s()
	m.Effort = r.Float64s()
	return r.Err()
}
