// Package geometry_msgs holds the ROS geometry primitives.
package geometry_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfPoint = ros.NewStaticMessageType("geometry_msgs/Point", "4a842b65f413084dc2b10fb484ea7f17",
		"float64 x\nfloat64 y\nfloat64 z",
		func() ros.Message { return new(Point) })
	TypeOfVector3 = ros.NewStaticMessageType("geometry_msgs/Vector3", "4a842b65f413084dc2b10fb484ea7f17",
		"float64 x\nfloat64 y\nfloat64 z",
		func() ros.Message { return new(Vector3) })
	TypeOfQuaternion = ros.NewStaticMessageType("geometry_msgs/Quaternion", "a779879fadf0160734f906b8c19c7004",
		"float64 x\nfloat64 y\nfloat64 z\nfloat64 w",
		func() ros.Message { return new(Quaternion) })
	TypeOfPose = ros.NewStaticMessageType("geometry_msgs/Pose", "e45d45a5a1ce597b249e23fb30fc871f",
		"Point position\nQuaternion orientation",
		func() ros.Message { return new(Pose) })
	TypeOfPoseStamped = ros.NewStaticMessageType("geometry_msgs/PoseStamped", "d3812c3cbc69362b77dc0b19b345f8f5",
		"Header header\nPose pose",
		func() ros.Message { return new(PoseStamped) })
	TypeOfTransform = ros.NewStaticMessageType("geometry_msgs/Transform", "ac9eff44abf714214112b05d54a3cf9b",
		"Vector3 translation\nQuaternion rotation",
		func() ros.Message { return new(Transform) })
	TypeOfTransformStamped = ros.NewStaticMessageType("geometry_msgs/TransformStamped", "b5764a33bfeb3588febc2682852579b0",
		"Header header\nstring child_frame_id\nTransform transform",
		func() ros.Message { return new(TransformStamped) })
)

type Point struct {
	X float64
	Y float64
	Z float64
}

func (m *Point) Type() ros.MessageType { return TypeOfPoint }

func (m *Point) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Float64(m.X)
	w.Float64(m.Y)
	w.Float64(m.Z)
	return w.Err()
}

func (m *Point) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.X = r.Float64()
	m.Y = r.Float64()
	m.Z = r.Float64()
	return r.Err()
}

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func (m *Vector3) Type() ros.MessageType { return TypeOfVector3 }

func (m *Vector3) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Float64(m.X)
	w.Float64(m.Y)
	w.Float64(m.Z)
	return w.Err()
}

func (m *Vector3) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.X = r.Float64()
	m.Y = r.Float64()
	m.Z = r.Float64()
	return r.Err()
}

type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

// Identity is the quaternion of no rotation.
var Identity = Quaternion{W: 1}

func (m *Quaternion) Type() ros.MessageType { return TypeOfQuaternion }

func (m *Quaternion) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Float64(m.X)
	w.Float64(m.Y)
	w.Float64(m.Z)
	w.Float64(m.W)
	return w.Err()
}

func (m *Quaternion) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.X = r.Float64()
	m.Y = r.Float64()
	m.Z = r.Float64()
	m.W = r.Float64()
	return r.Err()
}

type Pose struct {
	Position    Point
	Orientation Quaternion
}

func (m *Pose) Type() ros.MessageType { return TypeOfPose }

func (m *Pose) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Position)
	w.Message(&m.Orientation)
	return w.Err()
}

func (m *Pose) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Position)
	r.Message(&m.Orientation)
	return r.Err()
}

type PoseStamped struct {
	Header std_msgs.Header
	Pose   Pose
}

func (m *PoseStamped) Type() ros.MessageType { return TypeOfPoseStamped }

func (m *PoseStamped) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Header)
	w.Message(&m.Pose)
	return w.Err()
}

func (m *PoseStamped) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Header)
	r.Message(&m.Pose)
	return r.Err()
}

type Transform struct {
	Translation Vector3
	Rotation    Quaternion
}

func (m *Transform) Type() ros.MessageType { return TypeOfTransform }

func (m *Transform) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Translation)
	w.Message(&m.Rotation)
	return w.Err()
}

func (m *Transform) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Translation)
	r.Message(&m.Rotation)
	return r.Err()
}

type TransformStamped struct {
	Header       std_msgs.Header
	ChildFrameID string
	Transform    Transform
}

func (m *TransformStamped) Type() ros.MessageType { return TypeOfTransformStamped }

func (m *TransformStamped) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Header)
	w.String(m.ChildFrameID)
	w.Message(&m.Transform)
	return w.Err()
}

func (m *TransformStamped) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Header)
	m.ChildFrameID = r.String()
	r.Message(&m.Transform)
	return r.Err()
}
