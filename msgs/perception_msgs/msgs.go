// Package perception_msgs holds the events that feed the scene database.
package perception_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfSegmentedObject = ros.NewStaticMessageType("perception_msgs/SegmentedObject", "c945fb9cf73522d6621a35844494041c",
		"string name\nsensor_msgs/PointCloud2 segment",
		func() ros.Message { return new(SegmentedObject) })
	TypeOfObjectPosition = ros.NewStaticMessageType("perception_msgs/ObjectPosition", "899cf99e2e01a64170a87c0171b5b2ec",
		"string name\ngeometry_msgs/Point position",
		func() ros.Message { return new(ObjectPosition) })
)

type SegmentedObject struct {
	Name    string
	Segment sensor_msgs.PointCloud2
}

func (m *SegmentedObject) Type() ros.MessageType { return TypeOfSegmentedObject }

func (m *SegmentedObject) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Name)
	w.Message(&m.Segment)
	return w.Err()
}

func (m *SegmentedObject) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Name = r.String()
	r.Message(&m.Segment)
	return r.Err()
}

type ObjectPosition struct {
	Name     string
	Position geometry_msgs.Point
}

func (m *ObjectPosition) Type() ros.MessageType { return TypeOfObjectPosition }

func (m *ObjectPosition) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Name)
	w.Message(&m.Position)
	return w.Err()
}

func (m *ObjectPosition) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Name = r.String()
	r.Message(&m.Position)
	return r.Err()
}
