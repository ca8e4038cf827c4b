// Package tf2_msgs holds the message carried on the /tf topic.
package tf2_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var TypeOfTFMessage = ros.NewStaticMessageType("tf2_msgs/TFMessage", "94810edda583a504dfda3829e70d7eec",
	"geometry_msgs/TransformStamped[] transforms",
	func() ros.Message { return new(TFMessage) })

type TFMessage struct {
	Transforms []geometry_msgs.TransformStamped
}

func (m *TFMessage) Type() ros.MessageType { return TypeOfTFMessage }

func (m *TFMessage) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Len(len(m.Transforms))
	for i := range m.Transforms {
		w.Message(&m.Transforms[i])
	}
	return w.Err()
}

func (m *TFMessage) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Transforms = make([]geometry_msgs.TransformStamped, r.Len())
	for i := range m.Transforms {
		r.Message(&m.Transforms[i])
	}
	return r.Err()
}
