// Package rosplan_dispatch_msgs holds the planner's action dispatch and feedback messages.
package rosplan_dispatch_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfActionDispatch = ros.NewStaticMessageType("rosplan_dispatch_msgs/ActionDispatch", "80f1ebdf8c68451c7e598f98e7f12dba",
		"int32 action_id\nstring name\ndiagnostic_msgs/KeyValue[] parameters\nfloat32 duration\nfloat32 dispatch_time",
		func() ros.Message { return new(ActionDispatch) })
	TypeOfActionFeedback = ros.NewStaticMessageType("rosplan_dispatch_msgs/ActionFeedback", "e28991799802dd700e1390bf56614b89",
		"int32 action_id\nstring status\ndiagnostic_msgs/KeyValue[] information",
		func() ros.Message { return new(ActionFeedback) })
)

type ActionDispatch struct {
	ActionID     int32
	Name         string
	Parameters   []diagnostic_msgs.KeyValue
	Duration     float32
	DispatchTime float32
}

func (m *ActionDispatch) Type() ros.MessageType { return TypeOfActionDispatch }

func (m *ActionDispatch) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Int32(m.ActionID)
	w.String(m.Name)
	diagnostic_msgs.WriteKeyValues(w, m.Parameters)
	w.Float32(m.Duration)
	w.Float32(m.DispatchTime)
	return w.Err()
}

func (m *ActionDispatch) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.ActionID = r.Int32()
	m.Name = r.String()
	m.Parameters = diagnostic_msgs.ReadKeyValues(r)
	m.Duration = r.Float32()
	m.DispatchTime = r.Float32()
	return r.Err()
}

type ActionFeedback struct {
	ActionID    int32
	Status      string
	Information []diagnostic_msgs.KeyValue
}

func (m *ActionFeedback) Type() ros.MessageType { return TypeOfActionFeedback }

func (m *ActionFeedback) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Int32(m.ActionID)
	w.String(m.Status)
	diagnostic_msgs.WriteKeyValues(w, m.Information)
	return w.Err()
}

func (m *ActionFeedback) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.ActionID = r.Int32()
	m.Status = r.String()
	m.Information = diagnostic_msgs.ReadKeyValues(r)
	return r.Err()
}
