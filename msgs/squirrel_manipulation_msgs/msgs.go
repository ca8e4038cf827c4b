// Package squirrel_manipulation_msgs holds the joint point-to-point arm action.
package squirrel_manipulation_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfJointPtpGoal = ros.NewStaticMessageType("squirrel_manipulation_msgs/JointPtpGoal", "c3ed12c296ea0cdf8cae379653742d3d",
		"std_msgs/Float64MultiArray joints",
		func() ros.Message { return new(JointPtpGoal) })
	TypeOfJointPtpResult = ros.NewStaticMessageType("squirrel_manipulation_msgs/JointPtpResult", "eb13ac1f1354ccecb7941ee8fa2192e8",
		"bool result",
		func() ros.Message { return new(JointPtpResult) })
	TypeOfJointPtpAction = ros.NewStaticActionType("squirrel_manipulation_msgs/JointPtp",
		TypeOfJointPtpGoal, TypeOfJointPtpResult)
)

type JointPtpGoal struct {
	Joints std_msgs.Float64MultiArray
}

func (m *JointPtpGoal) Type() ros.MessageType { return TypeOfJointPtpGoal }

func (m *JointPtpGoal) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Joints)
	return w.Err()
}

func (m *JointPtpGoal) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Joints)
	return r.Err()
}

type JointPtpResult struct {
	Result bool
}

func (m *JointPtpResult) Type() ros.MessageType { return TypeOfJointPtpResult }

func (m *JointPtpResult) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Bool(m.Result)
	return w.Err()
}

func (m *JointPtpResult) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Result = r.Bool()
	return r.Err()
}
