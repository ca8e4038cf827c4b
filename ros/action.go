package ros

import (
	"bytes"
	"time"
)

// ActionType describes a simple action: its name and the message types of
// its goal and result.
type ActionType interface {
	Name() string
	GoalType() MessageType
	ResultType() MessageType
}

// actionGoal wraps a goal with the id it is tracked by.
type actionGoal struct {
	msgType *envelopeType
	GoalID  string
	Stamp   time.Time
	Goal    Message
}

// actionResult reports the status of a goal, and its result once terminal.
type actionResult struct {
	msgType *envelopeType
	GoalID  string
	Status  uint8
	Text    string
	Result  Message
}

// actionCancel asks the server to preempt a goal. An empty id cancels every goal.
type actionCancel struct {
	GoalID string
}

const (
	envelopeGoal   = "ActionGoal"
	envelopeResult = "ActionResult"
)

// envelopeType derives the wire type of a goal or result envelope from the
// action's inner message type.
type envelopeType struct {
	kind  string
	name  string
	inner MessageType
}

var _ MessageType = &envelopeType{}

func newGoalEnvelopeType(actionType ActionType) *envelopeType {
	return &envelopeType{kind: envelopeGoal, name: actionType.Name() + envelopeGoal, inner: actionType.GoalType()}
}

func newResultEnvelopeType(actionType ActionType) *envelopeType {
	return &envelopeType{kind: envelopeResult, name: actionType.Name() + envelopeResult, inner: actionType.ResultType()}
}

func (t *envelopeType) Text() string {
	return t.inner.Text()
}

func (t *envelopeType) MD5Sum() string {
	return t.inner.MD5Sum()
}

func (t *envelopeType) Name() string {
	return t.name
}

func (t *envelopeType) NewMessage() Message {
	if t.kind == envelopeGoal {
		return &actionGoal{msgType: t, Goal: t.inner.NewMessage()}
	}
	return &actionResult{msgType: t, Result: t.inner.NewMessage()}
}

func (m *actionGoal) Type() MessageType {
	return m.msgType
}

func (m *actionGoal) Serialize(buf *bytes.Buffer) error {
	w := NewMessageWriter(buf)
	w.String(m.GoalID)
	w.Time(m.Stamp)
	w.Message(m.Goal)
	return w.Err()
}

func (m *actionGoal) Deserialize(buf *bytes.Reader) error {
	r := NewMessageReader(buf)
	m.GoalID = r.String()
	m.Stamp = r.Time()
	r.Message(m.Goal)
	return r.Err()
}

func (m *actionResult) Type() MessageType {
	return m.msgType
}

func (m *actionResult) Serialize(buf *bytes.Buffer) error {
	w := NewMessageWriter(buf)
	w.String(m.GoalID)
	w.Uint8(m.Status)
	w.String(m.Text)
	w.Message(m.Result)
	return w.Err()
}

func (m *actionResult) Deserialize(buf *bytes.Reader) error {
	r := NewMessageReader(buf)
	m.GoalID = r.String()
	m.Status = r.Uint8()
	m.Text = r.String()
	r.Message(m.Result)
	return r.Err()
}

type actionCancelType struct{}

var typeOfActionCancel = actionCancelType{}

func (actionCancelType) Text() string {
	return "string goal_id"
}

func (actionCancelType) MD5Sum() string {
	return "a3c0c1a51a1a6f1e7b0ab3f0a8c1f1c0"
}

func (actionCancelType) Name() string {
	return "actionlib_msgs/GoalCancel"
}

func (actionCancelType) NewMessage() Message {
	return &actionCancel{}
}

func (m *actionCancel) Type() MessageType {
	return typeOfActionCancel
}

func (m *actionCancel) Serialize(buf *bytes.Buffer) error {
	w := NewMessageWriter(buf)
	w.String(m.GoalID)
	return w.Err()
}

func (m *actionCancel) Deserialize(buf *bytes.Reader) error {
	r := NewMessageReader(buf)
	m.GoalID = r.String()
	return r.Err()
}
