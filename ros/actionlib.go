package ros

import (
	"context"
	"time"
)

// SimpleActionClient tracks one goal at a time on an action namespace.
type SimpleActionClient interface {
	SendGoal(goal Message) error
	WaitForServer(ctx context.Context, timeout time.Duration) bool
	WaitForResult(ctx context.Context, timeout time.Duration) bool
	GetState() (uint8, error)
	GetGoalStatusText() (string, error)
	GetResult() (Message, error)
	CancelGoal() error
	StopTrackingGoal()
	Shutdown()
}

// SimpleActionServer runs an execute callback for each goal it receives.
// The callback takes the goal message and reports its outcome through
// SetSucceeded, SetAborted or SetPreempted.
type SimpleActionServer interface {
	Start() error
	IsPreemptRequested() bool
	SetSucceeded(result Message, text string) error
	SetAborted(result Message, text string) error
	SetPreempted(result Message, text string) error
	Shutdown()
}

func NewSimpleActionClient(node Node, action string, actionType ActionType) (SimpleActionClient, error) {
	return newSimpleActionClient(node, action, actionType)
}

func NewSimpleActionServer(node Node, action string, actionType ActionType, executeCb interface{}) SimpleActionServer {
	return newSimpleActionServer(node, action, actionType, executeCb)
}
