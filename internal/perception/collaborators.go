// Package perception runs the perception actions a plan dispatches: it
// drives the recognisers and the arm and records what they find in the
// knowledge base and the message store.
package perception

import (
	"context"
	"fmt"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	sop "github.com/team-rocos/squirrel-rosplan/msgs/squirrel_object_perception_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// DynamicObjectFinder reports the objects that appeared, moved or vanished
// since the last call.
type DynamicObjectFinder interface {
	FindDynamicObjects(ctx context.Context) (*sop.FindDynamicObjectsResponse, error)
}

// Recognizer recognises objects around a pose.
type Recognizer interface {
	RecognizeObjects(ctx context.Context, goal *sop.RecognizeObjectsGoal) (*sop.RecognizeObjectsResult, error)
}

// ObjectLooker looks for one named object.
type ObjectLooker interface {
	LookForObjects(ctx context.Context, goal *sop.LookForObjectsGoal) (*sop.LookForObjectsResult, error)
}

// GoalError is returned when an action goal ends in any state other than
// SUCCEEDED, including a goal still running when the wait gave up.
type GoalError struct {
	Action string
	State  uint8
	Text   string
}

func (e *GoalError) Error() string {
	msg := fmt.Sprintf("%s finished %s", e.Action, ros.GoalStatusString(e.State))
	if e.Text != "" {
		msg += ": " + e.Text
	}
	return msg
}

// ServiceFinder calls the dynamic object finder service.
type ServiceFinder struct {
	client ros.ServiceClient
}

var _ DynamicObjectFinder = &ServiceFinder{}

func NewServiceFinder(node ros.Node, service string) *ServiceFinder {
	return &ServiceFinder{client: node.NewServiceClient(service, sop.TypeOfFindDynamicObjects)}
}

func (f *ServiceFinder) FindDynamicObjects(ctx context.Context) (*sop.FindDynamicObjectsResponse, error) {
	srv := &sop.FindDynamicObjects{}
	if err := f.client.Call(ctx, srv); err != nil {
		return nil, errors.Wrap(err, "finding dynamic objects")
	}
	return &srv.Response, nil
}

// actionRunner sends one goal at a time and waits for its outcome.
type actionRunner struct {
	name    string
	client  ros.SimpleActionClient
	timeout time.Duration
	logger  *modular.ModuleLogger
}

func newActionRunner(node ros.Node, name string, actionType ros.ActionType, timeout time.Duration) (*actionRunner, error) {
	client, err := ros.NewSimpleActionClient(node, name, actionType)
	if err != nil {
		return nil, errors.Wrapf(err, "creating action client for %s", name)
	}
	return &actionRunner{name: name, client: client, timeout: timeout, logger: node.Logger()}, nil
}

// Shutdown releases the action client.
func (a *actionRunner) Shutdown() {
	a.client.Shutdown()
}

// run waits for the server, sends goal and waits up to the runner's
// timeout for the outcome. The goal is not cancelled when the wait gives up.
func (a *actionRunner) run(ctx context.Context, goal ros.Message) (ros.Message, error) {
	logger := *a.logger
	if !a.client.WaitForServer(ctx, 0) {
		return nil, errors.Wrapf(ctx.Err(), "waiting for %s", a.name)
	}
	if err := a.client.SendGoal(goal); err != nil {
		return nil, errors.Wrapf(err, "sending goal to %s", a.name)
	}
	logger.WithFields(logrus.Fields{"action": a.name}).Info("goal sent, waiting for result")

	finished := a.client.WaitForResult(ctx, a.timeout)
	state, err := a.client.GetState()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s state", a.name)
	}
	text, _ := a.client.GetGoalStatusText()
	if !finished {
		logger.WithFields(logrus.Fields{"action": a.name, "state": ros.GoalStatusString(state)}).Warn("gave up waiting for result")
	}
	if state != ros.GoalSucceeded {
		return nil, &GoalError{Action: a.name, State: state, Text: text}
	}
	result, err := a.client.GetResult()
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s result", a.name)
	}
	return result, nil
}

// ActionRecognizer drives the recognize objects action server.
type ActionRecognizer struct {
	*actionRunner
}

var _ Recognizer = &ActionRecognizer{}

func NewActionRecognizer(node ros.Node, server string, timeout time.Duration) (*ActionRecognizer, error) {
	runner, err := newActionRunner(node, server, sop.TypeOfRecognizeObjectsAction, timeout)
	if err != nil {
		return nil, err
	}
	return &ActionRecognizer{runner}, nil
}

func (r *ActionRecognizer) RecognizeObjects(ctx context.Context, goal *sop.RecognizeObjectsGoal) (*sop.RecognizeObjectsResult, error) {
	result, err := r.run(ctx, goal)
	if err != nil {
		return nil, err
	}
	return result.(*sop.RecognizeObjectsResult), nil
}

// ActionLooker drives the look for objects action server.
type ActionLooker struct {
	*actionRunner
}

var _ ObjectLooker = &ActionLooker{}

func NewActionLooker(node ros.Node, server string, timeout time.Duration) (*ActionLooker, error) {
	runner, err := newActionRunner(node, server, sop.TypeOfLookForObjectsAction, timeout)
	if err != nil {
		return nil, err
	}
	return &ActionLooker{runner}, nil
}

func (l *ActionLooker) LookForObjects(ctx context.Context, goal *sop.LookForObjectsGoal) (*sop.LookForObjectsResult, error) {
	result, err := l.run(ctx, goal)
	if err != nil {
		return nil, err
	}
	return result.(*sop.LookForObjectsResult), nil
}
