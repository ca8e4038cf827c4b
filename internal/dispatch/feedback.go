package dispatch

import (
	"context"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Feedback statuses understood by the plan dispatcher.
const (
	StatusEnabled  = "action enabled"
	StatusAchieved = "action achieved"
	StatusFailed   = "action failed"
)

// FeedbackSink delivers feedback for a dispatched action.
type FeedbackSink interface {
	Send(ctx context.Context, actionID int32, status string) error
}

// FeedbackPublisher publishes feedback on the action feedback topic.
type FeedbackPublisher struct {
	pub     ros.Publisher
	metrics *Metrics
}

var _ FeedbackSink = &FeedbackPublisher{}

func NewFeedbackPublisher(node ros.Node, topic string, metrics *Metrics) (*FeedbackPublisher, error) {
	pub, err := node.NewPublisher(topic, rosplan_dispatch_msgs.TypeOfActionFeedback)
	if err != nil {
		return nil, errors.Wrapf(err, "advertising %s", topic)
	}
	return &FeedbackPublisher{pub: pub, metrics: metrics}, nil
}

func (f *FeedbackPublisher) Send(ctx context.Context, actionID int32, status string) error {
	if err := f.pub.Publish(&rosplan_dispatch_msgs.ActionFeedback{ActionID: actionID, Status: status}); err != nil {
		return err
	}
	f.metrics.feedback(status)
	return nil
}

// Reporter sends the three lifecycle statuses of one handler family.
// Delivery failures are logged; the handler carries on.
type Reporter struct {
	Sink   FeedbackSink
	Logger *modular.ModuleLogger
}

func (r Reporter) send(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch, status string) {
	if err := r.Sink.Send(ctx, msg.ActionID, status); err != nil {
		logger := *r.Logger
		logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID, "status": status, "error": err}).Error("failed to send feedback")
	}
}

func (r Reporter) Enabled(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) {
	r.send(ctx, msg, StatusEnabled)
}

func (r Reporter) Achieved(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) {
	r.send(ctx, msg, StatusAchieved)
}

func (r Reporter) Failed(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) {
	r.send(ctx, msg, StatusFailed)
}
