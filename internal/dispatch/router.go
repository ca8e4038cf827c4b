// Package dispatch routes the planner's action dispatches to handlers and
// reports their progress back as feedback.
package dispatch

import (
	"context"
	"sort"
	"strings"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Handler runs one dispatched action to completion. It reports progress
// through feedback and returns an error only for conditions that should
// stop the process, wrapped with Fatal.
type Handler func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error

// RouterOption tunes a Router at creation.
type RouterOption func(*Router)

// FoldCase makes the router match action names case-insensitively.
func FoldCase() RouterOption {
	return func(r *Router) {
		r.foldCase = true
	}
}

// WithMetrics counts routed dispatches.
func WithMetrics(m *Metrics) RouterOption {
	return func(r *Router) {
		r.metrics = m
	}
}

// OnFatal sets the hook that receives fatal handler errors.
func OnFatal(fn func(error)) RouterOption {
	return func(r *Router) {
		r.onFatal = fn
	}
}

// Router picks at most one handler per dispatch by action name. Dispatches
// for names nobody handles are dropped.
type Router struct {
	logger   *modular.ModuleLogger
	handlers map[string]Handler
	foldCase bool
	metrics  *Metrics
	onFatal  func(error)
}

func NewRouter(logger *modular.ModuleLogger, opts ...RouterOption) *Router {
	r := &Router{
		logger:   logger,
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) key(name string) string {
	if r.foldCase {
		return strings.ToLower(name)
	}
	return name
}

// Handle registers h for the action name. A later registration replaces an earlier one.
func (r *Router) Handle(name string, h Handler) {
	r.handlers[r.key(name)] = h
}

// Names lists the handled action names in order.
func (r *Router) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler registered for msg.Name, if any.
func (r *Router) Dispatch(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	logger := *r.logger
	h, ok := r.handlers[r.key(msg.Name)]
	if !ok {
		logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID}).Debug("ignoring unhandled action")
		return nil
	}
	r.metrics.dispatched(r.key(msg.Name))
	logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID}).Info("action received")

	err := h(ctx, msg)
	if err == nil {
		return nil
	}
	if IsFatal(err) && r.onFatal != nil {
		r.onFatal(err)
	}
	logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID, "error": err}).Error("action handler failed")
	return err
}

// Subscribe feeds dispatches published on topic into the router. Handlers
// run on the node's callback goroutine, one at a time.
func (r *Router) Subscribe(ctx context.Context, node ros.Node, topic string) (ros.Subscriber, error) {
	sub, err := node.NewSubscriber(topic, rosplan_dispatch_msgs.TypeOfActionDispatch, func(msg *rosplan_dispatch_msgs.ActionDispatch) {
		r.Dispatch(ctx, msg)
	})
	return sub, errors.Wrapf(err, "subscribing to %s", topic)
}
