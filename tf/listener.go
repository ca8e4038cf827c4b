package tf

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/tf2_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// DefaultTopic carries the frame tree updates.
const DefaultTopic = "/tf"

// Reason classifies a failed lookup.
type Reason int

const (
	// ReasonTimeout means both frames are known but no chain joined them in time.
	ReasonTimeout Reason = iota
	// ReasonUnknownFrame means at least one frame was never seen.
	ReasonUnknownFrame
)

func (r Reason) String() string {
	switch r {
	case ReasonTimeout:
		return "timeout"
	case ReasonUnknownFrame:
		return "unknown frame"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// LookupError is returned by LookupTransform when no transform is available.
type LookupError struct {
	Target string
	Source string
	Reason Reason
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no transform from %s to %s: %s", e.Source, e.Target, e.Reason)
}

// Lookuper resolves the transform between two frames, waiting up to timeout.
type Lookuper interface {
	LookupTransform(ctx context.Context, target, source string, timeout time.Duration) (Transform, error)
}

type edge struct {
	parent    string
	transform Transform
}

// Listener follows the frame tree published on the tf topic. It keeps the
// latest transform for each child frame.
type Listener struct {
	logger *modular.ModuleLogger
	sub    ros.Subscriber

	mu      sync.Mutex
	parents map[string]edge
	known   map[string]bool
	changed chan struct{}
}

var _ Lookuper = &Listener{}

// NewListener creates a listener that is only fed through SetTransform.
func NewListener(logger *modular.ModuleLogger) *Listener {
	return &Listener{
		logger:  logger,
		parents: make(map[string]edge),
		known:   make(map[string]bool),
		changed: make(chan struct{}),
	}
}

// Listen subscribes a new listener to topic on node. Updates bypass the
// node's job queue so lookups made from inside a callback still progress.
func Listen(node ros.Node, topic string) (*Listener, error) {
	l := NewListener(node.Logger())
	sub, err := node.NewSubscriber(topic, tf2_msgs.TypeOfTFMessage, l.handleMessage, ros.Unqueued())
	if err != nil {
		return nil, errors.Wrapf(err, "subscribing to %s", topic)
	}
	l.sub = sub
	return l, nil
}

// Shutdown stops listening for updates.
func (l *Listener) Shutdown() {
	if l.sub != nil {
		l.sub.Shutdown()
	}
}

func (l *Listener) handleMessage(msg *tf2_msgs.TFMessage) {
	for _, ts := range msg.Transforms {
		l.SetTransform(ts)
	}
}

// SetTransform records the transform from ts.ChildFrameID to ts.Header.FrameID.
func (l *Listener) SetTransform(ts geometry_msgs.TransformStamped) {
	parent := frameName(ts.Header.FrameID)
	child := frameName(ts.ChildFrameID)
	if parent == "" || child == "" || parent == child {
		logger := *l.logger
		logger.WithFields(logrus.Fields{"parent": ts.Header.FrameID, "child": ts.ChildFrameID}).Warn("ignoring malformed transform")
		return
	}

	l.mu.Lock()
	l.parents[child] = edge{parent: parent, transform: FromMsg(ts.Transform)}
	l.known[child] = true
	l.known[parent] = true
	close(l.changed)
	l.changed = make(chan struct{})
	l.mu.Unlock()
}

// LookupTransform returns the transform taking points in source into target.
// It waits up to timeout for the frames to become connected.
func (l *Listener) LookupTransform(ctx context.Context, target, source string, timeout time.Duration) (Transform, error) {
	target = frameName(target)
	source = frameName(source)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		l.mu.Lock()
		t, reason, ok := l.resolve(target, source)
		changed := l.changed
		l.mu.Unlock()
		if ok {
			return t, nil
		}

		select {
		case <-changed:
		case <-timer.C:
			return Transform{}, &LookupError{Target: target, Source: source, Reason: reason}
		case <-ctx.Done():
			return Transform{}, errors.Wrap(ctx.Err(), "waiting for transform")
		}
	}
}

// resolve must be called with mu held.
func (l *Listener) resolve(target, source string) (Transform, Reason, bool) {
	if target == source {
		return Identity, 0, true
	}
	if !l.known[target] || !l.known[source] {
		return Transform{}, ReasonUnknownFrame, false
	}
	targetRoot, fromTarget := l.toRoot(target)
	sourceRoot, fromSource := l.toRoot(source)
	if targetRoot != sourceRoot {
		return Transform{}, ReasonTimeout, false
	}
	return fromTarget.Inverse().Compose(fromSource), 0, true
}

// toRoot walks from frame up to the root of its tree, returning the root and
// the transform taking points in frame into the root frame.
func (l *Listener) toRoot(frame string) (string, Transform) {
	t := Identity
	seen := map[string]bool{frame: true}
	for {
		e, ok := l.parents[frame]
		if !ok || seen[e.parent] {
			return frame, t
		}
		t = e.transform.Compose(t)
		frame = e.parent
		seen[frame] = true
	}
}

func frameName(frame string) string {
	return strings.TrimLeft(frame, "/")
}
