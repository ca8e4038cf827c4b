package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/team-rocos/squirrel-rosplan/tf"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Feedback is one recorded feedback event.
type Feedback struct {
	ActionID int32
	Status   string
}

// FeedbackRecorder collects the feedback a handler sends.
type FeedbackRecorder struct {
	mu     sync.Mutex
	events []Feedback
}

func (f *FeedbackRecorder) Send(ctx context.Context, actionID int32, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, Feedback{ActionID: actionID, Status: status})
	return nil
}

// Events returns the feedback in send order.
func (f *FeedbackRecorder) Events() []Feedback {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Feedback(nil), f.events...)
}

// Statuses returns just the status strings, in send order.
func (f *FeedbackRecorder) Statuses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var statuses []string
	for _, e := range f.events {
		statuses = append(statuses, e.Status)
	}
	return statuses
}

// Transforms answers every lookup with the same robot position.
type Transforms struct {
	mu    sync.Mutex
	X, Y  float64
	Err   error
	calls int
}

var _ tf.Lookuper = &Transforms{}

func (t *Transforms) LookupTransform(ctx context.Context, target, source string, timeout time.Duration) (tf.Transform, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	if t.Err != nil {
		return tf.Transform{}, errors.WithStack(t.Err)
	}
	return tf.Transform{Translation: r3.Vec{X: t.X, Y: t.Y}, Rotation: quat.Number{Real: 1}}, nil
}

// Calls counts the lookups made.
func (t *Transforms) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}
