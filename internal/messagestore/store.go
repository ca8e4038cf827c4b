// Package messagestore persists named ROS messages: poses, point clouds and
// scene objects that outlive a single action.
package messagestore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// ErrNotFound is returned when no stored message matches a request.
var ErrNotFound = errors.New("message not found")

// Store maps names to messages. Several messages may share a name; each
// insert returns an opaque id that deletes exactly that message.
type Store interface {
	InsertNamed(ctx context.Context, name string, msg ros.Message) (string, error)
	// QueryNamed returns the messages of msgType stored under name, newest first.
	QueryNamed(ctx context.Context, name string, msgType ros.MessageType) ([]ros.Message, error)
	DeleteID(ctx context.Context, id string) error
}

// QueryLatest returns the newest message of msgType stored under name, or
// ErrNotFound.
func QueryLatest(ctx context.Context, s Store, name string, msgType ros.MessageType) (ros.Message, error) {
	results, err := s.QueryNamed(ctx, name, msgType)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "%s %s", msgType.Name(), name)
	}
	return results[0], nil
}
