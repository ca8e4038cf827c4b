package spatial

import (
	"context"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/tf"
	"gonum.org/v1/gonum/spatial/r2"
)

// Box is a storage box with its stored location.
type Box struct {
	Name string
	Pose geometry_msgs.PoseStamped
}

// Locator resolves the robot's position and the boxes around it.
type Locator struct {
	Transforms tf.Lookuper
	Knowledge  knowledge.Client
	Store      messagestore.Store
	Logger     *modular.ModuleLogger

	MapFrame   string
	RobotFrame string
	TFTimeout  time.Duration
}

// RobotPosition returns the robot's planar position in the map frame.
func (l *Locator) RobotPosition(ctx context.Context) (r2.Vec, error) {
	t, err := l.Transforms.LookupTransform(ctx, l.MapFrame, l.RobotFrame, l.TFTimeout)
	if err != nil {
		return r2.Vec{}, errors.Wrap(err, "locating the robot")
	}
	return r2.Vec{X: t.Translation.X, Y: t.Translation.Y}, nil
}

// BoxLocation reads the stored pose of a box, kept under "<box>_location".
func (l *Locator) BoxLocation(ctx context.Context, box string) (geometry_msgs.PoseStamped, error) {
	msg, err := messagestore.QueryLatest(ctx, l.Store, box+"_location", geometry_msgs.TypeOfPoseStamped)
	if err != nil {
		return geometry_msgs.PoseStamped{}, err
	}
	return *msg.(*geometry_msgs.PoseStamped), nil
}

// ClosestBox returns the box nearest to the robot. Any failed lookup, or
// no boxes at all, is an error.
func (l *Locator) ClosestBox(ctx context.Context) (Box, error) {
	robot, err := l.RobotPosition(ctx)
	if err != nil {
		return Box{}, err
	}
	names, err := l.Knowledge.Instances(ctx, "box")
	if err != nil {
		return Box{}, errors.Wrap(err, "listing boxes")
	}

	poses := make(map[string]geometry_msgs.PoseStamped, len(names))
	candidates := make([]Candidate, 0, len(names))
	for _, name := range names {
		pose, err := l.BoxLocation(ctx, name)
		if err != nil {
			return Box{}, errors.Wrapf(err, "locating box %s", name)
		}
		poses[name] = pose
		candidates = append(candidates, Candidate{
			Name:     name,
			Position: r2.Vec{X: pose.Pose.Position.X, Y: pose.Pose.Position.Y},
		})
	}

	closest, err := Nearest(robot, candidates)
	if err != nil {
		return Box{}, errors.Wrap(err, "choosing a box")
	}
	logger := *l.Logger
	logger.WithFields(logrus.Fields{"box": closest.Name, "distance2": SquaredDistance(robot, closest.Position)}).Debug("closest box")
	return Box{Name: closest.Name, Pose: poses[closest.Name]}, nil
}
