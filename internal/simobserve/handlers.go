// Package simobserve answers the planner's observation actions without a
// robot, so plans can be exercised end to end in simulation.
package simobserve

import (
	"context"
	"sync"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/internal/spatial"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	sop "github.com/team-rocos/squirrel-rosplan/msgs/squirrel_object_perception_msgs"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	ActionSortingDone   = "observe-sorting_done"
	ActionToyAtRightBox = "observe-toy_at_right_box"
)

// Actions that are acknowledged without doing anything.
var passThrough = []string{
	"observe-has_commanded",
	"observe-is_of_type",
	"observe-holding",
	"observe-is_examined",
	"observe-belongs_in",
	"jump",
	"check_belongs_in",
	"finish",
	"next_observation",
}

// nearBox is the squared planar distance within which a toy counts as
// being at a box.
const nearBox = 1.5

type Handlers struct {
	Feedback  dispatch.Reporter
	Knowledge knowledge.Client
	Store     messagestore.Store
	Locator   *spatial.Locator
	Logger    *modular.ModuleLogger

	// SortFor is how many sorting_done observations report false before
	// sorting counts as done.
	SortFor int

	mu    sync.Mutex
	count int
}

// Register installs the observation actions on router, which should fold
// case.
func (h *Handlers) Register(router *dispatch.Router) {
	router.Handle(ActionSortingDone, h.SortingDone)
	router.Handle(ActionToyAtRightBox, h.ToyAtRightBox)
	for _, name := range passThrough {
		router.Handle(name, h.acknowledge)
	}
}

// Reset restarts the sorting_done count.
func (h *Handlers) Reset() {
	h.mu.Lock()
	h.count = 0
	h.mu.Unlock()
}

func (h *Handlers) acknowledge(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	h.Feedback.Enabled(ctx, msg)
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// SortingDone reports sorting as not done for the first SortFor-1 calls
// and done from then on.
func (h *Handlers) SortingDone(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	logger := *h.Logger
	h.Feedback.Enabled(ctx, msg)

	h.mu.Lock()
	h.count++
	count := h.count
	h.mu.Unlock()

	fact := knowledge.NewFact("sorting_done", count < h.SortFor)
	if err := knowledge.AssertFact(ctx, h.Knowledge, fact); err != nil {
		var factErr *knowledge.FactError
		if errors.As(err, &factErr) && factErr.Step == knowledge.StepAssert {
			return dispatch.Fatal(err)
		}
		logger.WithFields(logrus.Fields{"error": err}).Error("could not retract the opposite sorting_done")
	}
	logger.WithFields(logrus.Fields{"count": count, "sort_for": h.SortFor, "done": !fact.IsNegative}).Info("sorting observed")
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// ToyAtRightBox checks every untidied toy near the box closest to the
// robot and records whether it belongs in that box as toy_at_right_box.
func (h *Handlers) ToyAtRightBox(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	logger := *h.Logger
	h.Feedback.Enabled(ctx, msg)

	box, err := h.Locator.ClosestBox(ctx)
	if err != nil {
		return h.fail(ctx, msg, err, "could not find the closest box")
	}
	objects, err := h.Knowledge.Instances(ctx, "object")
	if err != nil {
		return h.fail(ctx, msg, err, "could not list objects")
	}
	tidy, err := h.tidied(ctx)
	if err != nil {
		return h.fail(ctx, msg, err, "could not list tidied objects")
	}

	boxAt := r2.Vec{X: box.Pose.Pose.Position.X, Y: box.Pose.Pose.Position.Y}
	for _, name := range objects {
		if tidy[name] {
			logger.WithFields(logrus.Fields{"object": name}).Debug("already tidied")
			continue
		}
		stored, err := messagestore.QueryLatest(ctx, h.Store, name, sop.TypeOfSceneObject)
		if err != nil {
			return h.fail(ctx, msg, err, "could not fetch object")
		}
		position := stored.(*sop.SceneObject).Pose.Position
		if spatial.SquaredDistance(r2.Vec{X: position.X, Y: position.Y}, boxAt) >= nearBox {
			continue
		}

		belongs, err := knowledge.Holds(ctx, h.Knowledge, knowledge.NewFact("belongs_in", false,
			knowledge.Arg("o", name), knowledge.Arg("b", box.Name)))
		if err != nil {
			return dispatch.Fatal(errors.Wrapf(err, "querying whether %s belongs in %s", name, box.Name))
		}
		if err := knowledge.AssertFact(ctx, h.Knowledge, knowledge.NewFact("toy_at_right_box", !belongs)); err != nil {
			return dispatch.Fatal(err)
		}
		logger.WithFields(logrus.Fields{"object": name, "box": box.Name, "right_box": belongs}).Info("toy observed")
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// tidied returns the objects named by the "o" argument of any tidy fact.
func (h *Handlers) tidied(ctx context.Context) (map[string]bool, error) {
	items, err := h.Knowledge.Attributes(ctx, "tidy")
	if err != nil {
		return nil, err
	}
	tidy := make(map[string]bool)
	for _, item := range items {
		for _, kv := range item.Values {
			if kv.Key == "o" {
				tidy[kv.Value] = true
			}
		}
	}
	return tidy, nil
}

func (h *Handlers) fail(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch, err error, reason string) error {
	logger := *h.Logger
	logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID, "error": err}).Error(reason)
	h.Feedback.Failed(ctx, msg)
	return nil
}
