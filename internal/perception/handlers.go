package perception

import (
	"context"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/internal/spatial"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	sop "github.com/team-rocos/squirrel-rosplan/msgs/squirrel_object_perception_msgs"
)

// Action names handled by the perception node. Matching is case-sensitive.
const (
	ActionExplore             = "explore_waypoint"
	ActionClassifiableFrom    = "observe-classifiable_from"
	ActionLookAtObject        = "look_at_object"
	ActionExamineObject       = "examine_object"
	ActionExamineObjectInHand = "examine_object_in_hand"
)

// wizardCylinderHeight is the object height assumed when the recognizer
// fell back to a human operator.
const wizardCylinderHeight = 0.2

// Handlers holds the collaborators of the perception actions.
type Handlers struct {
	Feedback   dispatch.Reporter
	Knowledge  knowledge.Client
	Store      messagestore.Store
	Objects    *Objects
	Finder     DynamicObjectFinder
	Looker     ObjectLooker
	Recognizer Recognizer
	Arm        Arm
	Locator    *spatial.Locator
	Logger     *modular.ModuleLogger

	// MapFrame is stamped on objects placed from a stored waypoint.
	MapFrame string
	// Now stamps those objects; time.Now when nil.
	Now      func() time.Time
}

// Register installs every perception action on router.
func (h *Handlers) Register(router *dispatch.Router) {
	router.Handle(ActionExplore, h.Explore)
	router.Handle(ActionClassifiableFrom, h.ClassifiableFrom)
	router.Handle(ActionLookAtObject, h.LookAtObject)
	router.Handle(ActionExamineObject, h.ExamineObject)
	router.Handle(ActionExamineObjectInHand, h.ExamineObjectInHand)
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// params reads the required keys of msg. On a missing key the dispatch is
// logged and dropped without feedback.
func (h *Handlers) params(msg *rosplan_dispatch_msgs.ActionDispatch, keys ...string) (dispatch.Params, bool) {
	params := dispatch.Params(msg.Parameters)
	if err := params.Require(keys...); err != nil {
		logger := *h.Logger
		logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID, "error": err}).Info("aborting action dispatch; malformed parameters")
		return nil, false
	}
	return params, true
}

func (h *Handlers) fail(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch, err error, reason string) error {
	logger := *h.Logger
	logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID, "error": err}).Error(reason)
	h.Feedback.Failed(ctx, msg)
	return nil
}

// Explore records what changed in the scene around waypoint wp and marks
// wp explored.
func (h *Handlers) Explore(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	params, ok := h.params(msg, "wp")
	if !ok {
		return nil
	}
	wp := params.Value("wp")
	logger := *h.Logger
	h.Feedback.Enabled(ctx, msg)

	found, err := h.Finder.FindDynamicObjects(ctx)
	if err != nil {
		return h.fail(ctx, msg, err, "could not call dynamic object finder")
	}
	for i := range found.DynamicObjectsAdded {
		if err := h.Objects.Add(ctx, &found.DynamicObjectsAdded[i]); err != nil {
			return h.fail(ctx, msg, err, "could not record added object")
		}
	}
	for i := range found.DynamicObjectsUpdated {
		if err := h.Objects.Update(ctx, &found.DynamicObjectsUpdated[i], wp); err != nil {
			return h.fail(ctx, msg, err, "could not record updated object")
		}
	}
	for i := range found.DynamicObjectsRemoved {
		if err := h.Objects.Remove(ctx, &found.DynamicObjectsRemoved[i]); err != nil {
			return h.fail(ctx, msg, err, "could not withdraw removed object")
		}
	}
	logger.WithFields(logrus.Fields{
		"waypoint": wp,
		"added":    len(found.DynamicObjectsAdded),
		"updated":  len(found.DynamicObjectsUpdated),
		"removed":  len(found.DynamicObjectsRemoved),
	}).Info("scene explored")

	explored := knowledge.NewFact("explored", false, knowledge.Arg("wp", wp))
	if err := knowledge.AssertFact(ctx, h.Knowledge, explored); err != nil {
		return h.fail(ctx, msg, err, "could not mark waypoint explored")
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// classify files the first added and first updated objects by category.
func (h *Handlers) classify(ctx context.Context, objectID string, added, updated []sop.SceneObject) error {
	if len(added) > 0 {
		if err := h.Objects.UpdateType(ctx, objectID, added[0].Category); err != nil {
			return err
		}
	}
	if len(updated) > 0 {
		if err := h.Objects.UpdateType(ctx, objectID, updated[0].Category); err != nil {
			return err
		}
	}
	return nil
}

// lookFor runs the look for objects action on objectID. found reports a
// succeeded goal that returned at least one object.
func (h *Handlers) lookFor(ctx context.Context, objectID string) (result *sop.LookForObjectsResult, found bool, err error) {
	result, err = h.Looker.LookForObjects(ctx, &sop.LookForObjectsGoal{ID: objectID, LookForObject: sop.Explore})
	if err != nil {
		return nil, false, err
	}
	return result, len(result.ObjectsAdded)+len(result.ObjectsUpdated) > 0, nil
}

// ClassifiableFrom checks whether object o can be classified from waypoint
// view and records the answer as classifiable_from(from, view, o).
func (h *Handlers) ClassifiableFrom(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	params, ok := h.params(msg, "o")
	if !ok {
		return nil
	}
	objectID, view, from := params.Value("o"), params.Value("view"), params.Value("from")
	logger := *h.Logger
	h.Feedback.Enabled(ctx, msg)

	result, found, lookErr := h.lookFor(ctx, objectID)
	logger.WithFields(logrus.Fields{"object": objectID, "found": found, "error": lookErr}).Info("classification check finished")

	fact := knowledge.NewFact("classifiable_from", !found,
		knowledge.Arg("from", from), knowledge.Arg("view", view), knowledge.Arg("o", objectID))
	if err := knowledge.AssertFact(ctx, h.Knowledge, fact); err != nil {
		return dispatch.Fatal(errors.Wrapf(err, "recording whether %s is classifiable", objectID))
	}

	if found {
		if err := h.classify(ctx, objectID, result.ObjectsAdded, result.ObjectsUpdated); err != nil {
			return err
		}
		for i := range result.ObjectsAdded {
			if err := h.Objects.Add(ctx, &result.ObjectsAdded[i]); err != nil {
				return h.fail(ctx, msg, err, "could not record classified object")
			}
		}
		for i := range result.ObjectsUpdated {
			if err := h.Objects.Update(ctx, &result.ObjectsUpdated[i], view); err != nil {
				return h.fail(ctx, msg, err, "could not record classified object")
			}
		}
	} else if lookErr != nil {
		return h.fail(ctx, msg, lookErr, "classification check failed")
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// recognizeAt runs the recognizer at pose and insists on at least one
// object in the result.
func (h *Handlers) recognizeAt(ctx context.Context, pose geometry_msgs.PoseStamped) (*sop.RecognizeObjectsResult, error) {
	result, err := h.Recognizer.RecognizeObjects(ctx, &sop.RecognizeObjectsGoal{LookForObject: sop.Explore, LookAtPose: pose})
	if err != nil {
		return nil, err
	}
	if len(result.ObjectsAdded)+len(result.ObjectsUpdated) == 0 {
		return nil, errors.New("no objects returned")
	}
	logger := *h.Logger
	logger.WithFields(logrus.Fields{"added": len(result.ObjectsAdded), "updated": len(result.ObjectsUpdated)}).Info("objects recognised")
	return result, nil
}

// LookAtObject recognises object o at its stored waypoint "<o>_wp".
func (h *Handlers) LookAtObject(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	params, ok := h.params(msg, "o")
	if !ok {
		return nil
	}
	objectID := params.Value("o")
	h.Feedback.Enabled(ctx, msg)

	stored, err := messagestore.QueryLatest(ctx, h.Store, objectID+"_wp", geometry_msgs.TypeOfPoseStamped)
	if err != nil {
		return h.fail(ctx, msg, err, "could not fetch object waypoint")
	}
	objectWP := stored.(*geometry_msgs.PoseStamped)

	result, err := h.recognizeAt(ctx, *objectWP)
	if err != nil {
		return h.fail(ctx, msg, err, "recognition failed")
	}
	for i := range result.ObjectsAdded {
		so := result.ObjectsAdded[i]
		if result.UsedWizard {
			so.Pose = objectWP.Pose
			so.BoundingCylinder.Height = wizardCylinderHeight
		}
		so.Header.FrameID = h.MapFrame
		so.Header.Stamp = h.now()
		so.ID = objectID
		so.Category = objectID
		if err := h.Objects.Add(ctx, &so); err != nil {
			return h.fail(ctx, msg, err, "could not record recognised object")
		}
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// ExamineObject recognises the objects in the box closest to the robot.
func (h *Handlers) ExamineObject(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	h.Feedback.Enabled(ctx, msg)

	box, err := h.Locator.ClosestBox(ctx)
	if err != nil {
		return h.fail(ctx, msg, err, "could not find the closest box")
	}
	result, err := h.recognizeAt(ctx, box.Pose)
	if err != nil {
		return h.fail(ctx, msg, err, "recognition failed")
	}
	for i := range result.ObjectsAdded {
		so := result.ObjectsAdded[i]
		so.ID = so.Category
		if err := h.Objects.Add(ctx, &so); err != nil {
			return h.fail(ctx, msg, err, "could not record recognised object")
		}
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}

// ExamineObjectInHand holds object o up to the camera, classifies it and
// puts the arm back.
func (h *Handlers) ExamineObjectInHand(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
	params, ok := h.params(msg, "o")
	if !ok {
		return nil
	}
	objectID := params.Value("o")
	if objectID == "" {
		logger := *h.Logger
		logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID}).Info("aborting action dispatch; empty object")
		return nil
	}
	h.Feedback.Enabled(ctx, msg)

	if err := h.Arm.Extend(ctx); err != nil {
		return h.fail(ctx, msg, err, "could not extend the arm")
	}

	result, found, err := h.lookFor(ctx, objectID)
	if found {
		if err := h.classify(ctx, objectID, result.ObjectsAdded, result.ObjectsUpdated); err != nil {
			return err
		}
	} else if err != nil {
		return h.fail(ctx, msg, err, "examining object in hand failed")
	}

	if err := h.Arm.Retract(ctx); err != nil {
		return h.fail(ctx, msg, err, "could not retract the arm")
	}
	h.Feedback.Achieved(ctx, msg)
	return nil
}
