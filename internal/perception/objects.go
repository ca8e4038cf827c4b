package perception

import (
	"context"
	"sync"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
	sop "github.com/team-rocos/squirrel-rosplan/msgs/squirrel_object_perception_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Objects mirrors perceived scene objects into the knowledge base and the
// message store. Each call stops at the first collaborator failure; earlier
// writes are not rolled back.
type Objects struct {
	knowledge knowledge.Client
	store     messagestore.Store
	logger    *modular.ModuleLogger

	mu      sync.Mutex
	handles map[string]string
}

func NewObjects(kc knowledge.Client, store messagestore.Store, logger *modular.ModuleLogger) *Objects {
	return &Objects{knowledge: kc, store: store, logger: logger, handles: make(map[string]string)}
}

// WaypointFor names the waypoint created for a newly seen object.
func WaypointFor(objectID string) string {
	return "waypoint_" + objectID
}

// Add records a newly seen object at its own waypoint.
func (o *Objects) Add(ctx context.Context, so *sop.SceneObject) error {
	return o.Update(ctx, so, WaypointFor(so.ID))
}

// Update records so at waypoint wp and stores its pose and the object.
func (o *Objects) Update(ctx context.Context, so *sop.SceneObject, wp string) error {
	if err := knowledge.AddInstance(ctx, o.knowledge, "object", so.ID); err != nil {
		return err
	}
	if err := knowledge.AddInstance(ctx, o.knowledge, "waypoint", wp); err != nil {
		return err
	}
	fact := knowledge.NewFact("object_at", false, knowledge.Arg("o", so.ID), knowledge.Arg("wp", wp))
	if err := knowledge.AssertFact(ctx, o.knowledge, fact); err != nil {
		return errors.Wrapf(err, "placing %s at %s", so.ID, wp)
	}

	pose := &geometry_msgs.PoseStamped{Header: so.Header, Pose: so.Pose}
	if err := o.insert(ctx, wp, pose); err != nil {
		return err
	}
	if err := o.insert(ctx, so.ID, so); err != nil {
		return err
	}
	logger := *o.logger
	logger.WithFields(logrus.Fields{"object": so.ID, "waypoint": wp}).Info("object recorded")
	return nil
}

func (o *Objects) insert(ctx context.Context, name string, msg ros.Message) error {
	id, err := o.store.InsertNamed(ctx, name, msg)
	if err != nil {
		return errors.Wrapf(err, "storing %s", name)
	}
	o.mu.Lock()
	o.handles[name] = id
	o.mu.Unlock()
	return nil
}

// Remove withdraws an object that is no longer seen and deletes its stored
// copy. An object stored by another node has no handle here and is only
// withdrawn.
func (o *Objects) Remove(ctx context.Context, so *sop.SceneObject) error {
	if err := knowledge.RemoveInstance(ctx, o.knowledge, "object", so.ID); err != nil {
		return err
	}

	o.mu.Lock()
	id, ok := o.handles[so.ID]
	delete(o.handles, so.ID)
	o.mu.Unlock()
	if !ok {
		logger := *o.logger
		logger.WithFields(logrus.Fields{"object": so.ID}).Warn("no stored copy of removed object")
		return nil
	}
	return errors.Wrapf(o.store.DeleteID(ctx, id), "deleting stored %s", so.ID)
}

// UpdateType files objectID in the box where objects recognised as
// category belong: belongs_in(objectID, box) becomes true for that box and
// false for every other. Nothing changes when no box takes category. A
// failed knowledge query is fatal.
func (o *Objects) UpdateType(ctx context.Context, objectID, category string) error {
	logger := *o.logger
	boxes, err := o.knowledge.Instances(ctx, "box")
	if err != nil {
		logger.WithFields(logrus.Fields{"object": objectID, "error": err}).Error("failed to list boxes")
		return nil
	}

	found := ""
	for _, box := range boxes {
		holds, err := knowledge.Holds(ctx, o.knowledge, belongsIn(category, box, false))
		if err != nil {
			return dispatch.Fatal(errors.Wrapf(err, "querying where %s belongs", category))
		}
		if holds {
			found = box
		}
	}
	if found == "" {
		logger.WithFields(logrus.Fields{"object": objectID, "category": category}).Info("no box for category")
		return nil
	}

	for _, box := range boxes {
		if err := knowledge.AssertFact(ctx, o.knowledge, belongsIn(objectID, box, box != found)); err != nil {
			logger.WithFields(logrus.Fields{"object": objectID, "box": box, "error": err}).Error("failed to update belongs_in")
		}
	}
	logger.WithFields(logrus.Fields{"object": objectID, "category": category, "box": found}).Info("object classified")
	return nil
}

func belongsIn(object, box string, negative bool) kb.KnowledgeItem {
	return knowledge.NewFact("belongs_in", negative, knowledge.Arg("o", object), knowledge.Arg("b", box))
}
