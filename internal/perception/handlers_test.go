package perception

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/internal/spatial"
	"github.com/team-rocos/squirrel-rosplan/internal/testutils"
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
	sop "github.com/team-rocos/squirrel-rosplan/msgs/squirrel_object_perception_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

//
// Collaborator fakes
//
type fakeFinder struct {
	response *sop.FindDynamicObjectsResponse
	err      error
	calls    int
}

func (f *fakeFinder) FindDynamicObjects(ctx context.Context) (*sop.FindDynamicObjectsResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

type fakeLooker struct {
	result *sop.LookForObjectsResult
	err    error
	goals  []*sop.LookForObjectsGoal
}

func (f *fakeLooker) LookForObjects(ctx context.Context, goal *sop.LookForObjectsGoal) (*sop.LookForObjectsResult, error) {
	f.goals = append(f.goals, goal)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRecognizer struct {
	result *sop.RecognizeObjectsResult
	err    error
	goals  []*sop.RecognizeObjectsGoal
}

func (f *fakeRecognizer) RecognizeObjects(ctx context.Context, goal *sop.RecognizeObjectsGoal) (*sop.RecognizeObjectsResult, error) {
	f.goals = append(f.goals, goal)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeArm struct {
	extendErr  error
	retractErr error
	moves      []string
}

func (f *fakeArm) Extend(ctx context.Context) error {
	f.moves = append(f.moves, "extend")
	return f.extendErr
}

func (f *fakeArm) Retract(ctx context.Context) error {
	f.moves = append(f.moves, "retract")
	return f.retractErr
}

type fixture struct {
	handlers   *Handlers
	router     *dispatch.Router
	knowledge  *testutils.KnowledgeBase
	store      *testutils.ObjectStore
	feedback   *testutils.FeedbackRecorder
	transforms *testutils.Transforms
	finder     *fakeFinder
	looker     *fakeLooker
	recognizer *fakeRecognizer
	arm        *fakeArm
}

var stamp = time.Unix(1500000000, 0)

func newFixture() *fixture {
	logger := logging.Discard()
	f := &fixture{
		knowledge:  testutils.NewKnowledgeBase(),
		store:      testutils.NewObjectStore(),
		feedback:   &testutils.FeedbackRecorder{},
		transforms: &testutils.Transforms{},
		finder:     &fakeFinder{response: &sop.FindDynamicObjectsResponse{}},
		looker:     &fakeLooker{result: &sop.LookForObjectsResult{}},
		recognizer: &fakeRecognizer{result: &sop.RecognizeObjectsResult{}},
		arm:        &fakeArm{},
	}
	f.handlers = &Handlers{
		Feedback:   dispatch.Reporter{Sink: f.feedback, Logger: logger},
		Knowledge:  f.knowledge,
		Store:      f.store,
		Objects:    NewObjects(f.knowledge, f.store, logger),
		Finder:     f.finder,
		Looker:     f.looker,
		Recognizer: f.recognizer,
		Arm:        f.arm,
		Locator: &spatial.Locator{
			Transforms: f.transforms,
			Knowledge:  f.knowledge,
			Store:      f.store,
			Logger:     logger,
			MapFrame:   "/map",
			RobotFrame: "/base_link",
			TFTimeout:  time.Second,
		},
		Logger:   logger,
		MapFrame: "/map",
		Now:      func() time.Time { return stamp },
	}
	f.router = dispatch.NewRouter(logger)
	f.handlers.Register(f.router)
	return f
}

func (f *fixture) dispatch(t *testing.T, name string, id int32, params ...string) error {
	t.Helper()
	msg := &rosplan_dispatch_msgs.ActionDispatch{ActionID: id, Name: name}
	for i := 0; i+1 < len(params); i += 2 {
		msg.Parameters = append(msg.Parameters, diagnostic_msgs.KeyValue{Key: params[i], Value: params[i+1]})
	}
	return f.router.Dispatch(context.Background(), msg)
}

func sceneObject(id, category string, x, y float64) sop.SceneObject {
	return sop.SceneObject{
		Header:   std_msgs.Header{FrameID: "/camera", Stamp: stamp.Add(-time.Second)},
		ID:       id,
		Category: category,
		Pose:     geometry_msgs.Pose{Position: geometry_msgs.Point{X: x, Y: y}, Orientation: geometry_msgs.Identity},
	}
}

var (
	achieved = []string{dispatch.StatusEnabled, dispatch.StatusAchieved}
	failed   = []string{dispatch.StatusEnabled, dispatch.StatusFailed}
)

func TestExplore_RecordsAddedObject(t *testing.T) {
	f := newFixture()
	f.finder.response.DynamicObjectsAdded = []sop.SceneObject{sceneObject("toy1", "car", 1, 2)}

	require.NoError(t, f.dispatch(t, ActionExplore, 7, "wp", "wp3"))

	assert.Equal(t, []testutils.Feedback{
		{ActionID: 7, Status: dispatch.StatusEnabled},
		{ActionID: 7, Status: dispatch.StatusAchieved},
	}, f.feedback.Events())
	assert.Equal(t, []string{"toy1"}, f.knowledge.InstancesOf("object"))
	assert.Equal(t, []string{"waypoint_toy1"}, f.knowledge.InstancesOf("waypoint"))
	assert.True(t, f.knowledge.HasFact(knowledge.NewFact("explored", false, knowledge.Arg("wp", "wp3"))))
	assert.False(t, f.knowledge.HasFact(knowledge.NewFact("explored", true, knowledge.Arg("wp", "wp3"))))
	assert.True(t, f.knowledge.HasFact(knowledge.NewFact("object_at", false, knowledge.Arg("o", "toy1"), knowledge.Arg("wp", "waypoint_toy1"))))

	var names []string
	for _, ins := range f.store.Inserts() {
		names = append(names, ins.Name)
	}
	assert.Equal(t, []string{"waypoint_toy1", "toy1"}, names)
	pose := f.store.Inserts()[0].Msg.(*geometry_msgs.PoseStamped)
	assert.Equal(t, 1.0, pose.Pose.Position.X)
}

func TestExplore_UpdatesAndRemoves(t *testing.T) {
	f := newFixture()
	f.finder.response.DynamicObjectsAdded = []sop.SceneObject{sceneObject("toy1", "car", 1, 2)}
	require.NoError(t, f.dispatch(t, ActionExplore, 1, "wp", "wp1"))

	f.finder.response = &sop.FindDynamicObjectsResponse{
		DynamicObjectsUpdated: []sop.SceneObject{sceneObject("toy2", "doll", 3, 3)},
		DynamicObjectsRemoved: []sop.SceneObject{sceneObject("toy1", "car", 1, 2)},
	}
	require.NoError(t, f.dispatch(t, ActionExplore, 2, "wp", "wp2"))

	assert.Equal(t, []string{"toy2"}, f.knowledge.InstancesOf("object"))
	assert.True(t, f.knowledge.HasFact(knowledge.NewFact("object_at", false, knowledge.Arg("o", "toy2"), knowledge.Arg("wp", "wp2"))))
	// toy1 was stored second, after its waypoint pose.
	assert.Equal(t, []string{"doc2"}, f.store.Deletes())
	assert.Equal(t, append(achieved, achieved...), f.feedback.Statuses())
}

func TestExplore_FinderFailureFails(t *testing.T) {
	f := newFixture()
	f.finder.err = errors.New("service unreachable")

	require.NoError(t, f.dispatch(t, ActionExplore, 3, "wp", "wp3"))

	assert.Equal(t, failed, f.feedback.Statuses())
	assert.Empty(t, f.knowledge.Updates(), "explored is not asserted")
}

func TestExplore_BookkeepingFailuresFail(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{"instance rejected", func(f *fixture) {
			f.knowledge.UpdateErr = func(u testutils.Update) error {
				if u.Item.KnowledgeType == kb.KnowledgeItemInstance {
					return errors.New("unknown type")
				}
				return nil
			}
		}},
		{"object_at rejected", func(f *fixture) {
			f.knowledge.UpdateErr = func(u testutils.Update) error {
				if u.Item.AttributeName == "object_at" {
					return errors.New("unknown predicate")
				}
				return nil
			}
		}},
		{"store down", func(f *fixture) {
			f.store.InsertErr = errors.New("store down")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.finder.response.DynamicObjectsAdded = []sop.SceneObject{sceneObject("toy1", "car", 1, 2)}
			tt.setup(f)

			require.NoError(t, f.dispatch(t, ActionExplore, 7, "wp", "wp3"))

			assert.Equal(t, failed, f.feedback.Statuses())
			assert.False(t, f.knowledge.HasFact(knowledge.NewFact("explored", false, knowledge.Arg("wp", "wp3"))))
		})
	}
}

func TestRecognisedObjects_StoreFailureFails(t *testing.T) {
	f := newFixture()
	f.store.Put("cup1_wp", &geometry_msgs.PoseStamped{})
	f.store.InsertErr = errors.New("store down")
	f.recognizer.result = &sop.RecognizeObjectsResult{ObjectsAdded: []sop.SceneObject{sceneObject("anything", "mug", 1, 1)}}
	f.looker.result = &sop.LookForObjectsResult{ObjectsAdded: []sop.SceneObject{sceneObject("cup1", "mug", 1, 1)}}

	require.NoError(t, f.dispatch(t, ActionLookAtObject, 4, "o", "cup1"))
	require.NoError(t, f.dispatch(t, ActionClassifiableFrom, 5, "o", "cup1", "view", "wp1", "from", "wp0"))

	assert.Equal(t, append(failed, failed...), f.feedback.Statuses())
}

func TestExplore_FactFailureFails(t *testing.T) {
	f := newFixture()
	f.knowledge.UpdateErr = func(u testutils.Update) error { return errors.New("kb down") }

	require.NoError(t, f.dispatch(t, ActionExplore, 3, "wp", "wp3"))
	assert.Equal(t, failed, f.feedback.Statuses())
}

func TestLookAtObject_NoStoredWaypoint(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.dispatch(t, ActionLookAtObject, 4, "o", "cup1"))

	assert.Equal(t, failed, f.feedback.Statuses())
	assert.Equal(t, []string{"cup1_wp"}, f.store.Queries())
	assert.Empty(t, f.recognizer.goals)
}

func TestLookAtObject_UsesWizardPose(t *testing.T) {
	f := newFixture()
	stored := &geometry_msgs.PoseStamped{Pose: geometry_msgs.Pose{Position: geometry_msgs.Point{X: 4, Y: 5}, Orientation: geometry_msgs.Identity}}
	f.store.Put("cup1_wp", stored)
	f.recognizer.result = &sop.RecognizeObjectsResult{
		ObjectsAdded: []sop.SceneObject{sceneObject("anything", "mug", 9, 9)},
		UsedWizard:   true,
	}

	require.NoError(t, f.dispatch(t, ActionLookAtObject, 5, "o", "cup1"))

	assert.Equal(t, achieved, f.feedback.Statuses())
	require.Len(t, f.recognizer.goals, 1)
	assert.Equal(t, sop.Explore, f.recognizer.goals[0].LookForObject)
	assert.Equal(t, *stored, f.recognizer.goals[0].LookAtPose)

	inserts := f.store.Inserts()
	require.Len(t, inserts, 2)
	so := inserts[1].Msg.(*sop.SceneObject)
	want := sceneObject("cup1", "cup1", 4, 5)
	want.Header.FrameID = "/map"
	want.Header.Stamp = stamp
	want.BoundingCylinder.Height = wizardCylinderHeight
	if diff := cmp.Diff(&want, so); diff != "" {
		t.Fatalf("unexpected stored object (-want +got):\n%s", diff)
	}
}

func TestLookAtObject_EmptyOrFailedRecognition(t *testing.T) {
	for name, setup := range map[string]func(*fixture){
		"empty":   func(f *fixture) {},
		"aborted": func(f *fixture) { f.recognizer.err = &GoalError{Action: "/recognise", State: ros.GoalAborted} },
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			f.store.Put("cup1_wp", &geometry_msgs.PoseStamped{})
			setup(f)

			require.NoError(t, f.dispatch(t, ActionLookAtObject, 6, "o", "cup1"))
			assert.Equal(t, failed, f.feedback.Statuses())
			assert.Empty(t, f.store.Inserts())
		})
	}
}

func TestExamineObject_RecognisesAtClosestBox(t *testing.T) {
	f := newFixture()
	f.transforms.X, f.transforms.Y = 1, 0
	f.knowledge.AddInstances("box", "box_far", "box_near")
	f.store.Put("box_far_location", &geometry_msgs.PoseStamped{Pose: geometry_msgs.Pose{Position: geometry_msgs.Point{X: 10}}})
	near := &geometry_msgs.PoseStamped{Pose: geometry_msgs.Pose{Position: geometry_msgs.Point{X: 2}}}
	f.store.Put("box_near_location", near)
	f.recognizer.result = &sop.RecognizeObjectsResult{ObjectsAdded: []sop.SceneObject{sceneObject("obj_17", "banana", 2, 0)}}

	require.NoError(t, f.dispatch(t, ActionExamineObject, 8))

	assert.Equal(t, achieved, f.feedback.Statuses())
	require.Len(t, f.recognizer.goals, 1)
	assert.Equal(t, *near, f.recognizer.goals[0].LookAtPose)
	assert.Equal(t, []string{"banana"}, f.knowledge.InstancesOf("object"))
}

func TestExamineObject_LocatorFailures(t *testing.T) {
	for name, setup := range map[string]func(*fixture){
		"no transform": func(f *fixture) {
			f.transforms.Err = errors.New("no transform")
			f.knowledge.AddInstances("box", "box1")
		},
		"no boxes": func(f *fixture) {},
		"unlocated box": func(f *fixture) {
			f.knowledge.AddInstances("box", "box1")
		},
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			setup(f)

			require.NoError(t, f.dispatch(t, ActionExamineObject, 9))
			assert.Equal(t, failed, f.feedback.Statuses())
			assert.Empty(t, f.recognizer.goals)
		})
	}
}

func TestClassifiableFrom_Polarity(t *testing.T) {
	tests := []struct {
		name     string
		result   *sop.LookForObjectsResult
		err      error
		negative bool
		statuses []string
	}{
		{
			name:     "found",
			result:   &sop.LookForObjectsResult{ObjectsUpdated: []sop.SceneObject{sceneObject("toy1", "car", 0, 0)}},
			statuses: achieved,
		},
		{
			name:     "succeeded empty",
			result:   &sop.LookForObjectsResult{},
			negative: true,
			statuses: achieved,
		},
		{
			name:     "aborted",
			err:      &GoalError{Action: "/look", State: ros.GoalAborted},
			negative: true,
			statuses: failed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.looker.result, f.looker.err = tt.result, tt.err

			require.NoError(t, f.dispatch(t, ActionClassifiableFrom, 10, "from", "wp1", "view", "wp2", "o", "toy1"))

			assert.Equal(t, tt.statuses, f.feedback.Statuses())
			require.Len(t, f.looker.goals, 1)
			assert.Equal(t, &sop.LookForObjectsGoal{ID: "toy1", LookForObject: sop.Explore}, f.looker.goals[0])
			fact := knowledge.NewFact("classifiable_from", tt.negative,
				knowledge.Arg("from", "wp1"), knowledge.Arg("view", "wp2"), knowledge.Arg("o", "toy1"))
			assert.True(t, f.knowledge.HasFact(fact))
		})
	}
}

func TestClassifiableFrom_FilesObjectInBox(t *testing.T) {
	f := newFixture()
	f.knowledge.AddInstances("box", "box_a", "box_b")
	f.knowledge.SetFact(belongsIn("car", "box_b", false))
	f.looker.result = &sop.LookForObjectsResult{ObjectsUpdated: []sop.SceneObject{sceneObject("toy1", "car", 0, 0)}}

	require.NoError(t, f.dispatch(t, ActionClassifiableFrom, 11, "view", "wp2", "o", "toy1"))

	assert.Equal(t, achieved, f.feedback.Statuses())
	assert.True(t, f.knowledge.HasFact(belongsIn("toy1", "box_b", false)))
	assert.True(t, f.knowledge.HasFact(belongsIn("toy1", "box_a", true)))
	assert.True(t, f.knowledge.HasFact(knowledge.NewFact("object_at", false, knowledge.Arg("o", "toy1"), knowledge.Arg("wp", "wp2"))))
}

func TestClassifiableFrom_FactFailureIsFatal(t *testing.T) {
	f := newFixture()
	f.knowledge.UpdateErr = func(u testutils.Update) error { return errors.New("kb down") }

	err := f.dispatch(t, ActionClassifiableFrom, 12, "o", "toy1")
	assert.True(t, dispatch.IsFatal(err))
	assert.Equal(t, []string{dispatch.StatusEnabled}, f.feedback.Statuses())
}

func TestExamineObjectInHand(t *testing.T) {
	t.Run("classifies and retracts", func(t *testing.T) {
		f := newFixture()
		f.knowledge.AddInstances("box", "box_a")
		f.knowledge.SetFact(belongsIn("car", "box_a", false))
		f.looker.result = &sop.LookForObjectsResult{ObjectsAdded: []sop.SceneObject{sceneObject("x", "car", 0, 0)}}

		require.NoError(t, f.dispatch(t, ActionExamineObjectInHand, 13, "o", "toy1"))

		assert.Equal(t, achieved, f.feedback.Statuses())
		assert.Equal(t, []string{"extend", "retract"}, f.arm.moves)
		assert.True(t, f.knowledge.HasFact(belongsIn("toy1", "box_a", false)))
		assert.Empty(t, f.store.Inserts(), "objects seen in hand are not stored")
	})

	t.Run("extend fails", func(t *testing.T) {
		f := newFixture()
		f.arm.extendErr = ErrNoJointState

		require.NoError(t, f.dispatch(t, ActionExamineObjectInHand, 14, "o", "toy1"))
		assert.Equal(t, failed, f.feedback.Statuses())
		assert.Empty(t, f.looker.goals)
	})

	t.Run("look fails", func(t *testing.T) {
		f := newFixture()
		f.looker.err = &GoalError{Action: "/look", State: ros.GoalRejected}

		require.NoError(t, f.dispatch(t, ActionExamineObjectInHand, 15, "o", "toy1"))
		assert.Equal(t, failed, f.feedback.Statuses())
		assert.Equal(t, []string{"extend"}, f.arm.moves)
	})

	t.Run("retract fails", func(t *testing.T) {
		f := newFixture()
		f.arm.retractErr = errors.New("stuck")

		require.NoError(t, f.dispatch(t, ActionExamineObjectInHand, 16, "o", "toy1"))
		assert.Equal(t, failed, f.feedback.Statuses())
	})
}

func TestHandlers_MissingParameters(t *testing.T) {
	for _, name := range []string{ActionExplore, ActionClassifiableFrom, ActionLookAtObject, ActionExamineObjectInHand} {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			require.NoError(t, f.dispatch(t, name, 20, "unrelated", "x"))

			assert.Empty(t, f.feedback.Events())
			assert.Zero(t, f.knowledge.Calls())
			assert.Zero(t, f.finder.calls)
			assert.Empty(t, f.looker.goals)
			assert.Empty(t, f.recognizer.goals)
			assert.Empty(t, f.arm.moves)
			assert.Empty(t, f.store.Queries())
		})
	}

	f := newFixture()
	require.NoError(t, f.dispatch(t, ActionExamineObjectInHand, 21, "o", ""))
	assert.Empty(t, f.feedback.Events())
	assert.Empty(t, f.arm.moves)
}

func TestHandlers_NamesAreCaseSensitive(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.dispatch(t, "Explore_Waypoint", 22, "wp", "wp1"))
	assert.Empty(t, f.feedback.Events())
	assert.Equal(t, []string{
		ActionExamineObject,
		ActionExamineObjectInHand,
		ActionExplore,
		ActionLookAtObject,
		ActionClassifiableFrom,
	}, f.router.Names())
}
