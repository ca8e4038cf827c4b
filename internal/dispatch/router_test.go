package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

func TestRouter_RoutesByName(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	router := NewRouter(logging.Discard(), WithMetrics(metrics))

	var calls []string
	router.Handle("explore_waypoint", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		calls = append(calls, "explore:"+Params(msg.Parameters).Value("wp"))
		return nil
	})
	router.Handle("look_at_object", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		calls = append(calls, "look")
		return nil
	})

	ctx := context.Background()
	require.NoError(t, router.Dispatch(ctx, &rosplan_dispatch_msgs.ActionDispatch{Name: "explore_waypoint", Parameters: []diagnostic_msgs.KeyValue{{Key: "wp", Value: "wp3"}}}))
	require.NoError(t, router.Dispatch(ctx, &rosplan_dispatch_msgs.ActionDispatch{Name: "Explore_Waypoint"}))
	require.NoError(t, router.Dispatch(ctx, &rosplan_dispatch_msgs.ActionDispatch{Name: "goto_waypoint"}))

	assert.Equal(t, []string{"explore:wp3"}, calls)
	assert.Equal(t, []string{"explore_waypoint", "look_at_object"}, router.Names())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Dispatched.WithLabelValues("explore_waypoint")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Dispatched.WithLabelValues("look_at_object")))
}

func TestRouter_FoldCase(t *testing.T) {
	router := NewRouter(logging.Discard(), FoldCase())
	hits := 0
	router.Handle("observe-Sorting_Done", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		hits++
		return nil
	})
	require.NoError(t, router.Dispatch(context.Background(), &rosplan_dispatch_msgs.ActionDispatch{Name: "OBSERVE-sorting_done"}))
	assert.Equal(t, 1, hits)
}

func TestRouter_FatalErrorsReachHook(t *testing.T) {
	var fatal error
	router := NewRouter(logging.Discard(), OnFatal(func(err error) { fatal = err }))
	boom := errors.New("update refused")
	router.Handle("fails", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		return errors.New("ordinary")
	})
	router.Handle("dies", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		return Fatal(errors.Wrap(boom, "sorting_done"))
	})

	err := router.Dispatch(context.Background(), &rosplan_dispatch_msgs.ActionDispatch{Name: "fails"})
	assert.Error(t, err)
	assert.Nil(t, fatal)

	err = router.Dispatch(context.Background(), &rosplan_dispatch_msgs.ActionDispatch{Name: "dies"})
	assert.True(t, IsFatal(err))
	require.Error(t, fatal)
	assert.Equal(t, boom, errors.Cause(fatal))
	assert.Nil(t, Fatal(nil))
}

func TestParams(t *testing.T) {
	params := Params{{Key: "o", Value: "cup"}, {Key: "view", Value: "v1"}, {Key: "o", Value: "ball"}}
	value, ok := params.Get("o")
	assert.True(t, ok)
	assert.Equal(t, "ball", value)
	assert.Equal(t, "", params.Value("from"))

	assert.NoError(t, params.Require("o", "view"))
	err := params.Require("o", "from", "wp")
	var missing *MissingParamError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "from", missing.Key)
}

func TestRouter_SubscribeAndFeedback(t *testing.T) {
	mr := miniredis.RunT(t)
	node, err := ros.NewNode("dispatcher", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	defer node.Shutdown()

	metrics := NewMetrics(prometheus.NewRegistry())
	feedback, err := NewFeedbackPublisher(node, "/feedback", metrics)
	require.NoError(t, err)
	reporter := Reporter{Sink: feedback, Logger: logging.Discard()}

	router := NewRouter(logging.Discard(), WithMetrics(metrics))
	router.Handle("wave", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error {
		reporter.Enabled(ctx, msg)
		reporter.Achieved(ctx, msg)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err = router.Subscribe(ctx, node, "/dispatch")
	require.NoError(t, err)

	statuses := make(chan *rosplan_dispatch_msgs.ActionFeedback, 4)
	_, err = node.NewSubscriber("/feedback", rosplan_dispatch_msgs.TypeOfActionFeedback, func(msg *rosplan_dispatch_msgs.ActionFeedback) {
		statuses <- msg
	}, ros.Unqueued())
	require.NoError(t, err)
	go node.Spin(ctx)

	pub, err := node.NewPublisher("/dispatch", rosplan_dispatch_msgs.TypeOfActionDispatch)
	require.NoError(t, err)
	require.NoError(t, pub.Publish(&rosplan_dispatch_msgs.ActionDispatch{ActionID: 7, Name: "wave"}))

	for _, want := range []string{StatusEnabled, StatusAchieved} {
		select {
		case got := <-statuses:
			assert.Equal(t, int32(7), got.ActionID)
			assert.Equal(t, want, got.Status)
		case <-time.After(2 * time.Second):
			t.Fatalf("took too long to receive %q", want)
		}
	}
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.Feedback.WithLabelValues(StatusAchieved)) == 1
	}, time.Second, 10*time.Millisecond)
}
