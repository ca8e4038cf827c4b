package messagestore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, "", logging.Discard()), mr
}

func pose(x, y float64) *geometry_msgs.PoseStamped {
	return &geometry_msgs.PoseStamped{
		Header: std_msgs.Header{FrameID: "/map"},
		Pose:   geometry_msgs.Pose{Position: geometry_msgs.Point{X: x, Y: y}, Orientation: geometry_msgs.Identity},
	}
}

func TestRedisStore_InsertAndQueryNewestFirst(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	first, err := store.InsertNamed(ctx, "box1_location", pose(1, 1))
	require.NoError(t, err)
	second, err := store.InsertNamed(ctx, "box1_location", pose(2, 2))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, mr.Exists("message_store:doc:"+first))

	results, err := store.QueryNamed(ctx, "box1_location", geometry_msgs.TypeOfPoseStamped)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, pose(2, 2), results[0])
	assert.Equal(t, pose(1, 1), results[1])

	latest, err := QueryLatest(ctx, store, "box1_location", geometry_msgs.TypeOfPoseStamped)
	require.NoError(t, err)
	assert.Equal(t, 2.0, latest.(*geometry_msgs.PoseStamped).Pose.Position.X)
}

func TestRedisStore_QueryIsPerType(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.InsertNamed(ctx, "cup", &std_msgs.String{Data: "not a pose"})
	require.NoError(t, err)

	results, err := store.QueryNamed(ctx, "cup", geometry_msgs.TypeOfPoseStamped)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = QueryLatest(ctx, store, "cup", geometry_msgs.TypeOfPoseStamped)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func TestRedisStore_DeleteID(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	keep, err := store.InsertNamed(ctx, "waypoint_cup", pose(0, 1))
	require.NoError(t, err)
	drop, err := store.InsertNamed(ctx, "waypoint_cup", pose(5, 5))
	require.NoError(t, err)

	require.NoError(t, store.DeleteID(ctx, drop))
	assert.False(t, mr.Exists("message_store:doc:"+drop))

	results, err := store.QueryNamed(ctx, "waypoint_cup", geometry_msgs.TypeOfPoseStamped)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, pose(0, 1), results[0])

	err = store.DeleteID(ctx, drop)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
	assert.NotEmpty(t, keep)
}
