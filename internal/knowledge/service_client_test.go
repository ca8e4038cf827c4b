package knowledge_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/internal/testutils"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var names = knowledge.ServiceNames{
	Update:     "/kb/update",
	Instances:  "/kb/instances",
	Query:      "/kb/query",
	Attributes: "/kb/attributes",
}

// serveKnowledgeBase exposes base through the knowledge base services.
func serveKnowledgeBase(t *testing.T, mr *miniredis.Miniredis, base *testutils.KnowledgeBase) {
	t.Helper()
	node, err := ros.NewNode("knowledge_base", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = node.NewServiceServer(names.Update, kb.TypeOfKnowledgeUpdateService, func(srv *kb.KnowledgeUpdateService) {
		err := base.Update(ctx, knowledge.UpdateType(srv.Request.UpdateType), srv.Request.Knowledge)
		srv.Response.Success = err == nil
	})
	require.NoError(t, err)
	_, err = node.NewServiceServer(names.Instances, kb.TypeOfGetInstanceService, func(srv *kb.GetInstanceService) error {
		instances, err := base.Instances(ctx, srv.Request.TypeName)
		srv.Response.Instances = instances
		return err
	})
	require.NoError(t, err)
	_, err = node.NewServiceServer(names.Query, kb.TypeOfKnowledgeQueryService, func(srv *kb.KnowledgeQueryService) error {
		results, err := base.Query(ctx, srv.Request.Knowledge)
		srv.Response.Results = results
		srv.Response.AllTrue = true
		for _, r := range results {
			srv.Response.AllTrue = srv.Response.AllTrue && r
		}
		return err
	})
	require.NoError(t, err)
	_, err = node.NewServiceServer(names.Attributes, kb.TypeOfGetAttributeService, func(srv *kb.GetAttributeService) error {
		items, err := base.Attributes(ctx, srv.Request.PredicateName)
		srv.Response.Attributes = items
		return err
	})
	require.NoError(t, err)

	spinCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		node.Spin(spinCtx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		node.Shutdown()
	})
}

func TestServiceClient_RoundTrips(t *testing.T) {
	mr := miniredis.RunT(t)
	base := testutils.NewKnowledgeBase()
	base.AddInstances("box", "box1", "box2")
	serveKnowledgeBase(t, mr, base)

	node, err := ros.NewNode("handler", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	defer node.Shutdown()
	client := knowledge.NewServiceClient(node, names)
	ctx := context.Background()

	boxes, err := client.Instances(ctx, "box")
	require.NoError(t, err)
	assert.Equal(t, []string{"box1", "box2"}, boxes)

	tidy := knowledge.NewFact("tidy", false, knowledge.Arg("o", "car"))
	require.NoError(t, knowledge.AssertFact(ctx, client, tidy))
	assert.True(t, base.HasFact(tidy))

	results, err := client.Query(ctx, []kb.KnowledgeItem{tidy, knowledge.NewFact("tidy", false, knowledge.Arg("o", "ball"))})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, results)

	attrs, err := client.Attributes(ctx, "tidy")
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	value, _ := knowledge.ArgValue(attrs[0], "o")
	assert.Equal(t, "car", value)
}

func TestServiceClient_RejectedUpdate(t *testing.T) {
	mr := miniredis.RunT(t)
	base := testutils.NewKnowledgeBase()
	base.UpdateErr = func(testutils.Update) error { return errors.New("no such predicate") }
	serveKnowledgeBase(t, mr, base)

	node, err := ros.NewNode("handler", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	defer node.Shutdown()
	client := knowledge.NewServiceClient(node, names)

	err = client.Update(context.Background(), knowledge.Add, knowledge.NewInstance("object", "cup"))
	assert.Equal(t, knowledge.ErrRejected, errors.Cause(err))
}

func TestServiceClient_RefusedRemoveIsNotAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	base := testutils.NewKnowledgeBase()
	base.UpdateErr = func(u testutils.Update) error {
		if u.Type == knowledge.Remove {
			return errors.New("nothing removed")
		}
		return nil
	}
	serveKnowledgeBase(t, mr, base)

	node, err := ros.NewNode("handler", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	defer node.Shutdown()
	client := knowledge.NewServiceClient(node, names)

	fact := knowledge.NewFact("classifiable_from", true, knowledge.Arg("from", "wp0"), knowledge.Arg("view", "wp1"), knowledge.Arg("o", "cup1"))
	require.NoError(t, knowledge.AssertFact(context.Background(), client, fact))
	assert.True(t, base.HasFact(fact))
	assert.Len(t, base.Updates(), 2)
}

func TestServiceClient_MissingService(t *testing.T) {
	mr := miniredis.RunT(t)
	node, err := ros.NewNode("handler", ros.NodeOptions{RedisAddr: mr.Addr(), CallTimeout: time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	defer node.Shutdown()

	_, err = knowledge.NewServiceClient(node, names).Instances(context.Background(), "box")
	assert.Equal(t, ros.ErrServiceNotFound, errors.Cause(err))
}
