package admin

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/internal/scenedb"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

type fakePublisher struct {
	published []ros.Message
	err       error
}

var _ ros.Publisher = &fakePublisher{}

func (p *fakePublisher) Publish(msg ros.Message) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msg)
	return nil
}

func (p *fakePublisher) GetNumSubscribers() (int, error) { return 1, nil }
func (p *fakePublisher) Shutdown()                       {}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := dispatch.NewMetrics(reg)
	router := dispatch.NewRouter(logging.Discard(), dispatch.WithMetrics(metrics))
	router.Handle("jump", func(ctx context.Context, msg *rosplan_dispatch_msgs.ActionDispatch) error { return nil })
	require.NoError(t, router.Dispatch(context.Background(), &rosplan_dispatch_msgs.ActionDispatch{Name: "jump"}))

	healthy := true
	h := NewHandler(Options{Logger: logging.Discard(), Gatherer: reg, Healthy: func() bool { return healthy }})

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `squirrel_dispatch_total{action="jump"} 1`)

	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/healthz", "").Code)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/dispatch", "{}").Code, "dispatch is not mounted without a publisher")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/scene/positions", "").Code)
}

func TestDispatchInjection(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(Options{Logger: logging.Discard(), Dispatch: pub})

	rec := do(t, h, http.MethodPost, "/dispatch", `{"name":"explore_waypoint","action_id":7,"parameters":[{"key":"wp","value":"wp3"}]}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.JSONEq(t, `{"name":"explore_waypoint","action_id":7}`, rec.Body.String())
	require.Len(t, pub.published, 1)
	msg := pub.published[0].(*rosplan_dispatch_msgs.ActionDispatch)
	assert.Equal(t, int32(7), msg.ActionID)
	assert.Equal(t, "wp3", dispatch.Params(msg.Parameters).Value("wp"))

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/dispatch", `{"action_id":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/dispatch", `not json`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/dispatch", "").Code)

	pub.err = errors.New("redis down")
	assert.Equal(t, http.StatusBadGateway, do(t, h, http.MethodPost, "/dispatch", `{"name":"jump"}`).Code)
}

func TestSceneViews(t *testing.T) {
	registry := scenedb.NewRegistry()
	registry.AddPosition("cup1", geometry_msgs.Point{X: 1, Y: 2, Z: 0.5})
	registry.AddPointCloud("cup1", sensor_msgs.PointCloud2{
		Header: std_msgs.Header{FrameID: "/camera"},
		Width:  4,
		Height: 1,
		Fields: []sensor_msgs.PointField{{Name: "x"}, {Name: "y"}, {Name: "z"}},
		Data:   make([]uint8, 48),
	})
	h := NewHandler(Options{Logger: logging.Discard(), Scene: registry})

	rec := do(t, h, http.MethodGet, "/scene/positions/cup1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"cup1","x":1,"y":2,"z":0.5}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/scene/clouds/cup1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"cup1","frame_id":"/camera","width":4,"height":1,"points":4,"fields":["x","y","z"],"bytes":48,"is_dense":false}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/scene/positions", "")
	assert.JSONEq(t, `["cup1"]`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/scene/positions/plate", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/scene/clouds/plate", "").Code)
}

func TestServe_StopsWithContext(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, addr, NewHandler(Options{Logger: logging.Discard()}), logging.Discard()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("admin server did not stop")
	}
}
