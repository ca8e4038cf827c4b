// Package admin serves the HTTP side door of a squirrel node: health,
// metrics, dispatch injection and a read-only view of the scene registry.
package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/scenedb"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

const maxDispatchBody = 1 << 16

// Options selects what the admin handler exposes. Dispatch and Scene are
// optional; their routes are only mounted when set.
type Options struct {
	Logger   *modular.ModuleLogger
	Gatherer prometheus.Gatherer
	// Healthy reports whether the node is still running.
	Healthy  func() bool
	// Dispatch publishes injected action dispatches.
	Dispatch ros.Publisher
	Scene    *scenedb.Registry
}

type server struct {
	Options
}

// NewHandler builds the admin routes.
func NewHandler(opts Options) http.Handler {
	s := &server{opts}
	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if opts.Dispatch != nil {
		r.Post("/dispatch", s.dispatch)
	}
	if opts.Scene != nil {
		r.Route("/scene", func(r chi.Router) {
			r.Get("/positions", s.positionNames)
			r.Get("/positions/{name}", s.position)
			r.Get("/clouds", s.cloudNames)
			r.Get("/clouds/{name}", s.cloud)
		})
	}
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	if s.Healthy != nil && !s.Healthy() {
		http.Error(w, "node is shut down", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *server) dispatch(w http.ResponseWriter, r *http.Request) {
	logger := *s.Logger
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDispatchBody))
	if err != nil {
		http.Error(w, "could not read body", http.StatusBadRequest)
		return
	}
	msg, err := dispatch.ParseJSON(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.Dispatch.Publish(msg); err != nil {
		logger.WithFields(logrus.Fields{"action": msg.Name, "error": err}).Error("failed to publish injected dispatch")
		http.Error(w, "could not publish dispatch", http.StatusBadGateway)
		return
	}
	logger.WithFields(logrus.Fields{"action": msg.Name, "id": msg.ActionID}).Info("injected dispatch")
	writeJSONStatus(w, http.StatusAccepted, map[string]interface{}{"name": msg.Name, "action_id": msg.ActionID})
}

type positionView struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
}

type cloudView struct {
	Name    string   `json:"name"`
	FrameID string   `json:"frame_id"`
	Width   uint32   `json:"width"`
	Height  uint32   `json:"height"`
	Points  int      `json:"points"`
	Fields  []string `json:"fields"`
	Bytes   int      `json:"bytes"`
	IsDense bool     `json:"is_dense"`
}

func (s *server) positionNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Scene.PositionNames())
}

func (s *server) position(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := s.Scene.LookupPosition(name)
	if !ok {
		http.Error(w, "no position named "+name, http.StatusNotFound)
		return
	}
	writeJSON(w, positionView{Name: name, X: p.X, Y: p.Y, Z: p.Z})
}

func (s *server) cloudNames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Scene.CloudNames())
}

func (s *server) cloud(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	c, ok := s.Scene.LookupPointCloud(name)
	if !ok {
		http.Error(w, "no point cloud named "+name, http.StatusNotFound)
		return
	}
	fields := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		fields[i] = f.Name
	}
	writeJSON(w, cloudView{
		Name:    name,
		FrameID: c.Header.FrameID,
		Width:   c.Width,
		Height:  c.Height,
		Points:  c.Points(),
		Fields:  fields,
		Bytes:   len(c.Data),
		IsDense: c.IsDense,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *modular.ModuleLogger) error {
	srv := &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	l := *logger
	l.WithFields(logrus.Fields{"addr": addr}).Info("admin server listening")

	select {
	case err := <-errc:
		return errors.Wrapf(err, "serving admin on %s", addr)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down admin server")
	}
	return nil
}
