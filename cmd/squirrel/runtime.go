package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/admin"
	"github.com/team-rocos/squirrel-rosplan/internal/config"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/logging"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
	"golang.org/x/sync/errgroup"
)

// process is one running squirrel node with its ambient services.
type process struct {
	cfg      config.Config
	logger   *modular.ModuleLogger
	node     ros.Node
	registry *prometheus.Registry
	metrics  *dispatch.Metrics

	ctx    context.Context
	cancel context.CancelCauseFunc
	stop   context.CancelFunc
}

// start connects a node named after cfg, or defaultName when cfg has none.
// The process context ends on SIGINT, SIGTERM or a fatal handler error.
func start(parent context.Context, cfg config.Config, defaultName string) (*process, error) {
	logger, err := logging.New(cfg.LogLevel, nil)
	if err != nil {
		return nil, err
	}
	name := cfg.NodeName
	if name == "" {
		name = defaultName
	}
	node, err := ros.NewNode(name, ros.NodeOptions{
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		MasterPrefix:  cfg.Redis.MasterPrefix,
		Host:          cfg.Host,
		CallTimeout:   cfg.CallTimeout,
		Logger:        logger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "starting node %s", name)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	p := &process{
		cfg:      cfg,
		logger:   logger,
		node:     node,
		registry: registry,
		metrics:  dispatch.NewMetrics(registry),
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	p.ctx, p.cancel = context.WithCancelCause(ctx)
	p.stop = stop
	return p, nil
}

// router returns a dispatch router whose fatal errors end the process.
func (p *process) router(opts ...dispatch.RouterOption) *dispatch.Router {
	opts = append(opts, dispatch.WithMetrics(p.metrics), dispatch.OnFatal(func(err error) {
		p.cancel(err)
	}))
	return dispatch.NewRouter(p.logger, opts...)
}

// feedback advertises the action feedback topic.
func (p *process) feedback() (dispatch.Reporter, error) {
	pub, err := dispatch.NewFeedbackPublisher(p.node, p.cfg.Topics.ActionFeedback, p.metrics)
	if err != nil {
		return dispatch.Reporter{}, err
	}
	return dispatch.Reporter{Sink: pub, Logger: p.logger}, nil
}

// subscribe feeds the dispatch topic into router and lets the admin server
// inject dispatches on the same topic.
func (p *process) subscribe(router *dispatch.Router, opts *admin.Options) error {
	if _, err := router.Subscribe(p.ctx, p.node, p.cfg.Topics.ActionDispatch); err != nil {
		return err
	}
	pub, err := p.node.NewPublisher(p.cfg.Topics.ActionDispatch, rosplan_dispatch_msgs.TypeOfActionDispatch)
	if err != nil {
		return errors.Wrapf(err, "advertising %s", p.cfg.Topics.ActionDispatch)
	}
	opts.Dispatch = pub
	return nil
}

// run spins the node and serves the admin handler until the process
// context ends. A fatal handler error is returned.
func (p *process) run(opts admin.Options) error {
	defer p.stop()
	defer p.node.Shutdown()
	logger := *p.logger

	opts.Logger = p.logger
	opts.Gatherer = p.registry
	opts.Healthy = p.node.OK

	g, ctx := errgroup.WithContext(p.ctx)
	spinning, spun := context.WithCancel(ctx)
	g.Go(func() error {
		defer spun()
		return p.node.Spin(ctx)
	})
	if p.cfg.AdminAddr != "" {
		g.Go(func() error {
			return admin.Serve(spinning, p.cfg.AdminAddr, admin.NewHandler(opts), p.logger)
		})
	}
	logger.WithFields(logrus.Fields{"node": p.node.Name()}).Info("node running")

	if err := g.Wait(); err != nil {
		return err
	}
	if cause := context.Cause(p.ctx); dispatch.IsFatal(cause) {
		return cause
	}
	logger.WithFields(logrus.Fields{"node": p.node.Name()}).Info("node stopped")
	return nil
}
