package main

import (
	"github.com/spf13/cobra"
	"github.com/team-rocos/squirrel-rosplan/internal/admin"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/internal/perception"
	"github.com/team-rocos/squirrel-rosplan/internal/spatial"
	"github.com/team-rocos/squirrel-rosplan/tf"
)

var perceptionCmd = &cobra.Command{
	Use:   "perception",
	Short: "Run the perception actions: explore, look at and examine objects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		p, err := start(cmd.Context(), cfg, "squirrel_interface_perception")
		if err != nil {
			return err
		}
		h, cleanup, err := newPerception(p)
		if err != nil {
			p.node.Shutdown()
			return err
		}
		defer cleanup()

		var opts admin.Options
		router := p.router()
		h.Register(router)
		if err := p.subscribe(router, &opts); err != nil {
			p.node.Shutdown()
			return err
		}
		return p.run(opts)
	},
}

// newPerception connects the perception handlers to their collaborators.
func newPerception(p *process) (*perception.Handlers, func(), error) {
	cfg := p.cfg
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*perception.Handlers, func(), error) {
		cleanup()
		return nil, nil, err
	}

	feedback, err := p.feedback()
	if err != nil {
		return fail(err)
	}
	transforms, err := tf.Listen(p.node, cfg.Topics.TF)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, transforms.Shutdown)
	looker, err := perception.NewActionLooker(p.node, cfg.Perception.ActionServer, cfg.Perception.ResultTimeout)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, looker.Shutdown)
	recognizer, err := perception.NewActionRecognizer(p.node, cfg.Perception.RecogniseServer, cfg.Perception.ResultTimeout)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, recognizer.Shutdown)
	arm, err := perception.NewJointArm(p.node, cfg.Topics.JointStates, cfg.Arm)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, arm.Shutdown)

	kc := knowledge.NewServiceClient(p.node, knowledge.ServiceNames{
		Update:     cfg.Services.UpdateKnowledge,
		Instances:  cfg.Services.GetInstances,
		Query:      cfg.Services.QueryKnowledge,
		Attributes: cfg.Services.GetAttributes,
	})
	store := messagestore.NewRedisStore(p.node.Master().Client(), cfg.MessageStore.Prefix, p.logger)

	return &perception.Handlers{
		Feedback:   feedback,
		Knowledge:  kc,
		Store:      store,
		Objects:    perception.NewObjects(kc, store, p.logger),
		Finder:     perception.NewServiceFinder(p.node, cfg.Services.FindDynamicObjects),
		Looker:     looker,
		Recognizer: recognizer,
		Arm:        arm,
		Locator: &spatial.Locator{
			Transforms: transforms,
			Knowledge:  kc,
			Store:      store,
			Logger:     p.logger,
			MapFrame:   cfg.Perception.MapFrame,
			RobotFrame: cfg.Perception.RobotFrame,
			TFTimeout:  cfg.Perception.TFTimeout,
		},
		Logger:   p.logger,
		MapFrame: cfg.Perception.MapFrame,
	}, cleanup, nil
}

func init() {
	perceptionCmd.Flags().String("action-server", "", "look for objects action server")
	perceptionCmd.Flags().String("recognise-server", "", "recognize objects action server")
	rootCmd.AddCommand(perceptionCmd)
}
