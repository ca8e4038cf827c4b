package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/team-rocos/squirrel-rosplan/internal/admin"
	"github.com/team-rocos/squirrel-rosplan/internal/dispatch"
	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/internal/simobserve"
	"github.com/team-rocos/squirrel-rosplan/internal/spatial"
	"github.com/team-rocos/squirrel-rosplan/tf"
)

var simObserveCmd = &cobra.Command{
	Use:   "simulated-observe",
	Short: "Answer observation actions without a robot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		p, err := start(cmd.Context(), cfg, "squirrel_simulated_observe")
		if err != nil {
			return err
		}
		defer p.node.Shutdown()
		if err := sortForParam(cmd, p.node, &cfg); err != nil {
			return err
		}

		feedback, err := p.feedback()
		if err != nil {
			return err
		}
		transforms, err := tf.Listen(p.node, cfg.Topics.TF)
		if err != nil {
			return err
		}
		defer transforms.Shutdown()

		kc := knowledge.NewServiceClient(p.node, knowledge.ServiceNames{
			Update:     cfg.Services.UpdateKnowledge,
			Instances:  cfg.Services.GetInstances,
			Query:      cfg.Services.QueryKnowledge,
			Attributes: cfg.Services.GetAttributes,
		})
		store := messagestore.NewRedisStore(p.node.Master().Client(), cfg.MessageStore.Prefix, p.logger)
		h := &simobserve.Handlers{
			Feedback:  feedback,
			Knowledge: kc,
			Store:     store,
			Locator: &spatial.Locator{
				Transforms: transforms,
				Knowledge:  kc,
				Store:      store,
				Logger:     p.logger,
				MapFrame:   cfg.Perception.MapFrame,
				RobotFrame: cfg.Perception.RobotFrame,
				TFTimeout:  cfg.Perception.TFTimeout,
			},
			Logger:  p.logger,
			SortFor: cfg.SimObserve.SortFor,
		}
		logger := *p.logger
		logger.WithFields(logrus.Fields{"sort_for": h.SortFor}).Info("simulated observations ready")

		var opts admin.Options
		router := p.router(dispatch.FoldCase())
		h.Register(router)
		if err := p.subscribe(router, &opts); err != nil {
			return err
		}
		return p.run(opts)
	},
}

func init() {
	simObserveCmd.Flags().Int("sort-for", 0, "number of sorting_done observations before sorting is done")
	rootCmd.AddCommand(simObserveCmd)
}
