package main

import (
	"github.com/spf13/cobra"
	"github.com/team-rocos/squirrel-rosplan/internal/admin"
	"github.com/team-rocos/squirrel-rosplan/internal/scenedb"
)

var sceneDBCmd = &cobra.Command{
	Use:   "scene-db",
	Short: "Serve the in-memory scene database of point clouds and object positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		p, err := start(cmd.Context(), cfg, "squirrel_scene_db")
		if err != nil {
			return err
		}

		registry := scenedb.NewRegistry()
		server, err := scenedb.Serve(p.node, registry, scenedb.Names{
			AddPointCloud:        cfg.Topics.AddPointCloud,
			RemovePointCloud:     cfg.Topics.RemovePointCloud,
			AddObjectPosition:    cfg.Topics.AddObjectPosition,
			RemoveObjectPosition: cfg.Topics.RemoveObjectPosition,
			GetPointCloud:        cfg.Services.GetPointCloud,
			GetObjectPosition:    cfg.Services.GetObjectPosition,
		})
		if err != nil {
			p.node.Shutdown()
			return err
		}
		defer server.Shutdown()
		return p.run(admin.Options{Scene: registry})
	},
}

func init() {
	rootCmd.AddCommand(sceneDBCmd)
}
