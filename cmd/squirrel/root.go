package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/team-rocos/squirrel-rosplan/internal/config"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var rootCmd = &cobra.Command{
	Use:   "squirrel",
	Short: "Planning action servers for the squirrel robot",
	Long: `squirrel runs the nodes that carry out a task planner's dispatched actions:
the scene database, the perception actions and the simulated observations.`,
	SilenceUsage: true,
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("redis-addr", "", "address of the redis master")
	flags.String("admin-addr", "", "address of the admin HTTP server; empty disables it")
	flags.String("node-name", "", "node name, overriding the command's default")
}

// loadConfig reads the configuration file named by --config and applies
// the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	for flag, dst := range map[string]*string{
		"log-level":        &cfg.LogLevel,
		"redis-addr":       &cfg.Redis.Addr,
		"admin-addr":       &cfg.AdminAddr,
		"node-name":        &cfg.NodeName,
		"action-server":    &cfg.Perception.ActionServer,
		"recognise-server": &cfg.Perception.RecogniseServer,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if cmd.Flags().Changed("sort-for") {
		cfg.SimObserve.SortFor, _ = cmd.Flags().GetInt("sort-for")
	}
	return cfg, cfg.Validate()
}

// sortForParam overrides cfg's sort_for with the node's parameter, unless
// the flag was given.
func sortForParam(cmd *cobra.Command, node ros.Node, cfg *config.Config) error {
	if cmd.Flags().Changed("sort-for") {
		return nil
	}
	value, ok, err := node.GetParam("sort_for")
	if err != nil {
		return errors.Wrap(err, "reading sort_for")
	}
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return errors.Wrapf(err, "parameter sort_for=%q", value)
	}
	cfg.SimObserve.SortFor = n
	return nil
}
