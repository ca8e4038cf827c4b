package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 3, cfg.SimObserve.SortFor)
	assert.Equal(t, "/squirrel_look_for_objects_in_hand", cfg.Perception.ActionServer)
	assert.Equal(t, "/squirrel_recognize_objects", cfg.Perception.RecogniseServer)
	assert.Equal(t, 30*time.Second, cfg.Arm.ResultTimeout)
	require.NoError(t, cfg.Validate())
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squirrel.yaml")
	doc := `
log_level: debug
redis:
  addr: redis:6380
perception:
  recognise_server: /sim/recognize
  result_timeout: 45s
  tf_timeout: 0.5
arm:
  extend: [1, 2, 3, 4, 5]
sim_observe:
  sort_for: 5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, "rosmaster", cfg.Redis.MasterPrefix, "untouched keys keep their default")
	assert.Equal(t, "/sim/recognize", cfg.Perception.RecogniseServer)
	assert.Equal(t, "/squirrel_look_for_objects_in_hand", cfg.Perception.ActionServer)
	assert.Equal(t, 45*time.Second, cfg.Perception.ResultTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Perception.TFTimeout)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, cfg.Arm.Extend)
	assert.Equal(t, Default().Arm.Retract, cfg.Arm.Retract)
	assert.Equal(t, 5, cfg.SimObserve.SortFor)
}

func TestLoad_Rejects(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"unknown key":    "not_a_setting: 1\n",
		"bad sort_for":   "sim_observe:\n  sort_for: -1\n",
		"preset lengths": "arm:\n  extend: [1, 2]\n",
		"not yaml":       "redis: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
