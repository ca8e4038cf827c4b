// Package config loads the settings shared by every squirrel node.
package config

import (
	"os"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration of a squirrel process. Fields are
// filled from the defaults, then an optional YAML file, then flags.
type Config struct {
	LogLevel    string        `mapstructure:"log_level"`
	NodeName    string        `mapstructure:"node_name"`
	Host        string        `mapstructure:"host"`
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	AdminAddr   string        `mapstructure:"admin_addr"`

	Redis        Redis        `mapstructure:"redis"`
	Topics       Topics       `mapstructure:"topics"`
	Services     Services     `mapstructure:"services"`
	MessageStore MessageStore `mapstructure:"message_store"`
	Perception   Perception   `mapstructure:"perception"`
	Arm          Arm          `mapstructure:"arm"`
	SimObserve   SimObserve   `mapstructure:"sim_observe"`
}

type Redis struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	MasterPrefix string `mapstructure:"master_prefix"`
}

type Topics struct {
	ActionDispatch       string `mapstructure:"action_dispatch"`
	ActionFeedback       string `mapstructure:"action_feedback"`
	TF                   string `mapstructure:"tf"`
	JointStates          string `mapstructure:"joint_states"`
	AddPointCloud        string `mapstructure:"add_point_cloud"`
	RemovePointCloud     string `mapstructure:"remove_point_cloud"`
	AddObjectPosition    string `mapstructure:"add_object_position"`
	RemoveObjectPosition string `mapstructure:"remove_object_position"`
}

type Services struct {
	UpdateKnowledge    string `mapstructure:"update_knowledge"`
	GetInstances       string `mapstructure:"get_instances"`
	QueryKnowledge     string `mapstructure:"query_knowledge"`
	GetAttributes      string `mapstructure:"get_attributes"`
	FindDynamicObjects string `mapstructure:"find_dynamic_objects"`
	GetPointCloud      string `mapstructure:"get_point_cloud"`
	GetObjectPosition  string `mapstructure:"get_object_position"`
}

type MessageStore struct {
	Prefix string `mapstructure:"prefix"`
}

type Perception struct {
	ActionServer    string `mapstructure:"action_server"`
	RecogniseServer string `mapstructure:"recognise_server"`
	// ResultTimeout bounds the wait for a perception result. Zero waits until shutdown.
	ResultTimeout time.Duration `mapstructure:"result_timeout"`
	TFTimeout     time.Duration `mapstructure:"tf_timeout"`
	MapFrame      string        `mapstructure:"map_frame"`
	RobotFrame    string        `mapstructure:"robot_frame"`
}

type Arm struct {
	PtpServer     string        `mapstructure:"ptp_server"`
	ResultTimeout time.Duration `mapstructure:"result_timeout"`
	Settle        time.Duration `mapstructure:"settle"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	Tolerance     float64       `mapstructure:"tolerance"`
	FirstJoint    int           `mapstructure:"first_joint"`
	Extend        []float64     `mapstructure:"extend"`
	Retract       []float64     `mapstructure:"retract"`
}

type SimObserve struct {
	SortFor int `mapstructure:"sort_for"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		LogLevel:    "info",
		Host:        "127.0.0.1",
		CallTimeout: 5 * time.Second,
		Redis: Redis{
			Addr:         "localhost:6379",
			MasterPrefix: "rosmaster",
		},
		Topics: Topics{
			ActionDispatch:       "/kcl_rosplan/action_dispatch",
			ActionFeedback:       "/kcl_rosplan/action_feedback",
			TF:                   "/tf",
			JointStates:          "/real/robotino/joint_control/get_state",
			AddPointCloud:        "/kcl_rosplan/add_point_cloud",
			RemovePointCloud:     "/kcl_rosplan/remove_point_cloud",
			AddObjectPosition:    "/kcl_rosplan/add_object_position",
			RemoveObjectPosition: "/kcl_rosplan/remove_object_position",
		},
		Services: Services{
			UpdateKnowledge:    "/kcl_rosplan/update_knowledge_base",
			GetInstances:       "/kcl_rosplan/get_current_instances",
			QueryKnowledge:     "/kcl_rosplan/query_knowledge_base",
			GetAttributes:      "/kcl_rosplan/get_current_knowledge",
			FindDynamicObjects: "/squirrel_find_dynamic_objects",
			GetPointCloud:      "/kcl_rosplan/get_point_cloud",
			GetObjectPosition:  "/kcl_rosplan/get_object_position",
		},
		MessageStore: MessageStore{
			Prefix: "message_store",
		},
		Perception: Perception{
			ActionServer:    "/squirrel_look_for_objects_in_hand",
			RecogniseServer: "/squirrel_recognize_objects",
			TFTimeout:       time.Second,
			MapFrame:        "/map",
			RobotFrame:      "/base_link",
		},
		Arm: Arm{
			PtpServer:     "/joint_ptp",
			ResultTimeout: 30 * time.Second,
			Settle:        time.Second,
			PollInterval:  time.Second,
			Tolerance:     0.05,
			FirstJoint:    3,
			Extend:        []float64{1.5, 0.86, 0, -1.6, -1.8},
			Retract:       []float64{0.7, 1.6, 0, -1.7, -1.8},
		},
		SimObserve: SimObserve{
			SortFor: 3,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, if any.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, cfg.Validate()
}

// Decode overlays the YAML document in data onto cfg. Keys absent from the
// document leave cfg untouched; lists replace the current value.
func Decode(data []byte, cfg *Config) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			secondsToDurationHook,
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// secondsToDurationHook lets durations be written as plain numbers of seconds.
func secondsToDurationHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	}
	return data, nil
}

// Validate rejects settings no node can run with.
func (c Config) Validate() error {
	if c.CallTimeout <= 0 {
		return errors.New("call_timeout must be positive")
	}
	if c.SimObserve.SortFor < 0 {
		return errors.Errorf("sort_for must not be negative, got %d", c.SimObserve.SortFor)
	}
	if c.Arm.Tolerance <= 0 {
		return errors.Errorf("arm tolerance must be positive, got %g", c.Arm.Tolerance)
	}
	if c.Arm.FirstJoint < 0 {
		return errors.Errorf("arm first_joint must not be negative, got %d", c.Arm.FirstJoint)
	}
	if len(c.Arm.Extend) != len(c.Arm.Retract) {
		return errors.Errorf("arm extend and retract presets differ in length (%d != %d)", len(c.Arm.Extend), len(c.Arm.Retract))
	}
	if c.Perception.ResultTimeout < 0 || c.Arm.ResultTimeout < 0 {
		return errors.New("result timeouts must not be negative")
	}
	return nil
}
