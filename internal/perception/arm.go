package perception

import (
	"context"
	"math"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/internal/config"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/squirrel_manipulation_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// ErrNoJointState is returned when the arm is moved before any joint state
// has been received.
var ErrNoJointState = errors.New("no joint state received")

// Arm moves the manipulator between its preset poses.
type Arm interface {
	Extend(ctx context.Context) error
	Retract(ctx context.Context) error
}

// JointArm commands the arm joint by joint through the point-to-point
// action and watches the joint states until it arrives.
type JointArm struct {
	ptp    ros.SimpleActionClient
	sub    ros.Subscriber
	cfg    config.Arm
	logger *modular.ModuleLogger

	mu    sync.Mutex
	state *sensor_msgs.JointState
}

var _ Arm = &JointArm{}

func NewJointArm(node ros.Node, jointStates string, cfg config.Arm) (*JointArm, error) {
	ptp, err := ros.NewSimpleActionClient(node, cfg.PtpServer, squirrel_manipulation_msgs.TypeOfJointPtpAction)
	if err != nil {
		return nil, errors.Wrapf(err, "creating action client for %s", cfg.PtpServer)
	}
	arm := newJointArm(ptp, cfg, node.Logger())
	arm.sub, err = node.NewSubscriber(jointStates, sensor_msgs.TypeOfJointState, arm.SetJointState, ros.Unqueued())
	if err != nil {
		ptp.Shutdown()
		return nil, errors.Wrapf(err, "subscribing to %s", jointStates)
	}
	return arm, nil
}

func newJointArm(ptp ros.SimpleActionClient, cfg config.Arm, logger *modular.ModuleLogger) *JointArm {
	return &JointArm{ptp: ptp, cfg: cfg, logger: logger}
}

// SetJointState records the latest joint state.
func (a *JointArm) SetJointState(msg *sensor_msgs.JointState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = msg
}

func (a *JointArm) jointState() []float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == nil {
		return nil
	}
	return append([]float64(nil), a.state.Position...)
}

func (a *JointArm) Extend(ctx context.Context) error {
	return errors.Wrap(a.moveTo(ctx, "extend", a.cfg.Extend), "extending arm")
}

func (a *JointArm) Retract(ctx context.Context) error {
	return errors.Wrap(a.moveTo(ctx, "retract", a.cfg.Retract), "retracting arm")
}

// Shutdown releases the action client and the joint state subscription.
func (a *JointArm) Shutdown() {
	if a.sub != nil {
		a.sub.Shutdown()
	}
	a.ptp.Shutdown()
}

// target copies the current joint positions and overwrites the arm joints
// with preset.
func (a *JointArm) target(preset []float64) ([]float64, error) {
	joints := a.jointState()
	if joints == nil {
		return nil, ErrNoJointState
	}
	for i, v := range preset {
		j := a.cfg.FirstJoint + i
		if j >= len(joints) {
			break
		}
		joints[j] = v
	}
	return joints, nil
}

func (a *JointArm) moveTo(ctx context.Context, pose string, preset []float64) error {
	logger := *a.logger
	goal, err := a.target(preset)
	if err != nil {
		return err
	}
	msg := &squirrel_manipulation_msgs.JointPtpGoal{Joints: std_msgs.Float64MultiArray{Data: goal}}

	if err := a.ptp.SendGoal(msg); err != nil {
		return errors.Wrap(err, "sending joint goal")
	}
	if !a.ptp.WaitForResult(ctx, a.cfg.ResultTimeout) {
		logger.WithFields(logrus.Fields{"pose": pose}).Warn("joint goal still running, carrying on")
	}
	// The controller sometimes drops the first goal, so it is sent again.
	if err := sleep(ctx, a.cfg.Settle); err != nil {
		return err
	}
	if err := a.ptp.SendGoal(msg); err != nil {
		return errors.Wrap(err, "resending joint goal")
	}
	logger.WithFields(logrus.Fields{"pose": pose}).Info("waiting for arm to arrive")
	return a.waitForJoints(ctx, goal)
}

// waitForJoints polls the joint states until every arm joint is within
// tolerance of goal.
func (a *JointArm) waitForJoints(ctx context.Context, goal []float64) error {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()
	for {
		if a.arrived(goal) {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "waiting for arm")
		case <-ticker.C:
		}
	}
}

func (a *JointArm) arrived(goal []float64) bool {
	state := a.jointState()
	n := len(goal)
	if len(state) < n {
		n = len(state)
	}
	for i := a.cfg.FirstJoint; i < n; i++ {
		if math.Abs(state[i]-goal[i]) > a.cfg.Tolerance {
			return false
		}
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
