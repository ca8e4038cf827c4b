package ros

import (
	"context"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	SimpleStatePending uint8 = 0
	SimpleStateActive  uint8 = 1
	SimpleStateDone    uint8 = 2
)

const actionPollInterval = 100 * time.Millisecond

type simpleActionClient struct {
	node       Node
	action     string
	actionType ActionType
	goalPub    Publisher
	cancelPub  Publisher
	resultSub  Subscriber
	logger     *modular.ModuleLogger

	mu          sync.Mutex
	goalID      string
	simpleState uint8
	status      uint8
	statusText  string
	result      Message
	doneChan    chan struct{}
}

func newSimpleActionClient(node Node, action string, actionType ActionType) (*simpleActionClient, error) {
	sc := &simpleActionClient{
		node:        node,
		action:      action,
		actionType:  actionType,
		simpleState: SimpleStateDone,
		doneChan:    make(chan struct{}, 10),
		logger:      node.Logger(),
	}
	var err error
	if sc.goalPub, err = node.NewPublisher(action+"/goal", newGoalEnvelopeType(actionType)); err != nil {
		return nil, err
	}
	if sc.cancelPub, err = node.NewPublisher(action+"/cancel", typeOfActionCancel); err != nil {
		return nil, err
	}
	sc.resultSub, err = node.NewSubscriber(action+"/result", newResultEnvelopeType(actionType), sc.resultHandler, Unqueued())
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// SendGoal replaces any tracked goal with a new one.
func (sc *simpleActionClient) SendGoal(goal Message) error {
	sc.mu.Lock()
	// Stale notifications belong to the previous goal.
	for len(sc.doneChan) > 0 {
		<-sc.doneChan
	}
	sc.goalID = uuid.NewString()
	sc.result = nil
	sc.status = GoalPending
	sc.statusText = ""
	sc.setSimpleState(SimpleStatePending)
	msg := &actionGoal{
		msgType: newGoalEnvelopeType(sc.actionType),
		GoalID:  sc.goalID,
		Stamp:   time.Now(),
		Goal:    goal,
	}
	sc.mu.Unlock()

	if err := sc.goalPub.Publish(msg); err != nil {
		sc.mu.Lock()
		sc.goalID = ""
		sc.setSimpleState(SimpleStateDone)
		sc.status = GoalLost
		sc.mu.Unlock()
		return errors.Wrapf(err, "sending goal to %s", sc.action)
	}
	return nil
}

// WaitForServer polls the master until the action server is registered.
// A zero timeout waits until ctx is done.
func (sc *simpleActionClient) WaitForServer(ctx context.Context, timeout time.Duration) bool {
	logger := *sc.logger
	deadline := time.Now().Add(timeout)
	for {
		ok, err := sc.node.Master().HasActionServer(ctx, sc.action)
		if err != nil {
			logger.WithFields(logrus.Fields{"action": sc.action, "error": err}).Warn("action server lookup failed")
		}
		if ok {
			return true
		}
		if timeout > 0 && !time.Now().Before(deadline) {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(actionPollInterval):
		}
	}
}

// WaitForResult blocks until the goal is done, the timeout passes or ctx is
// done. It never cancels the goal. A zero timeout waits until ctx is done.
func (sc *simpleActionClient) WaitForResult(ctx context.Context, timeout time.Duration) bool {
	logger := *sc.logger
	sc.mu.Lock()
	tracking := sc.goalID != ""
	sc.mu.Unlock()
	if !tracking {
		logger.Errorf("[SimpleActionClient] Called WaitForResult when no goal exists")
		return false
	}

	waitEnd := time.Now().Add(timeout)

LOOP:
	for {
		select {
		case <-sc.doneChan:
			break LOOP
		case <-ctx.Done():
			break LOOP
		case <-time.After(actionPollInterval):
		}

		if timeout > 0 && !time.Now().Before(waitEnd) {
			break LOOP
		}
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.simpleState == SimpleStateDone
}

func (sc *simpleActionClient) GetResult() (Message, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.goalID == "" {
		return nil, errors.New("called get result when no goal running")
	}
	if sc.result == nil {
		return nil, errors.New("goal has no result yet")
	}
	return sc.result, nil
}

func (sc *simpleActionClient) GetState() (uint8, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.goalID == "" {
		return GoalLost, errors.New("called get state when no goal running")
	}

	status := sc.status
	if status == GoalRecalling {
		status = GoalPending
	} else if status == GoalPreempting {
		status = GoalActive
	}
	return status, nil
}

func (sc *simpleActionClient) GetGoalStatusText() (string, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.goalID == "" {
		return "", errors.New("called GetGoalStatusText when no goal is running")
	}
	return sc.statusText, nil
}

func (sc *simpleActionClient) CancelGoal() error {
	sc.mu.Lock()
	goalID := sc.goalID
	sc.mu.Unlock()
	if goalID == "" {
		return nil
	}
	return sc.cancelPub.Publish(&actionCancel{GoalID: goalID})
}

func (sc *simpleActionClient) StopTrackingGoal() {
	sc.mu.Lock()
	sc.goalID = ""
	sc.mu.Unlock()
}

func (sc *simpleActionClient) Shutdown() {
	sc.resultSub.Shutdown()
	sc.goalPub.Shutdown()
	sc.cancelPub.Shutdown()
}

func (sc *simpleActionClient) resultHandler(msg *actionResult) {
	logger := *sc.logger
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if msg.GoalID != sc.goalID {
		return
	}
	logger.Debugf("[SimpleActionClient] goal %s is %s", msg.GoalID, GoalStatusString(msg.Status))
	sc.status = msg.Status
	sc.statusText = msg.Text

	if !IsTerminalStatus(msg.Status) {
		if sc.simpleState == SimpleStatePending && msg.Status != GoalRecalling {
			sc.setSimpleState(SimpleStateActive)
		}
		return
	}
	if sc.simpleState == SimpleStateDone {
		logger.Errorf("[SimpleActionClient] received DONE twice")
		return
	}
	sc.result = msg.Result
	sc.setSimpleState(SimpleStateDone)
	sc.sendDone()
}

func (sc *simpleActionClient) sendDone() {
	logger := *sc.logger
	select {
	case sc.doneChan <- struct{}{}:
	default:
		logger.Errorf("[SimpleActionClient] Error sending done notification. Channel full.")
	}
}

func (sc *simpleActionClient) setSimpleState(state uint8) {
	logger := *sc.logger
	logger.Debugf("[SimpleActionClient] Transitioning from %d to %d", sc.simpleState, state)
	sc.simpleState = state
}
