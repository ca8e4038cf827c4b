package ros

import (
	"context"
	"reflect"
	"sync"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// simpleActionServer executes one goal at a time on its own goroutine.
// A goal arriving while another runs requests preemption of the current one.
type simpleActionServer struct {
	node       Node
	action     string
	actionType ActionType
	executeCb  interface{}
	logger     *modular.ModuleLogger

	resultPub Publisher
	goalSub   Subscriber
	cancelSub Subscriber

	goalMutex      sync.Mutex
	currentGoal    *actionGoal
	terminal       bool
	preemptRequest bool

	executorCh chan *actionGoal
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	started    bool
}

func newSimpleActionServer(node Node, action string, actionType ActionType, executeCb interface{}) *simpleActionServer {
	return &simpleActionServer{
		node:       node,
		action:     action,
		actionType: actionType,
		executeCb:  executeCb,
		logger:     node.Logger(),
		executorCh: make(chan *actionGoal, 100),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start subscribes to goals and cancels and registers the server with the master.
func (s *simpleActionServer) Start() error {
	if err := validateCallback(s.executeCb, 1); err != nil {
		return errors.Wrapf(err, "action server for %s", s.action)
	}
	var err error
	if s.resultPub, err = s.node.NewPublisher(s.action+"/result", newResultEnvelopeType(s.actionType)); err != nil {
		return err
	}
	if s.goalSub, err = s.node.NewSubscriber(s.action+"/goal", newGoalEnvelopeType(s.actionType), s.internalGoalCallback, Unqueued()); err != nil {
		return err
	}
	if s.cancelSub, err = s.node.NewSubscriber(s.action+"/cancel", typeOfActionCancel, s.internalPreemptCallback, Unqueued()); err != nil {
		s.goalSub.Shutdown()
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultCallTimeout)
	defer cancel()
	if err := s.node.Master().RegisterActionServer(ctx, s.action, s.node.Name()); err != nil {
		s.goalSub.Shutdown()
		s.cancelSub.Shutdown()
		return err
	}
	s.started = true
	go s.goalExecutor()
	return nil
}

func (s *simpleActionServer) internalGoalCallback(goal *actionGoal) {
	logger := *s.logger
	s.goalMutex.Lock()
	if s.currentGoal != nil && !s.terminal {
		s.preemptRequest = true
	}
	s.goalMutex.Unlock()

	select {
	case s.executorCh <- goal:
		logger.WithFields(logrus.Fields{"action": s.action, "goal": goal.GoalID}).Debug("goal queued")
	default:
		logger.WithFields(logrus.Fields{"action": s.action, "goal": goal.GoalID}).Warn("goal queue full, rejecting goal")
		s.publishResult(goal.GoalID, GoalRejected, "goal queue full", nil)
	}
}

func (s *simpleActionServer) internalPreemptCallback(cancel *actionCancel) {
	s.goalMutex.Lock()
	defer s.goalMutex.Unlock()
	if s.currentGoal == nil || s.terminal {
		return
	}
	if cancel.GoalID == "" || cancel.GoalID == s.currentGoal.GoalID {
		s.preemptRequest = true
	}
}

func (s *simpleActionServer) goalExecutor() {
	defer close(s.done)
	logger := *s.logger
	for {
		var goal *actionGoal
		select {
		case goal = <-s.executorCh:
		case <-s.quit:
			return
		}

		s.goalMutex.Lock()
		s.currentGoal = goal
		s.terminal = false
		s.preemptRequest = len(s.executorCh) > 0
		s.goalMutex.Unlock()

		s.publishResult(goal.GoalID, GoalActive, "This goal has been accepted by the simple action server", nil)
		invokeCallback(s.logger, s.action, s.executeCb, []reflect.Value{reflect.ValueOf(goal.Goal)})

		s.goalMutex.Lock()
		terminal := s.terminal
		s.goalMutex.Unlock()
		if !terminal {
			logger.Warnf("[SimpleActionServer] %s : execute callback did not set a terminal status, aborting goal", s.action)
			s.SetAborted(nil, "This goal was aborted by the simple action server. The user should have set a terminal status on this goal and did not")
		}
	}
}

// IsPreemptRequested reports whether the running goal was cancelled or superseded.
func (s *simpleActionServer) IsPreemptRequested() bool {
	s.goalMutex.Lock()
	defer s.goalMutex.Unlock()
	return s.preemptRequest
}

func (s *simpleActionServer) SetSucceeded(result Message, text string) error {
	return s.setTerminal(GoalSucceeded, result, text)
}

func (s *simpleActionServer) SetAborted(result Message, text string) error {
	return s.setTerminal(GoalAborted, result, text)
}

func (s *simpleActionServer) SetPreempted(result Message, text string) error {
	return s.setTerminal(GoalPreempted, result, text)
}

func (s *simpleActionServer) setTerminal(status uint8, result Message, text string) error {
	s.goalMutex.Lock()
	if s.currentGoal == nil {
		s.goalMutex.Unlock()
		return errors.New("no goal is being executed")
	}
	if s.terminal {
		s.goalMutex.Unlock()
		return errors.Errorf("goal %s already has a terminal status", s.currentGoal.GoalID)
	}
	s.terminal = true
	goalID := s.currentGoal.GoalID
	s.goalMutex.Unlock()

	return s.publishResult(goalID, status, text, result)
}

func (s *simpleActionServer) publishResult(goalID string, status uint8, text string, result Message) error {
	if result == nil {
		result = s.actionType.ResultType().NewMessage()
	}
	msg := &actionResult{
		msgType: newResultEnvelopeType(s.actionType),
		GoalID:  goalID,
		Status:  status,
		Text:    text,
		Result:  result,
	}
	return s.resultPub.Publish(msg)
}

// Shutdown unregisters the server and stops the executor once the running goal returns.
func (s *simpleActionServer) Shutdown() {
	s.stopOnce.Do(func() {
		if !s.started {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), defaultCallTimeout)
		defer cancel()
		if err := s.node.Master().UnregisterActionServer(ctx, s.action); err != nil {
			logger := *s.logger
			logger.Warn(s.action, " : ", err)
		}
		s.goalSub.Shutdown()
		s.cancelSub.Shutdown()
		close(s.quit)
		<-s.done
	})
}
