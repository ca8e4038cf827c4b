package ros

import (
	"bytes"
	"context"
	"reflect"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Subscriber receives messages on one topic and hands them to its callbacks.
type Subscriber interface {
	Topic() string
	Shutdown()
}

// SubscriberOption tunes a subscriber at creation.
type SubscriberOption func(*defaultSubscriber)

// Unqueued makes the subscriber run its callback on its own goroutine instead
// of the node's job queue. Use it for state that a blocked callback must still
// observe, such as action results, joint states or transforms. The callback
// must do its own locking.
func Unqueued() SubscriberOption {
	return func(sub *defaultSubscriber) {
		sub.unqueued = true
	}
}

// The subscriber object runs in own goroutine (start).
type defaultSubscriber struct {
	topic        string
	msgType      MessageType
	callback     interface{}
	unqueued     bool
	pubsub       *redis.PubSub
	shutdownChan chan struct{}
	doneChan     chan struct{}
	shutdownOnce sync.Once
}

func newDefaultSubscriber(topic string, msgType MessageType, callback interface{}, opts ...SubscriberOption) *defaultSubscriber {
	sub := new(defaultSubscriber)
	sub.topic = topic
	sub.msgType = msgType
	sub.callback = callback
	sub.shutdownChan = make(chan struct{})
	sub.doneChan = make(chan struct{})
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}

func (sub *defaultSubscriber) Topic() string {
	return sub.topic
}

// start subscribes to the topic channel and waits for the master to confirm
// the subscription, so that anything published afterwards is delivered.
func (sub *defaultSubscriber) start(node *defaultNode) error {
	if err := validateCallback(sub.callback, 2); err != nil {
		return errors.Wrapf(err, "subscriber for %s", sub.topic)
	}
	ctx, cancel := context.WithTimeout(node.ctx, node.callTimeout)
	defer cancel()

	sub.pubsub = node.client.Subscribe(ctx, sub.topic)
	if _, err := sub.pubsub.Receive(ctx); err != nil {
		sub.pubsub.Close()
		return errors.Wrapf(err, "failed to subscribe to %s", sub.topic)
	}

	node.wg.Add(1)
	go sub.run(node)
	return nil
}

func (sub *defaultSubscriber) run(node *defaultNode) {
	defer node.wg.Done()
	defer close(sub.doneChan)
	logger := *node.logger
	logger.Debugf("Subscriber goroutine for %s started.", sub.topic)
	defer func() {
		logger.Debug(sub.topic, " : defaultSubscriber.run exit")
	}()

	ch := sub.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			sub.handle(node, msg)

		case <-sub.shutdownChan:
			logger.Debug(sub.topic, " : Receive shutdownChan")
			if err := sub.pubsub.Close(); err != nil {
				logger.Warn(sub.topic, " : ", err)
			}
			return
		}
	}
}

func (sub *defaultSubscriber) handle(node *defaultNode, msg *redis.Message) {
	logger := *node.logger
	reader := bytes.NewReader([]byte(msg.Payload))
	headers, err := readConnectionHeader(reader)
	if err != nil {
		logger.WithFields(logrus.Fields{"topic": sub.topic, "error": err}).Error("failed to read message header")
		return
	}
	resHeaderMap := headerMap(headers)
	if !sub.compatible(resHeaderMap) {
		logger.WithFields(logrus.Fields{
			"topic":    sub.topic,
			"type":     resHeaderMap["type"],
			"md5sum":   resHeaderMap["md5sum"],
			"expected": sub.msgType.Name(),
		}).Error("publisher provided incompatible message header")
		return
	}

	body := make([]byte, reader.Len())
	reader.Read(body)
	event := MessageEvent{
		PublisherName:    resHeaderMap["callerid"],
		ReceiptTime:      time.Now(),
		ConnectionHeader: resHeaderMap,
	}

	job := func() {
		m := sub.msgType.NewMessage()
		if err := m.Deserialize(bytes.NewReader(body)); err != nil {
			logger.Error(sub.topic, " : ", err)
			return
		}
		args := []reflect.Value{reflect.ValueOf(m), reflect.ValueOf(event)}
		invokeCallback(node.logger, sub.topic, sub.callback, args)
	}

	if sub.unqueued {
		job()
		return
	}
	if node.enqueue(job) {
		logger.Debug(sub.topic, " : Callback job enqueued.")
	} else if node.OK() {
		logger.WithFields(logrus.Fields{"topic": sub.topic, "publisher": event.PublisherName}).Warn("callback queue full, message dropped")
	}
}

func (sub *defaultSubscriber) compatible(h map[string]string) bool {
	if h["type"] != sub.msgType.Name() {
		return false
	}
	md5sum := h["md5sum"]
	return md5sum == "*" || sub.msgType.MD5Sum() == "*" || md5sum == sub.msgType.MD5Sum()
}

func (sub *defaultSubscriber) Shutdown() {
	sub.shutdownOnce.Do(func() {
		close(sub.shutdownChan)
	})
	<-sub.doneChan
}

// validateCallback checks that callback is a function taking at most maxArgs arguments.
func validateCallback(callback interface{}, maxArgs int) error {
	if callback == nil {
		return errors.New("callback is nil")
	}
	fun := reflect.ValueOf(callback)
	if fun.Kind() != reflect.Func {
		return errors.Errorf("callback is a %s, not a function", fun.Kind())
	}
	if fun.Type().NumIn() > maxArgs {
		return errors.Errorf("callback takes %d arguments, at most %d are provided", fun.Type().NumIn(), maxArgs)
	}
	return nil
}

// invokeCallback calls callback with as many of args as it accepts. A
// returned non-nil error is logged.
func invokeCallback(log *modular.ModuleLogger, name string, callback interface{}, args []reflect.Value) []reflect.Value {
	logger := *log
	fun := reflect.ValueOf(callback)
	numArgsNeeded := fun.Type().NumIn()
	if numArgsNeeded > len(args) {
		logger.Errorf("%s : callback expects %d arguments but %d arguments provided", name, numArgsNeeded, len(args))
		return nil
	}
	for i := 0; i < numArgsNeeded; i++ {
		if !args[i].Type().AssignableTo(fun.Type().In(i)) {
			logger.Errorf("%s : callback argument %d wants %s, got %s", name, i, fun.Type().In(i), args[i].Type())
			return nil
		}
	}
	out := fun.Call(args[0:numArgsNeeded])
	for _, v := range out {
		if err, ok := v.Interface().(error); ok && err != nil {
			logger.WithFields(logrus.Fields{"callback": name, "error": err}).Error("callback returned an error")
		}
	}
	return out
}
