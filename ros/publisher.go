package ros

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Publisher sends messages of one type on one topic.
type Publisher interface {
	Publish(msg Message) error
	GetNumSubscribers() (int, error)
	Shutdown()
}

type defaultPublisher struct {
	node    *defaultNode
	topic   string
	msgType MessageType
}

func newDefaultPublisher(node *defaultNode, topic string, msgType MessageType) *defaultPublisher {
	return &defaultPublisher{node: node, topic: topic, msgType: msgType}
}

// Publish frames msg behind a connection header naming its type and sends it on the topic channel.
func (pub *defaultPublisher) Publish(msg Message) error {
	logger := *pub.node.logger

	var buf bytes.Buffer
	headers := []header{
		{"topic", pub.topic},
		{"type", pub.msgType.Name()},
		{"md5sum", pub.msgType.MD5Sum()},
		{"callerid", pub.node.name},
	}
	if err := writeConnectionHeader(headers, &buf); err != nil {
		return errors.Wrap(err, "failed to write publisher header")
	}
	if err := msg.Serialize(&buf); err != nil {
		return errors.Wrapf(err, "failed to serialize message for %s", pub.topic)
	}

	ctx, cancel := context.WithTimeout(pub.node.ctx, pub.node.callTimeout)
	defer cancel()
	if err := pub.node.client.Publish(ctx, pub.topic, buf.Bytes()).Err(); err != nil {
		logger.WithFields(logrus.Fields{"topic": pub.topic, "error": err}).Error("failed to publish")
		return errors.Wrapf(err, "failed to publish on %s", pub.topic)
	}
	logger.WithFields(logrus.Fields{"topic": pub.topic}).Debug("published message")
	return nil
}

// GetNumSubscribers asks the master how many subscriptions the topic has.
func (pub *defaultPublisher) GetNumSubscribers() (int, error) {
	ctx, cancel := context.WithTimeout(pub.node.ctx, pub.node.callTimeout)
	defer cancel()
	counts, err := pub.node.client.PubSubNumSub(ctx, pub.topic).Result()
	if err != nil {
		return 0, err
	}
	return int(counts[pub.topic]), nil
}

func (pub *defaultPublisher) Shutdown() {}
