package ros

import (
	"bytes"
	"time"
)

// MessageType carries the metadata of a ROS message type.
type MessageType interface {
	Text() string
	MD5Sum() string
	Name() string
	NewMessage() Message
}

// Message is a ROS message which knows how to write itself to and read itself from the wire.
type Message interface {
	Type() MessageType
	Serialize(buf *bytes.Buffer) error
	Deserialize(buf *bytes.Reader) error
}

// ServiceType is the interface definition of a ROS Service.
// It contains the MD5 sum and name of the service and its request and response message types.
type ServiceType interface {
	MD5Sum() string
	Name() string
	RequestType() MessageType
	ResponseType() MessageType
	NewService() Service
}

// Service holds a request and a response message.
type Service interface {
	ReqMessage() Message
	ResMessage() Message
}

// MessageEvent describes the delivery of a message to a subscriber callback.
type MessageEvent struct {
	PublisherName    string
	ReceiptTime      time.Time
	ConnectionHeader map[string]string
}
