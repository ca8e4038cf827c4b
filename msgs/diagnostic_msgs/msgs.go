// Package diagnostic_msgs holds the key/value pair used for action and fact parameters.
package diagnostic_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/ros"
)

var TypeOfKeyValue = ros.NewStaticMessageType("diagnostic_msgs/KeyValue", "cf57fdc6617a881a88c16e768132149c",
	"string key\nstring value",
	func() ros.Message { return new(KeyValue) })

type KeyValue struct {
	Key   string
	Value string
}

func (m *KeyValue) Type() ros.MessageType { return TypeOfKeyValue }

func (m *KeyValue) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Key)
	w.String(m.Value)
	return w.Err()
}

func (m *KeyValue) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Key = r.String()
	m.Value = r.String()
	return r.Err()
}

// WriteKeyValues writes a KeyValue array.
func WriteKeyValues(w *ros.MessageWriter, kvs []KeyValue) {
	w.Len(len(kvs))
	for i := range kvs {
		w.Message(&kvs[i])
	}
}

// ReadKeyValues reads a KeyValue array.
func ReadKeyValues(r *ros.MessageReader) []KeyValue {
	kvs := make([]KeyValue, r.Len())
	for i := range kvs {
		r.Message(&kvs[i])
	}
	return kvs
}
