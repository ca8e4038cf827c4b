package dispatch

import (
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
)

// MissingParamError names a required parameter absent from a dispatch.
type MissingParamError struct {
	Key string
}

func (e *MissingParamError) Error() string {
	return "missing parameter " + e.Key
}

// Params is the parameter list of a dispatch.
type Params []diagnostic_msgs.KeyValue

// Get returns the value of key. When a key repeats, the last one wins.
func (p Params) Get(key string) (string, bool) {
	value, found := "", false
	for _, kv := range p {
		if kv.Key == key {
			value, found = kv.Value, true
		}
	}
	return value, found
}

// Value returns the value of key, or "" when absent.
func (p Params) Value(key string) string {
	value, _ := p.Get(key)
	return value
}

// Require reports the first of keys that is absent.
func (p Params) Require(keys ...string) error {
	for _, key := range keys {
		if _, ok := p.Get(key); !ok {
			return &MissingParamError{Key: key}
		}
	}
	return nil
}
