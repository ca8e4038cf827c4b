package dispatch

import (
	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/rosplan_dispatch_msgs"
)

// ParseJSON decodes a dispatch written as
// {"name": ..., "action_id": ..., "parameters": [{"key": ..., "value": ...}]}.
// duration and dispatch_time are optional numbers.
func ParseJSON(data []byte) (*rosplan_dispatch_msgs.ActionDispatch, error) {
	msg := &rosplan_dispatch_msgs.ActionDispatch{}

	name, err := jsonparser.GetString(data, "name")
	if err != nil {
		return nil, errors.Wrap(err, "reading name")
	}
	if name == "" {
		return nil, errors.New("empty action name")
	}
	msg.Name = name

	id, err := jsonparser.GetInt(data, "action_id")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, errors.Wrap(err, "reading action_id")
	}
	msg.ActionID = int32(id)

	for _, field := range []struct {
		key string
		dst *float32
	}{{"duration", &msg.Duration}, {"dispatch_time", &msg.DispatchTime}} {
		value, err := jsonparser.GetFloat(data, field.key)
		if err != nil && err != jsonparser.KeyPathNotFoundError {
			return nil, errors.Wrapf(err, "reading %s", field.key)
		}
		*field.dst = float32(value)
	}

	var parseErr error
	_, err = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, offset int, err error) {
		if parseErr != nil {
			return
		}
		if dataType != jsonparser.Object {
			parseErr = errors.Errorf("parameter at offset %d is not an object", offset)
			return
		}
		key, err := jsonparser.GetString(value, "key")
		if err != nil {
			parseErr = errors.Wrap(err, "reading parameter key")
			return
		}
		val, err := jsonparser.GetString(value, "value")
		if err != nil && err != jsonparser.KeyPathNotFoundError {
			parseErr = errors.Wrapf(err, "reading parameter %s", key)
			return
		}
		msg.Parameters = append(msg.Parameters, diagnostic_msgs.KeyValue{Key: key, Value: val})
	}, "parameters")
	if err != nil && err != jsonparser.KeyPathNotFoundError {
		return nil, errors.Wrap(err, "reading parameters")
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return msg, nil
}
