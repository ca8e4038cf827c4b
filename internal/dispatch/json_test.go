package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
)

func TestParseJSON(t *testing.T) {
	msg, err := ParseJSON([]byte(`{
		"name": "explore_waypoint",
		"action_id": 7,
		"duration": 1.5,
		"parameters": [{"key": "wp", "value": "wp3"}, {"key": "r", "value": "robot"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "explore_waypoint", msg.Name)
	assert.Equal(t, int32(7), msg.ActionID)
	assert.Equal(t, float32(1.5), msg.Duration)
	assert.Equal(t, []diagnostic_msgs.KeyValue{{Key: "wp", Value: "wp3"}, {Key: "r", Value: "robot"}}, msg.Parameters)

	msg, err = ParseJSON([]byte(`{"name": "finish"}`))
	require.NoError(t, err)
	assert.Equal(t, int32(0), msg.ActionID)
	assert.Empty(t, msg.Parameters)
}

func TestParseJSON_Rejects(t *testing.T) {
	for name, doc := range map[string]string{
		"no name":         `{"action_id": 1}`,
		"empty name":      `{"name": ""}`,
		"string id":       `{"name": "x", "action_id": "one"}`,
		"scalar param":    `{"name": "x", "parameters": [3]}`,
		"param no key":    `{"name": "x", "parameters": [{"value": "v"}]}`,
		"params not list": `{"name": "x", "parameters": {"key": "o"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJSON([]byte(doc))
			assert.Error(t, err)
		})
	}
}
