package scenedb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
)

func cloudOf(width uint32) sensor_msgs.PointCloud2 {
	return sensor_msgs.PointCloud2{Height: 1, Width: width, PointStep: 1, RowStep: width, Data: make([]uint8, width)}
}

func TestRegistry_LastWriteWins(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"cup", "ball", "car"}
	registry := NewRegistry()
	want := map[string]uint32{}

	for step := 0; step < 500; step++ {
		name := names[rng.Intn(len(names))]
		if rng.Intn(3) == 0 {
			registry.RemovePointCloud(name)
			delete(want, name)
			continue
		}
		width := uint32(1 + rng.Intn(100))
		registry.AddPointCloud(name, cloudOf(width))
		want[name] = width
	}

	for _, name := range names {
		got := registry.GetPointCloud(name)
		if width, ok := want[name]; ok {
			assert.Equal(t, cloudOf(width), got, name)
		} else {
			assert.True(t, got.IsEmpty(), name)
		}
	}
}

func TestRegistry_AbsentNames(t *testing.T) {
	registry := NewRegistry()
	registry.RemovePointCloud("ghost")
	registry.RemovePosition("ghost")

	cloud := registry.GetPointCloud("ghost")
	assert.True(t, cloud.IsEmpty())
	assert.Equal(t, geometry_msgs.Point{}, registry.GetPosition("ghost"))
	_, ok := registry.LookupPosition("ghost")
	assert.False(t, ok)
	assert.Empty(t, registry.CloudNames())
	assert.Empty(t, registry.PositionNames())
}

func TestRegistry_Positions(t *testing.T) {
	registry := NewRegistry()
	registry.AddPosition("cup", geometry_msgs.Point{X: 1, Y: 2, Z: 3})
	registry.AddPosition("ball", geometry_msgs.Point{X: 4})
	registry.AddPosition("cup", geometry_msgs.Point{X: -1})

	assert.Equal(t, geometry_msgs.Point{X: -1}, registry.GetPosition("cup"))
	assert.Equal(t, []string{"ball", "cup"}, registry.PositionNames())

	registry.RemovePosition("cup")
	_, ok := registry.LookupPosition("cup")
	assert.False(t, ok)
	assert.Equal(t, []string{"ball"}, registry.PositionNames())
}
