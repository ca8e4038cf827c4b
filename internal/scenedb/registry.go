// Package scenedb keeps the point clouds and positions of named scene
// objects for the lifetime of the node.
package scenedb

import (
	"sort"
	"sync"

	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
)

// Registry maps object names to point clouds and to positions. Writes
// replace whatever was stored; reads of unknown names return zero values.
type Registry struct {
	mu        sync.RWMutex
	clouds    map[string]sensor_msgs.PointCloud2
	positions map[string]geometry_msgs.Point
}

func NewRegistry() *Registry {
	return &Registry{
		clouds:    make(map[string]sensor_msgs.PointCloud2),
		positions: make(map[string]geometry_msgs.Point),
	}
}

func (r *Registry) AddPointCloud(name string, cloud sensor_msgs.PointCloud2) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clouds[name] = cloud
}

func (r *Registry) RemovePointCloud(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clouds, name)
}

// GetPointCloud returns the cloud stored for name, or an empty cloud.
func (r *Registry) GetPointCloud(name string) sensor_msgs.PointCloud2 {
	cloud, _ := r.LookupPointCloud(name)
	return cloud
}

// LookupPointCloud is GetPointCloud that also reports whether name was stored.
func (r *Registry) LookupPointCloud(name string) (sensor_msgs.PointCloud2, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cloud, ok := r.clouds[name]
	return cloud, ok
}

func (r *Registry) AddPosition(name string, position geometry_msgs.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions[name] = position
}

func (r *Registry) RemovePosition(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.positions, name)
}

// GetPosition returns the position stored for name, or the origin.
func (r *Registry) GetPosition(name string) geometry_msgs.Point {
	position, _ := r.LookupPosition(name)
	return position
}

// LookupPosition is GetPosition that also reports whether name was stored.
func (r *Registry) LookupPosition(name string) (geometry_msgs.Point, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	position, ok := r.positions[name]
	return position, ok
}

// CloudNames lists the names with a stored point cloud.
func (r *Registry) CloudNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.clouds))
	for name := range r.clouds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PositionNames lists the names with a stored position.
func (r *Registry) PositionNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.positions))
	for name := range r.positions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
