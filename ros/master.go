package ros

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrServiceNotFound is returned when no server has registered a service name.
var ErrServiceNotFound = errors.New("service not registered")

const defaultMasterPrefix = "rosmaster"

// Master is the name registry shared by every node: service addresses,
// live action servers and the parameter server all live in Redis hashes.
type Master struct {
	client *redis.Client
	prefix string
}

// NewMaster creates a registry on top of an existing client.
// An empty prefix selects the default.
func NewMaster(client *redis.Client, prefix string) *Master {
	if prefix == "" {
		prefix = defaultMasterPrefix
	}
	return &Master{client: client, prefix: prefix}
}

func (m *Master) key(kind string) string {
	return m.prefix + ":" + kind
}

// Client returns the underlying Redis client.
func (m *Master) Client() *redis.Client {
	return m.client
}

// RegisterService records the TCP address serving a service.
func (m *Master) RegisterService(ctx context.Context, service string, addr string) error {
	if err := m.client.HSet(ctx, m.key("services"), service, addr).Err(); err != nil {
		return errors.Wrapf(err, "registering service %s", service)
	}
	return nil
}

// UnregisterService removes a service registration if it still points at addr.
func (m *Master) UnregisterService(ctx context.Context, service string, addr string) error {
	current, err := m.client.HGet(ctx, m.key("services"), service).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "unregistering service %s", service)
	}
	if current != addr {
		return nil
	}
	return m.client.HDel(ctx, m.key("services"), service).Err()
}

// LookupService resolves a service name to the address of its server.
func (m *Master) LookupService(ctx context.Context, service string) (string, error) {
	addr, err := m.client.HGet(ctx, m.key("services"), service).Result()
	if err == redis.Nil {
		return "", errors.Wrap(ErrServiceNotFound, service)
	}
	if err != nil {
		return "", errors.Wrapf(err, "looking up service %s", service)
	}
	return addr, nil
}

// RegisterActionServer marks an action namespace as served by nodeID.
func (m *Master) RegisterActionServer(ctx context.Context, action string, nodeID string) error {
	if err := m.client.HSet(ctx, m.key("actions"), action, nodeID).Err(); err != nil {
		return errors.Wrapf(err, "registering action server %s", action)
	}
	return nil
}

// UnregisterActionServer removes an action server registration.
func (m *Master) UnregisterActionServer(ctx context.Context, action string) error {
	return m.client.HDel(ctx, m.key("actions"), action).Err()
}

// HasActionServer reports whether some node serves the action namespace.
func (m *Master) HasActionServer(ctx context.Context, action string) (bool, error) {
	return m.client.HExists(ctx, m.key("actions"), action).Result()
}

// GetParam reads a value from the parameter server.
func (m *Master) GetParam(ctx context.Context, name string) (string, bool, error) {
	value, err := m.client.HGet(ctx, m.key("params"), normalizeName(name)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "reading param %s", name)
	}
	return value, true, nil
}

// SetParam writes a value to the parameter server.
func (m *Master) SetParam(ctx context.Context, name string, value string) error {
	return m.client.HSet(ctx, m.key("params"), normalizeName(name), value).Err()
}

func normalizeName(name string) string {
	return "/" + strings.TrimLeft(name, "/")
}
