package messagestore

import (
	"bytes"
	"context"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "message_store"

// RedisStore keeps each message in a hash <prefix>:doc:<id> holding its
// name, type, md5sum and serialized bytes, and indexes ids per type and
// name in a list <prefix>:name:<type>:<name> with the newest id first.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *modular.ModuleLogger
}

var _ Store = &RedisStore{}

func NewRedisStore(client *redis.Client, prefix string, logger *modular.ModuleLogger) *RedisStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) docKey(id string) string {
	return s.prefix + ":doc:" + id
}

func (s *RedisStore) nameKey(typeName, name string) string {
	return s.prefix + ":name:" + typeName + ":" + name
}

func (s *RedisStore) InsertNamed(ctx context.Context, name string, msg ros.Message) (string, error) {
	var buf bytes.Buffer
	if err := msg.Serialize(&buf); err != nil {
		return "", errors.Wrapf(err, "serializing %s", name)
	}
	id := uuid.NewString()
	typeName := msg.Type().Name()

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.docKey(id), map[string]interface{}{
			"name":   name,
			"type":   typeName,
			"md5sum": msg.Type().MD5Sum(),
			"data":   buf.Bytes(),
		})
		pipe.LPush(ctx, s.nameKey(typeName, name), id)
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "storing %s %s", typeName, name)
	}

	logger := *s.logger
	logger.WithFields(logrus.Fields{"name": name, "type": typeName, "id": id}).Debug("stored message")
	return id, nil
}

func (s *RedisStore) QueryNamed(ctx context.Context, name string, msgType ros.MessageType) ([]ros.Message, error) {
	ids, err := s.client.LRange(ctx, s.nameKey(msgType.Name(), name), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s %s", msgType.Name(), name)
	}

	logger := *s.logger
	var results []ros.Message
	for _, id := range ids {
		doc, err := s.client.HGetAll(ctx, s.docKey(id)).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", id)
		}
		if len(doc) == 0 {
			continue
		}
		if doc["md5sum"] != msgType.MD5Sum() {
			logger.WithFields(logrus.Fields{"id": id, "md5sum": doc["md5sum"]}).Warn("skipping stored message with a different definition")
			continue
		}
		msg := msgType.NewMessage()
		if err := msg.Deserialize(bytes.NewReader([]byte(doc["data"]))); err != nil {
			return nil, errors.Wrapf(err, "decoding %s", id)
		}
		results = append(results, msg)
	}
	return results, nil
}

func (s *RedisStore) DeleteID(ctx context.Context, id string) error {
	doc, err := s.client.HMGet(ctx, s.docKey(id), "name", "type").Result()
	if err != nil {
		return errors.Wrapf(err, "reading %s", id)
	}
	name, _ := doc[0].(string)
	typeName, _ := doc[1].(string)
	if name == "" && typeName == "" {
		return errors.Wrap(ErrNotFound, id)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.docKey(id))
		pipe.LRem(ctx, s.nameKey(typeName, name), 0, id)
		return nil
	})
	return errors.Wrapf(err, "deleting %s", id)
}
