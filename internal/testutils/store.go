package testutils

import (
	"context"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/team-rocos/squirrel-rosplan/internal/messagestore"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Insert is one recorded message store insert.
type Insert struct {
	ID   string
	Name string
	Msg  ros.Message
}

// ObjectStore is an in-memory messagestore.Store.
type ObjectStore struct {
	mu      sync.Mutex
	nextID  int
	inserts []Insert
	live    map[string]Insert
	deletes []string
	queries []string

	InsertErr error
	QueryErr  error
	DeleteErr error
}

var _ messagestore.Store = &ObjectStore{}

func NewObjectStore() *ObjectStore {
	return &ObjectStore{live: make(map[string]Insert)}
}

// Put seeds a message without recording the insert.
func (s *ObjectStore) Put(name string, msg ros.Message) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(name, msg).ID
}

func (s *ObjectStore) put(name string, msg ros.Message) Insert {
	s.nextID++
	ins := Insert{ID: "doc" + strconv.Itoa(s.nextID), Name: name, Msg: msg}
	s.live[ins.ID] = ins
	return ins
}

// Inserts returns every recorded insert in call order.
func (s *ObjectStore) Inserts() []Insert {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Insert(nil), s.inserts...)
}

// Deletes returns every id passed to DeleteID.
func (s *ObjectStore) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// Queries returns every name passed to QueryNamed.
func (s *ObjectStore) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

func (s *ObjectStore) InsertNamed(ctx context.Context, name string, msg ros.Message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return "", s.InsertErr
	}
	ins := s.put(name, msg)
	s.inserts = append(s.inserts, ins)
	return ins.ID, nil
}

func (s *ObjectStore) QueryNamed(ctx context.Context, name string, msgType ros.MessageType) ([]ros.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, name)
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	var results []ros.Message
	for i := s.nextID; i > 0; i-- {
		ins, ok := s.live["doc"+strconv.Itoa(i)]
		if ok && ins.Name == name && ins.Msg.Type().Name() == msgType.Name() {
			results = append(results, ins.Msg)
		}
	}
	return results, nil
}

func (s *ObjectStore) DeleteID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, id)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.live[id]; !ok {
		return errors.Wrap(messagestore.ErrNotFound, id)
	}
	delete(s.live, id)
	return nil
}
