// Package testutils holds in-memory collaborators that record what the
// action handlers ask of them.
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/team-rocos/squirrel-rosplan/internal/knowledge"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
)

// Update is one recorded knowledge base update.
type Update struct {
	Type knowledge.UpdateType
	Item kb.KnowledgeItem
}

// KnowledgeBase is an in-memory knowledge.Client.
type KnowledgeBase struct {
	mu         sync.Mutex
	updates    []Update
	queries    [][]kb.KnowledgeItem
	instances  map[string][]string
	facts      map[string]kb.KnowledgeItem
	factOrder  []string
	attributes map[string][]kb.KnowledgeItem

	// Failure injection. A nil func or missing key means success.
	UpdateErr     func(Update) error
	InstancesErr  map[string]error
	QueryErr      error
	AttributesErr error
}

var _ knowledge.Client = &KnowledgeBase{}

func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{
		instances:    make(map[string][]string),
		facts:        make(map[string]kb.KnowledgeItem),
		attributes:   make(map[string][]kb.KnowledgeItem),
		InstancesErr: make(map[string]error),
	}
}

// FactKey identifies a fact by predicate, polarity and sorted arguments.
func FactKey(item kb.KnowledgeItem) string {
	args := make([]string, len(item.Values))
	for i, kv := range item.Values {
		args[i] = kv.Key + "=" + kv.Value
	}
	sort.Strings(args)
	key := item.AttributeName + "(" + strings.Join(args, ",") + ")"
	if item.IsNegative {
		key = "!" + key
	}
	return key
}

// AddInstances seeds instances without recording updates.
func (k *KnowledgeBase) AddInstances(typeName string, names ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.instances[typeName] = append(k.instances[typeName], names...)
}

// SetFact seeds a fact without recording an update.
func (k *KnowledgeBase) SetFact(item kb.KnowledgeItem) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.setFact(item)
}

// SetAttributes seeds what Attributes returns for predicate.
func (k *KnowledgeBase) SetAttributes(predicate string, items ...kb.KnowledgeItem) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.attributes[predicate] = items
}

func (k *KnowledgeBase) setFact(item kb.KnowledgeItem) {
	key := FactKey(item)
	if _, ok := k.facts[key]; !ok {
		k.factOrder = append(k.factOrder, key)
	}
	k.facts[key] = item
}

// HasFact reports whether item, with its polarity, is currently stored.
func (k *KnowledgeBase) HasFact(item kb.KnowledgeItem) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	_, ok := k.facts[FactKey(item)]
	return ok
}

// InstancesOf returns the current instances of typeName.
func (k *KnowledgeBase) InstancesOf(typeName string) []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.instances[typeName]...)
}

// Updates returns every recorded update in call order.
func (k *KnowledgeBase) Updates() []Update {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]Update(nil), k.updates...)
}

// Queries returns every recorded query in call order.
func (k *KnowledgeBase) Queries() [][]kb.KnowledgeItem {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([][]kb.KnowledgeItem(nil), k.queries...)
}

// Calls counts every call made against the knowledge base.
func (k *KnowledgeBase) Calls() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.updates) + len(k.queries)
}

func (k *KnowledgeBase) Update(ctx context.Context, update knowledge.UpdateType, item kb.KnowledgeItem) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	u := Update{Type: update, Item: item}
	k.updates = append(k.updates, u)
	if k.UpdateErr != nil {
		if err := k.UpdateErr(u); err != nil {
			return err
		}
	}

	switch {
	case item.KnowledgeType == kb.KnowledgeItemInstance && update == knowledge.Add:
		for _, name := range k.instances[item.InstanceType] {
			if name == item.InstanceName {
				return nil
			}
		}
		k.instances[item.InstanceType] = append(k.instances[item.InstanceType], item.InstanceName)
	case item.KnowledgeType == kb.KnowledgeItemInstance && update == knowledge.Remove:
		names := k.instances[item.InstanceType][:0]
		for _, name := range k.instances[item.InstanceType] {
			if name != item.InstanceName {
				names = append(names, name)
			}
		}
		k.instances[item.InstanceType] = names
	case update == knowledge.Add:
		k.setFact(item)
	case update == knowledge.Remove:
		delete(k.facts, FactKey(item))
	}
	return nil
}

func (k *KnowledgeBase) Instances(ctx context.Context, typeName string) ([]string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.InstancesErr[typeName]; err != nil {
		return nil, err
	}
	return append([]string(nil), k.instances[typeName]...), nil
}

func (k *KnowledgeBase) Query(ctx context.Context, items []kb.KnowledgeItem) ([]bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.queries = append(k.queries, items)
	if k.QueryErr != nil {
		return nil, k.QueryErr
	}
	results := make([]bool, len(items))
	for i, item := range items {
		_, results[i] = k.facts[FactKey(item)]
	}
	return results, nil
}

func (k *KnowledgeBase) Attributes(ctx context.Context, predicate string) ([]kb.KnowledgeItem, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.AttributesErr != nil {
		return nil, k.AttributesErr
	}
	if items, ok := k.attributes[predicate]; ok {
		return items, nil
	}
	var items []kb.KnowledgeItem
	for _, key := range k.factOrder {
		if item, ok := k.facts[key]; ok && item.AttributeName == predicate && !item.IsNegative {
			items = append(items, item)
		}
	}
	return items, nil
}
