// Package knowledge talks to the planner's knowledge base: typed instances
// and negatable facts.
package knowledge

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
)

// UpdateType selects what an Update does with its item.
type UpdateType uint8

const (
	Add    = UpdateType(kb.AddKnowledge)
	Remove = UpdateType(kb.RemoveKnowledge)
)

func (u UpdateType) String() string {
	switch u {
	case Add:
		return "ADD"
	case Remove:
		return "REMOVE"
	}
	return fmt.Sprintf("update(%d)", uint8(u))
}

// ErrRejected is returned when the knowledge base refuses an ADD.
var ErrRejected = errors.New("knowledge base rejected the update")

// Client is the knowledge base as seen by the action handlers.
type Client interface {
	Update(ctx context.Context, update UpdateType, item kb.KnowledgeItem) error
	Instances(ctx context.Context, typeName string) ([]string, error)
	Query(ctx context.Context, items []kb.KnowledgeItem) ([]bool, error)
	Attributes(ctx context.Context, predicate string) ([]kb.KnowledgeItem, error)
}

// Arg is one named fact argument.
func Arg(key, value string) diagnostic_msgs.KeyValue {
	return diagnostic_msgs.KeyValue{Key: key, Value: value}
}

// NewFact builds a fact item for predicate over args.
func NewFact(predicate string, negative bool, args ...diagnostic_msgs.KeyValue) kb.KnowledgeItem {
	return kb.KnowledgeItem{
		KnowledgeType: kb.KnowledgeItemFact,
		AttributeName: predicate,
		Values:        args,
		IsNegative:    negative,
	}
}

// NewInstance builds an instance item.
func NewInstance(typeName, name string) kb.KnowledgeItem {
	return kb.KnowledgeItem{
		KnowledgeType: kb.KnowledgeItemInstance,
		InstanceType:  typeName,
		InstanceName:  name,
	}
}

// ArgValue returns the value of key among an item's arguments.
func ArgValue(item kb.KnowledgeItem, key string) (string, bool) {
	for _, kv := range item.Values {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Step names the half of an AssertFact call that failed.
type Step string

const (
	StepAssert  Step = "assert"
	StepRetract Step = "retract opposite"
)

// FactError reports which update of a fact assertion failed.
type FactError struct {
	Predicate string
	Step      Step
	Err       error
}

func (e *FactError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Step, e.Predicate, e.Err)
}

func (e *FactError) Cause() error  { return e.Err }
func (e *FactError) Unwrap() error { return e.Err }

// AssertFact makes item the current truth: it adds item, then removes the
// same fact with the opposite polarity. The knowledge base has no single
// call that sets a polarity, so the two updates are not atomic.
func AssertFact(ctx context.Context, c Client, item kb.KnowledgeItem) error {
	if err := c.Update(ctx, Add, item); err != nil {
		return &FactError{Predicate: item.AttributeName, Step: StepAssert, Err: err}
	}
	opposite := item
	opposite.IsNegative = !item.IsNegative
	if err := c.Update(ctx, Remove, opposite); err != nil {
		return &FactError{Predicate: item.AttributeName, Step: StepRetract, Err: err}
	}
	return nil
}

// AddInstance declares name as an instance of typeName.
func AddInstance(ctx context.Context, c Client, typeName, name string) error {
	return errors.Wrapf(c.Update(ctx, Add, NewInstance(typeName, name)), "adding %s %s", typeName, name)
}

// RemoveInstance withdraws an instance declaration.
func RemoveInstance(ctx context.Context, c Client, typeName, name string) error {
	return errors.Wrapf(c.Update(ctx, Remove, NewInstance(typeName, name)), "removing %s %s", typeName, name)
}

// Holds reports whether a single fact is currently true.
func Holds(ctx context.Context, c Client, item kb.KnowledgeItem) (bool, error) {
	results, err := c.Query(ctx, []kb.KnowledgeItem{item})
	if err != nil {
		return false, err
	}
	return len(results) == 1 && results[0], nil
}
