package knowledge

import (
	"context"

	"github.com/pkg/errors"
	kb "github.com/team-rocos/squirrel-rosplan/msgs/rosplan_knowledge_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// ServiceNames locates the knowledge base services.
type ServiceNames struct {
	Update     string
	Instances  string
	Query      string
	Attributes string
}

// ServiceClient reaches the knowledge base through its ROS services.
type ServiceClient struct {
	update     ros.ServiceClient
	instances  ros.ServiceClient
	query      ros.ServiceClient
	attributes ros.ServiceClient
}

var _ Client = &ServiceClient{}

func NewServiceClient(node ros.Node, names ServiceNames) *ServiceClient {
	return &ServiceClient{
		update:     node.NewServiceClient(names.Update, kb.TypeOfKnowledgeUpdateService),
		instances:  node.NewServiceClient(names.Instances, kb.TypeOfGetInstanceService),
		query:      node.NewServiceClient(names.Query, kb.TypeOfKnowledgeQueryService),
		attributes: node.NewServiceClient(names.Attributes, kb.TypeOfGetAttributeService),
	}
}

func (c *ServiceClient) Update(ctx context.Context, update UpdateType, item kb.KnowledgeItem) error {
	srv := &kb.KnowledgeUpdateService{}
	srv.Request.UpdateType = uint8(update)
	srv.Request.Knowledge = item
	if err := c.update.Call(ctx, srv); err != nil {
		return errors.Wrapf(err, "%s %s", update, describe(item))
	}
	// A refused REMOVE means there was nothing to remove, which is how the
	// opposite polarity of a fact usually looks.
	if !srv.Response.Success && update != Remove {
		return errors.Wrapf(ErrRejected, "%s %s", update, describe(item))
	}
	return nil
}

func (c *ServiceClient) Instances(ctx context.Context, typeName string) ([]string, error) {
	srv := &kb.GetInstanceService{}
	srv.Request.TypeName = typeName
	if err := c.instances.Call(ctx, srv); err != nil {
		return nil, errors.Wrapf(err, "listing %s instances", typeName)
	}
	return srv.Response.Instances, nil
}

func (c *ServiceClient) Query(ctx context.Context, items []kb.KnowledgeItem) ([]bool, error) {
	srv := &kb.KnowledgeQueryService{}
	srv.Request.Knowledge = items
	if err := c.query.Call(ctx, srv); err != nil {
		return nil, errors.Wrap(err, "querying knowledge")
	}
	results := srv.Response.Results
	if len(results) != len(items) {
		// Older knowledge bases only fill in all_true.
		results = make([]bool, len(items))
		for i := range results {
			results[i] = srv.Response.AllTrue
		}
	}
	return results, nil
}

func (c *ServiceClient) Attributes(ctx context.Context, predicate string) ([]kb.KnowledgeItem, error) {
	srv := &kb.GetAttributeService{}
	srv.Request.PredicateName = predicate
	if err := c.attributes.Call(ctx, srv); err != nil {
		return nil, errors.Wrapf(err, "reading %s attributes", predicate)
	}
	return srv.Response.Attributes, nil
}

func describe(item kb.KnowledgeItem) string {
	if item.KnowledgeType == kb.KnowledgeItemInstance {
		return item.InstanceType + " " + item.InstanceName
	}
	s := item.AttributeName + "("
	for i, kv := range item.Values {
		if i > 0 {
			s += ", "
		}
		s += kv.Key + "=" + kv.Value
	}
	s += ")"
	if item.IsNegative {
		s = "not " + s
	}
	return s
}
