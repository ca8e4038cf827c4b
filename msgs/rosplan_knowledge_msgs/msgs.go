// Package rosplan_knowledge_msgs holds the knowledge base item and its services.
package rosplan_knowledge_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/diagnostic_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// KnowledgeItem kinds.
const (
	KnowledgeItemInstance uint8 = 0
	KnowledgeItemFact     uint8 = 1
	KnowledgeItemFunction uint8 = 2
)

// KnowledgeUpdateService update types.
const (
	AddKnowledge    uint8 = 0
	AddGoal         uint8 = 1
	RemoveKnowledge uint8 = 2
	RemoveGoal      uint8 = 3
)

var (
	TypeOfKnowledgeItem = ros.NewStaticMessageType("rosplan_knowledge_msgs/KnowledgeItem", "a4264640d228a4b57e9b41de1d4d7474",
		"uint8 INSTANCE = 0\nuint8 FACT = 1\nuint8 FUNCTION = 2\nuint8 knowledge_type\nstring instance_type\nstring instance_name\nstring attribute_name\ndiagnostic_msgs/KeyValue[] values\nfloat64 function_value\nbool is_negative",
		func() ros.Message { return new(KnowledgeItem) })

	TypeOfKnowledgeUpdateServiceRequest = ros.NewStaticMessageType("rosplan_knowledge_msgs/KnowledgeUpdateServiceRequest", "84baa11f46067de28d0a200709674319",
		"uint8 ADD_KNOWLEDGE = 0\nuint8 ADD_GOAL = 1\nuint8 REMOVE_KNOWLEDGE = 2\nuint8 REMOVE_GOAL = 3\nuint8 update_type\nrosplan_knowledge_msgs/KnowledgeItem knowledge",
		func() ros.Message { return new(KnowledgeUpdateServiceRequest) })
	TypeOfKnowledgeUpdateServiceResponse = ros.NewStaticMessageType("rosplan_knowledge_msgs/KnowledgeUpdateServiceResponse", "358e233cde0c8a8bcfea4ce193f8fc15",
		"bool success",
		func() ros.Message { return new(KnowledgeUpdateServiceResponse) })
	TypeOfKnowledgeUpdateService = ros.NewStaticServiceType("rosplan_knowledge_msgs/KnowledgeUpdateService", "837765eff2c5aff85dc1654a7e74e555",
		TypeOfKnowledgeUpdateServiceRequest, TypeOfKnowledgeUpdateServiceResponse,
		func() ros.Service { return new(KnowledgeUpdateService) })

	TypeOfGetInstanceServiceRequest = ros.NewStaticMessageType("rosplan_knowledge_msgs/GetInstanceServiceRequest", "569d316f820d7b7abfa7db96b2ecffae",
		"string type_name",
		func() ros.Message { return new(GetInstanceServiceRequest) })
	TypeOfGetInstanceServiceResponse = ros.NewStaticMessageType("rosplan_knowledge_msgs/GetInstanceServiceResponse", "c37cf4d14d6c5bfa6fbe319c1865eb5a",
		"string[] instances",
		func() ros.Message { return new(GetInstanceServiceResponse) })
	TypeOfGetInstanceService = ros.NewStaticServiceType("rosplan_knowledge_msgs/GetInstanceService", "84f5db7fe63a450c9972cb84ba4b3454",
		TypeOfGetInstanceServiceRequest, TypeOfGetInstanceServiceResponse,
		func() ros.Service { return new(GetInstanceService) })

	TypeOfKnowledgeQueryServiceRequest = ros.NewStaticMessageType("rosplan_knowledge_msgs/KnowledgeQueryServiceRequest", "fb995079ffa218067f095a81faeebec0",
		"rosplan_knowledge_msgs/KnowledgeItem[] knowledge",
		func() ros.Message { return new(KnowledgeQueryServiceRequest) })
	TypeOfKnowledgeQueryServiceResponse = ros.NewStaticMessageType("rosplan_knowledge_msgs/KnowledgeQueryServiceResponse", "7af7b898bbf855cc08a5d09e913b79c9",
		"bool all_true\nbool[] results\nrosplan_knowledge_msgs/KnowledgeItem[] false_knowledge",
		func() ros.Message { return new(KnowledgeQueryServiceResponse) })
	TypeOfKnowledgeQueryService = ros.NewStaticServiceType("rosplan_knowledge_msgs/KnowledgeQueryService", "75eb4939cfbaedd1312a57b9b8469833",
		TypeOfKnowledgeQueryServiceRequest, TypeOfKnowledgeQueryServiceResponse,
		func() ros.Service { return new(KnowledgeQueryService) })

	TypeOfGetAttributeServiceRequest = ros.NewStaticMessageType("rosplan_knowledge_msgs/GetAttributeServiceRequest", "130dad30028f4055312b63b35c17d1c3",
		"string predicate_name",
		func() ros.Message { return new(GetAttributeServiceRequest) })
	TypeOfGetAttributeServiceResponse = ros.NewStaticMessageType("rosplan_knowledge_msgs/GetAttributeServiceResponse", "4346d5c15a13ae8ec3736496416e2ac4",
		"rosplan_knowledge_msgs/KnowledgeItem[] attributes",
		func() ros.Message { return new(GetAttributeServiceResponse) })
	TypeOfGetAttributeService = ros.NewStaticServiceType("rosplan_knowledge_msgs/GetAttributeService", "bf3939829dd290d472fffb68a41256ec",
		TypeOfGetAttributeServiceRequest, TypeOfGetAttributeServiceResponse,
		func() ros.Service { return new(GetAttributeService) })
)

type KnowledgeItem struct {
	KnowledgeType uint8
	InstanceType  string
	InstanceName  string
	AttributeName string
	Values        []diagnostic_msgs.KeyValue
	FunctionValue float64
	IsNegative    bool
}

func (m *KnowledgeItem) Type() ros.MessageType { return TypeOfKnowledgeItem }

func (m *KnowledgeItem) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Uint8(m.KnowledgeType)
	w.String(m.InstanceType)
	w.String(m.InstanceName)
	w.String(m.AttributeName)
	diagnostic_msgs.WriteKeyValues(w, m.Values)
	w.Float64(m.FunctionValue)
	w.Bool(m.IsNegative)
	return w.Err()
}

func (m *KnowledgeItem) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.KnowledgeType = r.Uint8()
	m.InstanceType = r.String()
	m.InstanceName = r.String()
	m.AttributeName = r.String()
	m.Values = diagnostic_msgs.ReadKeyValues(r)
	m.FunctionValue = r.Float64()
	m.IsNegative = r.Bool()
	return r.Err()
}

func writeItems(w *ros.MessageWriter, items []KnowledgeItem) {
	w.Len(len(items))
	for i := range items {
		w.Message(&items[i])
	}
}

func readItems(r *ros.MessageReader) []KnowledgeItem {
	items := make([]KnowledgeItem, r.Len())
	for i := range items {
		r.Message(&items[i])
	}
	return items
}

type KnowledgeUpdateServiceRequest struct {
	UpdateType uint8
	Knowledge  KnowledgeItem
}

func (m *KnowledgeUpdateServiceRequest) Type() ros.MessageType {
	return TypeOfKnowledgeUpdateServiceRequest
}

func (m *KnowledgeUpdateServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Uint8(m.UpdateType)
	w.Message(&m.Knowledge)
	return w.Err()
}

func (m *KnowledgeUpdateServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.UpdateType = r.Uint8()
	r.Message(&m.Knowledge)
	return r.Err()
}

type KnowledgeUpdateServiceResponse struct {
	Success bool
}

func (m *KnowledgeUpdateServiceResponse) Type() ros.MessageType {
	return TypeOfKnowledgeUpdateServiceResponse
}

func (m *KnowledgeUpdateServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Bool(m.Success)
	return w.Err()
}

func (m *KnowledgeUpdateServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Success = r.Bool()
	return r.Err()
}

type KnowledgeUpdateService struct {
	Request  KnowledgeUpdateServiceRequest
	Response KnowledgeUpdateServiceResponse
}

func (s *KnowledgeUpdateService) ReqMessage() ros.Message { return &s.Request }
func (s *KnowledgeUpdateService) ResMessage() ros.Message { return &s.Response }

type GetInstanceServiceRequest struct {
	TypeName string
}

func (m *GetInstanceServiceRequest) Type() ros.MessageType { return TypeOfGetInstanceServiceRequest }

func (m *GetInstanceServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.TypeName)
	return w.Err()
}

func (m *GetInstanceServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.TypeName = r.String()
	return r.Err()
}

type GetInstanceServiceResponse struct {
	Instances []string
}

func (m *GetInstanceServiceResponse) Type() ros.MessageType { return TypeOfGetInstanceServiceResponse }

func (m *GetInstanceServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Strings(m.Instances)
	return w.Err()
}

func (m *GetInstanceServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Instances = r.Strings()
	return r.Err()
}

type GetInstanceService struct {
	Request  GetInstanceServiceRequest
	Response GetInstanceServiceResponse
}

func (s *GetInstanceService) ReqMessage() ros.Message { return &s.Request }
func (s *GetInstanceService) ResMessage() ros.Message { return &s.Response }

type KnowledgeQueryServiceRequest struct {
	Knowledge []KnowledgeItem
}

func (m *KnowledgeQueryServiceRequest) Type() ros.MessageType {
	return TypeOfKnowledgeQueryServiceRequest
}

func (m *KnowledgeQueryServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	writeItems(w, m.Knowledge)
	return w.Err()
}

func (m *KnowledgeQueryServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Knowledge = readItems(r)
	return r.Err()
}

type KnowledgeQueryServiceResponse struct {
	AllTrue        bool
	Results        []bool
	FalseKnowledge []KnowledgeItem
}

func (m *KnowledgeQueryServiceResponse) Type() ros.MessageType {
	return TypeOfKnowledgeQueryServiceResponse
}

func (m *KnowledgeQueryServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Bool(m.AllTrue)
	w.Len(len(m.Results))
	for _, v := range m.Results {
		w.Bool(v)
	}
	writeItems(w, m.FalseKnowledge)
	return w.Err()
}

func (m *KnowledgeQueryServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.AllTrue = r.Bool()
	m.Results = make([]bool, r.Len())
	for i := range m.Results {
		m.Results[i] = r.Bool()
	}
	m.FalseKnowledge = readItems(r)
	return r.Err()
}

type KnowledgeQueryService struct {
	Request  KnowledgeQueryServiceRequest
	Response KnowledgeQueryServiceResponse
}

func (s *KnowledgeQueryService) ReqMessage() ros.Message { return &s.Request }
func (s *KnowledgeQueryService) ResMessage() ros.Message { return &s.Response }

type GetAttributeServiceRequest struct {
	PredicateName string
}

func (m *GetAttributeServiceRequest) Type() ros.MessageType { return TypeOfGetAttributeServiceRequest }

func (m *GetAttributeServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.PredicateName)
	return w.Err()
}

func (m *GetAttributeServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.PredicateName = r.String()
	return r.Err()
}

type GetAttributeServiceResponse struct {
	Attributes []KnowledgeItem
}

func (m *GetAttributeServiceResponse) Type() ros.MessageType {
	return TypeOfGetAttributeServiceResponse
}

func (m *GetAttributeServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	writeItems(w, m.Attributes)
	return w.Err()
}

func (m *GetAttributeServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Attributes = readItems(r)
	return r.Err()
}

type GetAttributeService struct {
	Request  GetAttributeServiceRequest
	Response GetAttributeServiceResponse
}

func (s *GetAttributeService) ReqMessage() ros.Message { return &s.Request }
func (s *GetAttributeService) ResMessage() ros.Message { return &s.Response }
