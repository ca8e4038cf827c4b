// Package planning_knowledge_msgs holds the scene database lookup services.
package planning_knowledge_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

var (
	TypeOfPointCloudServiceRequest = ros.NewStaticMessageType("planning_knowledge_msgs/PointCloudServiceRequest", "c1f3d28f1b044c871e6eff2e9fc3c667",
		"string name",
		func() ros.Message { return new(PointCloudServiceRequest) })
	TypeOfPointCloudServiceResponse = ros.NewStaticMessageType("planning_knowledge_msgs/PointCloudServiceResponse", "96cec5374164b3b3d1d7ef5d7628a7ed",
		"sensor_msgs/PointCloud2 cloud",
		func() ros.Message { return new(PointCloudServiceResponse) })
	TypeOfPointCloudService = ros.NewStaticServiceType("planning_knowledge_msgs/PointCloudService", "29e0dca4663a31c3e48a7e8ce370ac30",
		TypeOfPointCloudServiceRequest, TypeOfPointCloudServiceResponse,
		func() ros.Service { return new(PointCloudService) })

	TypeOfPositionServiceRequest = ros.NewStaticMessageType("planning_knowledge_msgs/PositionServiceRequest", "c1f3d28f1b044c871e6eff2e9fc3c667",
		"string name",
		func() ros.Message { return new(PositionServiceRequest) })
	TypeOfPositionServiceResponse = ros.NewStaticMessageType("planning_knowledge_msgs/PositionServiceResponse", "e7bb0ef028c744b081acdc57743b11d8",
		"geometry_msgs/Point position",
		func() ros.Message { return new(PositionServiceResponse) })
	TypeOfPositionService = ros.NewStaticServiceType("planning_knowledge_msgs/PositionService", "fbfcaa54de7331275d098180ac33e857",
		TypeOfPositionServiceRequest, TypeOfPositionServiceResponse,
		func() ros.Service { return new(PositionService) })
)

type PointCloudServiceRequest struct {
	Name string
}

func (m *PointCloudServiceRequest) Type() ros.MessageType { return TypeOfPointCloudServiceRequest }

func (m *PointCloudServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Name)
	return w.Err()
}

func (m *PointCloudServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Name = r.String()
	return r.Err()
}

type PointCloudServiceResponse struct {
	Cloud sensor_msgs.PointCloud2
}

func (m *PointCloudServiceResponse) Type() ros.MessageType { return TypeOfPointCloudServiceResponse }

func (m *PointCloudServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Cloud)
	return w.Err()
}

func (m *PointCloudServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Cloud)
	return r.Err()
}

type PointCloudService struct {
	Request  PointCloudServiceRequest
	Response PointCloudServiceResponse
}

func (s *PointCloudService) ReqMessage() ros.Message { return &s.Request }
func (s *PointCloudService) ResMessage() ros.Message { return &s.Response }

type PositionServiceRequest struct {
	Name string
}

func (m *PositionServiceRequest) Type() ros.MessageType { return TypeOfPositionServiceRequest }

func (m *PositionServiceRequest) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.Name)
	return w.Err()
}

func (m *PositionServiceRequest) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Name = r.String()
	return r.Err()
}

type PositionServiceResponse struct {
	Position geometry_msgs.Point
}

func (m *PositionServiceResponse) Type() ros.MessageType { return TypeOfPositionServiceResponse }

func (m *PositionServiceResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Position)
	return w.Err()
}

func (m *PositionServiceResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Position)
	return r.Err()
}

type PositionService struct {
	Request  PositionServiceRequest
	Response PositionServiceResponse
}

func (s *PositionService) ReqMessage() ros.Message { return &s.Request }
func (s *PositionService) ResMessage() ros.Message { return &s.Response }
