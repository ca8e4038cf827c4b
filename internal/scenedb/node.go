package scenedb

import (
	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/team-rocos/squirrel-rosplan/msgs/perception_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/planning_knowledge_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Names locates the scene database topics and services.
type Names struct {
	AddPointCloud        string
	RemovePointCloud     string
	AddObjectPosition    string
	RemoveObjectPosition string
	GetPointCloud        string
	GetObjectPosition    string
}

// Server exposes a Registry on the ROS graph. Updates arrive as topic
// events; reads are services.
type Server struct {
	registry    *Registry
	logger      *modular.ModuleLogger
	subscribers []ros.Subscriber
	servers     []ros.ServiceServer
}

// Serve subscribes registry to the update topics and advertises the two
// lookup services on node. Callbacks run on the node's spin goroutine.
func Serve(node ros.Node, registry *Registry, names Names) (*Server, error) {
	s := &Server{registry: registry, logger: node.Logger()}

	subscriptions := []struct {
		topic    string
		msgType  ros.MessageType
		callback interface{}
	}{
		{names.AddPointCloud, perception_msgs.TypeOfSegmentedObject, s.addPointCloud},
		{names.RemovePointCloud, std_msgs.TypeOfString, s.removePointCloud},
		{names.AddObjectPosition, perception_msgs.TypeOfObjectPosition, s.addObjectPosition},
		{names.RemoveObjectPosition, std_msgs.TypeOfString, s.removeObjectPosition},
	}
	for _, sub := range subscriptions {
		subscriber, err := node.NewSubscriber(sub.topic, sub.msgType, sub.callback)
		if err != nil {
			s.Shutdown()
			return nil, errors.Wrapf(err, "subscribing to %s", sub.topic)
		}
		s.subscribers = append(s.subscribers, subscriber)
	}

	services := []struct {
		name     string
		srvType  ros.ServiceType
		callback interface{}
	}{
		{names.GetPointCloud, planning_knowledge_msgs.TypeOfPointCloudService, s.getPointCloud},
		{names.GetObjectPosition, planning_knowledge_msgs.TypeOfPositionService, s.getObjectPosition},
	}
	for _, svc := range services {
		server, err := node.NewServiceServer(svc.name, svc.srvType, svc.callback)
		if err != nil {
			s.Shutdown()
			return nil, errors.Wrapf(err, "advertising %s", svc.name)
		}
		s.servers = append(s.servers, server)
	}

	logger := *s.logger
	logger.Info("scene database ready")
	return s, nil
}

// Shutdown stops the subscriptions and services.
func (s *Server) Shutdown() {
	for _, server := range s.servers {
		server.Shutdown()
	}
	for _, sub := range s.subscribers {
		sub.Shutdown()
	}
	s.servers = nil
	s.subscribers = nil
}

func (s *Server) addPointCloud(msg *perception_msgs.SegmentedObject) {
	logger := *s.logger
	logger.WithFields(logrus.Fields{"name": msg.Name, "points": msg.Segment.Points()}).Debug("storing point cloud")
	s.registry.AddPointCloud(msg.Name, msg.Segment)
}

func (s *Server) removePointCloud(msg *std_msgs.String) {
	logger := *s.logger
	logger.WithFields(logrus.Fields{"name": msg.Data}).Debug("removing point cloud")
	s.registry.RemovePointCloud(msg.Data)
}

func (s *Server) addObjectPosition(msg *perception_msgs.ObjectPosition) {
	logger := *s.logger
	logger.WithFields(logrus.Fields{"name": msg.Name}).Debug("storing object position")
	s.registry.AddPosition(msg.Name, msg.Position)
}

func (s *Server) removeObjectPosition(msg *std_msgs.String) {
	logger := *s.logger
	logger.WithFields(logrus.Fields{"name": msg.Data}).Debug("removing object position")
	s.registry.RemovePosition(msg.Data)
}

func (s *Server) getPointCloud(srv *planning_knowledge_msgs.PointCloudService) {
	srv.Response.Cloud = s.registry.GetPointCloud(srv.Request.Name)
}

func (s *Server) getObjectPosition(srv *planning_knowledge_msgs.PositionService) {
	srv.Response.Position = s.registry.GetPosition(srv.Request.Name)
}
