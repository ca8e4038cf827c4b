// Package squirrel_object_perception_msgs holds scene objects and the perception
// services and actions that report them.
package squirrel_object_perception_msgs

import (
	"bytes"

	"github.com/team-rocos/squirrel-rosplan/msgs/geometry_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/sensor_msgs"
	"github.com/team-rocos/squirrel-rosplan/msgs/std_msgs"
	"github.com/team-rocos/squirrel-rosplan/ros"
)

// Perception goal modes.
const (
	Check   uint8 = 0
	Explore uint8 = 1
)

var (
	TypeOfBCylinder = ros.NewStaticMessageType("squirrel_object_perception_msgs/BCylinder", "7b7413eb4258a4d489693c688fe84dde",
		"float64 diameter\nfloat64 height",
		func() ros.Message { return new(BCylinder) })
	TypeOfSceneObject = ros.NewStaticMessageType("squirrel_object_perception_msgs/SceneObject", "f51b7c2f466f2bf7b8c60b3bb11cf0e8",
		"Header header\nstring id\nstring category\ngeometry_msgs/Pose pose\nsensor_msgs/PointCloud2 cloud\nBCylinder bounding_cylinder",
		func() ros.Message { return new(SceneObject) })

	TypeOfFindDynamicObjectsRequest = ros.NewStaticMessageType("squirrel_object_perception_msgs/FindDynamicObjectsRequest", "d41d8cd98f00b204e9800998ecf8427e",
		"",
		func() ros.Message { return new(FindDynamicObjectsRequest) })
	TypeOfFindDynamicObjectsResponse = ros.NewStaticMessageType("squirrel_object_perception_msgs/FindDynamicObjectsResponse", "93ea5aea2b0997daa5e7db19e6a5e59d",
		"SceneObject[] dynamic_objects_added\nSceneObject[] dynamic_objects_updated\nSceneObject[] dynamic_objects_removed",
		func() ros.Message { return new(FindDynamicObjectsResponse) })
	TypeOfFindDynamicObjects = ros.NewStaticServiceType("squirrel_object_perception_msgs/FindDynamicObjects", "93ea5aea2b0997daa5e7db19e6a5e59d",
		TypeOfFindDynamicObjectsRequest, TypeOfFindDynamicObjectsResponse,
		func() ros.Service { return new(FindDynamicObjects) })

	TypeOfLookForObjectsGoal = ros.NewStaticMessageType("squirrel_object_perception_msgs/LookForObjectsGoal", "0eacd62d0d06efa9144446207ff4d4da",
		"uint8 CHECK = 0\nuint8 EXPLORE = 1\nstring id\nuint8 look_for_object",
		func() ros.Message { return new(LookForObjectsGoal) })
	TypeOfLookForObjectsResult = ros.NewStaticMessageType("squirrel_object_perception_msgs/LookForObjectsResult", "a4d9e8a8a5b1563c72178726821694c6",
		"SceneObject[] objects_added\nSceneObject[] objects_updated",
		func() ros.Message { return new(LookForObjectsResult) })
	TypeOfLookForObjectsAction = ros.NewStaticActionType("squirrel_object_perception_msgs/LookForObjects",
		TypeOfLookForObjectsGoal, TypeOfLookForObjectsResult)

	TypeOfRecognizeObjectsGoal = ros.NewStaticMessageType("squirrel_object_perception_msgs/RecognizeObjectsGoal", "3f955cb857ee1550d1921f29c6eac5d2",
		"uint8 CHECK = 0\nuint8 EXPLORE = 1\nuint8 look_for_object\ngeometry_msgs/PoseStamped look_at_pose",
		func() ros.Message { return new(RecognizeObjectsGoal) })
	TypeOfRecognizeObjectsResult = ros.NewStaticMessageType("squirrel_object_perception_msgs/RecognizeObjectsResult", "6eda3ccb4a84517e0d10ae1daaafbe5a",
		"SceneObject[] objects_added\nSceneObject[] objects_updated\nbool used_wizard",
		func() ros.Message { return new(RecognizeObjectsResult) })
	TypeOfRecognizeObjectsAction = ros.NewStaticActionType("squirrel_object_perception_msgs/RecognizeObjects",
		TypeOfRecognizeObjectsGoal, TypeOfRecognizeObjectsResult)
)

type BCylinder struct {
	Diameter float64
	Height   float64
}

func (m *BCylinder) Type() ros.MessageType { return TypeOfBCylinder }

func (m *BCylinder) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Float64(m.Diameter)
	w.Float64(m.Height)
	return w.Err()
}

func (m *BCylinder) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.Diameter = r.Float64()
	m.Height = r.Float64()
	return r.Err()
}

type SceneObject struct {
	Header           std_msgs.Header
	ID               string
	Category         string
	Pose             geometry_msgs.Pose
	Cloud            sensor_msgs.PointCloud2
	BoundingCylinder BCylinder
}

func (m *SceneObject) Type() ros.MessageType { return TypeOfSceneObject }

func (m *SceneObject) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Message(&m.Header)
	w.String(m.ID)
	w.String(m.Category)
	w.Message(&m.Pose)
	w.Message(&m.Cloud)
	w.Message(&m.BoundingCylinder)
	return w.Err()
}

func (m *SceneObject) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	r.Message(&m.Header)
	m.ID = r.String()
	m.Category = r.String()
	r.Message(&m.Pose)
	r.Message(&m.Cloud)
	r.Message(&m.BoundingCylinder)
	return r.Err()
}

func writeSceneObjects(w *ros.MessageWriter, objects []SceneObject) {
	w.Len(len(objects))
	for i := range objects {
		w.Message(&objects[i])
	}
}

func readSceneObjects(r *ros.MessageReader) []SceneObject {
	objects := make([]SceneObject, r.Len())
	for i := range objects {
		r.Message(&objects[i])
	}
	return objects
}

type FindDynamicObjectsRequest struct{}

func (m *FindDynamicObjectsRequest) Type() ros.MessageType { return TypeOfFindDynamicObjectsRequest }

func (m *FindDynamicObjectsRequest) Serialize(buf *bytes.Buffer) error   { return nil }
func (m *FindDynamicObjectsRequest) Deserialize(buf *bytes.Reader) error { return nil }

type FindDynamicObjectsResponse struct {
	DynamicObjectsAdded   []SceneObject
	DynamicObjectsUpdated []SceneObject
	DynamicObjectsRemoved []SceneObject
}

func (m *FindDynamicObjectsResponse) Type() ros.MessageType {
	return TypeOfFindDynamicObjectsResponse
}

func (m *FindDynamicObjectsResponse) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	writeSceneObjects(w, m.DynamicObjectsAdded)
	writeSceneObjects(w, m.DynamicObjectsUpdated)
	writeSceneObjects(w, m.DynamicObjectsRemoved)
	return w.Err()
}

func (m *FindDynamicObjectsResponse) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.DynamicObjectsAdded = readSceneObjects(r)
	m.DynamicObjectsUpdated = readSceneObjects(r)
	m.DynamicObjectsRemoved = readSceneObjects(r)
	return r.Err()
}

type FindDynamicObjects struct {
	Request  FindDynamicObjectsRequest
	Response FindDynamicObjectsResponse
}

func (s *FindDynamicObjects) ReqMessage() ros.Message { return &s.Request }
func (s *FindDynamicObjects) ResMessage() ros.Message { return &s.Response }

type LookForObjectsGoal struct {
	ID            string
	LookForObject uint8
}

func (m *LookForObjectsGoal) Type() ros.MessageType { return TypeOfLookForObjectsGoal }

func (m *LookForObjectsGoal) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.String(m.ID)
	w.Uint8(m.LookForObject)
	return w.Err()
}

func (m *LookForObjectsGoal) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.ID = r.String()
	m.LookForObject = r.Uint8()
	return r.Err()
}

type LookForObjectsResult struct {
	ObjectsAdded   []SceneObject
	ObjectsUpdated []SceneObject
}

func (m *LookForObjectsResult) Type() ros.MessageType { return TypeOfLookForObjectsResult }

func (m *LookForObjectsResult) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	writeSceneObjects(w, m.ObjectsAdded)
	writeSceneObjects(w, m.ObjectsUpdated)
	return w.Err()
}

func (m *LookForObjectsResult) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.ObjectsAdded = readSceneObjects(r)
	m.ObjectsUpdated = readSceneObjects(r)
	return r.Err()
}

type RecognizeObjectsGoal struct {
	LookForObject uint8
	LookAtPose    geometry_msgs.PoseStamped
}

func (m *RecognizeObjectsGoal) Type() ros.MessageType { return TypeOfRecognizeObjectsGoal }

func (m *RecognizeObjectsGoal) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	w.Uint8(m.LookForObject)
	w.Message(&m.LookAtPose)
	return w.Err()
}

func (m *RecognizeObjectsGoal) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.LookForObject = r.Uint8()
	r.Message(&m.LookAtPose)
	return r.Err()
}

type RecognizeObjectsResult struct {
	ObjectsAdded   []SceneObject
	ObjectsUpdated []SceneObject
	UsedWizard     bool
}

func (m *RecognizeObjectsResult) Type() ros.MessageType { return TypeOfRecognizeObjectsResult }

func (m *RecognizeObjectsResult) Serialize(buf *bytes.Buffer) error {
	w := ros.NewMessageWriter(buf)
	writeSceneObjects(w, m.ObjectsAdded)
	writeSceneObjects(w, m.ObjectsUpdated)
	w.Bool(m.UsedWizard)
	return w.Err()
}

func (m *RecognizeObjectsResult) Deserialize(buf *bytes.Reader) error {
	r := ros.NewMessageReader(buf)
	m.ObjectsAdded = readSceneObjects(r)
	m.ObjectsUpdated = readSceneObjects(r)
	m.UsedWizard = r.Bool()
	return r.Err()
}
