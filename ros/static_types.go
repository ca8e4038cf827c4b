package ros

// StaticMessageType is the metadata of a message type known at compile time.
// Message packages declare one per message as a package level TypeOf var.
type StaticMessageType struct {
	name       string
	md5sum     string
	text       string
	newMessage func() Message
}

var _ MessageType = &StaticMessageType{}

func NewStaticMessageType(name, md5sum, text string, newMessage func() Message) *StaticMessageType {
	return &StaticMessageType{name: name, md5sum: md5sum, text: text, newMessage: newMessage}
}

func (t *StaticMessageType) Text() string        { return t.text }
func (t *StaticMessageType) Name() string        { return t.name }
func (t *StaticMessageType) MD5Sum() string      { return t.md5sum }
func (t *StaticMessageType) NewMessage() Message { return t.newMessage() }

// StaticServiceType is the metadata of a service type known at compile time.
type StaticServiceType struct {
	name       string
	md5sum     string
	reqType    MessageType
	resType    MessageType
	newService func() Service
}

var _ ServiceType = &StaticServiceType{}

func NewStaticServiceType(name, md5sum string, reqType, resType MessageType, newService func() Service) *StaticServiceType {
	return &StaticServiceType{name: name, md5sum: md5sum, reqType: reqType, resType: resType, newService: newService}
}

func (t *StaticServiceType) Name() string              { return t.name }
func (t *StaticServiceType) MD5Sum() string            { return t.md5sum }
func (t *StaticServiceType) RequestType() MessageType  { return t.reqType }
func (t *StaticServiceType) ResponseType() MessageType { return t.resType }
func (t *StaticServiceType) NewService() Service       { return t.newService() }

// StaticActionType is the metadata of an action type known at compile time.
type StaticActionType struct {
	name       string
	goalType   MessageType
	resultType MessageType
}

var _ ActionType = &StaticActionType{}

func NewStaticActionType(name string, goalType, resultType MessageType) *StaticActionType {
	return &StaticActionType{name: name, goalType: goalType, resultType: resultType}
}

func (t *StaticActionType) Name() string            { return t.name }
func (t *StaticActionType) GoalType() MessageType   { return t.goalType }
func (t *StaticActionType) ResultType() MessageType { return t.resultType }
