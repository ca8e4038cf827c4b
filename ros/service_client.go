package ros

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ServiceClient calls one service.
type ServiceClient interface {
	Call(ctx context.Context, srv Service) error
	Shutdown()
}

type defaultServiceClient struct {
	logger  *modular.ModuleLogger
	service string
	srvType ServiceType
	master  *Master
	nodeID  string
	timeout time.Duration
}

func newDefaultServiceClient(log *modular.ModuleLogger, nodeID string, master *Master, service string, srvType ServiceType, timeout time.Duration) *defaultServiceClient {
	return &defaultServiceClient{
		logger:  log,
		service: service,
		srvType: srvType,
		master:  master,
		nodeID:  nodeID,
		timeout: timeout,
	}
}

// Call looks the service up and performs one request/response exchange.
// The exchange is bounded by ctx and by the client's default timeout.
func (c *defaultServiceClient) Call(ctx context.Context, srv Service) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	serviceURI, err := c.master.LookupService(ctx, c.service)
	if err != nil {
		return err
	}

	return c.doServiceRequest(ctx, srv, serviceURI)
}

// doServiceRequest runs the TCPROS exchange with the server at serviceURI:
// headers both ways, the request frame, then an ok byte followed by either
// the response or an error string.
func (c *defaultServiceClient) doServiceRequest(ctx context.Context, srv Service, serviceURI string) error {
	logger := *c.logger

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", serviceURI)
	if err != nil {
		return errors.Wrapf(err, "could not connect to %s", c.service)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	md5sum, msgType := c.srvType.MD5Sum(), c.srvType.Name()
	err = writeConnectionHeader([]header{
		{"service", c.service},
		{"md5sum", md5sum},
		{"type", msgType},
		{"callerid", c.nodeID},
	}, conn)
	if err != nil {
		return err
	}

	resHeaders, err := readConnectionHeader(conn)
	if err != nil {
		return err
	}
	reply := headerMap(resHeaders)
	logger.WithFields(logrus.Fields{"service": c.service, "server": reply["callerid"]}).Debug("service header exchanged")
	if errMsg, ok := reply["error"]; ok {
		return errors.New(errMsg)
	}
	if reply["type"] != msgType || reply["md5sum"] != md5sum {
		return errors.New("incompatible message type")
	}

	var req bytes.Buffer
	if err := srv.ReqMessage().Serialize(&req); err != nil {
		return errors.Wrap(err, "service call failed to serialize")
	}
	if err := writeFrame(conn, req.Bytes()); err != nil {
		return err
	}

	var ok byte
	if err := binary.Read(conn, binary.LittleEndian, &ok); err != nil {
		return err
	}
	body, err := readFrame(conn)
	if err != nil {
		return err
	}
	if ok == 0 {
		return errors.New(string(body))
	}
	logger.Debugf("%s: received %d byte response", c.service, len(body))
	if err := srv.ResMessage().Deserialize(bytes.NewReader(body)); err != nil {
		return errors.Wrap(err, "service call failed to deserialize response")
	}
	return nil
}

func (*defaultServiceClient) Shutdown() {}
