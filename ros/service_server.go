package ros

import (
	"bytes"
	"context"
	"encoding/binary"
	"net"
	"reflect"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ServiceServer answers calls to one service.
type ServiceServer interface {
	Shutdown()
}

type defaultServiceServer struct {
	node     *defaultNode
	service  string
	srvType  ServiceType
	callback interface{}
	listener net.Listener
	addr     string

	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

func newDefaultServiceServer(node *defaultNode, service string, srvType ServiceType, callback interface{}) (*defaultServiceServer, error) {
	if err := validateCallback(callback, 1); err != nil {
		return nil, errors.Wrapf(err, "service server for %s", service)
	}
	server := new(defaultServiceServer)
	server.node = node
	server.service = service
	server.srvType = srvType
	server.callback = callback

	listener, err := net.Listen("tcp", net.JoinHostPort(node.host, "0"))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen for %s", service)
	}
	server.listener = listener
	server.addr = listener.Addr().String()

	ctx, cancel := context.WithTimeout(node.ctx, node.callTimeout)
	defer cancel()
	if err := node.master.RegisterService(ctx, service, server.addr); err != nil {
		listener.Close()
		return nil, err
	}

	logger := *node.logger
	logger.WithFields(logrus.Fields{"service": service, "addr": server.addr}).Debug("service server listening")

	server.wg.Add(1)
	go server.start()
	return server, nil
}

func (s *defaultServiceServer) start() {
	defer s.wg.Done()
	logger := *s.node.logger
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			logger.Debug(s.service, " : listener closed")
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer conn.Close()
			if err := s.serve(conn); err != nil {
				logger.WithFields(logrus.Fields{"service": s.service, "error": err}).Error("service request failed")
			}
		}()
	}
}

// serve handles one TCPROS session: header exchange, then a single request.
func (s *defaultServiceServer) serve(conn net.Conn) error {
	logger := *s.node.logger
	conn.SetDeadline(time.Now().Add(s.node.callTimeout))

	// 1. Read the caller's header
	reqHeaders, err := readConnectionHeader(conn)
	if err != nil {
		return errors.Wrap(err, "failed to read connection header")
	}
	reqHeaderMap := headerMap(reqHeaders)
	logger.Debug("TCPROS Connection Header:")
	for _, h := range reqHeaders {
		logger.Debugf("  `%s` = `%s`", h.key, h.value)
	}

	// 2. Answer with ours, or with an error header on mismatch
	md5sum := s.srvType.MD5Sum()
	if reqHeaderMap["md5sum"] != md5sum && reqHeaderMap["md5sum"] != "*" {
		writeConnectionHeader([]header{{"error", "incompatible md5sum for " + s.service}}, conn)
		return errors.Errorf("caller %s sent md5sum %s", reqHeaderMap["callerid"], reqHeaderMap["md5sum"])
	}
	resHeaders := []header{
		{"service", s.service},
		{"md5sum", md5sum},
		{"type", s.srvType.Name()},
		{"callerid", s.node.name},
	}
	if err := writeConnectionHeader(resHeaders, conn); err != nil {
		return err
	}

	// 3. Read the request
	body, err := readFrame(conn)
	if err != nil {
		return err
	}
	srv := s.srvType.NewService()
	if err := srv.ReqMessage().Deserialize(bytes.NewReader(body)); err != nil {
		return s.writeError(conn, errors.Wrap(err, "failed to deserialize request"))
	}

	// 4. Run the callback on the spin goroutine and wait for its verdict
	result := make(chan error, 1)
	job := func() {
		out := invokeCallback(s.node.logger, s.service, s.callback, []reflect.Value{reflect.ValueOf(srv)})
		var callErr error
		for _, v := range out {
			if e, ok := v.Interface().(error); ok && e != nil {
				callErr = e
			}
		}
		result <- callErr
	}
	if !s.node.enqueue(job) {
		return s.writeError(conn, errors.New("service callback queue unavailable"))
	}
	var callErr error
	select {
	case callErr = <-result:
	case <-s.node.ctx.Done():
		return s.writeError(conn, errors.New("node is shutting down"))
	case <-time.After(s.node.callTimeout):
		return s.writeError(conn, errors.New("service callback timed out"))
	}
	if callErr != nil {
		return s.writeError(conn, callErr)
	}

	// 5. Send the response
	var buf bytes.Buffer
	if err := srv.ResMessage().Serialize(&buf); err != nil {
		return s.writeError(conn, errors.Wrap(err, "failed to serialize response"))
	}
	if err := binary.Write(conn, binary.LittleEndian, byte(1)); err != nil {
		return err
	}
	return writeFrame(conn, buf.Bytes())
}

// writeError reports a failed call to the client and returns cause.
func (s *defaultServiceServer) writeError(conn net.Conn, cause error) error {
	binary.Write(conn, binary.LittleEndian, byte(0))
	writeFrame(conn, []byte(cause.Error()))
	return cause
}

// Shutdown unregisters the service and waits for in-flight sessions.
func (s *defaultServiceServer) Shutdown() {
	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.node.callTimeout)
		defer cancel()
		if err := s.node.master.UnregisterService(ctx, s.service, s.addr); err != nil {
			logger := *s.node.logger
			logger.Warn(s.service, " : ", err)
		}
		s.listener.Close()
		s.wg.Wait()
	})
}
