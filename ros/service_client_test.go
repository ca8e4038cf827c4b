package ros

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/sirupsen/logrus"
)

// fakePayload writes a fixed string and can fail in either direction.
type fakePayload struct {
	data string
	err  error
}

var fakePayloadType = NewStaticMessageType("test_msgs/Payload", "0123456789abcdeffedcba9876543210", "string data",
	func() Message { return &fakePayload{} })

var _ Message = &fakePayload{}

func (m *fakePayload) Type() MessageType { return fakePayloadType }

func (m *fakePayload) Serialize(buf *bytes.Buffer) error {
	buf.WriteString(m.data)
	return m.err
}

func (m *fakePayload) Deserialize(buf *bytes.Reader) error {
	data, _ := io.ReadAll(buf)
	m.data = string(data)
	return m.err
}

type fakeService struct {
	Request  fakePayload
	Response fakePayload
}

var _ Service = &fakeService{}

func (s *fakeService) ReqMessage() Message { return &s.Request }
func (s *fakeService) ResMessage() Message { return &s.Response }

var fakeServiceType = NewStaticServiceType("test_msgs/Fake", "0123456789abcdeffedcba9876543210", fakePayloadType, fakePayloadType,
	func() Service { return &fakeService{} })

// serverStep is one move of a scripted service server.
type serverStep func(t *testing.T, conn net.Conn)

func replyHeader(headers ...header) serverStep {
	return func(t *testing.T, conn net.Conn) {
		got, err := readConnectionHeader(conn)
		if err != nil {
			t.Fatal("failed to read header:", err)
		}
		if headerMap(got)["callerid"] != "testNode" {
			t.Fatalf("expected callerid testNode, got %v", got)
		}
		if err := writeConnectionHeader(headers, conn); err != nil {
			t.Fatalf("failed to write header: %s", err)
		}
	}
}

var acceptHeader = replyHeader(
	header{"service", "/test/service"},
	header{"md5sum", fakeServiceType.MD5Sum()},
	header{"type", fakeServiceType.Name()},
	header{"callerid", "testServer"},
)

func receiveRequest(t *testing.T, conn net.Conn) {
	var size uint32
	if err := binary.Read(conn, binary.LittleEndian, &size); err != nil {
		t.Fatalf("failed to read request size, %s", err)
	}
	buffer := make([]byte, size)
	if _, err := io.ReadFull(conn, buffer); err != nil {
		t.Fatalf("received error instead of request: %s", err)
	}
	if string(buffer) != "Request" {
		t.Fatalf("expected `Request`, got `%s`", buffer)
	}
}

// sendFrame writes the ok byte and a length-prefixed body.
func sendFrame(ok bool, body string) serverStep {
	return func(t *testing.T, conn net.Conn) {
		var flag uint8
		if ok {
			flag = 1
		}
		if err := binary.Write(conn, binary.LittleEndian, flag); err != nil {
			t.Fatalf("failed to write ok byte, %s", err)
		}
		if err := binary.Write(conn, binary.LittleEndian, uint32(len(body))); err != nil {
			t.Fatalf("failed to write size, %s", err)
		}
		if _, err := conn.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write body, %s", err)
		}
	}
}

func sendOkOnly(t *testing.T, conn net.Conn) {
	if err := binary.Write(conn, binary.LittleEndian, uint8(1)); err != nil {
		t.Fatalf("failed to write ok byte, %s", err)
	}
}

func TestServiceClient_Exchange(t *testing.T) {
	tests := []struct {
		name    string
		request fakePayload
		script  []serverStep
		wantErr string // "*" accepts any error
	}{
		{name: "success", request: fakePayload{data: "Request"},
			script: []serverStep{acceptHeader, receiveRequest, sendFrame(true, "response")}},
		{name: "hang up during header exchange", request: fakePayload{data: "Request"},
			wantErr: "*"},
		{name: "hang up before ok byte", request: fakePayload{data: "Request"},
			script: []serverStep{acceptHeader, receiveRequest}, wantErr: "*"},
		{name: "hang up before response", request: fakePayload{data: "Request"},
			script: []serverStep{acceptHeader, receiveRequest, sendOkOnly}, wantErr: "*"},
		{name: "server reports failure", request: fakePayload{data: "Request"},
			script: []serverStep{acceptHeader, receiveRequest, sendFrame(false, "bad request")}, wantErr: "bad request"},
		{name: "incompatible type", request: fakePayload{data: "Request"},
			script: []serverStep{replyHeader(header{"md5sum", "ffffffffffffffffffffffffffffffff"}, header{"type", "other_service"})},
			wantErr: "incompatible message type"},
		{name: "error header", request: fakePayload{data: "Request"},
			script: []serverStep{replyHeader(header{"error", "no such service"})}, wantErr: "no such service"},
		{name: "request fails to serialize", request: fakePayload{data: "Request", err: io.ErrShortWrite},
			script: []serverStep{acceptHeader}, wantErr: "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &fakeService{Request: tt.request}
			l, conn, result := startExchange(t, srv)
			for _, step := range tt.script {
				step(t, conn)
			}
			if tt.wantErr != "" {
				conn.Close()
				l.Close()
			} else {
				defer l.Close()
				defer conn.Close()
			}

			var err error
			select {
			case <-time.After(time.Second):
				t.Fatal("took too long for client to stop")
			case err = <-result:
			}
			switch {
			case tt.wantErr == "" && err != nil:
				t.Fatalf("expected successful request/response, got error %s", err)
			case tt.wantErr == "" && srv.Response.data != "response":
				t.Fatalf("expected response `response`, got `%s`", srv.Response.data)
			case tt.wantErr == "*" && err == nil:
				t.Fatal("expected an error, got none")
			case tt.wantErr != "" && tt.wantErr != "*" && (err == nil || err.Error() != tt.wantErr):
				t.Fatalf("expected error %q, got %v", tt.wantErr, err)
			}
		})
	}
}

// startExchange runs one client exchange against a listener the test plays
// the server on.
func startExchange(t *testing.T, srv Service) (net.Listener, net.Conn, chan error) {
	t.Helper()
	logger := modular.NewRootLogger(logrus.New()).GetModuleLogger()
	logger.SetLevel(logrus.DebugLevel)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	client := newDefaultServiceClient(&logger, "testNode", nil, "/test/service", fakeServiceType, time.Second)

	result := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), client.timeout)
		defer cancel()
		result <- client.doServiceRequest(ctx, srv, l.Addr().String())
	}()

	conn, err := l.Accept()
	if err != nil {
		t.Fatal(err)
	}
	return l, conn, result
}
