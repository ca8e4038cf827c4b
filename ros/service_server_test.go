package ros

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/pkg/errors"
)

type echoServiceType struct{}
type echoService struct {
	Request  testMessage
	Response testMessage
}

var _ ServiceType = echoServiceType{}
var _ Service = &echoService{}

func (echoServiceType) MD5Sum() string            { return "d41d8cd98f00b204e9800998ecf8427e" }
func (echoServiceType) Name() string              { return "test_msgs/Echo" }
func (echoServiceType) RequestType() MessageType  { return testMessageType{} }
func (echoServiceType) ResponseType() MessageType { return testMessageType{} }
func (echoServiceType) NewService() Service       { return &echoService{} }
func (s *echoService) ReqMessage() Message        { return &s.Request }
func (s *echoService) ResMessage() Message        { return &s.Response }

// spinInBackground runs the node's callbacks until the test ends.
func spinInBackground(t *testing.T, node Node) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		node.Spin(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestServiceServer_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	server := newTestNode(t, mr, "server")
	defer server.Shutdown()
	client := newTestNode(t, mr, "client")
	defer client.Shutdown()
	spinInBackground(t, server)

	_, err := server.NewServiceServer("/echo", echoServiceType{}, func(srv *echoService) error {
		if srv.Request.Data == "" {
			return errors.New("empty request")
		}
		srv.Response.Data = strings.ToUpper(srv.Request.Data)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	srv := &echoService{Request: testMessage{Data: "ping"}}
	if err := client.NewServiceClient("/echo", echoServiceType{}).Call(context.Background(), srv); err != nil {
		t.Fatalf("expected successful call, got %s", err)
	}
	if srv.Response.Data != "PING" {
		t.Fatalf("expected `PING`, got `%s`", srv.Response.Data)
	}

	failing := &echoService{}
	err = client.NewServiceClient("/echo", echoServiceType{}).Call(context.Background(), failing)
	if err == nil || err.Error() != "empty request" {
		t.Fatalf("expected the callback's error, got %v", err)
	}
}

func TestServiceServer_UnregistersOnShutdown(t *testing.T) {
	mr := miniredis.RunT(t)
	node := newTestNode(t, mr, "server")
	defer node.Shutdown()

	server, err := node.NewServiceServer("/echo", echoServiceType{}, func(srv *echoService) {})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := node.Master().LookupService(context.Background(), "/echo"); err != nil {
		t.Fatalf("expected /echo to be registered, got %s", err)
	}

	server.Shutdown()
	_, err = node.Master().LookupService(context.Background(), "/echo")
	if errors.Cause(err) != ErrServiceNotFound {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestServiceClient_UnknownService(t *testing.T) {
	mr := miniredis.RunT(t)
	node := newTestNode(t, mr, "client")
	defer node.Shutdown()

	err := node.NewServiceClient("/missing", echoServiceType{}).Call(context.Background(), &echoService{})
	if errors.Cause(err) != ErrServiceNotFound {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestServiceClient_TimesOutWithoutSpin(t *testing.T) {
	mr := miniredis.RunT(t)
	node := newTestNode(t, mr, "server")
	defer node.Shutdown()

	if _, err := node.NewServiceServer("/echo", echoServiceType{}, func(srv *echoService) {}); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := node.NewServiceClient("/echo", echoServiceType{}).Call(ctx, &echoService{}); err == nil {
		t.Fatal("expected a call to an unspun server to fail")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("call took %s, expected it to respect the deadline", elapsed)
	}
}
