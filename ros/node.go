package ros

import (
	"context"
	"sync"
	"time"

	modular "github.com/edwinhayes/logrus-modular"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultCallTimeout = 5 * time.Second
	jobQueueSize       = 100
	jobEnqueueTimeout  = 3 * time.Second
)

// Node is a participant on the ROS graph. Callbacks registered through a node
// are run one at a time by Spin or SpinOnce.
type Node interface {
	Name() string
	Logger() *modular.ModuleLogger
	Master() *Master

	NewPublisher(topic string, msgType MessageType) (Publisher, error)
	NewSubscriber(topic string, msgType MessageType, callback interface{}, opts ...SubscriberOption) (Subscriber, error)
	NewServiceClient(service string, srvType ServiceType) ServiceClient
	NewServiceServer(service string, srvType ServiceType, callback interface{}) (ServiceServer, error)

	GetParam(name string) (string, bool, error)

	OK() bool
	SpinOnce()
	Spin(ctx context.Context) error
	Shutdown()
}

// NodeOptions configures how a node reaches the rest of the graph.
type NodeOptions struct {
	// Redis is used when set; otherwise a client is dialled from the address fields.
	Redis         *redis.Client
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	MasterPrefix  string

	// Host is the address service servers listen on.
	Host        string
	CallTimeout time.Duration
	Logger      *modular.ModuleLogger
}

// NewNode instantiates a node and checks that the master is reachable.
func NewNode(name string, opts NodeOptions) (Node, error) {
	return newDefaultNode(name, opts)
}

type defaultNode struct {
	name        string
	master      *Master
	client      *redis.Client
	ownsClient  bool
	host        string
	callTimeout time.Duration
	logger      *modular.ModuleLogger

	jobChan        chan func()
	enqueueTimeout time.Duration
	ctx            context.Context
	cancel         context.CancelFunc
	shutdownOnce   sync.Once
	wg             sync.WaitGroup

	mu          sync.Mutex
	subscribers []*defaultSubscriber
	servers     []*defaultServiceServer
}

func newDefaultNode(name string, opts NodeOptions) (*defaultNode, error) {
	node := new(defaultNode)
	node.name = normalizeName(name)
	node.host = opts.Host
	if node.host == "" {
		node.host = "127.0.0.1"
	}
	node.callTimeout = opts.CallTimeout
	if node.callTimeout <= 0 {
		node.callTimeout = defaultCallTimeout
	}
	node.logger = opts.Logger
	if node.logger == nil {
		logger := modular.NewRootLogger(logrus.New()).GetModuleLogger()
		node.logger = &logger
	}

	node.client = opts.Redis
	if node.client == nil {
		node.client = redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		node.ownsClient = true
	}
	node.master = NewMaster(node.client, opts.MasterPrefix)
	node.jobChan = make(chan func(), jobQueueSize)
	node.enqueueTimeout = jobEnqueueTimeout
	node.ctx, node.cancel = context.WithCancel(context.Background())

	pingCtx, cancel := context.WithTimeout(node.ctx, node.callTimeout)
	defer cancel()
	if err := node.client.Ping(pingCtx).Err(); err != nil {
		node.cancel()
		if node.ownsClient {
			node.client.Close()
		}
		return nil, errors.Wrap(err, "could not reach the master")
	}

	logger := *node.logger
	logger.WithFields(logrus.Fields{"node": node.name}).Debug("node started")
	return node, nil
}

func (node *defaultNode) Name() string {
	return node.name
}

func (node *defaultNode) Logger() *modular.ModuleLogger {
	return node.logger
}

func (node *defaultNode) Master() *Master {
	return node.master
}

func (node *defaultNode) OK() bool {
	return node.ctx.Err() == nil
}

// enqueue hands a callback job to the spin goroutine. It gives up when the
// queue stays full for enqueueTimeout or the node shuts down.
func (node *defaultNode) enqueue(job func()) bool {
	select {
	case node.jobChan <- job:
		return true
	case <-time.After(node.enqueueTimeout):
		return false
	case <-node.ctx.Done():
		return false
	}
}

// SpinOnce runs every job queued so far without blocking.
func (node *defaultNode) SpinOnce() {
	for {
		select {
		case job := <-node.jobChan:
			job()
		default:
			return
		}
	}
}

// Spin runs queued jobs until ctx is done or the node shuts down.
func (node *defaultNode) Spin(ctx context.Context) error {
	for {
		select {
		case job := <-node.jobChan:
			job()
		case <-ctx.Done():
			return nil
		case <-node.ctx.Done():
			return nil
		}
	}
}

func (node *defaultNode) GetParam(name string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(node.ctx, node.callTimeout)
	defer cancel()
	return node.master.GetParam(ctx, name)
}

func (node *defaultNode) NewPublisher(topic string, msgType MessageType) (Publisher, error) {
	return newDefaultPublisher(node, topic, msgType), nil
}

func (node *defaultNode) NewSubscriber(topic string, msgType MessageType, callback interface{}, opts ...SubscriberOption) (Subscriber, error) {
	sub := newDefaultSubscriber(topic, msgType, callback, opts...)
	if err := sub.start(node); err != nil {
		return nil, err
	}
	node.mu.Lock()
	node.subscribers = append(node.subscribers, sub)
	node.mu.Unlock()
	return sub, nil
}

func (node *defaultNode) NewServiceClient(service string, srvType ServiceType) ServiceClient {
	return newDefaultServiceClient(node.logger, node.name, node.master, service, srvType, node.callTimeout)
}

func (node *defaultNode) NewServiceServer(service string, srvType ServiceType, callback interface{}) (ServiceServer, error) {
	server, err := newDefaultServiceServer(node, service, srvType, callback)
	if err != nil {
		return nil, err
	}
	node.mu.Lock()
	node.servers = append(node.servers, server)
	node.mu.Unlock()
	return server, nil
}

// Shutdown stops every subscriber and server created by the node. It is safe to call more than once.
func (node *defaultNode) Shutdown() {
	node.shutdownOnce.Do(func() {
		logger := *node.logger
		logger.WithFields(logrus.Fields{"node": node.name}).Debug("shutting down node")

		node.mu.Lock()
		subscribers := node.subscribers
		servers := node.servers
		node.subscribers = nil
		node.servers = nil
		node.mu.Unlock()

		// Cancel first so callbacks blocked on a full job queue give up.
		node.cancel()
		for _, server := range servers {
			server.Shutdown()
		}
		for _, sub := range subscribers {
			sub.Shutdown()
		}
		node.wg.Wait()
		if node.ownsClient {
			node.client.Close()
		}
	})
}
