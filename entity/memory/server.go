// Package memory implements the server entity with an address space held in
// memory. Value changes are reported to an event sink: data changes of
// monitored items as subscription data and writes by parties other than the
// worker itself as node value changes.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

var log = logging.Get("uaport-memory")

const (
	defaultAppURI  = "urn:go-uaport:server"
	defaultAppName = "go-uaport"
	productURI     = "urn:go-uaport"

	// first numeric ID for nodes added without requested ID
	firstAssignedID = 50000
)

type config struct {
	appURI  string
	appName string
}

// Server is an in-memory server entity. It is safe for concurrent use.
type Server struct {
	sink entity.EventSink

	mutex     sync.Mutex
	cfg       config
	nodes     map[string]*node
	nextID    uint32
	subs      map[uint32]*subscription
	nextSubID uint32
	nextMonID uint32
	closed    bool
}

// New creates a server with the namespace 0 base nodes. Events are passed to
// sink, which may be nil.
func New(sink entity.EventSink) *Server {
	s := &Server{
		sink: sink,
		cfg: config{
			appURI:  defaultAppURI,
			appName: defaultAppName,
		},
		nodes:  make(map[string]*node),
		nextID: firstAssignedID,
		subs:   make(map[uint32]*subscription),
	}
	s.seed()
	return s
}

// Mode implements entity.Entity.
func (s *Server) Mode() entity.Mode {
	return entity.Server
}

// Config implements entity.Entity.
func (s *Server) Config() map[string]interface{} {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return map[string]interface{}{
		"application_uri":  s.cfg.appURI,
		"application_name": s.cfg.appName,
	}
}

// SetConfig implements entity.Entity.
func (s *Server) SetConfig(m map[string]interface{}) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cfg := s.cfg
	for k, v := range m {
		var err error
		switch k {
		case "application_uri":
			cfg.appURI, err = entity.ConfigString(k, v)
		case "application_name":
			cfg.appName, err = entity.ConfigString(k, v)
		default:
			err = ua.Errorf(ua.ErrInvalidArgument, "Unknown configuration key: %s", k)
		}
		if err != nil {
			return err
		}
	}
	s.cfg = cfg
	log.Debugf("Configuration updated: %s, %s", cfg.appURI, cfg.appName)
	return nil
}

// Connect is not supported by a server.
func (s *Server) Connect(context.Context, string, string, string) error {
	return ua.StatusBadServiceUnsupported
}

// Disconnect is not supported by a server.
func (s *Server) Disconnect(context.Context) error {
	return ua.StatusBadServiceUnsupported
}

// FindServers returns the description of this server. The address space is
// only reachable through the worker channel, so there are no discovery URLs.
func (s *Server) FindServers(_ context.Context, _ string) ([]entity.ApplicationDescription, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return []entity.ApplicationDescription{{
		ApplicationURI: s.cfg.appURI,
		ProductURI:     productURI,
		Name:           s.cfg.appName,
		Type:           entity.ApplicationServer,
		DiscoveryURLs:  []string{},
	}}, nil
}

// GetEndpoints fails with BadNotSupported, the server has no network
// endpoint.
func (s *Server) GetEndpoints(context.Context, string) ([]entity.EndpointDescription, error) {
	return nil, ua.StatusBadNotSupported
}

// Write sets the value of a variable like an external party would. The change
// is reported with a NodeValueChanged event.
func (s *Server) Write(node ua.NodeID, v ua.Variant) error {
	return s.WriteAttribute(context.Background(), node, ua.AttrValue, v)
}

// Close implements entity.Entity. Subscriptions are removed without events.
func (s *Server) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.closed = true
	s.subs = make(map[uint32]*subscription)
	return nil
}

func (s *Server) emit(evs []*proto.Event) {
	if s.sink == nil {
		return
	}
	for _, ev := range evs {
		s.sink.Emit(ev)
	}
}

func durationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
