// Package uaclient implements the client entity. It connects to a remote OPC
// UA server with github.com/gopcua/opcua.
package uaclient

import (
	"context"
	"sync"
	"time"

	"github.com/gopcua/opcua"
	gua "github.com/gopcua/opcua/ua"
	"github.com/mdzio/go-logging"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/ua"
)

var log = logging.Get("uaport-client")

// Defaults of the client configuration.
const (
	DefaultTimeout               = 5 * time.Second
	DefaultSecureChannelLifeTime = 10 * time.Minute
	DefaultSessionTimeout        = 20 * time.Minute
)

type config struct {
	timeout        time.Duration
	channelLife    time.Duration
	sessionTimeout time.Duration
}

// Client is the client entity. It is safe for concurrent use.
type Client struct {
	sink entity.EventSink

	mutex  sync.Mutex
	cfg    config
	client *opcua.Client
	subs   map[uint32]*subscription
	handle uint32
	closed bool
}

// New creates an unconnected client. Subscription events are passed to sink,
// which may be nil.
func New(sink entity.EventSink) *Client {
	return &Client{
		sink: sink,
		cfg: config{
			timeout:        DefaultTimeout,
			channelLife:    DefaultSecureChannelLifeTime,
			sessionTimeout: DefaultSessionTimeout,
		},
		subs: make(map[uint32]*subscription),
	}
}

// Mode implements entity.Entity.
func (c *Client) Mode() entity.Mode {
	return entity.Client
}

// Config implements entity.Entity.
func (c *Client) Config() map[string]interface{} {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return map[string]interface{}{
		"timeout":                 uint32(c.cfg.timeout / time.Millisecond),
		"secureChannelLifeTime":   uint32(c.cfg.channelLife / time.Millisecond),
		"requestedSessionTimeout": uint32(c.cfg.sessionTimeout / time.Millisecond),
	}
}

// SetConfig implements entity.Entity. The changes take effect on the next
// Connect.
func (c *Client) SetConfig(m map[string]interface{}) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	cfg := c.cfg
	for k, v := range m {
		var err error
		switch k {
		case "timeout":
			cfg.timeout, err = entity.ConfigMillis(k, v)
		case "secureChannelLifeTime":
			cfg.channelLife, err = entity.ConfigMillis(k, v)
		case "requestedSessionTimeout":
			cfg.sessionTimeout, err = entity.ConfigMillis(k, v)
		default:
			err = ua.Errorf(ua.ErrInvalidArgument, "Unknown configuration key: %s", k)
		}
		if err != nil {
			return err
		}
	}
	c.cfg = cfg
	log.Debugf("Configuration updated: timeout %v, channel lifetime %v, session timeout %v",
		cfg.timeout, cfg.channelLife, cfg.sessionTimeout)
	return nil
}

// selectEndpoint returns the endpoint without security.
func selectEndpoint(eps []*gua.EndpointDescription) *gua.EndpointDescription {
	var best *gua.EndpointDescription
	for _, ep := range eps {
		if ep.SecurityPolicyURI != gua.SecurityPolicyURINone || ep.SecurityMode != gua.MessageSecurityModeNone {
			continue
		}
		if best == nil || ep.SecurityLevel > best.SecurityLevel {
			best = ep
		}
	}
	return best
}

// Connect implements entity.Entity. An empty user selects anonymous
// authentication.
func (c *Client) Connect(ctx context.Context, url, user, password string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return ua.StatusBadInvalidState
	}
	if c.client != nil {
		return ua.StatusBadInvalidState
	}

	eps, err := opcua.GetEndpoints(ctx, url)
	if err != nil {
		log.Errorf("Retrieving of endpoints from %s failed: %v", url, err)
		return statusOf(err)
	}
	ep := selectEndpoint(eps)
	if ep == nil {
		log.Errorf("Server %s has no endpoint without security", url)
		return ua.StatusBadSecurityPolicyRejected
	}

	tokenType := gua.UserTokenTypeAnonymous
	auth := opcua.AuthAnonymous()
	if user != "" {
		tokenType = gua.UserTokenTypeUserName
		auth = opcua.AuthUsername(user, password)
	}
	opts := []opcua.Option{
		opcua.SecurityFromEndpoint(ep, tokenType),
		auth,
		opcua.RequestTimeout(c.cfg.timeout),
		opcua.Lifetime(c.cfg.channelLife),
		opcua.SessionTimeout(c.cfg.sessionTimeout),
	}
	cl, err := opcua.NewClient(url, opts...)
	if err != nil {
		return statusOf(err)
	}
	if err := cl.Connect(ctx); err != nil {
		log.Errorf("Connecting to %s failed: %v", url, err)
		cl.Close(context.Background())
		return statusOf(err)
	}
	c.client = cl
	log.Infof("Connected to %s", url)
	return nil
}

// Disconnect implements entity.Entity. The subscriptions are deleted.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mutex.Lock()
	cl := c.client
	c.client = nil
	subs := c.takeSubscriptions()
	c.mutex.Unlock()
	if cl == nil {
		return ua.StatusBadNotConnected
	}
	c.cancelSubscriptions(ctx, subs)
	if err := cl.Close(ctx); err != nil {
		log.Warningf("Closing of connection failed: %v", err)
	}
	log.Info("Disconnected")
	return nil
}

// FindServers implements entity.Entity.
func (c *Client) FindServers(ctx context.Context, url string) ([]entity.ApplicationDescription, error) {
	apps, err := opcua.FindServers(ctx, url)
	if err != nil {
		return nil, statusOf(err)
	}
	res := make([]entity.ApplicationDescription, 0, len(apps))
	for _, app := range apps {
		res = append(res, fromApplication(app))
	}
	return res, nil
}

// GetEndpoints implements entity.Entity.
func (c *Client) GetEndpoints(ctx context.Context, url string) ([]entity.EndpointDescription, error) {
	eps, err := opcua.GetEndpoints(ctx, url)
	if err != nil {
		return nil, statusOf(err)
	}
	res := make([]entity.EndpointDescription, 0, len(eps))
	for _, ep := range eps {
		res = append(res, entity.EndpointDescription{
			EndpointURL:         ep.EndpointURL,
			TransportProfileURI: ep.TransportProfileURI,
			SecurityMode:        entity.SecurityMode(ep.SecurityMode),
			SecurityPolicyURI:   ep.SecurityPolicyURI,
			SecurityLevel:       ep.SecurityLevel,
		})
	}
	return res, nil
}

func fromApplication(app *gua.ApplicationDescription) entity.ApplicationDescription {
	d := entity.ApplicationDescription{
		ApplicationURI: app.ApplicationURI,
		ProductURI:     app.ProductURI,
		Type:           entity.ApplicationType(app.ApplicationType),
		DiscoveryURLs:  append([]string{}, app.DiscoveryURLs...),
	}
	if app.ApplicationName != nil {
		d.Name = app.ApplicationName.Text
	}
	return d
}

// AddNode is not supported by a client.
func (c *Client) AddNode(context.Context, entity.AddNodeRequest) error {
	return ua.StatusBadServiceUnsupported
}

// AddReference is not supported by a client.
func (c *Client) AddReference(context.Context, ua.NodeID, ua.NodeID, ua.ExpandedNodeID, bool) error {
	return ua.StatusBadServiceUnsupported
}

// DeleteReference is not supported by a client.
func (c *Client) DeleteReference(context.Context, ua.NodeID, ua.NodeID, ua.ExpandedNodeID, bool, bool) error {
	return ua.StatusBadServiceUnsupported
}

// DeleteNode is not supported by a client.
func (c *Client) DeleteNode(context.Context, ua.NodeID, bool) error {
	return ua.StatusBadServiceUnsupported
}

func (c *Client) connected() (*opcua.Client, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.client == nil {
		return nil, ua.StatusBadNotConnected
	}
	return c.client, nil
}

// ReadAttribute implements entity.Entity.
func (c *Client) ReadAttribute(ctx context.Context, node ua.NodeID, attr ua.AttributeID) (interface{}, error) {
	cl, err := c.connected()
	if err != nil {
		return nil, err
	}
	req := &gua.ReadRequest{
		TimestampsToReturn: gua.TimestampsToReturnNeither,
		NodesToRead: []*gua.ReadValueID{{
			NodeID:       toNodeID(node),
			AttributeID:  gua.AttributeID(attr),
			DataEncoding: &gua.QualifiedName{},
		}},
	}
	resp, err := cl.Read(ctx, req)
	if err != nil {
		return nil, statusOf(err)
	}
	if len(resp.Results) != 1 {
		return nil, ua.StatusBadUnexpectedError
	}
	dv := resp.Results[0]
	if dv.Status != gua.StatusOK {
		return nil, ua.StatusCode(dv.Status)
	}
	v, err := fromAttribute(attr, dv.Value)
	if err != nil {
		return nil, statusOf(err)
	}
	log.Tracef("Attribute %v of node %v read: %v", attr, node, v)
	return v, nil
}

// WriteAttribute implements entity.Entity.
func (c *Client) WriteAttribute(ctx context.Context, node ua.NodeID, attr ua.AttributeID, value interface{}) error {
	cl, err := c.connected()
	if err != nil {
		return err
	}
	v, err := toAttribute(attr, value)
	if err != nil {
		return statusOf(err)
	}
	req := &gua.WriteRequest{
		NodesToWrite: []*gua.WriteValue{{
			NodeID:      toNodeID(node),
			AttributeID: gua.AttributeID(attr),
			Value: &gua.DataValue{
				EncodingMask: gua.DataValueValue,
				Value:        v,
			},
		}},
	}
	resp, err := cl.Write(ctx, req)
	if err != nil {
		return statusOf(err)
	}
	if len(resp.Results) != 1 {
		return ua.StatusBadUnexpectedError
	}
	if resp.Results[0] != gua.StatusOK {
		return ua.StatusCode(resp.Results[0])
	}
	log.Tracef("Attribute %v of node %v written: %v", attr, node, value)
	return nil
}

// Close implements entity.Entity. An open connection is closed.
func (c *Client) Close() error {
	c.mutex.Lock()
	c.closed = true
	c.mutex.Unlock()
	err := c.Disconnect(context.Background())
	if err == ua.StatusBadNotConnected {
		return nil
	}
	return err
}
