// Package entity defines the capability interface of the OPC UA backends a
// worker can serve commands against. An entity is either a client connected to
// a remote server or a server holding its own address space. The mode is
// chosen once per channel.
package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
)

// Mode selects the backend family.
type Mode int

// Entity modes.
const (
	Client Mode = iota
	Server
)

var (
	modeStr = []string{
		Client: "client",
		Server: "server",
	}
	errInvalidMode = errors.New("Invalid entity mode (expected: client, server)")
)

// String implements the Stringer interface.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeStr) {
		return "invalid"
	}
	return modeStr[m]
}

// Set implements flag.Value interface.
func (m *Mode) Set(value string) error {
	for idx, str := range modeStr {
		if strings.EqualFold(value, str) {
			*m = Mode(idx)
			return nil
		}
	}
	return errInvalidMode
}

// MarshalText implements TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.Set(string(text))
}

// EventSink receives events generated by an entity, e.g. subscription data.
// Emit must not block.
type EventSink interface {
	Emit(ev *proto.Event)
}

// EventSinkFunc is an adapter to use ordinary functions as EventSink.
type EventSinkFunc func(ev *proto.Event)

// Emit implements EventSink.
func (f EventSinkFunc) Emit(ev *proto.Event) {
	f(ev)
}

// AddNodeRequest describes a node to be added.
type AddNodeRequest struct {
	Class         ua.NodeClass
	RequestedID   ua.NodeID
	Parent        ua.NodeID
	ReferenceType ua.NodeID
	BrowseName    ua.QualifiedName
	// TypeDefinition is only used for variables, variable types and objects.
	TypeDefinition ua.NodeID
}

// Entity is implemented by the client and the server backend. Errors of type
// ua.StatusCode are reported to the caller as status, errors of type
// *ua.LocalError as local error token. Everything else is reported as
// BadInternalError.
type Entity interface {
	Mode() Mode

	// Config returns the current configuration as wire map.
	Config() map[string]interface{}
	// SetConfig updates the configuration. Unknown keys are rejected.
	SetConfig(cfg map[string]interface{}) error

	Connect(ctx context.Context, url, user, password string) error
	Disconnect(ctx context.Context) error
	FindServers(ctx context.Context, url string) ([]ApplicationDescription, error)
	GetEndpoints(ctx context.Context, url string) ([]EndpointDescription, error)

	AddSubscription(ctx context.Context, publishingInterval time.Duration) (uint32, error)
	DeleteSubscription(ctx context.Context, subID uint32) error
	AddMonitoredItem(ctx context.Context, subID uint32, node ua.NodeID, samplingInterval time.Duration) (uint32, error)
	DeleteMonitoredItem(ctx context.Context, subID, monID uint32) error

	AddNode(ctx context.Context, req AddNodeRequest) error
	AddReference(ctx context.Context, src, refType ua.NodeID, target ua.ExpandedNodeID, forward bool) error
	DeleteReference(ctx context.Context, src, refType ua.NodeID, target ua.ExpandedNodeID, forward, bidirectional bool) error
	DeleteNode(ctx context.Context, node ua.NodeID, deleteRefs bool) error

	// ReadAttribute reads an attribute. The Go type of the result follows
	// AttributeID.Kind, the value attribute is returned as ua.Variant.
	ReadAttribute(ctx context.Context, node ua.NodeID, attr ua.AttributeID) (interface{}, error)
	// WriteAttribute writes an attribute. The value attribute takes a
	// ua.Variant, the other attributes the Go type of AttributeID.Kind.
	WriteAttribute(ctx context.Context, node ua.NodeID, attr ua.AttributeID, value interface{}) error

	Close() error
}

type internalWriteKey struct{}

// WithInternalWrite marks writes with the returned context as issued by the
// worker itself. The server entity does not report them as value changes.
func WithInternalWrite(ctx context.Context) context.Context {
	return context.WithValue(ctx, internalWriteKey{}, true)
}

// IsInternalWrite reports whether ctx was created by WithInternalWrite.
func IsInternalWrite(ctx context.Context) bool {
	v, _ := ctx.Value(internalWriteKey{}).(bool)
	return v
}
