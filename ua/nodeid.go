package ua

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDType is the kind of identifier of a NodeID. The numeric values are used
// on the wire.
type IDType uint8

// Identifier types.
const (
	IDNumeric IDType = iota
	IDString
	IDGUID
	IDOpaque
)

var idTypeStr = []string{"i", "s", "g", "b"}

// Valid reports whether t is a known identifier type.
func (t IDType) Valid() bool {
	return t <= IDOpaque
}

func (t IDType) String() string {
	if t.Valid() {
		return idTypeStr[t]
	}
	return fmt.Sprintf("IDType(%d)", uint8(t))
}

// GUID is a 128 bit globally unique identifier.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUIDFromUUID converts a UUID.
func GUIDFromUUID(u uuid.UUID) GUID {
	var g GUID
	g.Data1 = uint32(u[0])<<24 | uint32(u[1])<<16 | uint32(u[2])<<8 | uint32(u[3])
	g.Data2 = uint16(u[4])<<8 | uint16(u[5])
	g.Data3 = uint16(u[6])<<8 | uint16(u[7])
	copy(g.Data4[:], u[8:])
	return g
}

// UUID converts the GUID.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = byte(g.Data1>>24), byte(g.Data1>>16), byte(g.Data1>>8), byte(g.Data1)
	u[4], u[5] = byte(g.Data2>>8), byte(g.Data2)
	u[6], u[7] = byte(g.Data3>>8), byte(g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}

// ParseGUID parses the textual representation (e.g.
// 72962B91-FA75-4AE6-8D28-B404DC7DAF63).
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("Invalid GUID %s: %w", s, err)
	}
	return GUIDFromUUID(u), nil
}

func (g GUID) String() string {
	return strings.ToUpper(g.UUID().String())
}

// NodeID identifies a node in an address space. Only the field selected by
// Type is significant.
type NodeID struct {
	Namespace uint16
	Type      IDType
	Numeric   uint32
	String    string
	GUID      GUID
	Opaque    []byte
}

// NewNumericNodeID creates a numeric node ID.
func NewNumericNodeID(ns uint16, id uint32) NodeID {
	return NodeID{Namespace: ns, Type: IDNumeric, Numeric: id}
}

// NewStringNodeID creates a string node ID.
func NewStringNodeID(ns uint16, id string) NodeID {
	return NodeID{Namespace: ns, Type: IDString, String: id}
}

// NewGUIDNodeID creates a GUID node ID.
func NewGUIDNodeID(ns uint16, id GUID) NodeID {
	return NodeID{Namespace: ns, Type: IDGUID, GUID: id}
}

// NewOpaqueNodeID creates a byte string node ID. The identifier is copied.
func NewOpaqueNodeID(ns uint16, id []byte) NodeID {
	return NodeID{Namespace: ns, Type: IDOpaque, Opaque: append([]byte{}, id...)}
}

// IsNull reports whether n is the null node ID (ns=0;i=0).
func (n NodeID) IsNull() bool {
	return n.Namespace == 0 && n.Type == IDNumeric && n.Numeric == 0
}

// Equal compares two node IDs.
func (n NodeID) Equal(o NodeID) bool {
	if n.Namespace != o.Namespace || n.Type != o.Type {
		return false
	}
	switch n.Type {
	case IDNumeric:
		return n.Numeric == o.Numeric
	case IDString:
		return n.String == o.String
	case IDGUID:
		return n.GUID == o.GUID
	case IDOpaque:
		return bytes.Equal(n.Opaque, o.Opaque)
	}
	return false
}

// Key returns a string which is unique for each node ID and suitable as map
// key.
func (n NodeID) Key() string {
	return n.Text()
}

// Text returns the standard notation of the node ID (e.g.
// ns=3;s=R1_TS1_Temperature). The namespace is omitted for namespace 0.
func (n NodeID) Text() string {
	var id string
	switch n.Type {
	case IDNumeric:
		id = strconv.FormatUint(uint64(n.Numeric), 10)
	case IDString:
		id = n.String
	case IDGUID:
		id = n.GUID.String()
	case IDOpaque:
		id = base64.StdEncoding.EncodeToString(n.Opaque)
	default:
		return fmt.Sprintf("ns=%d;?=%d", n.Namespace, uint8(n.Type))
	}
	if n.Namespace == 0 {
		return n.Type.String() + "=" + id
	}
	return fmt.Sprintf("ns=%d;%s=%s", n.Namespace, n.Type, id)
}

// Format implements fmt.Formatter, so that %v and %s print the standard
// notation despite the String field.
func (n NodeID) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		fmt.Fprintf(f, "ua.NodeID{Namespace:%d, Type:%d, Numeric:%d, String:%q, GUID:%s, Opaque:%x}",
			n.Namespace, n.Type, n.Numeric, n.String, n.GUID, n.Opaque)
		return
	}
	f.Write([]byte(n.Text()))
}

var errInvalidNodeID = errors.New("Invalid node ID")

// ParseNodeID parses the standard notation of a node ID.
func ParseNodeID(s string) (NodeID, error) {
	var n NodeID
	rest := s
	if strings.HasPrefix(rest, "ns=") {
		sep := strings.IndexByte(rest, ';')
		if sep < 0 {
			return NodeID{}, fmt.Errorf("%w: %s", errInvalidNodeID, s)
		}
		ns, err := strconv.ParseUint(rest[3:sep], 10, 16)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: %s: %v", errInvalidNodeID, s, err)
		}
		n.Namespace = uint16(ns)
		rest = rest[sep+1:]
	}
	if len(rest) < 2 || rest[1] != '=' {
		return NodeID{}, fmt.Errorf("%w: %s", errInvalidNodeID, s)
	}
	id := rest[2:]
	switch rest[0] {
	case 'i':
		v, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: %s: %v", errInvalidNodeID, s, err)
		}
		n.Type, n.Numeric = IDNumeric, uint32(v)
	case 's':
		n.Type, n.String = IDString, id
	case 'g':
		g, err := ParseGUID(id)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: %s: %v", errInvalidNodeID, s, err)
		}
		n.Type, n.GUID = IDGUID, g
	case 'b':
		b, err := base64.StdEncoding.DecodeString(id)
		if err != nil {
			return NodeID{}, fmt.Errorf("%w: %s: %v", errInvalidNodeID, s, err)
		}
		n.Type, n.Opaque = IDOpaque, b
	default:
		return NodeID{}, fmt.Errorf("%w: %s", errInvalidNodeID, s)
	}
	return n, nil
}

// MustParseNodeID is like ParseNodeID but panics on error. Intended for
// constants in tests and examples.
func MustParseNodeID(s string) NodeID {
	n, err := ParseNodeID(s)
	if err != nil {
		panic(err)
	}
	return n
}

// ExpandedNodeID is a node ID which can reference nodes in other servers.
// When a namespace URI is set, it takes precedence over the namespace index.
type ExpandedNodeID struct {
	NodeID       NodeID
	NamespaceURI string
	ServerIndex  uint32
}

// Local reports whether the expanded node ID references the local server by
// index only.
func (e ExpandedNodeID) Local() bool {
	return e.NamespaceURI == "" && e.ServerIndex == 0
}

// Equal compares two expanded node IDs.
func (e ExpandedNodeID) Equal(o ExpandedNodeID) bool {
	return e.NodeID.Equal(o.NodeID) && e.NamespaceURI == o.NamespaceURI && e.ServerIndex == o.ServerIndex
}

func (e ExpandedNodeID) String() string {
	var sb strings.Builder
	if e.ServerIndex != 0 {
		fmt.Fprintf(&sb, "svr=%d;", e.ServerIndex)
	}
	if e.NamespaceURI != "" {
		fmt.Fprintf(&sb, "nsu=%s;", e.NamespaceURI)
	}
	sb.WriteString(e.NodeID.Text())
	return sb.String()
}

// QualifiedName is a name qualified by a namespace index.
type QualifiedName struct {
	Namespace uint16
	Name      string
}

func (q QualifiedName) String() string {
	if q.Namespace == 0 {
		return q.Name
	}
	return fmt.Sprintf("%d:%s", q.Namespace, q.Name)
}

// LocalizedText is a text with its locale.
type LocalizedText struct {
	Locale string
	Text   string
}

func (l LocalizedText) String() string {
	if l.Locale == "" {
		return l.Text
	}
	return l.Locale + ":" + l.Text
}
