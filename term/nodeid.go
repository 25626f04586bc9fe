package term

import (
	"github.com/mdzio/go-uaport/ua"
)

// Node IDs are written as identifier type, namespace index and a type
// specific identifier. Expanded node IDs always carry the namespace URI and
// the server index, empty or zero if not used.

// EncodeNodeID encodes a tagged node ID.
func (e *Encoder) EncodeNodeID(n ua.NodeID) error {
	return e.EncodeValue(ua.KindNodeID, n)
}

// EncodeExpandedNodeID encodes a tagged expanded node ID.
func (e *Encoder) EncodeExpandedNodeID(n ua.ExpandedNodeID) error {
	return e.EncodeValue(ua.KindExpandedNodeID, n)
}

// EncodeQualifiedName encodes a tagged qualified name.
func (e *Encoder) EncodeQualifiedName(q ua.QualifiedName) error {
	return e.EncodeValue(ua.KindQualifiedName, q)
}

func (e *Encoder) putNodeID(n ua.NodeID) error {
	if !n.Type.Valid() {
		return ua.Errorf(ua.ErrInvalidArgument, "Invalid node ID type %d", uint8(n.Type))
	}
	e.WriteByte(byte(n.Type))
	e.putUint16(n.Namespace)
	switch n.Type {
	case ua.IDNumeric:
		e.putUint32(n.Numeric)
	case ua.IDString:
		e.putString(n.String)
	case ua.IDGUID:
		e.putGUID(n.GUID)
	case ua.IDOpaque:
		e.putBytes(n.Opaque)
	}
	return nil
}

func (e *Encoder) putExpandedNodeID(n ua.ExpandedNodeID) error {
	if err := e.putNodeID(n.NodeID); err != nil {
		return err
	}
	e.putString(n.NamespaceURI)
	e.putUint32(n.ServerIndex)
	return nil
}

func (e *Encoder) putQualifiedName(q ua.QualifiedName) {
	e.putUint16(q.Namespace)
	e.putString(q.Name)
}

// DecodeNodeID decodes a tagged node ID.
func (d *Decoder) DecodeNodeID() (ua.NodeID, error) {
	if err := d.expectTag(byte(ua.KindNodeID)); err != nil {
		return ua.NodeID{}, err
	}
	return d.nodeID()
}

// DecodeExpandedNodeID decodes a tagged expanded node ID.
func (d *Decoder) DecodeExpandedNodeID() (ua.ExpandedNodeID, error) {
	if err := d.expectTag(byte(ua.KindExpandedNodeID)); err != nil {
		return ua.ExpandedNodeID{}, err
	}
	return d.expandedNodeID()
}

// DecodeQualifiedName decodes a tagged qualified name.
func (d *Decoder) DecodeQualifiedName() (ua.QualifiedName, error) {
	if err := d.expectTag(byte(ua.KindQualifiedName)); err != nil {
		return ua.QualifiedName{}, err
	}
	return d.qualifiedName()
}

func (d *Decoder) nodeID() (ua.NodeID, error) {
	t, err := d.byte()
	if err != nil {
		return ua.NodeID{}, err
	}
	typ := ua.IDType(t)
	if !typ.Valid() {
		return ua.NodeID{}, protocolErrorf("Unknown node ID type %d", t)
	}
	ns, err := d.uint16()
	if err != nil {
		return ua.NodeID{}, err
	}
	n := ua.NodeID{Namespace: ns, Type: typ}
	switch typ {
	case ua.IDNumeric:
		n.Numeric, err = d.uint32()
	case ua.IDString:
		n.String, err = d.string()
	case ua.IDGUID:
		n.GUID, err = d.guid()
	case ua.IDOpaque:
		n.Opaque, err = d.bytes()
	}
	if err != nil {
		return ua.NodeID{}, err
	}
	return n, nil
}

func (d *Decoder) expandedNodeID() (ua.ExpandedNodeID, error) {
	n, err := d.nodeID()
	if err != nil {
		return ua.ExpandedNodeID{}, err
	}
	uri, err := d.string()
	if err != nil {
		return ua.ExpandedNodeID{}, err
	}
	idx, err := d.uint32()
	if err != nil {
		return ua.ExpandedNodeID{}, err
	}
	return ua.ExpandedNodeID{NodeID: n, NamespaceURI: uri, ServerIndex: idx}, nil
}

func (d *Decoder) qualifiedName() (ua.QualifiedName, error) {
	ns, err := d.uint16()
	if err != nil {
		return ua.QualifiedName{}, err
	}
	name, err := d.string()
	if err != nil {
		return ua.QualifiedName{}, err
	}
	return ua.QualifiedName{Namespace: ns, Name: name}, nil
}
