package uaclient

import (
	"encoding/base64"
	"errors"
	"fmt"
	"reflect"
	"time"

	gua "github.com/gopcua/opcua/ua"

	"github.com/mdzio/go-uaport/ua"
)

// errUnsupportedType is reported as BadNotSupported.
var errUnsupportedType = errors.New("Unsupported type")

func toNodeID(n ua.NodeID) *gua.NodeID {
	switch n.Type {
	case ua.IDString:
		return gua.NewStringNodeID(n.Namespace, n.String)
	case ua.IDGUID:
		return gua.NewGUIDNodeID(n.Namespace, n.GUID.String())
	case ua.IDOpaque:
		return gua.NewByteStringNodeID(n.Namespace, n.Opaque)
	}
	return gua.NewNumericNodeID(n.Namespace, n.Numeric)
}

func fromNodeID(n *gua.NodeID) (ua.NodeID, error) {
	if n == nil {
		return ua.NodeID{}, nil
	}
	switch n.Type() {
	case gua.NodeIDTypeTwoByte, gua.NodeIDTypeFourByte, gua.NodeIDTypeNumeric:
		return ua.NewNumericNodeID(n.Namespace(), n.IntID()), nil
	case gua.NodeIDTypeString:
		return ua.NewStringNodeID(n.Namespace(), n.StringID()), nil
	case gua.NodeIDTypeGUID:
		g, err := ua.ParseGUID(n.StringID())
		if err != nil {
			return ua.NodeID{}, err
		}
		return ua.NewGUIDNodeID(n.Namespace(), g), nil
	case gua.NodeIDTypeByteString:
		b, err := base64.StdEncoding.DecodeString(n.StringID())
		if err != nil {
			return ua.NodeID{}, fmt.Errorf("Invalid opaque node ID: %w", err)
		}
		return ua.NewOpaqueNodeID(n.Namespace(), b), nil
	}
	return ua.NodeID{}, fmt.Errorf("%w: node ID type %d", errUnsupportedType, n.Type())
}

func toExpandedNodeID(e ua.ExpandedNodeID) *gua.ExpandedNodeID {
	return &gua.ExpandedNodeID{
		NodeID:       toNodeID(e.NodeID),
		NamespaceURI: e.NamespaceURI,
		ServerIndex:  e.ServerIndex,
	}
}

func fromExpandedNodeID(e *gua.ExpandedNodeID) (ua.ExpandedNodeID, error) {
	if e == nil {
		return ua.ExpandedNodeID{}, nil
	}
	n, err := fromNodeID(e.NodeID)
	if err != nil {
		return ua.ExpandedNodeID{}, err
	}
	return ua.ExpandedNodeID{NodeID: n, NamespaceURI: e.NamespaceURI, ServerIndex: e.ServerIndex}, nil
}

func toLocalizedText(lt ua.LocalizedText) *gua.LocalizedText {
	res := &gua.LocalizedText{Locale: lt.Locale, Text: lt.Text}
	if lt.Locale != "" {
		res.EncodingMask |= gua.LocalizedTextLocale
	}
	if lt.Text != "" {
		res.EncodingMask |= gua.LocalizedTextText
	}
	return res
}

func fromLocalizedText(lt *gua.LocalizedText) ua.LocalizedText {
	if lt == nil {
		return ua.LocalizedText{}
	}
	return ua.LocalizedText{Locale: lt.Locale, Text: lt.Text}
}

func fromQualifiedName(qn *gua.QualifiedName) ua.QualifiedName {
	if qn == nil {
		return ua.QualifiedName{}
	}
	return ua.QualifiedName{Namespace: qn.NamespaceIndex, Name: qn.Name}
}

func toGUID(g ua.GUID) *gua.GUID {
	return gua.NewGUID(g.String())
}

// toValue converts a value of kind k into the representation of the library.
// TimeString and ContentMask are sent as their base types.
func toValue(k ua.Kind, v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case ua.DateTime:
		return x.Time(), nil
	case ua.GUID:
		return toGUID(x), nil
	case []byte:
		return append([]byte{}, x...), nil
	case ua.XMLElement:
		return gua.XMLElement(x), nil
	case ua.NodeID:
		return toNodeID(x), nil
	case ua.ExpandedNodeID:
		return toExpandedNodeID(x), nil
	case ua.StatusCode:
		return gua.StatusCode(x), nil
	case ua.QualifiedName:
		return &gua.QualifiedName{NamespaceIndex: x.Namespace, Name: x.Name}, nil
	case ua.LocalizedText:
		return toLocalizedText(x), nil
	case ua.TimeString:
		return string(x), nil
	case ua.ContentMask:
		return uint32(x), nil
	case ua.SemanticChange, ua.XV, ua.ElementOperand:
		return nil, fmt.Errorf("%w: %s", errUnsupportedType, k)
	}
	return v, nil
}

// fromValue converts a scalar of the library into a value of kind k.
func fromValue(k ua.Kind, v interface{}) (interface{}, error) {
	switch x := v.(type) {
	case time.Time:
		return ua.NewDateTime(x), nil
	case *gua.GUID:
		if x == nil {
			return ua.GUID{}, nil
		}
		return ua.ParseGUID(x.String())
	case []byte:
		return append([]byte{}, x...), nil
	case gua.XMLElement:
		return ua.XMLElement(x), nil
	case *gua.NodeID:
		return fromNodeID(x)
	case *gua.ExpandedNodeID:
		return fromExpandedNodeID(x)
	case gua.StatusCode:
		return ua.StatusCode(x), nil
	case *gua.QualifiedName:
		return fromQualifiedName(x), nil
	case *gua.LocalizedText:
		return fromLocalizedText(x), nil
	}
	if err := ua.CheckValue(k, v); err != nil {
		return nil, fmt.Errorf("%w: %T", errUnsupportedType, v)
	}
	return v, nil
}

// kindOf maps a builtin type of the library onto a kind. The builtin type IDs
// equal the kind numbers.
func kindOf(t gua.TypeID) (ua.Kind, bool) {
	k := ua.Kind(t)
	if k < ua.KindBoolean || k > ua.KindLocalizedText {
		return 0, false
	}
	return k, true
}

// newVariant creates a variant of the library. Values it cannot encode are
// unsupported.
func newVariant(v interface{}) (*gua.Variant, error) {
	gv, err := gua.NewVariant(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUnsupportedType, err)
	}
	return gv, nil
}

// toVariant converts a variant into a variant of the library. Arrays become
// typed slices.
func toVariant(v ua.Variant) (*gua.Variant, error) {
	if v.IsEmpty() {
		return &gua.Variant{}, nil
	}
	if v.IsScalar() {
		val, err := toValue(v.Kind(), v.Value())
		if err != nil {
			return nil, err
		}
		return newVariant(val)
	}
	// the library takes a []byte as ByteString and a [][]byte as a
	// multi-dimensional Byte array
	if v.Kind() == ua.KindByte || v.Kind() == ua.KindByteString {
		return nil, fmt.Errorf("%w: array of %s", errUnsupportedType, v.Kind())
	}
	zero, err := ua.Zero(v.Kind())
	if err != nil {
		return nil, err
	}
	sample, err := toValue(v.Kind(), zero)
	if err != nil {
		return nil, err
	}
	elems := v.Elems()
	slice := reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(sample)), len(elems), len(elems))
	for i, e := range elems {
		val, err := toValue(v.Kind(), e)
		if err != nil {
			return nil, err
		}
		slice.Index(i).Set(reflect.ValueOf(val))
	}
	return newVariant(slice.Interface())
}

// fromVariant converts a variant of the library.
func fromVariant(v *gua.Variant) (ua.Variant, error) {
	if v == nil || v.Type() == gua.TypeIDNull {
		return ua.Variant{}, nil
	}
	k, ok := kindOf(v.Type())
	if !ok {
		return ua.Variant{}, fmt.Errorf("%w: variant type %d", errUnsupportedType, v.Type())
	}
	val := v.Value()
	rv := reflect.ValueOf(val)
	isArray := rv.Kind() == reflect.Slice && !(k == ua.KindByteString && rv.Type().Elem().Kind() == reflect.Uint8)
	if !isArray {
		x, err := fromValue(k, val)
		if err != nil {
			return ua.Variant{}, err
		}
		return ua.NewScalar(k, x)
	}
	elems := make([]interface{}, rv.Len())
	for i := range elems {
		x, err := fromValue(k, rv.Index(i).Interface())
		if err != nil {
			return ua.Variant{}, err
		}
		elems[i] = x
	}
	return ua.NewArray(k, elems)
}

// fromAttribute converts the value of a non-value attribute into the Go type
// of its kind.
func fromAttribute(attr ua.AttributeID, v *gua.Variant) (interface{}, error) {
	if attr == ua.AttrValue {
		return fromVariant(v)
	}
	var val interface{}
	if v != nil {
		val = v.Value()
	}
	switch attr {
	case ua.AttrArrayDimensions:
		switch dims := val.(type) {
		case nil:
			return []uint32{}, nil
		case []uint32:
			return append([]uint32{}, dims...), nil
		}
		return nil, fmt.Errorf("%w: array dimensions of type %T", errUnsupportedType, val)
	case ua.AttrNodeClass:
		if c, ok := val.(int32); ok {
			return c, nil
		}
		if c, ok := val.(uint32); ok {
			return int32(c), nil
		}
		return nil, fmt.Errorf("%w: node class of type %T", errUnsupportedType, val)
	}
	k, ok := attr.Kind()
	if !ok {
		return nil, ua.StatusBadAttributeIdInvalid
	}
	return fromValue(k, val)
}

// toAttribute converts the value of an attribute write.
func toAttribute(attr ua.AttributeID, value interface{}) (*gua.Variant, error) {
	if attr == ua.AttrValue {
		v, ok := value.(ua.Variant)
		if !ok {
			return nil, ua.StatusBadTypeMismatch
		}
		return toVariant(v)
	}
	if dims, ok := value.([]uint32); ok {
		return newVariant(append([]uint32{}, dims...))
	}
	k, ok := ua.KindOf(value)
	if !ok {
		return nil, ua.StatusBadTypeMismatch
	}
	val, err := toValue(k, value)
	if err != nil {
		return nil, err
	}
	return newVariant(val)
}

// statusOf maps an error of the library onto a status code. Errors without a
// status are communication errors.
func statusOf(err error) error {
	if err == nil {
		return nil
	}
	var sc gua.StatusCode
	if errors.As(err, &sc) {
		return ua.StatusCode(sc)
	}
	if errors.Is(err, errUnsupportedType) {
		log.Debugf("Conversion failed: %v", err)
		return ua.StatusBadNotSupported
	}
	if _, ok := ua.AsLocal(err); ok {
		return err
	}
	if s, ok := ua.AsStatus(err); ok {
		return s
	}
	log.Debugf("Request failed: %v", err)
	return ua.StatusBadCommunicationError
}
