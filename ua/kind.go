package ua

import (
	"errors"
	"fmt"
)

// Kind identifies the type of a value on the channel. The numeric values are
// used as wire tags and must not change.
type Kind uint8

// Value kinds. The builtin kinds use the OPC UA builtin type ids.
const (
	KindBoolean Kind = iota + 1
	KindSByte
	KindByte
	KindInt16
	KindUInt16
	KindInt32
	KindUInt32
	KindInt64
	KindUInt64
	KindFloat
	KindDouble
	KindString
	KindDateTime
	KindGUID
	KindByteString
	KindXMLElement
	KindNodeID
	KindExpandedNodeID
	KindStatusCode
	KindQualifiedName
	KindLocalizedText
	KindSemanticChange
	KindTimeString
	KindContentMask
	KindXV
	KindElementOperand

	kindEnd
)

var kindStr = []string{
	"Invalid",
	"Boolean",
	"SByte",
	"Byte",
	"Int16",
	"UInt16",
	"Int32",
	"UInt32",
	"Int64",
	"UInt64",
	"Float",
	"Double",
	"String",
	"DateTime",
	"Guid",
	"ByteString",
	"XmlElement",
	"NodeId",
	"ExpandedNodeId",
	"StatusCode",
	"QualifiedName",
	"LocalizedText",
	"SemanticChangeStructureDataType",
	"TimeString",
	"UadpNetworkMessageContentMask",
	"XVType",
	"ElementOperand",
}

var errInvalidKind = errors.New("Invalid value kind")

// Kinds returns all valid kinds in wire tag order.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindEnd-1)
	for k := KindBoolean; k < kindEnd; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k >= KindBoolean && k < kindEnd
}

// String implements fmt.Stringer and flag.Value.
func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Set implements flag.Value.
func (k *Kind) Set(value string) error {
	for idx, str := range kindStr {
		if idx != 0 && str == value {
			*k = Kind(idx)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", errInvalidKind, value)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", errInvalidKind, uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	return k.Set(string(text))
}

// KindOf returns the kind of a Go value or false, if the type does not map to
// a kind.
func KindOf(v interface{}) (Kind, bool) {
	switch v.(type) {
	case bool:
		return KindBoolean, true
	case int8:
		return KindSByte, true
	case uint8:
		return KindByte, true
	case int16:
		return KindInt16, true
	case uint16:
		return KindUInt16, true
	case int32:
		return KindInt32, true
	case uint32:
		return KindUInt32, true
	case int64:
		return KindInt64, true
	case uint64:
		return KindUInt64, true
	case float32:
		return KindFloat, true
	case float64:
		return KindDouble, true
	case string:
		return KindString, true
	case DateTime:
		return KindDateTime, true
	case GUID:
		return KindGUID, true
	case []byte:
		return KindByteString, true
	case XMLElement:
		return KindXMLElement, true
	case NodeID:
		return KindNodeID, true
	case ExpandedNodeID:
		return KindExpandedNodeID, true
	case StatusCode:
		return KindStatusCode, true
	case QualifiedName:
		return KindQualifiedName, true
	case LocalizedText:
		return KindLocalizedText, true
	case SemanticChange:
		return KindSemanticChange, true
	case TimeString:
		return KindTimeString, true
	case ContentMask:
		return KindContentMask, true
	case XV:
		return KindXV, true
	case ElementOperand:
		return KindElementOperand, true
	}
	return 0, false
}

// Zero returns the zero value of a kind.
func Zero(k Kind) (interface{}, error) {
	switch k {
	case KindBoolean:
		return false, nil
	case KindSByte:
		return int8(0), nil
	case KindByte:
		return uint8(0), nil
	case KindInt16:
		return int16(0), nil
	case KindUInt16:
		return uint16(0), nil
	case KindInt32:
		return int32(0), nil
	case KindUInt32:
		return uint32(0), nil
	case KindInt64:
		return int64(0), nil
	case KindUInt64:
		return uint64(0), nil
	case KindFloat:
		return float32(0), nil
	case KindDouble:
		return float64(0), nil
	case KindString:
		return "", nil
	case KindDateTime:
		return DateTime(0), nil
	case KindGUID:
		return GUID{}, nil
	case KindByteString:
		return []byte{}, nil
	case KindXMLElement:
		return XMLElement(""), nil
	case KindNodeID:
		return NodeID{}, nil
	case KindExpandedNodeID:
		return ExpandedNodeID{}, nil
	case KindStatusCode:
		return StatusGood, nil
	case KindQualifiedName:
		return QualifiedName{}, nil
	case KindLocalizedText:
		return LocalizedText{}, nil
	case KindSemanticChange:
		return SemanticChange{}, nil
	case KindTimeString:
		return TimeString(""), nil
	case KindContentMask:
		return ContentMask(0), nil
	case KindXV:
		return XV{}, nil
	case KindElementOperand:
		return ElementOperand{}, nil
	}
	return nil, fmt.Errorf("%w: %d", errInvalidKind, uint8(k))
}

// CheckValue checks that v is a Go value of kind k.
func CheckValue(k Kind, v interface{}) error {
	vk, ok := KindOf(v)
	if !ok {
		return Errorf(ErrInvalidArgument, "Unsupported value type %T", v)
	}
	if vk != k {
		return Errorf(ErrInvalidArgument, "Value of kind %s expected, got %s", k, vk)
	}
	return nil
}
