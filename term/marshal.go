package term

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/mdzio/go-uaport/ua"
)

// Encoder encodes terms into an internal buffer.
type Encoder struct {
	bytes.Buffer
}

// NewEncoder creates an Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode encodes a single term and returns the bytes.
func Encode(v interface{}) ([]byte, error) {
	e := NewEncoder()
	if err := e.EncodeTerm(v); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeNil encodes the absent value.
func (e *Encoder) EncodeNil() {
	e.WriteByte(tagNil)
}

// EncodeAtom encodes an atom.
func (e *Encoder) EncodeAtom(a Atom) error {
	if len(a) > maxAtomLen {
		return ua.Errorf(ua.ErrInvalidArgument, "Atom too long: %d", len(a))
	}
	e.WriteByte(tagAtom)
	e.WriteByte(byte(len(a)))
	e.WriteString(string(a))
	return nil
}

// EncodeValue encodes a value of kind k with its tag.
func (e *Encoder) EncodeValue(k ua.Kind, v interface{}) error {
	if !k.Valid() {
		return ua.Errorf(ua.ErrInvalidArgument, "Invalid kind %d", uint8(k))
	}
	if err := ua.CheckValue(k, v); err != nil {
		return err
	}
	e.WriteByte(byte(k))
	if err := e.encodeBody(k, v); err != nil {
		return fmt.Errorf("Failed to encode %s: %w", k, err)
	}
	return nil
}

// EncodeTuple encodes a tuple of terms.
func (e *Encoder) EncodeTuple(elems ...interface{}) error {
	e.WriteByte(tagTuple)
	e.putUint32(uint32(len(elems)))
	for i, el := range elems {
		if err := e.EncodeTerm(el); err != nil {
			return fmt.Errorf("Failed to encode tuple element %d: %w", i, err)
		}
	}
	return nil
}

// EncodeMap encodes a map with string keys. The keys are written in sorted
// order.
func (e *Encoder) EncodeMap(m map[string]interface{}) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e.WriteByte(tagMap)
	e.putUint32(uint32(len(keys)))
	for _, k := range keys {
		e.putString(k)
		if err := e.EncodeTerm(m[k]); err != nil {
			return fmt.Errorf("Failed to encode map entry %s: %w", k, err)
		}
	}
	return nil
}

// EncodeTerm encodes a Go value by its runtime type: nil, Atom, ua.Variant,
// []interface{} (tuple), map[string]interface{}, []map[string]interface{}
// (tuple of maps), slices of a value kind (array) and values of a kind.
func (e *Encoder) EncodeTerm(v interface{}) error {
	switch t := v.(type) {
	case nil:
		e.EncodeNil()
		return nil
	case Atom:
		return e.EncodeAtom(t)
	case ua.Variant:
		return e.EncodeVariant(t)
	case []interface{}:
		return e.EncodeTuple(t...)
	case map[string]interface{}:
		return e.EncodeMap(t)
	case []map[string]interface{}:
		elems := make([]interface{}, len(t))
		for i, m := range t {
			elems[i] = m
		}
		return e.EncodeTuple(elems...)
	}
	if k, ok := ua.KindOf(v); ok {
		return e.EncodeValue(k, v)
	}
	// typed slices are encoded as arrays
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice {
		k, ok := ua.KindOf(reflect.Zero(rv.Type().Elem()).Interface())
		if ok {
			elems := make([]interface{}, rv.Len())
			for i := range elems {
				elems[i] = rv.Index(i).Interface()
			}
			return e.EncodeArray(k, elems)
		}
	}
	return ua.Errorf(ua.ErrInvalidArgument, "Unsupported type for encoding: %T", v)
}

// EncodeArray encodes a homogeneous array.
func (e *Encoder) EncodeArray(k ua.Kind, elems []interface{}) error {
	if !k.Valid() {
		return ua.Errorf(ua.ErrInvalidArgument, "Invalid array kind %d", uint8(k))
	}
	e.WriteByte(tagArray)
	e.WriteByte(byte(k))
	e.putUint32(uint32(len(elems)))
	for i, el := range elems {
		if err := ua.CheckValue(k, el); err != nil {
			return fmt.Errorf("Array element %d: %w", i, err)
		}
		if err := e.encodeBody(k, el); err != nil {
			return fmt.Errorf("Failed to encode array element %d: %w", i, err)
		}
	}
	return nil
}

func (e *Encoder) encodeBody(k ua.Kind, v interface{}) error {
	switch k {
	case ua.KindBoolean:
		if v.(bool) {
			e.WriteByte(1)
		} else {
			e.WriteByte(0)
		}
	case ua.KindSByte:
		e.WriteByte(byte(v.(int8)))
	case ua.KindByte:
		e.WriteByte(v.(uint8))
	case ua.KindInt16:
		e.putUint16(uint16(v.(int16)))
	case ua.KindUInt16:
		e.putUint16(v.(uint16))
	case ua.KindInt32:
		e.putUint32(uint32(v.(int32)))
	case ua.KindUInt32:
		e.putUint32(v.(uint32))
	case ua.KindInt64:
		e.putUint64(uint64(v.(int64)))
	case ua.KindUInt64:
		e.putUint64(v.(uint64))
	case ua.KindFloat:
		// single precision is carried as double
		e.putFloat64(float64(v.(float32)))
	case ua.KindDouble:
		e.putFloat64(v.(float64))
	case ua.KindString:
		e.putString(v.(string))
	case ua.KindDateTime:
		e.putUint64(uint64(v.(ua.DateTime)))
	case ua.KindGUID:
		e.putGUID(v.(ua.GUID))
	case ua.KindByteString:
		e.putBytes(v.([]byte))
	case ua.KindXMLElement:
		e.putString(string(v.(ua.XMLElement)))
	case ua.KindNodeID:
		return e.putNodeID(v.(ua.NodeID))
	case ua.KindExpandedNodeID:
		return e.putExpandedNodeID(v.(ua.ExpandedNodeID))
	case ua.KindStatusCode:
		sc := v.(ua.StatusCode)
		if !sc.Known() {
			return ua.Errorf(ua.ErrInvalidArgument, "Status code 0x%08X has no mnemonic", uint32(sc))
		}
		e.putString(sc.Name())
	case ua.KindQualifiedName:
		e.putQualifiedName(v.(ua.QualifiedName))
	case ua.KindLocalizedText:
		lt := v.(ua.LocalizedText)
		e.putString(lt.Locale)
		e.putString(lt.Text)
	case ua.KindSemanticChange:
		sc := v.(ua.SemanticChange)
		if err := e.putNodeID(sc.Affected); err != nil {
			return err
		}
		return e.putNodeID(sc.AffectedType)
	case ua.KindTimeString:
		e.putString(string(v.(ua.TimeString)))
	case ua.KindContentMask:
		e.putUint32(uint32(v.(ua.ContentMask)))
	case ua.KindXV:
		xv := v.(ua.XV)
		e.putFloat64(xv.X)
		e.putFloat64(float64(xv.Value))
	case ua.KindElementOperand:
		e.putUint32(v.(ua.ElementOperand).Index)
	default:
		return ua.Errorf(ua.ErrInvalidArgument, "Invalid kind %d", uint8(k))
	}
	return nil
}

func (e *Encoder) putUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.Write(b[:])
}

func (e *Encoder) putUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.Write(b[:])
}

func (e *Encoder) putUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.Write(b[:])
}

func (e *Encoder) putFloat64(v float64) {
	e.putUint64(math.Float64bits(v))
}

func (e *Encoder) putString(s string) {
	e.putUint32(uint32(len(s)))
	e.WriteString(s)
}

func (e *Encoder) putBytes(b []byte) {
	e.putUint32(uint32(len(b)))
	e.Write(b)
}

func (e *Encoder) putGUID(g ua.GUID) {
	// data2 and data3 are carried as 32 bit fields
	e.putUint32(g.Data1)
	e.putUint32(uint32(g.Data2))
	e.putUint32(uint32(g.Data3))
	e.Write(g.Data4[:])
}
