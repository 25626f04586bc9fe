package term

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mdzio/go-uaport/ua"
)

// Decoder decodes terms from a byte slice.
type Decoder struct {
	r *bytes.Reader
}

// NewDecoder creates a Decoder.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(b)}
}

// Decode decodes a single term and checks that no bytes are left.
func Decode(b []byte) (interface{}, error) {
	d := NewDecoder(b)
	v, err := d.DecodeTerm()
	if err != nil {
		return nil, err
	}
	if err := d.End(); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int {
	return d.r.Len()
}

// End returns a protocol error, if there are unread bytes.
func (d *Decoder) End() error {
	if d.r.Len() != 0 {
		return protocolErrorf("%d trailing bytes", d.r.Len())
	}
	return nil
}

// PeekTag returns the tag of the next term without consuming it.
func (d *Decoder) PeekTag() (byte, error) {
	t, err := d.byte()
	if err != nil {
		return 0, err
	}
	d.r.UnreadByte()
	return t, nil
}

// DecodeValue decodes a value of kind k. Any other tag is a protocol error.
func (d *Decoder) DecodeValue(k ua.Kind) (interface{}, error) {
	if err := d.expectTag(byte(k)); err != nil {
		return nil, err
	}
	return d.decodeBody(k)
}

// DecodeAtom decodes an atom.
func (d *Decoder) DecodeAtom() (Atom, error) {
	if err := d.expectTag(tagAtom); err != nil {
		return "", err
	}
	return d.atom()
}

// DecodeTupleHeader decodes the header of a tuple and returns its arity.
func (d *Decoder) DecodeTupleHeader() (int, error) {
	if err := d.expectTag(tagTuple); err != nil {
		return 0, err
	}
	n, err := d.uint32()
	if err != nil {
		return 0, err
	}
	// every element needs at least one byte
	if int64(n) > int64(d.r.Len()) {
		return 0, protocolErrorf("Tuple arity %d exceeds message", n)
	}
	return int(n), nil
}

// DecodeMap decodes a map with string keys.
func (d *Decoder) DecodeMap() (map[string]interface{}, error) {
	if err := d.expectTag(tagMap); err != nil {
		return nil, err
	}
	return d.mapBody()
}

// DecodeTerm decodes a term of any type. Values of a kind are returned as
// their Go representation, arrays as ua.Variant, tuples as []interface{},
// maps as map[string]interface{}, atoms as Atom and nil as nil.
func (d *Decoder) DecodeTerm() (interface{}, error) {
	tag, err := d.byte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagNil:
		return nil, nil
	case tagAtom:
		return d.atom()
	case tagArray:
		return d.arrayBody()
	case tagTuple:
		d.r.UnreadByte()
		n, err := d.DecodeTupleHeader()
		if err != nil {
			return nil, err
		}
		elems := make([]interface{}, n)
		for i := range elems {
			elems[i], err = d.DecodeTerm()
			if err != nil {
				return nil, err
			}
		}
		return elems, nil
	case tagMap:
		return d.mapBody()
	}
	k := ua.Kind(tag)
	if !k.Valid() {
		return nil, protocolErrorf("Unknown tag 0x%02X", tag)
	}
	return d.decodeBody(k)
}

func (d *Decoder) decodeBody(k ua.Kind) (interface{}, error) {
	switch k {
	case ua.KindBoolean:
		b, err := d.byte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return nil, ua.Errorf(ua.ErrInvalidArgument, "Invalid boolean 0x%02X", b)
	case ua.KindSByte:
		b, err := d.byte()
		return int8(b), err
	case ua.KindByte:
		return d.byte()
	case ua.KindInt16:
		v, err := d.uint16()
		return int16(v), err
	case ua.KindUInt16:
		return d.uint16()
	case ua.KindInt32:
		v, err := d.uint32()
		return int32(v), err
	case ua.KindUInt32:
		return d.uint32()
	case ua.KindInt64:
		v, err := d.uint64()
		return int64(v), err
	case ua.KindUInt64:
		return d.uint64()
	case ua.KindFloat:
		v, err := d.float64()
		if err != nil {
			return nil, err
		}
		if !fitsFloat32(v) {
			return nil, ua.Errorf(ua.ErrInvalidArgument, "Value %g exceeds single precision", v)
		}
		return float32(v), nil
	case ua.KindDouble:
		return d.float64()
	case ua.KindString:
		return d.string()
	case ua.KindDateTime:
		v, err := d.uint64()
		return ua.DateTime(v), err
	case ua.KindGUID:
		return d.guid()
	case ua.KindByteString:
		return d.bytes()
	case ua.KindXMLElement:
		s, err := d.string()
		return ua.XMLElement(s), err
	case ua.KindNodeID:
		return d.nodeID()
	case ua.KindExpandedNodeID:
		return d.expandedNodeID()
	case ua.KindStatusCode:
		s, err := d.string()
		if err != nil {
			return nil, err
		}
		sc, err := ua.ParseStatusCode(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ua.ErrInvalidArgument, err)
		}
		return sc, nil
	case ua.KindQualifiedName:
		return d.qualifiedName()
	case ua.KindLocalizedText:
		locale, err := d.string()
		if err != nil {
			return nil, err
		}
		text, err := d.string()
		if err != nil {
			return nil, err
		}
		return ua.LocalizedText{Locale: locale, Text: text}, nil
	case ua.KindSemanticChange:
		a, err := d.nodeID()
		if err != nil {
			return nil, err
		}
		at, err := d.nodeID()
		if err != nil {
			return nil, err
		}
		return ua.SemanticChange{Affected: a, AffectedType: at}, nil
	case ua.KindTimeString:
		s, err := d.string()
		return ua.TimeString(s), err
	case ua.KindContentMask:
		v, err := d.uint32()
		return ua.ContentMask(v), err
	case ua.KindXV:
		x, err := d.float64()
		if err != nil {
			return nil, err
		}
		v, err := d.float64()
		if err != nil {
			return nil, err
		}
		if !fitsFloat32(v) {
			return nil, ua.Errorf(ua.ErrInvalidArgument, "Value %g exceeds single precision", v)
		}
		return ua.XV{X: x, Value: float32(v)}, nil
	case ua.KindElementOperand:
		v, err := d.uint32()
		return ua.ElementOperand{Index: v}, err
	}
	return nil, protocolErrorf("Unknown kind %d", uint8(k))
}

func fitsFloat32(v float64) bool {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return true
	}
	return math.Abs(v) <= math.MaxFloat32
}

func (d *Decoder) expectTag(want byte) error {
	tag, err := d.byte()
	if err != nil {
		return err
	}
	if tag != want {
		return protocolErrorf("Unexpected tag 0x%02X, expected 0x%02X", tag, want)
	}
	return nil
}

func (d *Decoder) mapBody() (map[string]interface{}, error) {
	n, err := d.uint32()
	if err != nil {
		return nil, err
	}
	// key length and value tag need at least 5 bytes
	if int64(n)*5 > int64(d.r.Len()) {
		return nil, protocolErrorf("Map size %d exceeds message", n)
	}
	m := make(map[string]interface{}, n)
	for i := 0; i < int(n); i++ {
		k, err := d.string()
		if err != nil {
			return nil, err
		}
		v, err := d.DecodeTerm()
		if err != nil {
			return nil, err
		}
		m[k] = v
	}
	return m, nil
}

func (d *Decoder) atom() (Atom, error) {
	n, err := d.byte()
	if err != nil {
		return "", err
	}
	b, err := d.read(int(n))
	if err != nil {
		return "", err
	}
	return Atom(b), nil
}

func (d *Decoder) read(n int) ([]byte, error) {
	if n > d.r.Len() {
		return nil, protocolErrorf("Length %d exceeds message", n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, protocolError("Truncated term", err)
	}
	return b, nil
}

func (d *Decoder) byte() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, protocolError("Truncated term", io.ErrUnexpectedEOF)
	}
	return b, nil
}

func (d *Decoder) uint16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *Decoder) uint32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *Decoder) uint64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (d *Decoder) float64() (float64, error) {
	v, err := d.uint64()
	return math.Float64frombits(v), err
}

func (d *Decoder) string() (string, error) {
	b, err := d.bytes()
	return string(b), err
}

func (d *Decoder) bytes() ([]byte, error) {
	n, err := d.uint32()
	if err != nil {
		return nil, err
	}
	if int64(n) > int64(d.r.Len()) {
		return nil, protocolErrorf("Length %d exceeds message", n)
	}
	return d.read(int(n))
}

func (d *Decoder) guid() (ua.GUID, error) {
	var g ua.GUID
	var err error
	if g.Data1, err = d.uint32(); err != nil {
		return g, err
	}
	d2, err := d.uint32()
	if err != nil {
		return g, err
	}
	d3, err := d.uint32()
	if err != nil {
		return g, err
	}
	tail, err := d.read(8)
	if err != nil {
		return g, err
	}
	if d2 > math.MaxUint16 || d3 > math.MaxUint16 {
		return g, ua.Errorf(ua.ErrInvalidArgument, "GUID field exceeds 16 bits")
	}
	g.Data2, g.Data3 = uint16(d2), uint16(d3)
	copy(g.Data4[:], tail)
	return g, nil
}
