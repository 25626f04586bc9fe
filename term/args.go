package term

import (
	"fmt"
	"math"

	"github.com/mdzio/go-uaport/ua"
)

// Args reads the argument tuple of a request. The first error is sticky: all
// following accessors return zero values and Done returns the error.
//
// Wrong arity, wrong tags and trailing bytes produce a ProtocolError. Values
// outside the range of the requested Go type produce ua.ErrInvalidArgument.
type Args struct {
	d     *Decoder
	arity int
	read  int
	err   error
}

// NewArgs creates an argument reader for an encoded tuple.
func NewArgs(payload []byte) *Args {
	a := &Args{d: NewDecoder(payload)}
	a.arity, a.err = a.d.DecodeTupleHeader()
	return a
}

// Arity returns the number of arguments.
func (a *Args) Arity() int {
	return a.arity
}

// Expect checks the number of arguments.
func (a *Args) Expect(n int) {
	if a.err == nil && a.arity != n {
		a.err = protocolErrorf("Expected %d arguments, got %d", n, a.arity)
	}
}

// Err returns the first error.
func (a *Args) Err() error {
	return a.err
}

// Done checks that all arguments were consumed and returns the first error.
func (a *Args) Done() error {
	if a.err != nil {
		return a.err
	}
	if a.read != a.arity {
		return protocolErrorf("%d of %d arguments consumed", a.read, a.arity)
	}
	return a.d.End()
}

func (a *Args) next() bool {
	if a.err != nil {
		return false
	}
	if a.read >= a.arity {
		a.err = protocolErrorf("Missing argument %d", a.read+1)
		return false
	}
	a.read++
	return true
}

func (a *Args) fail(err error) {
	if a.err == nil {
		a.err = fmt.Errorf("Argument %d: %w", a.read, err)
	}
}

// NodeID reads a node ID.
func (a *Args) NodeID() ua.NodeID {
	if !a.next() {
		return ua.NodeID{}
	}
	n, err := a.d.DecodeNodeID()
	if err != nil {
		a.fail(err)
	}
	return n
}

// ExpandedNodeID reads an expanded node ID.
func (a *Args) ExpandedNodeID() ua.ExpandedNodeID {
	if !a.next() {
		return ua.ExpandedNodeID{}
	}
	n, err := a.d.DecodeExpandedNodeID()
	if err != nil {
		a.fail(err)
	}
	return n
}

// QualifiedName reads a qualified name.
func (a *Args) QualifiedName() ua.QualifiedName {
	if !a.next() {
		return ua.QualifiedName{}
	}
	q, err := a.d.DecodeQualifiedName()
	if err != nil {
		a.fail(err)
	}
	return q
}

// String reads a string.
func (a *Args) String() string {
	if !a.next() {
		return ""
	}
	v, err := a.d.DecodeValue(ua.KindString)
	if err != nil {
		a.fail(err)
		return ""
	}
	return v.(string)
}

// Bool reads a boolean.
func (a *Args) Bool() bool {
	if !a.next() {
		return false
	}
	v, err := a.d.DecodeValue(ua.KindBoolean)
	if err != nil {
		a.fail(err)
		return false
	}
	return v.(bool)
}

// Double reads a float or double.
func (a *Args) Double() float64 {
	if !a.next() {
		return 0
	}
	tag, err := a.d.PeekTag()
	if err != nil {
		a.fail(err)
		return 0
	}
	if ua.Kind(tag) == ua.KindFloat {
		v, err := a.d.DecodeValue(ua.KindFloat)
		if err != nil {
			a.fail(err)
			return 0
		}
		return float64(v.(float32))
	}
	v, err := a.d.DecodeValue(ua.KindDouble)
	if err != nil {
		a.fail(err)
		return 0
	}
	return v.(float64)
}

// Map reads a map.
func (a *Args) Map() map[string]interface{} {
	if !a.next() {
		return nil
	}
	m, err := a.d.DecodeMap()
	if err != nil {
		a.fail(err)
	}
	return m
}

// Variant reads nil, a scalar or an array.
func (a *Args) Variant() ua.Variant {
	if !a.next() {
		return ua.Variant{}
	}
	v, err := a.d.DecodeVariant()
	if err != nil {
		a.fail(err)
	}
	return v
}

// Value reads a scalar of kind k. A scalar of another kind is an invalid
// argument, not a protocol error, because the kind is chosen at runtime by
// the caller.
func (a *Args) Value(k ua.Kind) interface{} {
	if !a.next() {
		return nil
	}
	v, err := a.d.DecodeTerm()
	if err != nil {
		a.fail(err)
		return nil
	}
	vk, ok := ua.KindOf(v)
	if !ok || vk != k {
		a.fail(ua.Errorf(ua.ErrInvalidArgument, "Value of kind %s expected", k))
		return nil
	}
	return v
}

// Kind reads an unsigned integer and checks it for a valid kind.
func (a *Args) Kind() ua.Kind {
	v := a.unsigned(math.MaxUint8)
	if a.err != nil {
		return 0
	}
	k := ua.Kind(v)
	if !k.Valid() {
		a.fail(ua.Errorf(ua.ErrInvalidArgument, "Invalid kind %d", v))
		return 0
	}
	return k
}

// Byte reads an unsigned integer fitting into a byte.
func (a *Args) Byte() uint8 {
	return uint8(a.unsigned(math.MaxUint8))
}

// UInt32 reads an unsigned integer fitting into 32 bits.
func (a *Args) UInt32() uint32 {
	return uint32(a.unsigned(math.MaxUint32))
}

// Int32 reads a signed integer fitting into 32 bits.
func (a *Args) Int32() int32 {
	return int32(a.signed(math.MinInt32, math.MaxInt32))
}

// UInt32Array reads an array of unsigned 32 bit integers.
func (a *Args) UInt32Array() []uint32 {
	v := a.Variant()
	if a.err != nil {
		return nil
	}
	if !v.IsArray() || v.Kind() != ua.KindUInt32 {
		a.fail(ua.Errorf(ua.ErrInvalidArgument, "UInt32 array expected"))
		return nil
	}
	res := make([]uint32, 0, v.Len())
	for _, e := range v.Elems() {
		res = append(res, e.(uint32))
	}
	return res
}

// unsigned reads any integer kind and checks the range.
func (a *Args) unsigned(max uint64) uint64 {
	if !a.next() {
		return 0
	}
	neg, mag, err := a.integer()
	if err != nil {
		a.fail(err)
		return 0
	}
	if neg || mag > max {
		a.fail(ua.Errorf(ua.ErrInvalidArgument, "Value out of range 0..%d", max))
		return 0
	}
	return mag
}

// signed reads any integer kind and checks the range.
func (a *Args) signed(min, max int64) int64 {
	if !a.next() {
		return 0
	}
	neg, mag, err := a.integer()
	if err != nil {
		a.fail(err)
		return 0
	}
	if neg {
		if mag > uint64(-(min+1))+1 {
			a.fail(ua.Errorf(ua.ErrInvalidArgument, "Value out of range %d..%d", min, max))
			return 0
		}
		return -int64(mag-1) - 1
	}
	if mag > uint64(max) {
		a.fail(ua.Errorf(ua.ErrInvalidArgument, "Value out of range %d..%d", min, max))
		return 0
	}
	return int64(mag)
}

// integer decodes an integer of any kind as sign and magnitude.
func (a *Args) integer() (bool, uint64, error) {
	tag, err := a.d.PeekTag()
	if err != nil {
		return false, 0, err
	}
	k := ua.Kind(tag)
	switch k {
	case ua.KindSByte, ua.KindInt16, ua.KindInt32, ua.KindInt64:
		v, err := a.d.DecodeValue(k)
		if err != nil {
			return false, 0, err
		}
		var i int64
		switch t := v.(type) {
		case int8:
			i = int64(t)
		case int16:
			i = int64(t)
		case int32:
			i = int64(t)
		case int64:
			i = t
		}
		if i < 0 {
			return true, uint64(-(i + 1)) + 1, nil
		}
		return false, uint64(i), nil
	case ua.KindByte, ua.KindUInt16, ua.KindUInt32, ua.KindUInt64:
		v, err := a.d.DecodeValue(k)
		if err != nil {
			return false, 0, err
		}
		switch t := v.(type) {
		case uint8:
			return false, uint64(t), nil
		case uint16:
			return false, uint64(t), nil
		case uint32:
			return false, uint64(t), nil
		case uint64:
			return false, t, nil
		}
	}
	return false, 0, protocolErrorf("Integer expected, got tag 0x%02X", tag)
}
