package term

import (
	"fmt"

	"github.com/mdzio/go-uaport/ua"
)

// EncodeVariant encodes an empty variant as nil, a scalar as tagged value and
// an array with element kind and length prefix.
func (e *Encoder) EncodeVariant(v ua.Variant) error {
	switch {
	case v.IsEmpty():
		e.EncodeNil()
		return nil
	case v.IsScalar():
		val, _ := v.At(0)
		return e.EncodeValue(v.Kind(), val)
	}
	return e.EncodeArray(v.Kind(), v.Elems())
}

// DecodeVariant decodes nil, a tagged scalar or an array into a variant.
func (d *Decoder) DecodeVariant() (ua.Variant, error) {
	tag, err := d.byte()
	if err != nil {
		return ua.Variant{}, err
	}
	switch tag {
	case tagNil:
		return ua.Variant{}, nil
	case tagArray:
		return d.arrayBody()
	}
	k := ua.Kind(tag)
	if !k.Valid() {
		return ua.Variant{}, protocolErrorf("Unexpected tag 0x%02X for variant", tag)
	}
	val, err := d.decodeBody(k)
	if err != nil {
		return ua.Variant{}, err
	}
	return ua.NewScalar(k, val)
}

func (d *Decoder) arrayBody() (ua.Variant, error) {
	kb, err := d.byte()
	if err != nil {
		return ua.Variant{}, err
	}
	k := ua.Kind(kb)
	if !k.Valid() {
		return ua.Variant{}, protocolErrorf("Unknown array element kind %d", kb)
	}
	n, err := d.uint32()
	if err != nil {
		return ua.Variant{}, err
	}
	// every element body needs at least one byte
	if int64(n) > int64(d.r.Len()) {
		return ua.Variant{}, protocolErrorf("Array length %d exceeds message", n)
	}
	elems := make([]interface{}, n)
	for i := range elems {
		elems[i], err = d.decodeBody(k)
		if err != nil {
			return ua.Variant{}, fmt.Errorf("Array element %d: %w", i, err)
		}
	}
	return ua.NewArray(k, elems)
}
