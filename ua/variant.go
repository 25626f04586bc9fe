package ua

import (
	"fmt"
	"strings"
)

// Variant holds an attribute value of a kind known only at runtime. A variant
// is empty (no value), a scalar or a homogeneous array. The zero value is an
// empty variant.
type Variant struct {
	kind  Kind
	array bool
	elems []interface{}
}

// NewScalar creates a scalar variant.
func NewScalar(k Kind, v interface{}) (Variant, error) {
	if err := CheckValue(k, v); err != nil {
		return Variant{}, err
	}
	return Variant{kind: k, elems: []interface{}{copyValue(v)}}, nil
}

// ScalarOf creates a scalar variant with the kind derived from the Go type of
// v.
func ScalarOf(v interface{}) (Variant, error) {
	k, ok := KindOf(v)
	if !ok {
		return Variant{}, Errorf(ErrInvalidArgument, "Unsupported value type %T", v)
	}
	return NewScalar(k, v)
}

// NewArray creates an array variant. The elements are copied.
func NewArray(k Kind, elems []interface{}) (Variant, error) {
	if !k.Valid() {
		return Variant{}, Errorf(ErrInvalidArgument, "Invalid kind %d", uint8(k))
	}
	cp := make([]interface{}, len(elems))
	for i, e := range elems {
		if err := CheckValue(k, e); err != nil {
			return Variant{}, fmt.Errorf("Element %d: %w", i, err)
		}
		cp[i] = copyValue(e)
	}
	return Variant{kind: k, array: true, elems: cp}, nil
}

// NewBlankArray creates an array of n zero values.
func NewBlankArray(k Kind, n int) (Variant, error) {
	zero, err := Zero(k)
	if err != nil {
		return Variant{}, Errorf(ErrInvalidArgument, "%v", err)
	}
	if n < 0 {
		return Variant{}, Errorf(ErrInvalidArgument, "Negative array length %d", n)
	}
	elems := make([]interface{}, n)
	for i := range elems {
		elems[i] = copyValue(zero)
	}
	return Variant{kind: k, array: true, elems: elems}, nil
}

// Kind returns the kind of the value. It is 0 for an empty variant.
func (v Variant) Kind() Kind { return v.kind }

// IsEmpty reports whether no value is set.
func (v Variant) IsEmpty() bool { return v.elems == nil && !v.array }

// IsScalar reports whether v holds a single value.
func (v Variant) IsScalar() bool { return !v.array && v.elems != nil }

// IsArray reports whether v holds an array (possibly of length 0).
func (v Variant) IsArray() bool { return v.array }

// Len returns the number of elements: 0 for empty, 1 for a scalar.
func (v Variant) Len() int { return len(v.elems) }

// Value returns the scalar value, a copy of the array elements as
// []interface{} or nil for an empty variant.
func (v Variant) Value() interface{} {
	switch {
	case v.IsScalar():
		return copyValue(v.elems[0])
	case v.array:
		return v.Elems()
	}
	return nil
}

// Elems returns a copy of the elements. A scalar is returned as a single
// element.
func (v Variant) Elems() []interface{} {
	cp := make([]interface{}, len(v.elems))
	for i, e := range v.elems {
		cp[i] = copyValue(e)
	}
	return cp
}

// At returns the element at index i. The scalar is available at index 0.
func (v Variant) At(i int) (interface{}, error) {
	if i < 0 || i >= len(v.elems) {
		return nil, Errorf(ErrOutOfRange, "Index %d out of range (length %d)", i, len(v.elems))
	}
	return copyValue(v.elems[i]), nil
}

// Set replaces the element at index i. An array keeps its length. Setting
// index 0 of an empty variant creates a scalar. The previous element is not
// referenced anymore and values are copied before installation.
func (v *Variant) Set(i int, val interface{}) error {
	if v.IsEmpty() {
		if i != 0 {
			return Errorf(ErrOutOfRange, "Index %d out of range for empty value", i)
		}
		nv, err := ScalarOf(val)
		if err != nil {
			return err
		}
		*v = nv
		return nil
	}
	if i < 0 || i >= len(v.elems) {
		return Errorf(ErrOutOfRange, "Index %d out of range (length %d)", i, len(v.elems))
	}
	if err := CheckValue(v.kind, val); err != nil {
		return err
	}
	// copy on write, other copies of v share the element slice
	elems := make([]interface{}, len(v.elems))
	copy(elems, v.elems)
	elems[i] = copyValue(val)
	v.elems = elems
	return nil
}

func (v Variant) String() string {
	switch {
	case v.IsEmpty():
		return "nil"
	case v.IsScalar():
		return fmt.Sprintf("%s(%v)", v.kind, v.elems[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[]%s{", v.kind)
	for i, e := range v.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, e)
	}
	sb.WriteString("}")
	return sb.String()
}

// copyValue returns a copy of v which shares no memory with v.
func copyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case []byte:
		return append([]byte{}, t...)
	case NodeID:
		return copyNodeID(t)
	case ExpandedNodeID:
		t.NodeID = copyNodeID(t.NodeID)
		return t
	case SemanticChange:
		t.Affected = copyNodeID(t.Affected)
		t.AffectedType = copyNodeID(t.AffectedType)
		return t
	}
	return v
}

func copyNodeID(n NodeID) NodeID {
	if n.Opaque != nil {
		n.Opaque = append([]byte{}, n.Opaque...)
	}
	return n
}
