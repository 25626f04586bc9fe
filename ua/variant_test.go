package ua

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantStates(t *testing.T) {
	var empty Variant
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.IsScalar())
	assert.False(t, empty.IsArray())
	assert.Nil(t, empty.Value())

	s, err := NewScalar(KindInt32, int32(7))
	require.NoError(t, err)
	assert.True(t, s.IsScalar())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int32(7), s.Value())

	a, err := NewArray(KindString, nil)
	require.NoError(t, err)
	assert.True(t, a.IsArray())
	assert.False(t, a.IsEmpty())
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, []interface{}{}, a.Value())

	_, err = NewScalar(KindInt32, "x")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewArray(KindInt32, []interface{}{int32(1), int64(2)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestVariantIndexLaw(t *testing.T) {
	s, _ := NewScalar(KindDouble, 1.5)
	v, err := s.At(0)
	assert.NoError(t, err)
	assert.Equal(t, 1.5, v)
	for _, i := range []int{1, 2, -1} {
		_, err = s.At(i)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}

	a, _ := NewArray(KindUInt16, []interface{}{uint16(1), uint16(2), uint16(3)})
	for i := 0; i < 3; i++ {
		v, err := a.At(i)
		assert.NoError(t, err)
		assert.Equal(t, uint16(i+1), v)
	}
	_, err = a.At(3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	var empty Variant
	_, err = empty.At(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestVariantArrayWrite(t *testing.T) {
	a, err := NewBlankArray(KindString, 4)
	require.NoError(t, err)
	want := []interface{}{"alde103_1", "alde103_2", "alde103_3", "alde103_4"}
	for i, w := range want {
		require.NoError(t, a.Set(i, w))
		assert.Equal(t, 4, a.Len())
	}
	assert.Equal(t, want, a.Value())

	err = a.Set(4, "alde103_5")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = a.At(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, want, a.Value())

	err = a.Set(1, int32(5))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, want, a.Value())
}

func TestVariantSetPreservesOthers(t *testing.T) {
	a, _ := NewArray(KindInt64, []interface{}{int64(10), int64(20), int64(30)})
	b := a
	require.NoError(t, a.Set(1, int64(99)))
	assert.Equal(t, []interface{}{int64(10), int64(99), int64(30)}, a.Value())
	// the copy is not affected
	assert.Equal(t, []interface{}{int64(10), int64(20), int64(30)}, b.Value())
}

func TestVariantNoAliasing(t *testing.T) {
	buf := []byte{1, 2, 3}
	a, _ := NewBlankArray(KindByteString, 2)
	require.NoError(t, a.Set(0, buf))
	buf[0] = 0xFF
	v, _ := a.At(0)
	assert.Equal(t, []byte{1, 2, 3}, v)

	n := NewOpaqueNodeID(1, []byte{9})
	s, _ := NewScalar(KindNodeID, n)
	n.Opaque[0] = 0
	v, _ = s.At(0)
	assert.Equal(t, []byte{9}, v.(NodeID).Opaque)
}

func TestVariantScalarWrite(t *testing.T) {
	var v Variant
	assert.ErrorIs(t, v.Set(1, true), ErrOutOfRange)
	require.NoError(t, v.Set(0, true))
	assert.True(t, v.IsScalar())
	assert.Equal(t, KindBoolean, v.Kind())

	require.NoError(t, v.Set(0, false))
	assert.Equal(t, false, v.Value())
	assert.ErrorIs(t, v.Set(1, false), ErrOutOfRange)
}

func TestBlankArray(t *testing.T) {
	for _, k := range Kinds() {
		a, err := NewBlankArray(k, 3)
		assert.NoError(t, err, k.String())
		assert.Equal(t, 3, a.Len())
		assert.Equal(t, k, a.Kind())
	}
	_, err := NewBlankArray(0, 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
