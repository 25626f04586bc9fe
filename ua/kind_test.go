package ua

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsExhaustive(t *testing.T) {
	ks := Kinds()
	assert.Len(t, ks, len(kindStr)-1)
	for _, k := range ks {
		t.Run(k.String(), func(t *testing.T) {
			assert.True(t, k.Valid())
			assert.False(t, strings.HasPrefix(k.String(), "Kind("))

			zero, err := Zero(k)
			assert.NoError(t, err)
			vk, ok := KindOf(zero)
			assert.True(t, ok)
			assert.Equal(t, k, vk)
			assert.NoError(t, CheckValue(k, zero))

			txt, err := k.MarshalText()
			assert.NoError(t, err)
			var k2 Kind
			assert.NoError(t, k2.UnmarshalText(txt))
			assert.Equal(t, k, k2)
		})
	}
}

func TestKindInvalid(t *testing.T) {
	for _, k := range []Kind{0, kindEnd, 0xFF} {
		assert.False(t, k.Valid())
		_, err := Zero(k)
		assert.Error(t, err)
		_, err = k.MarshalText()
		assert.Error(t, err)
	}
	var k Kind
	assert.Error(t, k.Set("Decimal"))
	assert.Error(t, k.Set("Invalid"))
}

func TestKindFlag(t *testing.T) {
	var k Kind
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&k, "kind", "value kind")
	assert.NoError(t, fs.Parse([]string{"-kind", "Double"}))
	assert.Equal(t, KindDouble, k)
}

func TestCheckValue(t *testing.T) {
	assert.NoError(t, CheckValue(KindString, "abc"))
	err := CheckValue(KindString, int32(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = CheckValue(KindInt32, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
