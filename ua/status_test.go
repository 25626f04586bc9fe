package ua

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMnemonic(t *testing.T) {
	tests := []struct {
		code StatusCode
		name string
	}{
		{StatusGood, "Good"},
		{StatusBadTypeMismatch, "BadTypeMismatch"},
		{StatusBadNodeIdUnknown, "BadNodeIdUnknown"},
		{StatusUncertainInitialValue, "UncertainInitialValue"},
		{StatusGoodClamped, "GoodClamped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.code.Name())
			c, err := ParseStatusCode(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.code, c)
		})
	}
	assert.Equal(t, StatusCode(0x80740000), StatusBadTypeMismatch)
}

func TestStatusTableBijective(t *testing.T) {
	assert.Equal(t, len(statusNames), len(statusByName))
	for c, n := range statusNames {
		back, err := ParseStatusCode(n)
		assert.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestStatusUnknown(t *testing.T) {
	_, err := ParseStatusCode("BadSomethingElse")
	assert.True(t, errors.Is(err, ErrUnknownStatus))
	assert.Equal(t, "StatusCode(0x80FF0000)", StatusCode(0x80FF0000).Name())
	assert.False(t, StatusCode(0x80FF0000).Known())
}

func TestStatusSeverity(t *testing.T) {
	assert.True(t, StatusGood.IsGood())
	assert.True(t, StatusBadTypeMismatch.IsBad())
	assert.False(t, StatusBadTypeMismatch.IsGood())
	assert.True(t, StatusUncertainInitialValue.IsUncertain())
}

func TestStatusAsError(t *testing.T) {
	err := fmt.Errorf("Write failed: %w", StatusBadNotWritable)
	sc, ok := AsStatus(err)
	assert.True(t, ok)
	assert.Equal(t, StatusBadNotWritable, sc)

	_, ok = AsStatus(Errorf(ErrOutOfRange, "index %d", 4))
	assert.False(t, ok)
	le, ok := AsLocal(Errorf(ErrOutOfRange, "index %d", 4))
	assert.True(t, ok)
	assert.Equal(t, "erange", le.Token)
}
