package entity

import (
	"math"
	"time"

	"github.com/mdzio/go-uaport/ua"
)

// ConfigString converts a configuration map value into a string.
func ConfigString(key string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", ua.Errorf(ua.ErrInvalidArgument, "String expected for %s, got %T", key, v)
	}
	return s, nil
}

// ConfigInt64 converts an integer configuration map value of any width.
func ConfigInt64(key string, v interface{}) (int64, error) {
	switch i := v.(type) {
	case int8:
		return int64(i), nil
	case uint8:
		return int64(i), nil
	case int16:
		return int64(i), nil
	case uint16:
		return int64(i), nil
	case int32:
		return int64(i), nil
	case uint32:
		return int64(i), nil
	case int64:
		return i, nil
	case uint64:
		if i > math.MaxInt64 {
			return 0, ua.Errorf(ua.ErrOutOfRange, "Value for %s too large: %d", key, i)
		}
		return int64(i), nil
	case int:
		return int64(i), nil
	}
	return 0, ua.Errorf(ua.ErrInvalidArgument, "Integer expected for %s, got %T", key, v)
}

// ConfigUint32 converts an integer configuration map value into an uint32.
func ConfigUint32(key string, v interface{}) (uint32, error) {
	i, err := ConfigInt64(key, v)
	if err != nil {
		return 0, err
	}
	if i < 0 || i > math.MaxUint32 {
		return 0, ua.Errorf(ua.ErrOutOfRange, "Value for %s out of range: %d", key, i)
	}
	return uint32(i), nil
}

// ConfigMillis converts an uint32 configuration map value in milliseconds
// into a duration.
func ConfigMillis(key string, v interface{}) (time.Duration, error) {
	ms, err := ConfigUint32(key, v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
