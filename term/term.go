// Package term implements the tagged binary term format used on the channel
// between the supervisor and the worker.
//
// Every term starts with a one byte tag. Value kinds use their ua.Kind as tag,
// followed by a fixed width or length prefixed body in big endian byte order.
// Arrays carry the element kind once and untagged element bodies. Tuples and
// maps carry tagged terms.
package term

import (
	"errors"
	"fmt"
)

// Structural tags. Value kinds use ua.Kind values (1..0x3F) as tag.
const (
	tagNil   = 0x00
	tagArray = 0x40
	tagTuple = 0x41
	tagMap   = 0x42
	tagAtom  = 0x43
)

// max. length of an atom
const maxAtomLen = 255

// Atom is a short symbolic constant.
type Atom string

// OK is returned by operations without result.
const OK Atom = "ok"

// ProtocolError signals that the byte stream does not follow the term
// grammar: unknown tag, wrong arity, truncated or oversized data. The two
// sides of the channel have diverged and the channel cannot be used anymore.
type ProtocolError struct {
	Msg string
	Err error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return "Protocol error: " + e.Msg + ": " + e.Err.Error()
	}
	return "Protocol error: " + e.Msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func protocolErrorf(format string, a ...interface{}) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, a...)}
}

func protocolError(msg string, err error) error {
	return &ProtocolError{Msg: msg, Err: err}
}

// IsProtocolError reports whether err contains a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
