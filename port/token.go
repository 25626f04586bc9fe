package port

import (
	"fmt"

	"github.com/google/uuid"
)

// Token correlates a call with its reply. The content is opaque to the port
// and the worker, it is echoed back unchanged.
type Token []byte

// NewToken creates a random token.
func NewToken() Token {
	u := uuid.New()
	return Token(u[:])
}

// TokenOf creates a token from a string, e.g. a request ID of the caller.
func TokenOf(s string) Token {
	return Token(s)
}

func (t Token) String() string {
	if len(t) == 16 {
		if u, err := uuid.FromBytes(t); err == nil {
			return u.String()
		}
	}
	return fmt.Sprintf("%q", []byte(t))
}

func (t Token) key() string {
	return string(t)
}
