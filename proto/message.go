// Package proto defines the messages exchanged between the supervisor and the
// worker: requests, replies and events. Each message is the payload of one
// frame; its first byte is the message type.
package proto

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

const (
	msgTypeRequest = 0x00
	msgTypeReply   = 0x01
	msgTypeEvent   = 0x02

	replyOK    = 0x00
	replyError = 0x01
)

// max. length of a correlation token
const maxTokenLen = 1024

// Request is a call of a command.
type Request struct {
	Command Command
	// Token is chosen by the caller and echoed in the reply.
	Token []byte
	// Args holds the encoded argument tuple.
	Args []byte
}

// NewRequest creates a request and encodes the arguments as tuple.
func NewRequest(cmd Command, token []byte, args ...interface{}) (*Request, error) {
	e := term.NewEncoder()
	if err := e.EncodeTuple(args...); err != nil {
		return nil, fmt.Errorf("Encoding of arguments for %s failed: %w", cmd, err)
	}
	return &Request{Command: cmd, Token: token, Args: e.Bytes()}, nil
}

// Encode encodes the request as frame payload.
func (r *Request) Encode() ([]byte, error) {
	if len(r.Token) > maxTokenLen {
		return nil, fmt.Errorf("Token too long: %d", len(r.Token))
	}
	var b bytes.Buffer
	b.WriteByte(msgTypeRequest)
	binary.Write(&b, binary.BigEndian, uint16(r.Command))
	writeToken(&b, r.Token)
	b.Write(r.Args)
	return b.Bytes(), nil
}

// ErrorClass distinguishes local validation errors from library status
// errors.
type ErrorClass uint8

// Error classes.
const (
	ClassLocal ErrorClass = iota
	ClassStatus
)

// ReplyError is a recoverable error of a single call.
type ReplyError struct {
	Class ErrorClass
	// Reason is the local error token or the status code mnemonic.
	Reason string
}

// LocalError creates a reply error for a local validation error.
func LocalError(le *ua.LocalError) *ReplyError {
	return &ReplyError{Class: ClassLocal, Reason: le.Token}
}

// StatusError creates a reply error for a status code.
func StatusError(sc ua.StatusCode) *ReplyError {
	return &ReplyError{Class: ClassStatus, Reason: sc.Name()}
}

func (e *ReplyError) Error() string {
	return e.Reason
}

// Status returns the status code of a status error.
func (e *ReplyError) Status() (ua.StatusCode, bool) {
	if e.Class != ClassStatus {
		return 0, false
	}
	sc, err := ua.ParseStatusCode(e.Reason)
	if err != nil {
		return 0, false
	}
	return sc, true
}

// IsLocal reports a local validation error.
func (e *ReplyError) IsLocal() bool {
	return e.Class == ClassLocal
}

// Is supports errors.Is with *ua.LocalError and ua.StatusCode targets.
func (e *ReplyError) Is(target error) bool {
	switch t := target.(type) {
	case *ua.LocalError:
		return e.Class == ClassLocal && e.Reason == t.Token
	case ua.StatusCode:
		sc, ok := e.Status()
		return ok && sc == t
	}
	return false
}

// Reply is the answer to a request.
type Reply struct {
	Token []byte
	// Result is the decoded result term, if Err is nil.
	Result interface{}
	Err    *ReplyError
}

// Encode encodes the reply as frame payload.
func (r *Reply) Encode() ([]byte, error) {
	if len(r.Token) > maxTokenLen {
		return nil, fmt.Errorf("Token too long: %d", len(r.Token))
	}
	e := term.NewEncoder()
	e.WriteByte(msgTypeReply)
	writeToken(&e.Buffer, r.Token)
	if r.Err != nil {
		e.WriteByte(replyError)
		e.WriteByte(byte(r.Err.Class))
		writeToken(&e.Buffer, []byte(r.Err.Reason))
		return e.Bytes(), nil
	}
	e.WriteByte(replyOK)
	res := r.Result
	if res == nil {
		res = term.OK
	}
	if err := e.EncodeTerm(res); err != nil {
		return nil, fmt.Errorf("Encoding of result failed: %w", err)
	}
	return e.Bytes(), nil
}

// EventKind is the kind of an unsolicited event.
type EventKind uint8

// Event kinds.
const (
	SubscriptionData EventKind = iota + 1
	SubscriptionTimeout
	SubscriptionDeleted
	MonitoredItemDeleted
	NodeValueChanged
	// OrphanReply is created by the router for replies to unknown tokens. It
	// is never sent on the wire.
	OrphanReply
)

var eventKindStr = []string{
	"Invalid",
	"SubscriptionData",
	"SubscriptionTimeout",
	"SubscriptionDeleted",
	"MonitoredItemDeleted",
	"NodeValueChanged",
	"OrphanReply",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindStr) {
		return eventKindStr[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a message of the worker not related to a request.
type Event struct {
	Kind           EventKind
	SubscriptionID uint32
	MonitoredID    uint32
	// Node is set for node related events.
	Node ua.NodeID
	// Payload is a term, e.g. a ua.Variant for data change events.
	Payload interface{}
	// Reply is set for OrphanReply events.
	Reply *Reply
}

func (ev *Event) String() string {
	return fmt.Sprintf("%s(sub %d, mon %d, node %v, %v)", ev.Kind, ev.SubscriptionID, ev.MonitoredID, ev.Node, ev.Payload)
}

// Encode encodes the event as frame payload.
func (ev *Event) Encode() ([]byte, error) {
	if ev.Kind < SubscriptionData || ev.Kind >= OrphanReply {
		return nil, fmt.Errorf("Invalid event kind for sending: %s", ev.Kind)
	}
	e := term.NewEncoder()
	e.WriteByte(msgTypeEvent)
	e.WriteByte(byte(ev.Kind))
	binary.Write(e, binary.BigEndian, ev.SubscriptionID)
	binary.Write(e, binary.BigEndian, ev.MonitoredID)
	if ev.Node.IsNull() {
		e.EncodeNil()
	} else if err := e.EncodeNodeID(ev.Node); err != nil {
		return nil, fmt.Errorf("Encoding of event node failed: %w", err)
	}
	if err := e.EncodeTerm(ev.Payload); err != nil {
		return nil, fmt.Errorf("Encoding of event payload failed: %w", err)
	}
	return e.Bytes(), nil
}

// DecodeMessage decodes a frame payload into a *Request, *Reply or *Event.
// Malformed messages return a *term.ProtocolError.
func DecodeMessage(payload []byte) (interface{}, error) {
	if len(payload) == 0 {
		return nil, &term.ProtocolError{Msg: "Empty message"}
	}
	r := bytes.NewReader(payload[1:])
	switch payload[0] {
	case msgTypeRequest:
		var cmd uint16
		if err := binary.Read(r, binary.BigEndian, &cmd); err != nil {
			return nil, &term.ProtocolError{Msg: "Truncated request", Err: err}
		}
		tok, err := readToken(r)
		if err != nil {
			return nil, err
		}
		args := make([]byte, r.Len())
		r.Read(args)
		return &Request{Command: Command(cmd), Token: tok, Args: args}, nil

	case msgTypeReply:
		tok, err := readToken(r)
		if err != nil {
			return nil, err
		}
		status, err := r.ReadByte()
		if err != nil {
			return nil, &term.ProtocolError{Msg: "Truncated reply", Err: err}
		}
		switch status {
		case replyOK:
			rest := make([]byte, r.Len())
			r.Read(rest)
			res, err := term.Decode(rest)
			if err != nil {
				if term.IsProtocolError(err) {
					return nil, fmt.Errorf("Decoding of reply result failed: %w", err)
				}
				// the call fails, the channel stays usable
				if le, ok := ua.AsLocal(err); ok {
					return &Reply{Token: tok, Err: LocalError(le)}, nil
				}
				return &Reply{Token: tok, Err: LocalError(ua.ErrInvalidArgument)}, nil
			}
			return &Reply{Token: tok, Result: res}, nil
		case replyError:
			class, err := r.ReadByte()
			if err != nil {
				return nil, &term.ProtocolError{Msg: "Truncated reply", Err: err}
			}
			if ErrorClass(class) != ClassLocal && ErrorClass(class) != ClassStatus {
				return nil, &term.ProtocolError{Msg: fmt.Sprintf("Unknown error class %d", class)}
			}
			reason, err := readToken(r)
			if err != nil {
				return nil, err
			}
			if r.Len() != 0 {
				return nil, &term.ProtocolError{Msg: "Trailing bytes in reply"}
			}
			return &Reply{Token: tok, Err: &ReplyError{Class: ErrorClass(class), Reason: string(reason)}}, nil
		}
		return nil, &term.ProtocolError{Msg: fmt.Sprintf("Unknown reply status %d", status)}

	case msgTypeEvent:
		var hdr struct {
			Kind           uint8
			SubscriptionID uint32
			MonitoredID    uint32
		}
		if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
			return nil, &term.ProtocolError{Msg: "Truncated event", Err: err}
		}
		kind := EventKind(hdr.Kind)
		if kind < SubscriptionData || kind >= OrphanReply {
			return nil, &term.ProtocolError{Msg: fmt.Sprintf("Unknown event kind %d", hdr.Kind)}
		}
		rest := make([]byte, r.Len())
		r.Read(rest)
		d := term.NewDecoder(rest)
		ev := &Event{Kind: kind, SubscriptionID: hdr.SubscriptionID, MonitoredID: hdr.MonitoredID}
		tag, err := d.PeekTag()
		if err != nil {
			return nil, err
		}
		if tag == byte(ua.KindNodeID) {
			if ev.Node, err = d.DecodeNodeID(); err != nil {
				return nil, err
			}
		} else if _, err := d.DecodeTerm(); err != nil {
			return nil, err
		}
		if ev.Payload, err = d.DecodeTerm(); err != nil {
			return nil, err
		}
		if err := d.End(); err != nil {
			return nil, err
		}
		return ev, nil
	}
	return nil, &term.ProtocolError{Msg: fmt.Sprintf("Unknown message type %d", payload[0])}
}

func writeToken(b *bytes.Buffer, tok []byte) {
	binary.Write(b, binary.BigEndian, uint32(len(tok)))
	b.Write(tok)
}

func readToken(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return nil, &term.ProtocolError{Msg: "Truncated token length", Err: err}
	}
	if n > maxTokenLen || int(n) > r.Len() {
		return nil, &term.ProtocolError{Msg: fmt.Sprintf("Invalid token length %d", n)}
	}
	tok := make([]byte, n)
	r.Read(tok)
	return tok, nil
}
