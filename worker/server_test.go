package worker

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdzio/go-uaport/entity/memory"
	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

func requests(t *testing.T, reqs ...*proto.Request) *bytes.Buffer {
	var buf bytes.Buffer
	w := frame.NewWriter(&buf, 0)
	for _, req := range reqs {
		b, err := req.Encode()
		require.NoError(t, err)
		require.NoError(t, w.WriteFrame(b))
	}
	return &buf
}

func request(t *testing.T, cmd proto.Command, token string, args ...interface{}) *proto.Request {
	req, err := proto.NewRequest(cmd, []byte(token), args...)
	require.NoError(t, err)
	return req
}

func messages(t *testing.T, r io.Reader) []interface{} {
	var msgs []interface{}
	fr := frame.NewReader(r, 0)
	for {
		b, err := fr.ReadFrame()
		if err == io.EOF {
			return msgs
		}
		require.NoError(t, err)
		msg, err := proto.DecodeMessage(b)
		require.NoError(t, err)
		msgs = append(msgs, msg)
	}
}

func TestServe(t *testing.T) {
	s := &Server{Entity: memory.New(nil)}
	in := requests(t,
		request(t, proto.CmdTest, "a"),
		request(t, proto.CmdReadBrowseName, "b", ua.ObjectsFolder),
		request(t, proto.CmdReadValue, "c", ua.NewNumericNodeID(1, 1)),
	)
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), in, frame.NewWriter(&out, 0)))

	msgs := messages(t, &out)
	require.Len(t, msgs, 3)
	r := msgs[0].(*proto.Reply)
	assert.Equal(t, []byte("a"), r.Token)
	assert.Equal(t, term.OK, r.Result)
	r = msgs[1].(*proto.Reply)
	assert.Equal(t, []byte("b"), r.Token)
	assert.Equal(t, ua.QualifiedName{Name: "Objects"}, r.Result)
	r = msgs[2].(*proto.Reply)
	assert.Equal(t, []byte("c"), r.Token)
	require.NotNil(t, r.Err)
	assert.Equal(t, "BadNodeIdUnknown", r.Err.Reason)
}

func TestServeFatal(t *testing.T) {
	tests := []struct {
		name string
		in   *bytes.Buffer
	}{
		{"arity", requests(t, request(t, proto.CmdTest, "a"), request(t, proto.CmdReadValue, "b"))},
		{"unknown command", requests(t, request(t, proto.Command(0x7fff), "a"))},
		{"truncated frame", bytes.NewBuffer([]byte{0, 0, 0, 9, 1, 2})},
		{"reply instead of request", func() *bytes.Buffer {
			var buf bytes.Buffer
			b, err := (&proto.Reply{Token: []byte("x")}).Encode()
			require.NoError(t, err)
			require.NoError(t, frame.NewWriter(&buf, 0).WriteFrame(b))
			return &buf
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{Entity: memory.New(nil)}
			var out bytes.Buffer
			err := s.Serve(context.Background(), tt.in, frame.NewWriter(&out, 0))
			assert.Error(t, err)
		})
	}
}

func TestServeResponseTooLarge(t *testing.T) {
	e := memory.New(nil)
	s := &Server{Entity: e}
	node := ua.NewStringNodeID(1, "Blob")
	in := requests(t,
		request(t, proto.CmdAddVariableNode, "a", node, ua.ObjectsFolder, ua.Organizes,
			ua.QualifiedName{Namespace: 1, Name: "Blob"}, ua.BaseDataVariableType),
		request(t, proto.CmdWriteBlankArray, "b", node, uint32(ua.KindString), uint32(100)),
		request(t, proto.CmdReadValue, "c", node),
	)
	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), in, frame.NewWriter(&out, 256)))

	msgs := messages(t, &out)
	require.Len(t, msgs, 3)
	r := msgs[2].(*proto.Reply)
	require.NotNil(t, r.Err)
	assert.True(t, errors.Is(r.Err, ua.StatusBadResponseTooLarge))
}

// gatedWriter blocks writes until the gate is opened.
type gatedWriter struct {
	gate  chan struct{}
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (w *gatedWriter) Write(p []byte) (int, error) {
	<-w.gate
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.buf.Write(p)
}

func TestEmitter(t *testing.T) {
	w := &gatedWriter{gate: make(chan struct{})}
	close(w.gate)
	em := NewEmitter(frame.NewWriter(w, 0))
	for i := 1; i <= 3; i++ {
		em.Emit(&proto.Event{Kind: proto.SubscriptionData, SubscriptionID: 1, MonitoredID: uint32(i), Payload: int32(i)})
	}
	em.Close()

	msgs := messages(t, &w.buf)
	require.Len(t, msgs, 3)
	for i, m := range msgs {
		ev := m.(*proto.Event)
		assert.Equal(t, proto.SubscriptionData, ev.Kind)
		assert.Equal(t, uint32(i+1), ev.MonitoredID)
		assert.Equal(t, int32(i+1), ev.Payload)
	}
}

func TestEmitterOverflow(t *testing.T) {
	w := &gatedWriter{gate: make(chan struct{})}
	em := NewEmitter(frame.NewWriter(w, 0))
	const total = emitterQueueSize + 50
	for i := 0; i < total; i++ {
		em.Emit(&proto.Event{Kind: proto.SubscriptionTimeout, SubscriptionID: uint32(i)})
	}
	close(w.gate)
	em.Close()

	msgs := messages(t, &w.buf)
	assert.Less(t, len(msgs), total)
	assert.GreaterOrEqual(t, len(msgs), emitterQueueSize)
}
