package port

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdzio/go-uaport/entity/memory"
	"github.com/mdzio/go-uaport/frame"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/ua"
	"github.com/mdzio/go-uaport/worker"
)

func TestSplitAddr(t *testing.T) {
	tests := []struct {
		addr   string
		scheme string
		path   string
		ok     bool
	}{
		{"unix:/run/uaport.sock", SchemeUnix, "/run/uaport.sock", true},
		{"tcp:localhost:4711", SchemeTCP, "localhost:4711", true},
		{`npipe:\\.\pipe\uaport`, SchemePipe, `\\.\pipe\uaport`, true},
		{"/run/uaport.sock", "", "", false},
		{"tcp:", "", "", false},
		{"udp:localhost:4711", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			scheme, path, err := SplitAddr(tt.addr)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestDialTCP(t *testing.T) {
	l, err := Listen("tcp:127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	served := make(chan error, 1)
	go func() {
		conn, err := l.Accept()
		if err != nil {
			served <- err
			return
		}
		defer conn.Close()
		srv := &worker.Server{Entity: memory.New(nil)}
		served <- srv.Serve(context.Background(), conn, frame.NewWriter(conn, 0))
	}()

	conn, err := Dial(context.Background(), "tcp:"+l.Addr().String())
	require.NoError(t, err)
	p := New(conn, Config{})
	v, err := p.Call(context.Background(), proto.CmdReadBrowseName, NewToken(), ua.RootFolder)
	require.NoError(t, err)
	assert.Equal(t, ua.QualifiedName{Name: "Root"}, v)
	p.Close()
	assert.NoError(t, <-served)
}
