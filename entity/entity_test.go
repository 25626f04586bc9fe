package entity

import (
	"context"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdzio/go-uaport/ua"
)

func TestMode(t *testing.T) {
	var m Mode
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&m, "mode", "")
	require.NoError(t, fs.Parse([]string{"-mode", "Server"}))
	assert.Equal(t, Server, m)
	assert.Equal(t, "server", m.String())

	assert.Error(t, m.Set("proxy"))
	require.NoError(t, m.UnmarshalText([]byte("client")))
	assert.Equal(t, Client, m)
	b, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "client", string(b))
	assert.Equal(t, "invalid", Mode(7).String())
}

func TestInternalWrite(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsInternalWrite(ctx))
	ictx := WithInternalWrite(ctx)
	assert.True(t, IsInternalWrite(ictx))
	// derived contexts keep the flag
	cctx, cancel := context.WithCancel(ictx)
	defer cancel()
	assert.True(t, IsInternalWrite(cctx))
	assert.False(t, IsInternalWrite(ctx))
}

func TestDescriptionMaps(t *testing.T) {
	app := &ApplicationDescription{
		ApplicationURI: "urn:example:server",
		ProductURI:     "urn:example:product",
		Name:           "Example",
		Type:           ApplicationServer,
		DiscoveryURLs:  []string{"opc.tcp://localhost:4840"},
	}
	assert.Equal(t, map[string]interface{}{
		"server":          "urn:example:server",
		"name":            "Example",
		"application_uri": "urn:example:server",
		"product_uri":     "urn:example:product",
		"type":            "server",
		"discovery_url":   []interface{}{"opc.tcp://localhost:4840"},
	}, app.Map())

	ep := &EndpointDescription{
		EndpointURL:         "opc.tcp://localhost:4840",
		TransportProfileURI: TransportProfileBinary,
		SecurityMode:        SecurityNone,
		SecurityPolicyURI:   SecurityPolicyNone,
	}
	m := ep.Map()
	assert.Equal(t, "none", m["security_mode"])
	assert.Equal(t, uint32(0), m["security_level"])
	assert.Equal(t, "unknown", SecurityMode(9).String())
	assert.Equal(t, "client_and_server", ApplicationClientAndServer.String())
}

func TestConfigMillis(t *testing.T) {
	tests := []struct {
		in   interface{}
		want time.Duration
		err  error
	}{
		{uint32(5000), 5 * time.Second, nil},
		{int64(0), 0, nil},
		{uint8(10), 10 * time.Millisecond, nil},
		{int32(-1), 0, ua.ErrOutOfRange},
		{uint64(1) << 40, 0, ua.ErrOutOfRange},
		{5.0, 0, ua.ErrInvalidArgument},
		{"5000", 0, ua.ErrInvalidArgument},
	}
	for _, tt := range tests {
		d, err := ConfigMillis("timeout", tt.in)
		if tt.err != nil {
			assert.ErrorIs(t, err, tt.err, "%#v", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, d)
	}
}
