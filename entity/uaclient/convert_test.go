package uaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	gua "github.com/gopcua/opcua/ua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mdzio/go-lib/testutil"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/ua"
)

var _ entity.Entity = (*Client)(nil)

func TestNodeIDConversion(t *testing.T) {
	guid, err := ua.ParseGUID("72962B91-FA75-4AE6-8D28-B404DC7DAF63")
	require.NoError(t, err)
	ids := []ua.NodeID{
		ua.ObjectsFolder,
		ua.NewNumericNodeID(1, 70000),
		ua.NewNumericNodeID(300, 5),
		ua.NewStringNodeID(2, "R1_TS1_Temperature"),
		ua.NewGUIDNodeID(3, guid),
		ua.NewOpaqueNodeID(4, []byte{0xde, 0xad, 0xbe, 0xef}),
	}
	for _, id := range ids {
		t.Run(id.Text(), func(t *testing.T) {
			got, err := fromNodeID(toNodeID(id))
			require.NoError(t, err)
			assert.True(t, id.Equal(got), "got %v", got)
		})
	}
}

func mustScalar(t *testing.T, k ua.Kind, v interface{}) ua.Variant {
	s, err := ua.NewScalar(k, v)
	require.NoError(t, err)
	return s
}

func mustArray(t *testing.T, k ua.Kind, elems ...interface{}) ua.Variant {
	a, err := ua.NewArray(k, elems)
	require.NoError(t, err)
	return a
}

func TestVariantConversion(t *testing.T) {
	guid, err := ua.ParseGUID("72962B91-FA75-4AE6-8D28-B404DC7DAF63")
	require.NoError(t, err)
	ts := ua.NewDateTime(time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC))
	tests := []struct {
		name string
		v    ua.Variant
	}{
		{"empty", ua.Variant{}},
		{"boolean", mustScalar(t, ua.KindBoolean, true)},
		{"sbyte", mustScalar(t, ua.KindSByte, int8(-8))},
		{"uint16", mustScalar(t, ua.KindUInt16, uint16(65000))},
		{"int32", mustScalar(t, ua.KindInt32, int32(-123456))},
		{"uint64", mustScalar(t, ua.KindUInt64, uint64(1)<<60)},
		{"float", mustScalar(t, ua.KindFloat, float32(1.5))},
		{"double", mustScalar(t, ua.KindDouble, 21.5)},
		{"string", mustScalar(t, ua.KindString, "hello")},
		{"datetime", mustScalar(t, ua.KindDateTime, ts)},
		{"guid", mustScalar(t, ua.KindGUID, guid)},
		{"bytestring", mustScalar(t, ua.KindByteString, []byte{1, 2, 3})},
		{"xmlelement", mustScalar(t, ua.KindXMLElement, ua.XMLElement("<a/>"))},
		{"nodeid", mustScalar(t, ua.KindNodeID, ua.NewStringNodeID(1, "x"))},
		{"expandednodeid", mustScalar(t, ua.KindExpandedNodeID, ua.ExpandedNodeID{
			NodeID: ua.NewNumericNodeID(2, 42), NamespaceURI: "urn:test", ServerIndex: 1,
		})},
		{"statuscode", mustScalar(t, ua.KindStatusCode, ua.StatusBadNodeIdUnknown)},
		{"qualifiedname", mustScalar(t, ua.KindQualifiedName, ua.QualifiedName{Namespace: 1, Name: "Temperature"})},
		{"localizedtext", mustScalar(t, ua.KindLocalizedText, ua.LocalizedText{Locale: "en-US", Text: "Temperature"})},
		{"int32 array", mustArray(t, ua.KindInt32, int32(1), int32(2), int32(3))},
		{"boolean array", mustArray(t, ua.KindBoolean, true, false)},
		{"string array", mustArray(t, ua.KindString, "a", "b")},
		{"localizedtext array", mustArray(t, ua.KindLocalizedText,
			ua.LocalizedText{Locale: "en", Text: "on"}, ua.LocalizedText{Locale: "de", Text: "an"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gv, err := toVariant(tt.v)
			require.NoError(t, err)
			got, err := fromVariant(gv)
			require.NoError(t, err)
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestVariantBaseTypes(t *testing.T) {
	gv, err := toVariant(mustScalar(t, ua.KindTimeString, ua.TimeString("12:00")))
	require.NoError(t, err)
	assert.Equal(t, gua.TypeIDString, gv.Type())

	gv, err = toVariant(mustScalar(t, ua.KindContentMask, ua.ContentMask(7)))
	require.NoError(t, err)
	assert.Equal(t, gua.TypeIDUint32, gv.Type())
	assert.Equal(t, uint32(7), gv.Value())
}

func TestVariantUnsupported(t *testing.T) {
	unsupported := []ua.Variant{
		mustScalar(t, ua.KindXV, ua.XV{}),
		mustScalar(t, ua.KindSemanticChange, ua.SemanticChange{}),
		mustArray(t, ua.KindByte, uint8(1), uint8(2)),
		mustArray(t, ua.KindByteString, []byte{1}, []byte{2, 3}),
		mustArray(t, ua.KindByteString, []byte{1, 2}, []byte{3, 4}),
	}
	for i, v := range unsupported {
		t.Run(fmt.Sprintf("%d %s", i, v.Kind()), func(t *testing.T) {
			_, err := toVariant(v)
			require.Error(t, err)
			assert.Equal(t, ua.StatusBadNotSupported, statusOf(err))
		})
	}

	gv, err := gua.NewVariant(&gua.DataValue{})
	require.NoError(t, err)
	_, err = fromVariant(gv)
	assert.Equal(t, ua.StatusBadNotSupported, statusOf(err))
}

func TestAttributeConversion(t *testing.T) {
	dn, err := gua.NewVariant(&gua.LocalizedText{
		EncodingMask: gua.LocalizedTextLocale | gua.LocalizedTextText,
		Locale:       "en-US",
		Text:         "Temperature",
	})
	require.NoError(t, err)
	v, err := fromAttribute(ua.AttrDisplayName, dn)
	require.NoError(t, err)
	assert.Equal(t, ua.LocalizedText{Locale: "en-US", Text: "Temperature"}, v)

	nc, err := gua.NewVariant(int32(ua.NodeClassVariable))
	require.NoError(t, err)
	v, err = fromAttribute(ua.AttrNodeClass, nc)
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)

	v, err = fromAttribute(ua.AttrArrayDimensions, &gua.Variant{})
	require.NoError(t, err)
	assert.Equal(t, []uint32{}, v)

	al, err := gua.NewVariant(uint8(3))
	require.NoError(t, err)
	v, err = fromAttribute(ua.AttrAccessLevel, al)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), v)

	gv, err := toAttribute(ua.AttrDisplayName, ua.LocalizedText{Text: "Pump"})
	require.NoError(t, err)
	lt, ok := gv.Value().(*gua.LocalizedText)
	require.True(t, ok)
	assert.Equal(t, "Pump", lt.Text)
	assert.Equal(t, uint8(gua.LocalizedTextText), lt.EncodingMask)

	_, err = toAttribute(ua.AttrValue, int32(1))
	assert.Equal(t, ua.StatusBadTypeMismatch, err)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"library status", gua.StatusBadNodeIDUnknown, ua.StatusBadNodeIdUnknown},
		{"wrapped library status", fmt.Errorf("read: %w", gua.StatusBadUserAccessDenied), ua.StatusCode(0x801F0000)},
		{"status", ua.StatusBadNotWritable, ua.StatusBadNotWritable},
		{"other", io.ErrUnexpectedEOF, ua.StatusBadCommunicationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}

	err := statusOf(ua.Errorf(ua.ErrOutOfRange, "Index %d", 7))
	assert.True(t, errors.Is(err, ua.ErrOutOfRange))
}

func TestSelectEndpoint(t *testing.T) {
	eps := []*gua.EndpointDescription{
		{EndpointURL: "opc.tcp://a", SecurityPolicyURI: gua.SecurityPolicyURIBasic256Sha256, SecurityMode: gua.MessageSecurityModeSign, SecurityLevel: 5},
		{EndpointURL: "opc.tcp://b", SecurityPolicyURI: gua.SecurityPolicyURINone, SecurityMode: gua.MessageSecurityModeNone, SecurityLevel: 0},
		{EndpointURL: "opc.tcp://c", SecurityPolicyURI: gua.SecurityPolicyURINone, SecurityMode: gua.MessageSecurityModeNone, SecurityLevel: 1},
	}
	ep := selectEndpoint(eps)
	require.NotNil(t, ep)
	assert.Equal(t, "opc.tcp://c", ep.EndpointURL)
	assert.Nil(t, selectEndpoint(eps[:1]))
}

func TestConfig(t *testing.T) {
	c := New(nil)
	assert.Equal(t, map[string]interface{}{
		"timeout":                 uint32(5000),
		"secureChannelLifeTime":   uint32(600000),
		"requestedSessionTimeout": uint32(1200000),
	}, c.Config())

	require.NoError(t, c.SetConfig(map[string]interface{}{"timeout": uint32(1000)}))
	assert.Equal(t, uint32(1000), c.Config()["timeout"])

	err := c.SetConfig(map[string]interface{}{"timeout": uint32(2000), "port": uint32(4840)})
	assert.True(t, errors.Is(err, ua.ErrInvalidArgument))
	assert.Equal(t, uint32(1000), c.Config()["timeout"])

	err = c.SetConfig(map[string]interface{}{"timeout": "fast"})
	assert.True(t, errors.Is(err, ua.ErrInvalidArgument))
}

func TestNotConnected(t *testing.T) {
	c := New(nil)
	ctx := context.Background()
	_, err := c.ReadAttribute(ctx, ua.ObjectsFolder, ua.AttrBrowseName)
	assert.Equal(t, ua.StatusBadNotConnected, err)
	err = c.WriteAttribute(ctx, ua.ObjectsFolder, ua.AttrDisplayName, ua.LocalizedText{Text: "x"})
	assert.Equal(t, ua.StatusBadNotConnected, err)
	_, err = c.AddSubscription(ctx, time.Second)
	assert.Equal(t, ua.StatusBadNotConnected, err)
	_, err = c.AddMonitoredItem(ctx, 1, ua.ObjectsFolder, time.Second)
	assert.Equal(t, ua.StatusBadSubscriptionIdInvalid, err)
	assert.Equal(t, ua.StatusBadNotConnected, c.Disconnect(ctx))
	assert.Equal(t, ua.StatusBadServiceUnsupported, c.DeleteNode(ctx, ua.ObjectsFolder, true))
	assert.NoError(t, c.Close())
	assert.Equal(t, ua.StatusBadInvalidState, c.Connect(ctx, "opc.tcp://localhost:4840", "", ""))
}
