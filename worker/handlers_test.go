package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mdzio/go-lib/testutil"

	"github.com/mdzio/go-uaport/entity"
	"github.com/mdzio/go-uaport/entity/memory"
	"github.com/mdzio/go-uaport/proto"
	"github.com/mdzio/go-uaport/term"
	"github.com/mdzio/go-uaport/ua"
)

var (
	sensor  = ua.NewStringNodeID(1, "R1_TS1_Temperature")
	labels  = ua.NewStringNodeID(1, "R1_Labels")
	objects = ua.ObjectsFolder
)

type harness struct {
	t      *testing.T
	entity *memory.Server
	events []*proto.Event
	server *Server
}

func newHarness(t *testing.T) *harness {
	h := &harness{t: t}
	h.entity = memory.New(entity.EventSinkFunc(func(ev *proto.Event) {
		h.events = append(h.events, ev)
	}))
	h.server = &Server{Entity: h.entity, Dispatcher: NewDispatcher()}
	return h
}

// exec executes a command and passes the reply through the wire codec.
func (h *harness) exec(cmd proto.Command, args ...interface{}) (*proto.Reply, error) {
	req, err := proto.NewRequest(cmd, []byte("t1"), args...)
	require.NoError(h.t, err)
	rep, err := h.server.execute(context.Background(), req)
	if err != nil {
		return nil, err
	}
	b, err := rep.Encode()
	require.NoError(h.t, err)
	msg, err := proto.DecodeMessage(b)
	require.NoError(h.t, err)
	dec, ok := msg.(*proto.Reply)
	require.True(h.t, ok)
	assert.Equal(h.t, []byte("t1"), dec.Token)
	return dec, nil
}

// call expects a successful command.
func (h *harness) call(cmd proto.Command, args ...interface{}) interface{} {
	h.t.Helper()
	rep, err := h.exec(cmd, args...)
	require.NoError(h.t, err)
	require.Nil(h.t, rep.Err, "%s", cmd)
	return rep.Result
}

// fail expects a recoverable error.
func (h *harness) fail(cmd proto.Command, args ...interface{}) *proto.ReplyError {
	h.t.Helper()
	rep, err := h.exec(cmd, args...)
	require.NoError(h.t, err)
	require.NotNil(h.t, rep.Err, "%s", cmd)
	return rep.Err
}

func (h *harness) addVariable(id ua.NodeID, name string) {
	h.t.Helper()
	res := h.call(proto.CmdAddVariableNode, id, objects, ua.Organizes,
		ua.QualifiedName{Namespace: 1, Name: name}, ua.BaseDataVariableType)
	assert.Equal(h.t, term.OK, res)
}

func TestCommandTable(t *testing.T) {
	d := NewDispatcher()
	cmds := d.Commands()
	require.Len(t, cmds, len(proto.Commands()))
	for i, cmd := range proto.Commands() {
		assert.Equal(t, cmd, cmds[i])
	}
}

func TestTestAndNilEntity(t *testing.T) {
	s := &Server{Dispatcher: NewDispatcher()}
	req, err := proto.NewRequest(proto.CmdTest, []byte{1})
	require.NoError(t, err)
	rep, err := s.execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, rep.Err)

	req, err = proto.NewRequest(proto.CmdReadValue, []byte{2}, sensor)
	require.NoError(t, err)
	rep, err = s.execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, rep.Err)
	assert.True(t, errors.Is(rep.Err, ua.ErrNoEntity))
}

func TestConfigCommands(t *testing.T) {
	h := newHarness(t)
	cfg, ok := h.call(proto.CmdGetConfig).(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "go-uaport", cfg["application_name"])

	h.call(proto.CmdSetConfig, map[string]interface{}{"application_name": "Line 1"})
	cfg = h.call(proto.CmdGetConfig).(map[string]interface{})
	assert.Equal(t, "Line 1", cfg["application_name"])

	e := h.fail(proto.CmdSetConfig, map[string]interface{}{"colour": "red"})
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
	e = h.fail(proto.CmdSetConfig, map[string]interface{}{"application_uri": uint32(7)})
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))

	e = h.fail(proto.CmdConnect, "opc.tcp://localhost:4840", "", "")
	assert.Equal(t, "BadServiceUnsupported", e.Reason)
	assert.False(t, e.IsLocal())
}

func TestDiscoveryCommands(t *testing.T) {
	h := newHarness(t)
	res, ok := h.call(proto.CmdFindServers, "").([]interface{})
	require.True(t, ok)
	require.Len(t, res, 1)
	app, ok := res[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "urn:go-uaport:server", app["application_uri"])

	assert.Equal(t, "go-uaport", app["name"])

	e := h.fail(proto.CmdGetEndpoints, "")
	assert.Equal(t, "BadNotSupported", e.Reason)
	assert.False(t, e.IsLocal())
}

func TestAttributeCommands(t *testing.T) {
	h := newHarness(t)
	h.addVariable(sensor, "Temperature")

	assert.Equal(t, sensor, h.call(proto.CmdReadNodeID, sensor))
	assert.Equal(t, "Variable", h.call(proto.CmdReadNodeClass, sensor))
	assert.Equal(t, ua.QualifiedName{Namespace: 1, Name: "Temperature"}, h.call(proto.CmdReadBrowseName, sensor))

	h.call(proto.CmdWriteDisplayName, sensor, "en-US", "Temperature")
	assert.Equal(t, ua.LocalizedText{Locale: "en-US", Text: "Temperature"}, h.call(proto.CmdReadDisplayName, sensor))
	h.call(proto.CmdWriteDescription, sensor, "de", "Raumtemperatur")
	assert.Equal(t, ua.LocalizedText{Locale: "de", Text: "Raumtemperatur"}, h.call(proto.CmdReadDescription, sensor))

	h.call(proto.CmdWriteWriteMask, sensor, uint32(0x40))
	assert.Equal(t, uint32(0x40), h.call(proto.CmdReadWriteMask, sensor))
	h.call(proto.CmdWriteAccessLevel, sensor, uint32(1))
	assert.Equal(t, uint32(1), h.call(proto.CmdReadAccessLevel, sensor))
	h.call(proto.CmdWriteHistorizing, sensor, true)
	assert.Equal(t, true, h.call(proto.CmdReadHistorizing, sensor))
	h.call(proto.CmdWriteMinimumSamplingInterval, sensor, 250.0)
	assert.Equal(t, 250.0, h.call(proto.CmdReadMinimumSamplingInterval, sensor))

	dt, _ := ua.DataTypeID(ua.KindDouble)
	h.call(proto.CmdWriteDataType, sensor, dt)
	assert.Equal(t, dt, h.call(proto.CmdReadDataType, sensor))
	h.call(proto.CmdWriteValueRank, sensor, int32(1))
	assert.Equal(t, int32(1), h.call(proto.CmdReadValueRank, sensor))
	h.call(proto.CmdWriteArrayDimensions, sensor, []uint32{3})
	dims, ok := h.call(proto.CmdReadArrayDimensions, sensor).(ua.Variant)
	require.True(t, ok)
	assert.Equal(t, []interface{}{uint32(3)}, dims.Elems())

	// byte attributes
	e := h.fail(proto.CmdWriteAccessLevel, sensor, uint32(256))
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))

	// attribute of another node class
	e = h.fail(proto.CmdReadIsAbstract, sensor)
	assert.Equal(t, "BadAttributeIdInvalid", e.Reason)
	e = h.fail(proto.CmdReadNodeID, ua.NewNumericNodeID(1, 4711))
	assert.Equal(t, "BadNodeIdUnknown", e.Reason)
}

func TestTypeNodeCommands(t *testing.T) {
	h := newHarness(t)
	objType := ua.NewStringNodeID(1, "RoomType")
	h.call(proto.CmdAddObjectTypeNode, objType, ua.BaseObjectType, ua.HasSubtype,
		ua.QualifiedName{Namespace: 1, Name: "RoomType"})
	h.call(proto.CmdWriteIsAbstract, objType, true)
	assert.Equal(t, true, h.call(proto.CmdReadIsAbstract, objType))
	assert.Equal(t, "ObjectType", h.call(proto.CmdReadNodeClass, objType))

	room := ua.NewStringNodeID(1, "R1")
	h.call(proto.CmdAddObjectNode, room, objects, ua.Organizes,
		ua.QualifiedName{Namespace: 1, Name: "R1"}, objType)
	h.call(proto.CmdWriteEventNotifier, room, uint32(1))
	assert.Equal(t, uint32(1), h.call(proto.CmdReadEventNotifier, room))

	refType := ua.NewStringNodeID(1, "Feeds")
	h.call(proto.CmdAddReferenceTypeNode, refType, ua.NonHierarchicalRefs, ua.HasSubtype,
		ua.QualifiedName{Namespace: 1, Name: "Feeds"})
	h.call(proto.CmdWriteSymmetric, refType, false)
	h.call(proto.CmdWriteInverseName, refType, "", "FedBy")
	assert.Equal(t, ua.LocalizedText{Text: "FedBy"}, h.call(proto.CmdReadInverseName, refType))

	h.addVariable(sensor, "Temperature")
	target := ua.ExpandedNodeID{NodeID: sensor}
	h.call(proto.CmdAddReference, room, refType, target, true)
	e := h.fail(proto.CmdAddReference, room, refType, target, true)
	assert.Equal(t, "BadDuplicateReferenceNotAllowed", e.Reason)
	h.call(proto.CmdDeleteReference, room, refType, target, true, true)
	h.call(proto.CmdDeleteNode, sensor, true)
	e = h.fail(proto.CmdReadValue, sensor)
	assert.Equal(t, "BadNodeIdUnknown", e.Reason)
}

func TestBlankArrayScenario(t *testing.T) {
	h := newHarness(t)
	h.addVariable(labels, "Labels")
	kind := uint32(ua.KindString)

	h.call(proto.CmdWriteBlankArray, labels, kind, uint32(4))
	for i, s := range []string{"a", "b", "c", "d"} {
		h.call(proto.CmdWriteValue, labels, kind, uint32(i), s)
	}
	v, ok := h.call(proto.CmdReadValue, labels).(ua.Variant)
	require.True(t, ok)
	assert.True(t, v.IsArray())
	assert.Equal(t, []interface{}{"a", "b", "c", "d"}, v.Elems())
	assert.Equal(t, "c", h.call(proto.CmdReadValueByIndex, labels, uint32(2)))

	e := h.fail(proto.CmdReadValueByIndex, labels, uint32(4))
	assert.True(t, errors.Is(e, ua.ErrOutOfRange))
	e = h.fail(proto.CmdWriteValue, labels, kind, uint32(4), "e")
	assert.True(t, errors.Is(e, ua.ErrOutOfRange))
	e = h.fail(proto.CmdWriteValue, labels, uint32(ua.KindInt32), uint32(0), int32(1))
	assert.Equal(t, "BadTypeMismatch", e.Reason)

	// value of another kind than announced
	e = h.fail(proto.CmdWriteValue, labels, kind, uint32(0), int32(1))
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
	// unknown kind
	e = h.fail(proto.CmdWriteBlankArray, labels, uint32(200), uint32(1))
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
	e = h.fail(proto.CmdWriteBlankArray, labels, kind, uint32(maxBlankArrayLen+1))
	assert.True(t, errors.Is(e, ua.ErrOutOfRange))

	// port initiated writes are not reported as value changes
	for _, ev := range h.events {
		assert.NotEqual(t, proto.NodeValueChanged, ev.Kind)
	}
}

func TestScalarValues(t *testing.T) {
	h := newHarness(t)
	h.addVariable(sensor, "Temperature")

	assert.Nil(t, h.call(proto.CmdReadValue, sensor))
	e := h.fail(proto.CmdReadValueByIndex, sensor, uint32(0))
	assert.True(t, errors.Is(e, ua.ErrOutOfRange))

	h.call(proto.CmdWriteValue, sensor, uint32(ua.KindDouble), uint32(0), 21.5)
	assert.Equal(t, 21.5, h.call(proto.CmdReadValue, sensor))
	assert.Equal(t, 21.5, h.call(proto.CmdReadValueByIndex, sensor, uint32(0)))
	assert.Equal(t, 21.5, h.call(proto.CmdReadValueByKind, sensor, uint32(ua.KindDouble)))
	e = h.fail(proto.CmdReadValueByKind, sensor, uint32(ua.KindFloat))
	assert.Equal(t, "BadTypeMismatch", e.Reason)
	e = h.fail(proto.CmdWriteValue, sensor, uint32(ua.KindDouble), uint32(1), 22.0)
	assert.True(t, errors.Is(e, ua.ErrOutOfRange))

	arr, err := ua.NewArray(ua.KindInt32, []interface{}{int32(1), int32(2)})
	require.NoError(t, err)
	h.call(proto.CmdWriteValueArray, sensor, uint32(ua.KindInt32), arr)
	v := h.call(proto.CmdReadValueByKind, sensor, uint32(ua.KindInt32)).(ua.Variant)
	assert.Equal(t, []interface{}{int32(1), int32(2)}, v.Elems())

	e = h.fail(proto.CmdWriteValueArray, sensor, uint32(ua.KindDouble), arr)
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
	e = h.fail(proto.CmdWriteValueArray, sensor, uint32(ua.KindDouble), 1.0)
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
}

func TestSubscriptionCommands(t *testing.T) {
	h := newHarness(t)
	h.addVariable(sensor, "Temperature")

	subID, ok := h.call(proto.CmdAddSubscription, 500.0).(uint32)
	require.True(t, ok)
	monID, ok := h.call(proto.CmdAddMonitoredItem, subID, sensor, 100.0).(uint32)
	require.True(t, ok)
	h.events = nil

	v, err := ua.NewScalar(ua.KindDouble, 19.0)
	require.NoError(t, err)
	require.NoError(t, h.entity.Write(sensor, v))
	require.Len(t, h.events, 2)
	assert.Equal(t, proto.SubscriptionData, h.events[0].Kind)
	assert.Equal(t, subID, h.events[0].SubscriptionID)
	assert.Equal(t, monID, h.events[0].MonitoredID)
	assert.Equal(t, proto.NodeValueChanged, h.events[1].Kind)

	h.call(proto.CmdDeleteMonitoredItem, subID, monID)
	h.call(proto.CmdDeleteSubscription, subID)
	e := h.fail(proto.CmdDeleteSubscription, subID)
	assert.False(t, e.IsLocal())

	e = h.fail(proto.CmdAddSubscription, -1.0)
	assert.True(t, errors.Is(e, ua.ErrInvalidArgument))
}

func TestProtocolErrors(t *testing.T) {
	h := newHarness(t)
	tests := []struct {
		name string
		cmd  proto.Command
		args []interface{}
	}{
		{"missing argument", proto.CmdReadValue, nil},
		{"extra argument", proto.CmdTest, []interface{}{true}},
		{"wrong tag", proto.CmdReadValue, []interface{}{"ns=1;s=x"}},
		{"wrong tag in later argument", proto.CmdDeleteNode, []interface{}{sensor, uint32(1)}},
		{"unknown command", proto.Command(999), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.exec(tt.cmd, tt.args...)
			require.Error(t, err)
			assert.True(t, term.IsProtocolError(err), "%v", err)
		})
	}
}
