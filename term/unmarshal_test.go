package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdzio/go-uaport/ua"
)

func TestDecodeProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"unknown tag", "3f"},
		{"unknown node ID type", "11 04 00 00 00 00 00 01"},
		{"truncated int32", "06 00 01"},
		{"string length exceeds message", "0c 00 00 10 00 61"},
		{"array length exceeds message", "40 07 00 01 00 00"},
		{"unknown array kind", "40 3e 00 00 00 00"},
		{"tuple arity exceeds message", "41 00 00 00 05 00"},
		{"trailing bytes", "01 01 00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(unhex(t, tt.in))
			require.Error(t, err)
			assert.True(t, IsProtocolError(err), err.Error())
		})
	}
}

func TestDecodeUnexpectedTag(t *testing.T) {
	d := NewDecoder(unhex(t, "0c 00 00 00 00"))
	_, err := d.DecodeNodeID()
	assert.True(t, IsProtocolError(err))
}

func TestDecodeInvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"boolean 2", "01 02"},
		{"GUID data2 wider than 16 bits", "0e 00 00 00 01 00 01 00 00 00 00 00 03 00 00 00 00 00 00 00 00"},
		{"float exceeds single precision", "0a 7f ef ff ff ff ff ff ff"},
		{"unknown status mnemonic", "13 00 00 00 06 42 61 64 46 6f 6f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(unhex(t, tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, ua.ErrInvalidArgument)
			assert.False(t, IsProtocolError(err))
		})
	}
	_, err := Decode(unhex(t, "13 00 00 00 06 42 61 64 46 6f 6f"))
	assert.ErrorIs(t, err, ua.ErrUnknownStatus)

	// the generic mnemonic is part of the table
	v, err := Decode(unhex(t, "13 00 00 00 03 42 61 64"))
	require.NoError(t, err)
	assert.Equal(t, ua.StatusBad, v)
}

func TestNodeIDScenario(t *testing.T) {
	in := ua.NewStringNodeID(3, "R1_TS1_Temperature")
	e := NewEncoder()
	require.NoError(t, e.EncodeNodeID(in))
	out, err := NewDecoder(e.Bytes()).DecodeNodeID()
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, uint16(3), out.Namespace)
	assert.Equal(t, ua.IDString, out.Type)
	assert.Equal(t, "R1_TS1_Temperature", out.String)
}

func TestIdentifierRoundTrip(t *testing.T) {
	g, _ := ua.ParseGUID("72962B91-FA75-4AE6-8D28-B404DC7DAF63")
	ids := []ua.NodeID{
		ua.NewNumericNodeID(0, 0),
		ua.NewNumericNodeID(65535, 4294967295),
		ua.NewStringNodeID(1, ""),
		ua.NewStringNodeID(2, "a.b.c"),
		ua.NewGUIDNodeID(3, g),
		ua.NewOpaqueNodeID(4, nil),
		ua.NewOpaqueNodeID(4, []byte{0, 1, 2}),
	}
	for _, id := range ids {
		for _, uri := range []string{"", "urn:a"} {
			for _, idx := range []uint32{0, 9} {
				en := ua.ExpandedNodeID{NodeID: id, NamespaceURI: uri, ServerIndex: idx}
				e := NewEncoder()
				require.NoError(t, e.EncodeExpandedNodeID(en))
				out, err := NewDecoder(e.Bytes()).DecodeExpandedNodeID()
				require.NoError(t, err)
				assert.Equal(t, en, out)
			}
		}
		e := NewEncoder()
		require.NoError(t, e.EncodeNodeID(id))
		out, err := NewDecoder(e.Bytes()).DecodeNodeID()
		require.NoError(t, err)
		assert.Equal(t, id, out)
	}

	q := ua.QualifiedName{Namespace: 7, Name: "Name"}
	e := NewEncoder()
	require.NoError(t, e.EncodeQualifiedName(q))
	qo, err := NewDecoder(e.Bytes()).DecodeQualifiedName()
	require.NoError(t, err)
	assert.Equal(t, q, qo)
}

func TestVariantAdapter(t *testing.T) {
	scalar, _ := ua.NewScalar(ua.KindUInt32, uint32(3))
	arr, _ := ua.NewArray(ua.KindString, []interface{}{"alde103_1", "alde103_2"})
	emptyArr, _ := ua.NewArray(ua.KindDouble, nil)

	tests := []struct {
		name string
		in   ua.Variant
		want string
	}{
		{"empty", ua.Variant{}, "00"},
		{"scalar", scalar, "07 00 00 00 03"},
		{
			"array",
			arr,
			"40 0c 00 00 00 02 00 00 00 09 61 6c 64 65 31 30 33 5f 31 00 00 00 09 61 6c 64 65 31 30 33 5f 32",
		},
		{"empty array", emptyArr, "40 0b 00 00 00 00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			require.NoError(t, e.EncodeVariant(tt.in))
			assert.Equal(t, unhex(t, tt.want), e.Bytes())
			out, err := NewDecoder(e.Bytes()).DecodeVariant()
			require.NoError(t, err)
			assert.Equal(t, tt.in, out)
		})
	}

	// empty array and empty value are different on the wire
	e1, e2 := NewEncoder(), NewEncoder()
	require.NoError(t, e1.EncodeVariant(ua.Variant{}))
	require.NoError(t, e2.EncodeVariant(emptyArr))
	assert.NotEqual(t, e1.Bytes(), e2.Bytes())
}

func TestDecodeVariantBadTag(t *testing.T) {
	_, err := NewDecoder(unhex(t, "41 00 00 00 00")).DecodeVariant()
	assert.True(t, IsProtocolError(err))
}
