package interchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arr-ai/dbc/dbc"
)

const network = `VERSION "2.1"

NS_ :
	CM_
	BA_DEF_

BS_: 500:18446744073709551615:3

BU_: ABS Gateway
VAL_TABLE_ Faults 2 "active" 1 "inactive" 0 "none" ;
VAL_TABLE_ Empty ;

BO_ 117 Bare: 8 ABS

BO_ 2147487969 Multiplexed: 8 Vector__XXX
 SG_ Mux M : 0|8@1+ (1,0) [0|255] "" Vector__XXX
 SG_ Sub m1 : 8|8@0- (0.005,-163.84) [-163.84|163.83] "°/s" Gateway
 SG_ Both m2M : 16|8@1+ (1,0)

EV_ Str: 0 [0|0] "Nm" 0 1 DUMMY_NODE_VECTOR8000 Gateway;
EV_ Flt: 1 [-1.5|1e+20] "m" 0.5 2 DUMMY_NODE_VECTOR3 ABS,Gateway;

ENVVAR_DATA_ Flt: 10;

CM_ "network \"quoted\" \q";
CM_ BU_ ABS "node";
CM_ BO_ 117 "message
over lines";
CM_ SG_ 2147487969 Mux "signal";
CM_ EV_ Flt "env";

BA_DEF_ "BusType" STRING ;
BA_DEF_ BU_ "Layer" INT -5 100;
BA_DEF_ BO_ "Hex" HEX 0 255;
BA_DEF_ SG_ "Enum" ENUM "a","b";
BA_DEF_ EV_ "Float" FLOAT -1.5 2.5;
BA_DEF_ BO_ "NoLabels" ENUM ;
BA_DEF_REL_ BU_SG_REL_ "Rx" STRING ;

BA_DEF_DEF_ "BusType" "CAN";
BA_DEF_DEF_REL_ "Rx" 0;

BA_ "BusType" "yes";
BA_ "Layer" BU_ ABS 1;
BA_ "Hex" BO_ 117 16;
BA_ "Enum" SG_ 2147487969 Mux 1;
BA_ "Float" EV_ Flt 1.25;

VAL_ 2147487969 Mux 1 "one" 0 "zero" ;
VAL_ Flt 1 "on" ;
`

func parseNetwork(t *testing.T) *dbc.Document {
	t.Helper()
	d, err := dbc.Parse(network)
	require.NoError(t, err)
	return d
}

func TestTreeRoundTrip(t *testing.T) {
	t.Parallel()

	d := parseNetwork(t)
	again, err := FromTree(ToTree(d))
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("tree round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := parseNetwork(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, d))
	assert.Contains(t, buf.String(), `"btr1": 18446744073709551615`)
	assert.Contains(t, buf.String(), `"unit": "°/s"`)

	again, err := DecodeJSON(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, d.String(), again.String())
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	d := parseNetwork(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, d))

	again, err := DecodeYAML(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s\n%s", diff, buf.String())
	}
}

func TestCBORRoundTrip(t *testing.T) {
	t.Parallel()

	d := parseNetwork(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeCBOR(&buf, d))
	first := append([]byte(nil), buf.Bytes()...)

	again, err := DecodeCBOR(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("CBOR round trip mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	require.NoError(t, EncodeCBOR(&buf, again))
	assert.Equal(t, first, buf.Bytes())
}

func TestDecodeYAMLReadsJSON(t *testing.T) {
	t.Parallel()

	d := parseNetwork(t)
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, d))

	again, err := DecodeYAML(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(d, again); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestToTreeShape(t *testing.T) {
	t.Parallel()

	tree := ToTree(parseNetwork(t))
	assert.Equal(t, "2.1", tree["version"])
	assert.Equal(t, Tree{"value": Tree{"baudrate": uint64(500), "btr1": uint64(18446744073709551615), "btr2": uint64(3)}},
		tree["bit_timing"])

	messages := tree["messages"].([]interface{})
	require.Len(t, messages, 2)
	signals := messages[1].(Tree)["signals"].([]interface{})
	mux := signals[0].(Tree)
	assert.Equal(t, Tree{"is_switch": true}, mux["multiplexer"])
	assert.Equal(t, "little_endian", mux["byte_order"])
	both := signals[2].(Tree)
	assert.NotContains(t, both, "range")
	assert.NotContains(t, both, "unit")

	comments := tree["comments"].([]interface{})
	assert.Equal(t, Tree{"type": "signal", "message_id": uint64(2147487969), "signal": "Mux"},
		comments[3].(Tree)["object"])

	defs := tree["attribute_definitions"].([]interface{})
	assert.Equal(t, Tree{"type": "enum", "labels": []interface{}{"a", "b"}}, defs[3].(Tree)["type"])
	assert.Equal(t, "node_mapped_rx_signal", defs[6].(Tree)["scope"])

	values := tree["attribute_values"].([]interface{})
	assert.Equal(t, Tree{"string": "yes"}, values[0].(Tree)["value"])
}

func TestValueTablePresence(t *testing.T) {
	t.Parallel()

	d, err := dbc.Parse("VERSION \"\"\nNS_:\nBU_:\n")
	require.NoError(t, err)
	tree := ToTree(d)
	assert.NotContains(t, tree, "value_tables")
	assert.NotContains(t, tree, "bit_timing")

	tree["value_tables"] = []interface{}{}
	tree["bit_timing"] = Tree{}
	again, err := FromTree(tree)
	require.NoError(t, err)
	assert.NotNil(t, again.ValueTables)
	assert.Empty(t, again.ValueTables)
	assert.Equal(t, &dbc.BitTiming{}, again.BitTiming)
	assert.Equal(t, "VERSION \"\"\n\nNS_:\n\nBS_:\nBU_:\n\n\n", again.String())
}

func TestFromTreeErrors(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name string
		yaml string
		path string
	}{
		{"missing version", "nodes: []", "version"},
		{"bad list", "version: x\nnodes: ABS", "nodes"},
		{"bad byte order", `
version: x
messages:
  - header: {id: 1, name: M, size: 8, transmitter: A}
    signals:
      - {name: S, start_bit: 0, size: 8, byte_order: middle, value_type: signed, factor: 1, offset: 0}
`, "messages[0].signals[0].byte_order"},
		{"id overflow", `
version: x
messages:
  - header: {id: 1, name: M, size: 8, transmitter: A}
    signals:
      - {name: S, start_bit: 4294967296, size: 8, byte_order: big_endian, value_type: signed, factor: 1, offset: 0}
`, "messages[0].signals[0].start_bit"},
		{"unknown header key", `
version: x
messages:
  - header: {id: 1, name: M, size: 8, transmitter: A, colour: red}
`, "messages[0].header"},
		{"unknown object", `
version: x
comments:
  - {object: {type: planet}, text: hi}
`, "comments[0].object.type"},
		{"bad scalar", `
version: x
attribute_values:
  - {name: A, object: {type: network}, value: {int: 1}}
`, "attribute_values[0].value"},
		{"unknown value type", `
version: x
attribute_definitions:
  - {scope: network, name: A, type: {type: blob}}
`, "attribute_definitions[0].type.type"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeYAML(strings.NewReader(test.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTree)
			assert.Contains(t, err.Error(), ": "+test.path+": ")
		})
	}
}

func TestDecodeSyntaxErrors(t *testing.T) {
	t.Parallel()

	_, err := DecodeJSON(strings.NewReader("{"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTree)

	_, err = DecodeYAML(strings.NewReader("version: [unclosed"))
	require.Error(t, err)

	_, err = DecodeCBOR(bytes.NewReader([]byte{0xbf}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidTree)
}
