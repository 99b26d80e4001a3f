package dbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvironmentVariable(t *testing.T) {
	t.Parallel()

	line := `EV_ UnrestrictedEnvVar: 0 [0|0] "Nm" 0 1 DUMMY_NODE_VECTOR8000  Node0;`
	ev, err := ParseEnvironmentVariable(line)
	require.NoError(t, err)
	assert.Equal(t, EnvironmentVariable{
		Name:         "UnrestrictedEnvVar",
		Kind:         StringEnvVar,
		Unit:         "Nm",
		ID:           1,
		AccessType:   StringAccessFlag,
		AccessNodes:  []string{"Node0"},
		Min:          0,
		Max:          0,
		InitialValue: 0,
	}, ev)
	assert.Equal(t, `EV_ UnrestrictedEnvVar: 0 [0|0] "Nm" 0 1 DUMMY_NODE_VECTOR8000 Node0;`, ev.String())
}

func TestParseEnvironmentVariableVariants(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		input string
		kind  EnvVarKind
		bits  uint16
		nodes []string
	}{
		{`EV_ I: 0 [0|10] "" 0 3 DUMMY_NODE_VECTOR0 Vector__XXX;`, IntegerEnvVar, UnrestrictedAccess, []string{NoSender}},
		{`EV_ F: 1 [-1.5|2.5] "m" 0.5 4 DUMMY_NODE_VECTOR3 A,B;`, FloatEnvVar, ReadWriteAccess, []string{"A", "B"}},
		{`EV_ R: 0 [0|1] "" 0 5 DUMMY_NODE_VECTOR1 A;`, IntegerEnvVar, ReadAccess, []string{"A"}},
		{`EV_ S: 1 [0|0] "" 0 6 DUMMY_NODE_VECTOR8002 A;`, StringEnvVar, StringAccessFlag | WriteAccess, []string{"A"}},
		{`EV_ N: 0 [0|1] "" 0 7 DUMMY_NODE_VECTOR0 ;`, IntegerEnvVar, UnrestrictedAccess, nil},
	} {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			ev, err := ParseEnvironmentVariable(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.kind, ev.Kind)
			assert.Equal(t, test.bits, ev.AccessType)
			assert.Equal(t, test.nodes, ev.AccessNodes)

			again, err := ParseEnvironmentVariable(ev.String())
			require.NoError(t, err, ev.String())
			assert.Equal(t, ev, again)
		})
	}
}

func TestEnvVarAccessNodesRender(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		nodes    []string
		expected string
	}{
		{"literal", []string{NoSender}, "Vector__XXX"},
		{"nil", nil, "Vector__XXX"},
		{"list", []string{"A", NoSender}, "A,Vector__XXX"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			ev := EnvironmentVariable{Name: "E", Kind: IntegerEnvVar, ID: 1, AccessNodes: test.nodes}
			assert.Equal(t,
				`EV_ E: 0 [0|0] "" 0 1 DUMMY_NODE_VECTOR0 `+test.expected+";",
				ev.String())
		})
	}
}

func TestEnvVarAccessLaw(t *testing.T) {
	t.Parallel()

	accesses := []uint16{UnrestrictedAccess, ReadAccess, WriteAccess, ReadWriteAccess}
	for _, kind := range []EnvVarKind{IntegerEnvVar, FloatEnvVar, StringEnvVar} {
		for _, access := range accesses {
			if kind == StringEnvVar {
				access |= StringAccessFlag
			}
			digit, bits := EncodeEnvVarKind(kind, access)
			assert.Equal(t, access, bits, "%v %04X", kind, access)
			assert.Equal(t, kind, DecodeEnvVarKind(digit, bits), "%v %04X", kind, access)
		}
	}

	for _, digit := range []uint32{0, 1, 7} {
		for _, access := range accesses {
			assert.Equal(t, StringEnvVar, DecodeEnvVarKind(digit, access|StringAccessFlag))
		}
	}

	// The string flag is restored even when the access bits lost it.
	_, bits := EncodeEnvVarKind(StringEnvVar, ReadAccess)
	assert.Equal(t, ReadAccess|StringAccessFlag, bits)

	digit, _ := EncodeEnvVarKind(DataEnvVar, UnrestrictedAccess)
	assert.Equal(t, uint32(0), digit)
}

func TestParseEnvironmentVariableData(t *testing.T) {
	t.Parallel()

	d, err := ParseEnvironmentVariableData("ENVVAR_DATA_ RWEnvVar_wData: 10;")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentVariableData{Name: "RWEnvVar_wData", Size: 10}, d)
	assert.Equal(t, "ENVVAR_DATA_ RWEnvVar_wData: 10;", d.String())
}

func TestEnvVarKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "integer", IntegerEnvVar.String())
	assert.Equal(t, "data", DataEnvVar.String())
	assert.Equal(t, "EnvVarKind(9)", EnvVarKind(9).String())
}
