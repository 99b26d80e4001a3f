package dbc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	v, err := ParseVersion(`VERSION "1.0"`)
	require.NoError(t, err)
	assert.Equal(t, CharString("1.0"), v)
	assert.Equal(t, `VERSION "1.0"`, "VERSION "+v.Quoted())

	v, err = ParseVersion("\n  VERSION   \"\"  \n")
	require.NoError(t, err)
	assert.Equal(t, CharString(""), v)
}

func TestParseBitTiming(t *testing.T) {
	t.Parallel()

	withValue, err := ParseBitTiming("BS_: 12:123:456")
	require.NoError(t, err)
	assert.Equal(t, &BitTiming{Value: &BitTimingValue{Baudrate: 12, BTR1: 123, BTR2: 456}}, withValue)
	assert.Equal(t, "BS_: 12:123:456", withValue.String())

	bare, err := ParseBitTiming("BS_:")
	require.NoError(t, err)
	assert.Equal(t, &BitTiming{}, bare)
	assert.Equal(t, "BS_:", bare.String())
	assert.NotEqual(t, withValue, bare)

	semi, err := ParseBitTiming("BS_: 500 : 1 : 2 ;\n")
	require.NoError(t, err)
	assert.Equal(t, uint64(500), semi.Value.Baudrate)
}

func TestParseNewSymbols(t *testing.T) {
	t.Parallel()

	symbols, err := ParseNewSymbols("NS_ :\n\tNS_DESC_\n\tCM_\n\tBA_DEF_\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"NS_DESC_", "CM_", "BA_DEF_"}, symbols)

	symbols, err = ParseNewSymbols("NS_:")
	require.NoError(t, err)
	assert.Nil(t, symbols)
}

func TestParseNodes(t *testing.T) {
	t.Parallel()

	nodes, err := ParseNodes("BU_: ABS DRS_MM5_10\tNode0\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"ABS", "DRS_MM5_10", "Node0"}, nodes)

	nodes, err = ParseNodes("BU_:")
	require.NoError(t, err)
	assert.Nil(t, nodes)
}

func TestParseValueTable(t *testing.T) {
	t.Parallel()

	vt, err := ParseValueTable(`VAL_TABLE_ ABS_fault_info 2 "active" 1 "inactive" 0 "none" ;`)
	require.NoError(t, err)
	assert.Equal(t, ValueTable{
		Name: "ABS_fault_info",
		Values: []ValueDescription{
			{Code: 2, Label: "active"},
			{Code: 1, Label: "inactive"},
			{Code: 0, Label: "none"},
		},
	}, vt)
	assert.Equal(t, `VAL_TABLE_ ABS_fault_info 2 "active" 1 "inactive" 0 "none";`, vt.String())

	empty, err := ParseValueTable("VAL_TABLE_ Empty ;")
	require.NoError(t, err)
	assert.Equal(t, ValueTable{Name: "Empty"}, empty)

	neg, err := ParseValueTable(`VAL_TABLE_ T -1 "minus";`)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), neg.Values[0].Code)
}

func TestParseMessage(t *testing.T) {
	t.Parallel()

	m, err := ParseMessage("BO_ 117 DRS_RX_ID0: 8 ABS")
	require.NoError(t, err)
	assert.Equal(t, MessageHeader{ID: 117, Name: "DRS_RX_ID0", Size: 8, Transmitter: "ABS"}, m.Header)
	assert.Empty(t, m.Signals)
	assert.Equal(t, "BO_ 117 DRS_RX_ID0: 8 ABS", m.String())

	m, err = ParseMessage("BO_ 112 MM5_10_TX1: 8 DRS_MM5_10\n" +
		" SG_ A : 0|8@1+ (1,0) [0|0] \"\" ABS\n" +
		" SG_ B : 8|8@1+ (1,0) [0|0] \"\" ABS\n\n")
	require.NoError(t, err)
	require.Len(t, m.Signals, 2)
	assert.Equal(t, "A", m.Signals[0].Name)
	assert.Equal(t, "B", m.Signals[1].Name)

	again, err := ParseMessage(m.String())
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestParseSignal(t *testing.T) {
	t.Parallel()

	s, err := ParseSignal(`SG_ Yaw_Rate : 0|16@1+ (0.005,-163.84) [-163.84|163.83] "°/s"  ABS`)
	require.NoError(t, err)
	assert.Equal(t, Signal{
		Name:      "Yaw_Rate",
		StartBit:  0,
		Size:      16,
		ByteOrder: LittleEndian,
		ValueType: Unsigned,
		Factor:    0.005,
		Offset:    -163.84,
		Range:     &Range{Min: -163.84, Max: 163.83},
		Unit:      unit("°/s"),
		Receivers: []string{"ABS"},
	}, s)
	assert.Nil(t, s.Multiplexer)
	assert.Equal(t, `SG_ Yaw_Rate : 0|16@1+ (0.005,-163.84) [-163.84|163.83] "°/s" ABS`, s.String())
}

func TestParseSignalVariants(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name     string
		input    string
		expected Signal
	}{
		{
			name:  "switch",
			input: "SG_ Mux M : 0|8@1+ (1,0) [0|255] \"\" Vector__XXX",
			expected: Signal{
				Name: "Mux", Multiplexer: &Multiplexer{IsSwitch: true}, Size: 8, ByteOrder: LittleEndian,
				Factor: 1, Range: &Range{Max: 255}, Unit: unit(""), Receivers: []string{NoSender},
			},
		},
		{
			name:  "multiplexed",
			input: "SG_ Sub m12 : 8|8@0- (1,0)",
			expected: Signal{
				Name: "Sub", Multiplexer: &Multiplexer{SwitchValue: u32p(12)}, StartBit: 8, Size: 8,
				ByteOrder: BigEndian, ValueType: Signed, Factor: 1,
			},
		},
		{
			name:  "combined",
			input: "SG_ Both m2M : 16|8@1+ (1,0) [0|0] \"\" Node0,ABS",
			expected: Signal{
				Name: "Both", Multiplexer: &Multiplexer{SwitchValue: u32p(2), IsSwitch: true}, StartBit: 16,
				Size: 8, ByteOrder: LittleEndian, Factor: 1, Range: &Range{}, Unit: unit(""),
				Receivers: []string{"Node0", "ABS"},
			},
		},
		{
			name:  "exponent factor",
			input: "SG_ Tiny : 0|32@1- (1e-3,-2.5E2) [-1.5|1.5] \"V\"",
			expected: Signal{
				Name: "Tiny", Size: 32, ByteOrder: LittleEndian, ValueType: Signed,
				Factor: 0.001, Offset: -250, Range: &Range{Min: -1.5, Max: 1.5}, Unit: unit("V"),
			},
		},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			s, err := ParseSignal(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, s)

			again, err := ParseSignal(s.String())
			require.NoError(t, err, s.String())
			assert.Equal(t, s, again)
		})
	}
}

func TestParseComment(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		input    string
		expected Comment
	}{
		{`CM_ "net";`, Comment{Object: NetworkRef{}, Text: "net"}},
		{`CM_ BU_ ABS "node";`, Comment{Object: NodeRef{Node: "ABS"}, Text: "node"}},
		{`CM_ BO_ 112 "msg";`, Comment{Object: MessageRef{MessageID: 112}, Text: "msg"}},
		{`CM_ SG_ 112 Yaw "sig";`, Comment{Object: SignalRef{MessageID: 112, Signal: "Yaw"}, Text: "sig"}},
		{`CM_ EV_ Ev "ev";`, Comment{Object: EnvVarRef{EnvironmentVariable: "Ev"}, Text: "ev"}},
		{"CM_ BO_ 1 \"two\nlines\" ;", Comment{Object: MessageRef{MessageID: 1}, Text: "two\nlines"}},
	} {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			c, err := ParseComment(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, c)

			again, err := ParseComment(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, again)
		})
	}
}

func TestQuotedStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, body := range []CharString{
		"",
		"plain",
		`say \"hi\"`,
		`tab\tnewline\n`,
		`unknown \q and \x escapes`,
		`backslash \\`,
		`été`,
		"°/s",
	} {
		body := body
		t.Run(string(body), func(t *testing.T) {
			t.Parallel()
			c, err := ParseComment(Comment{Object: NetworkRef{}, Text: body}.String())
			require.NoError(t, err)
			assert.Equal(t, body, c.Text)
		})
	}
}

func TestCharStringUnescape(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		raw      CharString
		expected string
	}{
		{"plain", "plain"},
		{`a\"b`, `a"b`},
		{`a\\b`, `a\b`},
		{`\/\b\f\n\r\t`, "/\b\f\n\r\t"},
		{`é`, "é"},
		{`\u00`, `\u00`},
		{`\q`, `\q`},
		{`end\`, `end\`},
		{"°", "°"},
	} {
		test := test
		t.Run(string(test.raw), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, test.raw.Unescape())
		})
	}
}

func TestParseAttributeDefinition(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		input    string
		expected AttributeDefinition
	}{
		{
			`BA_DEF_ SG_  "SGEnumAttribute" ENUM  "Val0","Val1","Val2";`,
			AttributeDefinition{
				Scope: SignalScope,
				Name:  "SGEnumAttribute",
				Type:  EnumType{Labels: []CharString{"Val0", "Val1", "Val2"}},
			},
		},
		{`BA_DEF_ "BusType" STRING ;`, AttributeDefinition{Scope: NetworkScope, Name: "BusType", Type: StringType{}}},
		{`BA_DEF_ BU_ "N" INT -5 100;`, AttributeDefinition{Scope: NodeScope, Name: "N", Type: IntType{Min: -5, Max: 100}}},
		{`BA_DEF_ BO_ "H" HEX 0 255;`, AttributeDefinition{Scope: MessageScope, Name: "H", Type: HexType{Max: 255}}},
		{`BA_DEF_ EV_ "F" FLOAT -1.5 2.5e3;`, AttributeDefinition{
			Scope: EnvironmentVariableScope, Name: "F", Type: FloatType{Min: -1.5, Max: 2500},
		}},
		{`BA_DEF_ BO_ "E" ENUM ;`, AttributeDefinition{Scope: MessageScope, Name: "E", Type: EnumType{}}},
		{`BA_DEF_REL_ BU_EV_REL_ "R1" STRING ;`, AttributeDefinition{
			Scope: NodeEnvironmentVariableScope, Name: "R1", Type: StringType{},
		}},
		{`BA_DEF_REL_ BU_BO_REL_ "R2" INT 0 10;`, AttributeDefinition{
			Scope: NodeTxMessageScope, Name: "R2", Type: IntType{Max: 10},
		}},
		{`BA_DEF_REL_ BU_SG_REL_ "R3" ENUM "No","Yes";`, AttributeDefinition{
			Scope: NodeMappedRxSignalScope, Name: "R3", Type: EnumType{Labels: []CharString{"No", "Yes"}},
		}},
	} {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			def, err := ParseAttributeDefinition(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, def)
			assert.Equal(t, test.expected.Scope.IsRelation(), def.Scope >= NodeEnvironmentVariableScope)

			again, err := ParseAttributeDefinition(def.String())
			require.NoError(t, err, def.String())
			assert.Equal(t, def, again)
		})
	}
}

func TestParseAttributeDefault(t *testing.T) {
	t.Parallel()

	d, err := ParseAttributeDefault(`BA_DEF_DEF_ "BusType" "CAN";`)
	require.NoError(t, err)
	assert.Equal(t, AttributeDefault{Name: "BusType", Value: StringValue("CAN")}, d)

	d, err = ParseAttributeDefault(`BA_DEF_DEF_REL_ "NodeTx" 0.5;`)
	require.NoError(t, err)
	assert.Equal(t, AttributeDefault{Relation: true, Name: "NodeTx", Value: DoubleValue(0.5)}, d)
	assert.Equal(t, `BA_DEF_DEF_REL_ "NodeTx" 0.5;`, d.String())
}

func TestParseAttributeValue(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		input    string
		expected AttributeValue
	}{
		{`BA_ "BusType" "CAN";`, AttributeValue{Name: "BusType", Object: NetworkRef{}, Value: StringValue("CAN")}},
		{`BA_ "L" BU_ ABS 1;`, AttributeValue{Name: "L", Object: NodeRef{Node: "ABS"}, Value: DoubleValue(1)}},
		{`BA_ "C" BO_ 112 20;`, AttributeValue{Name: "C", Object: MessageRef{MessageID: 112}, Value: DoubleValue(20)}},
		{`BA_ "E" SG_ 112 Yaw 2;`, AttributeValue{
			Name: "E", Object: SignalRef{MessageID: 112, Signal: "Yaw"}, Value: DoubleValue(2),
		}},
		{`BA_ "F" EV_ Ev -1.25;`, AttributeValue{
			Name: "F", Object: EnvVarRef{EnvironmentVariable: "Ev"}, Value: DoubleValue(-1.25),
		}},
	} {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			v, err := ParseAttributeValue(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, v)
			assert.Equal(t, test.input, v.String())
		})
	}
}

func TestParseValueDescriptionAttachment(t *testing.T) {
	t.Parallel()

	sig, env, err := ParseValueDescriptionAttachment(`VAL_ 112 Yaw_Rate 1 "one" 0 "zero" ;`)
	require.NoError(t, err)
	assert.Nil(t, env)
	assert.Equal(t, &SignalValueDescriptions{
		MessageID: 112,
		Signal:    "Yaw_Rate",
		Values:    []ValueDescription{{Code: 1, Label: "one"}, {Code: 0, Label: "zero"}},
	}, sig)
	assert.Equal(t, `VAL_ 112 Yaw_Rate 1 "one" 0 "zero";`, sig.String())

	sig, env, err = ParseValueDescriptionAttachment(`VAL_ RWEnvVar 1 "on" 0 "off";`)
	require.NoError(t, err)
	assert.Nil(t, sig)
	assert.Equal(t, &EnvironmentVariableValueDescriptions{
		EnvironmentVariable: "RWEnvVar",
		Values:              []ValueDescription{{Code: 1, Label: "on"}, {Code: 0, Label: "off"}},
	}, env)

	sig, env, err = ParseValueDescriptionAttachment(`VAL_ 7 Empty ;`)
	require.NoError(t, err)
	assert.Nil(t, env)
	assert.Equal(t, &SignalValueDescriptions{MessageID: 7, Signal: "Empty"}, sig)
}

func TestParseConstructErrors(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name  string
		parse func(string) error
		input string
		kind  ErrorKind
	}{
		{"version unquoted", errOf(ParseVersion), "VERSION 1.0", BadVersion},
		{"version trailing", errOf(ParseVersion), `VERSION "1" x`, BadVersion},
		{"symbols colon", errOf(ParseNewSymbols), "NS_ CM_", BadNames},
		{"bit timing value", errOf(ParseBitTiming), "BS_: 12:x", BadBitTiming},
		{"nodes keyword", errOf(ParseNodes), "BU: A", BadCanNodes},
		{"nodes keyword as name", errOf(ParseNodes), "BU_: A VERSION", BadCanNodes},
		{"value table semicolon", errOf(ParseValueTable), `VAL_TABLE_ T 1 "a"`, BadValueTable},
		{"header id", errOf(ParseMessageHeader), "BO_ x M: 8 A", BadMessageHeader},
		{"header id overflow", errOf(ParseMessageHeader), "BO_ 4294967296 M: 8 A", BadMessageHeader},
		{"message bad signal", errOf(ParseMessage), "BO_ 1 M: 8 A\n SG_ S : 0|8@2+ (1,0)", BadSignal},
		{"signal byte order", errOf(ParseSignal), "SG_ S : 0|8@2+ (1,0)", BadSignal},
		{"comment node", errOf(ParseComment), `CM_ BU_ 12 "x";`, BadComment},
		{"comment unterminated", errOf(ParseComment), `CM_ "x;`, BadComment},
		{"definition", errOf(ParseAttributeDefinition), `BA_DEF_ BU_ "X" INT 0;`, BadNodeMappedRxSignalAttribute},
		{"default", errOf(ParseAttributeDefault), `BA_DEF_DEF_ "X" ;`, BadRelationAttributeDefinitionDefault},
		{"value", errOf(ParseAttributeValue), `BA_ "X" BO_ x 1;`, BadEnvironmentVariableAttributeValue},
		{"env var", errOf(ParseEnvironmentVariable), `EV_ E: 0 [0|1] "" 0 1 DUMMY_NODE_VECTORX A;`, BadEnvironmentVariable},
		{"env var data", errOf(ParseEnvironmentVariableData), "ENVVAR_DATA_ E 10;", BadEnvironmentVariableData},
		{"value descriptions", errOfAttachment, `VAL_ 1 S 1 "a"`, BadEnvironmentVariableValueDescriptions},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := test.parse(test.input)
			require.Error(t, err)
			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, test.kind, e.Kind, e.Detail())
		})
	}
}

func TestParseMessageReportsSignalPosition(t *testing.T) {
	t.Parallel()

	_, err := ParseMessage("BO_ 1 M: 8 A\n SG_ S : 0|8@2+ (1,0)")
	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, 14, e.Column)
}

func errOf[T any](parse func(string, ...Option) (T, error)) func(string) error {
	return func(input string) error {
		_, err := parse(input)
		return err
	}
}

func errOfAttachment(input string) error {
	_, _, err := ParseValueDescriptionAttachment(input)
	return err
}
