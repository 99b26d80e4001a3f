package dbc

import (
	"strconv"

	p "github.com/arr-ai/dbc/parser"
)

func envVarRules() p.Grammar {
	return p.Grammar{
		ruleEnvVar: p.Seq{
			p.Lined(kw("EV_")),
			field("name", ruleIdentifier),
			punct(":"),
			field("kind", ruleUnsigned),
			punct("["),
			field("min", ruleNumber),
			punct("|"),
			field("max", ruleNumber),
			punct("]"),
			field("unit", ruleCharString),
			field("initial", ruleNumber),
			field("id", ruleUnsigned),
			p.Spaced(p.Seq{p.S("DUMMY_NODE_VECTOR"), named("access_type", ruleHex16)}),
			p.Opt(named("access_nodes", p.Delim{Term: field("access_node", ruleIdentifier), Sep: p.S(",")})),
			punct(";"),
			lineEnd,
		},
		ruleEnvVarData: p.Seq{
			p.Lined(kw("ENVVAR_DATA_")),
			field("name", ruleIdentifier),
			punct(":"),
			field("size", ruleUnsigned),
			punct(";"),
			lineEnd,
		},
	}
}

// DecodeEnvVarKind derives the kind of an environment variable from the
// declared kind digit and the access bits. StringAccessFlag wins over the
// digit.
func DecodeEnvVarKind(digit uint32, access uint16) EnvVarKind {
	switch {
	case access&StringAccessFlag != 0:
		return StringEnvVar
	case digit == 0:
		return IntegerEnvVar
	}
	return FloatEnvVar
}

// EncodeEnvVarKind is the inverse of DecodeEnvVarKind.
func EncodeEnvVarKind(kind EnvVarKind, access uint16) (digit uint32, bits uint16) {
	switch kind {
	case FloatEnvVar:
		return 1, access
	case StringEnvVar:
		return 0, access | StringAccessFlag
	}
	return 0, access
}

func buildEnvVar(n p.Node) EnvironmentVariable {
	access, _ := strconv.ParseUint(text(n, "access_type"), 16, 16)
	ev := EnvironmentVariable{
		Name:         text(n, "name"),
		Kind:         DecodeEnvVarKind(u32(n, "kind"), uint16(access)),
		Min:          number(n, "min"),
		Max:          number(n, "max"),
		Unit:         charString(n, "unit"),
		InitialValue: number(n, "initial"),
		ID:           u32(n, "id"),
		AccessType:   uint16(access),
	}
	if nodes, ok := find(n, "access_nodes"); ok {
		ev.AccessNodes = texts(all(nodes, "access_node"))
	}
	return ev
}

func buildEnvVarData(n p.Node) EnvironmentVariableData {
	return EnvironmentVariableData{
		Name: text(n, "name"),
		Size: u32(n, "size"),
	}
}

// ParseEnvironmentVariable parses an EV_ line.
func ParseEnvironmentVariable(input string, opts ...Option) (EnvironmentVariable, error) {
	n, err := parseConstruct(ruleEnvVar, BadEnvironmentVariable, input, opts)
	if err != nil {
		return EnvironmentVariable{}, err
	}
	return buildEnvVar(n), nil
}

// ParseEnvironmentVariableData parses an ENVVAR_DATA_ line.
func ParseEnvironmentVariableData(input string, opts ...Option) (EnvironmentVariableData, error) {
	n, err := parseConstruct(ruleEnvVarData, BadEnvironmentVariableData, input, opts)
	if err != nil {
		return EnvironmentVariableData{}, err
	}
	return buildEnvVarData(n), nil
}
