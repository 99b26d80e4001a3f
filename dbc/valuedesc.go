package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

func valueDescriptionRules() p.Grammar {
	return p.Grammar{
		// The signal form is tried first; an environment variable name
		// followed by a code would otherwise never be told apart.
		ruleValueDescAttachment: p.Oneof{ruleSignalValueDescs, ruleEnvVarValueDescs},
		ruleSignalValueDescs: p.Seq{
			p.Lined(kw("VAL_")),
			field("message_id", ruleUnsigned),
			field("signal_name", ruleIdentifier),
			ruleValueDescriptions,
			punct(";"),
			lineEnd,
		},
		ruleEnvVarValueDescs: p.Seq{
			p.Lined(kw("VAL_")),
			field("env_var_name", ruleIdentifier),
			ruleValueDescriptions,
			punct(";"),
			lineEnd,
		},
	}
}

func buildValueDescriptionAttachment(n p.Node) (*SignalValueDescriptions, *EnvironmentVariableValueDescriptions) {
	i, v := chosen(n)
	if i == 0 {
		return buildSignalValueDescriptions(v), nil
	}
	return nil, buildEnvVarValueDescriptions(v)
}

func buildSignalValueDescriptions(n p.Node) *SignalValueDescriptions {
	return &SignalValueDescriptions{
		MessageID: u32(n, "message_id"),
		Signal:    text(n, "signal_name"),
		Values:    buildValueDescriptions(get(n, string(ruleValueDescriptions))),
	}
}

func buildEnvVarValueDescriptions(n p.Node) *EnvironmentVariableValueDescriptions {
	return &EnvironmentVariableValueDescriptions{
		EnvironmentVariable: text(n, "env_var_name"),
		Values:              buildValueDescriptions(get(n, string(ruleValueDescriptions))),
	}
}

// ParseValueDescriptionAttachment parses a VAL_ line. Exactly one of the
// results is non-nil on success.
func ParseValueDescriptionAttachment(input string, opts ...Option) (
	*SignalValueDescriptions, *EnvironmentVariableValueDescriptions, error,
) {
	n, err := parseConstruct(ruleValueDescAttachment, BadEnvironmentVariableValueDescriptions, input, opts)
	if err != nil {
		return nil, nil, err
	}
	sig, env := buildValueDescriptionAttachment(n)
	return sig, env, nil
}
