package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

// definitionScopes lists the BA_DEF_ variants in the order they are tried,
// which is also the order of AttributeScope.
var definitionScopes = []struct {
	rule    p.Rule
	keyword string
	tag     string
}{
	{ruleNetworkAttributeDef, "BA_DEF_", ""},
	{ruleNodeAttributeDef, "BA_DEF_", "BU_"},
	{ruleMessageAttributeDef, "BA_DEF_", "BO_"},
	{ruleSignalAttributeDef, "BA_DEF_", "SG_"},
	{ruleEnvVarAttributeDef, "BA_DEF_", "EV_"},
	{ruleNodeEnvVarAttributeDef, "BA_DEF_REL_", "BU_EV_REL_"},
	{ruleNodeTxMessageAttributeDef, "BA_DEF_REL_", "BU_BO_REL_"},
	{ruleNodeMappedRxSignalAttribDef, "BA_DEF_REL_", "BU_SG_REL_"},
}

// objectRefs lists the object references of BA_ in the order they are
// tried.
var objectRefs = []p.Term{
	p.Seq{},
	p.Seq{p.Lined(kw("BU_")), p.Lined(named("node_name", ruleIdentifier))},
	p.Seq{p.Lined(kw("BO_")), p.Lined(named("message_id", ruleUnsigned))},
	p.Seq{
		p.Lined(kw("SG_")),
		p.Lined(named("message_id", ruleUnsigned)),
		p.Lined(named("signal_name", ruleIdentifier)),
	},
	p.Seq{p.Lined(kw("EV_")), p.Lined(named("env_var_name", ruleIdentifier))},
}

func attributeRules() p.Grammar {
	g := p.Grammar{
		ruleAttributeName: p.Seq{p.S(`"`), ruleIdentifier, p.S(`"`)},
		ruleAttributeScalar: p.Oneof{
			named("double", ruleNumber),
			named("string", ruleCharString),
		},

		ruleAttributeValueType: p.Oneof{
			ruleIntValueType,
			ruleHexValueType,
			ruleFloatValueType,
			ruleStringValueType,
			ruleEnumValueType,
		},
		ruleIntValueType: p.Seq{
			p.Lined(kw("INT")),
			p.Lined(named("min", ruleSigned)),
			p.Lined(named("max", ruleSigned)),
		},
		ruleHexValueType: p.Seq{
			p.Lined(kw("HEX")),
			p.Lined(named("min", ruleSigned)),
			p.Lined(named("max", ruleSigned)),
		},
		ruleFloatValueType: p.Seq{
			p.Lined(kw("FLOAT")),
			p.Lined(named("min", ruleNumber)),
			p.Lined(named("max", ruleNumber)),
		},
		ruleStringValueType: p.Lined(kw("STRING")),
		ruleEnumValueType: p.Seq{
			p.Lined(kw("ENUM")),
			p.Opt(p.Delim{Term: p.Lined(named("label", ruleCharString)), Sep: p.S(",")}),
		},

		ruleAttributeDefault: p.Oneof{ruleObjectAttributeDefault, ruleRelationAttributeDefault},
		ruleObjectAttributeDefault: p.Seq{
			p.Lined(kw("BA_DEF_DEF_")),
			p.Lined(ruleAttributeName),
			p.Lined(ruleAttributeScalar),
			p.Lined(p.S(";")),
		},
		ruleRelationAttributeDefault: p.Seq{
			p.Lined(kw("BA_DEF_DEF_REL_")),
			p.Lined(ruleAttributeName),
			p.Lined(ruleAttributeScalar),
			p.Lined(p.S(";")),
		},
	}

	defs := make(p.Oneof, 0, len(definitionScopes))
	for _, scope := range definitionScopes {
		seq := p.Seq{p.Lined(kw(scope.keyword))}
		if scope.tag != "" {
			seq = append(seq, p.Lined(kw(scope.tag)))
		}
		g[scope.rule] = append(seq,
			p.Lined(ruleAttributeName),
			ruleAttributeValueType,
			p.Lined(p.S(";")),
		)
		defs = append(defs, scope.rule)
	}
	g[ruleAttributeDefinition] = defs

	values := make(p.Oneof, 0, len(objectRefs))
	for i, rule := range []p.Rule{
		ruleNetworkAttributeValue,
		ruleNodeAttributeValue,
		ruleMessageAttributeValue,
		ruleSignalAttributeValue,
		ruleEnvVarAttributeValue,
	} {
		g[rule] = p.Seq{
			p.Lined(kw("BA_")),
			p.Lined(ruleAttributeName),
			objectRefs[i],
			p.Lined(ruleAttributeScalar),
			p.Lined(p.S(";")),
		}
		values = append(values, rule)
	}
	g[ruleAttributeValue] = values

	return g
}

// buildObjectRef builds the reference matched by objectRefs[i].
func buildObjectRef(i int, n p.Node) ObjectRef {
	switch i {
	case 1:
		return NodeRef{Node: text(n, "node_name")}
	case 2:
		return MessageRef{MessageID: u32(n, "message_id")}
	case 3:
		return SignalRef{MessageID: u32(n, "message_id"), Signal: text(n, "signal_name")}
	case 4:
		return EnvVarRef{EnvironmentVariable: text(n, "env_var_name")}
	}
	return NetworkRef{}
}

func buildAttributeName(n p.Node) string {
	return string(unquote(text(n, string(ruleAttributeName))))
}

func buildScalar(n p.Node) Scalar {
	i, v := chosen(get(n, string(ruleAttributeScalar)))
	if i == 1 {
		return StringValue(unquote(p.Text(v)))
	}
	return DoubleValue(parseNumber(p.Text(v)))
}

func buildAttributeValueType(n p.Node) AttributeValueType {
	i, v := chosen(get(n, string(ruleAttributeValueType)))
	switch i {
	case 0:
		return IntType{Min: i32(v, "min"), Max: i32(v, "max")}
	case 1:
		return HexType{Min: i32(v, "min"), Max: i32(v, "max")}
	case 2:
		return FloatType{Min: number(v, "min"), Max: number(v, "max")}
	case 3:
		return StringType{}
	}
	var labels []CharString
	for _, label := range all(v, "label") {
		labels = append(labels, unquote(p.Text(label)))
	}
	return EnumType{Labels: labels}
}

func buildAttributeDefinition(n p.Node) AttributeDefinition {
	i, v := chosen(n)
	return AttributeDefinition{
		Scope: AttributeScope(i),
		Name:  buildAttributeName(v),
		Type:  buildAttributeValueType(v),
	}
}

func buildAttributeDefault(n p.Node) AttributeDefault {
	i, v := chosen(n)
	return AttributeDefault{
		Relation: i == 1,
		Name:     buildAttributeName(v),
		Value:    buildScalar(v),
	}
}

func buildAttributeValue(n p.Node) AttributeValue {
	i, v := chosen(n)
	return AttributeValue{
		Name:   buildAttributeName(v),
		Object: buildObjectRef(i, v),
		Value:  buildScalar(v),
	}
}

// ParseAttributeDefinition parses a BA_DEF_ or BA_DEF_REL_ line.
func ParseAttributeDefinition(input string, opts ...Option) (AttributeDefinition, error) {
	n, err := parseConstruct(ruleAttributeDefinition, BadNetworkAttribute, input, opts)
	if err != nil {
		return AttributeDefinition{}, err
	}
	return buildAttributeDefinition(n), nil
}

// ParseAttributeDefault parses a BA_DEF_DEF_ or BA_DEF_DEF_REL_ line.
func ParseAttributeDefault(input string, opts ...Option) (AttributeDefault, error) {
	n, err := parseConstruct(ruleAttributeDefault, BadAttributeDefinitionDefault, input, opts)
	if err != nil {
		return AttributeDefault{}, err
	}
	return buildAttributeDefault(n), nil
}

// ParseAttributeValue parses a BA_ line.
func ParseAttributeValue(input string, opts ...Option) (AttributeValue, error) {
	n, err := parseConstruct(ruleAttributeValue, BadNetworkAttributeValue, input, opts)
	if err != nil {
		return AttributeValue{}, err
	}
	return buildAttributeValue(n), nil
}
