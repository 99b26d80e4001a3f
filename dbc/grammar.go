package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

const (
	ruleIdentifier = p.Rule("identifier")
	ruleObjectName = p.Rule("object_name")
	ruleCharString = p.Rule("char_string")
	ruleUnsigned   = p.Rule("unsigned")
	ruleUnsigned64 = p.Rule("unsigned64")
	ruleSigned     = p.Rule("signed")
	ruleInteger    = p.Rule("integer")
	ruleFloat      = p.Rule("float")
	ruleNumber     = p.Rule("number")
	ruleHex16      = p.Rule("hex16")
	ruleLineEnds   = p.Rule("line_ends")

	ruleDocument          = p.Rule("document")
	ruleVersion           = p.Rule("version")
	ruleNewSymbols        = p.Rule("new_symbols")
	ruleBitTiming         = p.Rule("bit_timing")
	ruleBitTimingValue    = p.Rule("bit_timing_value")
	ruleNodes             = p.Rule("nodes")
	ruleValueTable        = p.Rule("value_table")
	ruleValueDescriptions = p.Rule("value_descriptions")

	ruleMessage       = p.Rule("message")
	ruleMessageHeader = p.Rule("message_header")
	ruleSignal        = p.Rule("signal")
	ruleMultiplexer   = p.Rule("multiplexer")

	ruleAttributeName      = p.Rule("attribute_name")
	ruleAttributeScalar    = p.Rule("attribute_scalar")
	ruleAttributeValueType = p.Rule("attribute_value_type")
	ruleIntValueType       = p.Rule("int_value_type")
	ruleHexValueType       = p.Rule("hex_value_type")
	ruleFloatValueType     = p.Rule("float_value_type")
	ruleStringValueType    = p.Rule("string_value_type")
	ruleEnumValueType      = p.Rule("enum_value_type")

	ruleAttributeDefinition         = p.Rule("attribute_definition")
	ruleNetworkAttributeDef         = p.Rule("network_attribute_definition")
	ruleNodeAttributeDef            = p.Rule("node_attribute_definition")
	ruleMessageAttributeDef         = p.Rule("message_attribute_definition")
	ruleSignalAttributeDef          = p.Rule("signal_attribute_definition")
	ruleEnvVarAttributeDef          = p.Rule("env_var_attribute_definition")
	ruleNodeEnvVarAttributeDef      = p.Rule("node_env_var_attribute_definition")
	ruleNodeTxMessageAttributeDef   = p.Rule("node_tx_message_attribute_definition")
	ruleNodeMappedRxSignalAttribDef = p.Rule("node_mapped_rx_signal_attribute_definition")

	ruleAttributeDefault         = p.Rule("attribute_default")
	ruleObjectAttributeDefault   = p.Rule("object_attribute_default")
	ruleRelationAttributeDefault = p.Rule("relation_attribute_default")

	ruleAttributeValue        = p.Rule("attribute_value")
	ruleNetworkAttributeValue = p.Rule("network_attribute_value")
	ruleNodeAttributeValue    = p.Rule("node_attribute_value")
	ruleMessageAttributeValue = p.Rule("message_attribute_value")
	ruleSignalAttributeValue  = p.Rule("signal_attribute_value")
	ruleEnvVarAttributeValue  = p.Rule("env_var_attribute_value")

	ruleComment        = p.Rule("comment")
	ruleNetworkComment = p.Rule("network_comment")
	ruleNodeComment    = p.Rule("node_comment")
	ruleMessageComment = p.Rule("message_comment")
	ruleSignalComment  = p.Rule("signal_comment")
	ruleEnvVarComment  = p.Rule("env_var_comment")

	ruleEnvVar                 = p.Rule("environment_variable")
	ruleEnvVarData             = p.Rule("environment_variable_data")
	ruleValueDescAttachment    = p.Rule("value_description_attachment")
	ruleSignalValueDescs       = p.Rule("signal_value_descriptions")
	ruleEnvVarValueDescs       = p.Rule("env_var_value_descriptions")
)

// ruleKinds maps each named construct to the error kind reported when it
// fails.
var ruleKinds = map[p.Rule]ErrorKind{
	ruleCharString: BadEscape,

	ruleVersion:        BadVersion,
	ruleNewSymbols:     BadNames,
	ruleBitTiming:      BadBitTiming,
	ruleBitTimingValue: BadBitTimingValue,
	ruleNodes:          BadCanNodes,
	ruleValueTable:     BadValueTable,

	ruleMessageHeader: BadMessageHeader,
	ruleSignal:        BadSignal,

	ruleIntValueType:    BadAttributeIntegerValueType,
	ruleHexValueType:    BadAttributeHexValueType,
	ruleFloatValueType:  BadAttributeFloatValueType,
	ruleStringValueType: BadAttributeStringValueType,
	ruleEnumValueType:   BadAttributeEnumValueType,

	ruleNetworkAttributeDef:         BadNetworkAttribute,
	ruleNodeAttributeDef:            BadNodeAttribute,
	ruleMessageAttributeDef:         BadMessageAttribute,
	ruleSignalAttributeDef:          BadSignalAttribute,
	ruleEnvVarAttributeDef:          BadEnvironmentVariableAttribute,
	ruleNodeEnvVarAttributeDef:      BadControlUnitEnvironmentVariableAttribute,
	ruleNodeTxMessageAttributeDef:   BadNodeTxMessageAttribute,
	ruleNodeMappedRxSignalAttribDef: BadNodeMappedRxSignalAttribute,

	ruleObjectAttributeDefault:   BadAttributeDefinitionDefault,
	ruleRelationAttributeDefault: BadRelationAttributeDefinitionDefault,

	ruleNetworkAttributeValue: BadNetworkAttributeValue,
	ruleNodeAttributeValue:    BadNodeAttributeValue,
	ruleMessageAttributeValue: BadMessageAttributeValue,
	ruleSignalAttributeValue:  BadSignalAttributeValue,
	ruleEnvVarAttributeValue:  BadEnvironmentVariableAttributeValue,

	ruleComment:        BadComment,
	ruleNetworkComment: BadNetworkComment,
	ruleNodeComment:    BadNodeComment,
	ruleMessageComment: BadMessageComment,
	ruleSignalComment:  BadSignalComment,
	ruleEnvVarComment:  BadEnvironmentVariableComment,

	ruleEnvVar:           BadEnvironmentVariable,
	ruleEnvVarData:       BadEnvironmentVariableData,
	ruleSignalValueDescs: BadSignalValueDescriptions,
	ruleEnvVarValueDescs: BadEnvironmentVariableValueDescriptions,
}

// named tags the output of term (or of a rule, when term is a Rule).
func named(name string, term p.Term) p.Named {
	return p.Named{Name: name, Term: term}
}

// field is a space-padded named field of a line.
func field(name string, term p.Term) p.Term {
	return p.Spaced(named(name, term))
}

func punct(s string) p.Term {
	return p.Spaced(p.S(s))
}

// lineEnd absorbs the rest of the line and any blank lines after it.
var lineEnd = p.Rule(ruleLineEnds)

func grammar() p.Grammar {
	g := lexicalRules()
	for _, rules := range []p.Grammar{
		sectionRules(),
		messageRules(),
		attributeRules(),
		commentRules(),
		envVarRules(),
		valueDescriptionRules(),
		documentRules(),
	} {
		for rule, term := range rules {
			g[rule] = term
		}
	}
	return g
}

var parsers = grammar().Compile()

// Grammar returns the compiled grammar. The returned value is shared and
// must not be modified.
func Grammar() p.Parsers {
	return parsers
}
