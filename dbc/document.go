package dbc

import (
	"errors"

	"github.com/sirupsen/logrus"

	p "github.com/arr-ai/dbc/parser"
)

func documentRules() p.Grammar {
	return p.Grammar{
		ruleDocument: p.Seq{
			ruleVersion,
			ruleNewSymbols,
			p.Opt(ruleBitTiming),
			ruleNodes,
			p.Any(ruleValueTable),
			p.Any(ruleMessage),
			p.Any(ruleEnvVar),
			p.Any(ruleEnvVarData),
			p.Any(ruleComment),
			p.Any(ruleAttributeDefinition),
			p.Any(ruleAttributeDefault),
			p.Any(ruleAttributeValue),
			p.Any(ruleSignalValueDescs),
			p.Any(ruleEnvVarValueDescs),
			p.RE(`\s*`),
		},
	}
}

// documentSections are the rules a document is made of, used to explain why a
// document stopped short of the end of its input.
var documentSections = []p.Rule{
	ruleVersion,
	ruleNewSymbols,
	ruleBitTiming,
	ruleNodes,
	ruleValueTable,
	ruleMessage,
	ruleSignal,
	ruleEnvVar,
	ruleEnvVarData,
	ruleComment,
	ruleAttributeDefinition,
	ruleAttributeDefault,
	ruleAttributeValue,
	ruleValueDescAttachment,
}

// Parse parses a whole document. The entire input must be consumed; a
// failure anywhere fails the whole parse with an *Error.
func Parse(input string, opts ...Option) (*Document, error) {
	o := newOptions(opts)
	scope := o.scope()
	start := o.scanner(input)
	tree, err := parsers.ParseWithScope(scope, ruleDocument, start)
	if err != nil {
		var uerr p.UnconsumedInputError
		if errors.As(err, &uerr) {
			residue := skipSpace(*uerr.Residue())
			if e := diagnose(scope, residue, documentSections); e != nil {
				return nil, e
			}
			return nil, newError(UnconsumedInput, residue, err)
		}
		return nil, wrapParseError(err, Unclassified, *start)
	}
	d := buildDocument(tree.(p.Node))
	if o.logger != nil {
		o.logger.WithFields(logrus.Fields{
			"file":     o.filename,
			"messages": len(d.Messages),
			"nodes":    len(d.Nodes),
		}).Debug("parsed document")
	}
	return d, nil
}

func buildDocument(n p.Node) *Document {
	d := &Document{
		Version:    buildVersion(get(n, string(ruleVersion))),
		NewSymbols: buildNewSymbols(get(n, string(ruleNewSymbols))),
		Nodes:      buildNodes(get(n, string(ruleNodes))),
	}
	if bt, ok := find(n, string(ruleBitTiming)); ok {
		d.BitTiming = buildBitTiming(bt)
	}
	for _, vt := range all(n, string(ruleValueTable)) {
		d.ValueTables = append(d.ValueTables, buildValueTable(vt))
	}
	for _, m := range all(n, string(ruleMessage)) {
		d.Messages = append(d.Messages, buildMessage(m))
	}
	for _, ev := range all(n, string(ruleEnvVar)) {
		d.EnvironmentVariables = append(d.EnvironmentVariables, buildEnvVar(ev))
	}
	for _, ev := range all(n, string(ruleEnvVarData)) {
		d.EnvironmentVariableData = append(d.EnvironmentVariableData, buildEnvVarData(ev))
	}
	for _, c := range all(n, string(ruleComment)) {
		d.Comments = append(d.Comments, buildComment(c))
	}
	for _, def := range all(n, string(ruleAttributeDefinition)) {
		d.AttributeDefinitions = append(d.AttributeDefinitions, buildAttributeDefinition(def))
	}
	for _, def := range all(n, string(ruleAttributeDefault)) {
		d.AttributeDefaults = append(d.AttributeDefaults, buildAttributeDefault(def))
	}
	for _, v := range all(n, string(ruleAttributeValue)) {
		d.AttributeValues = append(d.AttributeValues, buildAttributeValue(v))
	}
	for _, v := range all(n, string(ruleSignalValueDescs)) {
		d.SignalValueDescriptions = append(d.SignalValueDescriptions, *buildSignalValueDescriptions(v))
	}
	for _, v := range all(n, string(ruleEnvVarValueDescs)) {
		d.EnvironmentVariableValueDescriptions = append(
			d.EnvironmentVariableValueDescriptions, *buildEnvVarValueDescriptions(v))
	}
	return d
}
