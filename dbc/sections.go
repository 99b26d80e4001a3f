package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

func sectionRules() p.Grammar {
	return p.Grammar{
		ruleVersion: p.Seq{p.Lined(kw("VERSION")), field("text", ruleCharString)},

		// One symbol per line.
		ruleNewSymbols: p.Seq{
			p.Lined(kw("NS_")),
			p.Lined(p.S(":")),
			p.Any(p.Seq{p.Spaced(named("symbol", ruleObjectName)), p.RE(`\r?\n|\z`)}),
		},

		ruleBitTiming: p.Seq{
			p.Lined(kw("BS_")),
			punct(":"),
			p.Opt(p.Spaced(ruleBitTimingValue)),
			p.Opt(punct(";")),
			lineEnd,
		},
		ruleBitTimingValue: p.Seq{
			field("baudrate", ruleUnsigned64),
			punct(":"),
			field("btr1", ruleUnsigned64),
			punct(":"),
			field("btr2", ruleUnsigned64),
		},

		ruleNodes: p.Seq{
			p.Lined(kw("BU_")),
			punct(":"),
			p.Any(field("node", ruleIdentifier)),
			lineEnd,
		},

		ruleValueTable: p.Seq{
			p.Lined(kw("VAL_TABLE_")),
			field("name", ruleObjectName),
			ruleValueDescriptions,
			punct(";"),
			lineEnd,
		},
		ruleValueDescriptions: p.Any(named("value_description", p.Seq{
			field("code", ruleInteger),
			field("label", ruleCharString),
		})),
	}
}

func buildVersion(n p.Node) CharString {
	return charString(n, "text")
}

func buildNewSymbols(n p.Node) []string {
	return texts(all(n, "symbol"))
}

func buildBitTiming(n p.Node) *BitTiming {
	bt := &BitTiming{}
	if v, ok := find(n, string(ruleBitTimingValue)); ok {
		bt.Value = &BitTimingValue{
			Baudrate: u64(v, "baudrate"),
			BTR1:     u64(v, "btr1"),
			BTR2:     u64(v, "btr2"),
		}
	}
	return bt
}

func buildNodes(n p.Node) []string {
	return texts(all(n, "node"))
}

func buildValueTable(n p.Node) ValueTable {
	return ValueTable{
		Name:   text(n, "name"),
		Values: buildValueDescriptions(get(n, string(ruleValueDescriptions))),
	}
}

func buildValueDescriptions(n p.Node) []ValueDescription {
	var result []ValueDescription
	for _, d := range all(n, "value_description") {
		result = append(result, ValueDescription{
			Code:  i64(d, "code"),
			Label: charString(d, "label"),
		})
	}
	return result
}

// ParseVersion parses a VERSION line.
func ParseVersion(input string, opts ...Option) (CharString, error) {
	n, err := parseConstruct(ruleVersion, BadVersion, input, opts)
	if err != nil {
		return "", err
	}
	return buildVersion(n), nil
}

// ParseNewSymbols parses an NS_ section.
func ParseNewSymbols(input string, opts ...Option) ([]string, error) {
	n, err := parseConstruct(ruleNewSymbols, BadNames, input, opts)
	if err != nil {
		return nil, err
	}
	return buildNewSymbols(n), nil
}

// ParseBitTiming parses a BS_ line.
func ParseBitTiming(input string, opts ...Option) (*BitTiming, error) {
	n, err := parseConstruct(ruleBitTiming, BadBitTiming, input, opts)
	if err != nil {
		return nil, err
	}
	return buildBitTiming(n), nil
}

// ParseNodes parses a BU_ line.
func ParseNodes(input string, opts ...Option) ([]string, error) {
	n, err := parseConstruct(ruleNodes, BadCanNodes, input, opts)
	if err != nil {
		return nil, err
	}
	return buildNodes(n), nil
}

// ParseValueTable parses a VAL_TABLE_ line.
func ParseValueTable(input string, opts ...Option) (ValueTable, error) {
	n, err := parseConstruct(ruleValueTable, BadValueTable, input, opts)
	if err != nil {
		return ValueTable{}, err
	}
	return buildValueTable(n), nil
}
