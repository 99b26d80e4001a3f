package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

func messageRules() p.Grammar {
	return p.Grammar{
		ruleMessage: p.Seq{
			ruleMessageHeader,
			p.Any(ruleSignal),
			lineEnd,
		},
		ruleMessageHeader: p.Seq{
			p.Lined(kw("BO_")),
			field("id", ruleUnsigned),
			field("name", ruleIdentifier),
			punct(":"),
			field("size", ruleUnsigned),
			// Vector__XXX is an ordinary identifier.
			field("transmitter", ruleIdentifier),
		},

		ruleSignal: p.Seq{
			p.Lined(kw("SG_")),
			field("name", ruleIdentifier),
			p.Opt(p.Spaced(ruleMultiplexer)),
			punct(":"),
			field("start_bit", ruleUnsigned),
			punct("|"),
			field("size", ruleUnsigned),
			punct("@"),
			field("byte_order", p.RE(`[01]`)),
			field("value_type", p.RE(`[-+]`)),
			punct("("),
			field("factor", ruleNumber),
			punct(","),
			field("offset", ruleNumber),
			punct(")"),
			p.Opt(named("range", p.Seq{
				punct("["),
				field("min", ruleNumber),
				punct("|"),
				field("max", ruleNumber),
				punct("]"),
			})),
			p.Opt(field("unit", ruleCharString)),
			p.Opt(named("receivers", p.Delim{Term: field("receiver", ruleIdentifier), Sep: p.S(",")})),
			lineEnd,
		},
		ruleMultiplexer: p.Oneof{
			p.Seq{p.S("m"), named("switch_value", ruleUnsigned), p.Opt(named("switch", p.S("M")))},
			named("switch", p.S("M")),
		},
	}
}

func buildMessage(n p.Node) Message {
	m := Message{Header: buildMessageHeader(get(n, string(ruleMessageHeader)))}
	for _, s := range all(n, string(ruleSignal)) {
		m.Signals = append(m.Signals, buildSignal(s))
	}
	return m
}

func buildMessageHeader(n p.Node) MessageHeader {
	return MessageHeader{
		ID:          u32(n, "id"),
		Name:        text(n, "name"),
		Size:        u32(n, "size"),
		Transmitter: text(n, "transmitter"),
	}
}

func buildSignal(n p.Node) Signal {
	s := Signal{
		Name:     text(n, "name"),
		StartBit: u32(n, "start_bit"),
		Size:     u32(n, "size"),
		Factor:   number(n, "factor"),
		Offset:   number(n, "offset"),
	}
	if text(n, "byte_order") == "1" {
		s.ByteOrder = LittleEndian
	}
	if text(n, "value_type") == "-" {
		s.ValueType = Signed
	}
	if mux, ok := find(n, string(ruleMultiplexer)); ok {
		s.Multiplexer = &Multiplexer{IsSwitch: mux.Has("switch")}
		if mux.Has("switch_value") {
			v := u32(mux, "switch_value")
			s.Multiplexer.SwitchValue = &v
		}
	}
	if r, ok := find(n, "range"); ok {
		s.Range = &Range{Min: number(r, "min"), Max: number(r, "max")}
	}
	if _, ok := find(n, "unit"); ok {
		unit := charString(n, "unit")
		s.Unit = &unit
	}
	if r, ok := find(n, "receivers"); ok {
		s.Receivers = texts(all(r, "receiver"))
	}
	return s
}

// ParseMessage parses a BO_ line and the SG_ lines that follow it.
func ParseMessage(input string, opts ...Option) (Message, error) {
	n, err := parseConstruct(ruleMessage, BadMessageHeader, input, opts, ruleSignal)
	if err != nil {
		return Message{}, err
	}
	return buildMessage(n), nil
}

// ParseMessageHeader parses a BO_ line on its own.
func ParseMessageHeader(input string, opts ...Option) (MessageHeader, error) {
	n, err := parseConstruct(ruleMessageHeader, BadMessageHeader, input, opts)
	if err != nil {
		return MessageHeader{}, err
	}
	return buildMessageHeader(n), nil
}

// ParseSignal parses an SG_ line.
func ParseSignal(input string, opts ...Option) (Signal, error) {
	n, err := parseConstruct(ruleSignal, BadSignal, input, opts)
	if err != nil {
		return Signal{}, err
	}
	return buildSignal(n), nil
}
