package parser

import (
	"fmt"
	"regexp"
)

type cache struct {
	grammar Grammar
	parsers map[Rule]Parser
}

func (c cache) makeParsers(terms []Term) []Parser {
	parsers := make([]Parser, 0, len(terms))
	for _, t := range terms {
		parsers = append(parsers, t.Parser("", c))
	}
	return parsers
}

// Parsers is a compiled Grammar. It holds no per-parse state and may be
// shared between goroutines.
type Parsers struct {
	parsers map[Rule]Parser
	grammar Grammar
}

// Compile prepares a grammar for parsing. Rules may refer to each other in
// any order; references are resolved lazily at parse time.
func (g Grammar) Compile() Parsers {
	c := cache{
		grammar: g,
		parsers: make(map[Rule]Parser, len(g)),
	}
	for rule, term := range g {
		c.parsers[rule] = term.Parser(rule, c)
	}
	return Parsers{
		parsers: c.parsers,
		grammar: g,
	}
}

func (p Parsers) Grammar() Grammar {
	return p.grammar
}

// Parse parses input with rule and requires the whole input to be
// consumed. Leftover input yields an UnconsumedInputError.
func (p Parsers) Parse(rule Rule, input *Scanner) (TreeElement, error) {
	return p.ParseWithScope(NewScope(), rule, input)
}

func (p Parsers) ParseWithScope(scope Scope, rule Rule, input *Scanner) (TreeElement, error) {
	in := *input
	result, err := p.ParsePrefix(scope, rule, &in)
	if err != nil {
		return nil, err
	}
	if in.Len() > 0 {
		return nil, UnconsumedInput(in, result)
	}
	return result, nil
}

// ParsePrefix parses as much of input as rule matches and advances input
// past it.
func (p Parsers) ParsePrefix(scope Scope, rule Rule, input *Scanner) (TreeElement, error) {
	if _, has := p.parsers[rule]; !has {
		return nil, fmt.Errorf("unknown rule: %q", rule)
	}
	var result TreeElement
	start := *input
	if err := rule.Parser("", cache{grammar: p.grammar, parsers: p.parsers}).Parse(scope, input, &result); err != nil {
		*input = start
		return nil, err
	}
	return result, nil
}

func wrapError(rule Rule, at Scanner, err error) error {
	if rule == "" {
		return err
	}
	return newParseError(rule, at, "", err)
}

//-----------------------------------------------------------------------------

type ruleParser struct {
	rule    Rule
	t       Rule
	parsers map[Rule]Parser
}

func (p ruleParser) Parse(scope Scope, input *Scanner, output *TreeElement) (out error) {
	defer scope.enterf("%s", p.t).exitf("%s %v", p.t, &out)
	target, has := p.parsers[p.t]
	if !has {
		panic(fmt.Errorf("rule %q not defined", p.t))
	}
	start := *input
	var v TreeElement
	if err := target.Parse(scope, input, &v); err != nil {
		return wrapError(p.rule, start, err)
	}
	*output = Node{Tag: string(p.t), Children: []TreeElement{v}}
	return nil
}

func (t Rule) Parser(rule Rule, c cache) Parser {
	return ruleParser{
		rule:    rule,
		t:       t,
		parsers: c.parsers,
	}
}

//-----------------------------------------------------------------------------

type sParser struct {
	rule Rule
	t    S
}

func (p *sParser) Parse(_ Scope, input *Scanner, output *TreeElement) error {
	var eaten Scanner
	if !input.EatString(string(p.t), &eaten) {
		return newParseError(p.rule, *input, fmt.Sprintf("expected %v", p.t))
	}
	*output = eaten
	return nil
}

func (t S) Parser(rule Rule, c cache) Parser {
	return &sParser{rule: rule, t: t}
}

type reParser struct {
	rule Rule
	t    RE
	re   *regexp.Regexp
}

func (p *reParser) Parse(_ Scope, input *Scanner, output *TreeElement) error {
	var eaten Scanner
	if _, ok := input.EatRegexp(p.re, &eaten, nil); !ok {
		return newParseError(p.rule, *input, fmt.Sprintf("expected %v", p.t))
	}
	*output = eaten
	return nil
}

func (t RE) Parser(rule Rule, c cache) Parser {
	return &reParser{
		rule: rule,
		t:    t,
		re:   anchored(string(t)),
	}
}

//-----------------------------------------------------------------------------

type seqParser struct {
	rule    Rule
	t       Seq
	parsers []Parser
}

func (p *seqParser) Parse(scope Scope, input *Scanner, output *TreeElement) (out error) {
	defer scope.enterf("%s: %v", p.rule, p.t).exitf("%v %v", &out, output)
	result := make([]TreeElement, 0, len(p.parsers))
	start := *input
	for _, item := range p.parsers {
		var v TreeElement
		if err := item.Parse(scope, input, &v); err != nil {
			return newParseError(p.rule, start, "could not complete sequence", err)
		}
		result = append(result, v)
	}
	*output = Node{Tag: seqTag, Children: result}
	return nil
}

func (t Seq) Parser(rule Rule, c cache) Parser {
	return &seqParser{
		rule:    rule,
		t:       t,
		parsers: c.makeParsers(t),
	}
}

//-----------------------------------------------------------------------------

type oneofParser struct {
	rule    Rule
	t       Oneof
	parsers []Parser
}

func (p *oneofParser) Parse(scope Scope, input *Scanner, output *TreeElement) (out error) {
	defer scope.enterf("%s: %v", p.rule, p.t).exitf("%v %v", &out, output)
	origin := *input
	furthest := *input

	errs := make([]error, 0, len(p.parsers))
	for i, par := range p.parsers {
		var v TreeElement
		start := origin
		if err := par.Parse(scope, &start, &v); err != nil {
			errs = append(errs, err)
			if furthest.Offset() < start.Offset() {
				furthest = start
			}
			continue
		}
		*input = start
		*output = Node{Tag: oneofTag, Extra: Choice(i), Children: []TreeElement{v}}
		return nil
	}
	*input = furthest
	return newParseError(p.rule, origin, "none of the available options could be satisfied", errs...)
}

func (t Oneof) Parser(rule Rule, c cache) Parser {
	return &oneofParser{
		rule:    rule,
		t:       t,
		parsers: c.makeParsers(t),
	}
}

//-----------------------------------------------------------------------------

type quantParser struct {
	rule Rule
	t    Quant
	term Parser
}

func (p *quantParser) Parse(scope Scope, input *Scanner, output *TreeElement) (out error) {
	defer scope.enterf("%s: %v", p.rule, p.t).exitf("%v %v", &out, output)
	result := make([]TreeElement, 0, p.t.Min)
	origin := *input
	start := *input
	var err error
	for p.t.Max == 0 || len(result) < p.t.Max {
		var v TreeElement
		if err = p.term.Parse(scope, &start, &v); err != nil {
			break
		}
		if start.Offset() == input.Offset() && p.t.Max == 0 {
			// An empty match would repeat forever.
			break
		}
		result = append(result, v)
		*input = start
	}

	if len(result) >= p.t.Min {
		*output = Node{Tag: quantTag, Children: result}
		return nil
	}

	return newParseError(p.rule, origin,
		fmt.Sprintf("expected %v, have %d value(s)", p.t, len(result)), err)
}

func (t Quant) Parser(rule Rule, c cache) Parser {
	return &quantParser{
		rule: rule,
		t:    t,
		term: t.Term.Parser("", c),
	}
}

//-----------------------------------------------------------------------------

type delimParser struct {
	rule Rule
	t    Delim
	term Parser
	sep  Parser
}

func (p *delimParser) Parse(scope Scope, input *Scanner, output *TreeElement) (out error) {
	defer scope.enterf("%s: %v", p.rule, p.t).exitf("%v %v", &out, output)
	origin := *input
	var first TreeElement
	if err := p.term.Parse(scope, input, &first); err != nil {
		return newParseError(p.rule, origin, "delim didnt complete", err)
	}
	result := []TreeElement{first}
	for {
		next := *input
		var sep, term TreeElement
		if p.sep.Parse(scope, &next, &sep) != nil {
			break
		}
		if p.term.Parse(scope, &next, &term) != nil {
			break
		}
		result = append(result, sep, term)
		*input = next
	}
	*output = Node{Tag: delimTag, Children: result}
	return nil
}

func (t Delim) Parser(rule Rule, c cache) Parser {
	return &delimParser{
		rule: rule,
		t:    t,
		term: t.Term.Parser("", c),
		sep:  t.Sep.Parser("", c),
	}
}

//-----------------------------------------------------------------------------

type namedParser struct {
	rule Rule
	t    Named
	term Parser
}

func (p *namedParser) Parse(scope Scope, input *Scanner, output *TreeElement) error {
	start := *input
	var v TreeElement
	if err := p.term.Parse(scope, input, &v); err != nil {
		return wrapError(Rule(p.t.Name), start, err)
	}
	*output = Node{Tag: p.t.Name, Children: []TreeElement{v}}
	return nil
}

func (t Named) Parser(rule Rule, c cache) Parser {
	return &namedParser{
		rule: rule,
		t:    t,
		term: t.Term.Parser("", c),
	}
}

//-----------------------------------------------------------------------------

var (
	spacesRE     = regexp.MustCompile(`\A[ \t]*`)
	whitespaceRE = regexp.MustCompile(`\A\s*`)
)

type padParser struct {
	rule Rule
	t    Pad
	ws   *regexp.Regexp
	term Parser
}

func (p *padParser) Parse(scope Scope, input *Scanner, output *TreeElement) error {
	start := *input
	var lead, trail Scanner
	input.EatRegexp(p.ws, &lead, nil)
	var v TreeElement
	if err := p.term.Parse(scope, input, &v); err != nil {
		return wrapError(p.rule, start, err)
	}
	input.EatRegexp(p.ws, &trail, nil)
	*output = Node{Tag: padTag, Children: []TreeElement{lead, v, trail}}
	return nil
}

func (t Pad) Parser(rule Rule, c cache) Parser {
	ws := spacesRE
	if t.Multiline {
		ws = whitespaceRE
	}
	return &padParser{
		rule: rule,
		t:    t,
		ws:   ws,
		term: t.Term.Parser("", c),
	}
}

//-----------------------------------------------------------------------------

type checkParser struct {
	rule Rule
	t    Check
	term Parser
}

func (p *checkParser) Parse(scope Scope, input *Scanner, output *TreeElement) error {
	start := *input
	var v TreeElement
	if err := p.term.Parse(scope, input, &v); err != nil {
		return wrapError(p.rule, start, err)
	}
	if err := p.t.Fn(scope, Text(v)); err != nil {
		*input = start
		return newParseError(p.rule, start, "rejected", err)
	}
	*output = Node{Tag: checkTag, Children: []TreeElement{v}}
	return nil
}

func (t Check) Parser(rule Rule, c cache) Parser {
	return &checkParser{
		rule: rule,
		t:    t,
		term: t.Term.Parser("", c),
	}
}
