package dbc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	p "github.com/arr-ai/dbc/parser"
)

// Option configures a parse.
type Option func(*options)

type options struct {
	logger   logrus.FieldLogger
	filename string
}

// WithLogger traces the parse through logger at trace level.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFilename names the input in error positions.
func WithFilename(filename string) Option {
	return func(o *options) { o.filename = filename }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) scope() p.Scope {
	scope := p.NewScope()
	if o.logger != nil {
		scope = scope.WithLogger(o.logger)
	}
	return scope
}

func (o options) scanner(input string) *p.Scanner {
	return p.NewScannerWithFilename(input, o.filename)
}

// parseConstruct parses input as a single construct. Whitespace around the
// construct is allowed; anything else left over fails with kind, unless one
// of the inner rules explains the failure better.
func parseConstruct(rule p.Rule, kind ErrorKind, input string, opts []Option, inner ...p.Rule) (p.Node, error) {
	o := newOptions(opts)
	scope := o.scope()
	start := o.scanner(input)
	in := *start
	tree, err := parsers.ParsePrefix(scope, rule, &in)
	if err != nil {
		return p.Node{}, wrapParseError(err, kind, *start)
	}
	if strings.TrimSpace(in.String()) != "" {
		residue := skipSpace(in)
		if e := diagnose(scope, residue, inner); e != nil {
			return p.Node{}, e
		}
		return p.Node{}, newError(kind, residue, p.UnconsumedInput(residue, tree))
	}
	return tree.(p.Node), nil
}

func skipSpace(s p.Scanner) p.Scanner {
	str := s.String()
	return *s.Skip(len(str) - len(strings.TrimLeft(str, " \t\r\n")))
}

// diagnose reparses residue with each of rules and returns the error of the
// attempt that got furthest. It returns nil if none of them got past the
// start of residue, or if one of them matches.
func diagnose(scope p.Scope, residue p.Scanner, rules []p.Rule) *Error {
	var best *Error
	for _, rule := range rules {
		in := residue
		_, err := parsers.ParsePrefix(scope, rule, &in)
		if err == nil {
			return nil
		}
		e := wrapParseError(err, Unclassified, residue)
		if e.Offset > residue.Offset() && (best == nil || e.Offset > best.Offset) {
			best = e
		}
	}
	if best == nil || best.Kind == Unclassified {
		return nil
	}
	return best
}

func get(n p.Node, tag string) p.Node {
	e, ok := n.One(tag)
	if !ok {
		panic(fmt.Errorf("%s: no %s", n.Tag, tag))
	}
	return e.(p.Node)
}

func find(n p.Node, tag string) (p.Node, bool) {
	e, ok := n.One(tag)
	if !ok {
		return p.Node{}, false
	}
	return e.(p.Node), true
}

func all(n p.Node, tag string) []p.Node {
	elems := n.All(tag)
	nodes := make([]p.Node, 0, len(elems))
	for _, e := range elems {
		nodes = append(nodes, e.(p.Node))
	}
	return nodes
}

func chosen(n p.Node) (int, p.Node) {
	i, e, ok := p.Chosen(n)
	if !ok {
		panic(fmt.Errorf("%s: no alternative", n.Tag))
	}
	return i, e.(p.Node)
}

func text(n p.Node, tag string) string {
	return p.Text(get(n, tag))
}

func charString(n p.Node, tag string) CharString {
	return unquote(text(n, tag))
}

func number(n p.Node, tag string) float64 {
	return parseNumber(text(n, tag))
}

// The lexical checks have already range-checked the integers below.

func u32(n p.Node, tag string) uint32 {
	v, _ := strconv.ParseUint(text(n, tag), 10, 32)
	return uint32(v)
}

func u64(n p.Node, tag string) uint64 {
	v, _ := strconv.ParseUint(text(n, tag), 10, 64)
	return v
}

func i32(n p.Node, tag string) int32 {
	v, _ := strconv.ParseInt(text(n, tag), 10, 32)
	return int32(v)
}

func i64(n p.Node, tag string) int64 {
	v, _ := strconv.ParseInt(text(n, tag), 10, 64)
	return v
}

func texts(nodes []p.Node) []string {
	var result []string
	for _, n := range nodes {
		result = append(result, p.Text(n))
	}
	return result
}
