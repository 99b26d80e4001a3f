package parser

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	seqTag   = "_"
	oneofTag = "|"
	delimTag = ":"
	quantTag = "?"
	padTag   = "~"
	checkTag = "!"
)

// Term is one building block of a Grammar. Terms are inert descriptions;
// Compile turns them into Parsers.
type Term interface {
	fmt.Stringer
	Parser(rule Rule, c cache) Parser
}

type Parser interface {
	Parse(scope Scope, input *Scanner, output *TreeElement) error
}

type Grammar map[Rule]Term

type (
	// Rule refers to another rule of the grammar by name.
	Rule string

	// S matches a literal string.
	S string

	// RE matches a regular expression. The expression is anchored to the
	// current position.
	RE string

	// Seq matches each of its terms in turn.
	Seq []Term

	// Oneof tries each term in order and commits to the first that matches.
	Oneof []Term

	// Quant matches Term between Min and Max times (Max == 0 means no
	// upper bound).
	Quant struct {
		Term     Term
		Min, Max int
	}

	// Delim matches one or more Terms separated by Sep.
	Delim struct {
		Term Term
		Sep  Term
	}

	// Named tags the output of Term so builders can find it.
	Named struct {
		Name string
		Term Term
	}

	// Pad allows optional whitespace around Term. Spaces and tabs are
	// always allowed; line breaks only when Multiline is set.
	Pad struct {
		Term      Term
		Multiline bool
	}

	// Check matches Term and then rejects the match if Fn returns an error.
	// Fn sees the matched text with padding removed.
	Check struct {
		Term Term
		Fn   func(scope Scope, text string) error
	}
)

func Opt(term Term) Quant  { return Quant{Term: term, Max: 1} }
func Any(term Term) Quant  { return Quant{Term: term} }
func Some(term Term) Quant { return Quant{Term: term, Min: 1} }

// Spaced allows spaces and tabs around term.
func Spaced(term Term) Pad { return Pad{Term: term} }

// Lined allows any whitespace, including line breaks, around term.
func Lined(term Term) Pad { return Pad{Term: term, Multiline: true} }

func (t Rule) String() string { return string(t) }
func (t S) String() string    { return fmt.Sprintf("%q", string(t)) }
func (t RE) String() string   { return fmt.Sprintf("/{%s}", string(t)) }

func (t Seq) String() string   { return join(t, " ") }
func (t Oneof) String() string { return join(t, " | ") }

func (t Quant) String() string {
	switch {
	case t.Min == 0 && t.Max == 1:
		return fmt.Sprintf("%v?", t.Term)
	case t.Min == 0 && t.Max == 0:
		return fmt.Sprintf("%v*", t.Term)
	case t.Min == 1 && t.Max == 0:
		return fmt.Sprintf("%v+", t.Term)
	}
	return fmt.Sprintf("%v{%d,%d}", t.Term, t.Min, t.Max)
}

func (t Delim) String() string { return fmt.Sprintf("%v:%v", t.Term, t.Sep) }
func (t Named) String() string { return fmt.Sprintf("%s=%v", t.Name, t.Term) }

func (t Pad) String() string {
	if t.Multiline {
		return fmt.Sprintf("~~%v~~", t.Term)
	}
	return fmt.Sprintf("~%v~", t.Term)
}

func (t Check) String() string { return fmt.Sprintf("%v!", t.Term) }

func join(terms []Term, sep string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, t.String())
	}
	return "(" + strings.Join(parts, sep) + ")"
}

func anchored(re string) *regexp.Regexp {
	return regexp.MustCompile(`\A(?:` + re + `)`)
}
