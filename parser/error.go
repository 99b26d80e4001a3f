package parser

import (
	"fmt"

	"github.com/arr-ai/dbc/gotree"
)

// ParseError reports a failed term. Children hold the failures of the
// sub-terms that led to it, so the whole error forms a tree.
type ParseError struct {
	rule     Rule
	msg      string
	at       Scanner
	children []error
}

func newParseError(rule Rule, at Scanner, msg string, children ...error) ParseError {
	return ParseError{rule: rule, msg: msg, at: at, children: children}
}

func (p ParseError) Rule() Rule        { return p.rule }
func (p ParseError) At() Scanner       { return p.at }
func (p ParseError) Children() []error { return p.children }
func (p ParseError) Unwrap() []error   { return p.children }

// Furthest returns the position of the deepest failure in the tree, which
// is usually the most useful place to point a user at.
func (p ParseError) Furthest() Scanner {
	best := p.at
	for _, child := range p.children {
		if pe, ok := child.(ParseError); ok {
			if f := pe.Furthest(); f.Offset() > best.Offset() {
				best = f
			}
		}
	}
	return best
}

func (p ParseError) Error() string {
	tree := gotree.New("parse failed")
	p.walkErrors(tree)

	return "\n" + tree.Print()
}

func (p ParseError) walkErrors(parent gotree.Tree) {
	line, col := p.at.Position()
	label := fmt.Sprintf("%d:%d", line, col)
	if p.rule != "" {
		label = fmt.Sprintf("rule(%s) @ %s", p.rule, label)
	}
	if p.msg != "" {
		label += " - " + p.msg
	}
	x := gotree.New(label)
	for _, err := range p.children {
		if pe, ok := err.(ParseError); ok {
			pe.walkErrors(x)
		} else {
			x.Add(err.Error())
		}
	}
	parent.AddTree(x)
}

type UnconsumedInputError struct {
	residue Scanner
	tree    TreeElement
}

// UnconsumedInput is returned by a successful parse that didn't fully
// consume the input.
func UnconsumedInput(residue Scanner, result TreeElement) UnconsumedInputError {
	return UnconsumedInputError{residue: residue, tree: result}
}

func (e UnconsumedInputError) Error() string {
	return fmt.Sprintf("unconsumed input\n %v", e.residue.Context(DefaultLimit))
}

func (e UnconsumedInputError) Result() TreeElement { return e.tree }
func (e UnconsumedInputError) Residue() *Scanner   { return &e.residue }
