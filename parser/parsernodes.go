package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeElement is either a Node or a Scanner leaf.
type TreeElement interface {
	IsTreeElement()
}

// Extra carries per-node bookkeeping, such as which alternative a Oneof
// took.
type Extra interface {
	IsExtra()
}

type Choice int

func (Choice) IsExtra() {}

func (c Choice) String() string { return strconv.Itoa(int(c)) }

func (Scanner) IsTreeElement() {}

func (Node) IsTreeElement() {}

type Node struct {
	Tag      string        `json:"tag"`
	Extra    Extra         `json:"extra"`
	Children []TreeElement `json:"nodes"`
}

func NewNode(tag string, extra Extra, children ...TreeElement) *Node {
	return &Node{Tag: tag, Extra: extra, Children: children}
}

func (n Node) Count() int {
	return len(n.Children)
}

func (n Node) Get(path ...int) TreeElement {
	var v TreeElement = n
	for _, i := range path {
		v = v.(Node).Children[i]
	}
	return v
}

func (n Node) GetNode(path ...int) Node {
	return n.Get(path...).(Node)
}

// anonymous reports whether tag was generated by a structural term rather
// than a Named term or Rule. Lookups descend through anonymous nodes only.
func anonymous(tag string) bool {
	switch tag {
	case seqTag, oneofTag, delimTag, quantTag, padTag, checkTag:
		return true
	}
	return false
}

// One returns the first descendant tagged tag. The search descends through
// structural nodes but does not enter other named nodes.
func (n Node) One(tag string) (TreeElement, bool) {
	for _, child := range n.Children {
		if c, ok := child.(Node); ok {
			if c.Tag == tag {
				return c, true
			}
			if anonymous(c.Tag) {
				if found, ok := c.One(tag); ok {
					return found, true
				}
			}
		}
	}
	return nil, false
}

// All returns every descendant tagged tag, in source order, with the same
// search rules as One.
func (n Node) All(tag string) []TreeElement {
	var result []TreeElement
	for _, child := range n.Children {
		if c, ok := child.(Node); ok {
			switch {
			case c.Tag == tag:
				result = append(result, c)
			case anonymous(c.Tag):
				result = append(result, c.All(tag)...)
			}
		}
	}
	return result
}

func (n Node) Has(tag string) bool {
	_, ok := n.One(tag)
	return ok
}

// Chosen finds the Oneof node at or below e, looking through rule
// references, named nodes and padding, and returns the index of the
// alternative it took together with that alternative's output.
func Chosen(e TreeElement) (int, TreeElement, bool) {
	for {
		n, ok := e.(Node)
		if !ok {
			return 0, nil, false
		}
		if c, ok := n.Extra.(Choice); ok {
			return int(c), n.Children[0], true
		}
		switch {
		case n.Tag == padTag:
			e = n.Children[1]
		case len(n.Children) == 1:
			e = n.Children[0]
		default:
			return 0, nil, false
		}
	}
}

// Text returns the source text covered by e, leaving out the whitespace
// that Pad terms absorbed.
func Text(e TreeElement) string {
	var sb strings.Builder
	writeText(&sb, e)
	return sb.String()
}

func writeText(sb *strings.Builder, e TreeElement) {
	switch e := e.(type) {
	case Scanner:
		sb.WriteString(e.String())
	case Node:
		if e.Tag == padTag {
			writeText(sb, e.Children[1])
			return
		}
		for _, child := range e.Children {
			writeText(sb, child)
		}
	}
}

// Leaf returns the first Scanner leaf under e, which is where a node
// starts in the source.
func Leaf(e TreeElement) (Scanner, bool) {
	switch e := e.(type) {
	case Scanner:
		return e, true
	case Node:
		for _, child := range e.Children {
			if s, ok := Leaf(child); ok {
				return s, true
			}
		}
	}
	return Scanner{}, false
}

func (n Node) String() string {
	return fmt.Sprintf("%s", n) //nolint:gosimple
}

func (n Node) Format(state fmt.State, c rune) {
	fmt.Fprintf(state, "%s", n.Tag)
	format := "%" + string(c)
	if n.Extra != nil {
		fmt.Fprintf(state, "║"+format, n.Extra)
	}
	fmt.Fprint(state, "[")
	for i, child := range n.Children {
		if i > 0 {
			fmt.Fprint(state, ", ")
		}
		fmt.Fprintf(state, format, child)
	}
	fmt.Fprint(state, "]")
}
