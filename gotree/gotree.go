// Package gotree builds and prints text trees, such as parse error
// traces.
package gotree

import (
	"strings"
)

const (
	newLine      = "\n"
	emptySpace   = "    "
	middleItem   = "├── "
	continueItem = "│   "
	lastItem     = "└── "
)

type (
	tree struct {
		text  string
		items []Tree
	}

	// Tree is tree interface
	Tree interface {
		Add(text string) Tree
		AddTree(tree Tree)
		Items() []Tree
		Text() string
		Print() string
	}
)

// New returns a new Tree
func New(text string) Tree {
	return &tree{text: text}
}

// Add adds a node to the tree
func (t *tree) Add(text string) Tree {
	n := New(text)
	t.items = append(t.items, n)
	return n
}

// AddTree adds a tree as an item
func (t *tree) AddTree(tree Tree) {
	t.items = append(t.items, tree)
}

func (t *tree) Text() string {
	return t.text
}

func (t *tree) Items() []Tree {
	return t.items
}

// Print returns a visual representation of the tree
func (t *tree) Print() string {
	var sb strings.Builder
	sb.WriteString(t.Text())
	sb.WriteString(newLine)
	printItems(&sb, t.Items(), nil)
	return sb.String()
}

func printText(sb *strings.Builder, text string, spaces []bool, last bool) {
	var prefix strings.Builder
	for _, space := range spaces {
		if space {
			prefix.WriteString(emptySpace)
		} else {
			prefix.WriteString(continueItem)
		}
	}

	indicator := middleItem
	if last {
		indicator = lastItem
	}

	for i, line := range strings.Split(text, "\n") {
		if i == 1 {
			// Continuation lines of a multi-line item hang under its text.
			if last {
				indicator = emptySpace
			} else {
				indicator = continueItem
			}
		}
		sb.WriteString(prefix.String())
		sb.WriteString(indicator)
		sb.WriteString(line)
		sb.WriteString(newLine)
	}
}

func printItems(sb *strings.Builder, items []Tree, spaces []bool) {
	for i, f := range items {
		last := i == len(items)-1
		printText(sb, f.Text(), spaces, last)
		if len(f.Items()) > 0 {
			child := append(append([]bool{}, spaces...), last)
			printItems(sb, f.Items(), child)
		}
	}
}
