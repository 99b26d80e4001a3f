package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// Scanner is a window onto a source string. Parsers advance a scanner as
// they consume input; copies of a scanner are independent, which is what
// gives every term free backtracking.
type Scanner struct {
	src         *source
	sliceStart  int
	sliceLength int
}

type source struct {
	origin   string
	filename string
}

func NewScanner(str string) *Scanner {
	return &Scanner{&source{origin: str}, 0, len(str)}
}

func NewScannerWithFilename(str, filename string) *Scanner {
	return &Scanner{&source{origin: str, filename: filename}, 0, len(str)}
}

// Filename is the name of the file from which the source is derived (or
// empty if none).
func (s Scanner) Filename() string {
	if s.src == nil {
		return ""
	}
	return s.src.filename
}

func (s Scanner) String() string {
	if s.src == nil {
		return ""
	}
	return s.slice()
}

func (s Scanner) IsNil() bool {
	return s.src == nil
}

func (s Scanner) Len() int {
	return s.sliceLength
}

func (s Scanner) Format(state fmt.State, c rune) {
	if c == 'q' {
		_, _ = fmt.Fprintf(state, "%q", s.String())
	} else {
		_, _ = state.Write([]byte(s.String()))
	}
}

var (
	NoLimit      = -1
	DefaultLimit = 1
)

// Context renders the scanner's slice highlighted within the surrounding
// source, keeping at most limitLines lines either side.
func (s Scanner) Context(limitLines int) string {
	if s.src == nil {
		return ""
	}
	end := s.sliceStart + s.sliceLength
	lineno, colno := s.Position()

	above := s.src.origin[:s.sliceStart]
	below := s.src.origin[end:]
	if limitLines != NoLimit {
		if a := strings.Split(above, "\n"); len(a) > limitLines+1 {
			above = strings.Join(a[len(a)-limitLines-1:], "\n")
		}
		if b := strings.Split(below, "\n"); len(b) > limitLines {
			below = strings.Join(b[:limitLines], "\n")
		}
	}

	return fmt.Sprintf("\n\033[1;37m%s:%d:%d:\033[0m\n%s\033[1;31m%s\033[0m%s",
		s.Filename(),
		lineno,
		colno,
		above,
		s.slice(),
		below,
	)
}

// Offset is the position of the start of the scanner within the original
// source.
func (s Scanner) Offset() int {
	return s.sliceStart
}

// Position is the 1-indexed line and column number of the start of the
// scanner within the original source.
func (s Scanner) Position() (int, int) {
	if s.src == nil {
		return 1, 1
	}
	return lineColumn(s.src.origin, s.sliceStart)
}

func (s Scanner) slice() string {
	return s.src.origin[s.sliceStart : s.sliceStart+s.sliceLength]
}

func (s Scanner) Slice(a, b int) *Scanner {
	return &Scanner{s.src, s.sliceStart + a, b - a}
}

func (s Scanner) Skip(i int) *Scanner {
	return &Scanner{s.src, s.sliceStart + i, s.sliceLength - i}
}

// Eat returns a scanner containing the next i bytes and advances s past them.
func (s *Scanner) Eat(i int, eaten *Scanner) *Scanner {
	eaten.src = s.src
	eaten.sliceStart = s.sliceStart
	eaten.sliceLength = i
	*s = *s.Skip(i)
	return s
}

func (s *Scanner) EatString(str string, eaten *Scanner) bool {
	if strings.HasPrefix(s.slice(), str) {
		s.Eat(len(str), eaten)
		return true
	}
	return false
}

// EatRegexp eats the text matching a regexp, populating match (if != nil) with
// the whole match and captures (if != nil) with any captured groups. Returns
// n as the number of captures set and ok iff a match was found.
func (s *Scanner) EatRegexp(re *regexp.Regexp, match *Scanner, captures []Scanner) (n int, ok bool) {
	if loc := re.FindStringSubmatchIndex(s.slice()); loc != nil {
		if loc[0] != 0 {
			panic(`re not \A-anchored`)
		}
		if match != nil {
			*match = *s.Slice(loc[0], loc[1])
		}
		skip := loc[1]
		loc = loc[2:]
		n = len(loc) / 2
		if len(captures) > n {
			captures = captures[:n]
		}
		for i := range captures {
			if loc[2*i] >= 0 {
				captures[i] = *s.Slice(loc[2*i], loc[2*i+1])
			}
		}

		*s = *s.Skip(skip)

		return n, true
	}
	return 0, false
}

func lineColumn(str string, pos int) (line, col int) {
	prefix := str[:pos]
	line = strings.Count(prefix, "\n") + 1
	col = pos - strings.LastIndex(prefix, "\n")
	return
}
