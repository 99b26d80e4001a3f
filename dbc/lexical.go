package dbc

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arr-ai/frozen"

	"github.com/arr-ai/dbc/parser"
)

// Keywords that may not be used as identifiers.
var keywords = frozen.NewSet[string](
	"VERSION",
	"NS_",
	"NS_DESC_",
	"CM_",
	"BA_DEF_",
	"BA_",
	"VAL_",
	"CAT_DEF_",
	"CAT_",
	"FILTER",
	"BA_DEF_DEF_",
	"EV_DATA_",
	"ENVVAR_DATA_",
	"SGTYPE_",
	"SGTYPE_VAL_",
	"BA_DEF_SGTYPE_",
	"BA_SGTYPE_",
	"SIG_TYPE_REF_",
	"VAL_TABLE_",
	"SIG_GROUP_",
	"SIG_VALTYPE_",
	"SIGTYPE_VALTYPE_",
	"BO_TX_BU_",
	"BA_DEF_REL_",
	"BA_REL_",
	"BA_DEF_DEF_REL_",
	"BU_SG_REL_",
	"BU_EV_REL_",
	"BU_BO_REL_",
	"SG_MUL_VAL_",
	"BS_",
	"BU_",
	"BO_",
	"SG_",
	"EV_",
	"VECTOR__INDEPENDENT_SIG_MSG",
	"VECTOR__XXX",
)

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	return keywords.Has(word)
}

// NoSender is the transmitter of a message that no node sends, and the
// access node of an environment variable that no node accesses.
const NoSender = "Vector__XXX"

const (
	identifierRE = `[A-Za-z_][A-Za-z0-9_]*`
	objectNameRE = `[\p{L}\p{N}_]+`
	charStringRE = `"(?:[^"\\]|\\(?s:.))*"`
	unsignedRE   = `[0-9]+`
	signedRE     = `[-+]?[0-9]+`
	integerRE    = `-?(?:0|[1-9][0-9]*)`
	floatRE      = integerRE + `(?:\.[0-9]+(?:[eE][-+]?[0-9]+)?|[eE][-+]?[0-9]+)`
	hexRE        = `[0-9A-Fa-f]+`
	lineEndsRE   = `(?:[ \t]*\r?\n)*`
)

// kw matches a keyword that is not immediately followed by more word
// characters, so BA_DEF_ does not match the start of BA_DEF_DEF_.
func kw(word string) parser.Term {
	return parser.RE(regexp.QuoteMeta(word) + `\b`)
}

func rejectKeyword(_ parser.Scope, text string) error {
	if keywords.Has(text) {
		return lexError{kind: KeywordAsIdentifier, text: text}
	}
	return nil
}

func fitsInt(bits int) func(parser.Scope, string) error {
	return func(_ parser.Scope, text string) error {
		if _, err := strconv.ParseInt(text, 10, bits); err != nil {
			return lexError{kind: BadInt, text: text}
		}
		return nil
	}
}

func fitsUint(bits int) func(parser.Scope, string) error {
	return func(_ parser.Scope, text string) error {
		if _, err := strconv.ParseUint(text, 10, bits); err != nil {
			return lexError{kind: BadInt, text: text}
		}
		return nil
	}
}

func fitsHex16(_ parser.Scope, text string) error {
	if _, err := strconv.ParseUint(text, 16, 16); err != nil {
		return lexError{kind: BadInt, text: text}
	}
	return nil
}

func finiteFloat(_ parser.Scope, text string) error {
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return lexError{kind: BadFloat, text: text}
	}
	return nil
}

func lexicalRules() parser.Grammar {
	return parser.Grammar{
		ruleIdentifier: parser.Check{Term: parser.RE(identifierRE), Fn: rejectKeyword},
		ruleObjectName: parser.RE(objectNameRE),
		ruleCharString: parser.RE(charStringRE),
		ruleUnsigned:   parser.Check{Term: parser.RE(unsignedRE), Fn: fitsUint(32)},
		ruleUnsigned64: parser.Check{Term: parser.RE(unsignedRE), Fn: fitsUint(64)},
		ruleSigned:     parser.Check{Term: parser.RE(signedRE), Fn: fitsInt(32)},
		ruleInteger:    parser.Check{Term: parser.RE(integerRE), Fn: fitsInt(64)},
		ruleFloat:      parser.Check{Term: parser.RE(floatRE), Fn: finiteFloat},
		ruleNumber:     parser.Oneof{parser.Rule(ruleFloat), parser.Rule(ruleInteger)},
		ruleHex16:      parser.Check{Term: parser.RE(hexRE), Fn: fitsHex16},
		ruleLineEnds:   parser.RE(lineEndsRE),
	}
}

// formatNumber renders a double so that it parses back to the same value.
// Integral values too large for the integer literal and non-zero values
// below 1e-6 in magnitude switch to exponent notation.
func formatNumber(f float64) string {
	if f != 0 && math.Abs(f) < 1e-6 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			return strconv.FormatFloat(f, 'e', -1, 64)
		}
	}
	return s
}

// parseNumber converts text matched by the number rule.
func parseNumber(text string) float64 {
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return math.NaN()
}
