package dbc

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/arr-ai/dbc/parser"
)

// ErrorKind identifies the construct that failed to parse.
type ErrorKind int

const (
	Unclassified ErrorKind = iota
	UnconsumedInput

	BadVersion
	BadNames
	BadBitTiming
	BadBitTimingValue
	BadCanNodes
	BadValueTable
	BadMessageHeader
	BadSignal

	BadComment
	BadNetworkComment
	BadNodeComment
	BadMessageComment
	BadSignalComment
	BadEnvironmentVariableComment

	BadEnvironmentVariable
	BadEnvironmentVariableData
	BadSignalValueDescriptions
	BadEnvironmentVariableValueDescriptions

	BadAttributeIntegerValueType
	BadAttributeHexValueType
	BadAttributeFloatValueType
	BadAttributeStringValueType
	BadAttributeEnumValueType

	BadNetworkAttribute
	BadNodeAttribute
	BadMessageAttribute
	BadSignalAttribute
	BadEnvironmentVariableAttribute
	BadControlUnitEnvironmentVariableAttribute
	BadNodeTxMessageAttribute
	BadNodeMappedRxSignalAttribute

	BadAttributeDefinitionDefault
	BadRelationAttributeDefinitionDefault

	BadNetworkAttributeValue
	BadNodeAttributeValue
	BadMessageAttributeValue
	BadSignalAttributeValue
	BadEnvironmentVariableAttributeValue

	BadInt
	BadFloat
	BadEscape
	KeywordAsIdentifier
)

var kindIdents = [...]string{
	Unclassified:    "Unclassified",
	UnconsumedInput: "UnconsumedInput",

	BadVersion:        "BadVersion",
	BadNames:          "BadNames",
	BadBitTiming:      "BadBitTiming",
	BadBitTimingValue: "BadBitTimingValue",
	BadCanNodes:       "BadCanNodes",
	BadValueTable:     "BadValueTable",
	BadMessageHeader:  "BadMessageHeader",
	BadSignal:         "BadSignal",

	BadComment:                    "BadComment",
	BadNetworkComment:             "BadNetworkComment",
	BadNodeComment:                "BadNodeComment",
	BadMessageComment:             "BadMessageComment",
	BadSignalComment:              "BadSignalComment",
	BadEnvironmentVariableComment: "BadEnvironmentVariableComment",

	BadEnvironmentVariable:                  "BadEnvironmentVariable",
	BadEnvironmentVariableData:              "BadEnvironmentVariableData",
	BadSignalValueDescriptions:              "BadSignalValueDescriptions",
	BadEnvironmentVariableValueDescriptions: "BadEnvironmentVariableValueDescriptions",

	BadAttributeIntegerValueType: "BadAttributeIntegerValueType",
	BadAttributeHexValueType:     "BadAttributeHexValueType",
	BadAttributeFloatValueType:   "BadAttributeFloatValueType",
	BadAttributeStringValueType:  "BadAttributeStringValueType",
	BadAttributeEnumValueType:    "BadAttributeEnumValueType",

	BadNetworkAttribute:                        "BadNetworkAttribute",
	BadNodeAttribute:                           "BadNodeAttribute",
	BadMessageAttribute:                        "BadMessageAttribute",
	BadSignalAttribute:                         "BadSignalAttribute",
	BadEnvironmentVariableAttribute:            "BadEnvironmentVariableAttribute",
	BadControlUnitEnvironmentVariableAttribute: "BadControlUnitEnvironmentVariableAttribute",
	BadNodeTxMessageAttribute:                  "BadNodeTxMessageAttribute",
	BadNodeMappedRxSignalAttribute:             "BadNodeMappedRxSignalAttribute",

	BadAttributeDefinitionDefault:         "BadAttributeDefinitionDefault",
	BadRelationAttributeDefinitionDefault: "BadRelationAttributeDefinitionDefault",

	BadNetworkAttributeValue:             "BadNetworkAttributeValue",
	BadNodeAttributeValue:                "BadNodeAttributeValue",
	BadMessageAttributeValue:             "BadMessageAttributeValue",
	BadSignalAttributeValue:              "BadSignalAttributeValue",
	BadEnvironmentVariableAttributeValue: "BadEnvironmentVariableAttributeValue",

	BadInt:              "BadInt",
	BadFloat:            "BadFloat",
	BadEscape:           "BadEscape",
	KeywordAsIdentifier: "KeywordAsIdentifier",
}

func (k ErrorKind) ident() string {
	if k < 0 || int(k) >= len(kindIdents) {
		return kindIdents[Unclassified]
	}
	return kindIdents[k]
}

// String is the human readable name, e.g. "bad message header".
func (k ErrorKind) String() string {
	return strcase.ToDelimited(k.ident(), ' ')
}

// Code is a stable identifier for the kind, e.g. "BAD_MESSAGE_HEADER".
func (k ErrorKind) Code() string {
	return strcase.ToScreamingSnake(k.ident())
}

// Error is returned by every parse function in this package.
type Error struct {
	Kind     ErrorKind
	Filename string
	Offset   int
	Line     int
	Column   int
	Cause    error
}

func (e *Error) Error() string {
	name := e.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s", name, e.Line, e.Column, e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// Detail includes the parse trace that led to the error.
func (e *Error) Detail() string {
	if e.Cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s [%s]%s", e.Error(), e.Kind.Code(), e.Cause)
}

// KindOf returns the kind of a parse error, or Unclassified for any other
// error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unclassified
}

// lexError is raised by lexical checks, such as integer range checks.
type lexError struct {
	kind ErrorKind
	text string
}

func (e lexError) Error() string {
	return fmt.Sprintf("%s: %q", e.kind, e.text)
}

// kindOf maps an engine error to the construct it belongs to. The outermost
// construct with a kind of its own wins. Alternations without a kind report
// their last attempted branch.
func kindOf(err error) ErrorKind {
	switch err := err.(type) {
	case lexError:
		return err.kind
	case parser.ParseError:
		if k, has := ruleKinds[err.Rule()]; has {
			return k
		}
		children := err.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if k := kindOf(children[i]); k != Unclassified {
				return k
			}
		}
	}
	return Unclassified
}

func newError(kind ErrorKind, at parser.Scanner, cause error) *Error {
	line, col := at.Position()
	return &Error{
		Kind:     kind,
		Filename: at.Filename(),
		Offset:   at.Offset(),
		Line:     line,
		Column:   col,
		Cause:    cause,
	}
}

// wrapParseError turns an engine error into an *Error located at the
// deepest failure point.
func wrapParseError(err error, fallback ErrorKind, start parser.Scanner) *Error {
	at := start
	var pe parser.ParseError
	if errors.As(err, &pe) {
		at = pe.Furthest()
	}
	kind := kindOf(err)
	if kind == Unclassified {
		kind = fallback
	}
	return newError(kind, at, err)
}
