package parser

import (
	"github.com/arr-ai/frozen"
	"github.com/sirupsen/logrus"
)

// Scope carries per-parse state down through the parsers. It is immutable;
// With returns a new Scope.
type Scope struct {
	m frozen.Map[string, interface{}]
}

const tracerKey = ".Tracer-key."

func NewScope() Scope {
	return Scope{m: frozen.NewMap[string, interface{}]()}
}

func (s Scope) With(ident string, v interface{}) Scope {
	return Scope{m: s.m.With(ident, v)}
}

func (s Scope) Has(ident string) bool {
	return s.m.Has(ident)
}

func (s Scope) Get(ident string) (interface{}, bool) {
	return s.m.Get(ident)
}

// WithLogger routes term tracing to logger. Tracing is emitted at trace
// level only.
func (s Scope) WithLogger(logger logrus.FieldLogger) Scope {
	if logger == nil {
		return s
	}
	return s.With(tracerKey, &tracer{log: logger.WithFields(logrus.Fields{})})
}

func (s Scope) tracer() *tracer {
	if v, has := s.m.Get(tracerKey); has {
		return v.(*tracer)
	}
	return nil
}
