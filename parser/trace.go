package parser

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type tracer struct {
	log   *logrus.Entry
	depth int
}

type exiter struct {
	t *tracer
}

func (t *tracer) enabled() bool {
	return t != nil && t.log.Logger.IsLevelEnabled(logrus.TraceLevel)
}

func (s Scope) enterf(format string, args ...interface{}) exiter {
	t := s.tracer()
	if !t.enabled() {
		return exiter{}
	}
	t.log.Tracef("%s--> %s", strings.Repeat("  ", t.depth), fmt.Sprintf(format, args...))
	t.depth++
	return exiter{t}
}

// exitf logs the result of a term. Pointer arguments are dereferenced so the
// values reflect what the deferred call sees at exit.
func (e exiter) exitf(format string, args ...interface{}) {
	if e.t == nil {
		return
	}
	e.t.depth--
	for i, arg := range args {
		switch arg := arg.(type) {
		case *error:
			if *arg == nil {
				args[i] = "ok"
			} else {
				args[i] = "failed"
			}
		case *TreeElement:
			args[i] = *arg
		}
	}
	e.t.log.Tracef("%s<-- %s", strings.Repeat("  ", e.t.depth), fmt.Sprintf(format, args...))
}
