package dbc

import (
	p "github.com/arr-ai/dbc/parser"
)

func commentRules() p.Grammar {
	g := p.Grammar{}
	comments := make(p.Oneof, 0, len(objectRefs))
	for i, rule := range []p.Rule{
		ruleNetworkComment,
		ruleNodeComment,
		ruleMessageComment,
		ruleSignalComment,
		ruleEnvVarComment,
	} {
		g[rule] = p.Seq{
			p.Lined(kw("CM_")),
			objectRefs[i],
			p.Lined(named("text", ruleCharString)),
			p.Lined(p.S(";")),
		}
		comments = append(comments, rule)
	}
	g[ruleComment] = comments
	return g
}

func buildComment(n p.Node) Comment {
	i, v := chosen(n)
	return Comment{
		Object: buildObjectRef(i, v),
		Text:   charString(v, "text"),
	}
}

// ParseComment parses a CM_ line.
func ParseComment(input string, opts ...Option) (Comment, error) {
	n, err := parseConstruct(ruleComment, BadComment, input, opts)
	if err != nil {
		return Comment{}, err
	}
	return buildComment(n), nil
}
