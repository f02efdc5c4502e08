package lint_test

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/parser"
)

// funcRule is a test rule whose Apply is a closure.
type funcRule struct {
	lint.BaseRule
	apply func(*lint.RuleContext) ([]lint.Diagnostic, error)
}

func (r *funcRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if r.apply == nil {
		return nil, nil
	}
	return r.apply(ctx)
}

func newRule(id, name string, apply func(*lint.RuleContext) ([]lint.Diagnostic, error)) *funcRule {
	return &funcRule{
		BaseRule: lint.NewBaseRule(id, name, "test rule "+id, "Testing", config.SeverityWarning, false),
		apply:    apply,
	}
}

// lineRule reports one diagnostic at column 1 of each given line.
func lineRule(id string, lines ...int) *funcRule {
	return newRule(id, "rule-"+id, func(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
		out := make([]lint.Diagnostic, 0, len(lines))
		for _, line := range lines {
			span := cppast.SourceSpan{StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 2}
			out = append(out, lint.NewDiagnosticAt(id, "", span, fmt.Sprintf("line %d", line)).Build())
		}
		return out, nil
	})
}

// identRule reports every identifier token with the given text.
func identRule(id, ident string) *funcRule {
	return newRule(id, "rule-"+id, func(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
		var out []lint.Diagnostic
		for _, tok := range ctx.File.Tokens {
			if lint.IsIdentifier(tok, ident) {
				out = append(out, lint.NewTokenDiagnostic(id, ctx.File, tok, "found "+ident).Build())
			}
		}
		return out, nil
	})
}

// nullRule flags NULL and offers nullptr as a fix.
func nullRule() *funcRule {
	r := &funcRule{
		BaseRule: lint.NewBaseRule("A4-10-1", "nullptr-only", "Only nullptr is a null pointer constant.",
			"Standard Conversions", config.SeverityError, true),
	}
	r.apply = func(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
		var out []lint.Diagnostic
		for _, tok := range ctx.File.Tokens {
			if lint.IsIdentifier(tok, "NULL") {
				out = append(out, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok, "use nullptr").
					WithEdit(lint.ReplaceToken(tok, "nullptr")).
					Build())
			}
		}
		return out, nil
	}
	return r
}

func newEngine(rules ...lint.Rule) *lint.Engine {
	reg := lint.NewRegistry()
	for _, r := range rules {
		reg.Register(r)
	}
	return lint.NewEngine(parser.New(), reg)
}

func mustParse(src string) *cppast.FileSnapshot {
	snap, err := parser.New().Parse(testContext(), "test.cpp", []byte(src))
	if err != nil {
		panic(err)
	}
	return snap
}
