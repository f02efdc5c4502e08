package rules

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// NullptrRule flags NULL and literal 0 used as a null pointer constant.
type NullptrRule struct {
	lint.BaseRule
}

// NewNullptrRule creates the nullptr-only rule.
func NewNullptrRule() *NullptrRule {
	return &NullptrRule{
		BaseRule: lint.NewBaseRule("A4-10-1", "nullptr-only",
			"Only nullptr literal shall be used as the null-pointer-constant",
			catConversions, config.SeverityError, true),
	}
}

// Apply reports NULL tokens and pointer declarators initialised with 0.
func (r *NullptrRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, idx := range ctx.Nodes().CodeTokens() {
		tok := ctx.Token(idx)
		if !lint.IsIdentifier(tok, "NULL") {
			continue
		}
		diags = append(diags, r.report(ctx, tok, "NULL used as a null pointer constant"))
	}

	for _, decl := range ctx.Nodes().Declarations() {
		if decl.AttrInt(cppast.AttrPointerDepth, 0) == 0 || !decl.AttrBool(cppast.AttrHasInit) {
			continue
		}
		if zero, ok := soleZero(ctx, decl); ok {
			diags = append(diags, r.report(ctx, zero, "literal 0 used as a null pointer constant"))
		}
	}
	return diags, nil
}

func (r *NullptrRule) report(ctx *lint.RuleContext, tok cppast.Token, msg string) lint.Diagnostic {
	return lint.NewTokenDiagnostic(r.ID(), ctx.File, tok, msg).
		WithSuggestion("nullptr").
		WithEdit(lint.ReplaceToken(tok, "nullptr")).
		Build()
}

// soleZero returns the 0 literal when an initializer is exactly 0, {0}
// or (0).
func soleZero(ctx *lint.RuleContext, decl *cppast.Node) (cppast.Token, bool) {
	first := decl.AttrInt(cppast.AttrInitFirst, -1)
	last := decl.AttrInt(cppast.AttrInitLast, -1)
	var zero cppast.Token
	found := false
	for i := first; i >= 0 && i <= last; i++ {
		tok := ctx.Token(i)
		switch {
		case tok.Kind == cppast.TokComment:
		case tok.Is("{"), tok.Is("}"), tok.Is("("), tok.Is(")"):
		case tok.Kind == cppast.TokIntLiteral && tok.Text == "0" && !found:
			zero, found = tok, true
		default:
			return cppast.Token{}, false
		}
	}
	return zero, found
}

// RegisterRule flags the register storage class specifier.
type RegisterRule struct {
	lint.BaseRule
}

// NewRegisterRule creates the no-register rule.
func NewRegisterRule() *RegisterRule {
	return &RegisterRule{
		BaseRule: lint.NewBaseRule("A7-1-4", "no-register",
			"The register keyword shall not be used", catDeclarations, config.SeverityError, true),
	}
}

// Apply reports each register keyword with an edit removing it.
func (r *RegisterRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		if !tok.IsKeyword("register") {
			continue
		}
		end := tok.EndOffset
		for end < len(ctx.File.Content) && (ctx.File.Content[end] == ' ' || ctx.File.Content[end] == '\t') {
			end++
		}
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
			"'register' shall not be used").
			WithSuggestion("remove the specifier").
			WithEdit(fix.TextEdit{StartOffset: tok.StartOffset, EndOffset: end}).
			Build())
	}
	return diags, nil
}

// VectorBoolRule flags std::vector<bool>.
type VectorBoolRule struct {
	lint.BaseRule
}

// NewVectorBoolRule creates the no-vector-bool rule.
func NewVectorBoolRule() *VectorBoolRule {
	return &VectorBoolRule{
		BaseRule: lint.NewBaseRule("A18-1-2", "no-vector-bool",
			"The std::vector<bool> specialization shall not be used",
			catSupportLibrary, config.SeverityWarning, false),
	}
}

// Apply matches the token window vector < bool >.
func (r *VectorBoolRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos := 0; pos+3 < len(code); pos++ {
		tok := ctx.Token(code[pos])
		if !lint.IsIdentifier(tok, "vector") {
			continue
		}
		closing := ctx.Token(code[pos+3])
		if !ctx.Token(code[pos+1]).Is("<") || !ctx.Token(code[pos+2]).IsKeyword("bool") ||
			!(closing.Is(">") || closing.Is(">>")) {
			continue
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, cppast.SpanOf(tok, closing),
			"std::vector<bool> shall not be used").Build())
	}
	return diags, nil
}

// NewDeleteRule flags explicit new and delete expressions.
type NewDeleteRule struct {
	lint.BaseRule
}

// NewNewDeleteRule creates the no-explicit-new-delete rule.
func NewNewDeleteRule() *NewDeleteRule {
	return &NewDeleteRule{
		BaseRule: lint.NewBaseRule("A18-5-2", "no-explicit-new-delete",
			"Non-placement new or delete expressions shall not be used",
			catSupportLibrary, config.SeverityWarning, false),
	}
}

// Apply reports new and delete keywords used as expressions. Operator
// names, deleted functions and placement new are skipped.
func (r *NewDeleteRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos, idx := range code {
		tok := ctx.Token(idx)
		if !tok.IsKeyword("new") && !tok.IsKeyword("delete") {
			continue
		}
		prev, next := codeNeighbours(ctx, code, pos)
		switch {
		case prev.IsKeyword("operator"):
			continue
		case tok.Text == "delete" && prev.Is("="):
			continue
		case tok.Text == "new" && next.Is("("):
			continue
		}
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
			fmt.Sprintf("explicit '%s' expression; use a smart pointer or container", tok.Text)).Build())
	}
	return diags, nil
}

// RandRule flags the C pseudo-random generator.
type RandRule struct {
	lint.BaseRule
}

// NewRandRule creates the no-std-rand rule.
func NewRandRule() *RandRule {
	return &RandRule{
		BaseRule: lint.NewBaseRule("A26-5-1", "no-std-rand",
			"Pseudorandom numbers shall not be generated using std::rand()",
			catNumerics, config.SeverityWarning, false),
	}
}

// Apply reports calls of rand and srand, bare or qualified by std.
func (r *RandRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos, idx := range code {
		tok := ctx.Token(idx)
		if !lint.IsIdentifier(tok, "rand", "srand") {
			continue
		}
		prev, next := codeNeighbours(ctx, code, pos)
		if !next.Is("(") || prev.Is(".") || prev.Is("->") {
			continue
		}
		if prev.Is("::") && pos >= 2 {
			if qual := ctx.Token(code[pos-2]); qual.Kind == cppast.TokIdentifier && qual.Text != "std" {
				continue
			}
		}
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
			fmt.Sprintf("'%s' shall not be used; use the <random> facilities", tok.Text)).Build())
	}
	return diags, nil
}
