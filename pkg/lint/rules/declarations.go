package rules

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// TypedefRule flags typedef declarations.
type TypedefRule struct {
	lint.BaseRule
}

// NewTypedefRule creates the no-typedef rule.
func NewTypedefRule() *TypedefRule {
	return &TypedefRule{
		BaseRule: lint.NewBaseRule("A7-1-6", "no-typedef",
			"The typedef specifier shall not be used", catDeclarations, config.SeverityInfo, false),
	}
}

// Apply reports each name introduced by typedef.
func (r *TypedefRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, decl := range ctx.Nodes().Declarations() {
		if decl.DeclKind() != cppast.DeclTypedef {
			continue
		}
		msg := "typedef shall be replaced by a using alias"
		if name := decl.AttrString(cppast.AttrName); name != "" {
			msg = fmt.Sprintf("typedef '%s' shall be replaced by a using alias", name)
		}
		diags = append(diags, nameDiagnostic(ctx, r.ID(), decl, msg))
	}
	return diags, nil
}

// ScopedEnumRule flags unscoped enumerations.
type ScopedEnumRule struct {
	lint.BaseRule
}

// NewScopedEnumRule creates the scoped-enum rule.
func NewScopedEnumRule() *ScopedEnumRule {
	return &ScopedEnumRule{
		BaseRule: lint.NewBaseRule("A7-2-3", "scoped-enum",
			"Enumerations shall be declared as scoped enum classes", catDeclarations, config.SeverityWarning, false),
	}
}

// Apply reports enum declarations without class or struct.
func (r *ScopedEnumRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, decl := range ctx.Nodes().Declarations() {
		if decl.DeclKind() != cppast.DeclEnum || decl.AttrBool(cppast.AttrScoped) {
			continue
		}
		kw := ctx.Token(decl.FirstToken)
		end := kw
		msg := "unscoped enumeration; declare it as enum class"
		if tok, ok := lint.NameToken(decl); ok {
			end = tok
			msg = fmt.Sprintf("unscoped enumeration '%s'; declare it as enum class", tok.Text)
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, cppast.SpanOf(kw, end), msg).Build())
	}
	return diags, nil
}

// CArrayRule flags C-style array declarators.
type CArrayRule struct {
	lint.BaseRule
}

// NewCArrayRule creates the no-c-array rule.
func NewCArrayRule() *CArrayRule {
	return &CArrayRule{
		BaseRule: lint.NewBaseRule("A18-1-1", "no-c-array",
			"C-style arrays shall not be used", catSupportLibrary, config.SeverityWarning, false),
	}
}

// Apply reports every declarator with an array suffix.
func (r *CArrayRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, decl := range ctx.Nodes().Declarations() {
		if !decl.AttrBool(cppast.AttrArray) {
			continue
		}
		msg := "C-style array; use std::array or std::vector"
		if name := decl.AttrString(cppast.AttrName); name != "" {
			msg = fmt.Sprintf("C-style array '%s'; use std::array or std::vector", name)
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), decl, msg).Build())
	}
	return diags, nil
}
