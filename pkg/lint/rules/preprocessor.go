package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lexer"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// reservedMacroNames are standard library names that shall not be
// defined or undefined.
var reservedMacroNames = map[string]bool{
	"assert": true, "errno": true, "NULL": true, "offsetof": true, "defined": true,
	"setjmp": true, "longjmp": true, "va_start": true, "va_arg": true, "va_end": true,
	"va_copy": true, "EOF": true, "stdin": true, "stdout": true, "stderr": true,
	"override": true, "final": true, "and": true, "or": true, "not": true,
}

// DefineRule flags macro definitions with a replacement list.
type DefineRule struct {
	lint.BaseRule
}

// NewDefineRule creates the preprocessor-include-only rule.
func NewDefineRule() *DefineRule {
	return &DefineRule{
		BaseRule: lint.NewBaseRule("A16-2-1", "preprocessor-include-only",
			"The pre-processor shall only be used for unconditional and conditional file inclusion and include guards",
			catPreprocessing, config.SeverityWarning, false),
	}
}

// Apply reports #define directives that expand to something. A define
// directly after #ifndef of the same macro is an include guard.
func (r *DefineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	var prev *cppast.Node
	for _, dir := range ctx.Nodes().Directives() {
		last := prev
		prev = dir
		if dir.AttrString(cppast.AttrDirective) != "define" || dir.AttrString(cppast.AttrMacroBody) == "" {
			continue
		}
		macro := dir.AttrString(cppast.AttrMacro)
		if !dir.AttrBool(cppast.AttrFunctionMac) && guards(last, macro) {
			continue
		}
		kind := "object-like"
		if dir.AttrBool(cppast.AttrFunctionMac) {
			kind = "function-like"
		}
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, ctx.Token(dir.FirstToken),
			fmt.Sprintf("%s macro '%s'; use a constexpr variable, inline function or template", kind, macro)).
			Build())
	}
	return diags, nil
}

// guards reports whether dir tests that macro is not defined.
func guards(dir *cppast.Node, macro string) bool {
	if dir == nil || macro == "" {
		return false
	}
	args := directiveArgs(dir)
	switch dir.AttrString(cppast.AttrDirective) {
	case "ifndef":
		return len(args) > 0 && args[0] == macro
	case "if":
		text := strings.Join(args, "")
		return text == "!defined("+macro+")" || text == "!defined"+macro
	}
	return false
}

// directiveArgs returns the words after the directive name.
func directiveArgs(dir *cppast.Node) []string {
	text := strings.TrimPrefix(strings.TrimSpace(dir.Text()), "#")
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// ReservedIdentifierRule flags macros that reuse reserved identifiers.
type ReservedIdentifierRule struct {
	lint.BaseRule
}

// NewReservedIdentifierRule creates the no-reserved-identifiers rule.
func NewReservedIdentifierRule() *ReservedIdentifierRule {
	return &ReservedIdentifierRule{
		BaseRule: lint.NewBaseRule("A17-0-1", "no-reserved-identifiers",
			"Reserved identifiers, macros and functions in the C++ standard library shall not be defined, redefined or undefined",
			catLibrary, config.SeverityError, false),
	}
}

// Apply checks the macro name of #define and #undef.
func (r *ReservedIdentifierRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, dir := range ctx.Nodes().Directives() {
		macro := dir.AttrString(cppast.AttrMacro)
		if macro == "" || !isReservedIdentifier(macro) {
			continue
		}
		start := dir.AttrInt(cppast.AttrMacroOffset, ctx.Token(dir.FirstToken).StartOffset)
		diags = append(diags, offsetDiagnostic(ctx, r.ID(), start, start+len(macro),
			fmt.Sprintf("#%s of reserved identifier '%s'", dir.AttrString(cppast.AttrDirective), macro)))
	}
	return diags, nil
}

func isReservedIdentifier(name string) bool {
	switch {
	case strings.Contains(name, "__"):
		return true
	case len(name) > 1 && name[0] == '_' && name[1] >= 'A' && name[1] <= 'Z':
		return true
	}
	return reservedMacroNames[name] || lexer.IsKeyword(name)
}
