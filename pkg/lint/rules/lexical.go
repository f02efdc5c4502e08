package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/lexer"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// trigraphChars are the characters completing a ?? trigraph.
const trigraphChars = "=/'()!<>-"

// validEscapeChars may follow a backslash in a character or string literal.
const validEscapeChars = `'"?\abfnrtvxuU01234567`

// TrigraphRule flags trigraph sequences in code and literals.
type TrigraphRule struct {
	lint.BaseRule
}

// NewTrigraphRule creates the no-trigraphs rule.
func NewTrigraphRule() *TrigraphRule {
	return &TrigraphRule{
		BaseRule: lint.NewBaseRule("A2-5-1", "no-trigraphs",
			"Trigraphs shall not be used", catLexical, config.SeverityError, false),
	}
}

// Apply scans every non-comment token for ??x sequences.
func (r *TrigraphRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	next := 0 // first offset not yet reported
	for _, tok := range ctx.File.Tokens {
		if tok.Kind == cppast.TokComment || tok.StartOffset < next {
			continue
		}
		// A trigraph in code lexes as separate ? tokens, so look at the
		// bytes from the token start rather than at its text.
		end := tok.EndOffset
		if tok.Is("?") {
			end = min(tok.StartOffset+3, len(ctx.File.Content))
		}
		text := string(ctx.File.Content[tok.StartOffset:end])
		for i := 0; i+2 < len(text); i++ {
			if text[i] != '?' || text[i+1] != '?' || strings.IndexByte(trigraphChars, text[i+2]) < 0 {
				continue
			}
			start := tok.StartOffset + i
			diags = append(diags, offsetDiagnostic(ctx, r.ID(), start, start+3,
				fmt.Sprintf("trigraph %q shall not be used", text[i:i+3])))
			next = start + 3
			i += 2
		}
	}
	return diags, nil
}

// CommentContinuationRule flags // comments ending in a line splice.
type CommentContinuationRule struct {
	lint.BaseRule
}

// NewCommentContinuationRule creates the no-comment-line-continuation rule.
func NewCommentContinuationRule() *CommentContinuationRule {
	return &CommentContinuationRule{
		BaseRule: lint.NewBaseRule("A2-7-1", "no-comment-line-continuation",
			"The character \\ shall not occur as a last character of a C++ comment",
			catLexical, config.SeverityError, false),
	}
}

// Apply checks line comments.
func (r *CommentContinuationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		if !tok.IsLineComment() {
			continue
		}
		text := strings.TrimRight(tok.Text, " \t\r")
		if strings.Contains(tok.Text, "\\\n") || strings.HasSuffix(text, "\\") {
			diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
				"comment ends with a line continuation and swallows the next line").Build())
		}
	}
	return diags, nil
}

// NestedCommentRule flags /* inside a block comment.
type NestedCommentRule struct {
	lint.BaseRule
}

// NewNestedCommentRule creates the no-nested-comment-open rule.
func NewNestedCommentRule() *NestedCommentRule {
	return &NestedCommentRule{
		BaseRule: lint.NewBaseRule("M2-7-1", "no-nested-comment-open",
			"The character sequence /* shall not be used within a C-style comment",
			catLexical, config.SeverityError, false),
	}
}

// Apply checks block comments.
func (r *NestedCommentRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		if !tok.IsBlockComment() {
			continue
		}
		if i := strings.Index(tok.Text[2:], "/*"); i >= 0 {
			start := tok.StartOffset + 2 + i
			diags = append(diags, offsetDiagnostic(ctx, r.ID(), start, start+2,
				"'/*' inside a block comment"))
		}
	}
	return diags, nil
}

// EscapeSequenceRule flags escape sequences the standard does not define.
type EscapeSequenceRule struct {
	lint.BaseRule
}

// NewEscapeSequenceRule creates the valid-escape-sequences rule.
func NewEscapeSequenceRule() *EscapeSequenceRule {
	return &EscapeSequenceRule{
		BaseRule: lint.NewBaseRule("A2-13-1", "valid-escape-sequences",
			"Only escape sequences defined in the ISO C++ Standard shall be used",
			catLexical, config.SeverityError, false),
	}
}

// Apply checks character and string literals.
func (r *EscapeSequenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		if tok.Kind != cppast.TokCharLiteral && tok.Kind != cppast.TokStringLiteral {
			continue
		}
		body, off, ok := literalBody(tok.Text)
		if !ok {
			continue
		}
		for _, esc := range escapes(body) {
			if strings.IndexByte(validEscapeChars, esc.seq[1]) >= 0 {
				continue
			}
			start := tok.StartOffset + off + esc.offset
			diags = append(diags, offsetDiagnostic(ctx, r.ID(), start, start+len(esc.seq),
				fmt.Sprintf("undefined escape sequence %q", esc.seq)))
		}
	}
	return diags, nil
}

// KeywordRule flags every occurrence of one keyword or identifier.
type KeywordRule struct {
	lint.BaseRule
	word    string
	message string
}

// NewVolatileRule creates the no-volatile rule.
func NewVolatileRule() *KeywordRule {
	return &KeywordRule{
		BaseRule: lint.NewBaseRule("A2-11-1", "no-volatile",
			"Volatile keyword shall not be used", catLexical, config.SeverityError, false),
		word:    "volatile",
		message: "'volatile' shall not be used",
	}
}

// NewWcharRule creates the no-wchar-t rule.
func NewWcharRule() *KeywordRule {
	return &KeywordRule{
		BaseRule: lint.NewBaseRule("A2-13-3", "no-wchar-t",
			"Type wchar_t shall not be used", catLexical, config.SeverityError, false),
		word:    "wchar_t",
		message: "'wchar_t' shall not be used",
	}
}

// NewErrnoRule creates the no-errno rule.
func NewErrnoRule() *KeywordRule {
	return &KeywordRule{
		BaseRule: lint.NewBaseRule("M19-3-1", "no-errno",
			"The error indicator errno shall not be used", catDiagnostics, config.SeverityWarning, false),
		word:    "errno",
		message: "'errno' shall not be used",
	}
}

// Apply reports each matching code token. Member names are skipped.
func (r *KeywordRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos, idx := range code {
		tok := ctx.Token(idx)
		if tok.Text != r.word || (tok.Kind != cppast.TokKeyword && tok.Kind != cppast.TokIdentifier) {
			continue
		}
		if prev, _ := codeNeighbours(ctx, code, pos); prev.Is(".") || prev.Is("->") {
			continue
		}
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok, r.message).Build())
	}
	return diags, nil
}

// HexUppercaseRule flags hexadecimal literals with lowercase digits.
type HexUppercaseRule struct {
	lint.BaseRule
}

// NewHexUppercaseRule creates the hex-uppercase rule.
func NewHexUppercaseRule() *HexUppercaseRule {
	return &HexUppercaseRule{
		BaseRule: lint.NewBaseRule("A2-13-5", "hex-uppercase",
			"Hexadecimal constants should be upper case", catLexical, config.SeverityInfo, true),
	}
}

// Apply checks integer literals with a 0x prefix.
func (r *HexUppercaseRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		if tok.Kind != cppast.TokIntLiteral || len(tok.Text) < 3 || tok.Text[0] != '0' ||
			(tok.Text[1] != 'x' && tok.Text[1] != 'X') {
			continue
		}
		digits, _ := lexer.IntegerSuffix(tok.Text)
		hex := digits[2:]
		upper := strings.ToUpper(hex)
		if upper == hex {
			continue
		}
		start := tok.StartOffset + 2
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
			fmt.Sprintf("hexadecimal constant %s should be upper case", tok.Text)).
			WithSuggestion(digits[:2]+upper).
			WithEdit(fix.TextEdit{StartOffset: start, EndOffset: start + len(hex), NewText: upper}).
			Build())
	}
	return diags, nil
}

// OctalRule flags octal constants and octal escape sequences.
type OctalRule struct {
	lint.BaseRule
}

// NewOctalRule creates the no-octal rule.
func NewOctalRule() *OctalRule {
	return &OctalRule{
		BaseRule: lint.NewBaseRule("M2-13-2", "no-octal",
			"Octal constants (other than zero) and octal escape sequences (other than \\0) shall not be used",
			catLexical, config.SeverityWarning, false),
	}
}

// Apply checks integer literals and the escapes of char/string literals.
func (r *OctalRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		switch tok.Kind {
		case cppast.TokIntLiteral:
			if isOctalConstant(tok.Text) {
				diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
					fmt.Sprintf("octal constant %s", tok.Text)).Build())
			}
		case cppast.TokCharLiteral, cppast.TokStringLiteral:
			body, off, ok := literalBody(tok.Text)
			if !ok {
				continue
			}
			for _, esc := range escapes(body) {
				if !isOctalDigit(esc.seq[1]) || esc.seq == `\0` {
					continue
				}
				start := tok.StartOffset + off + esc.offset
				diags = append(diags, offsetDiagnostic(ctx, r.ID(), start, start+len(esc.seq),
					fmt.Sprintf("octal escape sequence %q", esc.seq)))
			}
		default:
		}
	}
	return diags, nil
}

func isOctalConstant(text string) bool {
	digits, _ := lexer.IntegerSuffix(text)
	digits = strings.ReplaceAll(digits, "'", "")
	if len(digits) < 2 || digits[0] != '0' {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if !isOctalDigit(digits[i]) {
			return false
		}
	}
	return true
}

// LiteralSuffixRule flags lowercase literal suffixes.
type LiteralSuffixRule struct {
	lint.BaseRule
}

// NewLiteralSuffixRule creates the literal-suffix-uppercase rule.
func NewLiteralSuffixRule() *LiteralSuffixRule {
	return &LiteralSuffixRule{
		BaseRule: lint.NewBaseRule("M2-13-4", "literal-suffix-uppercase",
			"Literal suffixes shall be upper case", catLexical, config.SeverityInfo, true),
	}
}

// Apply checks integer and floating literals.
func (r *LiteralSuffixRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, tok := range ctx.File.Tokens {
		var digits, suffix string
		switch tok.Kind {
		case cppast.TokIntLiteral:
			digits, suffix = lexer.IntegerSuffix(tok.Text)
		case cppast.TokFloatLiteral:
			digits, suffix = lexer.FloatSuffix(tok.Text)
		default:
			continue
		}
		upper := strings.ToUpper(suffix)
		if upper == suffix {
			continue
		}
		start := tok.StartOffset + len(digits)
		diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
			fmt.Sprintf("literal suffix %q shall be upper case", suffix)).
			WithSuggestion(digits+upper).
			WithEdit(fix.TextEdit{StartOffset: start, EndOffset: start + len(suffix), NewText: upper}).
			Build())
	}
	return diags, nil
}

// LongDoubleRule flags the long double type.
type LongDoubleRule struct {
	lint.BaseRule
}

// NewLongDoubleRule creates the no-long-double rule.
func NewLongDoubleRule() *LongDoubleRule {
	return &LongDoubleRule{
		BaseRule: lint.NewBaseRule("A0-4-2", "no-long-double",
			"Type long double shall not be used", catLanguageIndependent, config.SeverityError, false),
	}
}

// Apply looks for adjacent long and double keywords in either order.
func (r *LongDoubleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos := 0; pos+1 < len(code); pos++ {
		a, b := ctx.Token(code[pos]), ctx.Token(code[pos+1])
		if (a.IsKeyword("long") && b.IsKeyword("double")) || (a.IsKeyword("double") && b.IsKeyword("long")) {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, cppast.SpanOf(a, b),
				"'long double' shall not be used").Build())
			pos++
		}
	}
	return diags, nil
}

// integerTypeKeywords are the basic integer type specifiers.
var integerTypeKeywords = map[string]bool{
	"short": true, "int": true, "long": true, "signed": true, "unsigned": true,
}

// FixedWidthIntegerRule flags basic integer types in favour of the
// <cstdint> fixed width typedefs.
type FixedWidthIntegerRule struct {
	lint.BaseRule
}

// NewFixedWidthIntegerRule creates the fixed-width-integers rule. It is
// disabled by default.
func NewFixedWidthIntegerRule() *FixedWidthIntegerRule {
	return &FixedWidthIntegerRule{
		BaseRule: lint.NewBaseRule("A3-9-1", "fixed-width-integers",
			"Fixed width integer types from <cstdint> shall be used in place of the basic numerical types",
			catBasicConcepts, config.SeverityWarning, false).Disabled(),
	}
}

// Apply reports each run of integer type keywords once. The int return
// type of main and long double are exempt.
func (r *FixedWidthIntegerRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	code := ctx.Nodes().CodeTokens()
	var diags []lint.Diagnostic
	for pos := 0; pos < len(code); pos++ {
		first := ctx.Token(code[pos])
		if first.Kind != cppast.TokKeyword || !integerTypeKeywords[first.Text] {
			continue
		}
		end := pos
		for end+1 < len(code) {
			tok := ctx.Token(code[end+1])
			if tok.Kind != cppast.TokKeyword || !integerTypeKeywords[tok.Text] {
				break
			}
			end++
		}
		last := ctx.Token(code[end])
		_, next := codeNeighbours(ctx, code, end)
		prev, _ := codeNeighbours(ctx, code, pos)
		exempt := next.IsKeyword("double") || prev.IsKeyword("double") ||
			(next.Kind == cppast.TokIdentifier && next.Text == "main")
		if !exempt {
			parts := make([]string, 0, end-pos+1)
			for q := pos; q <= end; q++ {
				parts = append(parts, ctx.Token(code[q]).Text)
			}
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, cppast.SpanOf(first, last),
				fmt.Sprintf("basic type '%s' used instead of a fixed width integer type", strings.Join(parts, " "))).
				Build())
		}
		pos = end
	}
	return diags, nil
}
