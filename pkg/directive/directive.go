// Package directive extracts inline suppression directives from comment
// tokens.
//
// Recognised surfaces, in either // or /* */ comments:
//
//	autosar-disable-line <RULE-ID|all>
//	autosar-disable-next-line <RULE-ID|all>
//	autosar-disable <RULE-ID|all>   (opens a region)
//	autosar-enable <RULE-ID|all>    (closes a region)
//	suppress-line: <RULE-ID>
//	suppress-next-line: <RULE-ID>
//	NOLINT(<RULE-ID>[,<RULE-ID>...])
//	NOLINTNEXTLINE(<RULE-ID>[,<RULE-ID>...])
//
// The NOLINT forms follow clang-tidy's spelling; a bare NOLINT without a
// rule list is left to clang-tidy. Malformed directives are ignored. One comment may carry several
// directives.
package directive

import (
	"regexp"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// All is the filter that matches every rule.
const All = "all"

// Directive keywords.
const (
	KeywordDisableLine     = "autosar-disable-line"
	KeywordDisableNextLine = "autosar-disable-next-line"
	KeywordDisable         = "autosar-disable"
	KeywordEnable          = "autosar-enable"
	KeywordSuppressLine     = "suppress-line:"
	KeywordSuppressNextLine = "suppress-next-line:"
	KeywordNolint           = "NOLINT"
	KeywordNolintNextLine   = "NOLINTNEXTLINE"
)

// Scope is how a request's target line was derived.
type Scope uint8

// Scope kinds.
const (
	ThisLine Scope = iota
	NextLine
	BlockStart
	BlockEnd
)

var scopeNames = [...]string{
	ThisLine:   "this-line",
	NextLine:   "next-line",
	BlockStart: "block-start",
	BlockEnd:   "block-end",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Request is one suppression directive bound to a line.
type Request struct {
	Scope Scope

	// Line is the 1-based line holding the directive keyword.
	Line int

	// TargetLine is the line the request applies to. For block scopes it
	// equals Line.
	TargetLine int

	// RuleID is a catalog rule ID or All.
	RuleID string

	// Keyword is the directive keyword as written.
	Keyword string
}

// Matches reports whether the request's filter covers ruleID.
func (r Request) Matches(ruleID string) bool {
	return r.RuleID == All || r.RuleID == ruleID
}

var ruleIDPattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9]+-[0-9]+-[0-9]+$`)

// IsRuleID reports whether s has the catalog identifier shape, e.g. A5-2-1.
func IsRuleID(s string) bool {
	return ruleIDPattern.MatchString(s)
}

// Extract scans every comment token of file and returns the requests in
// source order.
func Extract(file *cppast.FileSnapshot) []Request {
	var out []Request
	for i, tok := range file.Tokens {
		if tok.Kind != cppast.TokComment {
			continue
		}
		standalone := isStandalone(file, i)
		for _, found := range ParseComment(tok.Text) {
			line, _ := file.LineAt(tok.StartOffset + found.Offset)
			if line == 0 {
				continue
			}
			out = append(out, resolve(found, line, tok.End.Line, standalone))
		}
	}
	return out
}

func resolve(found Found, line, commentEndLine int, standalone bool) Request {
	req := Request{Line: line, TargetLine: line, RuleID: found.RuleID, Keyword: found.Keyword}
	switch found.Keyword {
	case KeywordDisableNextLine, KeywordSuppressNextLine, KeywordNolintNextLine:
		req.Scope = NextLine
		req.TargetLine = commentEndLine + 1
	case KeywordSuppressLine:
		if standalone {
			req.Scope = NextLine
			req.TargetLine = commentEndLine + 1
		}
	case KeywordDisable:
		req.Scope = BlockStart
	case KeywordEnable:
		req.Scope = BlockEnd
	}
	return req
}

// isStandalone reports whether comment token i has its lines to itself:
// no token ends on its first line or starts on its last.
func isStandalone(file *cppast.FileSnapshot, i int) bool {
	tok := file.Tokens[i]
	if i > 0 && file.Tokens[i-1].End.Line >= tok.Start.Line {
		return false
	}
	return i+1 == len(file.Tokens) || file.Tokens[i+1].Start.Line > tok.End.Line
}

// Found is a directive located inside one comment's text.
type Found struct {
	Keyword string
	RuleID  string

	// Offset is the byte offset of the keyword within the comment text.
	Offset int
}

// ParseComment returns the well-formed directives in a raw comment,
// delimiters included.
func ParseComment(text string) []Found {
	body, start := stripDelimiters(text)
	words := splitWords(body)

	var out []Found
	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w.text {
		case KeywordDisableLine, KeywordDisableNextLine, KeywordDisable, KeywordEnable:
			if i+1 < len(words) && isFilter(words[i+1].text) {
				out = append(out, Found{Keyword: w.text, RuleID: words[i+1].text, Offset: start + w.offset})
				i++
			}
			continue
		}

		if ids, keyword, ok := nolintIDs(w.text); ok {
			for _, id := range ids {
				out = append(out, Found{Keyword: keyword, RuleID: id, Offset: start + w.offset})
			}
			continue
		}

		for _, keyword := range []string{KeywordSuppressLine, KeywordSuppressNextLine} {
			rest, ok := strings.CutPrefix(w.text, keyword)
			if !ok {
				continue
			}
			if rest == "" && i+1 < len(words) {
				rest = words[i+1].text
				i++
			}
			if IsRuleID(rest) {
				out = append(out, Found{Keyword: keyword, RuleID: rest, Offset: start + w.offset})
			}
			break
		}
	}
	return out
}

// nolintIDs parses NOLINT(...) or NOLINTNEXTLINE(...). Names in the list
// that are not catalog IDs belong to other tools and are skipped.
func nolintIDs(w string) ([]string, string, bool) {
	keyword, list, ok := strings.Cut(w, "(")
	if !ok || (keyword != KeywordNolint && keyword != KeywordNolintNextLine) {
		return nil, "", false
	}
	list, ok = strings.CutSuffix(list, ")")
	if !ok {
		return nil, "", false
	}
	var ids []string
	for _, name := range strings.Split(list, ",") {
		if IsRuleID(name) {
			ids = append(ids, name)
		}
	}
	return ids, keyword, len(ids) > 0
}

func isFilter(s string) bool {
	return s == All || IsRuleID(s)
}

// stripDelimiters removes the comment markers and returns the body with
// its offset in text.
func stripDelimiters(text string) (string, int) {
	switch {
	case strings.HasPrefix(text, "//"):
		return text[2:], 2
	case strings.HasPrefix(text, "/*"):
		body := strings.TrimSuffix(text[2:], "*/")
		return body, 2
	default:
		return text, 0
	}
}

type word struct {
	text   string
	offset int
}

func splitWords(s string) []word {
	var out []word
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && !isSpace(s[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, word{text: s[start:i], offset: start})
			start = -1
		}
	}
	return out
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', '\\':
		return true
	}
	return false
}
