package cppast

// TokenKind classifies a lexical token in C++ source.
type TokenKind uint8

// Token kinds produced by the lexer. Whitespace and newlines are not tokens;
// comments are.
const (
	// TokError marks a malformed region (unterminated literal or comment,
	// stray byte). Later stages treat it as opaque.
	TokError TokenKind = iota

	TokIdentifier
	TokKeyword

	// Literal subtypes.
	TokIntLiteral
	TokFloatLiteral
	TokCharLiteral
	TokStringLiteral

	TokOperator
	TokPunct // ( ) [ ] { } ; , and the like

	// TokComment holds the exact comment text including its delimiters.
	TokComment

	// TokPreprocessor spans one logical directive line (continuations
	// included) up to, but not including, a trailing comment.
	TokPreprocessor
)

var tokenKindNames = [...]string{
	TokError:         "Error",
	TokIdentifier:    "Identifier",
	TokKeyword:       "Keyword",
	TokIntLiteral:    "IntLiteral",
	TokFloatLiteral:  "FloatLiteral",
	TokCharLiteral:   "CharLiteral",
	TokStringLiteral: "StringLiteral",
	TokOperator:      "Operator",
	TokPunct:         "Punct",
	TokComment:       "Comment",
	TokPreprocessor:  "Preprocessor",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Token is a located span of source text. Tokens are immutable once
// produced and referenced by index from syntax nodes.
type Token struct {
	Kind TokenKind

	// Text is the raw source text of the token.
	Text string

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Start is the 1-based position of the first byte.
	Start Position

	// End is the 1-based position just past the last byte.
	End Position
}

// Is reports whether the token is a keyword, operator, punctuator or
// identifier with exactly the given text.
func (t Token) Is(text string) bool {
	switch t.Kind {
	case TokKeyword, TokOperator, TokPunct, TokIdentifier:
		return t.Text == text
	default:
		return false
	}
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == TokKeyword && t.Text == kw
}

// IsLiteral reports whether the token is any literal subtype.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case TokIntLiteral, TokFloatLiteral, TokCharLiteral, TokStringLiteral:
		return true
	default:
		return false
	}
}

// IsLineComment reports whether the token is a // comment.
func (t Token) IsLineComment() bool {
	return t.Kind == TokComment && len(t.Text) >= 2 && t.Text[:2] == "//"
}

// IsBlockComment reports whether the token is a /* */ comment.
func (t Token) IsBlockComment() bool {
	return t.Kind == TokComment && len(t.Text) >= 2 && t.Text[:2] == "/*"
}

// Span returns the line/column range of the token.
func (t Token) Span() SourceSpan {
	return SourceSpan{
		StartLine:   t.Start.Line,
		StartColumn: t.Start.Column,
		EndLine:     t.End.Line,
		EndColumn:   t.End.Column,
	}
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// ValidateTokens checks that tokens are ordered, non-overlapping and lie
// within [0, contentLen).
func ValidateTokens(tokens []Token, contentLen int) bool {
	prev := 0
	for _, tok := range tokens {
		if tok.StartOffset < prev || tok.EndOffset < tok.StartOffset || tok.EndOffset > contentLen {
			return false
		}
		prev = tok.EndOffset
	}
	return true
}
