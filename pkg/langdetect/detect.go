// Package langdetect decides whether a file holds C or C++ source. Known
// extensions decide directly; extension-less headers (the standard library
// style <vector>) are sniffed with go-enry and a few preprocessor and
// keyword markers.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a detected source language.
type Language string

const (
	Unknown Language = ""
	C       Language = "c"
	CPP     Language = "cpp"
)

// sniffLimit bounds the prefix of a file examined by content heuristics.
const sniffLimit = 16 * 1024

var extensions = map[string]Language{
	".c":   C,
	".h":   CPP,
	".cpp": CPP,
	".cc":  CPP,
	".cxx": CPP,
	".c++": CPP,
	".cp":  CPP,
	".hpp": CPP,
	".hh":  CPP,
	".hxx": CPP,
	".h++": CPP,
	".ipp": CPP,
	".tpp": CPP,
	".inl": CPP,
	".ixx": CPP,
}

var (
	cppMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*namespace\s+[A-Za-z_][\w:]*\s*\{`),
		regexp.MustCompile(`(?m)^\s*template\s*<`),
		regexp.MustCompile(`(?m)^\s*(class|struct)\s+[A-Za-z_]\w*\s*(final\s*)?[:{]`),
		regexp.MustCompile(`(?m)^\s*#\s*include\s*<[a-z_]+>`),
		regexp.MustCompile(`\bstd::`),
		regexp.MustCompile(`(?m)^\s*using\s+(namespace\s+)?[A-Za-z_]`),
	}
	cMarker = regexp.MustCompile(`(?m)^\s*#\s*(include|define|ifndef|if|pragma)\b`)
)

// ByExtension maps a path to a language using its extension only.
func ByExtension(path string) Language {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Detect returns the language of the file at path with the given content.
// A known extension wins; otherwise the content decides.
func Detect(path string, content []byte) Language {
	if lang := ByExtension(path); lang != Unknown {
		return lang
	}
	if filepath.Ext(path) != "" || len(content) == 0 {
		return Unknown
	}
	if len(content) > sniffLimit {
		content = content[:sniffLimit]
	}
	if enry.IsBinary(content) {
		return Unknown
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe || lang != "" {
		return Unknown
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return fromEnry(lang)
	}
	return sniff(content)
}

// IsSource reports whether the file at path is C or C++ source.
func IsSource(path string, content []byte) bool {
	return Detect(path, content) != Unknown
}

func sniff(content []byte) Language {
	for _, re := range cppMarkers {
		if re.Match(content) {
			return CPP
		}
	}
	if !cMarker.Match(content) && !bytes.Contains(content, []byte(";")) {
		return Unknown
	}
	lang, _ := enry.GetLanguageByClassifier(content, []string{"C", "C++", "Objective-C"})
	if l := fromEnry(lang); l != Unknown {
		return l
	}
	if cMarker.Match(content) {
		return CPP
	}
	return Unknown
}

func fromEnry(lang string) Language {
	switch lang {
	case "C++":
		return CPP
	case "C":
		return C
	default:
		return Unknown
	}
}
