package runner

import (
	"fmt"

	"github.com/hhatto/gocloc"
)

// countedLanguages are the gocloc language names tallied by CountCode.
var countedLanguages = []string{"C", "C Header", "C++", "C++ Header"}

// CodeStats are line counts over the analysed sources.
type CodeStats struct {
	Files    int
	Code     int
	Comments int
	Blanks   int
}

// CountCode counts code, comment and blank lines of files. Files gocloc
// does not recognise as C or C++ (extension-less headers) are left out.
func CountCode(files []string) (CodeStats, error) {
	if len(files) == 0 {
		return CodeStats{}, nil
	}

	opts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countedLanguages {
		if _, ok := languages.Langs[lang]; ok {
			opts.IncludeLangs[lang] = struct{}{}
		}
	}

	result, err := gocloc.NewProcessor(languages, opts).Analyze(files)
	if err != nil {
		return CodeStats{}, fmt.Errorf("count code lines: %w", err)
	}

	var stats CodeStats
	for _, f := range result.Files {
		stats.Files++
		stats.Code += int(f.Code)
		stats.Comments += int(f.Comments)
		stats.Blanks += int(f.Blanks)
	}
	return stats, nil
}
