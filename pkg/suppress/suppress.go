// Package suppress resolves directive requests against diagnostics.
//
// Line requests are held in a map from target line to the set of filters
// active on that line; block regions are kept as line ranges. A request
// whose rule produced nothing on its line has no effect.
package suppress

import (
	"math"

	"github.com/yaklabco/autosarlint/pkg/directive"
)

// region suppresses one filter on lines (open, close].
type region struct {
	open   int
	close  int
	filter string
}

// Index answers "is rule R suppressed on line L" for one file.
type Index struct {
	lines   map[int]map[string]struct{}
	regions []region
}

// NewIndex builds the lookup from requests. Block starts pair with the
// next block end naming the same filter; an end naming "all" closes every
// open region. A region never closed runs to the end of the file. An end
// with no open region is ignored.
func NewIndex(reqs []directive.Request) *Index {
	idx := &Index{lines: make(map[int]map[string]struct{})}
	open := make(map[string]int)
	var order []string

	for _, req := range reqs {
		switch req.Scope {
		case directive.ThisLine, directive.NextLine:
			set, ok := idx.lines[req.TargetLine]
			if !ok {
				set = make(map[string]struct{})
				idx.lines[req.TargetLine] = set
			}
			set[req.RuleID] = struct{}{}
		case directive.BlockStart:
			if _, ok := open[req.RuleID]; !ok {
				open[req.RuleID] = req.TargetLine
				order = append(order, req.RuleID)
			}
		case directive.BlockEnd:
			for _, filter := range order {
				start, ok := open[filter]
				if !ok || (req.RuleID != directive.All && req.RuleID != filter) {
					continue
				}
				idx.regions = append(idx.regions, region{open: start, close: req.TargetLine, filter: filter})
				delete(open, filter)
			}
		}
	}

	for _, filter := range order {
		if start, ok := open[filter]; ok {
			idx.regions = append(idx.regions, region{open: start, close: math.MaxInt, filter: filter})
		}
	}
	return idx
}

// Suppresses reports whether a diagnostic of ruleID starting on line is
// suppressed.
func (idx *Index) Suppresses(line int, ruleID string) bool {
	if idx == nil {
		return false
	}
	if set, ok := idx.lines[line]; ok {
		if _, all := set[directive.All]; all {
			return true
		}
		if _, hit := set[ruleID]; hit {
			return true
		}
	}
	for _, r := range idx.regions {
		if line > r.open && line <= r.close && (r.filter == directive.All || r.filter == ruleID) {
			return true
		}
	}
	return false
}

// Len returns the number of distinct suppressed lines plus regions.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.lines) + len(idx.regions)
}

// Partition splits items into those kept and those suppressed, preserving
// order. key returns an item's start line and rule ID.
func Partition[T any](items []T, idx *Index, key func(T) (int, string)) ([]T, []T) {
	kept := make([]T, 0, len(items))
	var suppressed []T
	for _, item := range items {
		line, ruleID := key(item)
		if idx.Suppresses(line, ruleID) {
			suppressed = append(suppressed, item)
			continue
		}
		kept = append(kept, item)
	}
	return kept, suppressed
}
