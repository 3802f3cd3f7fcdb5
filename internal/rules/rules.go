// Package rules evaluates keyword rules against announcement text.
package rules

import (
	"strings"

	"github.com/kkyungseo/support-project-radar/internal/item"
)

// Group is a named set of candidate keywords with OR semantics: one hit
// satisfies the group.
type Group struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// RuleSet holds the full keyword configuration. An item matches when any
// always-include keyword hits, or when every must-match group has at least
// one hit. No groups and no always-include hit means no match; an empty
// ruleset never defaults to include-everything.
type RuleSet struct {
	// MatchFields selects which item fields feed the searchable text.
	// Empty means title, summary and content.
	MatchFields []string `yaml:"match_fields"`

	AlwaysInclude []string `yaml:"always_include_if_any"`
	MustMatch     []Group  `yaml:"must_match_any"`
}

var defaultMatchFields = []string{"title", "summary", "content"}

// Evaluate reports whether the item matches and which keywords hit. Matched
// keywords are returned in rule order, de-duplicated. Matching is plain
// case-folded substring search, no stemming.
func (rs RuleSet) Evaluate(it item.Item) (bool, []string) {
	text := strings.ToLower(rs.searchText(it))

	if hits := matchGroup(text, rs.AlwaysInclude); len(hits) > 0 {
		return true, hits
	}

	if len(rs.MustMatch) == 0 {
		return false, nil
	}

	var all []string
	seen := make(map[string]bool)
	for _, g := range rs.MustMatch {
		hits := matchGroup(text, g.Keywords)
		if len(hits) == 0 {
			return false, nil
		}
		for _, kw := range hits {
			if !seen[kw] {
				seen[kw] = true
				all = append(all, kw)
			}
		}
	}
	return true, all
}

func (rs RuleSet) searchText(it item.Item) string {
	fields := rs.MatchFields
	if len(fields) == 0 {
		fields = defaultMatchFields
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "title":
			parts = append(parts, it.Title)
		case "summary":
			parts = append(parts, it.Summary)
		case "content":
			parts = append(parts, it.Content)
		case "link", "url":
			parts = append(parts, it.Link)
		}
	}
	return strings.Join(parts, "\n")
}

// matchGroup returns the keywords that occur in text, keeping group order.
// A keyword hitting several fields still counts once.
func matchGroup(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		k := strings.TrimSpace(kw)
		if k == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(k)) {
			hits = append(hits, kw)
		}
	}
	return hits
}
