// Package filter decides which feed entries are relevant job listings.
//
// Six keyword and pattern predicates are OR-combined, and the link must start
// with "http". The rules are permissive: an entry whose description merely
// contains "Tech" passes.
package filter

import (
	"regexp"
	"strings"

	"jobverse/internal/domain"
)

var (
	titleKeywords   = regexp.MustCompile(`(?i)(software|developer|backend|full stack|ml|ai)`)
	contentKeywords = regexp.MustCompile(`(?i)(machine learning|deep learning|llm|gen ai|chatgpt|django|react)`)
	salaryPattern   = regexp.MustCompile(`(₹\s?\d{4,6}|INR\s?\d{4,6}|(?i:stipend).*\d{4,6})`)
)

// IsRelevant reports whether the entry passes the relevance rules.
func IsRelevant(entry domain.FeedEntry) bool {
	if !strings.HasPrefix(entry.Link, "http") {
		return false
	}

	title := strings.ToLower(entry.Title)
	content := entry.Description

	return titleKeywords.MatchString(title) ||
		contentKeywords.MatchString(content) ||
		strings.Contains(content, "Full Stack ") ||
		strings.Contains(content, "\tPython") || strings.Contains(content, "Python") ||
		strings.Contains(content, "Tech") ||
		salaryPattern.MatchString(content)
}

// Filter returns the relevant entries, preserving order.
func Filter(entries []domain.FeedEntry) []domain.FeedEntry {
	var out []domain.FeedEntry
	for _, e := range entries {
		if IsRelevant(e) {
			out = append(out, e)
		}
	}
	return out
}
