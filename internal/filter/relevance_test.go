package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobverse/internal/domain"
)

const validLink = "https://remoteok.io/remote-jobs/1"

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name     string
		entry    domain.FeedEntry
		expected bool
	}{
		{
			name:     "no predicate matches",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Keep the office running smoothly."},
			expected: false,
		},
		{
			name:     "title keyword",
			entry:    domain.FeedEntry{Title: "Senior BACKEND Engineer", Link: validLink},
			expected: true,
		},
		{
			name:     "title keyword full stack",
			entry:    domain.FeedEntry{Title: "Full Stack Engineer", Link: validLink},
			expected: true,
		},
		{
			name:     "content keyword any case",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Experience with DJANGO preferred"},
			expected: true,
		},
		{
			name:     "content Full Stack with trailing space",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Full Stack role"},
			expected: true,
		},
		{
			name:     "content full stack lower case without keyword",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "full stack role"},
			expected: false,
		},
		{
			name:     "content tab Python",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Skills:\tPython"},
			expected: true,
		},
		{
			name:     "content Python anywhere",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Scripting in Python"},
			expected: true,
		},
		{
			name:     "content python lower case",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "scripting in python"},
			expected: false,
		},
		{
			name:     "content Tech case sensitive",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "FinTech company"},
			expected: true,
		},
		{
			name:     "content tech lower case",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "fintech company"},
			expected: false,
		},
		{
			name:     "rupee salary alone",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Pay: ₹1200 per day"},
			expected: true,
		},
		{
			name:     "rupee salary with space",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Pay: ₹ 45000"},
			expected: true,
		},
		{
			name:     "rupee with too few digits",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Pay: ₹120"},
			expected: false,
		},
		{
			name:     "INR salary",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "INR 50000 monthly"},
			expected: true,
		},
		{
			name:     "stipend followed by digits",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Monthly STIPEND of about 15000"},
			expected: true,
		},
		{
			name:     "stipend without digits",
			entry:    domain.FeedEntry{Title: "Office Manager", Link: validLink, Description: "Stipend provided"},
			expected: false,
		},
		{
			name:     "all predicates but link not http",
			entry:    domain.FeedEntry{Title: "Software Developer", Link: "ftp://example.com/job", Description: "Python Tech ₹1200"},
			expected: false,
		},
		{
			name:     "empty link",
			entry:    domain.FeedEntry{Title: "Software Developer", Description: "Python"},
			expected: false,
		},
		{
			name:     "plain http link",
			entry:    domain.FeedEntry{Title: "Software Developer", Link: "http://example.com/job"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRelevant(tt.entry))
		})
	}
}

func TestFilter_PreservesOrder(t *testing.T) {
	entries := []domain.FeedEntry{
		{Title: "Software Engineer", Link: "https://example.com/1"},
		{Title: "Office Manager", Link: "https://example.com/2", Description: "nothing relevant"},
		{Title: "ML Engineer", Link: "https://example.com/3"},
		{Title: "AI Researcher", Link: "not-a-url"},
	}

	got := Filter(entries)

	assert.Len(t, got, 2)
	assert.Equal(t, "https://example.com/1", got[0].Link)
	assert.Equal(t, "https://example.com/3", got[1].Link)
}

func TestFilter_Empty(t *testing.T) {
	assert.Empty(t, Filter(nil))
}
