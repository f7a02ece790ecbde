package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobverse/internal/domain"
)

func TestJobID(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		guid     string
		title    string
		expected string
	}{
		{
			name:     "link is used first",
			link:     "https://a.io/x",
			guid:     "guid-1",
			title:    "Title",
			expected: "aHR0cHM6Ly9hLmlvL3g",
		},
		{
			name:     "guid when link empty",
			guid:     "sample-job-1",
			title:    "Title",
			expected: "c2FtcGxlLWpvYi0x",
		},
		{
			name:     "title when link and guid empty",
			title:    "Dev",
			expected: "RGV2",
		},
		{
			name:     "truncated to twenty characters",
			link:     "https://remoteok.io/remote-jobs/123456",
			expected: "aHR0cHM6Ly9yZW1vdGVv",
		},
		{
			name:     "all empty",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JobID(tt.link, tt.guid, tt.title))
		})
	}
}

func TestJobID_Stable(t *testing.T) {
	link := "https://example.com/jobs/42"

	assert.Equal(t, JobID(link, "a", "b"), JobID(link, "c", "d"))
	assert.Len(t, JobID(link, "", ""), 20)
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips tags",
			input:    "<p>Hello<br/>world</p>",
			expected: "Hello world",
		},
		{
			name:     "collapses whitespace",
			input:    "  a \n\n\t b  ",
			expected: "a b",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanDescription(tt.input))
		})
	}
}

func TestCleanDescription_Length(t *testing.T) {
	exact := strings.Repeat("a", 1980)
	assert.Equal(t, exact, CleanDescription(exact))

	over := strings.Repeat("b", 1981)
	got := CleanDescription(over)
	assert.Equal(t, strings.Repeat("b", 1980)+"...", got)
	assert.Len(t, got, 1983)

	multibyte := strings.Repeat("₹", 1981)
	assert.Equal(t, 1983, len([]rune(CleanDescription(multibyte))))
}

func TestToJobRecord(t *testing.T) {
	now := time.Date(2024, time.January, 9, 12, 0, 0, 0, time.UTC)

	rec := toJobRecord(domain.FeedEntry{
		Title:       "Go Developer",
		Link:        "https://example.com/1",
		Description: "<b>Remote</b>",
		PublishedAt: "Tue, 09 Jan 2024 10:00:00 GMT",
	}, "RemoteOK RSS", now)

	assert.Equal(t, JobID("https://example.com/1", "", ""), rec.ID)
	assert.Equal(t, "Remote", rec.Description)
	assert.Equal(t, "<b>Remote</b>", rec.Content)
	assert.Equal(t, "RemoteOK RSS", rec.Source)
	assert.Equal(t, "09 Jan 2024", rec.DateAdded)
	assert.Equal(t, now, rec.AddedAt)
	assert.True(t, rec.Processed)
	assert.Nil(t, rec.AddedBy)
}
