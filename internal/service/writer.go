package service

import (
	"encoding/base64"
	"regexp"
	"strings"
	"time"

	"jobverse/internal/domain"
)

const (
	jobIDLength          = 20
	maxDescriptionLength = 1980
	dateAddedLayout      = "02 Jan 2006"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	htmlTag         = regexp.MustCompile(`<[^>]*>`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// JobID derives the stable record id from the first non-empty of link, guid
// and title. The same link always yields the same id.
func JobID(link, guid, title string) string {
	key := link
	if key == "" {
		key = guid
	}
	if key == "" {
		key = title
	}

	id := nonAlphanumeric.ReplaceAllString(base64.StdEncoding.EncodeToString([]byte(key)), "")
	if len(id) > jobIDLength {
		id = id[:jobIDLength]
	}
	return id
}

// CleanDescription strips markup, collapses whitespace and caps the length,
// marking truncation with "...".
func CleanDescription(s string) string {
	s = htmlTag.ReplaceAllString(s, " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > maxDescriptionLength {
		return string(runes[:maxDescriptionLength]) + "..."
	}
	return s
}

func toJobRecord(entry domain.FeedEntry, defaultSource string, now time.Time) domain.JobRecord {
	source := entry.Source
	if source == "" {
		source = defaultSource
	}

	return domain.JobRecord{
		ID:          JobID(entry.Link, entry.GUID, entry.Title),
		Title:       entry.Title,
		Link:        entry.Link,
		Description: CleanDescription(entry.Description),
		Content:     entry.Description,
		PubDate:     entry.PublishedAt,
		Source:      source,
		DateAdded:   now.Format(dateAddedLayout),
		Processed:   true,
		AddedAt:     now,
	}
}
