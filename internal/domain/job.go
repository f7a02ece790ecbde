package domain

import "time"

// FeedEntry is one item read from the remote job feed. Missing sub-fields are
// empty strings, never absent.
type FeedEntry struct {
	Title       string
	Link        string
	Description string
	PublishedAt string
	GUID        string
	Source      string
}

type JobRecord struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Link        string    `db:"link" json:"link"`
	Description string    `db:"description" json:"description"`
	Content     string    `db:"content" json:"content"`
	PubDate     string    `db:"pub_date" json:"pubDate"`
	Source      string    `db:"source" json:"source"`
	DateAdded   string    `db:"date_added" json:"dateAdded"`
	Processed   bool      `db:"processed" json:"processed"`
	AddedAt     time.Time `db:"added_at" json:"addedAt"`
	AddedBy     *string   `db:"added_by" json:"addedBy,omitempty"`
}
