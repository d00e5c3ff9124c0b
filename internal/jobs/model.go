package jobs

import "time"

// StoredJob is a persisted job posting captured either from a pasted
// description or fetched from a URL.
type StoredJob struct {
	ID        string
	Title     string
	Company   string
	URL       string
	Content   string
	CreatedAt time.Time
}
