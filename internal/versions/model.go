package versions

import "time"

// Version is a saved snapshot of a generated resume and cover letter, with
// optional redacted variants for public sharing.
type Version struct {
	ID                 string
	Title              string
	ResumeHTML         string
	CoverHTML          string
	RedactedResumeHTML string
	RedactedCoverHTML  string
	PublicToken        string
	Views              int64
	IsPublic           bool
	FileID             *string
	JobID              *string
	CreatedAt          time.Time
}

// View is one recorded visit to a shared version page.
type View struct {
	ID        string
	VersionID string
	SessionID string
	Referrer  string
	UserAgent string
	ViewedAt  time.Time
}
