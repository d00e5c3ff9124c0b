package files

import "time"

// StoredFile is a persisted record of an uploaded resume document plus its
// extracted plain text. Immutable after creation.
type StoredFile struct {
	ID          string
	Filename    string
	SizeBytes   int64
	MimeType    string
	StoragePath string
	TextContent string
	CreatedAt   time.Time
}
