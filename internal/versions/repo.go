package versions

import "context"

// Repo defines persistence operations for versions and their view records.
type Repo interface {
	Create(ctx context.Context, v Version) error
	GetByID(ctx context.Context, versionID string) (Version, error)
	GetByPublicToken(ctx context.Context, token string) (Version, error)
	Delete(ctx context.Context, versionID string) error
	IncrementViews(ctx context.Context, versionID string) error
	CreateView(ctx context.Context, view View) error
}
