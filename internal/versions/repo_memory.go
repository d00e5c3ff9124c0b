package versions

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	versions map[string]Version
	byToken  map[string]string
	views    map[string][]View
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		versions: make(map[string]Version),
		byToken:  make(map[string]string),
		views:    make(map[string][]View),
	}
}

// Create stores a version, enforcing token uniqueness.
func (r *MemoryRepo) Create(ctx context.Context, v Version) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byToken[v.PublicToken]; exists {
		return ErrTokenConflict
	}
	r.versions[v.ID] = v
	r.byToken[v.PublicToken] = v.ID
	return nil
}

// GetByID returns a version by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, versionID string) (Version, error) {
	if err := ctx.Err(); err != nil {
		return Version{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.versions[versionID]
	if !ok {
		return Version{}, ErrNotFound
	}
	return v, nil
}

// GetByPublicToken returns a version by its share token.
func (r *MemoryRepo) GetByPublicToken(ctx context.Context, token string) (Version, error) {
	if err := ctx.Err(); err != nil {
		return Version{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byToken[token]
	if !ok {
		return Version{}, ErrNotFound
	}
	return r.versions[id], nil
}

// Delete removes a version and its view records.
func (r *MemoryRepo) Delete(ctx context.Context, versionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[versionID]
	if !ok {
		return ErrNotFound
	}
	delete(r.versions, versionID)
	delete(r.byToken, v.PublicToken)
	delete(r.views, versionID)
	return nil
}

// IncrementViews bumps the view counter.
func (r *MemoryRepo) IncrementViews(ctx context.Context, versionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[versionID]
	if !ok {
		return ErrNotFound
	}
	v.Views++
	r.versions[versionID] = v
	return nil
}

// CreateView appends one view record.
func (r *MemoryRepo) CreateView(ctx context.Context, view View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[view.VersionID] = append(r.views[view.VersionID], view)
	return nil
}

// ViewsFor returns recorded views for a version, oldest first.
func (r *MemoryRepo) ViewsFor(versionID string) []View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]View, len(r.views[versionID]))
	copy(out, r.views[versionID])
	return out
}

var _ Repo = (*MemoryRepo)(nil)
