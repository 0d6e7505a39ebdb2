package profilemock

import (
	"context"

	domain "peerlend-backend/internal/domain/profile"
)

var _ domain.Directory = (*Directory)(nil)

// Directory is a map-backed identity collaborator for tests. Unknown ids
// return profile.ErrNotFound.
type Directory struct {
	Profiles map[string]*domain.Profile
	GetFn    func(ctx context.Context, userID string) (*domain.Profile, error)
}

func WithNames(names map[string]string) *Directory {
	d := &Directory{Profiles: make(map[string]*domain.Profile, len(names))}
	for id, name := range names {
		d.Profiles[id] = &domain.Profile{UserID: id, FullName: name}
	}
	return d
}

func (m *Directory) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}
