package profile

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the public display identity of a user, resolved through an
// external directory keyed by the stable user id. FullName doubles as the
// legal name matched against typed signatures.
type Profile struct {
	UserID    string `json:"user_id"`
	FullName  string `json:"full_name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

// Directory is the identity collaborator. Lookups are best-effort on the
// read side: a missing profile must degrade to a placeholder, never fail an
// aggregation.
type Directory interface {
	Get(ctx context.Context, userID string) (*Profile, error)
}

// Placeholder stands in for a profile the directory could not resolve.
func Placeholder(userID string) *Profile {
	return &Profile{UserID: userID, FullName: "Unknown user", Handle: ""}
}
