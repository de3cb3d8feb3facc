package feed

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulsefeed/backend/internal/repository"
)

// AudienceResolver computes the set of authors whose posts are eligible
// to appear in a user's feed: the user plus everyone they follow.
type AudienceResolver struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

func NewAudienceResolver(users repository.UserRepository, follows repository.FollowRepository) *AudienceResolver {
	return &AudienceResolver{users: users, follows: follows}
}

// AudienceFor returns the audience set for userID. An unknown user is
// ErrUserNotFound, never a silent empty set — an empty audience would
// be indistinguishable from a global feed downstream.
func (r *AudienceResolver) AudienceFor(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := r.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	followees, err := r.follows.FolloweesOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	return append(followees, userID), nil
}
