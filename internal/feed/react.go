package feed

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"pulsefeed/backend/internal/models"
)

// React applies the three-way reaction toggle for (postID, userID):
//
//	no row            -> insert the requested kind
//	same kind stored  -> delete the row (toggle off)
//	other kind stored -> update the kind in place
//
// Like and dislike are the same operation parameterized by kind; the
// transition logic is shared so the two can never drift apart. The
// single stored row is the entire state of the machine. If two toggles
// race on the same pair, the unique (post_id, user_id) constraint makes
// the second insert fail rather than producing a duplicate row.
func (s *Service) React(ctx context.Context, postID, userID uint, kind models.ReactionKind) error {
	if !kind.Valid() {
		return ErrInvalidReaction
	}

	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	existing, err := s.reactions.FindOne(ctx, postID, userID)
	if err != nil {
		return err
	}

	switch {
	case existing == nil:
		err = s.reactions.Insert(ctx, &models.Reaction{PostID: postID, UserID: userID, Kind: kind})
	case existing.Kind == kind:
		err = s.reactions.Delete(ctx, existing.ID)
	default:
		err = s.reactions.UpdateKind(ctx, existing.ID, kind)
	}
	if err != nil {
		return err
	}

	s.log.Debug("reaction toggled",
		zap.Uint("post_id", postID),
		zap.Uint("user_id", userID),
		zap.String("kind", string(kind)))
	return nil
}
