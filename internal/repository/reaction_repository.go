package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pulsefeed/backend/internal/models"
)

// ReactionRepository is the reaction store. The toggle state machine in
// the feed package is the only caller that creates or mutates rows.
type ReactionRepository interface {
	// FindOne returns the single reaction for (postID, userID), or nil
	// if the user has not reacted to the post.
	FindOne(ctx context.Context, postID, userID uint) (*models.Reaction, error)
	Insert(ctx context.Context, reaction *models.Reaction) error
	UpdateKind(ctx context.Context, id uint, kind models.ReactionKind) error
	Delete(ctx context.Context, id uint) error
	// DeleteByPost removes all reactions on a post (post-delete cascade).
	DeleteByPost(ctx context.Context, postID uint) error
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository { return &reactionRepository{db: db} }

func (r *reactionRepository) FindOne(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Insert(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) UpdateKind(ctx context.Context, id uint, kind models.ReactionKind) error {
	return r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("id = ?", id).
		Update("kind", kind).Error
}

func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error
}

func (r *reactionRepository) DeleteByPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Reaction{}).Error
}
