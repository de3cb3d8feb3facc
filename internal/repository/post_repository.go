package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"pulsefeed/backend/internal/models"
)

// BoundOp is the comparison operator of an id bound.
type BoundOp string

const (
	// BoundBefore selects posts with an identifier strictly less than the value.
	BoundBefore BoundOp = "<"
	// BoundAfter selects posts with an identifier strictly greater than the value.
	BoundAfter BoundOp = ">"
)

// IDBound is an exclusive comparison against the post primary key. The
// referenced post itself is never included, and the referenced id does
// not have to exist — "id > 999999" simply matches nothing.
type IDBound struct {
	Op    BoundOp
	Value uint
}

// PostQuery describes one feed predicate: an optional author set and an
// optional exclusive id bound, ANDed together. A nil AuthorIDs means
// "all authors" (the global feed); a non-nil empty set matches nothing.
//
// Every feed shape — global feed, personal feed, single user's posts,
// list or count — is expressed through this one struct so the predicate
// is built in exactly one place.
type PostQuery struct {
	AuthorIDs []uint
	Bound     *IDBound
}

// PostRepository is the post store behind the feed engine.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	// List returns the posts matching q, newest first. A limit <= 0
	// means no limit.
	List(ctx context.Context, q PostQuery, offset, limit int) ([]models.Post, error)
	// Count returns the cardinality of the match without materializing rows.
	Count(ctx context.Context, q PostQuery) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

// scoped translates a PostQuery into a gorm query. List and Count both
// go through here so they can never disagree about the predicate.
func (r *postRepository) scoped(ctx context.Context, q PostQuery) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&models.Post{})
	if q.AuthorIDs != nil {
		tx = tx.Where("author_id IN ?", q.AuthorIDs)
	}
	if q.Bound != nil {
		tx = tx.Where(fmt.Sprintf("id %s ?", q.Bound.Op), q.Bound.Value)
	}
	return tx
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Attachment").
		Preload("Reactions").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, q PostQuery, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	tx := r.scoped(ctx, q).
		Preload("Author").
		Preload("Attachment").
		Preload("Reactions").
		Order("id DESC")
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count(ctx context.Context, q PostQuery) (int64, error) {
	var cnt int64
	err := r.scoped(ctx, q).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
