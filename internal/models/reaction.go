package models

import "time"

// ReactionKind is the kind of a reaction left on a post.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "LIKE"
	ReactionDislike ReactionKind = "DISLIKE"
)

// Valid reports whether the kind is one of the two supported values.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// Reaction represents one user's reaction to one post.
//
// The composite unique index on (post_id, user_id) is load-bearing: the
// toggle state machine stores its entire state in this single row, and
// the database constraint is what makes a racing double-insert fail
// instead of silently producing two rows. No DeletedAt column here —
// a toggle-off must hard-delete the row so the unique pair is free for
// the next reaction.
type Reaction struct {
	ID     uint         `gorm:"primaryKey"`
	PostID uint         `gorm:"not null;uniqueIndex:idx_reaction_post_user"`
	UserID uint         `gorm:"not null;uniqueIndex:idx_reaction_post_user"`
	Kind   ReactionKind `gorm:"size:20;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
