package models

import "gorm.io/gorm"

// Post represents a single feed item.
//
// The auto-incremented primary key doubles as the feed cursor: IDs are
// assigned in strictly increasing creation order, so ordering by ID is
// ordering by time. The pagination engine depends on this and never
// sorts by CreatedAt.
type Post struct {
	gorm.Model
	AuthorID     uint   `gorm:"not null;index"`
	Content      string `gorm:"not null"`
	AttachmentID *uint

	Author     User        `gorm:"foreignKey:AuthorID"`
	Attachment *Attachment `gorm:"foreignKey:AttachmentID"`
	Reactions  []Reaction  `gorm:"foreignKey:PostID"`
}
