package models

import "gorm.io/gorm"

// Attachment is a reference to an uploaded file belonging to a post.
// Only the reference lives here; the bytes live in whatever storage
// backend the StorageKey points into.
type Attachment struct {
	gorm.Model
	StorageKey  string `gorm:"size:36;unique;not null"`
	FileName    string `gorm:"size:255;not null"`
	ContentType string `gorm:"size:100"`
	Size        int64
}
