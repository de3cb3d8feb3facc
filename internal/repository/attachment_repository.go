package repository

import (
	"context"

	"gorm.io/gorm"

	"pulsefeed/backend/internal/models"
)

// AttachmentRepository stores attachment references. The bytes behind
// StorageKey live elsewhere and are not this layer's concern.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	Delete(ctx context.Context, id uint) error
}

type attachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Attachment{}, id).Error
}
