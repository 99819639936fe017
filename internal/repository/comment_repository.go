package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proconnect/backend/internal/models"
	appErr "github.com/proconnect/backend/pkg/errors"
)

type CommentRepository interface {
	// CreateWithCount inserts the comment and bumps the post's comment
	// counter in the same transaction.
	CreateWithCount(ctx context.Context, c *models.Comment) error
	ListByPost(ctx context.Context, postID uuid.UUID, skip, limit int) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateWithCount(ctx context.Context, c *models.Comment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", c.PostID).
			Update("comments", gorm.Expr("comments + 1")).Error
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "create comment failed")
	}
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uuid.UUID, skip, limit int) ([]models.Comment, error) {
	var out []models.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list comments failed")
	}
	return out, nil
}
