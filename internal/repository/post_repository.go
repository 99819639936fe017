package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proconnect/backend/internal/models"
	appErr "github.com/proconnect/backend/pkg/errors"
)

type PostRepository interface {
	BaseRepository[models.Post]
	List(ctx context.Context, skip, limit int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	Like(ctx context.Context, postID, userID uuid.UUID) error
	Unlike(ctx context.Context, postID, userID uuid.UUID) error
	IsLikedBy(ctx context.Context, postID, userID uuid.UUID) (bool, error)
	DeleteCascade(ctx context.Context, postID uuid.UUID) error
}

type postRepository struct {
	BaseRepository[models.Post]
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{BaseRepository: NewBaseRepository[models.Post](db), db: db}
}

func (r *postRepository) List(ctx context.Context, skip, limit int) ([]models.Post, error) {
	var out []models.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list posts failed")
	}
	return out, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	var out []models.Post
	if err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list posts by author failed")
	}
	return out, nil
}

// Like adds userID to the post's liker set and bumps the counter, as one
// transaction. The membership insert is a no-op when the row already exists,
// and the counter only moves when a row was actually inserted, so repeated
// likes from the same user leave the post unchanged.
func (r *postRepository) Like(ctx context.Context, postID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{PostID: postID, UserID: userID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", postID).
			Update("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "like post failed")
	}
	return nil
}

// Unlike removes userID from the liker set; the counter only moves when a
// membership row was actually deleted and never drops below zero.
func (r *postRepository) Unlike(ctx context.Context, postID, userID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Post{}).
			Where("id = ? AND likes > 0", postID).
			Update("likes", gorm.Expr("likes - 1")).Error
	})
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "unlike post failed")
	}
	return nil
}

func (r *postRepository) IsLikedBy(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error; err != nil {
		return false, appErr.Wrap(err, appErr.CodeInternal, "check like failed")
	}
	return cnt > 0, nil
}

// DeleteCascade removes a post together with its comments and likes so no
// orphaned rows survive the post.
func (r *postRepository) DeleteCascade(ctx context.Context, postID uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, "id = ?", postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return appErr.New(appErr.CodeNotFound, "post not found")
		}
		return nil
	})
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return err
		}
		return appErr.Wrap(err, appErr.CodeInternal, "delete post failed")
	}
	return nil
}
