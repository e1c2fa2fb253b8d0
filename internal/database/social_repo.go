package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakmpar/newsforge/internal/models"
)

type LikeRepo struct {
	db *gorm.DB
}

// Toggle likes the post when no like exists and removes the like otherwise.
// Returns true when the post is liked after the call.
func (r *LikeRepo) Toggle(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	db := r.db.WithContext(ctx)

	var existing models.Like
	err := db.First(&existing, "user_id = ? AND post_id = ?", userID, postID).Error
	switch {
	case err == nil:
		if err := db.Delete(&existing).Error; err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{UserID: userID, PostID: postID}
		if err := db.Create(&like).Error; err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// Liked reports whether the user has liked the post.
func (r *LikeRepo) Liked(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

type CommentRepo struct {
	db *gorm.DB
}

func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// Recent returns the newest active comments on a post, author preloaded.
func (r *CommentRepo) Recent(ctx context.Context, postID uuid.UUID, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepo) Count(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}

type ShareRepo struct {
	db *gorm.DB
}

// Add records a share once per user, post and platform. Repeats are
// accepted silently.
func (r *ShareRepo) Add(ctx context.Context, userID, postID uuid.UUID, platform string) error {
	db := r.db.WithContext(ctx)

	var count int64
	err := db.Model(&models.Share{}).
		Where("user_id = ? AND post_id = ? AND platform = ?", userID, postID, platform).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	share := models.Share{UserID: userID, PostID: postID, Platform: platform}
	return db.Create(&share).Error
}
