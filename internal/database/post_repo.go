package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sakmpar/newsforge/internal/models"
)

type PostRepo struct {
	db *gorm.DB

	// autoAuthor receives generated posts; set once at startup.
	autoAuthor uuid.UUID
}

// SetAutoAuthor assigns the account generated posts are attributed to.
func (r *PostRepo) SetAutoAuthor(id uuid.UUID) { r.autoAuthor = id }

func (r *PostRepo) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPage returns one page of published posts, newest first, with the
// total count of published posts.
func (r *PostRepo) FindPage(ctx context.Context, page, perPage int) ([]models.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", "published")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Preload("Author").
		Order("published_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	return posts, total, err
}

// CreateAutoPost persists a pipeline-generated post under the auto author.
func (r *PostRepo) CreateAutoPost(ctx context.Context, input models.AutoPostInput) error {
	authorID := input.AuthorID
	if authorID == uuid.Nil {
		authorID = r.autoAuthor
	}

	post := models.Post{
		Title:           input.Title,
		Content:         input.HTMLContent,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		Tags:            input.Tags,
		Category:        input.Category,
		Status:          "published",
		IsAutoGenerated: true,
		PublishedAt:     time.Now(),
		UserID:          authorID,
	}
	return r.db.WithContext(ctx).Create(&post).Error
}

// Counts returns like, comment and share totals for a post.
func (r *PostRepo) Counts(ctx context.Context, postID uuid.UUID) (likes, comments, shares int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
		return
	}
	if err = db.Model(&models.Comment{}).Where("post_id = ? AND is_active = ?", postID, true).Count(&comments).Error; err != nil {
		return
	}
	err = db.Model(&models.Share{}).Where("post_id = ?", postID).Count(&shares).Error
	return
}
