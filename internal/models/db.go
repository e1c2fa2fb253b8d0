package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can create posts and interact with them.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username     string    `json:"username" gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Bio          string    `json:"bio,omitempty" gorm:"type:text"`
	ProfileImage string    `json:"profile_image,omitempty" gorm:"type:varchar(255)"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`

	Posts    []Post    `json:"-" gorm:"foreignKey:UserID"`
	Likes    []Like    `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
}

// Post is a blog post, either written by a user or produced by the
// content-generation pipeline (IsAutoGenerated).
type Post struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	Description     string    `json:"description,omitempty" gorm:"type:varchar(500)"`
	ImageURL        string    `json:"image_url,omitempty" gorm:"type:varchar(500)"`
	Tags            string    `json:"tags,omitempty" gorm:"type:varchar(200)"`
	Category        string    `json:"category,omitempty" gorm:"type:varchar(100)"`
	Status          string    `json:"status" gorm:"type:varchar(20);default:published"`
	IsFeatured      bool      `json:"is_featured" gorm:"default:false"`
	IsAutoGenerated bool      `json:"is_auto_generated" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	PublishedAt     time.Time `json:"published_at"`

	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	Author User      `json:"-" gorm:"foreignKey:UserID"`

	Likes    []Like    `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Shares   []Share   `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Like records a user liking a post; one row per user per post.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_post_like"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a comment on a post; ParentID links threaded replies.
type Comment struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null"`
	PostID    uuid.UUID  `json:"post_id" gorm:"type:uuid;not null"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" gorm:"type:uuid"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Author User `json:"-" gorm:"foreignKey:UserID"`
}

// Share records a user sharing a post on a platform, once per platform.
type Share struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null"`
	PostID    uuid.UUID `json:"post_id" gorm:"type:uuid;not null"`
	Platform  string    `json:"platform" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at"`
}

// Category groups posts for browsing.
type Category struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

// AutoPostInput is the payload the generation pipeline hands to the
// persistence layer for each produced post.
type AutoPostInput struct {
	Title       string
	HTMLContent string
	Description string
	ImageURL    string
	Category    string
	Tags        string
	AuthorID    uuid.UUID
}
