package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
)

// Post represents a blog article. Categories are linked through PostCategory rows.
type Post struct {
	ID            uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string         `json:"title" db:"title" gorm:"type:text;not null"`
	Content       string         `json:"content" db:"content" gorm:"type:text;not null"`
	CoverImageURL string         `json:"coverImageURL" db:"cover_image_url" gorm:"column:cover_image_url;type:text;not null;default:''"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP;index:idx_posts_created_at"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	Categories    []PostCategory `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

// PostFields holds the writable fields of a post for create and update.
type PostFields struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	CoverImageURL string `json:"coverImageURL"`
}

// Validate rejects empty fields. Every field is required on both create and update.
func (f PostFields) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return errs.NewMissingRequiredFieldError("title")
	case strings.TrimSpace(f.Content) == "":
		return errs.NewMissingRequiredFieldError("content")
	case strings.TrimSpace(f.CoverImageURL) == "":
		return errs.NewMissingRequiredFieldError("coverImageURL")
	}
	return nil
}

// Apply copies the fields onto p.
func (f PostFields) Apply(p *Post) {
	p.Title = f.Title
	p.Content = f.Content
	p.CoverImageURL = f.CoverImageURL
}
