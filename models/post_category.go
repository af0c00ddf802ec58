package models

import (
	"time"

	"github.com/google/uuid"
)

// PostCategory is one row of the post/category join table. The pair is the identity.
type PostCategory struct {
	PostID     uuid.UUID `json:"postId" db:"post_id" gorm:"type:uuid;primaryKey;not null"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id" gorm:"type:uuid;primaryKey;not null;index:idx_post_categories_category_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (PostCategory) TableName() string { return "post_categories" }
