package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a named tag that posts reference through PostCategory rows.
type Category struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name      string         `json:"name" db:"name" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time      `json:"updatedAt" db:"updated_at" gorm:"type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	Posts     []PostCategory `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Category) TableName() string { return "categories" }

// CategoryRef is the {id, name} shape served to readers.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name}
}

// CategoryRefs maps categories to their reader shape. It never returns nil.
func CategoryRefs(categories []Category) []CategoryRef {
	refs := make([]CategoryRef, 0, len(categories))
	for _, c := range categories {
		refs = append(refs, c.Ref())
	}
	return refs
}
