package models

import (
	"time"

	"github.com/google/uuid"
)

// PostDetail is a post together with every category linked to it.
type PostDetail struct {
	Post
	SafeContent string        `json:"safeContent"`
	Categories  []CategoryRef `json:"categories"`
}

// NewPostDetail denormalizes a post row and its resolved categories.
// Categories is always non-nil so an uncategorized post serializes as [].
func NewPostDetail(p Post, categories []Category) PostDetail {
	return PostDetail{
		Post:       p,
		Categories: CategoryRefs(categories),
	}
}

// PostSummary is the list-view shape: a plain-text excerpt and at most one category.
type PostSummary struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Excerpt       string        `json:"excerpt"`
	CoverImageURL string        `json:"coverImageURL"`
	CreatedAt     time.Time     `json:"createdAt"`
	Categories    []CategoryRef `json:"categories"`
}
