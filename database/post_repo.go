package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// Get returns a post by its ID
func (r *PostRepo) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	return &post, nil
}

// List returns every post ordered by creation time
func (r *PostRepo) List(ctx context.Context, dir models.SortDirection) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: dir != models.Ascending}).
		Find(&posts).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "posts", err)
	}
	return posts, nil
}

// Create inserts a new post; id and timestamps are assigned here
func (r *PostRepo) Create(ctx context.Context, fields models.PostFields) (*models.Post, error) {
	post := models.Post{ID: uuid.New()}
	fields.Apply(&post)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&post).Error; err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	return &post, nil
}

// Update overwrites the writable fields of an existing post
func (r *PostRepo) Update(ctx context.Context, id uuid.UUID, fields models.PostFields) (*models.Post, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":           fields.Title,
			"content":         fields.Content,
			"cover_image_url": fields.CoverImageURL,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return nil, errs.NewDatabaseError("update", "post", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFound("post")
	}
	return r.Get(ctx, id)
}

// Delete removes a post by id and returns the deleted row
func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	res := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&post)
	if res.Error != nil {
		return nil, errs.NewDatabaseError("delete", "post", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, errs.NewNotFound("post")
	}
	return &post, nil
}
