package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"gorm.io/gorm"
)

type PostCategoryRepo struct {
	db *gorm.DB
}

func NewPostCategoryRepo(db *gorm.DB) *PostCategoryRepo {
	return &PostCategoryRepo{db}
}

// CategoryIDs returns the ids of every category linked to postID
func (r *PostCategoryRepo) CategoryIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := r.db.WithContext(ctx).
		Model(&models.PostCategory{}).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post_categories", err)
	}
	return ids, nil
}

// ForPosts returns the join rows of every post in postIDs
func (r *PostCategoryRepo) ForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error) {
	if len(postIDs) == 0 {
		return []models.PostCategory{}, nil
	}
	var rows []models.PostCategory
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post_categories", err)
	}
	return rows, nil
}

// Create links postID to categoryID
func (r *PostCategoryRepo) Create(ctx context.Context, postID, categoryID uuid.UUID) error {
	row := models.PostCategory{PostID: postID, CategoryID: categoryID}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return errs.NewDatabaseError("create", "post_category", err)
	}
	return nil
}

// DeleteByPost removes every link of postID
func (r *PostCategoryRepo) DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.PostCategory{})
	if res.Error != nil {
		return 0, errs.NewDatabaseError("delete", "post_categories", res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteByCategory removes every link to categoryID
func (r *PostCategoryRepo) DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Delete(&models.PostCategory{})
	if res.Error != nil {
		return 0, errs.NewDatabaseError("delete", "post_categories", res.Error)
	}
	return res.RowsAffected, nil
}
