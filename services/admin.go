package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AdminService performs the post mutations behind the admin endpoints. Each
// operation is one store transaction.
type AdminService struct {
	store        database.Store
	associations *AssociationManager
	logger       zerolog.Logger
}

func NewAdminService(store database.Store) *AdminService {
	return &AdminService{
		store:        store,
		associations: NewAssociationManager(store),
		logger:       log.With().Str("service", "adminService").Logger(),
	}
}

// CreatePost stores a new post linked to categoryIDs.
func (s *AdminService) CreatePost(ctx context.Context, fields models.PostFields, categoryIDs []string) (*models.Post, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	ids, err := ParseCategoryIDs(categoryIDs)
	if err != nil {
		return nil, err
	}

	var created *models.Post
	err = s.store.Transaction(ctx, func(tx database.Store) error {
		if err := s.associations.validate(ctx, tx.Categories(), ids); err != nil {
			return err
		}
		post, err := tx.Posts().Create(ctx, fields)
		if err != nil {
			return err
		}
		created = post
		return s.associations.replace(ctx, tx, post.ID, ids)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("postID", created.ID.String()).Int("categories", len(ids)).Msg("post created")
	return created, nil
}

// UpdatePost overwrites the fields of post id and replaces its categories.
// Category references are checked before anything is written.
func (s *AdminService) UpdatePost(ctx context.Context, id uuid.UUID, fields models.PostFields, categoryIDs []string) (*models.Post, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	ids, err := ParseCategoryIDs(categoryIDs)
	if err != nil {
		return nil, err
	}

	var updated *models.Post
	err = s.store.Transaction(ctx, func(tx database.Store) error {
		if err := s.associations.validate(ctx, tx.Categories(), ids); err != nil {
			return err
		}
		post, err := tx.Posts().Update(ctx, id, fields)
		if err != nil {
			return err
		}
		updated = post
		return s.associations.replace(ctx, tx, id, ids)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("postID", id.String()).Int("categories", len(ids)).Msg("post updated")
	return updated, nil
}

// DeletePost removes post id and its category links, returning the deleted post.
func (s *AdminService) DeletePost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var deleted *models.Post
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		if _, err := tx.PostCategories().DeleteByPost(ctx, id); err != nil {
			return err
		}
		post, err := tx.Posts().Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("postID", id.String()).Msg("post deleted")
	return deleted, nil
}
