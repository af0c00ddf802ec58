package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CategoryService struct {
	store  database.Store
	logger zerolog.Logger
}

func NewCategoryService(store database.Store) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: log.With().Str("service", "categoryService").Logger(),
	}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.store.Categories().List(ctx)
}

func (s *CategoryService) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("name")
	}
	c, err := s.store.Categories().Create(ctx, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("categoryID", c.ID.String()).Str("name", c.Name).Msg("category created")
	return c, nil
}

// Delete removes the category and unlinks it from every post.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var deleted *models.Category
	var unlinked int64
	err := s.store.Transaction(ctx, func(tx database.Store) error {
		c, err := tx.Categories().Get(ctx, id)
		if err != nil {
			return err
		}
		if unlinked, err = tx.PostCategories().DeleteByCategory(ctx, id); err != nil {
			return err
		}
		if err := tx.Categories().Delete(ctx, id); err != nil {
			return err
		}
		deleted = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("categoryID", id.String()).Int64("unlinked", unlinked).Msg("category deleted")
	return deleted, nil
}
