package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/models"
)

// CategoryStore is CRUD over category rows.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, name string) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// CountByIDs counts how many of ids exist, in one round trip.
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
}

// PostStore is CRUD over post rows. Posts come back without categories.
type PostStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Post, error)
	List(ctx context.Context, dir models.SortDirection) ([]models.Post, error)
	Create(ctx context.Context, fields models.PostFields) (*models.Post, error)
	Update(ctx context.Context, id uuid.UUID, fields models.PostFields) (*models.Post, error)
	// Delete removes the row and returns it as it was before deletion.
	Delete(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

// PostCategoryStore manages join rows. Rows are never updated in place.
type PostCategoryStore interface {
	CategoryIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	ForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error)
	Create(ctx context.Context, postID, categoryID uuid.UUID) error
	DeleteByPost(ctx context.Context, postID uuid.UUID) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// Store groups the accessors and the transaction primitive the services depend on.
type Store interface {
	Categories() CategoryStore
	Posts() PostStore
	PostCategories() PostCategoryStore
	// Transaction runs fn against a transactional view of the store. A non-nil
	// error from fn rolls back every write fn made when Atomic reports true.
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Atomic() bool
}

// ReadStore is the read-only surface the public read path uses. It is served
// either by the ORM store or by the direct table client.
type ReadStore interface {
	GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error)
	ListPosts(ctx context.Context, dir models.SortDirection) ([]models.Post, error)
	CategoryIDsForPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error)
	AssociationsForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error)
	CategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error)
}

// Reads adapts any Store to ReadStore.
func Reads(s Store) ReadStore {
	return storeReads{s}
}

type storeReads struct {
	s Store
}

func (r storeReads) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return r.s.Posts().Get(ctx, id)
}

func (r storeReads) ListPosts(ctx context.Context, dir models.SortDirection) ([]models.Post, error) {
	return r.s.Posts().List(ctx, dir)
}

func (r storeReads) CategoryIDsForPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	return r.s.PostCategories().CategoryIDs(ctx, postID)
}

func (r storeReads) AssociationsForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error) {
	return r.s.PostCategories().ForPosts(ctx, postIDs)
}

func (r storeReads) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	return r.s.Categories().FindByIDs(ctx, ids)
}
