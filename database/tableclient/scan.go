package tableclient

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rpupo63/blog-backend/models"
)

// rowScanner is satisfied by pgx.Row and pgx.CollectableRow.
type rowScanner interface {
	Scan(dest ...any) error
}

// postRow mirrors the posts table; every column must be present and non-null
// except cover_image_url.
type postRow struct {
	ID            pgtype.UUID
	Title         pgtype.Text
	Content       pgtype.Text
	CoverImageURL pgtype.Text
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func scanPost(row rowScanner) (models.Post, error) {
	var r postRow
	if err := row.Scan(&r.ID, &r.Title, &r.Content, &r.CoverImageURL, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.Post{}, err
	}
	return r.toModel()
}

func (r postRow) toModel() (models.Post, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return models.Post{}, err
	}
	if !r.Title.Valid || !r.Content.Valid {
		return models.Post{}, fmt.Errorf("post %s: null title or content", id)
	}
	if !r.CreatedAt.Valid || !r.UpdatedAt.Valid {
		return models.Post{}, fmt.Errorf("post %s: null timestamp", id)
	}
	return models.Post{
		ID:            id,
		Title:         r.Title.String,
		Content:       r.Content.String,
		CoverImageURL: r.CoverImageURL.String,
		CreatedAt:     r.CreatedAt.Time,
		UpdatedAt:     r.UpdatedAt.Time,
	}, nil
}

type categoryRow struct {
	ID        pgtype.UUID
	Name      pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func scanCategory(row rowScanner) (models.Category, error) {
	var r categoryRow
	if err := row.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return models.Category{}, err
	}
	return r.toModel()
}

func (r categoryRow) toModel() (models.Category, error) {
	id, err := toUUID(r.ID)
	if err != nil {
		return models.Category{}, err
	}
	if !r.Name.Valid {
		return models.Category{}, fmt.Errorf("category %s: null name", id)
	}
	return models.Category{
		ID:        id,
		Name:      r.Name.String,
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}, nil
}

func scanLink(row rowScanner) (models.PostCategory, error) {
	var postID, categoryID pgtype.UUID
	var createdAt pgtype.Timestamptz
	if err := row.Scan(&postID, &categoryID, &createdAt); err != nil {
		return models.PostCategory{}, err
	}
	pid, err := toUUID(postID)
	if err != nil {
		return models.PostCategory{}, err
	}
	cid, err := toUUID(categoryID)
	if err != nil {
		return models.PostCategory{}, err
	}
	return models.PostCategory{PostID: pid, CategoryID: cid, CreatedAt: createdAt.Time}, nil
}

func toUUID(id pgtype.UUID) (uuid.UUID, error) {
	if !id.Valid {
		return uuid.Nil, fmt.Errorf("null uuid")
	}
	return uuid.UUID(id.Bytes), nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
