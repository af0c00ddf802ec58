// Package tableclient reads the blog tables directly over a pgx pool, without
// the ORM. It serves the public read path: the post row, then its join rows
// filtered by post id, then the categories by the resolved ids.
package tableclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
)

// PoolConfig tunes the pgx pool.
type PoolConfig struct {
	DSN      string
	MaxConns int32
	// SimpleProtocol is required behind transaction-mode poolers such as PgBouncer.
	SimpleProtocol bool
}

// NewPool creates a connection pool for the direct table client.
func NewPool(ctx context.Context, pc PoolConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(pc.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if pc.MaxConns > 0 {
		cfg.MaxConns = pc.MaxConns
	}
	if pc.SimpleProtocol {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	} else {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
		cfg.ConnConfig.StatementCacheCapacity = 64
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// querier is the subset of *pgxpool.Pool the client uses.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ database.ReadStore = (*Client)(nil)

// Client implements database.ReadStore with hand-written SQL.
type Client struct {
	db querier
}

func New(pool *pgxpool.Pool) *Client {
	return &Client{db: pool}
}

const postColumns = `id, title, content, cover_image_url, created_at, updated_at`

func (c *Client) GetPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	row := c.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1::uuid`, id.String())
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	return &p, nil
}

func (c *Client) ListPosts(ctx context.Context, dir models.SortDirection) ([]models.Post, error) {
	q := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at ` + dir.SQL()
	rows, err := c.db.Query(ctx, q)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "posts", err)
	}
	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("scan", "posts", err)
	}
	return posts, nil
}

func (c *Client) CategoryIDsForPost(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
	SELECT category_id
	FROM post_categories
	WHERE post_id = $1::uuid
	ORDER BY created_at ASC;
	`
	rows, err := c.db.Query(ctx, q, postID.String())
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post_categories", err)
	}
	ids, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (uuid.UUID, error) {
		var id pgtype.UUID
		if err := row.Scan(&id); err != nil {
			return uuid.Nil, err
		}
		return toUUID(id)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("scan", "post_categories", err)
	}
	return ids, nil
}

func (c *Client) AssociationsForPosts(ctx context.Context, postIDs []uuid.UUID) ([]models.PostCategory, error) {
	if len(postIDs) == 0 {
		return []models.PostCategory{}, nil
	}
	const q = `
	SELECT post_id, category_id, created_at
	FROM post_categories
	WHERE post_id = ANY($1::uuid[])
	ORDER BY created_at ASC;
	`
	rows, err := c.db.Query(ctx, q, uuidStrings(postIDs))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post_categories", err)
	}
	links, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PostCategory, error) {
		return scanLink(row)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("scan", "post_categories", err)
	}
	return links, nil
}

func (c *Client) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}
	const q = `
	SELECT id, name, created_at, updated_at
	FROM categories
	WHERE id = ANY($1::uuid[]);
	`
	rows, err := c.db.Query(ctx, q, uuidStrings(ids))
	if err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategory(row)
	})
	if err != nil {
		return nil, errs.NewDatabaseError("scan", "categories", err)
	}
	return categories, nil
}
