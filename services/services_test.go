package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/rpupo63/blog-backend/models"
	"github.com/stretchr/testify/require"
)

func postFields(title string) models.PostFields {
	return models.PostFields{
		Title:         title,
		Content:       "<p>Some <b>content</b></p>",
		CoverImageURL: "https://img.example/cover.png",
	}
}

func idStrings(ids ...uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func seedCategories(t *testing.T, store database.Store, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		c, err := store.Categories().Create(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	return ids
}

func seedPost(t *testing.T, store database.Store, title string) uuid.UUID {
	t.Helper()
	p, err := store.Posts().Create(context.Background(), postFields(title))
	require.NoError(t, err)
	return p.ID
}

// failNthLink makes the nth post_categories insert fail.
func failNthLink(n int) memory.Option {
	count := 0
	return memory.WithFault(func(op string) error {
		if op != "post_categories.create" {
			return nil
		}
		count++
		if count == n {
			return errors.New("connection reset by peer")
		}
		return nil
	})
}
