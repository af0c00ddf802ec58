package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateTrimsName(t *testing.T) {
	svc := NewCategoryService(memory.New())

	c, err := svc.Create(context.Background(), "  Tech ")
	require.NoError(t, err)
	assert.Equal(t, "Tech", c.Name)

	_, err = svc.Create(context.Background(), "   ")
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestCategoryDeleteUnlinksPosts(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewCategoryService(store)
	cats := seedCategories(t, store, "a", "b")
	postID := seedPost(t, store, "p")
	require.NoError(t, NewAssociationManager(store).Synchronize(ctx, postID, cats))

	deleted, err := svc.Delete(ctx, cats[0])
	require.NoError(t, err)
	assert.Equal(t, "a", deleted.Name)

	ids, err := store.PostCategories().CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, cats[1:], ids)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.Delete(ctx, uuid.New())
	assert.True(t, errs.IsNotFound(err))
}
