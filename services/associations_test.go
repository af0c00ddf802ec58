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

func TestSynchronizeYieldsRequestedSet(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cats := seedCategories(t, store, "a", "b", "c")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)

	require.NoError(t, m.Synchronize(ctx, postID, []uuid.UUID{cats[2], cats[0]}))

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{cats[0], cats[2]}, got)
}

func TestSynchronizeEmptyClearsSet(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cats := seedCategories(t, store, "a", "b")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)

	require.NoError(t, m.Synchronize(ctx, postID, cats))
	require.NoError(t, m.Synchronize(ctx, postID, nil))

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSynchronizeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cats := seedCategories(t, store, "a", "b")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)

	require.NoError(t, m.Synchronize(ctx, postID, cats))
	once := store.Links()
	require.NoError(t, m.Synchronize(ctx, postID, []uuid.UUID{cats[1], cats[0], cats[1]}))

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.ElementsMatch(t, cats, got)
	assert.Len(t, store.Links(), len(once))
}

func TestSynchronizeRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	cats := seedCategories(t, store, "a")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)
	require.NoError(t, m.Synchronize(ctx, postID, cats))

	missing := uuid.New()
	err := m.Synchronize(ctx, postID, []uuid.UUID{cats[0], missing})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidReferenceError(err))
	assert.Contains(t, err.Error(), missing.String())

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, cats, got)
}

func TestSynchronizeUnknownPost(t *testing.T) {
	store := memory.New()
	m := NewAssociationManager(store)

	err := m.Synchronize(context.Background(), uuid.New(), nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestSynchronizeRollsBackOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.New(failNthLink(3))
	cats := seedCategories(t, store, "a", "b")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)
	// the first insert of the store succeeds
	require.NoError(t, m.Synchronize(ctx, postID, cats[:1]))

	err := m.Synchronize(ctx, postID, cats)
	require.Error(t, err)
	assert.True(t, errs.IsTransactionFailedError(err))
	assert.False(t, errs.IsPartialFailureError(err))

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, cats[:1], got)
}

func TestSynchronizeReportsPartialFailureWithoutRollback(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithoutRollback(), failNthLink(2))
	cats := seedCategories(t, store, "a", "b", "c")
	postID := seedPost(t, store, "p")
	m := NewAssociationManager(store)

	err := m.Synchronize(ctx, postID, cats)
	require.Error(t, err)
	assert.True(t, errs.IsPartialFailureError(err))

	var partial *errs.PartialAssociationError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, postID, partial.PostID)
	assert.Equal(t, cats[:1], partial.Succeeded)

	got, err := m.CategoryIDs(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, cats[:1], got)
}

func TestParseCategoryIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := ParseCategoryIDs([]string{a.String(), " " + b.String(), a.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = ParseCategoryIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseCategoryIDs([]string{a.String(), "not-a-uuid"})
	assert.True(t, errs.IsInvalidReferenceError(err))
}
