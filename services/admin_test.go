package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostWithoutCategories(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := NewAdminService(store)
	reader := NewPostReader(database.Reads(store), nil)

	post, err := admin.CreatePost(ctx, postFields("Hello"), []string{})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	detail, err := reader.GetDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.NotNil(t, detail.Categories)
	assert.Empty(t, detail.Categories)
}

func TestCreatePostValidatesFieldsFirst(t *testing.T) {
	store := memory.New()
	admin := NewAdminService(store)

	f := postFields("")
	_, err := admin.CreatePost(context.Background(), f, []string{"not-a-uuid"})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	f = postFields("t")
	f.CoverImageURL = " "
	_, err = admin.CreatePost(context.Background(), f, nil)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
}

func TestCreatePostRejectsUnknownCategory(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := NewAdminService(store)

	_, err := admin.CreatePost(ctx, postFields("x"), idStrings(uuid.New()))
	assert.True(t, errs.IsInvalidReferenceError(err))

	posts, err := store.Posts().List(ctx, models.Descending)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCreatePostPartialFailureIsReported(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithoutRollback(), failNthLink(2))
	cats := seedCategories(t, store, "a", "b")
	admin := NewAdminService(store)

	_, err := admin.CreatePost(ctx, postFields("x"), idStrings(cats...))
	require.Error(t, err)

	var partial *errs.PartialAssociationError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []uuid.UUID{cats[0]}, partial.Succeeded)

	// the post row exists; the caller learns exactly which links were written
	_, err = store.Posts().Get(ctx, partial.PostID)
	assert.NoError(t, err)
}

func TestCreatePostRollsBackOnAtomicStore(t *testing.T) {
	ctx := context.Background()
	store := memory.New(failNthLink(2))
	cats := seedCategories(t, store, "a", "b")
	admin := NewAdminService(store)

	_, err := admin.CreatePost(ctx, postFields("x"), idStrings(cats...))
	require.Error(t, err)
	assert.True(t, errs.IsTransactionFailedError(err))

	posts, err := store.Posts().List(ctx, models.Descending)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Empty(t, store.Links())
}

func TestUpdatePostShowsCategoryInDetail(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := NewAdminService(store)
	categories := NewCategoryService(store)
	reader := NewPostReader(database.Reads(store), nil)

	tech, err := categories.Create(ctx, "Tech")
	require.NoError(t, err)
	post, err := admin.CreatePost(ctx, postFields("p"), nil)
	require.NoError(t, err)

	updated, err := admin.UpdatePost(ctx, post.ID, postFields("p2"), idStrings(tech.ID))
	require.NoError(t, err)
	assert.Equal(t, "p2", updated.Title)
	assert.Equal(t, "https://img.example/cover.png", updated.CoverImageURL)

	detail, err := reader.GetDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryRef{{ID: tech.ID, Name: "Tech"}}, detail.Categories)
}

func TestUpdatePostWithUnknownCategoryChangesNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := NewAdminService(store)
	cats := seedCategories(t, store, "C1")

	post, err := admin.CreatePost(ctx, postFields("before"), idStrings(cats...))
	require.NoError(t, err)

	_, err = admin.UpdatePost(ctx, post.ID, postFields("after"), idStrings(cats[0], uuid.New()))
	require.Error(t, err)
	assert.True(t, errs.IsInvalidReferenceError(err))

	got, err := store.PostCategories().CategoryIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, cats, got)

	stored, err := store.Posts().Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "before", stored.Title)
}

func TestUpdateMissingPost(t *testing.T) {
	admin := NewAdminService(memory.New())

	_, err := admin.UpdatePost(context.Background(), uuid.New(), postFields("x"), nil)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeletePostRemovesLinks(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	admin := NewAdminService(store)
	cats := seedCategories(t, store, "a", "b")
	keep := seedPost(t, store, "keep")
	require.NoError(t, NewAssociationManager(store).Synchronize(ctx, keep, cats[:1]))

	post, err := admin.CreatePost(ctx, postFields("gone"), idStrings(cats...))
	require.NoError(t, err)

	deleted, err := admin.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", deleted.Title)

	for _, l := range store.Links() {
		assert.NotEqual(t, post.ID, l.PostID)
	}
	assert.Len(t, store.Links(), 1)

	_, err = admin.DeletePost(ctx, post.ID)
	assert.True(t, errs.IsNotFound(err))
}
