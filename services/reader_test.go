package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/database/memory"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func steppedClock() func() time.Time {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func TestGetDetailNotFound(t *testing.T) {
	reader := NewPostReader(database.Reads(memory.New()), nil)

	_, err := reader.GetDetail(context.Background(), uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestGetDetailSanitizesContent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	f := postFields("x")
	f.Content = `<b>bold</b><script>alert(1)</script><a href="https://evil.example">link</a>`
	post, err := store.Posts().Create(ctx, f)
	require.NoError(t, err)

	detail, err := NewPostReader(database.Reads(store), nil).GetDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Content, detail.Content)
	assert.Contains(t, detail.SafeContent, "<b>bold</b>")
	assert.NotContains(t, detail.SafeContent, "script")
	assert.NotContains(t, detail.SafeContent, "<a")
}

func TestGetDetailKeepsLinkOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(steppedClock()))
	cats := seedCategories(t, store, "a", "b", "c")
	postID := seedPost(t, store, "p")
	require.NoError(t, NewAssociationManager(store).Synchronize(ctx, postID, []uuid.UUID{cats[2], cats[0]}))

	detail, err := NewPostReader(database.Reads(store), func(s string) string { return s }).GetDetail(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryRef{{ID: cats[2], Name: "c"}, {ID: cats[0], Name: "a"}}, detail.Categories)
}

func TestListSummaries(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(steppedClock()))
	cats := seedCategories(t, store, "first", "second")
	older := seedPost(t, store, "older")
	newer, err := store.Posts().Create(ctx, models.PostFields{
		Title:         "newer",
		Content:       "<p>Hello   <b>world</b></p>\n\n<p>again &amp; again</p>",
		CoverImageURL: "https://img.example/n.png",
	})
	require.NoError(t, err)
	require.NoError(t, NewAssociationManager(store).Synchronize(ctx, newer.ID, cats))

	reader := NewPostReader(database.Reads(store), nil)

	summaries, err := reader.ListSummaries(ctx, models.Descending)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, "Hello world again & again", summaries[0].Excerpt)
	assert.Equal(t, []models.CategoryRef{{ID: cats[0], Name: "first"}}, summaries[0].Categories)
	assert.Equal(t, older, summaries[1].ID)
	assert.NotNil(t, summaries[1].Categories)
	assert.Empty(t, summaries[1].Categories)

	ascending, err := reader.ListSummaries(ctx, models.Ascending)
	require.NoError(t, err)
	assert.Equal(t, older, ascending[0].ID)
}

func TestListDetails(t *testing.T) {
	ctx := context.Background()
	store := memory.New(memory.WithClock(steppedClock()))
	cats := seedCategories(t, store, "a", "b")
	p1 := seedPost(t, store, "p1")
	p2 := seedPost(t, store, "p2")
	m := NewAssociationManager(store)
	require.NoError(t, m.Synchronize(ctx, p1, cats))
	require.NoError(t, m.Synchronize(ctx, p2, cats[1:]))

	details, err := NewPostReader(database.Reads(store), nil).ListDetails(ctx, models.Ascending)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, p1, details[0].ID)
	assert.Len(t, details[0].Categories, 2)
	assert.Equal(t, []models.CategoryRef{{ID: cats[1], Name: "b"}}, details[1].Categories)
}

func TestListOnEmptyStore(t *testing.T) {
	reader := NewPostReader(database.Reads(memory.New()), nil)

	summaries, err := reader.ListSummaries(context.Background(), models.Descending)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
