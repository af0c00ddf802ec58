package models

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFieldsValidate(t *testing.T) {
	valid := PostFields{Title: "t", Content: "c", CoverImageURL: "u"}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*PostFields)
		field  string
	}{
		{"title", func(f *PostFields) { f.Title = "  " }, "title"},
		{"content", func(f *PostFields) { f.Content = "" }, "content"},
		{"cover", func(f *PostFields) { f.CoverImageURL = "\n" }, "coverImageURL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)
			err := f.Validate()
			require.Error(t, err)
			assert.True(t, errs.IsMissingRequiredFieldError(err))

			var apiErr *errs.ApiErr
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.field, apiErr.Field)
		})
	}
}

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, Ascending, ParseSortDirection("oldest"))
	assert.Equal(t, Ascending, ParseSortDirection("ASC"))
	assert.Equal(t, Descending, ParseSortDirection("newest"))
	assert.Equal(t, Descending, ParseSortDirection(""))
	assert.Equal(t, "ASC", Ascending.SQL())
	assert.Equal(t, "DESC", Descending.SQL())
}

func TestCategoryRefsNeverNil(t *testing.T) {
	refs := CategoryRefs(nil)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)

	id := uuid.New()
	assert.Equal(t, []CategoryRef{{ID: id, Name: "Go"}}, CategoryRefs([]Category{{ID: id, Name: "Go"}}))
}

func TestModelColumns(t *testing.T) {
	cols, table, err := modelColumns(&Post{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "posts", table)
	assert.ElementsMatch(t, []string{"id", "title", "content", "cover_image_url", "created_at", "updated_at"}, cols)

	cols, table, err = modelColumns(&PostCategory{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "post_categories", table)
	assert.ElementsMatch(t, []string{"post_id", "category_id", "created_at"}, cols)
}

func TestWriteColumnReport(t *testing.T) {
	var buf bytes.Buffer
	total := WriteColumnReport(&buf, []TableColumns{
		{Table: "posts", Exists: true, Unmodeled: []string{"legacy_slug"}},
		{Table: "categories", Exists: true},
		{Table: "post_categories"},
	})

	assert.Equal(t, 1, total)
	out := buf.String()
	assert.Contains(t, out, "  - legacy_slug")
	assert.Contains(t, out, "All columns are accounted for in the model.")
	assert.Contains(t, out, "Table does not exist yet")
	assert.Contains(t, out, "Total mismatched columns across all tables: 1")
}

func TestUnmodeledColumns(t *testing.T) {
	assert.Equal(t, []string{"a", "z"}, unmodeledColumns([]string{"z", "id", "a"}, []string{"id"}))
	assert.Nil(t, unmodeledColumns([]string{"id"}, []string{"id"}))
}
