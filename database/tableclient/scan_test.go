package tableclient

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *pgtype.UUID:
			*p = f.values[i].(pgtype.UUID)
		case *pgtype.Text:
			*p = f.values[i].(pgtype.Text)
		case *pgtype.Timestamptz:
			*p = f.values[i].(pgtype.Timestamptz)
		default:
			return errors.New("unexpected destination")
		}
	}
	return nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func pgText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: true}
}

func pgTime(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func TestScanPost(t *testing.T) {
	id := uuid.New()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	p, err := scanPost(fakeRow{values: []any{
		pgUUID(id), pgText("Hello"), pgText("<b>body</b>"), pgtype.Text{}, pgTime(now), pgTime(now),
	}})
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "", p.CoverImageURL)
	assert.Equal(t, now, p.CreatedAt)
}

func TestScanPostRejectsNullColumns(t *testing.T) {
	now := time.Now()

	_, err := scanPost(fakeRow{values: []any{
		pgtype.UUID{}, pgText("t"), pgText("c"), pgText("u"), pgTime(now), pgTime(now),
	}})
	assert.Error(t, err)

	_, err = scanPost(fakeRow{values: []any{
		pgUUID(uuid.New()), pgtype.Text{}, pgText("c"), pgText("u"), pgTime(now), pgTime(now),
	}})
	assert.Error(t, err)
}

func TestScanPostPropagatesScanError(t *testing.T) {
	want := errors.New("boom")
	_, err := scanPost(fakeRow{err: want})
	assert.ErrorIs(t, err, want)
}

func TestScanCategoryAndLink(t *testing.T) {
	cid, pid := uuid.New(), uuid.New()
	now := time.Now().UTC()

	c, err := scanCategory(fakeRow{values: []any{pgUUID(cid), pgText("Go"), pgTime(now), pgTime(now)}})
	require.NoError(t, err)
	assert.Equal(t, cid, c.ID)
	assert.Equal(t, "Go", c.Name)

	l, err := scanLink(fakeRow{values: []any{pgUUID(pid), pgUUID(cid), pgTime(now)}})
	require.NoError(t, err)
	assert.Equal(t, pid, l.PostID)
	assert.Equal(t, cid, l.CategoryID)
}

func TestUUIDStrings(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []string{a.String(), b.String()}, uuidStrings([]uuid.UUID{a, b}))
	assert.Empty(t, uuidStrings(nil))
}
