package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpupo63/blog-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := IssueAdminToken("s3cret", "editor@example.com", time.Minute)
	require.NoError(t, err)

	subject, err := parseAdminToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "editor@example.com", subject)
}

func TestAdminTokenRejections(t *testing.T) {
	expired, err := IssueAdminToken("s3cret", "a", -time.Minute)
	require.NoError(t, err)
	_, err = parseAdminToken("s3cret", expired)
	assert.Error(t, err)

	token, err := IssueAdminToken("s3cret", "a", time.Minute)
	require.NoError(t, err)
	_, err = parseAdminToken("other", token)
	assert.Error(t, err)

	_, err = parseAdminToken("", token)
	assert.ErrorIs(t, err, errs.ErrNoSecret)

	_, err = IssueAdminToken("", "a", time.Minute)
	assert.ErrorIs(t, err, errs.ErrNoSecret)
}

func TestAdminSubject(t *testing.T) {
	m := newAuthMiddleware("s3cret")
	token, err := IssueAdminToken("s3cret", "editor@example.com", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		subject string
		check   func(error) bool
	}{
		{name: "valid", header: "Bearer " + token, subject: "editor@example.com"},
		{name: "no header", header: "", check: errs.IsMissingTokenError},
		{name: "basic scheme", header: "Basic abc", check: errs.IsMissingTokenError},
		{name: "empty bearer", header: "Bearer   ", check: errs.IsMissingTokenError},
		{name: "garbage", header: "Bearer not-a-jwt", check: errs.IsInvalidTokenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			subject, err := m.adminSubject(req)
			if tt.check == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.subject, subject)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err))
			assert.True(t, errs.IsUnauthorized(err))
		})
	}
}
