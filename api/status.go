package api

import (
	"errors"
	"net/http"

	"github.com/rpupo63/blog-backend/errs"
)

// statusPolicy decides which status an admin mutation error is reported with.
// In compat mode the post update and delete endpoints answer every failure
// with 500, and create distinguishes only invalid category references.
type statusPolicy struct {
	strict bool
}

func (p statusPolicy) forCreate(err error) error {
	if p.strict || errs.IsInvalidReferenceError(err) {
		return err
	}
	return asInternal(err)
}

func (p statusPolicy) forMutation(err error) error {
	if p.strict {
		return err
	}
	return asInternal(err)
}

func asInternal(err error) error {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		return err
	}
	return apiErr.WithStatus(http.StatusInternalServerError)
}
