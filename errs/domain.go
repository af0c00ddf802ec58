package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Post/category consistency errors
var (
	ErrInvalidReference = errors.New("invalid category reference")
	ErrPartialFailure   = errors.New("partial association failure")
)

// NewInvalidReferenceError reports category ids that do not resolve to a stored category.
func NewInvalidReferenceError(missing []string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrInvalidReference,
		Details:    fmt.Sprintf("Unknown category ids: %s", strings.Join(missing, ", ")),
		Field:      "categoryIds",
	}
}

// PartialAssociationError is returned when a post's category set was cleared
// but only some of the requested rows were written and nothing was rolled back.
type PartialAssociationError struct {
	*ApiErr
	PostID    uuid.UUID
	Succeeded []uuid.UUID
}

func NewPartialAssociationError(postID uuid.UUID, succeeded []uuid.UUID, cause error) *PartialAssociationError {
	ids := make([]string, 0, len(succeeded))
	for _, id := range succeeded {
		ids = append(ids, id.String())
	}
	return &PartialAssociationError{
		ApiErr: &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        ErrPartialFailure,
			Details:    fmt.Sprintf("post %s linked only to [%s]", postID, strings.Join(ids, ", ")),
			Field:      "categoryIds",
			Cause:      cause,
		},
		PostID:    postID,
		Succeeded: succeeded,
	}
}

func (e *PartialAssociationError) Unwrap() error {
	return e.ApiErr
}

func IsInvalidReferenceError(err error) bool {
	return errors.Is(err, ErrInvalidReference)
}

func IsPartialFailureError(err error) bool {
	return errors.Is(err, ErrPartialFailure)
}
