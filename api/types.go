package api

import (
	"time"

	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	healthHandler     healthHandler
	postHandler       postHandler
	adminPostHandler  adminPostHandler
	categoryHandler   categoryHandler
	coverImageHandler *coverImageHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error             string   `json:"error" example:"Internal Server Error"`
	Status            string   `json:"status" example:"error"`
	Field             string   `json:"field,omitempty" example:"title"`
	Details           string   `json:"details,omitempty" example:"Additional error details"`
	Cause             string   `json:"cause,omitempty" example:"Underlying error cause"`
	LinkedCategoryIDs []string `json:"linkedCategoryIds,omitempty"`
}

// PostRequest is the body of post create and update requests.
type PostRequest struct {
	Title         string   `json:"title" example:"Hello"`
	Content       string   `json:"content" example:"<b>Hi</b> there"`
	CoverImageURL string   `json:"coverImageURL" example:"https://cdn.example/covers/a.png"`
	CategoryIDs   []string `json:"categoryIds"`
}

func (p PostRequest) fields() models.PostFields {
	return models.PostFields{
		Title:         p.Title,
		Content:       p.Content,
		CoverImageURL: p.CoverImageURL,
	}
}

// categoryIDs returns the requested category set. The field is required; an
// empty array unlinks every category while an absent or null one is rejected.
func (p PostRequest) categoryIDs() ([]string, error) {
	if p.CategoryIDs == nil {
		return nil, errs.NewMissingRequiredFieldError("categoryIds")
	}
	return p.CategoryIDs, nil
}

type CategoryRequest struct {
	Name string `json:"name" example:"Tech"`
}

type CoverUploadRequest struct {
	FileName    string `json:"fileName" example:"cover.png"`
	ContentType string `json:"contentType" example:"image/png"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Msg string `json:"msg"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
	Uptime    string    `json:"uptime"`
}
