package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog/log"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(deps Dependencies, policy statusPolicy, startupTime time.Time) *routeHandlers {
	reader := services.NewPostReader(deps.Reads, nil)

	handlers := &routeHandlers{
		healthHandler:    newHealthHandler(startupTime),
		postHandler:      newPostHandler(reader),
		adminPostHandler: newAdminPostHandler(services.NewAdminService(deps.Store), reader, policy),
		categoryHandler:  newCategoryHandler(services.NewCategoryService(deps.Store)),
	}
	if deps.CoverImages != nil {
		handlers.coverImageHandler = newCoverImageHandler(deps.CoverImages)
	}
	return handlers
}

// pathUUID parses the named chi URL parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "must be a uuid")
	}
	return id, nil
}

// lookupPostID parses the postID parameter of a read. An id that cannot name
// a post reads as a missing post.
func lookupPostID(r *http.Request) (uuid.UUID, error) {
	id, err := pathUUID(r, "postID")
	if err != nil {
		return uuid.Nil, errs.NewNotFound("post")
	}
	return id, nil
}

type healthHandler struct {
	responder   Responder
	startupTime time.Time
}

func newHealthHandler(startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{responder: NewResponder(logger), startupTime: startupTime}
}

// health reports liveness
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:    "ok",
			StartedAt: h.startupTime,
			Uptime:    time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
