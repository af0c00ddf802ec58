package api

import (
	"net/http"

	"github.com/rpupo63/blog-backend/models"
	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	reader    *services.PostReader
}

func newPostHandler(reader *services.PostReader) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		reader:    reader,
	}
}

// listPosts returns every post as a summary
// @Summary List posts
// @Description Lists posts with a plain-text excerpt and their first category
// @Tags Posts
// @Produce json
// @Param order query string false "newest (default) or oldest"
// @Success 200 {array} models.PostSummary
// @Failure 500 {object} ErrorResponse
// @Router /posts [get]
func (h postHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := models.ParseSortDirection(r.URL.Query().Get("order"))

		summaries, err := h.reader.ListSummaries(r.Context(), dir)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, summaries)
	}
}

// getPost returns one post with all of its categories
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} ErrorResponse "Post not found"
// @Failure 500 {object} ErrorResponse
// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := lookupPostID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		detail, err := h.reader.GetDetail(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, detail)
	}
}
