package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blog-backend/models"
	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	admin     *services.AdminService
	reader    *services.PostReader
	policy    statusPolicy
}

func newAdminPostHandler(admin *services.AdminService, reader *services.PostReader, policy statusPolicy) adminPostHandler {
	logger := log.With().Str("handlerName", "adminPostHandler").Logger()

	return adminPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		admin:     admin,
		reader:    reader,
		policy:    policy,
	}
}

// listPosts returns every post with all of its categories
// @Summary List posts for the admin view
// @Tags Admin Posts
// @Produce json
// @Security BearerAuth
// @Param order query string false "newest (default) or oldest"
// @Success 200 {array} models.PostDetail
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/posts [get]
func (h adminPostHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dir := models.ParseSortDirection(r.URL.Query().Get("order"))

		details, err := h.reader.ListDetails(r.Context(), dir)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, details)
	}
}

// @Summary Get post for editing
// @Tags Admin Posts
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} models.PostDetail
// @Failure 404 {object} ErrorResponse
// @Router /admin/posts/{postID} [get]
func (h adminPostHandler) getPost() http.HandlerFunc {
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

// createPost stores a post and links it to the requested categories
// @Summary Create post
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body PostRequest true "Post data"
// @Success 200 {object} models.Post
// @Failure 400 {object} ErrorResponse "Unknown category ids"
// @Failure 500 {object} ErrorResponse
// @Router /admin/posts [post]
func (h adminPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PostRequest
		if err := readJSON(r, &req); err != nil {
			h.responder.WriteError(w, h.policy.forCreate(err))
			return
		}

		categoryIDs, err := req.categoryIDs()
		if err != nil {
			h.responder.WriteError(w, h.policy.forCreate(err))
			return
		}

		post, err := h.admin.CreatePost(r.Context(), req.fields(), categoryIDs)
		if err != nil {
			h.responder.WriteError(w, h.policy.forCreate(err))
			return
		}

		h.logger.Info().Str("postID", post.ID.String()).Str("admin", ctxGetUserID(r.Context())).Msg("post created")
		h.responder.WriteJSON(w, post)
	}
}

// updatePost overwrites a post and replaces its categories
// @Summary Update post
// @Description Served on /admin/posts/{postID} and /admin/categories/posts/{postID}
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID" format(uuid)
// @Param post body PostRequest true "Post data"
// @Success 200 {object} models.Post
// @Failure 500 {object} ErrorResponse "Any failure unless STRICT_STATUS_CODES is set"
// @Router /admin/posts/{postID} [put]
func (h adminPostHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathUUID(r, "postID")
		if err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		var req PostRequest
		if err := readJSON(r, &req); err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		categoryIDs, err := req.categoryIDs()
		if err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		post, err := h.admin.UpdatePost(r.Context(), postID, req.fields(), categoryIDs)
		if err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		h.logger.Info().Str("postID", post.ID.String()).Str("admin", ctxGetUserID(r.Context())).Msg("post updated")
		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post and its category links
// @Summary Delete post
// @Description Served on /admin/posts/{postID} and /admin/categories/posts/{postID}
// @Tags Admin Posts
// @Produce json
// @Security BearerAuth
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 500 {object} ErrorResponse "Any failure unless STRICT_STATUS_CODES is set"
// @Router /admin/posts/{postID} [delete]
func (h adminPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathUUID(r, "postID")
		if err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		post, err := h.admin.DeletePost(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, h.policy.forMutation(err))
			return
		}

		h.logger.Info().Str("postID", post.ID.String()).Str("admin", ctxGetUserID(r.Context())).Msg("post deleted")
		h.responder.WriteJSON(w, MessageResponse{Msg: fmt.Sprintf("Deleted %q.", post.Title)})
	}
}
