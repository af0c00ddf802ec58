package api

import (
	"net/http"

	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type coverImageHandler struct {
	responder Responder
	logger    zerolog.Logger
	covers    *services.CoverImageService
}

func newCoverImageHandler(covers *services.CoverImageService) *coverImageHandler {
	logger := log.With().Str("handlerName", "coverImageHandler").Logger()

	return &coverImageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		covers:    covers,
	}
}

// presignUpload returns a presigned PUT URL for a cover image
// @Summary Prepare cover image upload
// @Tags Admin Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param upload body CoverUploadRequest true "File description"
// @Success 200 {object} services.CoverUpload
// @Failure 400 {object} ErrorResponse
// @Router /admin/cover-images [post]
func (h *coverImageHandler) presignUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CoverUploadRequest
		if err := readJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		upload, err := h.covers.PresignUpload(r.Context(), req.FileName, req.ContentType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, upload)
	}
}
