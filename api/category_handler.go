package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/blog-backend/models"
	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder  Responder
	logger     zerolog.Logger
	categories *services.CategoryService
}

func newCategoryHandler(categories *services.CategoryService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		categories: categories,
	}
}

// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.CategoryRef
// @Router /categories [get]
func (h categoryHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, models.CategoryRefs(categories))
	}
}

// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body CategoryRequest true "Category"
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse "Missing name"
// @Router /admin/categories [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := readJSON(r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Create(r.Context(), req.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory removes a category and unlinks it from every post
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Security BearerAuth
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/categories/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathUUID(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categories.Delete(r.Context(), categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, MessageResponse{Msg: fmt.Sprintf("Deleted %q.", category.Name)})
	}
}
