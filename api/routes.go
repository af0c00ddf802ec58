package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the read-only endpoints the blog pages use.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.healthHandler.health())

	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/posts", handlers.postHandler.listPosts())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Get("/categories", handlers.categoryHandler.listCategories())
	})
}

// setupAdminRoutes registers the mutation endpoints behind authentication.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/posts", handlers.adminPostHandler.listPosts())
		r.Post("/posts", handlers.adminPostHandler.createPost())
		r.Get("/posts/{postID}", handlers.adminPostHandler.getPost())
		r.Put("/posts/{postID}", handlers.adminPostHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.adminPostHandler.deletePost())

		// older admin pages edit posts through the categories path
		r.Put("/categories/posts/{postID}", handlers.adminPostHandler.updatePost())
		r.Delete("/categories/posts/{postID}", handlers.adminPostHandler.deletePost())

		r.Post("/categories", handlers.categoryHandler.createCategory())
		r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

		if handlers.coverImageHandler != nil {
			r.Post("/cover-images", handlers.coverImageHandler.presignUpload())
		}
	})
}
