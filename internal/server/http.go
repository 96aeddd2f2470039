package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/quillhq/newsdesk/internal/adapters/rest"
	"github.com/quillhq/newsdesk/internal/adapters/rest/middleware"
	"github.com/quillhq/newsdesk/internal/platform/authz"
	"github.com/quillhq/newsdesk/internal/platform/logger"
)

// NewHTTPServer creates and configures the HTTP server with all routes.
// Reads are public; mutations and the upload URL require a valid JWT; the
// repair jobs additionally require the run-jobs capability.
func NewHTTPServer(
	config Config,
	articles *rest.ArticlesHandler,
	comments *rest.CommentsHandler,
	taxonomy *rest.TaxonomyHandler,
	admin *rest.AdminHandler,
	health *rest.HealthHandler,
	jwtMiddleware *middleware.JWTMiddleware,
	authzMiddleware *middleware.AuthorizationMiddleware,
	log logger.Logger,
) *http.Server {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Health probes
		r.Get("/health/live", health.GetLiveness)
		r.Get("/health/ready", health.GetReadiness)

		// Public reads
		r.Group(func(r chi.Router) {
			r.Get("/articles", articles.ListArticles)
			r.Get("/articles/{articleID}", articles.GetArticle)
			r.Get("/articles/by-category/{categoryID}", articles.ListArticlesByCategory)
			r.Get("/articles/by-topic/{topicID}", articles.ListArticlesByTopic)
			r.Get("/articles/{articleID}/comments", comments.ListComments)
			r.Get("/comments/{commentID}", comments.GetComment)
			r.Get("/categories", taxonomy.ListCategories)
			r.Get("/categories/{categoryID}", taxonomy.GetCategory)
			r.Get("/categories/slug/{slug}", taxonomy.GetCategoryBySlug)
			r.Get("/topics", taxonomy.ListTopics)
			r.Get("/topics/slug/{slug}", taxonomy.GetTopicBySlug)
		})

		// Authenticated mutations
		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware.Middleware)

			r.Post("/articles", articles.CreateArticle)
			r.Put("/articles/{articleID}", articles.UpdateArticle)
			r.Delete("/articles/{articleID}", articles.DeleteArticle)
			r.Post("/articles/upload-url", articles.GenerateUploadURL)

			r.Post("/articles/{articleID}/comments", comments.CreateComment)
			r.Put("/comments/{commentID}", comments.UpdateComment)
			r.Delete("/comments/{commentID}", comments.DeleteComment)
			r.Get("/comments/mine", comments.ListOwnComments)

			r.Post("/categories", taxonomy.CreateCategory)
			r.Post("/topics", taxonomy.GetOrCreateTopic)
		})

		// Admin-gated repair jobs
		r.Group(func(r chi.Router) {
			r.Use(jwtMiddleware.Middleware)
			r.Use(authzMiddleware.RequireCapability(authz.CapabilityRunJobs))

			r.Get("/admin/jobs", admin.ListJobs)
			r.Post("/admin/jobs/{name}", admin.RunJob)
		})
	})

	handler := withObservability(r, log)

	return &http.Server{
		Addr:         config.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// withObservability adds request logging
func withObservability(handler http.Handler, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrr := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		handler.ServeHTTP(wrr, r)

		duration := time.Since(start)

		var subject string
		if s, ok := middleware.GetJWTSubject(r.Context()); ok {
			subject = s
		}

		log.Info(r.Context(), "HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrr.Status(),
			"duration_ms", duration.Milliseconds(),
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"subject", subject,
		)
	})
}
