package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/articles/application"
	"github.com/quillhq/newsdesk/internal/articles/domain"
	"github.com/quillhq/newsdesk/internal/articles/ports"
)

// ArticlesHandler handles HTTP requests for articles
type ArticlesHandler struct {
	*BaseHandler
	service *application.ArticlesService
}

// NewArticlesHandler creates a new articles handler
func NewArticlesHandler(base *BaseHandler, service *application.ArticlesService) *ArticlesHandler {
	return &ArticlesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Request/response shapes

type CreateArticleRequest struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Body           string      `json:"body" validate:"required"`
	CategoryID     uuid.UUID   `json:"categoryId" validate:"required"`
	TopicIDs       []uuid.UUID `json:"topicIds"`
	ImageStorageID *string     `json:"imageStorageId"`
}

type UpdateArticleRequest struct {
	Title          string      `json:"title" validate:"required,max=200"`
	Body           string      `json:"body" validate:"required"`
	CategoryID     uuid.UUID   `json:"categoryId" validate:"required"`
	TopicIDs       []uuid.UUID `json:"topicIds"`
	ImageStorageID *string     `json:"imageStorageId"`
}

type ArticleResponse struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Body           string      `json:"body"`
	CategoryID     uuid.UUID   `json:"categoryId"`
	TopicIDs       []uuid.UUID `json:"topicIds"`
	AuthorID       string      `json:"authorId"`
	CreatedAt      time.Time   `json:"createdAt"`
	ImageStorageID *string     `json:"imageStorageId,omitempty"`
}

type CategoryRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type TopicRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type ArticleViewResponse struct {
	ArticleResponse
	Category *CategoryRefResponse `json:"category"`
	Topics   []TopicRefResponse   `json:"topics,omitempty"`
	ImageURL *string              `json:"imageUrl,omitempty"`
}

type UploadTicketResponse struct {
	StorageID string    `json:"storageId"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateArticle creates a new article
func (h *ArticlesHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req CreateArticleRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.service.CreateArticle(r.Context(), userID, application.CreateArticleParams{
		Title:          req.Title,
		Body:           req.Body,
		CategoryID:     req.CategoryID,
		TopicIDs:       req.TopicIDs,
		ImageStorageID: req.ImageStorageID,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainArticleToAPI(article), http.StatusCreated)
}

// GetArticle retrieves a single article with references expanded
// NOTE: Public endpoint
func (h *ArticlesHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := h.ParseUUIDParam(r, "articleID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid article ID", http.StatusBadRequest)
		return
	}

	view, err := h.service.GetArticle(r.Context(), articleID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, articleViewToAPI(view), http.StatusOK)
}

// UpdateArticle overwrites an article's content
func (h *ArticlesHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	articleID, err := h.ParseUUIDParam(r, "articleID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid article ID", http.StatusBadRequest)
		return
	}

	var req UpdateArticleRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	article, err := h.service.UpdateArticle(r.Context(), userID, articleID, application.UpdateArticleParams{
		Title:          req.Title,
		Body:           req.Body,
		CategoryID:     req.CategoryID,
		TopicIDs:       req.TopicIDs,
		ImageStorageID: req.ImageStorageID,
	})
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainArticleToAPI(article), http.StatusOK)
}

// DeleteArticle removes an article
func (h *ArticlesHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	articleID, err := h.ParseUUIDParam(r, "articleID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid article ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteArticle(r.Context(), userID, articleID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListArticles returns every article, newest first, with category and image
// URL expanded
// NOTE: Public endpoint
func (h *ArticlesHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListArticles(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]ArticleViewResponse, 0, len(views))
	for _, view := range views {
		out = append(out, articleViewToAPI(view))
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// ListArticlesByCategory returns articles filed under the exact category
// NOTE: Public endpoint
func (h *ArticlesHandler) ListArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.ParseUUIDParam(r, "categoryID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid category ID", http.StatusBadRequest)
		return
	}

	articles, err := h.service.ListArticlesByCategory(r.Context(), categoryID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainArticlesToAPI(articles), http.StatusOK)
}

// ListArticlesByTopic returns articles tagged with exactly the one topic
// NOTE: Public endpoint
func (h *ArticlesHandler) ListArticlesByTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := h.ParseUUIDParam(r, "topicID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid topic ID", http.StatusBadRequest)
		return
	}

	articles, err := h.service.ListArticlesByTopic(r.Context(), topicID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainArticlesToAPI(articles), http.StatusOK)
}

// GenerateUploadURL issues a presigned upload URL for an article image
func (h *ArticlesHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	ticket, err := h.service.GenerateUploadURL(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, UploadTicketResponse{
		StorageID: ticket.StorageID,
		URL:       ticket.URL,
		ExpiresAt: ticket.ExpiresAt,
	}, http.StatusOK)
}

// Converters

func domainArticleToAPI(article *domain.Article) ArticleResponse {
	return ArticleResponse{
		ID:             article.ID,
		Title:          article.Title,
		Body:           article.Body,
		CategoryID:     article.CategoryID,
		TopicIDs:       article.TopicIDs,
		AuthorID:       article.AuthorID,
		CreatedAt:      article.CreatedAt,
		ImageStorageID: article.ImageStorageID,
	}
}

func domainArticlesToAPI(articles []*domain.Article) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for _, article := range articles {
		out = append(out, domainArticleToAPI(article))
	}
	return out
}

func articleViewToAPI(view *application.ArticleView) ArticleViewResponse {
	resp := ArticleViewResponse{
		ArticleResponse: domainArticleToAPI(view.Article),
		ImageURL:        view.ImageURL,
	}
	if view.Category != nil {
		resp.Category = &CategoryRefResponse{
			ID:   view.Category.ID,
			Name: view.Category.Name,
			Slug: view.Category.Slug,
		}
	}
	resp.Topics = topicRefsToAPI(view.Topics)
	return resp
}

func topicRefsToAPI(refs []ports.TopicRef) []TopicRefResponse {
	if len(refs) == 0 {
		return nil
	}
	out := make([]TopicRefResponse, 0, len(refs))
	for _, ref := range refs {
		out = append(out, TopicRefResponse{ID: ref.ID, Name: ref.Name, Slug: ref.Slug})
	}
	return out
}
