package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/taxonomy/application"
	"github.com/quillhq/newsdesk/internal/taxonomy/domain"
)

// TaxonomyHandler handles HTTP requests for categories and topics
type TaxonomyHandler struct {
	*BaseHandler
	service *application.TaxonomyService
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(base *BaseHandler, service *application.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		BaseHandler: base,
		service:     service,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug" validate:"omitempty,max=120"`
}

type GetOrCreateTopicRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

type TopicResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCategory creates a new category
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req CreateCategoryRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	category, err := h.service.CreateCategory(r.Context(), userID, req.Name, req.Slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCategoryToAPI(category), http.StatusCreated)
}

// GetCategory retrieves a category by ID
// NOTE: Public endpoint
func (h *TaxonomyHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := h.ParseUUIDParam(r, "categoryID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid category ID", http.StatusBadRequest)
		return
	}

	category, err := h.service.GetCategory(r.Context(), categoryID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCategoryToAPI(category), http.StatusOK)
}

// GetCategoryBySlug retrieves a category by its slug
// NOTE: Public endpoint
func (h *TaxonomyHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	category, err := h.service.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCategoryToAPI(category), http.StatusOK)
}

// ListCategories returns all categories
// NOTE: Public endpoint
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, domainCategoryToAPI(category))
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// GetOrCreateTopic returns the topic with the exact given name, creating it
// when absent
func (h *TaxonomyHandler) GetOrCreateTopic(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	var req GetOrCreateTopicRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	topic, err := h.service.GetOrCreateTopic(r.Context(), userID, req.Name)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainTopicToAPI(topic), http.StatusOK)
}

// GetTopicBySlug retrieves a topic by its slug
// NOTE: Public endpoint
func (h *TaxonomyHandler) GetTopicBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	topic, err := h.service.GetTopicBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainTopicToAPI(topic), http.StatusOK)
}

// ListTopics returns all topics
// NOTE: Public endpoint
func (h *TaxonomyHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.service.ListTopics(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]TopicResponse, 0, len(topics))
	for _, topic := range topics {
		out = append(out, domainTopicToAPI(topic))
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// Converters

func domainCategoryToAPI(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
	}
}

func domainTopicToAPI(topic *domain.Topic) TopicResponse {
	return TopicResponse{
		ID:        topic.ID,
		Name:      topic.Name,
		Slug:      topic.Slug,
		CreatedAt: topic.CreatedAt,
	}
}
