package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/quillhq/newsdesk/internal/comments/application"
	"github.com/quillhq/newsdesk/internal/comments/domain"
)

// CommentsHandler handles HTTP requests for comments
type CommentsHandler struct {
	*BaseHandler
	service *application.CommentsService
}

// NewCommentsHandler creates a new comments handler
func NewCommentsHandler(base *BaseHandler, service *application.CommentsService) *CommentsHandler {
	return &CommentsHandler{
		BaseHandler: base,
		service:     service,
	}
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"articleId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateComment posts a new comment on an article
func (h *CommentsHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)
	username := h.GetUsernameFromContext(r)

	articleID, err := h.ParseUUIDParam(r, "articleID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid article ID", http.StatusBadRequest)
		return
	}

	var req CreateCommentRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID, username, articleID, req.Content)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusCreated)
}

// GetComment retrieves a single live comment
// NOTE: Public endpoint
func (h *CommentsHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := h.ParseUUIDParam(r, "commentID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid comment ID", http.StatusBadRequest)
		return
	}

	comment, err := h.service.GetComment(r.Context(), commentID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusOK)
}

// UpdateComment replaces the text of a comment
func (h *CommentsHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	commentID, err := h.ParseUUIDParam(r, "commentID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var req UpdateCommentRequest
	if err := h.DecodeAndValidate(r, &req); err != nil {
		h.WriteJSONError(w, r, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), userID, commentID, req.Content)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentToAPI(comment), http.StatusOK)
}

// DeleteComment soft-deletes a comment
func (h *CommentsHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	commentID, err := h.ParseUUIDParam(r, "commentID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, commentID); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListComments returns live comments for an article, newest first
// NOTE: Public endpoint
func (h *CommentsHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := h.ParseUUIDParam(r, "articleID")
	if err != nil {
		h.WriteJSONError(w, r, "validation_error", "Invalid article ID", http.StatusBadRequest)
		return
	}

	comments, err := h.service.ListComments(r.Context(), articleID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentsToAPI(comments), http.StatusOK)
}

// ListOwnComments returns the authenticated user's live comments
func (h *CommentsHandler) ListOwnComments(w http.ResponseWriter, r *http.Request) {
	userID := h.GetUserIDFromContext(r)

	comments, err := h.service.ListOwnComments(r.Context(), userID)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainCommentsToAPI(comments), http.StatusOK)
}

// Converters

func domainCommentToAPI(comment *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		ArticleID: comment.ArticleID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func domainCommentsToAPI(comments []*domain.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, domainCommentToAPI(comment))
	}
	return out
}
