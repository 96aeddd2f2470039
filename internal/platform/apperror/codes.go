package apperror

// ErrorCode is the system-level error category. It determines how callers
// should react (retry, re-authenticate, fix input, give up).
type ErrorCode string

const (
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode is the specific business reason behind an error. It is stable
// across API versions so clients can switch on it.
type BusinessCode string

const (
	BusinessCodeGeneral BusinessCode = "general"

	BusinessCodeAuthRequired     BusinessCode = "authentication_required"
	BusinessCodePermissionDenied BusinessCode = "permission_denied"
	BusinessCodeInvalidFormat    BusinessCode = "invalid_format"

	BusinessCodeArticleNotFound  BusinessCode = "article_not_found"
	BusinessCodeNotArticleAuthor BusinessCode = "not_article_author"

	BusinessCodeCommentNotFound  BusinessCode = "comment_not_found"
	BusinessCodeNotCommentAuthor BusinessCode = "not_comment_author"

	BusinessCodeCategoryNotFound BusinessCode = "category_not_found"
	BusinessCodeTopicNotFound    BusinessCode = "topic_not_found"

	BusinessCodeUploadFailed BusinessCode = "upload_url_failed"
	BusinessCodeJobNotFound  BusinessCode = "job_not_found"
)
