package postgres

import (
	"github.com/google/wire"
	articlesPorts "github.com/quillhq/newsdesk/internal/articles/ports"
	commentsPorts "github.com/quillhq/newsdesk/internal/comments/ports"
	"github.com/quillhq/newsdesk/internal/migrations"
	taxonomyPorts "github.com/quillhq/newsdesk/internal/taxonomy/ports"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	NewArticleRepository,
	NewCommentRepository,
	NewCategoryRepository,
	NewTopicRepository,
	NewArticlePatcher,
	wire.Bind(new(articlesPorts.ArticleRepository), new(*ArticleRepository)),
	wire.Bind(new(commentsPorts.CommentRepository), new(*CommentRepository)),
	wire.Bind(new(taxonomyPorts.CategoryRepository), new(*CategoryRepository)),
	wire.Bind(new(taxonomyPorts.TopicRepository), new(*TopicRepository)),
	wire.Bind(new(migrations.ArticlePatcher), new(*ArticlePatcher)),
)
