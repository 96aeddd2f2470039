package application

import (
	"github.com/google/wire"
	articlesPorts "github.com/quillhq/newsdesk/internal/articles/ports"
)

// ProviderSet is the wire provider set for the taxonomy application layer
var ProviderSet = wire.NewSet(
	NewTaxonomyService,
	NewArticlesTaxonomyAdapter,
	wire.Bind(new(articlesPorts.TaxonomyReader), new(*ArticlesTaxonomyAdapter)),
)
