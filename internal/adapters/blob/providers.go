package blob

import (
	"github.com/google/wire"
	"github.com/quillhq/newsdesk/internal/articles/ports"
)

// ProviderSet is the wire provider set for the blob store adapter
var ProviderSet = wire.NewSet(
	NewMinioStore,
	wire.Bind(new(ports.BlobStore), new(*MinioStore)),
)
