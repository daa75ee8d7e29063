package interfaces

import (
	"context"

	"github.com/m-mizutani/formulasync/pkg/domain/model"
)

// ReleaseLocator looks up published releases of a repository
type ReleaseLocator interface {
	// LatestRelease returns the newest published release of the repository
	LatestRelease(ctx context.Context, repo *model.Repository) (*model.ReleaseInfo, error)
}

// AssetHasher downloads release assets and computes their content hash
type AssetHasher interface {
	// HashURL streams the asset at url and returns its lowercase hex SHA-256 digest
	HashURL(ctx context.Context, url string) (string, error)
}
