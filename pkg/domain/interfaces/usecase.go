package interfaces

import (
	"context"

	"github.com/m-mizutani/formulasync/pkg/domain/model"
)

// FormulaStore reads formula files and persists updated content
type FormulaStore interface {
	// Read returns the formula content
	Read(path string) (string, error)

	// Commit backs up the current file to a ".bak" sibling and overwrites it with content
	Commit(path, content string) (backupPath string, err error)

	// Preview shows the would-be content without touching the file system
	Preview(path, original, updated string) error
}

// SyncUseCase synchronizes a formula with the latest release of a repository
type SyncUseCase interface {
	// Sync computes the updated formula and writes or previews it
	Sync(ctx context.Context, input *model.SyncInput) (*model.SyncResult, error)
}
