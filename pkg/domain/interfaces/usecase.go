package interfaces

import (
	"context"

	"github.com/linear/linear-release/pkg/domain/model"
)

// CommitScanner classifies an ordered commit sequence into added and
// reverted issue references plus pull-request numbers.
type CommitScanner interface {
	// Scan folds commits (oldest first) into a ScanResult under
	// last-write-wins. The context carries only the logger.
	Scan(ctx context.Context, commits []model.CommitRecord, includePaths []string) *model.ScanResult
}

// SyncUseCase runs the full pipeline: collect commits, scan them, and
// push the outcome to the release service.
type SyncUseCase interface {
	Sync(ctx context.Context, input *model.SyncInput) (*model.ScanResult, error)
}
