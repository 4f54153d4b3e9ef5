package interfaces

import (
	"context"

	"github.com/linear/linear-release/pkg/domain/model"
)

// GitLog defines operations against the local git repository.
type GitLog interface {
	// EnsureCommit makes sure the given ref is resolvable, deepening a
	// shallow clone as needed.
	EnsureCommit(ctx context.Context, repoPath, ref string) error

	// Commits returns the commits in (base, head], oldest first.
	Commits(ctx context.Context, opts model.LogOptions) ([]model.CommitRecord, error)
}

// ReleaseClient defines operations against the remote release service.
type ReleaseClient interface {
	// SyncRelease creates or updates the release described by sync.
	SyncRelease(ctx context.Context, sync *model.ReleaseSync) (*model.ReleaseSyncResult, error)
}

// Notifier delivers a human-readable summary of a completed sync.
type Notifier interface {
	NotifySync(ctx context.Context, sync *model.ReleaseSync, result *model.ReleaseSyncResult) error
}
