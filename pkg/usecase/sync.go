package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
)

type syncUseCase struct {
	gitLog   interfaces.GitLog
	scanner  interfaces.CommitScanner
	releases interfaces.ReleaseClient
	notifier interfaces.Notifier
}

// NewSync creates the sync pipeline use case. notifier may be nil when
// no notification channel is configured.
func NewSync(
	gitLog interfaces.GitLog,
	scanner interfaces.CommitScanner,
	releases interfaces.ReleaseClient,
	notifier interfaces.Notifier,
) interfaces.SyncUseCase {
	return &syncUseCase{
		gitLog:   gitLog,
		scanner:  scanner,
		releases: releases,
		notifier: notifier,
	}
}

// Sync collects the commit range, classifies it, and pushes the outcome
// to the release service.
func (uc *syncUseCase) Sync(ctx context.Context, input *model.SyncInput) (*model.ScanResult, error) {
	logger := ctxlog.From(ctx)

	logger.Info("starting release sync",
		"version", input.Version,
		"base", input.Log.BaseRef,
		"head", input.Log.HeadRef,
		"include_paths", input.Log.IncludePaths,
	)

	if err := uc.gitLog.EnsureCommit(ctx, input.Log.RepoPath, input.Log.BaseRef); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve base commit", goerr.V("base", input.Log.BaseRef))
	}

	commits, err := uc.gitLog.Commits(ctx, input.Log)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to collect commits")
	}

	logger.Info("collected commits", "count", len(commits))

	result := uc.scanner.Scan(ctx, commits, input.Log.IncludePaths)

	// The audit trail is logged verbatim so operators can reconstruct
	// why each identifier landed where it did.
	logger.Debug("scan audit trail", "audit_trail", result.AuditTrail)

	sync := &model.ReleaseSync{
		Version:            input.Version,
		CommitSHA:          headSHA(commits),
		AddedIssues:        result.AddedIssues,
		RevertedIssues:     result.RevertedIssues,
		PullRequestNumbers: result.PullRequestNumbers,
		AuditTrail:         result.AuditTrail,
	}

	syncResult, err := uc.releases.SyncRelease(ctx, sync)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sync release", goerr.V("version", input.Version))
	}

	logger.Info("release synced",
		"release_id", syncResult.ReleaseID,
		"created", syncResult.Created,
		"added_issues", len(sync.AddedIssues),
		"reverted_issues", len(sync.RevertedIssues),
	)

	if uc.notifier != nil {
		if err := uc.notifier.NotifySync(ctx, sync, syncResult); err != nil {
			// Notification is best effort; the release is already synced.
			logger.Warn("failed to send sync notification", "error", err)
		}
	}

	return result, nil
}

func headSHA(commits []model.CommitRecord) string {
	if len(commits) == 0 {
		return ""
	}
	return commits[len(commits)-1].SHA
}
