package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"

	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
)

type issueAction int

const (
	actionAdded issueAction = iota
	actionReverted
)

type scanner struct{}

// NewScanner creates a CommitScanner.
func NewScanner() interfaces.CommitScanner {
	return &scanner{}
}

// Scan walks commits oldest-first and folds per-commit extraction into
// the final classification under last-write-wins: when an identifier is
// observed in contradictory roles across the history, only its latest
// observation decides which list it lands in. The audit trail keeps
// every observation regardless.
//
// Callers must supply commits oldest first; the scanner cannot detect
// mis-ordering, and a reversed sequence silently inverts outcomes.
func (s *scanner) Scan(ctx context.Context, commits []model.CommitRecord, includePaths []string) *model.ScanResult {
	logger := ctxlog.From(ctx)

	lastAction := map[string]issueAction{}
	addedRefs := map[string]model.IssueReference{}
	revertedRefs := map[string]model.IssueReference{}

	// Identifiers in first-observation order, so the final partition is
	// deterministic rather than map-iteration dependent.
	var identifierOrder []string
	trackIdentifier := func(id string) {
		if _, ok := lastAction[id]; !ok {
			identifierOrder = append(identifierOrder, id)
		}
	}

	var prNumbers []int
	prSeen := map[int]struct{}{}

	trail := model.AuditTrail{
		RunID:        scanRunID(commits),
		IncludePaths: includePaths,
	}

	for _, commit := range commits {
		trail.InspectedSHAs = append(trail.InspectedSHAs, commit.SHA)

		reverted := ExtractRevertedIdentifiers(commit)
		for _, m := range reverted {
			trail.Issues = append(trail.Issues, newObservation(commit, m, true))
			trackIdentifier(m.Identifier)
			lastAction[m.Identifier] = actionReverted
			revertedRefs[m.Identifier] = model.IssueReference{
				Identifier: m.Identifier,
				CommitSHA:  commit.SHA,
			}
		}

		added := ExtractAddedIdentifiers(commit)
		for _, m := range added {
			trail.Issues = append(trail.Issues, newObservation(commit, m, false))
			trackIdentifier(m.Identifier)
			lastAction[m.Identifier] = actionAdded
			addedRefs[m.Identifier] = model.IssueReference{
				Identifier: m.Identifier,
				CommitSHA:  commit.SHA,
			}
		}

		for _, n := range ExtractPullRequestNumbers(commit) {
			if _, ok := prSeen[n]; ok {
				continue
			}
			prSeen[n] = struct{}{}
			prNumbers = append(prNumbers, n)
			trail.PullRequests = append(trail.PullRequests, model.PullRequestReference{
				Number:     n,
				CommitSHA:  commit.SHA,
				RawMessage: commit.Message,
			})
		}

		logger.Debug("scanned commit",
			"sha", commit.SHA,
			"added", identifiersOf(added),
			"reverted", identifiersOf(reverted),
		)
	}

	result := &model.ScanResult{
		PullRequestNumbers: prNumbers,
		AuditTrail:         trail,
	}
	for _, id := range identifierOrder {
		switch lastAction[id] {
		case actionAdded:
			result.AddedIssues = append(result.AddedIssues, addedRefs[id])
		case actionReverted:
			result.RevertedIssues = append(result.RevertedIssues, revertedRefs[id])
		}
	}

	logger.Info("commit scan complete",
		"run_id", trail.RunID,
		"commits", len(commits),
		"added_issues", len(result.AddedIssues),
		"reverted_issues", len(result.RevertedIssues),
		"pull_requests", len(result.PullRequestNumbers),
	)

	return result
}

// scanRunID derives a stable UUID from the scanned SHAs so repeated
// scans of the same history correlate to the same ID in operator logs
// and remote payloads, keeping Scan a pure function of its input.
func scanRunID(commits []model.CommitRecord) string {
	var sb strings.Builder
	for _, c := range commits {
		sb.WriteString(c.SHA)
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(sb.String())).String()
}

func newObservation(commit model.CommitRecord, m model.IdentifierMatch, reverted bool) model.IssueObservation {
	fieldValue := commit.Message
	if m.Source == model.SourceBranchName {
		fieldValue = commit.BranchName
	}
	return model.IssueObservation{
		CommitSHA:  commit.SHA,
		Identifier: m.Identifier,
		RawText:    m.RawText,
		Source:     m.Source,
		FieldValue: fieldValue,
		Reverted:   reverted,
	}
}

func identifiersOf(matches []model.IdentifierMatch) []string {
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Identifier)
	}
	return ids
}
