package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/linear/linear-release/pkg/domain/model"
)

var (
	// Squash merges put the PR number at the end of the first line:
	// "Fix the thing (#123)".
	squashPRPattern = regexp.MustCompile(`\(#(\d+)\)\s*$`)

	// Merge commits start with "Merge pull request #123 from ...".
	mergePRPattern = regexp.MustCompile(`(?i)^merge pull request #(\d+)`)

	// Fallback: any "#123" anywhere in the message.
	anyPRPattern = regexp.MustCompile(`#(\d+)`)

	revertMessagePrefix = regexp.MustCompile(`(?i)^revert "`)
)

// ExtractPullRequestNumbers returns the PR numbers a commit references,
// deduplicated in discovery order. Reverts contribute nothing: a revert
// references the original PR, not a new one. A revert of a revert (even
// branch depth) is an ordinary re-applied change and extracts normally.
func ExtractPullRequestNumbers(commit model.CommitRecord) []int {
	if revertMessagePrefix.MatchString(commit.Message) {
		return nil
	}
	if ResolveBranchRevert(commit.BranchName).IsRevert() {
		return nil
	}

	var numbers []int

	// Squash and merge forms inspect different message regions, so both
	// may contribute.
	firstLine := commit.Message
	if idx := strings.IndexByte(firstLine, '\n'); idx >= 0 {
		firstLine = firstLine[:idx]
	}
	if m := squashPRPattern.FindStringSubmatch(firstLine); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			numbers = append(numbers, n)
		}
	}
	if m := mergePRPattern.FindStringSubmatch(commit.Message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			numbers = append(numbers, n)
		}
	}

	// Only when neither primary form fired, fall back to scanning the
	// whole message.
	if len(numbers) == 0 {
		for _, m := range anyPRPattern.FindAllStringSubmatch(commit.Message, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil {
				numbers = append(numbers, n)
			}
		}
	}

	return dedupeInts(numbers)
}

func dedupeInts(ns []int) []int {
	if len(ns) == 0 {
		return nil
	}

	seen := make(map[int]struct{}, len(ns))
	out := ns[:0]
	for _, n := range ns {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
