package gitlog

import (
	"context"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/linear/linear-release/pkg/domain/interfaces"
	"github.com/linear/linear-release/pkg/domain/model"
)

const (
	// Record/field separators for the git pretty format. Unit and
	// record separator control characters cannot appear in commit text.
	fieldSep  = "\x1f"
	recordSep = "\x1e"

	// deepenStep and maxDeepenRounds bound progressive history
	// deepening of shallow clones.
	deepenStep      = 100
	maxDeepenRounds = 20
)

var mergeSubjectPattern = regexp.MustCompile(`(?i)^merge pull request #\d+ from (\S+)`)

// GitLog shells out to the git binary to collect commit records.
type GitLog struct {
	gitPath string
}

// New creates a GitLog collaborator using the git binary on PATH.
func New() *GitLog {
	return &GitLog{gitPath: "git"}
}

var _ interfaces.GitLog = (*GitLog)(nil)

// EnsureCommit makes sure ref is resolvable in the repository,
// progressively deepening a shallow clone until it is. CI checkouts
// commonly start with depth 1, which hides the base commit of the
// release range.
func (g *GitLog) EnsureCommit(ctx context.Context, repoPath, ref string) error {
	logger := ctxlog.From(ctx)

	for round := 0; ; round++ {
		if g.commitExists(ctx, repoPath, ref) {
			return nil
		}

		if round >= maxDeepenRounds || !g.isShallow(ctx, repoPath) {
			return goerr.New("base commit is not reachable in this checkout",
				goerr.V("ref", ref), goerr.V("repo", repoPath))
		}

		logger.Debug("deepening shallow clone", "ref", ref, "round", round)
		if out, err := g.run(ctx, repoPath, "fetch", "--deepen", strconv.Itoa(deepenStep)); err != nil {
			return goerr.Wrap(err, "failed to deepen shallow clone", goerr.V("output", out))
		}
	}
}

// Commits returns the commits in (base, head], oldest first, limited to
// opts.IncludePaths when set.
func (g *GitLog) Commits(ctx context.Context, opts model.LogOptions) ([]model.CommitRecord, error) {
	head := opts.HeadRef
	if head == "" {
		head = "HEAD"
	}

	args := []string{
		"log",
		"--reverse",
		"--format=%H" + fieldSep + "%D" + fieldSep + "%B" + recordSep,
		opts.BaseRef + ".." + head,
	}
	if len(opts.IncludePaths) > 0 {
		args = append(args, "--")
		args = append(args, opts.IncludePaths...)
	}

	out, err := g.run(ctx, opts.RepoPath, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "git log failed",
			goerr.V("base", opts.BaseRef), goerr.V("head", head), goerr.V("output", out))
	}

	return ParseLog(out), nil
}

func (g *GitLog) commitExists(ctx context.Context, repoPath, ref string) bool {
	_, err := g.run(ctx, repoPath, "cat-file", "-e", ref+"^{commit}")
	return err == nil
}

func (g *GitLog) isShallow(ctx context.Context, repoPath string) bool {
	out, err := g.run(ctx, repoPath, "rev-parse", "--is-shallow-repository")
	return err == nil && strings.TrimSpace(out) == "true"
}

func (g *GitLog) run(ctx context.Context, repoPath string, args ...string) (string, error) {
	cmdArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, g.gitPath, cmdArgs...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), goerr.Wrap(err, "git command failed",
			goerr.V("args", args))
	}
	return string(out), nil
}

// ParseLog splits raw `git log` output in the GitLog pretty format into
// commit records. Exposed for testing against captured output.
func ParseLog(raw string) []model.CommitRecord {
	var commits []model.CommitRecord

	for _, record := range strings.Split(raw, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		parts := strings.SplitN(record, fieldSep, 3)
		if len(parts) != 3 {
			continue
		}

		message := strings.TrimRight(parts[2], "\n")
		commits = append(commits, model.CommitRecord{
			SHA:        strings.TrimSpace(parts[0]),
			BranchName: BranchName(parts[1], message),
			Message:    message,
		})
	}

	return commits
}

// BranchName derives the source branch of a commit from its merge
// subject ("Merge pull request #N from owner/branch", owner dropped)
// or, failing that, from the %D decoration.
func BranchName(decoration, message string) string {
	if m := mergeSubjectPattern.FindStringSubmatch(message); m != nil {
		full := m[1]
		if idx := strings.IndexByte(full, '/'); idx >= 0 {
			return full[idx+1:]
		}
		return full
	}

	return branchFromDecoration(decoration)
}

// branchFromDecoration picks the first branch ref out of a %D
// decoration like "HEAD -> main, origin/feature/eng-123, tag: v1.2.0".
func branchFromDecoration(decoration string) string {
	for _, ref := range strings.Split(decoration, ",") {
		ref = strings.TrimSpace(ref)
		if ref == "" || ref == "HEAD" || strings.HasPrefix(ref, "tag: ") {
			continue
		}
		if idx := strings.Index(ref, "-> "); idx >= 0 {
			ref = ref[idx+3:]
		}
		if rest, ok := strings.CutPrefix(ref, "origin/"); ok {
			ref = rest
		}
		return ref
	}
	return ""
}
