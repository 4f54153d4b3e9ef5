package model

// CommitRecord represents one commit as supplied by the git-log
// collaborator, oldest commits first. BranchName is derived from the
// merge-commit subject or decoration and may be empty for ordinary
// commits in some histories.
type CommitRecord struct {
	SHA        string // Full commit SHA
	BranchName string // Source branch name, empty when unknown
	Message    string // Full commit message, empty when unavailable
}

// LogOptions describes the commit range the git-log collaborator should
// produce, plus optional pathspec filtering.
type LogOptions struct {
	RepoPath     string   // Working directory of the repository
	BaseRef      string   // Exclusive lower bound (e.g. previous release commit)
	HeadRef      string   // Inclusive upper bound, defaults to HEAD
	IncludePaths []string // Pathspec globs limiting which commits count
}
