package model

// IssueSource identifies which commit field an identifier was found in.
type IssueSource string

const (
	SourceBranchName IssueSource = "branch_name"
	SourceMessage    IssueSource = "message"
)

// RevertInfo is the result of unwrapping nested revert wrappers from a
// branch name or a commit message. Depth 0 means the text is not a
// revert; odd depth is a net undo; even depth >= 2 is a net
// re-application.
type RevertInfo struct {
	Depth int    // Number of wrappers stripped
	Inner string // Fully unwrapped text
}

// IsRevert reports whether the text is, net, an undo.
func (r RevertInfo) IsRevert() bool {
	return r.Depth%2 == 1
}

// IdentifierMatch is a single issue identifier found in commit text.
type IdentifierMatch struct {
	Identifier string      // Canonical form: TEAMKEY-NUMBER, upper-cased, no leading zeros
	RawText    string      // Exact substring matched, kept for the audit trail
	Source     IssueSource // Which commit field produced the match
}

// IssueReference records the winning classification of one identifier:
// the commit that put it into its final added or reverted state.
type IssueReference struct {
	Identifier string `json:"identifier"`
	CommitSHA  string `json:"commitSha"`
}

// PullRequestReference records one pull-request number observation.
type PullRequestReference struct {
	Number     int    `json:"number"`
	CommitSHA  string `json:"commitSha"`
	RawMessage string `json:"rawMessage"`
}

// IssueObservation is one audit-trail entry: an identifier seen in a
// particular commit field, whether or not it ultimately won under
// last-write-wins.
type IssueObservation struct {
	CommitSHA  string      `json:"commitSha"`
	Identifier string      `json:"identifier"`
	RawText    string      `json:"rawText"`
	Source     IssueSource `json:"source"`
	FieldValue string      `json:"fieldValue"` // Raw branch name or message the match came from
	Reverted   bool        `json:"reverted"`   // True when seen via the reverted-identifier path
}

// AuditTrail is the append-only record of everything a scan observed,
// independent of which observations won. It is logged verbatim for
// operator debugging and never consulted for decisions.
type AuditTrail struct {
	RunID         string                 `json:"runId"`
	IncludePaths  []string               `json:"includePaths,omitempty"`
	InspectedSHAs []string               `json:"inspectedShas"`
	Issues        []IssueObservation     `json:"issues"`
	PullRequests  []PullRequestReference `json:"pullRequests"`
}

// ScanResult is the outcome of scanning one ordered commit sequence.
// AddedIssues and RevertedIssues are disjoint by identifier.
type ScanResult struct {
	AddedIssues        []IssueReference `json:"addedIssues"`
	RevertedIssues     []IssueReference `json:"revertedIssues"`
	PullRequestNumbers []int            `json:"pullRequestNumbers"`
	AuditTrail         AuditTrail       `json:"auditTrail"`
}
