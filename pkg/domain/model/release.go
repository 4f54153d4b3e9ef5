package model

// ReleaseSync is the payload handed to the release-sync collaborator
// after a scan: which issue references to link or unlink to a release.
type ReleaseSync struct {
	Version            string           `json:"version"`
	CommitSHA          string           `json:"commitSha"`
	AddedIssues        []IssueReference `json:"addedIssues"`
	RevertedIssues     []IssueReference `json:"revertedIssues"`
	PullRequestNumbers []int            `json:"pullRequestNumbers"`
	AuditTrail         AuditTrail       `json:"auditTrail"`
}

// ReleaseSyncResult is what the remote service reports back.
type ReleaseSyncResult struct {
	ReleaseID string `json:"releaseId"`
	Created   bool   `json:"created"` // True when the release was created, false when updated
}

// SyncInput drives one run of the sync pipeline.
type SyncInput struct {
	Version string
	Log     LogOptions
}
