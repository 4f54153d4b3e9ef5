package gitlog_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/linear/linear-release/pkg/infra/gitlog"
)

func TestParseLog(t *testing.T) {
	raw := "abc123\x1fHEAD -> main\x1fMerge pull request #571 from org/romain/bac-39\n\nbody text\x1e\n" +
		"def456\x1f\x1fFixes ENG-7\x1e\n"

	commits := gitlog.ParseLog(raw)
	gt.A(t, commits).Length(2)

	gt.V(t, commits[0].SHA).Equal("abc123")
	gt.V(t, commits[0].BranchName).Equal("romain/bac-39")
	gt.V(t, commits[0].Message).Equal("Merge pull request #571 from org/romain/bac-39\n\nbody text")

	gt.V(t, commits[1].SHA).Equal("def456")
	gt.V(t, commits[1].BranchName).Equal("")
	gt.V(t, commits[1].Message).Equal("Fixes ENG-7")
}

func TestParseLog_Empty(t *testing.T) {
	gt.A(t, gitlog.ParseLog("")).Length(0)
	gt.A(t, gitlog.ParseLog("\n")).Length(0)
}

func TestBranchName(t *testing.T) {
	tests := []struct {
		name       string
		decoration string
		message    string
		want       string
	}{
		{
			name:    "merge subject wins",
			message: "Merge pull request #12 from acme/feature/eng-9",
			want:    "feature/eng-9",
		},
		{
			name:    "merge subject without owner",
			message: "Merge pull request #12 from feature-branch",
			want:    "feature-branch",
		},
		{
			name:       "decoration branch",
			decoration: "HEAD -> main, origin/feature/eng-123",
			message:    "ordinary commit",
			want:       "main",
		},
		{
			name:       "decoration skips tags",
			decoration: "tag: v1.2.0, origin/release/plat-4",
			message:    "ordinary commit",
			want:       "release/plat-4",
		},
		{
			name:       "no decoration",
			decoration: "",
			message:    "ordinary commit",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, gitlog.BranchName(tt.decoration, tt.message)).Equal(tt.want)
		})
	}
}
