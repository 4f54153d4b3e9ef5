package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/linear/linear-release/pkg/usecase"
)

func TestResolveBranchRevert(t *testing.T) {
	tests := []struct {
		name      string
		branch    string
		wantDepth int
		wantInner string
	}{
		{
			name:      "ordinary feature branch",
			branch:    "feature/eng-123-add-feature",
			wantDepth: 0,
			wantInner: "feature/eng-123-add-feature",
		},
		{
			name:      "single revert",
			branch:    "revert-571-romain/bac-39",
			wantDepth: 1,
			wantInner: "romain/bac-39",
		},
		{
			name:      "revert of revert",
			branch:    "revert-572-revert-571-romain/bac-39",
			wantDepth: 2,
			wantInner: "romain/bac-39",
		},
		{
			name:      "org prefix before revert segment",
			branch:    "org/revert-571-romain/bac-39",
			wantDepth: 1,
			wantInner: "romain/bac-39",
		},
		{
			name:      "case insensitive prefix",
			branch:    "Revert-12-fix/plat-7",
			wantDepth: 1,
			wantInner: "fix/plat-7",
		},
		{
			name:      "revert without PR number is not a wrapper",
			branch:    "revert-the-thing",
			wantDepth: 0,
			wantInner: "revert-the-thing",
		},
		{
			name:      "empty branch",
			branch:    "",
			wantDepth: 0,
			wantInner: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := usecase.ResolveBranchRevert(tt.branch)
			gt.V(t, info.Depth).Equal(tt.wantDepth)
			gt.V(t, info.Inner).Equal(tt.wantInner)
		})
	}
}

func TestResolveMessageRevert(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantDepth int
		wantInner string
	}{
		{
			name:      "ordinary message",
			message:   "Fixes ENG-123: add feature",
			wantDepth: 0,
			wantInner: "Fixes ENG-123: add feature",
		},
		{
			name:      "single revert",
			message:   `Revert "Fixes DRIVE-320: memory leak"`,
			wantDepth: 1,
			wantInner: "Fixes DRIVE-320: memory leak",
		},
		{
			name:      "revert with trailing body",
			message:   "Revert \"Fixes DRIVE-320: memory leak\"\n\nThis reverts commit abc123.",
			wantDepth: 1,
			wantInner: "Fixes DRIVE-320: memory leak",
		},
		{
			name:      "nested revert",
			message:   `Revert "Revert "Fixes DRIVE-320""`,
			wantDepth: 2,
			wantInner: "Fixes DRIVE-320",
		},
		{
			name:      "case insensitive wrapper",
			message:   `revert "Fix the thing"`,
			wantDepth: 1,
			wantInner: "Fix the thing",
		},
		{
			name:      "missing closing quote stops unwrapping",
			message:   `Revert "no closing quote`,
			wantDepth: 0,
			wantInner: `Revert "no closing quote`,
		},
		{
			name:      "empty message",
			message:   "",
			wantDepth: 0,
			wantInner: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := usecase.ResolveMessageRevert(tt.message)
			gt.V(t, info.Depth).Equal(tt.wantDepth)
			gt.V(t, info.Inner).Equal(tt.wantInner)
		})
	}
}

func TestRevertInfoParity(t *testing.T) {
	gt.V(t, usecase.ResolveBranchRevert("revert-1-x/a-1").IsRevert()).Equal(true)
	gt.V(t, usecase.ResolveBranchRevert("revert-2-revert-1-x/a-1").IsRevert()).Equal(false)
	gt.V(t, usecase.ResolveBranchRevert("x/a-1").IsRevert()).Equal(false)
}
