package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/linear/linear-release/pkg/domain/model"
	"github.com/linear/linear-release/pkg/usecase"
)

func TestExtractPullRequestNumbers(t *testing.T) {
	tests := []struct {
		name   string
		commit model.CommitRecord
		want   []int
	}{
		{
			name:   "squash form",
			commit: model.CommitRecord{Message: "Title (#123)"},
			want:   []int{123},
		},
		{
			name:   "squash form only checks the first line",
			commit: model.CommitRecord{Message: "Title (#123)\n\ndetails mention (#999)"},
			want:   []int{123},
		},
		{
			name:   "merge form",
			commit: model.CommitRecord{Message: "Merge pull request #431 from org/branch"},
			want:   []int{431},
		},
		{
			name:   "merge form is case insensitive",
			commit: model.CommitRecord{Message: "merge pull request #12 from org/b"},
			want:   []int{12},
		},
		{
			name:   "squash and merge both fire",
			commit: model.CommitRecord{Message: "Merge pull request #431 from org/branch (#123)"},
			want:   []int{123, 431},
		},
		{
			name:   "fallback scans the whole message",
			commit: model.CommitRecord{Message: "see #7 and also #8\nplus #7 again"},
			want:   []int{7, 8},
		},
		{
			name:   "no numbers anywhere",
			commit: model.CommitRecord{Message: "just words"},
			want:   nil,
		},
		{
			name:   "revert message yields nothing",
			commit: model.CommitRecord{Message: `Revert "Title (#123)"`},
			want:   nil,
		},
		{
			name: "revert branch yields nothing",
			commit: model.CommitRecord{
				BranchName: "revert-571-romain/bac-39",
				Message:    "Merge pull request #572 from org/revert-571-romain/bac-39",
			},
			want: nil,
		},
		{
			name: "revert of revert extracts normally",
			commit: model.CommitRecord{
				BranchName: "revert-572-revert-571-romain/bac-39",
				Message:    "Merge pull request #600 from org/revert-572-revert-571-romain/bac-39",
			},
			want: []int{600},
		},
		{
			name:   "empty message",
			commit: model.CommitRecord{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.ExtractPullRequestNumbers(tt.commit)
			gt.V(t, got).Equal(tt.want)
		})
	}
}
