package usecase

import (
	"regexp"
	"strings"

	"github.com/linear/linear-release/pkg/domain/model"
)

// maxRevertDepth bounds the unwrap loops so pathological input cannot
// cause unbounded work.
const maxRevertDepth = 100

var (
	// GitHub names revert branches "revert-<pr>-<original-branch>".
	branchRevertPrefix = regexp.MustCompile(`(?i)^revert-\d+-`)

	// GitHub titles revert commits `Revert "<original title>"`, and a
	// revert of a revert nests the quotes unescaped. The greedy group
	// captures up to the last quote; anything after it is discarded.
	messageRevertWrapper = regexp.MustCompile(`(?is)^revert "(.*)"(.*)$`)
)

// ResolveBranchRevert unwraps nested revert wrappers from a branch
// name. The branch is treated as a slash-separated path: any
// organization or user prefix before the first "revert-<n>-" segment is
// dropped, then leading "revert-<n>-" prefixes are stripped one by one.
func ResolveBranchRevert(branchName string) model.RevertInfo {
	text := branchName

	// Drop "org/" style prefixes so "org/revert-571-x" unwraps like
	// "revert-571-x".
	if segments := strings.Split(text, "/"); len(segments) > 1 {
		for i, seg := range segments {
			if branchRevertPrefix.MatchString(seg) {
				text = strings.Join(segments[i:], "/")
				break
			}
		}
	}

	depth := 0
	for depth < maxRevertDepth {
		loc := branchRevertPrefix.FindStringIndex(text)
		if loc == nil {
			break
		}
		text = text[loc[1]:]
		depth++
	}

	if depth == 0 {
		return model.RevertInfo{Depth: 0, Inner: branchName}
	}
	return model.RevertInfo{Depth: depth, Inner: text}
}

// ResolveMessageRevert unwraps nested `Revert "..."` wrappers from a
// commit message. Each unwrap replaces the working text with the quoted
// inner content and discards the trailing text. Malformed nesting stops
// unwrapping at the last successful depth.
func ResolveMessageRevert(message string) model.RevertInfo {
	text := message
	depth := 0

	for depth < maxRevertDepth {
		m := messageRevertWrapper.FindStringSubmatch(text)
		if m == nil {
			break
		}
		text = m[1]
		depth++
	}

	if depth == 0 {
		return model.RevertInfo{Depth: 0, Inner: message}
	}
	return model.RevertInfo{Depth: depth, Inner: text}
}
