package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/linear/linear-release/pkg/domain/model"
)

// Issue identifiers look like TEAMKEY-NUMBER: a team key of 1-7 word
// characters, a hyphen, and 1-9 decimal digits. Both ends must sit at a
// token boundary (start/end of text, a non-word character, or an
// underscore), the number must not carry a leading zero, and the match
// must not be followed by ".<digit>" so version strings like 1.57.0 are
// never mistaken for identifiers. RE2 has no lookaround, so the
// boundary and suffix rules are enforced by an explicit scanner rather
// than a single regexp.
const (
	maxTeamKeyLen = 7
	maxNumberLen  = 9
)

// Magic words license extracting an identifier from free-form message
// text. Closing words and contributing phrases share one list; the
// distinction matters to the tracker, not to extraction.
var magicWordPattern = `(?:close[sd]?|closing|fix(?:e[sd])?|fixing|resolve[sd]?|resolving|complete[sd]?|completing|refs?|references|part of|related to|relates to|contributes to|towards?)`

var (
	// Magic word, a space or ": " separator, then one or more
	// identifier-shaped tokens separated by commas, whitespace, "and",
	// or "&". The captured span is re-scanned with FindAllIdentifiers.
	identifierToken = `[A-Za-z0-9_]{1,7}-[0-9]{1,9}`
	magicWordRegexp = regexp.MustCompile(`(?i)\b` + magicWordPattern +
		`(?::[ \t]+|[ \t]+)(` + identifierToken +
		`(?:(?:[ \t]*,[ \t]*|[ \t]+(?:and[ \t]+|&[ \t]*)|[ \t]*&[ \t]*|[ \t]+)` + identifierToken + `)*)`)

	// Linear issue URLs are rewritten to the bare identifier before
	// magic-word matching, so "Fixes https://linear.app/org/issue/ENG-1/slug"
	// reads like "Fixes ENG-1".
	linearIssueURL = regexp.MustCompile(`(?i)https?://linear\.app/[A-Za-z0-9_-]+/issue/(` + identifierToken + `)(?:/[^\s]*)?`)
)

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// FindAllIdentifiers returns every boundary-respecting identifier match
// in text, unconditionally, in left-to-right order. Matches never
// overlap.
func FindAllIdentifiers(text string) []model.IdentifierMatch {
	var matches []model.IdentifierMatch

	for i := 0; i < len(text); i++ {
		if !isWordChar(text[i]) {
			continue
		}
		// A match may only start at a token boundary: the start of the
		// text, after a non-word character, or after an underscore.
		if i > 0 && isWordChar(text[i-1]) && text[i-1] != '_' {
			continue
		}

		end, match, ok := matchIdentifierAt(text, i)
		if ok {
			matches = append(matches, match)
			i = end - 1
			continue
		}
		// Skip the rest of this word run; no identifier can start
		// mid-token (underscores excepted, which restart eligibility).
		for i+1 < len(text) && isWordChar(text[i+1]) && text[i+1] != '_' {
			i++
		}
	}

	return matches
}

// matchIdentifierAt tries to match one identifier starting at offset
// start, which the caller has verified to be a token boundary. It
// returns the end offset (exclusive) of the match on success.
func matchIdentifierAt(text string, start int) (int, model.IdentifierMatch, bool) {
	// Team key: word characters up to the next non-word character,
	// which must be the hyphen.
	i := start
	for i < len(text) && isWordChar(text[i]) {
		i++
	}
	keyLen := i - start
	if keyLen < 1 || keyLen > maxTeamKeyLen {
		return 0, model.IdentifierMatch{}, false
	}
	if i >= len(text) || text[i] != '-' {
		return 0, model.IdentifierMatch{}, false
	}
	key := text[start:i]
	i++ // consume the hyphen

	// Number: maximal digit run, 1-9 digits.
	numStart := i
	for i < len(text) && isDigit(text[i]) {
		i++
	}
	numLen := i - numStart
	if numLen < 1 || numLen > maxNumberLen {
		return 0, model.IdentifierMatch{}, false
	}
	number := text[numStart:i]

	// Trailing boundary: end of text, a non-word character, or an
	// underscore — but never ".<digit>" (version-like suffix).
	if i < len(text) && isWordChar(text[i]) && text[i] != '_' {
		return 0, model.IdentifierMatch{}, false
	}
	if i+1 < len(text) && text[i] == '.' && isDigit(text[i+1]) {
		return 0, model.IdentifierMatch{}, false
	}

	// A leading zero would not survive a decimal round-trip, so the
	// match is rejected rather than silently renumbered.
	if number[0] == '0' && numLen > 1 {
		return 0, model.IdentifierMatch{}, false
	}

	n, err := strconv.Atoi(number)
	if err != nil {
		return 0, model.IdentifierMatch{}, false
	}

	return i, model.IdentifierMatch{
		Identifier: strings.ToUpper(key) + "-" + strconv.Itoa(n),
		RawText:    text[start:i],
	}, true
}

// FindMagicWordIdentifiers extracts identifiers from message text one
// physical line at a time. An identifier only counts when it follows a
// magic word on the same line; bare identifiers elsewhere are ignored.
func FindMagicWordIdentifiers(text string) []model.IdentifierMatch {
	var matches []model.IdentifierMatch

	for _, line := range strings.Split(text, "\n") {
		line = linearIssueURL.ReplaceAllString(line, "$1")

		for _, span := range magicWordRegexp.FindAllStringSubmatch(line, -1) {
			matches = append(matches, FindAllIdentifiers(span[1])...)
		}
	}

	return matches
}

// ExtractAddedIdentifiers returns the identifiers a commit contributes
// to the added set: every identifier in its branch name plus every
// magic-word-gated identifier in its message. A commit that is, net, a
// revert (odd revert depth on either field) contributes nothing here.
// The result is deduplicated case-insensitively on the canonical
// identifier, keeping the first raw form seen.
func ExtractAddedIdentifiers(commit model.CommitRecord) []model.IdentifierMatch {
	branchRevert := ResolveBranchRevert(commit.BranchName)
	messageRevert := ResolveMessageRevert(commit.Message)

	if branchRevert.IsRevert() || messageRevert.IsRevert() {
		return nil
	}

	var matches []model.IdentifierMatch
	for _, m := range FindAllIdentifiers(branchRevert.Inner) {
		m.Source = model.SourceBranchName
		matches = append(matches, m)
	}
	for _, m := range FindMagicWordIdentifiers(commit.Message) {
		m.Source = model.SourceMessage
		matches = append(matches, m)
	}

	return dedupeMatches(matches)
}

// ExtractRevertedIdentifiers returns the identifiers a commit undoes.
// Only fields with odd revert depth contribute; even non-zero depths
// are re-applications and belong to the added path.
func ExtractRevertedIdentifiers(commit model.CommitRecord) []model.IdentifierMatch {
	branchRevert := ResolveBranchRevert(commit.BranchName)
	messageRevert := ResolveMessageRevert(commit.Message)

	if branchRevert.Depth == 0 && messageRevert.Depth == 0 {
		return nil
	}

	var matches []model.IdentifierMatch
	if branchRevert.IsRevert() {
		for _, m := range FindAllIdentifiers(branchRevert.Inner) {
			m.Source = model.SourceBranchName
			matches = append(matches, m)
		}
	}
	if messageRevert.IsRevert() {
		for _, m := range FindMagicWordIdentifiers(messageRevert.Inner) {
			m.Source = model.SourceMessage
			matches = append(matches, m)
		}
	}

	return dedupeMatches(matches)
}

// dedupeMatches keeps the first occurrence of each canonical
// identifier, preserving order.
func dedupeMatches(matches []model.IdentifierMatch) []model.IdentifierMatch {
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if _, ok := seen[m.Identifier]; ok {
			continue
		}
		seen[m.Identifier] = struct{}{}
		out = append(out, m)
	}
	return out
}
