// Package mention parses @mention tokens out of free-form task text.
// Parsing is purely syntactic: tokens are not checked against the user
// directory, so a mention of someone who never signed up still produces
// a token (and, downstream, a notification addressed to it).
package mention

import (
	"regexp"
	"strings"
)

// mentionPattern matches an @ sigil followed by a maximal run of letters,
// digits, whitespace, and hyphens.
//
// The whitespace in the character class is deliberate and load-bearing: a
// candidate run is consumed greedily until punctuation, a newline escape, or
// another @ is hit, so "ping @alice and @bob re: launch" yields the tokens
// "alice and" and "bob re". Supported shapes: @john, @john doe, @john-doe.
// Do not narrow this class without a product decision; clients rely on
// multi-word mentions surviving extraction.
var mentionPattern = regexp.MustCompile(`@([a-zA-Z0-9\s-]+)`)

// Extract returns the mention tokens found in text, in first-occurrence
// order. Tokens are trimmed of surrounding whitespace, empty candidates are
// dropped, and duplicates are removed case-insensitively keeping the first
// literal casing seen.
//
// Extract is a pure function: it holds no state, cannot fail, and returns
// nil for text containing no mentions.
func Extract(text string) []string {
	if text == "" {
		return nil
	}

	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	var mentions []string
	for _, match := range matches {
		token := strings.TrimSpace(match[1])
		if token == "" {
			continue
		}

		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		mentions = append(mentions, token)
	}

	return mentions
}

// FormatForDisplay wraps each mention in <mention> tags so the frontend can
// highlight them. The text is otherwise returned unchanged.
func FormatForDisplay(text string) string {
	if text == "" {
		return text
	}
	return mentionPattern.ReplaceAllString(text, "<mention>@$1</mention>")
}
