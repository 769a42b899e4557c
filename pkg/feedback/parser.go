// Package feedback normalizes free-text LLM feedback into structured
// results against a closed grammar: "label: number" score lines over a
// fixed set of dimensions, and an enumerated flag vocabulary. Anything
// outside the grammar is discarded, never an error — malformed model
// output degrades to an empty result.
package feedback

import (
	"regexp"
	"strconv"
	"strings"
)

// ScoreDimensions are the only labels a score response may carry.
var ScoreDimensions = []string{"Concept", "Depth", "Reasoning", "Clarity", "Confidence"}

// AllowedFlags is the closed vocabulary of answer flags.
var AllowedFlags = []string{"OFF_TOPIC", "INCORRECT", "VAGUE", "TOO_SHORT", "MINOR_ERROR"}

const (
	minScore = 1
	maxScore = 5
)

// Models tend to wrap labels in markdown asterisks ("**Depth**: 4").
var scoreLineRe = regexp.MustCompile(`(?:\*+)?([A-Za-z]+)(?:\*+)?\s*:\s*(\d+)`)

var flagTokenRe = regexp.MustCompile(`[A-Z][A-Z_]{2,}`)

// ParseScores extracts the five scoring dimensions from raw model text.
// Labels are matched case-insensitively and emitted in canonical casing.
// Unknown labels and out-of-range values are dropped; a dimension the
// model skipped is simply absent from the result.
func ParseScores(raw string) map[string]int {
	scores := make(map[string]int)

	canonical := make(map[string]string, len(ScoreDimensions))
	for _, dim := range ScoreDimensions {
		canonical[strings.ToLower(dim)] = dim
	}

	for _, m := range scoreLineRe.FindAllStringSubmatch(raw, -1) {
		dim, ok := canonical[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		val, err := strconv.Atoi(m[2])
		if err != nil || val < minScore || val > maxScore {
			continue
		}
		// First occurrence wins if the model repeats a label.
		if _, seen := scores[dim]; !seen {
			scores[dim] = val
		}
	}

	return scores
}

// ParseFlags extracts flags from raw model text, restricted to
// AllowedFlags, deduplicated, in order of first appearance. "NONE" and
// any other token outside the vocabulary are ignored.
func ParseFlags(raw string) []string {
	allowed := make(map[string]bool, len(AllowedFlags))
	for _, f := range AllowedFlags {
		allowed[f] = true
	}

	flags := []string{}
	seen := make(map[string]bool)
	for _, token := range flagTokenRe.FindAllString(raw, -1) {
		if !allowed[token] || seen[token] {
			continue
		}
		seen[token] = true
		flags = append(flags, token)
	}

	return flags
}
