// ABOUTME: Text conventions shared between the pipeline and its roles
// ABOUTME: Marker detection, escape token, topic list parsing and verdict lines
package crew

import (
	"regexp"
	"strings"

	"github.com/harper/legal-crew/internal/models"
)

const (
	// MarkerNeedMoreContext is emitted by the contract scan when the
	// document does not answer the question
	MarkerNeedMoreContext = "NEED_MORE_CONTEXT"

	// MarkerNeedContract is emitted by later roles that need the contract
	MarkerNeedContract = "NEED_CONTRACT"

	// EscapeToken is the fast-answer role's way of declining
	EscapeToken = "NEEDS_EXPERT"

	// DefaultContextMessage is returned when a role asks for the contract
	// without saying anything else
	DefaultContextMessage = "Please upload your rental contract so this question can be answered."
)

// HasMarker reports whether the output contains the marker
func HasMarker(output, marker string) bool {
	return strings.Contains(output, marker)
}

// contextMessage strips the marker from output and falls back to the
// default message when nothing is left
func contextMessage(output, marker string) string {
	msg := strings.TrimSpace(strings.ReplaceAll(output, marker, ""))
	msg = strings.Trim(msg, " \t\n:-")
	if msg == "" {
		return DefaultContextMessage
	}
	return msg
}

// IsEscape reports whether the fast-answer output declined to answer.
// The token may be quoted or followed by more text.
func IsEscape(output string) bool {
	cleaned := strings.ToUpper(strings.TrimSpace(output))
	cleaned = strings.TrimLeft(cleaned, "'\"`*")
	return strings.HasPrefix(cleaned, EscapeToken)
}

// ParseTopics turns a topic selection output such as
// `["Woningwet", "Burgerlijk Wetboek Boek 7"]` into titles.
// Duplicates and ranking order are kept.
func ParseTopics(raw string) models.TopicRequest {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")

	var titles models.TopicRequest
	for _, piece := range strings.Split(trimmed, ",") {
		title := strings.TrimSpace(piece)
		title = strings.Trim(title, "\"'`")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

var rentWord = regexp.MustCompile(`\b(rent|huur)`)

var increaseWords = []string{"increase", "raise", "rise", "verhoging", "verhogen", "verhoogd", "stijging", "indexation", "indexatie"}

var rentIncreaseWords = []string{"huurverhoging", "huurstijging", "huurindexatie"}

// IsRentIncrease is the keyword test that routes a question through
// domain analysis
func IsRentIncrease(question string) bool {
	q := strings.ToLower(question)
	for _, w := range rentIncreaseWords {
		if strings.Contains(q, w) {
			return true
		}
	}
	return rentWord.MatchString(q) && containsAny(q, increaseWords)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Verdict is the dispositive finding of domain analysis
type Verdict string

const (
	VerdictLegal   Verdict = "legal"
	VerdictIllegal Verdict = "illegal"
)

var verdictLine = regexp.MustCompile(`(?im)^[\s*#>_-]*verdict[\s*_]*:[\s*_]*(illegal|legal)\b`)

// ParseVerdict finds a "VERDICT: LEGAL" or "VERDICT: ILLEGAL" line
func ParseVerdict(output string) (Verdict, bool) {
	m := verdictLine.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return Verdict(strings.ToLower(m[1])), true
}
