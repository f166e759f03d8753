// ABOUTME: Judgment is an adjudicator's five-point ordinal vote
// ABOUTME: Parses raw role output into a Judgment, falling back to NotSure
package models

import (
	"regexp"
	"strings"
)

// Judgment represents an adjudicator's vote for one round
type Judgment string

const (
	// ObviouslyTenant - Strong conviction that the tenant (protected party) prevails
	ObviouslyTenant Judgment = "obviously_tenant"

	// MostLikelyTenant - The tenant probably prevails
	MostLikelyTenant Judgment = "most_likely_tenant"

	// NotSure - No side can be favored
	NotSure Judgment = "not_sure"

	// MostLikelyLandlord - The landlord probably prevails
	MostLikelyLandlord Judgment = "most_likely_landlord"

	// ObviouslyLandlord - Strong conviction that the landlord (counter-party) prevails
	ObviouslyLandlord Judgment = "obviously_landlord"
)

// Judgments lists every valid judgment from tenant-strong to landlord-strong
var Judgments = []Judgment{
	ObviouslyTenant,
	MostLikelyTenant,
	NotSure,
	MostLikelyLandlord,
	ObviouslyLandlord,
}

// IsValid reports whether j is one of the five known judgments
func (j Judgment) IsValid() bool {
	for _, known := range Judgments {
		if j == known {
			return true
		}
	}
	return false
}

// Side returns the party this judgment leans towards, or SideNone for NotSure
func (j Judgment) Side() Side {
	switch j {
	case ObviouslyTenant, MostLikelyTenant:
		return SideTenant
	case ObviouslyLandlord, MostLikelyLandlord:
		return SideLandlord
	default:
		return SideNone
	}
}

// IsStrong reports whether the judgment is one of the two "obviously" values
func (j Judgment) IsStrong() bool {
	return j == ObviouslyTenant || j == ObviouslyLandlord
}

var judgmentNoise = regexp.MustCompile("[`*\"'.,:;!()\\[\\]]")

// ParseJudgment converts raw adjudicator output into a Judgment.
// An exact token wins; otherwise the output must mention exactly one
// distinct token. Anything else is reported as not ok and yields NotSure.
func ParseJudgment(raw string) (Judgment, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = judgmentNoise.ReplaceAllString(cleaned, " ")
	cleaned = strings.NewReplacer("-", "_").Replace(cleaned)

	token := strings.Join(strings.Fields(cleaned), "_")
	if j := Judgment(token); j.IsValid() {
		return j, true
	}

	var found Judgment
	for _, word := range strings.Fields(cleaned) {
		j := Judgment(word)
		if !j.IsValid() {
			continue
		}
		if found != "" && found != j {
			return NotSure, false
		}
		found = j
	}
	if found == "" {
		return NotSure, false
	}
	return found, true
}
