// ABOUTME: Deliberation types shared by the pipeline and the decision engine
// ABOUTME: Defines Question, Argument, Vote, Round, Tally and Decision
package models

import "strings"

// Question is the immutable input of a single pipeline run
type Question struct {
	Text     string `json:"question"`
	Document string `json:"document,omitempty"`
}

// HasDocument reports whether a supporting document was supplied
func (q Question) HasDocument() bool {
	return strings.TrimSpace(q.Document) != ""
}

// Argument is one advocate's contribution to the run's argument log
type Argument struct {
	Side     Side   `json:"side"`
	Advocate string `json:"advocate"`
	Text     string `json:"text"`
}

// Vote is a single recorded judgment
type Vote struct {
	Adjudicator string   `json:"adjudicator"`
	Judgment    Judgment `json:"judgment"`
}

// Round maps adjudicator names to their judgment for one pass of the panel.
// A later vote from the same adjudicator replaces the earlier one but keeps
// its original position in Votes().
type Round struct {
	Number int
	order  []string
	votes  map[string]Judgment
}

// NewRound creates an empty round with the given 1-based number
func NewRound(number int) *Round {
	return &Round{
		Number: number,
		votes:  make(map[string]Judgment),
	}
}

// Record stores a judgment for the adjudicator (last write wins)
func (r *Round) Record(adjudicator string, judgment Judgment) {
	if _, seen := r.votes[adjudicator]; !seen {
		r.order = append(r.order, adjudicator)
	}
	r.votes[adjudicator] = judgment
}

// Get returns the adjudicator's judgment in this round
func (r *Round) Get(adjudicator string) (Judgment, bool) {
	j, ok := r.votes[adjudicator]
	return j, ok
}

// Len returns the number of adjudicators who voted
func (r *Round) Len() int {
	return len(r.votes)
}

// Votes returns the recorded votes in first-recorded order
func (r *Round) Votes() []Vote {
	out := make([]Vote, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Vote{Adjudicator: name, Judgment: r.votes[name]})
	}
	return out
}

// Tally counts the round's current judgments
func (r *Round) Tally() Tally {
	var t Tally
	for _, j := range r.votes {
		switch j {
		case ObviouslyTenant:
			t.ObviouslyTenant++
		case MostLikelyTenant:
			t.MostLikelyTenant++
		case MostLikelyLandlord:
			t.MostLikelyLandlord++
		case ObviouslyLandlord:
			t.ObviouslyLandlord++
		default:
			t.NotSure++
		}
	}
	return t
}

// Tally holds per-judgment vote counts for a round
type Tally struct {
	ObviouslyTenant    int `json:"obviously_tenant"`
	MostLikelyTenant   int `json:"most_likely_tenant"`
	NotSure            int `json:"not_sure"`
	MostLikelyLandlord int `json:"most_likely_landlord"`
	ObviouslyLandlord  int `json:"obviously_landlord"`
}

// Tenant returns the number of votes leaning towards the tenant
func (t Tally) Tenant() int {
	return t.ObviouslyTenant + t.MostLikelyTenant
}

// Landlord returns the number of votes leaning towards the landlord
func (t Tally) Landlord() int {
	return t.ObviouslyLandlord + t.MostLikelyLandlord
}

// Outcome is the collective result of a deliberation
type Outcome string

const (
	// FavorsTenant - the panel found for the tenant
	FavorsTenant Outcome = "tenant"

	// FavorsLandlord - the panel found for the landlord
	FavorsLandlord Outcome = "landlord"

	// Undecided - no quorum was reached
	Undecided Outcome = "undecided"
)

// Decision is an outcome plus the round at which it was reached.
// Round is 0 when no decision was reached.
type Decision struct {
	Outcome Outcome `json:"outcome"`
	Round   int     `json:"round,omitempty"`
}

// Reached reports whether the decision names a prevailing side
func (d Decision) Reached() bool {
	return d.Round > 0 && (d.Outcome == FavorsTenant || d.Outcome == FavorsLandlord)
}
