// ABOUTME: Decision engine: records per-round judgments and applies quorum rules
// ABOUTME: Owns the deliberation state of a single run (rounds, argument log, decision)
package voting

import (
	"fmt"
	"strings"

	"github.com/harper/legal-crew/internal/models"
)

// Quorum thresholds. Round 1 needs near-unanimity, later rounds a simple
// majority of leaning votes.
const (
	firstRoundUnanimous     = 3
	firstRoundStrongWithTie = 2
	firstRoundLikelyWithTie = 1
	laterRoundMajority      = 2
)

// NoVotesMessage is the summary of a tracker with no rounds
const NoVotesMessage = "No votes recorded yet for any completed round."

// Tracker is the deliberation state of one run. It is not safe for
// concurrent use; every run owns its own Tracker.
type Tracker struct {
	rounds    []*models.Round
	arguments []models.Argument
	decision  *models.Decision
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// StartRound opens the next round and returns its number
func (t *Tracker) StartRound() int {
	t.rounds = append(t.rounds, models.NewRound(len(t.rounds)+1))
	return len(t.rounds)
}

// CurrentRound returns the number of the latest round, 0 if none
func (t *Tracker) CurrentRound() int {
	return len(t.rounds)
}

// Round returns the round with the given 1-based number
func (t *Tracker) Round(number int) (*models.Round, bool) {
	if number < 1 || number > len(t.rounds) {
		return nil, false
	}
	return t.rounds[number-1], true
}

// RecordVote stores a judgment for an adjudicator in the given round.
// Recording into round 1 of an empty tracker opens it; any other unknown
// round is an error. A second vote by the same adjudicator replaces the first.
func (t *Tracker) RecordVote(round int, adjudicator string, judgment models.Judgment) error {
	if round == 1 && len(t.rounds) == 0 {
		t.StartRound()
	}
	r, ok := t.Round(round)
	if !ok {
		return fmt.Errorf("round %d has not been started (current round %d)", round, len(t.rounds))
	}
	if !judgment.IsValid() {
		return fmt.Errorf("invalid judgment %q for %s", judgment, adjudicator)
	}
	r.Record(adjudicator, judgment)
	return nil
}

// AddArgument appends an advocate's argument to the log
func (t *Tracker) AddArgument(arg models.Argument) {
	t.arguments = append(t.arguments, arg)
}

// Arguments returns a copy of the argument log in recording order
func (t *Tracker) Arguments() []models.Argument {
	out := make([]models.Argument, len(t.arguments))
	copy(out, t.arguments)
	return out
}

// Evaluate applies the quorum rule for the given round to its current
// votes. It reports false when no side has prevailed.
func (t *Tracker) Evaluate(round int) (models.Decision, bool) {
	r, ok := t.Round(round)
	if !ok || r.Len() == 0 {
		return models.Decision{Outcome: models.Undecided}, false
	}
	return Evaluate(round, r.Tally())
}

// Evaluate is the pure quorum rule over a tally
func Evaluate(round int, tally models.Tally) (models.Decision, bool) {
	if round == 1 {
		if tally.ObviouslyTenant >= firstRoundUnanimous ||
			(tally.ObviouslyTenant >= firstRoundStrongWithTie && tally.MostLikelyTenant >= firstRoundLikelyWithTie) {
			return models.Decision{Outcome: models.FavorsTenant, Round: round}, true
		}
		if tally.ObviouslyLandlord >= firstRoundUnanimous ||
			(tally.ObviouslyLandlord >= firstRoundStrongWithTie && tally.MostLikelyLandlord >= firstRoundLikelyWithTie) {
			return models.Decision{Outcome: models.FavorsLandlord, Round: round}, true
		}
		return models.Decision{Outcome: models.Undecided}, false
	}

	if round >= 2 {
		if tally.Tenant() >= laterRoundMajority {
			return models.Decision{Outcome: models.FavorsTenant, Round: round}, true
		}
		if tally.Landlord() >= laterRoundMajority {
			return models.Decision{Outcome: models.FavorsLandlord, Round: round}, true
		}
	}
	return models.Decision{Outcome: models.Undecided}, false
}

// Conclude stores the terminal decision of the run
func (t *Tracker) Conclude(d models.Decision) {
	t.decision = &d
}

// Decision returns the terminal decision, if one was stored
func (t *Tracker) Decision() (models.Decision, bool) {
	if t.decision == nil {
		return models.Decision{}, false
	}
	return *t.decision, true
}

// LatestVotes returns the votes of the most recent round
func (t *Tracker) LatestVotes() []models.Vote {
	if len(t.rounds) == 0 {
		return nil
	}
	return t.rounds[len(t.rounds)-1].Votes()
}

// VoteSummary lists each adjudicator's judgment for the most recent round
func (t *Tracker) VoteSummary() string {
	if len(t.rounds) == 0 {
		return NoVotesMessage
	}
	latest := t.rounds[len(t.rounds)-1]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("--- Round %d Voting Results ---\n", latest.Number))
	if latest.Len() == 0 {
		sb.WriteString("No votes were cast in this round.\n")
		return sb.String()
	}
	for _, v := range latest.Votes() {
		sb.WriteString(fmt.Sprintf("%s: %s\n", v.Adjudicator, v.Judgment))
	}
	return sb.String()
}

// FormatArguments joins the argument log with blank lines
func (t *Tracker) FormatArguments() string {
	parts := make([]string, 0, len(t.arguments))
	for _, a := range t.arguments {
		parts = append(parts, fmt.Sprintf("[%s] %s", a.Advocate, a.Text))
	}
	return strings.Join(parts, "\n\n")
}

// Summary renders the latest round's votes followed by the argument log.
// It depends only on the tracker's state.
func (t *Tracker) Summary() string {
	summary := t.VoteSummary()
	if len(t.arguments) == 0 {
		return summary
	}
	return summary + "\n--- Arguments ---\n" + t.FormatArguments()
}
