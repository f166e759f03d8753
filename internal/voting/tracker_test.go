// ABOUTME: Tests for the decision engine quorum rules and summaries
// ABOUTME: Covers round 1 near-unanimity, later-round majorities and last-write-wins
package voting

import (
	"strings"
	"testing"

	"github.com/harper/legal-crew/internal/models"
)

func recordAll(t *testing.T, tr *Tracker, round int, votes map[string]models.Judgment, order []string) {
	t.Helper()
	for _, name := range order {
		if err := tr.RecordVote(round, name, votes[name]); err != nil {
			t.Fatalf("RecordVote(%d, %s) error = %v", round, name, err)
		}
	}
}

func TestEvaluate_RoundOne(t *testing.T) {
	tests := []struct {
		name   string
		votes  [3]models.Judgment
		want   models.Outcome
		wantOK bool
	}{
		{"three strong tenant", [3]models.Judgment{models.ObviouslyTenant, models.ObviouslyTenant, models.ObviouslyTenant}, models.FavorsTenant, true},
		{"two strong one likely tenant", [3]models.Judgment{models.ObviouslyTenant, models.ObviouslyTenant, models.MostLikelyTenant}, models.FavorsTenant, true},
		{"three strong landlord", [3]models.Judgment{models.ObviouslyLandlord, models.ObviouslyLandlord, models.ObviouslyLandlord}, models.FavorsLandlord, true},
		{"two strong one likely landlord", [3]models.Judgment{models.MostLikelyLandlord, models.ObviouslyLandlord, models.ObviouslyLandlord}, models.FavorsLandlord, true},
		{"split panel", [3]models.Judgment{models.ObviouslyTenant, models.MostLikelyLandlord, models.NotSure}, models.Undecided, false},
		{"two strong one unsure", [3]models.Judgment{models.ObviouslyTenant, models.ObviouslyTenant, models.NotSure}, models.Undecided, false},
		{"three likely tenant", [3]models.Judgment{models.MostLikelyTenant, models.MostLikelyTenant, models.MostLikelyTenant}, models.Undecided, false},
		{"all unsure", [3]models.Judgment{models.NotSure, models.NotSure, models.NotSure}, models.Undecided, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.StartRound()
			recordAll(t, tr, 1, map[string]models.Judgment{"J1": tt.votes[0], "J2": tt.votes[1], "J3": tt.votes[2]}, []string{"J1", "J2", "J3"})

			d, ok := tr.Evaluate(1)
			if ok != tt.wantOK {
				t.Errorf("Evaluate(1) ok = %v, want %v", ok, tt.wantOK)
			}
			if d.Outcome != tt.want {
				t.Errorf("Evaluate(1) outcome = %q, want %q", d.Outcome, tt.want)
			}
			if ok && d.Round != 1 {
				t.Errorf("Evaluate(1) round = %d, want 1", d.Round)
			}
		})
	}
}

func TestEvaluate_LaterRounds(t *testing.T) {
	tests := []struct {
		name   string
		votes  [3]models.Judgment
		want   models.Outcome
		wantOK bool
	}{
		{"likely plus strong tenant", [3]models.Judgment{models.MostLikelyTenant, models.ObviouslyTenant, models.MostLikelyLandlord}, models.FavorsTenant, true},
		{"two likely landlord", [3]models.Judgment{models.MostLikelyLandlord, models.NotSure, models.MostLikelyLandlord}, models.FavorsLandlord, true},
		{"one each and unsure", [3]models.Judgment{models.MostLikelyTenant, models.NotSure, models.ObviouslyLandlord}, models.Undecided, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			tr.StartRound()
			round := tr.StartRound()
			if round != 2 {
				t.Fatalf("StartRound() = %d, want 2", round)
			}
			recordAll(t, tr, 2, map[string]models.Judgment{"J1": tt.votes[0], "J2": tt.votes[1], "J3": tt.votes[2]}, []string{"J1", "J2", "J3"})

			d, ok := tr.Evaluate(2)
			if ok != tt.wantOK || d.Outcome != tt.want {
				t.Errorf("Evaluate(2) = %+v, %v; want %q, %v", d, ok, tt.want, tt.wantOK)
			}
			if ok && d.Round != 2 {
				t.Errorf("Evaluate(2) round = %d, want 2", d.Round)
			}
		})
	}
}

func TestEvaluate_SameVotesDifferByRound(t *testing.T) {
	tally := models.Tally{MostLikelyTenant: 2, NotSure: 1}

	if _, ok := Evaluate(1, tally); ok {
		t.Error("round 1 should not decide on two likely votes")
	}
	d, ok := Evaluate(3, tally)
	if !ok || d.Outcome != models.FavorsTenant || d.Round != 3 {
		t.Errorf("Evaluate(3) = %+v, %v; want tenant in round 3", d, ok)
	}
}

func TestEvaluate_IsRepeatable(t *testing.T) {
	tr := NewTracker()
	_ = tr.RecordVote(1, "J1", models.ObviouslyLandlord)
	_ = tr.RecordVote(1, "J2", models.ObviouslyLandlord)
	_ = tr.RecordVote(1, "J3", models.MostLikelyLandlord)

	first, ok1 := tr.Evaluate(1)
	second, ok2 := tr.Evaluate(1)
	if first != second || ok1 != ok2 {
		t.Errorf("Evaluate is not repeatable: %+v/%v then %+v/%v", first, ok1, second, ok2)
	}

	// Changing a vote changes the outcome on the next evaluation
	_ = tr.RecordVote(1, "J3", models.NotSure)
	if _, ok := tr.Evaluate(1); ok {
		t.Error("Evaluate should reflect the overwritten vote")
	}
}

func TestEvaluate_UnknownOrEmptyRound(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Evaluate(1); ok {
		t.Error("Evaluate on empty tracker should not decide")
	}
	tr.StartRound()
	if d, ok := tr.Evaluate(1); ok || d.Outcome != models.Undecided {
		t.Errorf("Evaluate on empty round = %+v, %v", d, ok)
	}
	if _, ok := tr.Evaluate(7); ok {
		t.Error("Evaluate on unknown round should not decide")
	}
}

func TestRecordVote(t *testing.T) {
	tr := NewTracker()

	// Round 1 opens implicitly
	if err := tr.RecordVote(1, "J1", models.NotSure); err != nil {
		t.Fatalf("RecordVote(1) error = %v", err)
	}
	if tr.CurrentRound() != 1 {
		t.Errorf("CurrentRound() = %d, want 1", tr.CurrentRound())
	}

	if err := tr.RecordVote(2, "J1", models.NotSure); err == nil {
		t.Error("RecordVote into unstarted round 2 should fail")
	}
	if err := tr.RecordVote(1, "J2", models.Judgment("maybe")); err == nil {
		t.Error("RecordVote with invalid judgment should fail")
	}

	// Last write wins
	_ = tr.RecordVote(1, "J1", models.ObviouslyTenant)
	r, _ := tr.Round(1)
	if got, _ := r.Get("J1"); got != models.ObviouslyTenant {
		t.Errorf("J1 = %q, want obviously_tenant", got)
	}
	if r.Len() != 1 {
		t.Errorf("round 1 votes = %d, want 1", r.Len())
	}
}

func TestSummary_NoVotes(t *testing.T) {
	tr := NewTracker()
	if got := tr.Summary(); got != NoVotesMessage {
		t.Errorf("Summary() = %q, want %q", got, NoVotesMessage)
	}
	if tr.LatestVotes() != nil {
		t.Error("LatestVotes() should be nil with no rounds")
	}
}

func TestSummary_EmptyRound(t *testing.T) {
	tr := NewTracker()
	tr.StartRound()
	if got := tr.VoteSummary(); !strings.Contains(got, "No votes were cast in this round.") {
		t.Errorf("VoteSummary() = %q", got)
	}
}

func TestSummary_LatestRoundAndArguments(t *testing.T) {
	tr := NewTracker()
	tr.AddArgument(models.Argument{Side: models.SideTenant, Advocate: "Tenant Advocate", Text: "The increase exceeds CPI + 1%."})
	tr.AddArgument(models.Argument{Side: models.SideLandlord, Advocate: "Landlord Advocate", Text: "The contract allows indexation."})

	_ = tr.RecordVote(1, "Neutral Judge", models.NotSure)
	tr.StartRound()
	_ = tr.RecordVote(2, "Tenant-Sympathetic Judge", models.ObviouslyTenant)
	_ = tr.RecordVote(2, "Neutral Judge", models.MostLikelyTenant)

	want := "--- Round 2 Voting Results ---\n" +
		"Tenant-Sympathetic Judge: obviously_tenant\n" +
		"Neutral Judge: most_likely_tenant\n" +
		"\n--- Arguments ---\n" +
		"[Tenant Advocate] The increase exceeds CPI + 1%.\n\n" +
		"[Landlord Advocate] The contract allows indexation."

	got := tr.Summary()
	if got != want {
		t.Errorf("Summary() =\n%s\nwant\n%s", got, want)
	}
	if tr.Summary() != got {
		t.Error("Summary() should be deterministic")
	}
}

func TestConclude(t *testing.T) {
	tr := NewTracker()
	if _, ok := tr.Decision(); ok {
		t.Error("Decision() should be absent initially")
	}
	tr.Conclude(models.Decision{Outcome: models.FavorsLandlord, Round: 1})
	d, ok := tr.Decision()
	if !ok || d.Outcome != models.FavorsLandlord {
		t.Errorf("Decision() = %+v, %v", d, ok)
	}
}

func TestArguments_ReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.AddArgument(models.Argument{Side: models.SideTenant, Text: "a"})
	args := tr.Arguments()
	args[0].Text = "changed"
	if tr.Arguments()[0].Text != "a" {
		t.Error("Arguments() should return a copy")
	}
}
