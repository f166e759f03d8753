// ABOUTME: Tests for the transition table and the terminal status mapping
// ABOUTME: Checks declared hand-offs and that undeclared ones are refused
package crew

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{stageStart, StageContractScan, true},
		{stageStart, StageFastAnswer, true},
		{StageFastAnswer, StageTopicSelection, true},
		{StageTopicResolution, StageDomainAnalysis, true},
		{StageTopicResolution, StageAdvocacy, true},
		{StageDeliberation, StageAdjudication, true},
		{StageContractScan, StageFastAnswer, false},
		{StageFastAnswer, StageAdjudication, false},
		{StageAdvocacy, StageDeliberation, false},
		{StageDomainAnalysis, StageTopicSelection, false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.from, tt.to); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCanExit(t *testing.T) {
	tests := []struct {
		stage  Stage
		status Status
		want   bool
	}{
		{StageContractScan, StatusAnswered, true},
		{StageContractScan, StatusNeedsContext, true},
		{StageFastAnswer, StatusNeedsContext, false},
		{StageTopicSelection, StatusFailed, true},
		{StageAdvocacy, StatusDecided, false},
		{StageDeliberation, StatusUndecided, true},
		{StageDeliberation, StatusAnswered, false},
		{Stage("bogus"), StatusFailed, false},
	}
	for _, tt := range tests {
		if got := CanExit(tt.stage, tt.status); got != tt.want {
			t.Errorf("CanExit(%s, %s) = %v, want %v", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestAPIStatus(t *testing.T) {
	tests := map[Status]string{
		StatusAnswered:     "success",
		StatusDecided:      "success",
		StatusUndecided:    "success",
		StatusNeedsContext: "contract_needed",
		StatusFailed:       "error",
	}
	for status, want := range tests {
		if got := status.APIStatus(); got != want {
			t.Errorf("%s.APIStatus() = %q, want %q", status, got, want)
		}
	}
}
