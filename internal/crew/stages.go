// ABOUTME: Stage and terminal status vocabulary of the deliberation pipeline
// ABOUTME: Holds the explicit transition table the run loop is checked against
package crew

// Stage names one step of the pipeline
type Stage string

const (
	StageContractScan    Stage = "contract_scan"
	StageFastAnswer      Stage = "fast_answer"
	StageTopicSelection  Stage = "topic_selection"
	StageTopicResolution Stage = "topic_resolution"
	StageDomainAnalysis  Stage = "domain_analysis"
	StageAdvocacy        Stage = "advocacy"
	StageAdjudication    Stage = "adjudication"
	StageDeliberation    Stage = "deliberation"

	// stageStart is the virtual state before the first stage
	stageStart Stage = "start"
)

// Status is the terminal state of a run
type Status string

const (
	StatusAnswered     Status = "answered"
	StatusNeedsContext Status = "needs_context"
	StatusFailed       Status = "failed"
	StatusDecided      Status = "decided"
	StatusUndecided    Status = "undecided"
)

// APIStatus maps a terminal status onto the transport's status vocabulary
func (s Status) APIStatus() string {
	switch s {
	case StatusNeedsContext:
		return "contract_needed"
	case StatusFailed:
		return "error"
	default:
		return "success"
	}
}

// transitions lists, per stage, the stages it may hand off to
var transitions = map[Stage][]Stage{
	stageStart:           {StageContractScan, StageFastAnswer},
	StageContractScan:    nil,
	StageFastAnswer:      {StageTopicSelection},
	StageTopicSelection:  {StageTopicResolution},
	StageTopicResolution: {StageDomainAnalysis, StageAdvocacy},
	StageDomainAnalysis:  {StageAdvocacy},
	StageAdvocacy:        {StageAdjudication},
	StageAdjudication:    {StageDeliberation},
	StageDeliberation:    {StageAdjudication},
}

// exits lists, per stage, the terminal statuses it may end a run in.
// Any stage may fail.
var exits = map[Stage][]Status{
	StageContractScan:    {StatusAnswered, StatusNeedsContext},
	StageFastAnswer:      {StatusAnswered},
	StageTopicSelection:  nil,
	StageTopicResolution: nil,
	StageDomainAnalysis:  {StatusAnswered, StatusNeedsContext},
	StageAdvocacy:        {StatusNeedsContext},
	StageAdjudication:    {StatusNeedsContext},
	StageDeliberation:    {StatusDecided, StatusUndecided},
}

// Allowed reports whether the transition table declares from -> to
func Allowed(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanExit reports whether a run may terminate in status at the given stage
func CanExit(stage Stage, status Status) bool {
	if _, known := exits[stage]; !known {
		return false
	}
	if status == StatusFailed {
		return true
	}
	for _, s := range exits[stage] {
		if s == status {
			return true
		}
	}
	return false
}
