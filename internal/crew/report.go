// ABOUTME: Wire form of a pipeline result shared by the HTTP, MCP and CLI surfaces
// ABOUTME: Maps terminal statuses onto success / contract_needed / error
package crew

import "github.com/harper/legal-crew/internal/models"

// Report is the JSON body returned for a run
type Report struct {
	RunID     string            `json:"run_id" doc:"Unique ID of the pipeline run"`
	Status    string            `json:"status" enum:"success,contract_needed,error" doc:"Outcome class of the run"`
	Response  string            `json:"response" doc:"Answer, request for the contract, error text or panel summary"`
	Decision  *models.Decision  `json:"decision,omitempty" doc:"Panel decision when the run reached adjudication"`
	Votes     []models.Vote     `json:"votes,omitempty" doc:"Judgments of the latest round"`
	Arguments []models.Argument `json:"arguments,omitempty" doc:"Advocate arguments in the order they were made"`
	Stages    []Stage           `json:"stages" doc:"Stages visited by the run"`
}

// Report converts the result into its wire form
func (r Result) Report() Report {
	rep := Report{
		RunID:     r.RunID,
		Status:    r.Status.APIStatus(),
		Response:  r.Response(),
		Votes:     r.Votes,
		Arguments: r.Arguments,
		Stages:    r.Stages,
	}
	if r.Status == StatusDecided || r.Status == StatusUndecided {
		d := r.Decision
		rep.Decision = &d
	}
	if rep.Stages == nil {
		rep.Stages = []Stage{}
	}
	return rep
}
