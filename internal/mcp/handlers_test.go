// ABOUTME: Tests for MCP tool definitions and handlers
// ABOUTME: Uses a fake asker and the embedded catalog; no network or model calls
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/legal-crew/internal/calc"
	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/facts"
	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/models"
)

type fakeAsker struct {
	result crew.Result
	got    models.Question
}

func (f *fakeAsker) Run(_ context.Context, q models.Question) crew.Result {
	f.got = q
	return f.result
}

func newHandlers(t *testing.T, asker Asker) *Handlers {
	t.Helper()
	catalog, err := laws.Default()
	if err != nil {
		t.Fatalf("laws.Default() error = %v", err)
	}
	logger := logging.Discard()
	return NewHandlers(asker, laws.NewLookup(catalog, logger), calc.New(logger), facts.NewStatic(2.5, 3.0, logger), 1.0, logger)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decode(t *testing.T, r *mcp.CallToolResult) map[string]any {
	t.Helper()
	if r.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(r))
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("result is not JSON: %v (%s)", err, resultText(r))
	}
	return out
}

func TestTools_Definitions(t *testing.T) {
	want := []string{"ask_legal_question", "lookup_laws", "percentage_change", "is_increase_legal", "calculate_new_amount", "get_indicators"}
	tools := Tools()
	if len(tools) != len(want) {
		t.Fatalf("Tools() returned %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("tool %d = %q, want %q", i, tools[i].Name, name)
		}
		if tools[i].InputSchema.Type != "object" {
			t.Errorf("%s schema type = %q", name, tools[i].InputSchema.Type)
		}
	}
	if req := tools[0].InputSchema.Required; len(req) != 1 || req[0] != "question" {
		t.Errorf("ask_legal_question required = %v", req)
	}
}

func TestNewServer(t *testing.T) {
	if NewServer("test", newHandlers(t, &fakeAsker{})) == nil {
		t.Fatal("NewServer() returned nil")
	}
}

func TestAskLegalQuestion(t *testing.T) {
	asker := &fakeAsker{result: crew.Result{
		RunID:    "run-1",
		Status:   crew.StatusDecided,
		Decision: models.Decision{Outcome: models.FavorsTenant, Round: 1},
		Summary:  "--- Round 1 Voting Results ---\n",
		Stages:   []crew.Stage{crew.StageFastAnswer},
	}}
	h := newHandlers(t, asker)

	res, err := h.AskLegalQuestion(context.Background(), makeReq(map[string]interface{}{
		"question": "Who repairs the boiler?",
		"document": "contract text",
	}))
	if err != nil {
		t.Fatalf("AskLegalQuestion() error = %v", err)
	}
	out := decode(t, res)
	if out["status"] != "success" || out["run_id"] != "run-1" {
		t.Errorf("response = %v", out)
	}
	if asker.got.Document != "contract text" {
		t.Errorf("document not forwarded: %+v", asker.got)
	}
}

func TestAskLegalQuestion_ContractNeeded(t *testing.T) {
	h := newHandlers(t, &fakeAsker{result: crew.Result{Status: crew.StatusNeedsContext, Message: "Please upload"}})

	res, _ := h.AskLegalQuestion(context.Background(), makeReq(map[string]interface{}{"question": "Can my rent go up?"}))
	out := decode(t, res)
	if out["status"] != "contract_needed" || out["response"] != "Please upload" {
		t.Errorf("response = %v", out)
	}
}

func TestAskLegalQuestion_Errors(t *testing.T) {
	h := newHandlers(t, &fakeAsker{result: crew.Result{Status: crew.StatusFailed, Err: crew.ErrPipelineFailed}})

	res, _ := h.AskLegalQuestion(context.Background(), makeReq(map[string]interface{}{}))
	if !res.IsError {
		t.Error("missing question should be a tool error")
	}

	res, _ = h.AskLegalQuestion(context.Background(), makeReq(map[string]interface{}{"question": "x"}))
	if !res.IsError || !strings.Contains(resultText(res), "pipeline failed") {
		t.Errorf("failed run should be a tool error, got %q", resultText(res))
	}
}

func TestLookupLaws(t *testing.T) {
	h := newHandlers(t, &fakeAsker{})

	res, _ := h.LookupLaws(context.Background(), makeReq(map[string]interface{}{
		"titles": []interface{}{"Woningwet", "Missing Act"},
	}))
	out := decode(t, res)
	entries, _ := out["entries"].([]any)
	if len(entries) != 2 {
		t.Fatalf("entries = %v", out["entries"])
	}
	if out["found"] != float64(1) {
		t.Errorf("found = %v, want 1", out["found"])
	}
}

func TestLookupLaws_Malformed(t *testing.T) {
	h := newHandlers(t, &fakeAsker{})

	for _, titles := range []interface{}{"Woningwet", 42, nil, []interface{}{"Woningwet", 7}} {
		res, _ := h.LookupLaws(context.Background(), makeReq(map[string]interface{}{"titles": titles}))
		out := decode(t, res)
		if entries, _ := out["entries"].([]any); len(entries) != 0 {
			t.Errorf("titles=%v: entries = %v, want empty", titles, entries)
		}
	}
}

func TestCalculatorTools(t *testing.T) {
	h := newHandlers(t, &fakeAsker{})
	ctx := context.Background()

	res, _ := h.PercentageChange(ctx, makeReq(map[string]interface{}{"original": 1000.0, "new": 1050.0}))
	if out := decode(t, res); out["percentage_change"] != 5.0 {
		t.Errorf("percentage_change = %v", out)
	}

	res, _ = h.PercentageChange(ctx, makeReq(map[string]interface{}{"original": 0.0, "new": 10.0}))
	if !res.IsError {
		t.Error("zero original should be a tool error")
	}

	res, _ = h.PercentageChange(ctx, makeReq(map[string]interface{}{"original": 1000.0}))
	if !res.IsError {
		t.Error("missing new should be a tool error")
	}

	res, _ = h.CalculateNewAmount(ctx, makeReq(map[string]interface{}{"original": 1000.0, "change": 3.0}))
	if out := decode(t, res); out["new_amount"] != 1030.0 {
		t.Errorf("new_amount = %v", out)
	}
}

func TestIsIncreaseLegal(t *testing.T) {
	h := newHandlers(t, &fakeAsker{})
	ctx := context.Background()

	// Default limit is CPI 2.5 + base 1.0
	res, _ := h.IsIncreaseLegal(ctx, makeReq(map[string]interface{}{"change": 3.5}))
	out := decode(t, res)
	if out["legal"] != true || out["limit"] != 3.5 {
		t.Errorf("response = %v", out)
	}

	res, _ = h.IsIncreaseLegal(ctx, makeReq(map[string]interface{}{"change": 3.5, "limit": 3.0}))
	if out := decode(t, res); out["legal"] != false {
		t.Errorf("response = %v", out)
	}
}

func TestGetIndicators(t *testing.T) {
	h := newHandlers(t, &fakeAsker{})

	res, _ := h.GetIndicators(context.Background(), makeReq(nil))
	out := decode(t, res)
	if out["cpi"] != 2.5 || out["cao_index"] != 3.0 || out["legal_increase"] != 3.5 {
		t.Errorf("response = %v", out)
	}
}
