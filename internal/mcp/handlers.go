// ABOUTME: MCP tool handler implementations for the legal crew server
// ABOUTME: Bridges tool calls to the pipeline, the law lookup, the calculator and the indicators
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/legal-crew/internal/calc"
	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/facts"
	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/models"
)

// Asker runs one question through the deliberation pipeline
type Asker interface {
	Run(ctx context.Context, q models.Question) crew.Result
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	asker        Asker
	lookup       *laws.Lookup
	calculator   *calc.Calculator
	indicators   facts.Provider
	baseIncrease float64
	logger       *log.Logger
}

// NewHandlers wires the tool handlers to their collaborators
func NewHandlers(asker Asker, lookup *laws.Lookup, calculator *calc.Calculator, indicators facts.Provider, baseIncrease float64, logger *log.Logger) *Handlers {
	return &Handlers{
		asker:        asker,
		lookup:       lookup,
		calculator:   calculator,
		indicators:   indicators,
		baseIncrease: baseIncrease,
		logger:       logger,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// AskLegalQuestion handles the ask_legal_question tool
func (h *Handlers) AskLegalQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil || strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question argument is required and must be a non-empty string"), nil
	}
	document := request.GetString("document", "")

	result := h.asker.Run(ctx, models.Question{Text: question, Document: document})
	h.logger.Info("question answered", "run_id", result.RunID, "status", result.Status)

	if result.Status == crew.StatusFailed {
		return mcp.NewToolResultError(result.Response()), nil
	}
	return jsonResult(result.Report())
}

// LookupLaws handles the lookup_laws tool
func (h *Handlers) LookupLaws(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	bundle := h.lookup.ResolveAny(request.GetArguments()["titles"])
	entries := bundle.Entries
	if entries == nil {
		entries = []models.TopicEntry{}
	}
	return jsonResult(map[string]any{
		"entries": entries,
		"found":   bundle.Found(),
	})
}

// PercentageChange handles the percentage_change tool
func (h *Handlers) PercentageChange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	original, err := request.RequireFloat("original")
	if err != nil {
		return mcp.NewToolResultError("original argument is required and must be a number"), nil
	}
	updated, err := request.RequireFloat("new")
	if err != nil {
		return mcp.NewToolResultError("new argument is required and must be a number"), nil
	}

	change, err := h.calculator.PercentageChange(original, updated)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"percentage_change": change})
}

// IsIncreaseLegal handles the is_increase_legal tool. Without a limit the
// legal maximum (CPI plus base increase) is used.
func (h *Handlers) IsIncreaseLegal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	change, err := request.RequireFloat("change")
	if err != nil {
		return mcp.NewToolResultError("change argument is required and must be a number"), nil
	}
	limit := request.GetFloat("limit", facts.LegalIncrease(h.indicators, h.baseIncrease))

	return jsonResult(map[string]any{
		"legal": h.calculator.WithinLimit(change, limit),
		"limit": limit,
	})
}

// CalculateNewAmount handles the calculate_new_amount tool
func (h *Handlers) CalculateNewAmount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	original, err := request.RequireFloat("original")
	if err != nil {
		return mcp.NewToolResultError("original argument is required and must be a number"), nil
	}
	change, err := request.RequireFloat("change")
	if err != nil {
		return mcp.NewToolResultError("change argument is required and must be a number"), nil
	}

	amount, err := h.calculator.ApplyChange(original, change)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"new_amount": amount})
}

// GetIndicators handles the get_indicators tool
func (h *Handlers) GetIndicators(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := facts.Take(h.indicators)
	return jsonResult(map[string]any{
		"cpi":            snap.CPI(),
		"cao_index":      snap.CAOIndex(),
		"legal_increase": facts.LegalIncrease(snap, h.baseIncrease),
	})
}
