// ABOUTME: MCP tool definitions and registration for the legal crew server
// ABOUTME: Defines JSON schemas for the question, lookup, calculator and indicator tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/legal-crew/internal/calc"
)

// ServerName is the name announced to MCP clients
const ServerName = "Legal Crew"

// NewServer creates an MCP server with every tool registered
func NewServer(version string, handlers *Handlers) *mcpserver.MCPServer {
	server := mcpserver.NewMCPServer(ServerName, version, mcpserver.WithToolCapabilities(false))
	RegisterTools(server, handlers)
	return server
}

func numberArg(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

// Tools returns the definitions of every tool in registration order
func Tools() []mcp.Tool {
	return []mcp.Tool{
		{
			Name: "ask_legal_question",
			Description: "Ask a Dutch tenancy law question. The question goes through a fast answer, law selection, " +
				"advocates for tenant and landlord and a panel of three judges. Optionally pass the rental contract text.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"question": map[string]interface{}{
						"type":        "string",
						"description": "The legal question",
					},
					"document": map[string]interface{}{
						"type":        "string",
						"description": "Optional rental contract text",
					},
				},
				Required: []string{"question"},
			},
		},
		{
			Name:        "lookup_laws",
			Description: "Look up laws in the catalog by title. Titles that are not in the catalog come back as 'Content not found'.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"titles": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Law titles, e.g. 'Woningwet' or 'Burgerlijk Wetboek Boek 7'",
					},
				},
				Required: []string{"titles"},
			},
		},
		{
			Name:        calc.ToolPercentageChange,
			Description: "Calculate the percentage change between an original and a new amount.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"original": numberArg("Original amount, must be positive"),
					"new":      numberArg("New amount"),
				},
				Required: []string{"original", "new"},
			},
		},
		{
			Name:        calc.ToolIsIncreaseLegal,
			Description: "Check whether a percentage increase is within a limit. Defaults to the legal maximum of CPI plus the base increase.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"change": numberArg("Percentage increase"),
					"limit":  numberArg("Optional maximum percentage"),
				},
				Required: []string{"change"},
			},
		},
		{
			Name:        calc.ToolCalculateNewAmount,
			Description: "Apply a percentage change to an original amount.",
			InputSchema: mcp.ToolInputSchema{
				Type: "object",
				Properties: map[string]interface{}{
					"original": numberArg("Original amount, must be positive"),
					"change":   numberArg("Percentage change"),
				},
				Required: []string{"original", "change"},
			},
		},
		{
			Name:        "get_indicators",
			Description: "Get the current CPI, the CAO wage index and the resulting maximum legal rent increase.",
			InputSchema: mcp.ToolInputSchema{
				Type:       "object",
				Properties: map[string]interface{}{},
			},
		},
	}
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, handlers *Handlers) {
	byName := map[string]mcpserver.ToolHandlerFunc{
		"ask_legal_question":        handlers.AskLegalQuestion,
		"lookup_laws":               handlers.LookupLaws,
		calc.ToolPercentageChange:   handlers.PercentageChange,
		calc.ToolIsIncreaseLegal:    handlers.IsIncreaseLegal,
		calc.ToolCalculateNewAmount: handlers.CalculateNewAmount,
		"get_indicators":            handlers.GetIndicators,
	}
	for _, tool := range Tools() {
		server.AddTool(tool, byName[tool.Name])
	}
}
