// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Lets LLM agents ask legal questions and use the calculator tools over stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/mcp"
	"github.com/harper/legal-crew/internal/models"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Legal Crew as an MCP (Model Context Protocol) server on stdio.
Tools: ask_legal_question, lookup_laws, percentage_change,
is_increase_legal, calculate_new_amount and get_indicators.

Without OPENAI_API_KEY the lookup, calculator and indicator tools still work.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  legalcrew mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "legalcrew": {
  #       "command": "legalcrew",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// unavailableAsker answers every question with a failed run
type unavailableAsker struct {
	err error
}

func (u unavailableAsker) Run(_ context.Context, _ models.Question) crew.Result {
	return crew.Result{Status: crew.StatusFailed, Err: u.err}
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var asker mcp.Asker
	if pipeline, err := a.RequirePipeline(); err == nil {
		asker = pipeline
	} else {
		asker = unavailableAsker{err: fmt.Errorf("%w: %w", crew.ErrCollaboratorUnavailable, err)}
	}

	handlers := mcp.NewHandlers(asker, a.Lookup, a.Calculator, a.Indicators, a.Config.BaseIncrease, logging.Component(a.Logger, "MCP"))
	server := mcp.NewServer(versionInfo.Version, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("MCP server starting on stdio")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
