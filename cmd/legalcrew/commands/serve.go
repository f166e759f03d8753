// ABOUTME: Serve command starts the HTTP API
// ABOUTME: Exposes POST /legal-advice and GET /health until interrupted
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/server"
)

var serveAddr string

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

POST /legal-advice with {"question": "...", "document": "..."} returns
{"run_id", "status", "response", ...} where status is success,
contract_needed or error. GET /health reports liveness. The OpenAPI
document is served at /openapi.json and docs at /docs.`,
		RunE: runServe,
		Example: `  legalcrew serve
  legalcrew serve --addr 127.0.0.1:9000`,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default LEGALCREW_ADDR or :8000)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	pipeline, err := a.RequirePipeline()
	if err != nil {
		return err
	}

	addr := a.Config.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	handler := server.New(server.Config{
		Asker:   pipeline,
		Version: versionInfo.Version,
		Logger:  logging.Component(a.Logger, "HTTP"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx, addr, handler, a.Logger)
}
