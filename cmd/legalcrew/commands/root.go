// ABOUTME: Root command and global flags for the legal crew CLI
// ABOUTME: Wires subcommands and builds the shared app from configuration
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/app"
	"github.com/harper/legal-crew/internal/config"
	"github.com/harper/legal-crew/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
██╗     ███████╗ ██████╗  █████╗ ██╗          ██████╗██████╗ ███████╗██╗    ██╗
██║     ██╔════╝██╔════╝ ██╔══██╗██║         ██╔════╝██╔══██╗██╔════╝██║    ██║
██║     █████╗  ██║  ███╗███████║██║         ██║     ██████╔╝█████╗  ██║ █╗ ██║
██║     ██╔══╝  ██║   ██║██╔══██║██║         ██║     ██╔══██╗██╔══╝  ██║███╗██║
███████╗███████╗╚██████╔╝██║  ██║███████╗    ╚██████╗██║  ██║███████╗╚███╔███╔╝
╚══════╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝     ╚═════╝╚═╝  ╚═╝╚══════╝ ╚══╝╚══╝
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legalcrew",
		Short: "Dutch tenancy questions answered by a crew of legal roles",
		Long: banner + `
Legal Crew answers Dutch tenancy questions. A fast answer is tried first;
harder questions go to a law selector, a rent increase specialist,
advocates for tenant and landlord, and a panel of three judges who vote.

Configuration comes from the environment, an optional .env file and an
optional legalcrew.yaml (OPENAI_API_KEY, LEGALCREW_MODEL, LEGALCREW_CPI, ...).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			switch outputFormat {
			case "auto", "text", "json":
			default:
				return fmt.Errorf("--format must be auto, text or json, got %q", outputFormat)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text or json")

	cmd.AddCommand(
		NewAskCmd(),
		NewBatchCmd(),
		NewServeCmd(),
		NewMCPCmd(),
		NewLawsCmd(),
		NewCalcCmd(),
		NewIndicatorsCmd(),
		NewCatalogCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads .env and the configuration
func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "No .env file found (this is okay for production): %v\n", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger; the global flags override LOG_LEVEL
func newLogger(w io.Writer, level string) *log.Logger {
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	return logging.New(w, level)
}

// buildApp loads configuration and wires every component. Logs go to w,
// never to stdout, so JSON output and the MCP stdio stream stay clean.
func buildApp(w io.Writer) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, newLogger(w, cfg.LogLevel))
}
