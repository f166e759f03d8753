// ABOUTME: Assembles the legal crew from configuration for the CLI and server binaries
// ABOUTME: Chooses the catalog source and builds the role invoker and pipeline
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/harper/legal-crew/internal/calc"
	"github.com/harper/legal-crew/internal/config"
	"github.com/harper/legal-crew/internal/crew"
	"github.com/harper/legal-crew/internal/facts"
	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/llm"
	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/storage/sqlite"
)

// ErrNoAPIKey is returned when a command needs the role invoker but no key is configured
var ErrNoAPIKey = errors.New("OPENAI_API_KEY not set")

// App holds the wired components
type App struct {
	Config     *config.Config
	Logger     *log.Logger
	Catalog    *laws.Catalog
	Lookup     *laws.Lookup
	Indicators facts.Provider
	Calculator *calc.Calculator
	Invoker    llm.Invoker
	Pipeline   *crew.Pipeline
}

// New builds every component. Without an API key the invoker and the
// pipeline stay nil; the lookup, calculator and indicators still work.
func New(cfg *config.Config, logger *log.Logger) (*App, error) {
	catalog, err := LoadCatalog(cfg, logging.Component(logger, "Catalog"))
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:     cfg,
		Logger:     logger,
		Catalog:    catalog,
		Lookup:     laws.NewLookup(catalog, logging.Component(logger, "Lookup")),
		Indicators: facts.NewStatic(cfg.CPI, cfg.CAOIndex, logging.Component(logger, "Indicators")),
		Calculator: calc.New(logging.Component(logger, "Calculator")),
	}

	if !cfg.HasAPIKey() {
		logger.Warn("OPENAI_API_KEY not set - questions cannot be answered")
		return a, nil
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     cfg.BaseURL,
		ChatModel:   cfg.ChatModel,
		Temperature: float32(cfg.Temperature),
		Timeout:     cfg.Timeout,
		MaxRetries:  cfg.MaxRetries,
		RetryDelay:  cfg.RetryDelay,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize role invoker: %w", err)
	}
	a.WithInvoker(client)
	return a, nil
}

// WithInvoker installs an invoker and builds the pipeline around it
func (a *App) WithInvoker(invoker llm.Invoker) *App {
	a.Invoker = invoker
	a.Pipeline = crew.New(invoker, a.Lookup, a.Indicators, a.Calculator, logging.Component(a.Logger, "Crew"), crew.Options{
		MaxRounds:    a.Config.MaxRounds,
		BaseIncrease: a.Config.BaseIncrease,
	})
	return a
}

// RequirePipeline returns the pipeline or ErrNoAPIKey
func (a *App) RequirePipeline() (*crew.Pipeline, error) {
	if a.Pipeline == nil {
		return nil, ErrNoAPIKey
	}
	return a.Pipeline, nil
}

// LoadCatalog picks the catalog source: an explicit SQLite database, an
// explicit YAML file, the default SQLite database if it exists, and
// finally the embedded catalog
func LoadCatalog(cfg *config.Config, logger *log.Logger) (*laws.Catalog, error) {
	if cfg.CatalogDB != "" {
		return loadFromDB(cfg.CatalogDB, logger)
	}
	if cfg.CatalogPath != "" {
		catalog, err := laws.LoadFile(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("Loaded catalog file", "path", cfg.CatalogPath, "laws", len(catalog.Laws()))
		return catalog, nil
	}
	if path := config.DefaultCatalogDBPath(); fileExists(path) {
		return loadFromDB(path, logger)
	}
	logger.Debug("Using embedded catalog")
	return laws.Default()
}

func loadFromDB(path string, logger *log.Logger) (*laws.Catalog, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	defer func() { _ = db.Close() }()

	catalog, err := sqlite.NewLawStore(db).Catalog()
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded catalog database", "path", path, "laws", len(catalog.Laws()))
	return catalog, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
