// ABOUTME: CLI commands to manage the SQLite copy of the law catalog
// ABOUTME: Import from YAML (or the embedded catalog) and export back to YAML
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/config"
	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/storage/sqlite"
)

var (
	catalogDB   string
	catalogFrom string
)

// NewCatalogCmd creates the catalog command
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the law catalog database",
		Long: `Manage the SQLite copy of the law catalog.

Once imported, the database at the default location is used instead of
the embedded catalog. LEGALCREW_CATALOG_DB selects another database.`,
	}
	cmd.PersistentFlags().StringVar(&catalogDB, "db", "", "Catalog database path (default "+config.DefaultCatalogDBPath()+")")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a YAML catalog into the database",
		Example: `  legalcrew catalog import
  legalcrew catalog import --from my-laws.yaml`,
		Args: cobra.NoArgs,
		RunE: runCatalogImport,
	}
	importCmd.Flags().StringVar(&catalogFrom, "from", "", "YAML catalog to import (default: embedded catalog)")

	exportCmd := &cobra.Command{
		Use:     "export FILE",
		Short:   "Export the database to a YAML catalog",
		Example: `  legalcrew catalog export laws.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCatalogExport,
	}

	cmd.AddCommand(importCmd, exportCmd)
	return cmd
}

func catalogDBPath() (string, error) {
	if catalogDB != "" {
		return catalogDB, nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.CatalogDB != "" {
		return cfg.CatalogDB, nil
	}
	return config.DefaultCatalogDBPath(), nil
}

func runCatalogImport(cmd *cobra.Command, args []string) error {
	var (
		catalog *laws.Catalog
		err     error
	)
	if catalogFrom != "" {
		catalog, err = laws.LoadFile(catalogFrom)
	} else {
		catalog, err = laws.Default()
	}
	if err != nil {
		return err
	}

	path, err := catalogDBPath()
	if err != nil {
		return err
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := sqlite.NewLawStore(db).Import(catalog.Laws(), catalog.Overview()); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d laws into %s\n", len(catalog.Laws()), path)
	}
	return nil
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	path, err := catalogDBPath()
	if err != nil {
		return err
	}
	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewLawStore(db)
	n, err := store.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("catalog database %s is empty; run 'legalcrew catalog import' first", path)
	}
	if err := store.ExportYAML(args[0]); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d laws to %s\n", n, args[0])
	}
	return nil
}
