// ABOUTME: Export of the stored catalog back to catalog YAML
// ABOUTME: The output can be loaded again with LEGALCREW_CATALOG
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/legal-crew/internal/laws"
)

// ExportYAML writes the stored laws to path in catalog YAML layout
func (s *LawStore) ExportYAML(path string) error {
	records, err := s.All()
	if err != nil {
		return fmt.Errorf("failed to read laws: %w", err)
	}

	data, err := laws.EncodeYAML(records)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
