// ABOUTME: Law catalog persistence for SQLite
// ABOUTME: Imports a whole catalog in one transaction and reads it back in order
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harper/legal-crew/internal/laws"
	"github.com/harper/legal-crew/internal/models"
)

// LawStore handles catalog persistence
type LawStore struct {
	db *DB
}

// NewLawStore creates a new LawStore
func NewLawStore(db *DB) *LawStore {
	return &LawStore{db: db}
}

// Import replaces the stored catalog with the given laws and overview
func (s *LawStore) Import(records []models.Law, overview string) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM laws`); err != nil {
		return fmt.Errorf("failed to clear laws: %w", err)
	}

	for i, law := range records {
		key := law.Key
		if key == "" {
			key = laws.NormalizeKey(law.Title)
		}
		if _, err := tx.Exec(`INSERT INTO laws (key, title, position) VALUES (?, ?, ?)`,
			key, law.Title, i); err != nil {
			return fmt.Errorf("failed to insert law %s: %w", key, err)
		}

		for j, section := range law.Sections {
			if _, err := tx.Exec(`
				INSERT INTO sections (law_key, id, title, text, position)
				VALUES (?, ?, ?, ?, ?)
			`, key, section.ID, section.Title, section.Text, j); err != nil {
				return fmt.Errorf("failed to insert section %s/%s: %w", key, section.ID, err)
			}

			for k, c := range section.CaseLaw {
				if _, err := tx.Exec(`
					INSERT INTO case_law (law_key, section_id, position, name, summary)
					VALUES (?, ?, ?, ?, ?)
				`, key, section.ID, k, c.Case, c.Summary); err != nil {
					return fmt.Errorf("failed to insert case law for %s/%s: %w", key, section.ID, err)
				}
			}
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO catalog_meta (id, overview, imported_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET overview = excluded.overview, imported_at = excluded.imported_at
	`, overview); err != nil {
		return fmt.Errorf("failed to store overview: %w", err)
	}

	return tx.Commit()
}

// Count returns the number of stored laws
func (s *LawStore) Count() (int, error) {
	var n int
	if err := s.db.conn.QueryRow(`SELECT COUNT(*) FROM laws`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Get retrieves a law by canonical key. Returns nil if not found.
func (s *LawStore) Get(key string) (*models.Law, error) {
	var law models.Law
	err := s.db.conn.QueryRow(`SELECT key, title FROM laws WHERE key = ?`, key).Scan(&law.Key, &law.Title)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sections, err := s.sections(law.Key)
	if err != nil {
		return nil, err
	}
	law.Sections = sections
	return &law, nil
}

// All returns every stored law in import order
func (s *LawStore) All() ([]models.Law, error) {
	rows, err := s.db.conn.Query(`SELECT key, title FROM laws ORDER BY position`)
	if err != nil {
		return nil, err
	}

	var records []models.Law
	for rows.Next() {
		var law models.Law
		if err := rows.Scan(&law.Key, &law.Title); err != nil {
			_ = rows.Close()
			return nil, err
		}
		records = append(records, law)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range records {
		sections, err := s.sections(records[i].Key)
		if err != nil {
			return nil, err
		}
		records[i].Sections = sections
	}
	return records, nil
}

func (s *LawStore) sections(lawKey string) ([]models.Section, error) {
	rows, err := s.db.conn.Query(`
		SELECT id, COALESCE(title, ''), COALESCE(text, '')
		FROM sections
		WHERE law_key = ?
		ORDER BY position
	`, lawKey)
	if err != nil {
		return nil, err
	}

	var sections []models.Section
	for rows.Next() {
		var sec models.Section
		if err := rows.Scan(&sec.ID, &sec.Title, &sec.Text); err != nil {
			_ = rows.Close()
			return nil, err
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i := range sections {
		cases, err := s.caseLaw(lawKey, sections[i].ID)
		if err != nil {
			return nil, err
		}
		sections[i].CaseLaw = cases
	}
	return sections, nil
}

func (s *LawStore) caseLaw(lawKey, sectionID string) ([]models.CaseLaw, error) {
	rows, err := s.db.conn.Query(`
		SELECT name, COALESCE(summary, '')
		FROM case_law
		WHERE law_key = ? AND section_id = ?
		ORDER BY position
	`, lawKey, sectionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var cases []models.CaseLaw
	for rows.Next() {
		var c models.CaseLaw
		if err := rows.Scan(&c.Case, &c.Summary); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// Overview returns the stored overview text, empty if none was imported
func (s *LawStore) Overview() (string, error) {
	var overview sql.NullString
	err := s.db.conn.QueryRow(`SELECT overview FROM catalog_meta WHERE id = 1`).Scan(&overview)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return overview.String, nil
}

// Catalog builds a lookup catalog from the stored records. The embedded
// overview is used when none was stored.
func (s *LawStore) Catalog() (*laws.Catalog, error) {
	records, err := s.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read laws: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog database %s is empty", s.db.path)
	}
	overview, err := s.Overview()
	if err != nil {
		return nil, fmt.Errorf("failed to read overview: %w", err)
	}
	if strings.TrimSpace(overview) == "" {
		overview = laws.DefaultOverview()
	}
	return laws.NewCatalog(records, overview), nil
}
