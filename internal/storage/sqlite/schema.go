// ABOUTME: SQLite schema for the law catalog store
// ABOUTME: Laws own ordered sections, sections own ordered case law
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
CREATE TABLE IF NOT EXISTS laws (
    key TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    position INTEGER NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sections (
    law_key TEXT NOT NULL REFERENCES laws(key) ON DELETE CASCADE,
    id TEXT NOT NULL,
    title TEXT,
    text TEXT,
    position INTEGER NOT NULL,
    PRIMARY KEY (law_key, id)
);

CREATE TABLE IF NOT EXISTS case_law (
    law_key TEXT NOT NULL,
    section_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    summary TEXT,
    PRIMARY KEY (law_key, section_id, position),
    FOREIGN KEY (law_key, section_id) REFERENCES sections(law_key, id) ON DELETE CASCADE
);

-- Single row holding the condensed overview text
CREATE TABLE IF NOT EXISTS catalog_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    overview TEXT,
    imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_laws_title ON laws(title COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_sections_law ON sections(law_key, position);
`

// SchemaVersion is the current schema version
const SchemaVersion = 1
