// ABOUTME: Fixed, read-only law catalog keyed by canonical key
// ABOUTME: Loads the embedded YAML catalog and overview text, or a YAML file from disk
package laws

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harper/legal-crew/internal/models"
)

//go:embed data/catalog.yaml
var defaultCatalogYAML []byte

//go:embed data/overview.txt
var defaultOverview string

// catalogFile is the on-disk YAML layout
type catalogFile struct {
	Laws []models.Law `yaml:"laws"`
}

// Catalog maps canonical keys and display titles to law records
type Catalog struct {
	laws     []models.Law
	byTitle  map[string]int
	byKey    map[string]int
	overview string
}

// NormalizeKey folds case, trims, and replaces spaces with underscores
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}

// NewCatalog builds a catalog from law records. Records without a key get
// one derived from their title.
func NewCatalog(laws []models.Law, overview string) *Catalog {
	c := &Catalog{
		laws:     make([]models.Law, 0, len(laws)),
		byTitle:  make(map[string]int, len(laws)),
		byKey:    make(map[string]int, len(laws)),
		overview: overview,
	}
	for _, law := range laws {
		if law.Key == "" {
			law.Key = NormalizeKey(law.Title)
		}
		idx := len(c.laws)
		c.laws = append(c.laws, law)
		c.byKey[NormalizeKey(law.Key)] = idx
		c.byTitle[strings.ToLower(strings.TrimSpace(law.Title))] = idx
	}
	return c
}

// ParseYAML decodes law records from catalog YAML
func ParseYAML(data []byte) ([]models.Law, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i, law := range file.Laws {
		if strings.TrimSpace(law.Title) == "" {
			return nil, fmt.Errorf("parsing catalog: law %d has no title", i)
		}
	}
	return file.Laws, nil
}

// EncodeYAML writes law records in the layout ParseYAML reads
func EncodeYAML(laws []models.Law) ([]byte, error) {
	data, err := yaml.Marshal(catalogFile{Laws: laws})
	if err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return data, nil
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	laws, err := ParseYAML(defaultCatalogYAML)
	if err != nil {
		return nil, err
	}
	return NewCatalog(laws, defaultOverview), nil
}

// DefaultOverview returns the embedded condensed reference text
func DefaultOverview() string {
	return defaultOverview
}

// LoadFile reads a catalog YAML file; the embedded overview is kept
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	laws, err := ParseYAML(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(laws, defaultOverview), nil
}

// Find matches a title case-insensitively against display titles, then
// against canonical keys in normalized form
func (c *Catalog) Find(title string) (models.Law, bool) {
	if idx, ok := c.byTitle[strings.ToLower(strings.TrimSpace(title))]; ok {
		return c.laws[idx], true
	}
	if idx, ok := c.byKey[NormalizeKey(title)]; ok {
		return c.laws[idx], true
	}
	return models.Law{}, false
}

// Laws returns a copy of all records in catalog order
func (c *Catalog) Laws() []models.Law {
	out := make([]models.Law, len(c.laws))
	copy(out, c.laws)
	return out
}

// Titles returns the display titles in catalog order
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.laws))
	for i, law := range c.laws {
		titles[i] = law.Title
	}
	return titles
}

// Overview returns the condensed reference text used for fast answers
func (c *Catalog) Overview() string {
	return c.overview
}
