// ABOUTME: Resolves requested topic titles into a bundle of law records
// ABOUTME: Misses become placeholders; malformed input yields an empty bundle and a warning
package laws

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/models"
)

// ErrMalformedInput describes a lookup request that is not a sequence of strings.
// It is logged, never returned.
var ErrMalformedInput = errors.New("malformed input")

// Lookup resolves titles against a catalog
type Lookup struct {
	catalog *Catalog
	logger  *log.Logger
}

// NewLookup creates a Lookup over the catalog
func NewLookup(catalog *Catalog, logger *log.Logger) *Lookup {
	return &Lookup{
		catalog: catalog,
		logger:  logging.Component(logger, "Lookup"),
	}
}

// Catalog returns the underlying catalog
func (l *Lookup) Catalog() *Catalog {
	return l.catalog
}

// Resolve returns one entry per requested title, in request order.
// Duplicates produce duplicate entries.
func (l *Lookup) Resolve(titles []string) models.TopicBundle {
	bundle := models.TopicBundle{Entries: make([]models.TopicEntry, 0, len(titles))}
	for _, title := range titles {
		law, ok := l.catalog.Find(title)
		if !ok {
			l.logger.Warn("Law not found", "title", title)
			bundle.Entries = append(bundle.Entries, models.TopicEntry{Title: title})
			continue
		}
		found := law
		bundle.Entries = append(bundle.Entries, models.TopicEntry{Title: title, Found: true, Law: &found})
	}
	l.logger.Info("Resolved topics", "requested", len(titles), "found", bundle.Found())
	return bundle
}

// ResolveAny accepts untyped input (decoded JSON, tool arguments). Anything
// other than a sequence of strings returns an empty bundle.
func (l *Lookup) ResolveAny(v any) models.TopicBundle {
	switch titles := v.(type) {
	case []string:
		return l.Resolve(titles)
	case models.TopicRequest:
		return l.Resolve(titles)
	case []any:
		out := make([]string, 0, len(titles))
		for i, item := range titles {
			s, ok := item.(string)
			if !ok {
				l.logger.Warn("Lookup request rejected", "err", ErrMalformedInput, "index", i, "type", typeName(item))
				return models.TopicBundle{}
			}
			out = append(out, s)
		}
		return l.Resolve(out)
	default:
		l.logger.Warn("Lookup request rejected", "err", ErrMalformedInput, "type", typeName(v))
		return models.TopicBundle{}
	}
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
