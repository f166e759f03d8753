// ABOUTME: Law catalog records and the topic request/bundle exchanged with lookup
// ABOUTME: A bundle holds one entry per requested title, found or not
package models

import (
	"fmt"
	"strings"
)

// ContentNotFound is the placeholder stored for a title missing from the catalog
const ContentNotFound = "Content not found"

// CaseLaw is a court decision cited by a section
type CaseLaw struct {
	Case    string `json:"case" yaml:"case"`
	Summary string `json:"summary" yaml:"summary"`
}

// Section is one article or rule within a law
type Section struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Text    string    `json:"text" yaml:"text"`
	CaseLaw []CaseLaw `json:"case_law,omitempty" yaml:"case_law,omitempty"`
}

// Law is a catalog entry keyed by its canonical key
type Law struct {
	Key      string    `json:"key" yaml:"key"`
	Title    string    `json:"title" yaml:"title"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// TopicRequest is the relevance-ranked list of titles chosen by topic selection
type TopicRequest []string

// TopicEntry is the lookup result for one requested title
type TopicEntry struct {
	Title string `json:"title"`
	Found bool   `json:"found"`
	Law   *Law   `json:"law,omitempty"`
}

// Content returns the law record or the not-found placeholder
func (e TopicEntry) Content() any {
	if !e.Found || e.Law == nil {
		return ContentNotFound
	}
	return e.Law
}

// TopicBundle holds one entry per requested title in request order
type TopicBundle struct {
	Entries []TopicEntry `json:"entries"`
}

// Len returns the number of entries
func (b TopicBundle) Len() int {
	return len(b.Entries)
}

// IsEmpty reports whether lookup produced nothing usable
func (b TopicBundle) IsEmpty() bool {
	return len(b.Entries) == 0
}

// Get returns the first entry for the given title
func (b TopicBundle) Get(title string) (TopicEntry, bool) {
	for _, e := range b.Entries {
		if e.Title == title {
			return e, true
		}
	}
	return TopicEntry{}, false
}

// Found returns how many entries resolved to a law
func (b TopicBundle) Found() int {
	n := 0
	for _, e := range b.Entries {
		if e.Found {
			n++
		}
	}
	return n
}

// Render formats the bundle as plain text for inclusion in a role task
func (b TopicBundle) Render() string {
	var sb strings.Builder
	for i, e := range b.Entries {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## %s\n", e.Title))
		if !e.Found || e.Law == nil {
			sb.WriteString(ContentNotFound + "\n")
			continue
		}
		for _, s := range e.Law.Sections {
			sb.WriteString(fmt.Sprintf("[%s] %s: %s\n", s.ID, s.Title, s.Text))
			for _, c := range s.CaseLaw {
				sb.WriteString(fmt.Sprintf("  - %s: %s\n", c.Case, c.Summary))
			}
		}
	}
	return sb.String()
}
