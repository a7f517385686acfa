// Package reference resolves and reads the per-OS reference documents that error
// lines are checked against.
package reference

import (
	"path/filepath"
	"sort"
	"strings"
)

// SecondaryDocs names the documents detail paragraphs are copied from.
type SecondaryDocs struct {
	Windows16 string
	Windows19 string
	Default   string
}

// DefaultPrimaryDocs maps each recognized OS identifier to its reference document.
func DefaultPrimaryDocs() map[string]string {
	return map[string]string{
		"windows12": "Win12.docx",
		"windows16": "Win16.docx",
		"windows19": "Win19.docx",
	}
}

// DefaultSecondaryDocs returns the stock secondary document names.
func DefaultSecondaryDocs() SecondaryDocs {
	return SecondaryDocs{
		Windows16: "Win16.docx",
		Windows19: "Win19.docx",
		Default:   "Win12.docx",
	}
}

// Catalog resolves OS identifiers and reference lines to document paths inside one directory.
type Catalog struct {
	dir       string
	primary   map[string]string
	secondary SecondaryDocs
}

// NewCatalog creates a Catalog rooted at dir. The primary map is copied.
func NewCatalog(dir string, primary map[string]string, secondary SecondaryDocs) *Catalog {
	c := &Catalog{
		dir:       dir,
		primary:   make(map[string]string, len(primary)),
		secondary: secondary,
	}
	for id, name := range primary {
		c.primary[id] = name
	}
	return c
}

// Primary returns the reference document path for an OS identifier.
func (c *Catalog) Primary(osID string) (string, bool) {
	name, ok := c.primary[osID]
	if !ok {
		return "", false
	}
	return filepath.Join(c.dir, name), true
}

// Secondary picks the detail document for a matched reference line. The
// windows16 check wins when a line mentions both versions.
func (c *Catalog) Secondary(refLine string) string {
	name := c.secondary.Default
	switch {
	case strings.Contains(refLine, "windows16"):
		name = c.secondary.Windows16
	case strings.Contains(refLine, "windows19"):
		name = c.secondary.Windows19
	}
	return filepath.Join(c.dir, name)
}

// Identifiers returns the recognized OS identifiers in sorted order.
func (c *Catalog) Identifiers() []string {
	ids := make([]string, 0, len(c.primary))
	for id := range c.primary {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
