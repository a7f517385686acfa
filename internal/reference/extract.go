package reference

import (
	"strings"

	"github.com/jonathan/error-annotator/internal/docx"
	"github.com/rs/zerolog"
)

// Extractor reads reference lines out of .docx reference documents.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor creates an Extractor that reports failures to logger.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Lines returns the non-empty, whitespace-trimmed paragraph texts of the document
// at path, in document order. A document that cannot be opened or parsed is
// logged and yields no lines.
func (e *Extractor) Lines(path string) []string {
	doc, err := docx.Open(path)
	if err != nil {
		e.logger.Error().Err(err).Str("path", path).Msg("Failed to load reference document")
		return []string{}
	}

	lines := make([]string, 0, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		if text := strings.TrimSpace(p.Text()); text != "" {
			lines = append(lines, text)
		}
	}

	e.logger.Debug().Str("path", path).Int("lines", len(lines)).Msg("Loaded reference document")
	return lines
}
