package annotate

import (
	"fmt"
	"strings"

	"github.com/jonathan/error-annotator/internal/docx"
)

const (
	detailColor     = "0000FF"
	detailPointSize = 12
	detailFont      = "Arial"
)

// run is the state of a single Annotate call.
type run struct {
	annotator *Annotator
	doc       *docx.Document
	sources   map[string]*docx.Document // secondary documents by path
}

// appendDetail copies the first paragraph of the secondary document for refLine
// that contains refLine, styled as a detail paragraph. It reports whether a
// paragraph was appended; finding none is not an error.
func (r *run) appendDetail(refLine string) (bool, error) {
	path := r.annotator.catalog.Secondary(refLine)
	source, err := r.source(path)
	if err != nil {
		return false, err
	}

	needle := strings.TrimSpace(refLine)
	for _, p := range source.Paragraphs {
		text := p.Text()
		if !strings.Contains(text, needle) {
			continue
		}
		r.doc.AddParagraph(text).
			Bold().
			Size(detailPointSize).
			Color(detailColor).
			EastAsiaFont(detailFont).
			Align(docx.AlignRight)
		return true, nil
	}

	r.annotator.logger.Debug().Str("source", path).Str("line", needle).Msg("No detail paragraph found")
	return false, nil
}

func (r *run) source(path string) (*docx.Document, error) {
	if doc, ok := r.sources[path]; ok {
		return doc, nil
	}
	doc, err := docx.Open(path)
	if err != nil {
		r.annotator.logger.Error().Err(err).Str("path", path).Msg("Failed to load secondary document")
		return nil, fmt.Errorf("failed to load secondary document: %w", err)
	}
	r.sources[path] = doc
	return doc, nil
}
