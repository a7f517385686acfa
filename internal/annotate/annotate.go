// Package annotate turns the ERROR lines of a plain-text log into a styled .docx
// report, marking which lines appear in the reference material.
package annotate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/error-annotator/internal/docx"
	"github.com/jonathan/error-annotator/internal/reference"
	"github.com/rs/zerolog"
)

// Marker selects the log lines that are annotated.
const Marker = "ERROR"

const (
	unmatchedColor = "FF0000"
	maxLineBytes   = 1 << 20
)

// Summary counts what an annotation run did.
type Summary struct {
	Lines     int // lines read from the input
	Eligible  int // lines containing the marker
	Matched   int
	Unmatched int
	Appended  int // detail paragraphs copied from secondary documents
}

// Annotator builds annotated reports.
type Annotator struct {
	catalog *reference.Catalog
	logger  zerolog.Logger
}

// New creates an Annotator that resolves secondary documents through catalog.
func New(catalog *reference.Catalog, logger zerolog.Logger) *Annotator {
	return &Annotator{catalog: catalog, logger: logger}
}

// CleanLine reports whether line carries the marker and returns it with every
// marker occurrence removed and surrounding whitespace trimmed.
func CleanLine(line string) (string, bool) {
	if !strings.Contains(line, Marker) {
		return "", false
	}
	return strings.TrimSpace(strings.ReplaceAll(line, Marker, "")), true
}

// Matches reports whether cleaned is contained in any reference line.
func Matches(cleaned string, refLines []string) bool {
	for _, ref := range refLines {
		if strings.Contains(ref, cleaned) {
			return true
		}
	}
	return false
}

// Annotate reads inputPath line by line and writes the report to outputPath.
// Lines without the marker are dropped. A matched line is written bold and
// right-aligned and followed by one detail paragraph per containing reference
// line; an unmatched line is written in red.
func (a *Annotator) Annotate(ctx context.Context, inputPath string, refLines []string, outputPath string) (Summary, error) {
	var summary Summary

	f, err := os.Open(inputPath)
	if err != nil {
		return summary, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := &run{
		annotator: a,
		doc:       docx.New(),
		sources:   make(map[string]*docx.Document),
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Lines++

		cleaned, ok := CleanLine(scanner.Text())
		if !ok {
			continue
		}
		summary.Eligible++

		if !Matches(cleaned, refLines) {
			r.doc.AddParagraph(cleaned).Color(unmatchedColor)
			summary.Unmatched++
			continue
		}

		r.doc.AddParagraph(cleaned).Bold().Align(docx.AlignRight)
		summary.Matched++
		for _, ref := range refLines {
			if !strings.Contains(ref, cleaned) {
				continue
			}
			appended, err := r.appendDetail(ref)
			if err != nil {
				return summary, err
			}
			if appended {
				summary.Appended++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input file: %w", err)
	}

	if err := r.doc.Save(outputPath); err != nil {
		return summary, fmt.Errorf("failed to save output document: %w", err)
	}
	a.logger.Info().
		Str("path", outputPath).
		Int("errors", summary.Eligible).
		Int("matched", summary.Matched).
		Int("unmatched", summary.Unmatched).
		Msg("File saved")

	return summary, nil
}
