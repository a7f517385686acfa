package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jonathan/error-annotator/internal/annotate"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for the annotate command
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if runes := []rune(line); len(runes) > boxWidth-4 {
			line = string(runes[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSummary outputs the counts of an annotation run followed by a colored verdict line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(osID, outputPath string, s annotate.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("OS:        %s\n", osID))
	sb.WriteString(fmt.Sprintf("Lines:     %d\n", s.Lines))
	sb.WriteString(fmt.Sprintf("Errors:    %d\n", s.Eligible))
	sb.WriteString(fmt.Sprintf("Matched:   %d\n", s.Matched))
	sb.WriteString(fmt.Sprintf("Unmatched: %d\n", s.Unmatched))
	sb.WriteString(fmt.Sprintf("Details:   %d", s.Appended))
	p.printBox("Annotation Summary", sb.String())

	switch {
	case s.Eligible == 0:
		color.New(color.FgYellow).Fprintf(p.out, "⚠ no ERROR lines found, wrote %s\n", outputPath)
	case s.Unmatched > 0:
		color.New(color.FgRed).Fprintf(p.out, "✗ %d unmatched error(s), wrote %s\n", s.Unmatched, outputPath)
	default:
		color.New(color.FgGreen).Fprintf(p.out, "✓ all errors matched, wrote %s\n", outputPath)
	}
}
