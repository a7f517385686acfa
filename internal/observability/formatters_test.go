package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jonathan/error-annotator/internal/annotate"
	"github.com/stretchr/testify/assert"
)

func TestPrintSummary_AllMatched(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary("windows16", "Harding - 2024-03-05.docx", annotate.Summary{
		Lines:    10,
		Eligible: 2,
		Matched:  2,
		Appended: 1,
	})
	output := buf.String()

	assert.Contains(t, output, "Annotation Summary")
	assert.Contains(t, output, "OS:        windows16")
	assert.Contains(t, output, "Lines:     10")
	assert.Contains(t, output, "Errors:    2")
	assert.Contains(t, output, "Details:   1")
	assert.Contains(t, output, "all errors matched, wrote Harding - 2024-03-05.docx")
}

func TestPrintSummary_Unmatched(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary("windows12", "out.docx", annotate.Summary{Lines: 3, Eligible: 3, Matched: 1, Unmatched: 2})

	assert.Contains(t, buf.String(), "2 unmatched error(s), wrote out.docx")
}

func TestPrintSummary_NoErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary("windows19", "out.docx", annotate.Summary{Lines: 4})

	assert.Contains(t, buf.String(), "no ERROR lines found")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("Title", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, "line too wide: %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintBox_TruncatesOnRuneBoundaries(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary("windows16", strings.Repeat("日誌", 40)+".docx", annotate.Summary{})
	p.printBox("Title", "Output:    "+strings.Repeat("é", 100))

	output := buf.String()
	assert.True(t, utf8.ValidString(output), "output must stay valid UTF-8")
	assert.Contains(t, output, strings.Repeat("é", boxWidth-7-len([]rune("Output:    ")))+"...")
}
