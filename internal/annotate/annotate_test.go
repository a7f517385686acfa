package annotate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jonathan/error-annotator/internal/docx"
	"github.com/jonathan/error-annotator/internal/reference"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture lays out a reference directory with the three stock secondary documents.
type fixture struct {
	dir       string
	annotator *Annotator
}

func newFixture(t *testing.T, docs map[string][]string) *fixture {
	t.Helper()
	dir := t.TempDir()
	for name, paragraphs := range docs {
		doc := docx.New()
		for _, p := range paragraphs {
			doc.AddParagraph(p)
		}
		require.NoError(t, doc.Save(filepath.Join(dir, name)))
	}
	catalog := reference.NewCatalog(dir, reference.DefaultPrimaryDocs(), reference.DefaultSecondaryDocs())
	return &fixture{dir: dir, annotator: New(catalog, zerolog.Nop())}
}

func (f *fixture) annotate(t *testing.T, input string, refLines []string) (Summary, *docx.Document) {
	t.Helper()
	inputPath := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0o644))
	outputPath := filepath.Join(t.TempDir(), "out.docx")

	summary, err := f.annotator.Annotate(context.Background(), inputPath, refLines, outputPath)
	require.NoError(t, err)

	doc, err := docx.Open(outputPath)
	require.NoError(t, err)
	return summary, doc
}

func matchedParagraph(text string) *docx.Paragraph {
	return &docx.Paragraph{Alignment: docx.AlignRight, Runs: []docx.Run{{Text: text, Bold: true}}}
}

func unmatchedParagraph(text string) *docx.Paragraph {
	return &docx.Paragraph{Runs: []docx.Run{{Text: text, Color: "FF0000"}}}
}

func detailParagraph(text string) *docx.Paragraph {
	return &docx.Paragraph{
		Alignment: docx.AlignRight,
		Runs:      []docx.Run{{Text: text, Bold: true, Color: "0000FF", Size: 24, EastAsiaFont: "Arial"}},
	}
}

var stockDocs = map[string][]string{
	"Win12.docx": {"Windows 2012 notes", "timeout generic: restart the service"},
	"Win16.docx": {
		"Windows 2016 notes",
		"disk full on windows16 node: free space on C:",
		"disk full on windows16 node: second entry is never used",
	},
	"Win19.docx": {"timeout on windows19 host: raise the limit"},
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		want     string
		eligible bool
	}{
		{"marker in the middle keeps interior spacing", "2023 ERROR disk full", "2023  disk full", true},
		{"leading marker", "ERROR unknown fault", "unknown fault", true},
		{"repeated marker", "ERROR: ERROR twice", ":  twice", true},
		{"marker only", "  ERROR  ", "", true},
		{"lowercase is not a marker", "error: disk full", "", false},
		{"no marker", "INFO started", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanLine(tt.line)
			assert.Equal(t, tt.eligible, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_IsSubstringContainment(t *testing.T) {
	refs := []string{"disk full on windows16 node"}

	assert.True(t, Matches("disk full", refs))
	assert.True(t, Matches("disk full on windows16 node", refs))
	assert.False(t, Matches("2023  disk full", refs))
	assert.False(t, Matches("Disk Full", refs))
	assert.False(t, Matches("disk full", nil))
}

func TestAnnotate_MatchedLineAppendsWindows16Detail(t *testing.T) {
	f := newFixture(t, stockDocs)

	summary, doc := f.annotate(t, "ERROR disk full\n", []string{"disk full on windows16 node"})

	want := []*docx.Paragraph{
		matchedParagraph("disk full"),
		detailParagraph("disk full on windows16 node: free space on C:"),
	}
	if diff := cmp.Diff(want, doc.Paragraphs); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Summary{Lines: 1, Eligible: 1, Matched: 1, Appended: 1}, summary)
}

func TestAnnotate_UnmatchedLineIsRed(t *testing.T) {
	f := newFixture(t, stockDocs)

	summary, doc := f.annotate(t, "ERROR unknown fault\n", []string{"disk full on windows16 node"})

	want := []*docx.Paragraph{unmatchedParagraph("unknown fault")}
	if diff := cmp.Diff(want, doc.Paragraphs); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, summary.Unmatched)
}

func TestAnnotate_TimestampPrefixMustAppearInReferenceLine(t *testing.T) {
	f := newFixture(t, stockDocs)

	_, doc := f.annotate(t, "2023 ERROR disk full\n", []string{"disk full on windows16 node"})
	assert.Equal(t, []*docx.Paragraph{unmatchedParagraph("2023  disk full")}, doc.Paragraphs)

	_, doc = f.annotate(t, "2023 ERROR disk full\n", []string{"2023  disk full on windows16 node"})
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, matchedParagraph("2023  disk full"), doc.Paragraphs[0])
}

func TestAnnotate_DropsLinesWithoutMarker(t *testing.T) {
	f := newFixture(t, stockDocs)

	input := strings.Join([]string{
		"INFO service started",
		"WARN disk at 90%",
		"ERROR unknown fault",
		"debug: ERRORS are fine here",
		"",
	}, "\r\n")
	summary, doc := f.annotate(t, input, nil)

	assert.Equal(t, []string{"unknown fault", "debug: S are fine here"}, doc.Texts())
	for _, text := range doc.Texts() {
		assert.NotContains(t, text, "INFO")
		assert.NotContains(t, text, "WARN")
	}
	assert.Equal(t, Summary{Lines: 4, Eligible: 2, Unmatched: 2}, summary)
}

func TestAnnotate_AppendsOncePerContainingReferenceLine(t *testing.T) {
	f := newFixture(t, stockDocs)

	refs := []string{"timeout on windows19 host", "unrelated", "timeout generic"}
	summary, doc := f.annotate(t, "ERROR timeout\n", refs)

	want := []*docx.Paragraph{
		matchedParagraph("timeout"),
		detailParagraph("timeout on windows19 host: raise the limit"),
		detailParagraph("timeout generic: restart the service"),
	}
	if diff := cmp.Diff(want, doc.Paragraphs); diff != "" {
		t.Errorf("paragraphs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, summary.Appended)
}

func TestAnnotate_MissingDetailParagraphIsNoOp(t *testing.T) {
	f := newFixture(t, stockDocs)

	summary, doc := f.annotate(t, "ERROR quota exceeded\n", []string{"quota exceeded on windows16"})

	assert.Equal(t, []*docx.Paragraph{matchedParagraph("quota exceeded")}, doc.Paragraphs)
	assert.Equal(t, 0, summary.Appended)
}

func TestAnnotate_PreservesInputOrder(t *testing.T) {
	f := newFixture(t, stockDocs)

	input := "ERROR first\nERROR disk full\nERROR third\n"
	_, doc := f.annotate(t, input, []string{"disk full on windows16 node"})

	assert.Equal(t, []string{
		"first",
		"disk full",
		"disk full on windows16 node: free space on C:",
		"third",
	}, doc.Texts())
}

func TestAnnotate_MissingSecondaryDocumentFails(t *testing.T) {
	f := newFixture(t, map[string][]string{"Win12.docx": {"x"}})

	inputPath := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("ERROR disk full\n"), 0o644))
	outputPath := filepath.Join(t.TempDir(), "out.docx")

	_, err := f.annotator.Annotate(context.Background(), inputPath, []string{"disk full on windows16 node"}, outputPath)
	require.Error(t, err)

	var parseErr *docx.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.NoFileExists(t, outputPath)
}

func TestAnnotate_MissingInput(t *testing.T) {
	f := newFixture(t, stockDocs)

	_, err := f.annotator.Annotate(context.Background(), filepath.Join(f.dir, "nope.txt"), nil, filepath.Join(f.dir, "out.docx"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnnotate_CanceledContext(t *testing.T) {
	f := newFixture(t, stockDocs)

	inputPath := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte("ERROR a\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.annotator.Annotate(ctx, inputPath, nil, filepath.Join(t.TempDir(), "out.docx"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnnotate_EmptyInputStillWritesDocument(t *testing.T) {
	f := newFixture(t, stockDocs)

	summary, doc := f.annotate(t, "", nil)
	assert.Empty(t, doc.Paragraphs)
	assert.Equal(t, Summary{}, summary)
}
