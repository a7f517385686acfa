package docx

import "strings"

// Alignment is the value of a paragraph's w:jc element.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignBoth    Alignment = "both"
)

// Run is a span of text sharing one set of character properties.
type Run struct {
	Text         string
	Bold         bool
	Color        string // hex RRGGBB, empty for automatic
	Size         int    // half-points, 0 for inherited
	EastAsiaFont string
}

// Paragraph is an ordered list of runs with a paragraph-level alignment.
type Paragraph struct {
	Alignment Alignment
	Runs      []Run
}

// Text returns the concatenated text of every run.
func (p *Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// Bold marks every run bold.
func (p *Paragraph) Bold() *Paragraph {
	for i := range p.Runs {
		p.Runs[i].Bold = true
	}
	return p
}

// Color sets the text color of every run.
func (p *Paragraph) Color(hex string) *Paragraph {
	for i := range p.Runs {
		p.Runs[i].Color = strings.ToUpper(hex)
	}
	return p
}

// Size sets the font size of every run in points.
func (p *Paragraph) Size(points int) *Paragraph {
	for i := range p.Runs {
		p.Runs[i].Size = points * 2
	}
	return p
}

// EastAsiaFont overrides the East Asian font family of every run.
func (p *Paragraph) EastAsiaFont(name string) *Paragraph {
	for i := range p.Runs {
		p.Runs[i].EastAsiaFont = name
	}
	return p
}

// Align sets the paragraph alignment.
func (p *Paragraph) Align(a Alignment) *Paragraph {
	p.Alignment = a
	return p
}

// Document is an ordered sequence of paragraphs.
type Document struct {
	Paragraphs []*Paragraph
}

// New returns an empty document.
func New() *Document {
	return &Document{}
}

// AddParagraph appends a paragraph holding text in a single run.
// Empty text yields a paragraph without runs.
func (d *Document) AddParagraph(text string) *Paragraph {
	p := &Paragraph{}
	if text != "" {
		p.Runs = []Run{{Text: text}}
	}
	d.Paragraphs = append(d.Paragraphs, p)
	return p
}

// Texts returns the text of every paragraph in document order.
func (d *Document) Texts() []string {
	texts := make([]string, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		texts = append(texts, p.Text())
	}
	return texts
}
