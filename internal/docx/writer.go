package docx

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

// The w: prefixes are written literally; encoding/xml has no prefix control.
type xmlDocument struct {
	XMLName   xml.Name `xml:"w:document"`
	Namespace string   `xml:"xmlns:w,attr"`
	Body      xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph `xml:"w:p"`
}

type xmlParagraph struct {
	Props *xmlParagraphProps `xml:"w:pPr,omitempty"`
	Runs  []xmlRun           `xml:"w:r"`
}

type xmlParagraphProps struct {
	Justification *xmlVal `xml:"w:jc,omitempty"`
}

type xmlRun struct {
	Props *xmlRunProps `xml:"w:rPr,omitempty"`
	Text  xmlText      `xml:"w:t"`
}

// Element order follows CT_RPr.
type xmlRunProps struct {
	Fonts *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold  *struct{} `xml:"w:b,omitempty"`
	Color *xmlVal   `xml:"w:color,omitempty"`
	Size  *xmlVal   `xml:"w:sz,omitempty"`
}

type xmlFonts struct {
	EastAsia string `xml:"w:eastAsia,attr"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Write encodes d as a .docx package to w.
func (d *Document) Write(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		body func(io.Writer) error
	}{
		{"[Content_Types].xml", writeString(contentTypesXML)},
		{"_rels/.rels", writeString(packageRelsXML)},
		{documentPart, d.encodeBody},
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return &WriteError{Path: part.name, Message: "failed to create part", Cause: err}
		}
		if err := part.body(fw); err != nil {
			return &WriteError{Path: part.name, Message: "failed to encode part", Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return &WriteError{Path: "(package)", Message: "failed to finalize package", Cause: err}
	}
	return nil
}

// Save writes d to path through a temporary file in the same directory, so a
// failed save never leaves a truncated document behind.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docx-*")
	if err != nil {
		return &WriteError{Path: path, Message: "failed to create temporary file", Cause: err}
	}
	tmpName := tmp.Name()

	if err := d.Write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Message: "failed to close temporary file", Cause: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Message: "failed to move document into place", Cause: err}
	}
	return nil
}

func (d *Document) encodeBody(w io.Writer) error {
	doc := xmlDocument{Namespace: wordNamespace}
	doc.Body.Paragraphs = make([]xmlParagraph, 0, len(d.Paragraphs))
	for _, p := range d.Paragraphs {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, encodeParagraph(p))
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func encodeParagraph(p *Paragraph) xmlParagraph {
	var xp xmlParagraph
	if p.Alignment != AlignDefault {
		xp.Props = &xmlParagraphProps{Justification: &xmlVal{Val: string(p.Alignment)}}
	}
	for _, r := range p.Runs {
		xp.Runs = append(xp.Runs, encodeRun(r))
	}
	return xp
}

func encodeRun(r Run) xmlRun {
	xr := xmlRun{Text: xmlText{Value: r.Text}}
	if r.Text != strings.TrimSpace(r.Text) || strings.Contains(r.Text, "  ") {
		xr.Text.Space = "preserve"
	}

	var props xmlRunProps
	set := false
	if r.EastAsiaFont != "" {
		props.Fonts = &xmlFonts{EastAsia: r.EastAsiaFont}
		set = true
	}
	if r.Bold {
		props.Bold = &struct{}{}
		set = true
	}
	if r.Color != "" {
		props.Color = &xmlVal{Val: r.Color}
		set = true
	}
	if r.Size > 0 {
		props.Size = &xmlVal{Val: strconv.Itoa(r.Size)}
		set = true
	}
	if set {
		xr.Props = &props
	}
	return xr
}

func writeString(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}
