package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	mcNamespace   = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	documentPart  = "word/document.xml"
)

// Open reads the paragraphs of the .docx file at path.
func Open(path string) (*Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &ParseError{Path: path, Message: "failed to open package", Cause: err}
	}
	defer zr.Close()

	return readPackage(path, &zr.Reader)
}

// Read reads the paragraphs of a .docx package held in r.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, &ParseError{Path: "(reader)", Message: "failed to open package", Cause: err}
	}
	return readPackage("(reader)", zr)
}

func readPackage(path string, zr *zip.Reader) (*Document, error) {
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &ParseError{Path: path, Message: "failed to open " + documentPart, Cause: err}
		}
		defer rc.Close()

		doc, err := decodeBody(rc)
		if err != nil {
			return nil, &ParseError{Path: path, Message: "failed to decode " + documentPart, Cause: err}
		}
		return doc, nil
	}
	return nil, &ParseError{Path: path, Message: "missing " + documentPart}
}

// paragraphState tracks the paragraph currently being decoded. Paragraphs can
// nest through text boxes, so states form a stack.
type paragraphState struct {
	para  *Paragraph
	run   *Run
	inPPr bool
	inRPr bool
}

func decodeBody(r io.Reader) (*Document, error) {
	doc := New()
	dec := xml.NewDecoder(r)
	var stack []*paragraphState

	top := func() *paragraphState {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			// mc:Fallback repeats the content of mc:Choice for older readers.
			if el.Name.Space == mcNamespace && el.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if el.Name.Space != wordNamespace {
				continue
			}
			if el.Name.Local == "p" {
				stack = append(stack, &paragraphState{para: &Paragraph{}})
				continue
			}
			st := top()
			if st == nil {
				continue
			}
			if err := st.start(dec, el); err != nil {
				return nil, err
			}

		case xml.EndElement:
			if el.Name.Space != wordNamespace {
				continue
			}
			st := top()
			if st == nil {
				continue
			}
			switch el.Name.Local {
			case "p":
				if st.run != nil {
					st.para.Runs = append(st.para.Runs, *st.run)
				}
				stack = stack[:len(stack)-1]
				doc.Paragraphs = append(doc.Paragraphs, st.para)
			case "pPr":
				st.inPPr = false
			case "rPr":
				st.inRPr = false
			case "r":
				if st.run != nil {
					st.para.Runs = append(st.para.Runs, *st.run)
					st.run = nil
				}
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("unterminated paragraph")
	}
	return doc, nil
}

func (st *paragraphState) start(dec *xml.Decoder, el xml.StartElement) error {
	switch el.Name.Local {
	case "pPr":
		st.inPPr = true
	case "rPr":
		st.inRPr = true
	case "jc":
		if st.inPPr && !st.inRPr {
			st.para.Alignment = Alignment(attr(el, "val"))
		}
	case "r":
		if !st.inPPr {
			st.run = &Run{}
		}
	case "b":
		if st.run != nil && st.inRPr {
			st.run.Bold = onOff(el)
		}
	case "color":
		if st.run != nil && st.inRPr {
			st.run.Color = attr(el, "val")
		}
	case "sz":
		if st.run != nil && st.inRPr {
			if n, err := strconv.Atoi(attr(el, "val")); err == nil {
				st.run.Size = n
			}
		}
	case "rFonts":
		if st.run != nil && st.inRPr {
			st.run.EastAsiaFont = attr(el, "eastAsia")
		}
	case "t":
		var text struct {
			Value string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&text, &el); err != nil {
			return err
		}
		st.appendText(text.Value)
	case "tab":
		if !st.inPPr && st.run != nil {
			st.appendText("\t")
		}
	case "br", "cr":
		if st.run != nil {
			st.appendText("\n")
		}
	}
	return nil
}

func (st *paragraphState) appendText(s string) {
	if st.run == nil {
		st.run = &Run{}
	}
	st.run.Text += s
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// onOff reads an ST_OnOff toggle; a bare element means on.
func onOff(el xml.StartElement) bool {
	switch attr(el, "val") {
	case "0", "false", "off":
		return false
	default:
		return true
	}
}
