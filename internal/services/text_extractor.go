package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/cv-ranker/internal/logging"
)

type DocumentKind string

const (
	KindPlainText DocumentKind = "text"
	KindPDF       DocumentKind = "pdf"
	KindDOCX      DocumentKind = "docx"
)

// KindFromFilename picks the parser by extension. Unknown extensions are
// read as plain text.
func KindFromFilename(name string) DocumentKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	default:
		return KindPlainText
	}
}

// ExtractedText holds a document's text in two forms. Lines keeps one
// trimmed non-empty line per row for line-oriented heuristics; Text has
// every whitespace run collapsed to a single space.
type ExtractedText struct {
	Lines string
	Text  string
}

func (t ExtractedText) Empty() bool {
	return t.Text == ""
}

func newExtractedText(s string) ExtractedText {
	return ExtractedText{
		Lines: CleanText(s),
		Text:  NormalizeText(s),
	}
}

type TextExtractor interface {
	Extract(ctx context.Context, kind DocumentKind, data []byte) ExtractedText
	ExtractFile(ctx context.Context, path string) ExtractedText
}

type textExtractor struct {
	timeout time.Duration
	log     *logging.Logger
}

// NewTextExtractor returns an extractor that gives up on a single document
// after timeout. A zero timeout disables the limit.
func NewTextExtractor(timeout time.Duration, log *logging.Logger) TextExtractor {
	return &textExtractor{
		timeout: timeout,
		log:     log,
	}
}

// Extract implements TextExtractor.
func (e *textExtractor) Extract(ctx context.Context, kind DocumentKind, data []byte) ExtractedText {
	return e.run(ctx, string(kind)+" bytes", func() (string, error) {
		return parseDocument(kind, data)
	})
}

// ExtractFile implements TextExtractor. A missing file yields empty text.
func (e *textExtractor) ExtractFile(ctx context.Context, path string) ExtractedText {
	return e.run(ctx, path, func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		return parseDocument(KindFromFilename(path), data)
	})
}

func (e *textExtractor) run(ctx context.Context, source string, fn func() (string, error)) ExtractedText {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type outcome struct {
		text string
		err  error
	}

	done := make(chan outcome, 1)
	go func() {
		// the pdf package panics on some malformed xref tables
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: parser panic: %v", ErrUnreadableDocument, r)}
			}
		}()
		text, err := fn()
		done <- outcome{text: text, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			e.log.Warn("document unreadable, using empty text", "source", source, "err", out.err)
			return ExtractedText{}
		}
		return newExtractedText(out.text)
	case <-ctx.Done():
		e.log.Warn("document read aborted, using empty text", "source", source, "err", ctx.Err())
		return ExtractedText{}
	}
}

func parseDocument(kind DocumentKind, data []byte) (string, error) {
	switch kind {
	case KindPDF:
		return extractPDF(data)
	case KindDOCX:
		return extractDOCX(data)
	default:
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", ErrUnreadableDocument, err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func extractDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: failed to open DOCX: %v", ErrUnreadableDocument, err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
		}
		defer rc.Close()

		return docxText(rc)
	}

	return "", fmt.Errorf("%w: word/document.xml missing", ErrUnreadableDocument)
}

// docxText walks every paragraph in document order, wherever it is nested
// (tables, content controls, text boxes). Each paragraph ends a line; tabs
// and breaks become whitespace.
func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var b strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: malformed document.xml: %v", ErrUnreadableDocument, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Space != wordNamespace {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteString("\t")
			case "br", "cr":
				b.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Space != wordNamespace {
				continue
			}
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				b.Write(el)
			}
		}
	}

	return b.String(), nil
}

// NormalizeText collapses \r\n to \n, then every whitespace run to one
// space, and trims the result.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Join(strings.Fields(text), " ")
}

// CleanText keeps line structure: one trimmed, non-empty line per row.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
