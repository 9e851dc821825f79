package services

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"alfredoptarigan/cv-ranker/internal/logging"
)

func newObservedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.FromZap(zap.New(core)), logs
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body string
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	return buildDOCXBody(t, body)
}

func buildDOCXBody(t *testing.T, body string) []byte {
	t.Helper()

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestKindFromFilename(t *testing.T) {
	assert.Equal(t, KindPDF, KindFromFilename("cv.PDF"))
	assert.Equal(t, KindDOCX, KindFromFilename("dir/cv.docx"))
	assert.Equal(t, KindPlainText, KindFromFilename("cv.txt"))
	assert.Equal(t, KindPlainText, KindFromFilename("README"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeText("  a\r\n\tb \n\n c  "))
	assert.Equal(t, "", NormalizeText(" \n\t "))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Jane Doe\nEngineer", CleanText("  Jane Doe \r\n\r\n\tEngineer\r"))
}

func TestTextExtractor_PlainText(t *testing.T) {
	extractor := NewTextExtractor(time.Second, logging.NewNop())

	doc := extractor.Extract(context.Background(), KindPlainText, []byte("Jane Doe\n\n  Go   developer\n"))

	assert.Equal(t, "Jane Doe\nGo   developer", doc.Lines)
	assert.Equal(t, "Jane Doe Go developer", doc.Text)
	assert.False(t, doc.Empty())
}

func TestTextExtractor_DOCX(t *testing.T) {
	extractor := NewTextExtractor(time.Second, logging.NewNop())

	doc := extractor.Extract(context.Background(), KindDOCX, buildDOCX(t, "John Smith", "Kubernetes and Terraform"))

	assert.Equal(t, "John Smith\nKubernetes and Terraform", doc.Lines)
	assert.Equal(t, "John Smith Kubernetes and Terraform", doc.Text)
}

func TestTextExtractor_DOCXTableLayout(t *testing.T) {
	extractor := NewTextExtractor(time.Second, logging.NewNop())
	body := `<w:tbl><w:tr>` +
		`<w:tc><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p></w:tc>` +
		`<w:tc><w:p><w:r><w:t>Python SQL,</w:t></w:r><w:r><w:t xml:space="preserve"> 5 years experience</w:t></w:r></w:p></w:tc>` +
		`</w:tr></w:tbl>` +
		`<w:sdt><w:sdtContent><w:p><w:r><w:t>jane@example.com</w:t></w:r></w:p></w:sdtContent></w:sdt>`

	doc := extractor.Extract(context.Background(), KindDOCX, buildDOCXBody(t, body))

	require.False(t, doc.Empty())
	assert.Equal(t, "Jane Doe\nPython SQL, 5 years experience\njane@example.com", doc.Lines)
	assert.Equal(t, "Jane Doe Python SQL, 5 years experience jane@example.com", doc.Text)
}

func TestTextExtractor_DOCXTabsAndBreaks(t *testing.T) {
	extractor := NewTextExtractor(time.Second, logging.NewNop())
	body := `<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t><w:br/><w:t>Docker</w:t></w:r></w:p>`

	doc := extractor.Extract(context.Background(), KindDOCX, buildDOCXBody(t, body))

	assert.Equal(t, "Skills:\tGo\nDocker", doc.Lines)
	assert.Equal(t, "Skills: Go Docker", doc.Text)
}

func TestTextExtractor_CorruptDocumentsYieldEmptyText(t *testing.T) {
	log, logs := newObservedLogger()
	extractor := NewTextExtractor(time.Second, log)

	assert.True(t, extractor.Extract(context.Background(), KindPDF, []byte("not a pdf at all")).Empty())
	assert.True(t, extractor.Extract(context.Background(), KindDOCX, []byte("not a zip")).Empty())

	var emptyZip bytes.Buffer
	require.NoError(t, zip.NewWriter(&emptyZip).Close())
	assert.True(t, extractor.Extract(context.Background(), KindDOCX, emptyZip.Bytes()).Empty())

	assert.Equal(t, 3, logs.FilterMessage("document unreadable, using empty text").Len())
}

func TestTextExtractor_ExtractFile(t *testing.T) {
	dir := t.TempDir()
	extractor := NewTextExtractor(time.Second, logging.NewNop())

	txtPath := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("Python\nSQL"), 0o644))
	assert.Equal(t, "Python SQL", extractor.ExtractFile(context.Background(), txtPath).Text)

	docxPath := filepath.Join(dir, "cv.docx")
	require.NoError(t, os.WriteFile(docxPath, buildDOCX(t, "Go"), 0o644))
	assert.Equal(t, "Go", extractor.ExtractFile(context.Background(), docxPath).Text)

	assert.True(t, extractor.ExtractFile(context.Background(), filepath.Join(dir, "missing.pdf")).Empty())
}

func TestTextExtractor_TimeoutYieldsEmptyText(t *testing.T) {
	log, logs := newObservedLogger()
	extractor := &textExtractor{timeout: 20 * time.Millisecond, log: log}

	release := make(chan struct{})
	defer close(release)

	doc := extractor.run(context.Background(), "slow.pdf", func() (string, error) {
		<-release
		return "too late", nil
	})

	assert.True(t, doc.Empty())
	assert.Equal(t, 1, logs.FilterMessage("document read aborted, using empty text").Len())
}

func TestTextExtractor_RecoversFromParserPanic(t *testing.T) {
	extractor := &textExtractor{timeout: time.Second, log: logging.NewNop()}

	doc := extractor.run(context.Background(), "bad.pdf", func() (string, error) {
		panic("malformed xref")
	})

	assert.True(t, doc.Empty())
}
