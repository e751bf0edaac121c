package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePlain = "text/plain"
	MimePDF   = "application/pdf"
	MimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported file type")

var extensionMimes = map[string]string{
	".txt":  MimePlain,
	".pdf":  MimePDF,
	".docx": MimeDocx,
}

// DetectMime resolves the document type from the declared content type, falling back to the file extension.
func DetectMime(contentType, filename string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case MimePlain, MimePDF, MimeDocx:
		return ct, nil
	}

	if m, ok := extensionMimes[strings.ToLower(filepath.Ext(filename))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
}

// Text returns the plain text of a resume document.
func Text(mime string, data []byte) (string, error) {
	switch mime {
	case MimePlain:
		return string(data), nil
	case MimePDF:
		return pdfText(bytes.NewReader(data), int64(len(data)))
	case MimeDocx:
		return docxText(bytes.NewReader(data), int64(len(data)))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func pdfText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(r io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return stripDocxMarkup(doc.Editable().GetContent()), nil
}

var (
	docxBreakRe = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:tab\s*/>`)
	docxTagRe   = regexp.MustCompile(`<[^>]+>`)
)

// The docx reader returns document.xml verbatim; keep the text runs and paragraph breaks.
func stripDocxMarkup(xml string) string {
	s := docxBreakRe.ReplaceAllString(xml, "\n")
	s = docxTagRe.ReplaceAllString(s, "")
	s = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'").Replace(s)
	return strings.TrimSpace(s)
}
