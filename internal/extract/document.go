package extract

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Document is one uploaded attachment to an extraction request.
type Document struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// extractDocumentsText extracts plain text from each document and collates
// it into a single block, returning the count of documents it could not
// read. An unreadable document contributes a placeholder note instead of
// failing the request.
func extractDocumentsText(docs []Document) (string, int) {
	if len(docs) == 0 {
		return "", 0
	}
	var b strings.Builder
	unreadable := 0
	for i, doc := range docs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		name := doc.Filename
		if name == "" {
			name = fmt.Sprintf("document %d", i+1)
		}
		text, err := documentText(doc)
		if err != nil {
			b.WriteString(fmt.Sprintf("[document %q could not be read]", name))
			unreadable++
			continue
		}
		b.WriteString(fmt.Sprintf("Document %q:\n%s", name, text))
	}
	return b.String(), unreadable
}

func documentText(doc Document) (string, error) {
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("empty document")
	}
	if isPDF(doc) {
		return pdfText(doc.Data)
	}
	if utf8.Valid(doc.Data) {
		text := strings.TrimSpace(string(doc.Data))
		if text == "" {
			return "", fmt.Errorf("document contains no text")
		}
		return text, nil
	}
	return "", fmt.Errorf("unsupported document format")
}

func isPDF(doc Document) bool {
	if bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
		return true
	}
	return strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf")
}

// pdfText extracts plain text from a PDF payload. The pdf library panics on
// some malformed files, so the recover converts that into an error.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return "", fmt.Errorf("pdf contains no extractable text")
	}
	return out, nil
}
