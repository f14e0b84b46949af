// Package resume reads uploaded resumes from R2 and prepares resume
// content for AI rewriting.
package resume

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimeText = "text/plain"
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var ErrUnsupportedType = errors.New("unsupported file type")

// ExtractText returns the plain text of an uploaded resume.
func ExtractText(mime string, data []byte) (string, error) {
	switch mime {
	case MimeText:
		return string(data), nil

	case MimePDF:
		return extractPDFText(bytes.NewReader(data))

	case MimeDOCX:
		return extractDocxText(bytes.NewReader(data))

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

func extractPDFText(reader *bytes.Reader) (string, error) {
	pdfReader, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader *bytes.Reader) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// ToMarkdown turns extracted text into the markdown content stored on a
// resume: blank-line separated paragraphs with trailing spaces trimmed.
func ToMarkdown(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	var out []string
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if strings.TrimSpace(l) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
