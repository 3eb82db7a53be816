package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

var ErrNotPDF = errors.New("pdf: not a PDF document")

var magic = []byte("%PDF-")

// IsPDF sniffs the document header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, magic)
}

// TextExtractor reads the text layer of PDF documents
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// ExtractText returns the text of every page joined by newlines, trimmed
func (TextExtractor) ExtractText(data []byte) (string, error) {
	if !IsPDF(data) {
		return "", ErrNotPDF
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(text)
	}

	return strings.TrimSpace(sb.String()), nil
}
