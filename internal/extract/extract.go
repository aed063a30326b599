package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Source reports which path produced the text.
type Source string

const (
	SourcePDF Source = "pdf"
	SourceRaw Source = "raw"
)

// Text returns the readable text of an uploaded resume. PDF text extraction is
// tried first; when it fails or finds nothing, the raw bytes are decoded as UTF-8.
func Text(ctx context.Context, data []byte) (string, Source, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if text, err := pdfText(data); err == nil && strings.TrimSpace(text) != "" {
		return strings.TrimSpace(text), SourcePDF, nil
	}
	return rawText(data), SourceRaw, nil
}

func pdfText(data []byte) (text string, err error) {
	// The PDF reader panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf parse panic: %v", rec)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func rawText(data []byte) string {
	s := string(data)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "�")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
