package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

// buildPDF assembles a one-page PDF with a single line of Helvetica text.
func buildPDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestTextExtractsPDF(t *testing.T) {
	text, source, err := Text(context.Background(), buildPDF("Jane Doe Go Engineer"))
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if source != SourcePDF {
		t.Fatalf("expected pdf source, got %s", source)
	}
	if !strings.Contains(text, "Jane Doe Go Engineer") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestTextFallsBackToRawBytes(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "plain text", data: []byte("Jane Doe\nGo Engineer"), want: "Jane Doe\nGo Engineer"},
		{name: "broken pdf", data: []byte("%PDF-1.4\ngarbage"), want: "%PDF-1.4\ngarbage"},
		{name: "invalid utf8", data: []byte{'a', 0xff, 'b', 0x00}, want: "a�b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, source, err := Text(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("Text: %v", err)
			}
			if source != SourceRaw {
				t.Fatalf("expected raw source, got %s", source)
			}
			if text != tt.want {
				t.Fatalf("got %q, want %q", text, tt.want)
			}
		})
	}
}

func TestTextHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Text(ctx, []byte("x")); err == nil {
		t.Fatalf("expected context error")
	}
}
