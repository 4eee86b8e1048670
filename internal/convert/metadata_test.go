package convert

import (
	"bytes"
	"testing"

	"codeberg.org/go-pdf/fpdf"
)

// utf16Bytes encodes s the way fpdf serializes UTF-8 metadata strings:
// UTF-16BE with a byte order mark.
func utf16Bytes(s string) []byte {
	out := []byte{0xFE, 0xFF}
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

// ---------------------------------------------------------------------------
// TestApplyMetadata - Producer invariant and optional fields
// ---------------------------------------------------------------------------

func TestApplyMetadata(t *testing.T) {
	t.Parallel()

	render := func(title, author, producer string) []byte {
		doc := fpdf.New("P", "pt", "A4", "")
		doc.AddPage()
		applyMetadata(doc, title, author, producer)

		var buf bytes.Buffer
		if err := doc.Output(&buf); err != nil {
			t.Fatalf("serializing document: %v", err)
		}
		return buf.Bytes()
	}

	t.Run("producer defaults when absent", func(t *testing.T) {
		t.Parallel()

		pdf := render("", "", "")
		if !bytes.Contains(pdf, utf16Bytes(DefaultProducer)) {
			t.Error("default producer not present in output")
		}
	})

	t.Run("explicit producer wins", func(t *testing.T) {
		t.Parallel()

		pdf := render("", "", "ACME Papers")
		if !bytes.Contains(pdf, utf16Bytes("ACME Papers")) {
			t.Error("explicit producer not present in output")
		}
		if bytes.Contains(pdf, utf16Bytes(DefaultProducer)) {
			t.Error("default producer written alongside explicit one")
		}
	})

	t.Run("title and author written when present", func(t *testing.T) {
		t.Parallel()

		pdf := render("Annual Report", "QA Team", "")
		if !bytes.Contains(pdf, utf16Bytes("Annual Report")) {
			t.Error("title not present in output")
		}
		if !bytes.Contains(pdf, utf16Bytes("QA Team")) {
			t.Error("author not present in output")
		}
	})
}

func TestDefaultProducer(t *testing.T) {
	t.Parallel()

	if DefaultProducer == "" {
		t.Fatal("DefaultProducer is empty")
	}
	for _, tool := range []string{"fpdf", "pdfcpu", "rod", "chrome"} {
		if bytes.Contains(bytes.ToLower([]byte(DefaultProducer)), []byte(tool)) {
			t.Errorf("DefaultProducer reveals tooling: %q", tool)
		}
	}
}
