package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// writeTemplate builds a minimal template PDF with the given number
// of pages.
func writeTemplate(t *testing.T, dir string, pages int) string {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.Text(40, 52, "OW MOTORSPORT")
	}
	path := filepath.Join(dir, "template.pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func emptyCoords(t *testing.T) *CoordinateMap {
	t.Helper()
	cm, err := LoadCoordinateMap(filepath.Join(t.TempDir(), "absent.json"), InvoiceDefaults(), Position{X: 40, Y: 200})
	if err != nil {
		t.Fatalf("load coords: %v", err)
	}
	return cm
}

func TestRenderKeepsTemplatePageCount(t *testing.T) {
	dir := t.TempDir()
	template := writeTemplate(t, dir, 2)
	outPath := filepath.Join(dir, "out", "invoice_INV-1-1.pdf")

	fields := map[string]string{
		"customer_name":       "Ali Raza",
		"customer_address":    "House 12\nStreet 4\nLahore",
		"sold_price":          "350000",
		"gate_pass":           "yes",
		"documents_delivered": "no",
	}
	got, err := NewRenderer().Render(template, emptyCoords(t), fields, outPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != outPath {
		t.Fatalf("expected %s, got %s", outPath, got)
	}

	pages, err := PageCount(outPath)
	if err != nil {
		t.Fatalf("page count: %v", err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages, got %d", pages)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	missing := filepath.Join(dir, "nope.pdf")
	_, err := NewRenderer().Render(missing, emptyCoords(t), map[string]string{"a": "b"}, filepath.Join(outDir, "out.pdf"))
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}

	// No scratch or output files may be left behind.
	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("read out dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty output dir, found %d entries", len(entries))
	}
}

func TestRenderCorruptTemplateCleansScratch(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(template, []byte("not a pdf at all"), 0o644); err != nil {
		t.Fatalf("write broken template: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	_, err := NewRenderer().Render(template, emptyCoords(t), map[string]string{"a": "b"}, filepath.Join(outDir, "out.pdf"))
	if err == nil {
		t.Fatal("expected error for corrupt template")
	}
	var renderErr *RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("expected RenderError, got %T: %v", err, err)
	}

	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("read out dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected scratch file removed, found %d entries", len(entries))
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"350000":    "350,000",
		"1234567":   "1,234,567",
		"999":       "999",
		"1000":      "1,000",
		"350000.75": "350,001",
		"-45000":    "-45,000",
		"0":         "0",
		"N/A":       "N/A",
		"":          "",
	}
	for in, want := range cases {
		if got := FormatAmount(in); got != want {
			t.Fatalf("FormatAmount(%q) = %q, want %q", in, got, want)
		}
	}
}
