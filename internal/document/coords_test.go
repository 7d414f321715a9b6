package document

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCoordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coords.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write coord file: %v", err)
	}
	return path
}

func TestLoadCoordinateMapResolvesMappedField(t *testing.T) {
	path := writeCoordFile(t, `{"customer_name": [90.5, 130], "GATE_PASS": [110, 432]}`)

	cm, err := LoadCoordinateMap(path, InvoiceDefaults(), Position{X: 40, Y: 200})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	pos := cm.Resolve("customer_name")
	if pos.X != 90.5 || pos.Y != 130 {
		t.Fatalf("unexpected position %+v", pos)
	}
	// Keys are case-insensitive on both sides.
	pos = cm.Resolve("gate_pass")
	if pos.X != 110 {
		t.Fatalf("expected uppercase key to resolve, got %+v", pos)
	}
}

func TestLoadCoordinateMapMissingFileUsesDefaults(t *testing.T) {
	cm, err := LoadCoordinateMap(filepath.Join(t.TempDir(), "absent.json"), InvoiceDefaults(), Position{X: 40, Y: 200})
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}

	want := InvoiceDefaults()["invoice_no"]
	if got := cm.Resolve("invoice_no"); got != want {
		t.Fatalf("expected default %+v, got %+v", want, got)
	}
}

func TestLoadCoordinateMapMalformedFails(t *testing.T) {
	for _, content := range []string{
		`{"name": "not-a-pair"}`,
		`{"name": [40]}`,
		`{"name": [40, 50, 60]}`,
		`["name", 40, 50]`,
		`{broken`,
	} {
		path := writeCoordFile(t, content)
		if _, err := LoadCoordinateMap(path, nil, Position{}); err == nil {
			t.Fatalf("expected error for %s", content)
		}
	}
}

func TestResolveFallback(t *testing.T) {
	cm, err := LoadCoordinateMap(filepath.Join(t.TempDir(), "absent.json"), nil, Position{X: 40, Y: 200})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := cm.Resolve("unknown_field"); got.X != 40 || got.Y != 200 {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestIsCheckboxKey(t *testing.T) {
	for key, want := range map[string]bool{
		"gate_pass":           true,
		"documents_delivered": true,
		"cert_cust_box":       true,
		"cert_show_box":       true,
		"customer_name":       false,
		"booking_no":          false,
	} {
		if got := IsCheckboxKey(key); got != want {
			t.Fatalf("IsCheckboxKey(%q) = %v, want %v", key, got, want)
		}
	}
}
