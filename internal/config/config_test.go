package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefault(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadFallsBackOnBadNumbers(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "not-a-number")
	t.Setenv("LISTING_TTL_SECONDS", "-5")

	cfg := Load()
	if cfg.TokenTTLMinutes != 480 {
		t.Fatalf("expected token TTL fallback 480, got %d", cfg.TokenTTLMinutes)
	}
	if cfg.ListingTTLSeconds != 30 {
		t.Fatalf("expected listing TTL fallback 30, got %d", cfg.ListingTTLSeconds)
	}
}

func TestLoadReadsDocumentDirs(t *testing.T) {
	t.Setenv("ASSETS_DIR", "/srv/showroom/assets")
	t.Setenv("OUTPUT_DIR", "/srv/showroom/out")

	cfg := Load()
	if cfg.AssetsDir != "/srv/showroom/assets" {
		t.Fatalf("unexpected assets dir %q", cfg.AssetsDir)
	}
	if cfg.OutputDir != "/srv/showroom/out" {
		t.Fatalf("unexpected output dir %q", cfg.OutputDir)
	}
}
