package config

import "testing"

func TestValidateRequiresCredentials(t *testing.T) {
	t.Setenv("TOKEN", "")
	t.Setenv("EXCEL", "")

	if err := Load().Validate(); err == nil {
		t.Fatal("expected validation failure without TOKEN and EXCEL")
	}

	t.Setenv("TOKEN", "123:abc")
	if err := Load().Validate(); err == nil {
		t.Fatal("expected validation failure without EXCEL")
	}

	t.Setenv("EXCEL", "not a url")
	if err := Load().Validate(); err == nil {
		t.Fatal("expected validation failure for malformed reference URL")
	}

	t.Setenv("EXCEL", "https://example.com/reference.xlsx")
	if err := Load().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	t.Setenv("TOKEN", "123:abc")
	t.Setenv("EXCEL", "https://example.com/reference.xlsx")

	cfg := Load()
	if cfg.App.OpsPort != "3000" {
		t.Errorf("OpsPort = %q, want 3000", cfg.App.OpsPort)
	}
	if cfg.Archive.Topic != "ORDER_FINALIZED" {
		t.Errorf("Archive.Topic = %q, want ORDER_FINALIZED", cfg.Archive.Topic)
	}
	if cfg.SMTP.Port != 587 {
		t.Errorf("SMTP.Port = %d, want 587", cfg.SMTP.Port)
	}
}
