package config

import (
	"strings"
	"testing"
)

func TestEnsureDSNPassthrough(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://user:pw@localhost:5432/molle"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://user:pw@localhost:5432/molle" {
		t.Fatalf("DSN should be untouched, got %s", cfg.DSN)
	}
}

func TestEnsureDSNFromLegacyParts(t *testing.T) {
	cfg := DBConfig{
		LegacyHost:     "db.internal",
		LegacyPort:     5433,
		LegacyUser:     "molle",
		LegacyPassword: "s3cret",
		LegacyName:     "molle_core",
		LegacySSLMode:  "require",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, part := range []string{"db.internal:5433", "molle_core", "sslmode=require"} {
		if !strings.Contains(cfg.DSN, part) {
			t.Fatalf("DSN %q missing %q", cfg.DSN, part)
		}
	}
}

func TestEnsureDSNMissingParts(t *testing.T) {
	cfg := DBConfig{LegacyHost: "db.internal"}
	err := cfg.ensureDSN()
	if err == nil {
		t.Fatal("expected error when legacy vars are incomplete")
	}
	if !strings.Contains(err.Error(), EnvDBUser) {
		t.Fatalf("error should name missing vars, got %v", err)
	}
}

func TestCashfreeEnvironmentNormalization(t *testing.T) {
	if (CashfreeConfig{Env: " SANDBOX "}).Environment() != "sandbox" {
		t.Fatal("expected sandbox")
	}
	if (CashfreeConfig{}).Environment() != "sandbox" {
		t.Fatal("expected sandbox default")
	}
	if (CashfreeConfig{Env: "production"}).Environment() != "production" {
		t.Fatal("expected production")
	}
}
