package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	clearRSEnv(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %d, got %d", defaultPort, cfg.Port)
	}
	if cfg.BufferSize != defaultBufferSize {
		t.Fatalf("expected default buffer size %d, got %d", defaultBufferSize, cfg.BufferSize)
	}
	if cfg.ReadTimeoutMs != defaultReadTimeout {
		t.Fatalf("expected default read timeout %d, got %d", defaultReadTimeout, cfg.ReadTimeoutMs)
	}
	if cfg.AcceptCIDRText != defaultAcceptCIDR {
		t.Fatalf("expected default accept cidr %q, got %q", defaultAcceptCIDR, cfg.AcceptCIDRText)
	}
	if !cfg.ListenIP.Equal(cfg.ListenIP) || cfg.ListenIP.String() != "0.0.0.0" {
		t.Fatalf("expected default listen IP 0.0.0.0, got %s", cfg.ListenIP)
	}
}

func TestLoadConfigEnvOverridesDefault(t *testing.T) {
	clearRSEnv(t)
	t.Setenv("RS_PORT", "4000")
	t.Setenv("RS_ACCEPT_CIDR", "10.0.0.0/8")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4000 {
		t.Fatalf("expected env-overridden port 4000, got %d", cfg.Port)
	}
	if cfg.AcceptCIDRText != "10.0.0.0/8" {
		t.Fatalf("expected env-overridden cidr, got %q", cfg.AcceptCIDRText)
	}
}

func TestLoadConfigFileOverridesEnv(t *testing.T) {
	clearRSEnv(t)
	t.Setenv("RS_PORT", "4000")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: 5000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("expected file value 5000 to win over env, got %d", cfg.Port)
	}
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	clearRSEnv(t)
	t.Setenv("RS_PORT", "99999")

	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func clearRSEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"RS_LISTEN_INTERFACE", "RS_ENDPOINT_INTERFACE", "RS_PORT",
		"RS_BUFFER_SIZE", "RS_READ_TIMEOUT", "RS_ACCEPT_CIDR",
	} {
		orig, had := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if had {
				os.Setenv(k, orig)
			}
		})
	}
}
