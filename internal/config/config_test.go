package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	// Register cleanup, then unset so the default applies.
	t.Setenv("TODOCTL_API_URL", "x")
	t.Setenv("TODOCTL_TIMEOUT", "x")
	os.Unsetenv("TODOCTL_API_URL")
	os.Unsetenv("TODOCTL_TIMEOUT")

	cfg, err := New("/tmp/todoctl-test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIBaseURL != "http://127.0.0.1:8012" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Dir != "/tmp/todoctl-test" {
		t.Errorf("Dir = %q, want /tmp/todoctl-test", cfg.Dir)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("TODOCTL_API_URL", "http://example.com:9000")
	t.Setenv("TODOCTL_TIMEOUT", "2s")

	cfg, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIBaseURL != "http://example.com:9000" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.APIBaseURL)
	}
	if cfg.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", cfg.Timeout)
	}
}

func TestNew_BadTimeout(t *testing.T) {
	t.Setenv("TODOCTL_TIMEOUT", "not-a-duration")

	if _, err := New(""); err == nil {
		t.Error("expected error for unparseable timeout")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	got := DefaultConfigDir()
	want := filepath.Join("/custom/config", AppName)
	if got != want {
		t.Errorf("DefaultConfigDir() = %q, want %q", got, want)
	}
}

func TestTokenPath(t *testing.T) {
	cfg := &Config{Dir: "/some/dir"}
	if got := cfg.TokenPath(); got != filepath.Join("/some/dir", TokenFile) {
		t.Errorf("TokenPath() = %q", got)
	}
}

func TestEnsureDirAndHasToken(t *testing.T) {
	cfg := &Config{Dir: filepath.Join(t.TempDir(), "nested")}

	if err := cfg.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if cfg.HasToken() {
		t.Error("HasToken() = true before a token is written")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("tok"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}
	if !cfg.HasToken() {
		t.Error("HasToken() = false after writing token")
	}
}
