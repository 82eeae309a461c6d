package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Test.Passage != nil || cfg.Test.Sound != nil || cfg.Server.Addr != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[test]
passage = 4
recompute-delay-ms = 250
sound = true

[server]
addr = "127.0.0.1:9999"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Test.Passage == nil || *cfg.Test.Passage != 4 {
		t.Fatalf("unexpected passage: %v", cfg.Test.Passage)
	}
	if cfg.Test.RecomputeDelayMs == nil || *cfg.Test.RecomputeDelayMs != 250 {
		t.Fatalf("unexpected recompute delay: %v", cfg.Test.RecomputeDelayMs)
	}
	if cfg.Test.Sound == nil || !*cfg.Test.Sound {
		t.Fatalf("expected sound enabled")
	}
	if cfg.Server.Addr == nil || *cfg.Server.Addr != "127.0.0.1:9999" {
		t.Fatalf("unexpected addr: %v", cfg.Server.Addr)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[test\npassage = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	want := filepath.Join(dir, "typespeed", "config.toml")
	if got := DefaultConfigPath(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typespeed", "config.toml")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan FileConfig, 16)
	errs := make(chan error, 1)
	go func() {
		errs <- Watch(ctx, path, func(cfg FileConfig) {
			changes <- cfg
		}, nil)
	}()

	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case cfg := <-changes:
			if cfg.Test.Sound != nil && *cfg.Test.Sound {
				cancel()
				if err := <-errs; err != nil {
					t.Fatalf("watch returned error: %v", err)
				}
				return
			}
		case <-ticker.C:
			// The watcher may not be registered yet; keep rewriting.
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(path, []byte("[test]\nsound = true\n"), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for config reload")
		}
	}
}
