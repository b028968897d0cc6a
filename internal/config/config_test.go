package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VCONSOLE_SETUP_VARIANT", "")
	t.Setenv("VCONSOLE_SETUP_ROOT", "")
	t.Setenv("SYSTEMD_LOG_LEVEL", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Device != "/dev/tty0" {
		t.Fatalf("expected default device /dev/tty0, got %s", cfg.Device)
	}
	if cfg.Variant != "generic" {
		t.Fatalf("expected generic variant, got %s", cfg.Variant)
	}
	if cfg.DefaultKeymap != "us" || cfg.DefaultFont != "latarcyrheb-sun16" {
		t.Fatalf("unexpected defaults: keymap=%s font=%s", cfg.DefaultKeymap, cfg.DefaultFont)
	}
	if cfg.LogLevel != defaultLogLevel || cfg.LogEncoding != defaultLogEncoding {
		t.Fatalf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogEncoding)
	}
	if !slices.Equal(cfg.LogOutputs, []string{"stderr"}) {
		t.Fatalf("unexpected log outputs: %v", cfg.LogOutputs)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("VCONSOLE_SETUP_VARIANT", "arch")
	t.Setenv("SYSTEMD_LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "vconsole-setup.yaml")
	content := `variant: suse
default_font: eurlatgr
log_outputs: ["stderr", "/dev/kmsg"]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	device := "/dev/tty3"
	cfg, err := Load(&CLIOverrides{ConfigFile: path, Device: &device})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Variant != "suse" {
		t.Fatalf("expected YAML to override env variant, got %s", cfg.Variant)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
	if cfg.DefaultFont != "eurlatgr" {
		t.Fatalf("expected YAML font, got %s", cfg.DefaultFont)
	}
	if cfg.Device != device {
		t.Fatalf("expected CLI device, got %s", cfg.Device)
	}
	if cfg.DefaultKeymap != "us" {
		t.Fatalf("absent YAML key must keep the default, got %s", cfg.DefaultKeymap)
	}
	if !slices.Equal(cfg.LogOutputs, []string{"stderr", "/dev/kmsg"}) {
		t.Fatalf("unexpected log outputs: %v", cfg.LogOutputs)
	}

	variant := "gentoo"
	cfg, err = Load(&CLIOverrides{ConfigFile: path, Variant: &variant})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Variant != "gentoo" {
		t.Fatalf("expected CLI variant, got %s", cfg.Variant)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	t.Run("unknown variant", func(t *testing.T) {
		variant := "slackware"
		if _, err := Load(&CLIOverrides{Variant: &variant}); err == nil {
			t.Fatalf("expected error for unknown variant")
		}
	})

	t.Run("relative root", func(t *testing.T) {
		root := "sysroot"
		if _, err := Load(&CLIOverrides{Root: &root}); err == nil {
			t.Fatalf("expected error for relative root")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
			t.Fatalf("expected error for missing config file")
		}
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("variant: [unterminated"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for malformed YAML")
		}
	})

	t.Run("bad encoding", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "enc.yaml")
		if err := os.WriteFile(path, []byte("log_encoding: xml\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := Load(&CLIOverrides{ConfigFile: path}); err == nil {
			t.Fatalf("expected error for unknown log encoding")
		}
	})
}

func TestRootedPath(t *testing.T) {
	cfg := Config{Root: "/"}
	if got := cfg.RootedPath("/etc/vconsole.conf"); got != "/etc/vconsole.conf" {
		t.Fatalf("unexpected path %s", got)
	}

	cfg.Root = "/mnt/sysroot"
	if got := cfg.RootedPath("/etc/vconsole.conf"); got != "/mnt/sysroot/etc/vconsole.conf" {
		t.Fatalf("unexpected path %s", got)
	}
}
