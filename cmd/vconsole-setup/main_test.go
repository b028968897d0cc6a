package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("VCONSOLE_SETUP_VARIANT", "")
	t.Setenv("VCONSOLE_SETUP_ROOT", "")
	t.Setenv("SYSTEMD_LOG_LEVEL", "")
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	clearEnv(t)
	var stderr bytes.Buffer

	if code := run([]string{"--no-such-flag"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "no-such-flag") {
		t.Fatalf("expected parse error on stderr, got %q", stderr.String())
	}
}

func TestRunRejectsUnknownVariant(t *testing.T) {
	clearEnv(t)
	var stderr bytes.Buffer

	if code := run([]string{"--variant", "slackware"}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestRunBadConfiguration(t *testing.T) {
	clearEnv(t)
	var stderr bytes.Buffer

	code := run([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "failed to load configuration") {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}

func TestRunFailsOnNonConsoleDevice(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	device := filepath.Join(dir, "not-a-console")
	if err := os.WriteFile(device, nil, 0o600); err != nil {
		t.Fatalf("write device: %v", err)
	}
	marker := filepath.Join(dir, "helper-ran")
	helper := filepath.Join(dir, "helper")
	if err := os.WriteFile(helper, []byte("#!/bin/sh\ntouch "+marker+"\n"), 0o755); err != nil {
		t.Fatalf("write helper: %v", err)
	}

	var stderr bytes.Buffer
	code := run([]string{"--root", dir, "--loadkeys", helper, "--setfont", helper, "--log-level", "err", device}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if _, err := os.Stat(marker); err == nil {
		t.Fatalf("helpers must not run for a non-console device")
	}
}

func TestRunFailsOnMissingDevice(t *testing.T) {
	clearEnv(t)
	var stderr bytes.Buffer

	code := run([]string{"--log-level", "err", filepath.Join(t.TempDir(), "tty9")}, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
