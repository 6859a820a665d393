package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/internal/config"
	"scribe/internal/history"
	"scribe/internal/services"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[server]
url = "http://127.0.0.1:9"
request_timeout = 1

[paths]
data_dir = %q
log_dir = %q

[logging]
format = "console"
level = "error"
`, filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedHistoryRecord(t *testing.T, configPath string, record history.Record) {
	t.Helper()

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	list, err := history.Load(context.Background(), store)
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if _, err := list.Upsert(context.Background(), record); err != nil {
		t.Fatalf("seed record: %v", err)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "History is empty") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistoryListShowsSeededRecord(t *testing.T) {
	configPath := writeTestConfig(t)
	seedHistoryRecord(t, configPath, history.Record{ID: "abc1", Filename: "speech", Text: "hello world", Size: "16 B"})

	out, err := runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	for _, want := range []string{"abc1", "speech", "hello world"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryShowUnknownID(t *testing.T) {
	configPath := writeTestConfig(t)

	_, err := runCommand(t, "--config", configPath, "history", "show", "missing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHistoryRemove(t *testing.T) {
	configPath := writeTestConfig(t)
	seedHistoryRecord(t, configPath, history.Record{ID: "abc1", Filename: "speech", Text: "hello"})

	out, err := runCommand(t, "--config", configPath, "history", "remove", "abc1")
	if err != nil {
		t.Fatalf("history remove: %v", err)
	}
	if !strings.Contains(out, "Removed abc1") {
		t.Fatalf("unexpected output: %q", out)
	}

	out, err = runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "History is empty") {
		t.Fatalf("expected empty history, got %q", out)
	}
}

func TestHistoryClearRequiresConfirmation(t *testing.T) {
	configPath := writeTestConfig(t)
	seedHistoryRecord(t, configPath, history.Record{ID: "abc1", Filename: "speech", Text: "hello"})

	out, err := runCommand(t, "--config", configPath, "history", "clear")
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	if !strings.Contains(out, "--yes") {
		t.Fatalf("expected confirmation hint, got %q", out)
	}

	out, err = runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "abc1") {
		t.Fatalf("expected record to survive unconfirmed clear, got %q", out)
	}

	if _, err := runCommand(t, "--config", configPath, "history", "clear", "--yes"); err != nil {
		t.Fatalf("history clear --yes: %v", err)
	}
	out, err = runCommand(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "History is empty") {
		t.Fatalf("expected cleared history, got %q", out)
	}
}

func TestTranscribeRejectsUnsupportedFormat(t *testing.T) {
	configPath := writeTestConfig(t)

	docPath := filepath.Join(t.TempDir(), "notes.pdf")
	if err := os.WriteFile(docPath, []byte("not media"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, err := runCommand(t, "--config", configPath, "transcribe", docPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	configPath := writeTestConfig(t)

	_, err := runCommand(t, "--config", configPath, "export", "pdf", "abc1")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config already exists")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, err = runCommand(t, "config", "validate", "--path", target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestTestNotifyWithoutTopic(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCommand(t, "--config", configPath, "test-notify")
	if err != nil {
		t.Fatalf("test-notify: %v", err)
	}
	if !strings.Contains(out, "not configured") {
		t.Fatalf("unexpected output: %q", out)
	}
}
