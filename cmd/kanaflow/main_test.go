package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/kanaflow/internal/config"
	"github.com/verte-zerg/kanaflow/internal/session"
)

func TestSplitRowsCanonicalizes(t *testing.T) {
	got := splitRows(" vowels, k ,,Q")
	want := []string{"Vowels", "K", "Q"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if splitRows("") != nil {
		t.Fatalf("expected nil for empty rows")
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	var mode string
	var rows string
	cmd.Flags().StringVar(&mode, "mode", "", "")
	cmd.Flags().StringVar(&rows, "rows", "", "")
	if err := cmd.Flags().Set("mode", "katakana"); err != nil {
		t.Fatalf("set: %v", err)
	}

	fileMode := "mixed"
	fileRows := []string{"K", "S"}
	applyStringConfig(cmd, "mode", &mode, &fileMode)
	applyRowsConfig(cmd, "rows", &rows, &fileRows)

	if mode != "katakana" {
		t.Fatalf("flag should win, got %q", mode)
	}
	if rows != "K,S" {
		t.Fatalf("file rows should apply, got %q", rows)
	}
}

func TestTableCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"table", "--mode", "hiragana"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Hiragana") || strings.Contains(out.String(), "Katakana") {
		t.Fatalf("unexpected chart: %q", out.String())
	}
}

func TestVocabCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"vocab", "--rows", "Vowels"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], "Word") {
		t.Fatalf("unexpected vocab output: %q", out.String())
	}
	for _, line := range lines[1:] {
		if !strings.HasSuffix(line, "Vowels") {
			t.Fatalf("word outside selected rows: %q", line)
		}
	}
}

func TestStatsCommand(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"stats"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "Best streak") || !strings.Contains(out.String(), "hiragana") {
		t.Fatalf("unexpected stats output: %q", out.String())
	}
}

func TestPracticeRejectsBadLogLevelBeforeLogging(t *testing.T) {
	cfgHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--mode", "hiragana"})
	err := root.Execute()

	var fe *config.FieldsError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldsError, got %v", err)
	}
	if !strings.Contains(fe.Fields["Config.level"], "level must be one of") {
		t.Fatalf("unexpected fields: %v", fe.Fields)
	}
	if _, err := os.Stat(config.DefaultLogPath()); !os.IsNotExist(err) {
		t.Fatalf("log file should not be created, stat err: %v", err)
	}
}

func TestPrintSessionReport(t *testing.T) {
	var out bytes.Buffer
	if err := printSessionReport(&out, session.Summary{}, nil); err != nil {
		t.Fatalf("print: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output without answers, got %q", out.String())
	}

	history := []session.AnswerRecord{
		{Display: "し", DisplayRomaji: "shi", CorrectAnswer: "shi", UserAnswer: "si"},
		{Display: "か", DisplayRomaji: "ka", CorrectAnswer: "ka", UserAnswer: "ka", Correct: true},
	}
	if err := printSessionReport(&out, session.Summary{Correct: 1, Attempts: 2}, history); err != nil {
		t.Fatalf("print: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Correct: 1/2", "Accuracy: 50.00%", "miss: shi", "Your answer"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in %q", want, got)
		}
	}
}
