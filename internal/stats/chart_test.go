package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/kanaflow/internal/catalog"
)

func TestRenderChartGroupsRows(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, catalog.Hiragana(), 0); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "Hiragana" {
		t.Fatalf("expected title, got %q", lines[0])
	}
	if len(lines) != 1+len(catalog.Rows()) {
		t.Fatalf("expected one line per row, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "Vowels") || !strings.Contains(lines[1], "あ a") {
		t.Fatalf("unexpected vowel row: %q", lines[1])
	}
}

func TestRenderChartCompactsWhenNarrow(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderChart(&buf, catalog.AllKana(), 30); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Katakana") {
		t.Fatalf("expected both scripts: %q", out)
	}
	if strings.Contains(out, "か ka") {
		t.Fatalf("expected romaji dropped in narrow chart")
	}
}
