package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/tuimole/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Round", "Accuracy", "Score"}
	rows := [][]string{
		{"a", "97%", "12"},
		{"warmup", "8%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Round  Accuracy Score" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "a           97%    12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "warmup       8%     3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"X", "Y"}, [][]string{{"\u4e2d", "1"}}, nil)
	if lines[0] != "X  Y" {
		t.Fatalf("expected wide glyph to widen column, got %q", lines[0])
	}
}

func TestRenderDifficultyMix(t *testing.T) {
	var buf bytes.Buffer
	counts := map[model.Difficulty]int{model.DifficultyEasy: 1, model.DifficultyHard: 3}
	if err := RenderDifficultyMix(&buf, counts, 1); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "hard           3 75.0%") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "medium         0  0.0%") {
		t.Fatalf("expected zero row for medium:\n%s", out)
	}
}
