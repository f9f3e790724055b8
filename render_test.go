package mdriver

import (
	"strings"
	"testing"
)

type stubHighlighter struct {
	lastLang string
}

func (s *stubHighlighter) Highlight(lang string, lines []string) ([]string, error) {
	s.lastLang = lang
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\x1b[38;5;81m" + l + "\x1b[0m"
	}
	return out, nil
}

func TestCodeBlockUsesHighlighter(t *testing.T) {
	h := &stubHighlighter{}
	out := renderAll(t, "```go\nx := 1\n```\n", WithHighlighter(h))
	if h.lastLang != "go" {
		t.Fatalf("highlighter got lang %q", h.lastLang)
	}
	if !strings.Contains(out, "\x1b[38;5;81m") {
		t.Fatalf("highlighted output missing: %q", out)
	}
}

func TestCodeBlockWithoutLanguageSkipsHighlighter(t *testing.T) {
	h := &stubHighlighter{lastLang: "untouched"}
	renderAll(t, "```\nplain\n```\n", WithHighlighter(h))
	if h.lastLang != "untouched" {
		t.Fatalf("highlighter invoked for bare fence with lang %q", h.lastLang)
	}
}

func TestCodeBlockBackground(t *testing.T) {
	out := renderAll(t, "```\ncode line\n```\n")
	if !strings.Contains(out, "\x1b[48;5;235m") {
		t.Fatalf("code block background missing: %q", out)
	}
}

func TestShortCodeBlockPadding(t *testing.T) {
	out := stripANSI(renderAll(t, "```\nab\n```\n"))
	// widest line is 2 cols, padded to 4 plus the surrounding spaces
	if !strings.Contains(out, " ab   \n") {
		t.Fatalf("unexpected padding %q", out)
	}
}

func TestRuleUsesConfiguredWidth(t *testing.T) {
	out := stripANSI(renderAll(t, "---\n", WithWidth(20)))
	if out != strings.Repeat("─", 20)+"\n\n" {
		t.Fatalf("unexpected rule %q", out)
	}
}

func TestHeadingWraps(t *testing.T) {
	out := stripANSI(renderAll(t, "# one two three four\n", WithWidth(10)))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if w := visibleWidth(line); w > 10 {
			t.Fatalf("heading line %q exceeds width", line)
		}
	}
}

func TestParagraphWrapBound(t *testing.T) {
	src := strings.Repeat("word ", 40) + "\n\n"
	out := stripANSI(renderAll(t, src, WithWidth(30)))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if w := visibleWidth(line); w > 30 {
			t.Fatalf("line %q is %d cols", line, w)
		}
	}
}

func TestListContinuationIndent(t *testing.T) {
	out := stripANSI(renderAll(t, "- alpha beta gamma delta\n\n", WithWidth(14)))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped item, got %q", out)
	}
	if !strings.HasPrefix(lines[1], "    ") {
		t.Fatalf("continuation not aligned under text: %q", lines[1])
	}
}
