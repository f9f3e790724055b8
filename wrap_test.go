package mdriver

import (
	"strings"
	"testing"
)

func TestVisibleWidth(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\x1b[1mabc\x1b[0m", 3},
		{"\x1b]8;;https://example.com\x1b\\hi\x1b]8;;\x1b\\", 2},
		{"日本", 4},
		{"a\x1b[38;5;210;48;5;235mb", 2},
	}
	for _, tc := range cases {
		if got := visibleWidth(tc.in); got != tc.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestEscapeLenCSI(t *testing.T) {
	if got := escapeLen("\x1b[1;34mrest"); got != 7 {
		t.Fatalf("CSI length = %d, want 7", got)
	}
}

func TestEscapeLenOSC(t *testing.T) {
	s := "\x1b]8;;url\x1b\\after"
	if got := escapeLen(s); got != len(s)-len("after") {
		t.Fatalf("OSC length = %d", got)
	}
	bel := "\x1b]0;title\aafter"
	if got := escapeLen(bel); got != len(bel)-len("after") {
		t.Fatalf("BEL-terminated length = %d", got)
	}
}

func TestWrapGreedy(t *testing.T) {
	out := wrap("aaa bbb ccc", "", "", 7)
	if out != "aaa bbb\nccc" {
		t.Fatalf("unexpected wrap %q", out)
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	out := wrap("one two three four five six seven", "", "", 10)
	for _, line := range strings.Split(out, "\n") {
		if w := visibleWidth(line); w > 10 {
			t.Fatalf("line %q is %d columns wide", line, w)
		}
	}
}

func TestWrapOverwideTokenAloneUnbroken(t *testing.T) {
	out := wrap("tiny superlongunbreakabletoken end", "", "", 8)
	lines := strings.Split(out, "\n")
	found := false
	for _, line := range lines {
		if line == "superlongunbreakabletoken" {
			found = true
		}
	}
	if !found {
		t.Fatalf("over-wide token broken or joined: %q", out)
	}
}

func TestWrapIndents(t *testing.T) {
	out := wrap("aa bb cc", "* ", "  ", 4)
	if out != "* aa\n  bb\n  cc" {
		t.Fatalf("unexpected indents %q", out)
	}
}

func TestWrapEmptyInput(t *testing.T) {
	if out := wrap("", "> ", "  ", 10); out != "> " {
		t.Fatalf("empty input = %q, want first indent", out)
	}
}

func TestWrapKeepsEscapesGlued(t *testing.T) {
	// The escape belongs to the following word and must move with it.
	out := wrap("aaaa \x1b[1mbbbb\x1b[0m", "", "", 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if lines[1] != "\x1b[1mbbbb\x1b[0m" {
		t.Fatalf("escape separated from word: %q", lines[1])
	}
}

func TestWrapHonorsNewlineTokens(t *testing.T) {
	out := wrap("a\nb", "", "- ", 10)
	if out != "a\n- b" {
		t.Fatalf("unexpected newline handling %q", out)
	}
}
