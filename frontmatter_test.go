package mdriver

import (
	"strings"
	"testing"
)

func TestFrontMatterElided(t *testing.T) {
	src := "---\ntitle: Test\nauthor: someone\n---\n# Heading\n\nbody\n"
	out := stripANSI(renderStream(t, []byte(src), 0, WithOSC8(false)))
	if strings.Contains(out, "title: Test") {
		t.Fatalf("front matter leaked: %q", out)
	}
	if !strings.Contains(out, "# Heading") {
		t.Fatalf("content after front matter lost: %q", out)
	}
}

func TestTOMLFrontMatterElided(t *testing.T) {
	src := "+++\ntitle = \"Test\"\n+++\nbody\n"
	out := stripANSI(renderStream(t, []byte(src), 0, WithOSC8(false)))
	if strings.Contains(out, "title =") {
		t.Fatalf("front matter leaked: %q", out)
	}
	if !strings.Contains(out, "body") {
		t.Fatalf("content lost: %q", out)
	}
}

func TestLeadingRuleNotTreatedAsFrontMatter(t *testing.T) {
	// A thematic break followed by a blank line is not metadata.
	src := "---\n\nhello\n"
	out := stripANSI(renderStream(t, []byte(src), 0, WithOSC8(false)))
	if !strings.Contains(out, "hello") {
		t.Fatalf("content lost: %q", out)
	}
	if !strings.Contains(out, "─") {
		t.Fatalf("leading rule swallowed: %q", out)
	}
}

func TestUnterminatedFrontMatterPassesThrough(t *testing.T) {
	src := "---\ntitle: x\nnever closed\n"
	out := stripANSI(renderStream(t, []byte(src), 0, WithOSC8(false)))
	if !strings.Contains(out, "never closed") {
		t.Fatalf("unterminated front matter swallowed input: %q", out)
	}
}

func TestFrontMatterFilterChunked(t *testing.T) {
	var f frontMatterFilter
	var got strings.Builder
	src := "---\na: b\n---\ncontent\n"
	for _, b := range []byte(src) {
		got.Write(f.process([]byte{b}))
	}
	got.Write(f.finish())
	if got.String() != "content\n" {
		t.Fatalf("chunked filter output %q", got.String())
	}
}
