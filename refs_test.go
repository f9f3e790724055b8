package mdriver

import (
	"strings"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	cases := map[string]string{
		"  Foo  Bar ": "foo bar",
		"BAZ":         "baz",
		"a\tb":        "a b",
	}
	for in, want := range cases {
		if got := normalizeLabel(in); got != want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDefineLinkFirstWins(t *testing.T) {
	var r referenceResolver
	r.init()
	r.defineLink("docs", "https://first.example", "")
	r.defineLink("DOCS", "https://second.example", "")
	def, ok := r.lookup("Docs")
	if !ok {
		t.Fatal("lookup failed")
	}
	if def.url != "https://first.example" {
		t.Fatalf("redefinition overwrote first: %q", def.url)
	}
}

func TestCitationNumbersMonotonic(t *testing.T) {
	var r referenceResolver
	r.init()
	if n := r.cite("a", "a"); n != 1 {
		t.Fatalf("first citation = %d", n)
	}
	if n := r.cite("b", "b"); n != 2 {
		t.Fatalf("second citation = %d", n)
	}
	r.drain()
	// Numbers keep counting after a flush; they are never reused.
	if n := r.cite("c", "c"); n != 3 {
		t.Fatalf("post-drain citation = %d", n)
	}
}

func TestForwardReferenceResolvedInBibliography(t *testing.T) {
	out := stripANSI(renderAll(t, "See [docs].\n\n[docs]: https://example.com/d\n"))
	if !strings.Contains(out, "docs[1]") {
		t.Fatalf("inline citation missing: %q", out)
	}
	if !strings.Contains(out, "[1] docs: https://example.com/d") {
		t.Fatalf("bibliography missing or unresolved: %q", out)
	}
}

func TestUnresolvedCitation(t *testing.T) {
	out := stripANSI(renderAll(t, "See [nowhere].\n"))
	if !strings.Contains(out, "[1] nowhere: (unresolved)") {
		t.Fatalf("unresolved entry missing: %q", out)
	}
}

func TestKnownLabelLinksImmediately(t *testing.T) {
	src := "[docs]: https://example.com/d\n\nSee [docs].\n"
	out := renderAll(t, src, WithOSC8(true))
	if !strings.Contains(out, "\x1b]8;;https://example.com/d\x1b\\") {
		t.Fatalf("known label not hyperlinked: %q", out)
	}
	if strings.Contains(stripANSI(out), "[1]") {
		t.Fatalf("known label was cited: %q", out)
	}
}

func TestFullReferenceForm(t *testing.T) {
	src := "[text][lbl]\n\n[lbl]: https://example.com/x\n"
	out := stripANSI(renderAll(t, src))
	if !strings.Contains(out, "text[1]") {
		t.Fatalf("display text lost: %q", out)
	}
	if !strings.Contains(out, "[1] lbl: https://example.com/x") {
		t.Fatalf("bibliography wrong: %q", out)
	}
}

func TestCitationNeverRenumbered(t *testing.T) {
	p := New()
	var out strings.Builder
	out.WriteString(p.Feed("First [a].\n\nSecond [b].\n\n"))
	out.WriteString(p.Feed("[b]: https://example.com/b\n"))
	out.WriteString(p.Flush())
	plain := stripANSI(out.String())
	if !strings.Contains(plain, "a[1]") || !strings.Contains(plain, "b[2]") {
		t.Fatalf("inline numbers changed: %q", plain)
	}
	if !strings.Contains(plain, "[2] b: https://example.com/b") {
		t.Fatalf("late definition not resolved in bibliography: %q", plain)
	}
}

func TestLinkDefinitionTitleInBibliography(t *testing.T) {
	out := stripANSI(renderAll(t, "See [x].\n\n[x]: https://example.com \"A title\"\n"))
	if !strings.Contains(out, "https://example.com \"A title\"") {
		t.Fatalf("title missing: %q", out)
	}
}
