package mdriver

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderRequiresReaderAndWriter(t *testing.T) {
	if err := Render(RenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("nil reader accepted")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatal("nil writer accepted")
	}
}

func TestRenderEndToEnd(t *testing.T) {
	out := stripANSI(renderStream(t, []byte("# Title\n\n- a\n- b\n"), 0, WithOSC8(false)))
	if !strings.Contains(out, "# Title") {
		t.Fatalf("heading missing: %q", out)
	}
	if !strings.Contains(out, "  • a") || !strings.Contains(out, "  • b") {
		t.Fatalf("list missing: %q", out)
	}
}

func TestRenderSplitRuneAcrossReads(t *testing.T) {
	// one-byte reads force multi-byte runes to split at chunk boundaries
	src := "héllo wörld\n\n"
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: &oneByteReader{data: []byte(src)},
		Writer: &out,
		Theme:  DefaultTheme(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := stripANSI(out.String()); !strings.Contains(got, "héllo wörld") {
		t.Fatalf("runes corrupted: %q", got)
	}
}

type oneByteReader struct {
	data []byte
	pos  int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

func TestHTTPRenderFetchesAndRenders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# Remote\n\nbody\n"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    srv.URL,
		Client: srv.Client(),
		Writer: &out,
	})
	if err != nil {
		t.Fatalf("http render: %v", err)
	}
	if got := stripANSI(out.String()); !strings.Contains(got, "# Remote") {
		t.Fatalf("remote content missing: %q", got)
	}
}

func TestHTTPRenderRejectsBadScheme(t *testing.T) {
	err := HTTPRender(context.Background(), HTTPRenderRequest{
		URL:    "ftp://example.com/x.md",
		Writer: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported scheme") {
		t.Fatalf("expected scheme error, got %v", err)
	}
}

func TestHTTPRenderRequiresURL(t *testing.T) {
	if err := HTTPRender(context.Background(), HTTPRenderRequest{Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("empty URL accepted")
	}
}
