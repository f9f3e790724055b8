package mdriver

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []Option
}

// Render streams Markdown from req.Reader to req.Writer as ANSI output.
// Input is sanitized of control characters and any leading front matter is
// elided before parsing.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	opts := make([]Option, 0, len(req.Options)+2)
	if req.Width > 0 {
		opts = append(opts, WithWidth(req.Width))
	}
	if req.Theme != nil {
		opts = append(opts, WithTheme(req.Theme))
	}
	opts = append(opts, req.Options...)
	p := New(opts...)

	var fm frontMatterFilter
	var tail []byte
	buf := make([]byte, 4096)
	feed := func(data []byte) error {
		if len(data) == 0 {
			return nil
		}
		_, err := io.WriteString(req.Writer, p.Feed(string(data)))
		return err
	}
	for {
		n, err := req.Reader.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if len(tail) > 0 {
				chunk = append(tail, chunk...)
			}
			clean, rest := sanitizeChunk(chunk)
			tail = append(tail[:0:0], rest...)
			if werr := feed(fm.process(clean)); werr != nil {
				return fmt.Errorf("render: write: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("render: read: %w", err)
		}
	}
	if werr := feed(fm.finish()); werr != nil {
		return fmt.Errorf("render: write: %w", werr)
	}
	if _, err := io.WriteString(req.Writer, p.Flush()); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}
	return nil
}

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []Option
}

// HTTPRender fetches Markdown over HTTP(S) and streams ANSI output.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.URL == "" {
		return fmt.Errorf("stream http: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("stream http: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("stream http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("stream http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("stream http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("stream http: status %s", resp.Status)
	}
	return Render(RenderRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Width:   req.Width,
		Theme:   req.Theme,
		Options: req.Options,
	})
}
