package mdriver

import (
	"bytes"
	"strings"
)

// StreamingParser converts Markdown chunks into ANSI-formatted output, one
// completed block at a time. It is not safe for concurrent use.
type StreamingParser struct {
	cfg    config
	styles Styles

	buf []byte // partial line carried across Feed calls

	state       parserState
	builder     blockBuilder
	fenceToken  string
	fenceInfo   string
	fenceIndent int
	quoteLevel  int

	refs   referenceResolver
	images *imageLoader
}

// New creates a StreamingParser. Configuration is immutable per instance.
func New(opts ...Option) *StreamingParser {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p := &StreamingParser{
		cfg:    cfg,
		styles: cfg.theme.Styles(),
	}
	p.refs.init()
	p.images = newImageLoader(cfg)
	return p
}

// Feed appends a chunk of Markdown and returns the formatted output for
// every block the chunk completed. A partial trailing line stays buffered.
func (p *StreamingParser) Feed(chunk string) string {
	p.buf = append(p.buf, chunk...)
	var out strings.Builder
	for {
		idx := bytes.IndexByte(p.buf, '\n')
		if idx < 0 {
			break
		}
		line := string(p.buf[:idx])
		p.buf = p.buf[idx+1:]
		out.WriteString(p.processLine(strings.TrimSuffix(line, "\r")))
	}
	return out.String()
}

// Flush processes any buffered partial line, force-closes an open block, and
// appends the bibliography for any pending citations. Call exactly once at
// end of input.
func (p *StreamingParser) Flush() string {
	var out strings.Builder
	if len(p.buf) > 0 {
		line := strings.TrimSuffix(string(p.buf), "\r")
		p.buf = p.buf[:0]
		out.WriteString(p.processLine(line))
	}
	out.WriteString(p.emitBlock())
	if bib := p.renderBibliography(); bib != "" {
		out.WriteString(bib)
	}
	return out.String()
}

// Width returns the configured output width in columns.
func (p *StreamingParser) Width() int {
	return p.cfg.width
}
