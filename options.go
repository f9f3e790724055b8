package mdriver

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnknownTheme reports a theme name with no built-in definition.
	ErrUnknownTheme = errors.New("unknown theme")
	// ErrUnknownProtocol reports an unrecognized image protocol name.
	ErrUnknownProtocol = errors.New("unknown image protocol")
)

// ImageProtocol selects the terminal image protocol used for inline images.
type ImageProtocol uint8

const (
	// ProtocolNone disables image rendering; images degrade to alt text.
	ProtocolNone ImageProtocol = iota
	// ProtocolKitty selects the kitty graphics protocol.
	ProtocolKitty
	// ProtocolITerm2 selects the iTerm2 inline image protocol.
	ProtocolITerm2
)

// ParseImageProtocol maps a protocol name to an ImageProtocol.
func ParseImageProtocol(name string) (ImageProtocol, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return ProtocolNone, nil
	case "kitty":
		return ProtocolKitty, nil
	case "iterm2", "iterm":
		return ProtocolITerm2, nil
	default:
		return ProtocolNone, fmt.Errorf("%w: %q", ErrUnknownProtocol, name)
	}
}

// Highlighter turns plain code lines into ANSI-escaped lines, one per input
// line. Implementations fall back to plain text for unknown languages rather
// than failing.
type Highlighter interface {
	Highlight(lang string, lines []string) ([]string, error)
}

// ImageBackend encodes raw image bytes into a terminal escape sequence for a
// given column/row budget. Failures are always non-fatal at the call site.
type ImageBackend interface {
	Encode(data []byte, cols, rows int) (string, error)
}

// Option configures a StreamingParser at construction time.
type Option func(*config)

type config struct {
	width       int
	theme       Theme
	osc8        bool
	protocol    ImageProtocol
	highlighter Highlighter
	backend     ImageBackend
	client      *http.Client
}

func defaultConfig() config {
	return config{
		width: 80,
		theme: DefaultTheme(),
		osc8:  true,
	}
}

// WithWidth sets the output width in columns.
func WithWidth(width int) Option {
	return func(cfg *config) {
		if width > 0 {
			cfg.width = width
		}
	}
}

// WithTheme sets the style theme.
func WithTheme(theme Theme) Option {
	return func(cfg *config) {
		if theme != nil {
			cfg.theme = theme
		}
	}
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) Option {
	return func(cfg *config) {
		cfg.osc8 = enabled
	}
}

// WithImageProtocol selects the terminal image protocol.
func WithImageProtocol(protocol ImageProtocol) Option {
	return func(cfg *config) {
		cfg.protocol = protocol
	}
}

// WithHighlighter sets the syntax highlighter used for fenced code blocks.
func WithHighlighter(h Highlighter) Option {
	return func(cfg *config) {
		cfg.highlighter = h
	}
}

// WithImageBackend sets the encoder for inline terminal images.
func WithImageBackend(b ImageBackend) Option {
	return func(cfg *config) {
		cfg.backend = b
	}
}

// WithHTTPClient sets the client used for image fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		if client != nil {
			cfg.client = client
		}
	}
}
