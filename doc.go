// Package mdriver renders Markdown to ANSI for terminal display.
//
// The package is built for streaming: Markdown arrives as arbitrary text
// chunks, and formatted output is emitted as soon as each block completes.
// Nothing is buffered beyond the current block, so unbounded streams (for
// example live LLM output) render incrementally without re-drawing.
//
// Core properties:
//   - Chunk boundaries never change the output; feeding byte-by-byte and
//     feeding the whole document at once produce identical results
//   - Only fully closed blocks are emitted before Flush
//   - Width-aware wrapping that understands SGR and OSC 8 escape sequences
//   - Theme-driven styling via ANSI prefixes
//
// Example:
//
//	p := mdriver.New(mdriver.WithWidth(80))
//	for chunk := range chunks {
//		os.Stdout.WriteString(p.Feed(chunk))
//	}
//	os.Stdout.WriteString(p.Flush())
//
// Render and HTTPRender wrap the same parser for io.Reader and URL input.
package mdriver
