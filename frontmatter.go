package mdriver

import "bytes"

const maxFrontMatterProbe = 64 * 1024

// frontMatterFilter elides a leading front-matter section (--- / +++ / ;;;
// delimited) before any Markdown reaches the parser. Input is buffered until
// the opening delimiter is ruled in or out, then passed through untouched.
type frontMatterFilter struct {
	passthrough bool
	probe       []byte
}

func (f *frontMatterFilter) process(chunk []byte) []byte {
	if f.passthrough || len(chunk) == 0 {
		return chunk
	}
	f.probe = append(f.probe, chunk...)
	if out, decided := f.decide(false); decided {
		return out
	}
	if len(f.probe) > maxFrontMatterProbe {
		return f.release()
	}
	return nil
}

// finish resolves an undecided probe at end of input. An unterminated
// front-matter opener is treated as ordinary content.
func (f *frontMatterFilter) finish() []byte {
	if f.passthrough || len(f.probe) == 0 {
		return nil
	}
	out, _ := f.decide(true)
	return out
}

func (f *frontMatterFilter) release() []byte {
	out := f.probe
	f.passthrough = true
	f.probe = nil
	return out
}

func (f *frontMatterFilter) decide(eof bool) ([]byte, bool) {
	first, next, ok := probeLine(f.probe, 0, eof)
	if !ok {
		return nil, false
	}
	delim, isOpener := frontMatterDelimiter(first)
	if !isOpener {
		return f.release(), true
	}
	second, next, ok := probeLine(f.probe, next, eof)
	if !ok {
		return nil, false
	}
	if !looksLikeMetadata(second) {
		return f.release(), true
	}
	for idx := next; ; {
		line, lineNext, ok := probeLine(f.probe, idx, eof)
		if !ok {
			if eof {
				return f.release(), true
			}
			return nil, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			out := f.probe[lineNext:]
			f.passthrough = true
			f.probe = nil
			return out, true
		}
		if lineNext == idx {
			if eof {
				return f.release(), true
			}
			return nil, false
		}
		idx = lineNext
	}
}

// probeLine returns the line starting at start without its terminator. At
// eof a trailing unterminated line counts as complete.
func probeLine(src []byte, start int, eof bool) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, start, eof && start == len(src)
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		if !eof {
			return nil, 0, false
		}
		return bytes.TrimSuffix(src[start:], []byte("\r")), len(src), true
	}
	end := start + i
	return bytes.TrimSuffix(src[start:end], []byte("\r")), end + 1, true
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	}
	return nil, false
}

// looksLikeMetadata guards against eliding a document that merely opens with
// a thematic break: the line after the delimiter must look like key/value or
// structured data.
func looksLikeMetadata(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return true
	}
	return bytes.ContainsAny(trimmed, ":=")
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
