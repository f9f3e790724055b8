package mdriver

import (
	"bytes"
	"errors"
	"testing"
)

func TestValidateInputAcceptsMarkdown(t *testing.T) {
	if err := ValidateInput([]byte("# Hello\n\nSome *text*.\n")); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	if err := ValidateInput([]byte{0xff, 0xfe, 'a'}); !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsNUL(t *testing.T) {
	if err := ValidateInput([]byte("abc\x00def")); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputRejectsControlHeavyInput(t *testing.T) {
	src := append(bytes.Repeat([]byte("a"), 60), bytes.Repeat([]byte{0x01}, 4)...)
	if err := ValidateInput(src); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestSanitizeChunkStripsControls(t *testing.T) {
	clean, rest := sanitizeChunk([]byte("a\x07b\tc\n"))
	if string(clean) != "ab\tc\n" {
		t.Fatalf("clean = %q", clean)
	}
	if len(rest) != 0 {
		t.Fatalf("rest = %q", rest)
	}
}

func TestSanitizeChunkCarriesPartialRune(t *testing.T) {
	full := []byte("é") // two bytes
	clean, rest := sanitizeChunk(full[:1])
	if len(clean) != 0 {
		t.Fatalf("clean = %q", clean)
	}
	if !bytes.Equal(rest, full[:1]) {
		t.Fatalf("rest = %q", rest)
	}
	clean, rest = sanitizeChunk(append(rest, full[1:]...))
	if string(clean) != "é" || len(rest) != 0 {
		t.Fatalf("reassembly failed: clean=%q rest=%q", clean, rest)
	}
}
