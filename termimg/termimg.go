// Package termimg encodes image bytes into terminal graphics escape
// sequences for the kitty and iTerm2 inline image protocols.
package termimg

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyImage reports an encode call with no image data.
var ErrEmptyImage = errors.New("empty image data")

// kitty caps escape payloads at 4096 bytes of encoded data per chunk.
const kittyChunkSize = 4096

// Kitty encodes PNG data using the kitty graphics protocol: a transmit-and-
// display escape split into chunked payloads.
type Kitty struct{}

// Encode implements the image backend contract. cols and rows bound the
// rendered size in cells; zero leaves the dimension to the terminal.
func (Kitty) Encode(data []byte, cols, rows int) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	var b strings.Builder
	first := true
	for len(encoded) > 0 {
		chunk := encoded
		more := 0
		if len(encoded) > kittyChunkSize {
			chunk, more = encoded[:kittyChunkSize], 1
		}
		if first {
			b.WriteString("\x1b_Gf=100,a=T,")
			if cols > 0 {
				fmt.Fprintf(&b, "c=%d,", cols)
			}
			if rows > 0 {
				fmt.Fprintf(&b, "r=%d,", rows)
			}
			first = false
		} else {
			b.WriteString("\x1b_G")
		}
		fmt.Fprintf(&b, "m=%d;", more)
		b.WriteString(chunk)
		b.WriteString("\x1b\\")
		encoded = encoded[len(chunk):]
	}
	return b.String(), nil
}

// ITerm2 encodes image data using the iTerm2 OSC 1337 inline image protocol.
type ITerm2 struct{}

// Encode implements the image backend contract.
func (ITerm2) Encode(data []byte, cols, rows int) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	var b strings.Builder
	b.WriteString("\x1b]1337;File=inline=1")
	fmt.Fprintf(&b, ";size=%d", len(data))
	if cols > 0 {
		fmt.Fprintf(&b, ";width=%d", cols)
	}
	if rows > 0 {
		fmt.Fprintf(&b, ";height=%d", rows)
	}
	b.WriteString(":")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	b.WriteString("\a")
	return b.String(), nil
}
