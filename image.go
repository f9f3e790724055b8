package mdriver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

const maxImageBytes = 16 << 20

// imageLoader prefetches and caches image data for a block before the block
// is formatted, so rendering never blocks on the network mid-line. A nil
// cache entry records a failed fetch and is not retried.
type imageLoader struct {
	protocol ImageProtocol
	backend  ImageBackend
	client   *http.Client
	cache    map[string][]byte
}

func newImageLoader(cfg config) *imageLoader {
	return &imageLoader{
		protocol: cfg.protocol,
		backend:  cfg.backend,
		client:   cfg.client,
		cache:    make(map[string][]byte),
	}
}

func (l *imageLoader) enabled() bool {
	return l.protocol != ProtocolNone && l.backend != nil
}

// prefetchBlockImages scans the raw text of a completed block for image
// references and fetches every uncached one concurrently. It returns only
// after all fetches finish; the cache is written solely from this goroutine.
func (p *StreamingParser) prefetchBlockImages(raw string) {
	if !p.images.enabled() {
		return
	}
	refs := collectImageRefs(raw)
	var pending []string
	for _, src := range refs {
		if _, ok := p.images.cache[src]; !ok {
			pending = append(pending, src)
		}
	}
	if len(pending) == 0 {
		return
	}
	results := make([][]byte, len(pending))
	var wg sync.WaitGroup
	for i, src := range pending {
		wg.Add(1)
		go func(i int, src string) {
			defer wg.Done()
			data, err := p.images.fetch(src)
			if err != nil {
				return
			}
			results[i] = data
		}(i, src)
	}
	wg.Wait()
	for i, src := range pending {
		p.images.cache[src] = results[i]
	}
}

// collectImageRefs extracts ![alt](src) and <img src=...> sources from raw
// block text, deduplicated in first-seen order.
func collectImageRefs(raw string) []string {
	var refs []string
	seen := make(map[string]bool)
	add := func(src string) {
		if src != "" && !seen[src] {
			seen[src] = true
			refs = append(refs, src)
		}
	}
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '!':
			if i+1 >= len(raw) || raw[i+1] != '[' {
				continue
			}
			end := scanBalancedBrackets(raw, i+1)
			if end < 0 || end+1 >= len(raw) || raw[end+1] != '(' {
				continue
			}
			if src, _, next, ok := parseParenTarget(raw, end+1); ok {
				add(src)
				i = next - 1
			}
		case '<':
			gt := strings.IndexByte(raw[i:], '>')
			if gt < 0 {
				continue
			}
			tag := raw[i : i+gt+1]
			if name, closing, ok := tagName(tag); ok && !closing && name == "img" {
				add(parseTagAttrs(tag)["src"])
				i += gt
			}
		}
	}
	return refs
}

// fetch loads image bytes from an http(s) URL or a local path.
func (l *imageLoader) fetch(src string) ([]byte, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := l.client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Get(src)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	}
	return os.ReadFile(src)
}

func (l *imageLoader) get(src string) []byte {
	return l.cache[src]
}

// renderImage emits an inline terminal image when a protocol backend is
// configured and the data was prefetched; otherwise it degrades to the
// italicized alt text, or to nothing when there is no alt.
func (p *StreamingParser) renderImage(src, alt, base string) string {
	if p.images.enabled() {
		if data := p.images.get(src); data != nil {
			if encoded, err := p.cfg.backend.Encode(data, p.cfg.width, 0); err == nil {
				return encoded + base
			}
		}
	}
	if alt == "" {
		return ""
	}
	return p.styles.Emphasis.Prefix + p.formatInline(alt, base+p.styles.Emphasis.Prefix) + ansiReset + base
}
