package mdriver

import "strings"

type linkDef struct {
	url   string
	title string
}

type citationEntry struct {
	number  int
	label   string
	display string
}

// referenceResolver owns the link-definition table and the citation ledger.
// Definitions are first-wins; citation numbers are monotonic from one and
// never reassigned, even if the label is defined later in the stream.
type referenceResolver struct {
	defs   map[string]linkDef
	ledger []citationEntry
	next   int
}

func (r *referenceResolver) init() {
	r.defs = make(map[string]linkDef)
	r.next = 1
}

// normalizeLabel trims, collapses internal whitespace to single spaces and
// case-folds.
func normalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

func (r *referenceResolver) defineLink(label, url, title string) {
	key := normalizeLabel(label)
	if key == "" {
		return
	}
	if _, ok := r.defs[key]; ok {
		return
	}
	r.defs[key] = linkDef{url: url, title: title}
}

func (r *referenceResolver) lookup(label string) (linkDef, bool) {
	def, ok := r.defs[normalizeLabel(label)]
	return def, ok
}

// cite allocates the next citation number for an unresolved label.
func (r *referenceResolver) cite(label, display string) int {
	n := r.next
	r.next++
	r.ledger = append(r.ledger, citationEntry{number: n, label: label, display: display})
	return n
}

// drain returns the pending citations in number order and empties the ledger.
func (r *referenceResolver) drain() []citationEntry {
	entries := r.ledger
	r.ledger = nil
	return entries
}
