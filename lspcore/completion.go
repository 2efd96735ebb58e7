package lspcore

import "strings"

// Completion returns candidates matching prefix (case-insensitive),
// concatenating spec.md §4.5's four candidate sources in order: reserved
// words, bare module-name completions, the host's externally-defined
// identifiers (getIdents), and qualified prelude-derived completions
// (e.g. "Array.map", matching §8 scenario 8). This mirrors
// chazu-maggie/server/lsp.go's own complete, which also concatenates
// multiple independent candidate sources (class names, globals,
// selectors) rather than picking one, generalized from Smalltalk's three
// sources to Inferno's four. uri is accepted for symmetry with Hover and
// future per-document sources but none of the four lists here are
// document-scoped.
func (c *Core) Completion(uri, prefix string) []CompletionItem {
	var out []CompletionItem
	_ = c.react.Do(func() {
		lowerPrefix := strings.ToLower(prefix)
		out = append(out, matchItems(c.reservedWords, lowerPrefix, "keyword")...)
		out = append(out, matchItems(c.moduleNames, lowerPrefix, "module")...)

		if c.getIdents != nil {
			var extern []string
			for _, p := range c.getIdents() {
				if p != nil {
					extern = append(extern, *p)
				}
			}
			out = append(out, matchItems(extern, lowerPrefix, "external")...)
		}

		out = append(out, matchItems(c.preludeNames, lowerPrefix, "prelude")...)
	})
	return out
}

func matchItems(names []string, lowerPrefix, detail string) []CompletionItem {
	var out []CompletionItem
	for _, n := range names {
		if lowerPrefix == "" || strings.HasPrefix(strings.ToLower(n), lowerPrefix) {
			out = append(out, CompletionItem{Label: n, Detail: detail})
		}
	}
	return out
}
