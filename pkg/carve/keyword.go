package carve

import (
	"bytes"

	goahocorasick "github.com/BobuSumisu/aho-corasick"
)

// KeywordFilter keeps tuple bodies that contain at least one of a set
// of keywords, case-insensitively. A filter with no keywords matches
// everything.
type KeywordFilter struct {
	trie *goahocorasick.Trie
}

// NewKeywordFilter builds a filter over keywords. An empty slice
// produces a filter that matches every body.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	if len(keywords) == 0 {
		return &KeywordFilter{}
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = string(bytes.ToLower([]byte(k)))
	}
	trie := goahocorasick.NewTrieBuilder().AddStrings(lowered).Build()
	return &KeywordFilter{trie: trie}
}

// Match reports whether body contains any configured keyword.
func (f *KeywordFilter) Match(body []byte) bool {
	if f == nil || f.trie == nil {
		return true
	}
	lowered := bytes.ToLower(body)
	return len(f.trie.Match(lowered)) > 0
}
