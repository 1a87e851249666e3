package hufgram

import (
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// TreeCache memoizes built coding trees across encode and decode calls that
// share a frequency table. Nodes are immutable once built, so a cached root
// may be walked by concurrent decodes. The key is the canonical
// serialization of the table, not a hash of it: a key collision must never
// substitute a wrong tree.
type TreeCache struct {
	trees *lru.Cache[string, *node]
}

// NewTreeCache creates a cache holding up to size trees, evicting the least
// recently used one beyond that.
func NewTreeCache(size int) (*TreeCache, error) {
	trees, err := lru.New[string, *node](size)
	if err != nil {
		return nil, err
	}
	return &TreeCache{trees: trees}, nil
}

// Len reports the number of cached trees.
func (tc *TreeCache) Len() int {
	if tc == nil {
		return 0
	}
	return tc.trees.Len()
}

// tree returns the coding tree for ft, building and caching it on a miss.
// A nil receiver builds without caching.
func (tc *TreeCache) tree(ft FrequencyTable) *node {
	if tc == nil {
		return buildTree(ft)
	}
	key := tableKey(ft)
	if root, ok := tc.trees.Get(key); ok {
		return root
	}
	root := buildTree(ft)
	tc.trees.Add(key, root)
	return root
}

// tableKey serializes a frequency table canonically: entries sorted by
// token, each framed as <len>:<token>=<count>; so distinct tables can never
// share a key.
func tableKey(ft FrequencyTable) string {
	toks := make([]string, 0, len(ft))
	for tok := range ft {
		toks = append(toks, tok)
	}
	sort.Strings(toks)

	var sb strings.Builder
	for _, tok := range toks {
		sb.WriteString(strconv.Itoa(len(tok)))
		sb.WriteByte(':')
		sb.WriteString(tok)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatUint(uint64(ft[tok]), 10))
		sb.WriteByte(';')
	}
	return sb.String()
}
