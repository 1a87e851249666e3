package hufgram

// A Token is one alphabet symbol: a group of consecutive code points, stored
// as UTF-8. Go strings compare byte-wise on their encoded content, which is
// exactly the lexicographic order the tree tie-break is defined over.
type Token = string

// A FrequencyTable maps each distinct token to its occurrence count. It is
// never empty: an input that produced no tokens is represented by the empty
// token with count 1, so a tree can always be built.
type FrequencyTable map[Token]uint32

// tokenize splits a code-point sequence into groups of n code points. Every
// token has exactly n code points except possibly the last, which holds the
// remainder. An empty input yields a single empty token.
func tokenize(runes []rune, n int) []Token {
	if len(runes) == 0 {
		return []Token{""}
	}
	tokens := make([]Token, 0, (len(runes)+n-1)/n)
	for i := 0; i < len(runes); i += n {
		end := i + n
		if end > len(runes) {
			end = len(runes)
		}
		tokens = append(tokens, string(runes[i:end]))
	}
	return tokens
}

// countTokens aggregates token occurrences into a frequency table.
func countTokens(tokens []Token) FrequencyTable {
	ft := make(FrequencyTable, 256)
	for _, t := range tokens {
		ft[t]++
	}
	if len(ft) == 0 {
		ft[""] = 1
	}
	return ft
}
