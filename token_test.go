package hufgram

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenizeGroups(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  []Token
	}{
		{
			name:  "exact multiple",
			input: "abcdef",
			n:     2,
			want:  []Token{"ab", "cd", "ef"},
		},
		{
			name:  "remainder token",
			input: "abcde",
			n:     2,
			want:  []Token{"ab", "cd", "e"},
		},
		{
			name:  "group larger than input",
			input: "ab",
			n:     5,
			want:  []Token{"ab"},
		},
		{
			name:  "group size one",
			input: "abc",
			n:     1,
			want:  []Token{"a", "b", "c"},
		},
		{
			name:  "empty input yields the empty token",
			input: "",
			n:     3,
			want:  []Token{""},
		},
		{
			name:  "code points not bytes",
			input: "héllo🚀!",
			n:     3,
			want:  []Token{"hél", "lo🚀", "!"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenize([]rune(tc.input), tc.n)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("tokenize(%q, %d) mismatch (-want +got):\n%s", tc.input, tc.n, diff)
			}
		})
	}
}

func TestTokenizeRemainderIsDistinctSymbol(t *testing.T) {
	// Five code points with n=2: the length-1 remainder "a" must be a
	// separate alphabet entry from the length-2 token "aa".
	tokens := tokenize([]rune("aaaaa"), 2)
	want := []Token{"aa", "aa", "a"}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Fatalf("tokenize mismatch (-want +got):\n%s", diff)
	}

	ft := countTokens(tokens)
	if len(ft) != 2 {
		t.Fatalf("expected 2 distinct tokens, got %d: %v", len(ft), ft)
	}
	if ft["aa"] != 2 || ft["a"] != 1 {
		t.Fatalf("unexpected counts: %v", ft)
	}
}

func TestCountTokens(t *testing.T) {
	ft := countTokens([]Token{"ab", "cd", "ab", "ab", "e"})
	want := FrequencyTable{"ab": 3, "cd": 1, "e": 1}
	if diff := cmp.Diff(want, ft); diff != "" {
		t.Errorf("countTokens mismatch (-want +got):\n%s", diff)
	}
}

func TestCountTokensNeverEmpty(t *testing.T) {
	ft := countTokens(nil)
	if len(ft) != 1 || ft[""] != 1 {
		t.Fatalf("expected synthetic empty-token entry, got %v", ft)
	}
}
