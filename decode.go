package hufgram

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decoder reconstructs the original text from an archive.
type Decoder struct {
	config Config
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) *Decoder {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Decoder{config: cfg}
}

// Decode rebuilds the coding tree from the archive's frequency table and
// walks the bit stream until exactly CodePointCount code points have been
// produced. The caller-supplied group size must match the stored one: the
// mismatch is a hard error, never silently resolved in either direction.
// Corruption aborts with no partial result.
func (d *Decoder) Decode(a *Archive) (string, error) {
	if d.config.GroupSize < 1 {
		return "", ErrGroupSize
	}
	if uint32(d.config.GroupSize) != a.GroupSize {
		return "", fmt.Errorf("%w: archive was created with %d, caller passed %d",
			ErrGroupSizeMismatch, a.GroupSize, d.config.GroupSize)
	}
	if err := validateArchiveStructure(a); err != nil {
		return "", fmt.Errorf("invalid archive: %w", err)
	}
	if a.CodePointCount == 0 {
		return "", nil
	}

	root := d.config.TreeCache.tree(a.frequencyTable())
	target := int(a.CodePointCount)
	out := make([]rune, 0, target)

	if root.leaf() {
		// One token in the whole alphabet: the stream carries no shape
		// information, the token just repeats. Truncation below handles a
		// token length that does not evenly divide the target.
		tok := []rune(root.token)
		if len(tok) == 0 {
			return "", fmt.Errorf("%w: zero-length token for non-empty input", ErrCorruptStream)
		}
		for len(out) < target {
			out = append(out, tok...)
		}
		return string(out[:target]), nil
	}

	br := newBitReader(bytes.NewReader(a.Stream))
	for len(out) < target {
		cur := root
		for !cur.leaf() {
			bit, err := br.readBit()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return "", fmt.Errorf("%w: bit stream ended mid-symbol", ErrCorruptStream)
				}
				return "", err
			}
			if bit == 0 {
				cur = cur.left
			} else {
				cur = cur.right
			}
			if cur == nil {
				return "", fmt.Errorf("%w: traversal reached a missing child", ErrCorruptStream)
			}
		}
		out = append(out, []rune(cur.token)...)
	}
	return string(out[:target]), nil
}
