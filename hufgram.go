// Package hufgram is a lossless compressor for Unicode text. It groups the
// input's code points into fixed-size tokens, builds a canonical Huffman
// code over the token alphabet and persists a self-describing archive
// holding the frequency table and the bit-packed code stream. The tree is
// reproducible from the frequency table alone, so per-token codes are never
// stored.
package hufgram

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrGroupSize indicates a missing or non-positive group size.
	ErrGroupSize = errors.New("group size must be at least 1")
	// ErrGroupSizeMismatch indicates the caller-supplied group size differs
	// from the one recorded in the archive.
	ErrGroupSizeMismatch = errors.New("group size does not match archive")
	// ErrCorruptStream indicates the bit stream ended or derailed before the
	// expected number of code points was produced.
	ErrCorruptStream = errors.New("corrupt bit stream")
	// ErrBadMagic indicates the input does not start with the archive tag.
	ErrBadMagic = errors.New("not a hufgram archive")
)

// Config holds configuration shared by the encoder and decoder.
type Config struct {
	GroupSize int        // Code points per token (required, >= 1)
	Name      string     // Original file name recorded in the archive
	TreeCache *TreeCache // Optional cache of built coding trees
}

// Option is a functional option for configuring the codec.
type Option func(*Config)

// WithGroupSize sets the number of code points per token. Encode requires
// it; Decode requires it to match the archive's recorded value.
func WithGroupSize(n int) Option {
	return func(c *Config) {
		c.GroupSize = n
	}
}

// WithName sets the original file name recorded in the archive header.
// Callers should pass the base name only, never a directory path.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithTreeCache shares built coding trees between calls that operate on the
// same frequency table.
func WithTreeCache(tc *TreeCache) Option {
	return func(c *Config) {
		c.TreeCache = tc
	}
}

// Encoder compresses code-point sequences into archives.
type Encoder struct {
	config Config
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Encoder{config: cfg}
}

// Encode compresses text into a self-describing archive: tokenize, count,
// build the tree, assign codes, pack the bit stream. The whole input is held
// in memory; each call is self-contained.
func (e *Encoder) Encode(text string) (*Archive, error) {
	if e.config.GroupSize < 1 {
		return nil, ErrGroupSize
	}

	runes := []rune(text)
	tokens := tokenize(runes, e.config.GroupSize)
	ft := countTokens(tokens)
	root := e.config.TreeCache.tree(ft)
	codes := buildCodes(root)

	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	for _, t := range tokens {
		code, ok := codes[t]
		if !ok {
			return nil, fmt.Errorf("no code for token %q", t)
		}
		bw.writeCode(code)
	}
	if err := bw.flush(); err != nil {
		return nil, err
	}

	entries := make([]FreqEntry, 0, len(ft))
	for tok, count := range ft {
		entries = append(entries, FreqEntry{Token: tok, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Token < entries[j].Token
	})

	return &Archive{
		GroupSize:      uint32(e.config.GroupSize),
		CodePointCount: uint64(len(runes)),
		Name:           e.config.Name,
		Entries:        entries,
		Stream:         buf.Bytes(),
	}, nil
}
