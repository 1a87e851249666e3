package hufgram

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	archiveMagic = "HUF1"

	// maxTokenBytes is the sanity ceiling for a declared token byte length.
	// A corrupt or adversarial header is rejected before any allocation is
	// sized from it.
	maxTokenBytes = 50_000_000

	maxNameBytes = int(^uint16(0))
)

// Wire format, big-endian throughout:
//
//	magic[4]       = "HUF1"
//	groupSize      = uint32, code points per token at encode time
//	codePointCount = uint64, target length for decode
//	nameLen        = uint16, followed by nameLen bytes of UTF-8 file name
//	entryCount     = uint32, number of frequency-table entries
//	repeat entryCount times:
//	  tokenLen = uint32
//	  token    = tokenLen bytes of UTF-8
//	  count    = uint32, must be positive
//	bit stream = remainder of the input, MSB-first, zero-padded to a byte
//
// Codes and the tree are never stored; both sides regenerate them from the
// frequency table alone.

// FreqEntry is one frequency-table row as persisted in the archive.
type FreqEntry struct {
	Token Token
	Count uint32
}

// Archive is the persisted form of one encoded input: header fields, the
// frequency table and the bit-packed code stream.
type Archive struct {
	GroupSize      uint32
	CodePointCount uint64
	Name           string
	Entries        []FreqEntry
	Stream         []byte
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

func (a *Archive) frequencyTable() FrequencyTable {
	ft := make(FrequencyTable, len(a.Entries))
	for _, e := range a.Entries {
		ft[e.Token] = e.Count
	}
	return ft
}

func validateArchiveStructure(a *Archive) error {
	if a.GroupSize < 1 {
		return fmt.Errorf("group size must be positive: %d", a.GroupSize)
	}
	if a.CodePointCount > uint64(math.MaxInt) {
		return fmt.Errorf("code-point count too large: %d", a.CodePointCount)
	}
	if len(a.Name) > maxNameBytes {
		return fmt.Errorf("file name too long: %d bytes", len(a.Name))
	}
	if len(a.Entries) == 0 {
		return fmt.Errorf("frequency table must contain at least one entry")
	}
	seen := make(map[Token]struct{}, len(a.Entries))
	for i, e := range a.Entries {
		if len(e.Token) > maxTokenBytes {
			return fmt.Errorf("token %d exceeds length ceiling: %d bytes", i, len(e.Token))
		}
		if e.Count == 0 {
			return fmt.Errorf("token %d has non-positive frequency", i)
		}
		if _, dup := seen[e.Token]; dup {
			return fmt.Errorf("duplicate frequency entry for token %q at index %d", e.Token, i)
		}
		seen[e.Token] = struct{}{}
	}
	return nil
}

// WriteTo serializes the archive. Entries are written in the order they
// appear; the encoder emits them sorted by token so archives for the same
// input are byte-identical across runs.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if err := validateArchiveStructure(a); err != nil {
		return 0, fmt.Errorf("invalid archive: %w", err)
	}

	var total int64
	n, err := writeBytes(w, []byte(archiveMagic))
	total += n
	if err != nil {
		return total, err
	}

	if err := binary.Write(w, binary.BigEndian, a.GroupSize); err != nil {
		return total, err
	}
	total += 4

	if err := binary.Write(w, binary.BigEndian, a.CodePointCount); err != nil {
		return total, err
	}
	total += 8

	name := []byte(a.Name)
	if err := binary.Write(w, binary.BigEndian, uint16(len(name))); err != nil {
		return total, err
	}
	total += 2
	n, err = writeBytes(w, name)
	total += n
	if err != nil {
		return total, err
	}

	if err := binary.Write(w, binary.BigEndian, uint32(len(a.Entries))); err != nil {
		return total, err
	}
	total += 4

	for _, e := range a.Entries {
		if err := binary.Write(w, binary.BigEndian, uint32(len(e.Token))); err != nil {
			return total, err
		}
		total += 4
		n, err = writeBytes(w, []byte(e.Token))
		total += n
		if err != nil {
			return total, err
		}
		if err := binary.Write(w, binary.BigEndian, e.Count); err != nil {
			return total, err
		}
		total += 4
	}

	n, err = writeBytes(w, a.Stream)
	total += n
	return total, err
}

// ReadFrom deserializes an archive, validating every declared length before
// allocating from it. Errors name the field and its byte offset. The
// receiver is only overwritten after the whole archive has been read and
// validated.
func (a *Archive) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	var magic [4]byte
	n, err := io.ReadFull(r, magic[:])
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("read archive magic at offset 0: %w", err)
	}
	if string(magic[:]) != archiveMagic {
		return total, fmt.Errorf("%w: got %q at offset 0", ErrBadMagic, string(magic[:]))
	}

	var tmp Archive

	groupSizeOffset := total
	if err := binary.Read(r, binary.BigEndian, &tmp.GroupSize); err != nil {
		return total, fmt.Errorf("read group size at offset %d: %w", groupSizeOffset, err)
	}
	total += 4

	countOffset := total
	if err := binary.Read(r, binary.BigEndian, &tmp.CodePointCount); err != nil {
		return total, fmt.Errorf("read code-point count at offset %d: %w", countOffset, err)
	}
	total += 8

	var nameLen uint16
	nameOffset := total
	if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
		return total, fmt.Errorf("read file name length at offset %d: %w", nameOffset, err)
	}
	total += 2

	name := make([]byte, int(nameLen))
	n, err = io.ReadFull(r, name)
	total += int64(n)
	if err != nil {
		return total, fmt.Errorf("read file name at offset %d: %w", nameOffset+2, err)
	}
	tmp.Name = string(name)

	var entryCount uint32
	entryCountOffset := total
	if err := binary.Read(r, binary.BigEndian, &entryCount); err != nil {
		return total, fmt.Errorf("read entry count at offset %d: %w", entryCountOffset, err)
	}
	total += 4
	if entryCount == 0 {
		return total, fmt.Errorf("invalid entry count at offset %d: 0", entryCountOffset)
	}

	tmp.Entries = make([]FreqEntry, 0, entryCount)
	seen := make(map[Token]struct{}, entryCount)
	for i := 0; i < int(entryCount); i++ {
		entryOffset := total

		var tokenLen uint32
		if err := binary.Read(r, binary.BigEndian, &tokenLen); err != nil {
			return total, fmt.Errorf("read token length at offset %d (entry %d): %w", entryOffset, i, err)
		}
		total += 4
		if tokenLen > maxTokenBytes {
			return total, fmt.Errorf("token length %d at offset %d (entry %d) exceeds ceiling %d", tokenLen, entryOffset, i, maxTokenBytes)
		}

		tokenBytes := make([]byte, int(tokenLen))
		n, err = io.ReadFull(r, tokenBytes)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("read token bytes at offset %d (entry %d): %w", entryOffset+4, i, err)
		}
		token := Token(tokenBytes)
		if _, dup := seen[token]; dup {
			return total, fmt.Errorf("duplicate frequency entry for token %q (entry %d)", token, i)
		}
		seen[token] = struct{}{}

		var count uint32
		freqOffset := total
		if err := binary.Read(r, binary.BigEndian, &count); err != nil {
			return total, fmt.Errorf("read frequency at offset %d (entry %d): %w", freqOffset, i, err)
		}
		total += 4
		if count == 0 {
			return total, fmt.Errorf("non-positive frequency at offset %d (entry %d)", freqOffset, i)
		}

		tmp.Entries = append(tmp.Entries, FreqEntry{Token: token, Count: count})
	}

	streamOffset := total
	stream, err := io.ReadAll(r)
	total += int64(len(stream))
	if err != nil {
		return total, fmt.Errorf("read bit stream at offset %d: %w", streamOffset, err)
	}
	tmp.Stream = stream

	if err := validateArchiveStructure(&tmp); err != nil {
		return total, fmt.Errorf("invalid archive structure: %w", err)
	}

	*a = tmp
	return total, nil
}
