package hufgram

import "io"

// bitWriter packs single bits most-significant-bit-first into bytes and
// writes each full byte to the underlying writer. Write errors are stored
// and reported by flush, so callers can stream bits without checking an
// error per bit.
type bitWriter struct {
	w   io.Writer
	err error
	cur byte
	n   int // bits accumulated in cur, 0..7
}

func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{w: w}
}

// writeBit appends one bit. Only the low bit of b is used.
func (bw *bitWriter) writeBit(b byte) {
	if bw.err != nil {
		return
	}
	bw.cur = bw.cur<<1 | (b & 1)
	bw.n++
	if bw.n == 8 {
		_, bw.err = bw.w.Write([]byte{bw.cur})
		bw.cur = 0
		bw.n = 0
	}
}

// writeCode appends every bit of a '0'/'1' code string.
func (bw *bitWriter) writeCode(code string) {
	for i := 0; i < len(code); i++ {
		if code[i] == '1' {
			bw.writeBit(1)
		} else {
			bw.writeBit(0)
		}
	}
}

// flush writes out a final partially-filled byte, padded with zero bits on
// the low end, and returns any stored write error. Padding bits are never
// misread as data: the decoder stops at the header's code-point count.
func (bw *bitWriter) flush() error {
	if bw.err == nil && bw.n > 0 {
		bw.cur <<= uint(8 - bw.n)
		_, bw.err = bw.w.Write([]byte{bw.cur})
		bw.cur = 0
		bw.n = 0
	}
	return bw.err
}

// bitReader yields single bits most-significant-bit-first from the
// underlying byte source. It carries no bit-count metadata of its own; the
// consumer knows independently when to stop. Exhaustion of the byte source
// surfaces as io.EOF.
type bitReader struct {
	r   io.ByteReader
	cur byte
	pos int // next bit index within cur; 8 forces a refill
}

func newBitReader(r io.ByteReader) *bitReader {
	return &bitReader{r: r, pos: 8}
}

func (br *bitReader) readBit() (byte, error) {
	if br.pos == 8 {
		b, err := br.r.ReadByte()
		if err != nil {
			return 0, err
		}
		br.cur = b
		br.pos = 0
	}
	bit := (br.cur >> uint(7-br.pos)) & 1
	br.pos++
	return bit, nil
}
