// Package crc implements a textbook cyclic redundancy check: the remainder
// of data·x^r divided by a standard generator polynomial over GF(2),
// computed bit by bit, MSB first, non-reflected, with zero initial register.
// It shares no code with the hufgram codec; the stamped-file convention
// (trailing big-endian remainder, ".crcN" suffix) lives in cmd/hufcrc.
package crc

import (
	"errors"
	"fmt"
)

// Supported remainder widths, as sizes in bytes.
const (
	Size8  = 1
	Size16 = 2
	Size32 = 4
)

// Generator polynomials without their top x^r term:
// CRC-8 x^8+x^2+x+1, CRC-16/CCITT x^16+x^12+x^5+1, CRC-32 0x04C11DB7.
var polys = map[int]uint64{
	Size8:  0x07,
	Size16: 0x1021,
	Size32: 0x04C11DB7,
}

var (
	// ErrSize indicates an unsupported remainder size.
	ErrSize = errors.New("crc size must be 1, 2 or 4 bytes")
	// ErrMismatch indicates a stored remainder that does not match the data.
	ErrMismatch = errors.New("crc mismatch")
	// ErrShortData indicates input shorter than the remainder it should carry.
	ErrShortData = errors.New("data shorter than crc tail")
)

// Remainder computes the r-bit remainder of data·x^r, r = size*8. Bits are
// fed MSB first; the trailing r zero bits realize the ·x^r multiplication.
func Remainder(data []byte, size int) (uint64, error) {
	poly, ok := polys[size]
	if !ok {
		return 0, ErrSize
	}
	r := uint(size * 8)
	mask := uint64(1)<<r - 1

	var reg uint64
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			in := uint64(b>>uint(i)) & 1
			top := (reg >> (r - 1)) & 1
			reg = (reg<<1 | in) & mask
			if top == 1 {
				reg ^= poly
			}
		}
	}
	for i := uint(0); i < r; i++ {
		top := (reg >> (r - 1)) & 1
		reg = (reg << 1) & mask
		if top == 1 {
			reg ^= poly
		}
	}
	return reg, nil
}

// Append returns data with its big-endian remainder appended.
func Append(data []byte, size int) ([]byte, error) {
	rem, err := Remainder(data, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(data)+size)
	out = append(out, data...)
	for i := size - 1; i >= 0; i-- {
		out = append(out, byte(rem>>uint(8*i)))
	}
	return out, nil
}

// Split separates stamped data into payload and the stored remainder.
func Split(stamped []byte, size int) ([]byte, uint64, error) {
	if _, ok := polys[size]; !ok {
		return nil, 0, ErrSize
	}
	if len(stamped) < size {
		return nil, 0, ErrShortData
	}
	cut := len(stamped) - size
	var stored uint64
	for _, b := range stamped[cut:] {
		stored = stored<<8 | uint64(b)
	}
	return stamped[:cut], stored, nil
}

// Verify recomputes the remainder over the payload of stamped data and
// returns the payload, or ErrMismatch if the stored remainder differs.
func Verify(stamped []byte, size int) ([]byte, error) {
	payload, stored, err := Split(stamped, size)
	if err != nil {
		return nil, err
	}
	calc, err := Remainder(payload, size)
	if err != nil {
		return nil, err
	}
	if calc != stored {
		return nil, fmt.Errorf("%w: stored %#x, computed %#x", ErrMismatch, stored, calc)
	}
	return payload, nil
}
