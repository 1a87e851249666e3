// Command hufcrc appends or verifies a trailing cyclic redundancy check on
// arbitrary files. It is a standalone tool and shares no code with the
// hufgram codec.
//
//	hufcrc -k -2 file      append a CRC-16, writing file.crc2
//	hufcrc -d -2 file.crc2 verify and restore the original bytes
//
// The size parameter selects the remainder width: -1 CRC-8, -2 CRC-16,
// -4 CRC-32.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hufgram/hufgram/crc"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  hufcrc -k -N <path>   append an N-byte CRC, writing <path>.crcN")
	fmt.Println("  hufcrc -d -N <path>   verify the CRC and restore the original bytes")
	fmt.Println()
	fmt.Println("N selects the remainder width: 1 (CRC-8), 2 (CRC-16), 4 (CRC-32).")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  hufcrc -k -2 notes.txt")
	fmt.Println("  hufcrc -d -2 notes.txt.crc2")
}

func parseSize(s string) (int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "-")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad crc size %q", s)
	}
	if v != crc.Size8 && v != crc.Size16 && v != crc.Size32 {
		return 0, fmt.Errorf("allowed crc sizes are 1, 2 and 4 bytes, got %d", v)
	}
	return v, nil
}

func stampFile(path string, size int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	stamped, err := crc.Append(data, size)
	if err != nil {
		return err
	}
	output := fmt.Sprintf("%s.crc%d", path, size)
	if err := os.WriteFile(output, stamped, 0644); err != nil {
		return err
	}

	rem, err := crc.Remainder(data, size)
	if err != nil {
		return err
	}
	fmt.Println("=== ENCODE ===")
	fmt.Printf("CRC(%d): 0x%0*X\n", size*8, size*2, rem)
	fmt.Printf("Output: %s (+%d bytes)\n", output, size)
	return nil
}

func checkFile(path string, size int) error {
	stamped, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	payload, err := crc.Verify(stamped, size)
	if err != nil {
		// Mismatched data is not restorable; write nothing.
		return fmt.Errorf("restore aborted, file will not be written: %w", err)
	}
	output := decodedName(path, size)
	if err := os.WriteFile(output, payload, 0644); err != nil {
		return err
	}
	fmt.Println("=== DECODE / CHECK ===")
	fmt.Println("CRC OK")
	fmt.Println("Restored file:", output)
	return nil
}

// decodedName strips a matching .crcN suffix and appends .decoded.
func decodedName(path string, size int) string {
	suffix := fmt.Sprintf(".crc%d", size)
	if strings.HasSuffix(path, suffix) {
		return strings.TrimSuffix(path, suffix) + ".decoded"
	}
	return path + ".decoded"
}

func main() {
	if len(os.Args) != 4 {
		usage()
		os.Exit(1)
	}

	size, err := parseSize(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		usage()
		os.Exit(1)
	}
	path := os.Args[3]

	switch os.Args[1] {
	case "-k":
		err = stampFile(path, size)
	case "-d":
		err = checkFile(path, size)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
