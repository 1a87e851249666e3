package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

const selfTestSample = "Hello! This is a Huffman test\n" +
	"Huffman coding should compress repeated patterns.\n" +
	"aaaaaa bbbbbb cccccc\n"

// commandSelfTest round-trips the given file, or a built-in sample written
// to a temp directory, and compares the result byte for byte.
func commandSelfTest(path string, groupSize int) error {
	fmt.Println("Running self-test...")

	input := path
	if input == "" {
		dir, err := os.MkdirTemp("", "hufgram_test_")
		if err != nil {
			return err
		}
		input = filepath.Join(dir, "input.txt")
		if err := os.WriteFile(input, []byte(selfTestSample), 0644); err != nil {
			return err
		}
		fmt.Println("Temp dir:", dir)
	}

	archivePath, encElapsed, inSize, outSize, err := encodeFile(input, groupSize)
	if err != nil {
		return err
	}
	fmt.Println("Compressed:", archivePath)
	fmt.Println("Compression time:", encElapsed.Milliseconds(), "ms")
	fmt.Printf("Size: %d -> %d bytes\n", inSize, outSize)

	extracted, decElapsed, err := decodeFile(archivePath, groupSize)
	if err != nil {
		return err
	}
	fmt.Println("Decompressed to:", extracted)
	fmt.Println("Decompression time:", decElapsed.Milliseconds(), "ms")

	original, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	decoded, err := os.ReadFile(extracted)
	if err != nil {
		return err
	}

	if bytes.Equal(original, decoded) {
		fmt.Println("SELF-TEST OK")
		return nil
	}
	return fmt.Errorf("self-test failed: decoded output differs from %s", input)
}
