package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// uniquePath picks a path in dir for name that does not collide with an
// existing file: name itself, then decoded_<name>, then decoded_<i>_<name>,
// finally a timestamped variant. Pure glue, deliberately outside the codec.
func uniquePath(dir, name string) string {
	if dir == "" {
		dir = "."
	}

	candidate := filepath.Join(dir, name)
	if !exists(candidate) {
		return candidate
	}

	decoded := filepath.Join(dir, "decoded_"+name)
	if !exists(decoded) {
		return decoded
	}

	for i := 1; i <= 9999; i++ {
		p := filepath.Join(dir, fmt.Sprintf("decoded_%d_%s", i, name))
		if !exists(p) {
			return p
		}
	}

	return filepath.Join(dir, fmt.Sprintf("decoded_%d_%s", time.Now().UnixMilli(), name))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
