// Package fs provides small filesystem helpers shared by the CLI.
package fs

import (
	"os"
)

// FileExists returns true if the given path exists and is a regular
// file.
func FileExists(fileName string) bool {
	if fileName == "" {
		return false
	}

	info, err := os.Stat(fileName)

	return err == nil && info.Mode().IsRegular()
}

// Writable returns true if the directory of the given path can be
// written to.
func Writable(dir string) bool {
	if dir == "" {
		return false
	}

	f, err := os.CreateTemp(dir, ".writable-*")

	if err != nil {
		return false
	}

	name := f.Name()

	_ = f.Close()
	_ = os.Remove(name)

	return true
}
