// Package ioutils provides file system utilities for the exercices-downloader.
//
// This package contains functions for:
//   - File writing
//   - Filename sanitization
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"os"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}\x{85}]+`)
)

// fallbackName is used when nothing usable is left of a title.
const fallbackName = "untitled"

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Nothing is cleaned up when the
// write fails halfway.
//
// Example:
//
//	err := WriteFile(ctx, "/home/me/Exercices/2023/Science/Quarter 1/easy/svt.pdf", body)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SanitizeFileName turns a human title into a name that is safe to use as a
// single path element.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Leading and trailing whitespace → removed
//   - Every remaining whitespace run → single underscore, including Unicode
//     spaces such as U+00A0 (&nbsp;) and U+202F
//
// The result never contains a path separator or a space. A title that
// sanitizes to nothing becomes "untitled".
//
// Example:
//
//	SanitizeFileName("Devoir 1/2 : Algèbre")  // Returns "Devoir_1_2___Algèbre"
//	SanitizeFileName("Série   corrigée...")   // Returns "Série_corrigée"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = whitespaceRun.ReplaceAllString(name, "_")

	if name == "" {
		return fallbackName
	}
	return name
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned, so re-runs over an
// existing tree are safe.
//
// Example:
//
//	err := EnsureDir("/home/me/Exercices/2023/Science/Quarter 1/hard")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
