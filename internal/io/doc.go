// Package ioutils provides the file system side of a download run.
//
// This package contains functions for:
//   - Filename sanitization for cross-platform compatibility
//   - Idempotent directory creation
//   - Writing downloaded bytes to disk
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/home/me/Exercices/2023/Science/Quarter 1/easy")
//
//	// Write data to file
//	err := ioutils.WriteFile(ctx, "/path/to/exam.pdf", body)
//
// # Filename Sanitization
//
// Use SanitizeFileName to turn an attachment title into a file name:
//
//	safe := ioutils.SanitizeFileName("Devoir de contrôle 1") // Returns "Devoir_de_contrôle_1"
package ioutils
