package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Concours 9eme 2023", "Concours_9eme_2023"},
		{"devoir:with:colons", "devoir_with_colons"},
		{"file<with>brackets", "file_with_brackets"},
		{"file/with\\slashes", "file_with_slashes"},
		{"file|with|pipes", "file_with_pipes"},
		{"file?with*wildcards", "file_with_wildcards"},
		{"file\"with\"quotes", "file_with_quotes"},
		{"trailing dots...", "trailing_dots"},
		{"multiple   spaces", "multiple_spaces"},
		{"  padded  ", "padded"},
		{"tab\tand\nnewline", "tab_and_newline"},
		{"Mathématiques", "Mathématiques"},
		{"Devoir\u00a01", "Devoir_1"},
		{"Série\u202f: corrigé", "Série___corrigé"},
		{"Contrôle\u3000n°2", "Contrôle_n°2"},
		{"", "untitled"},
		{"...", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFileName_NoSeparatorsOrSpaces(t *testing.T) {
	inputs := []string{
		"../../etc/passwd",
		`C:\Windows\system32`,
		"a / b \\ c",
		" leading and trailing ",
		"série n°3 : géométrie/espace",
		"Devoir\u00a01",
		"Série\u202f: corrigé",
		"Contrôle\u3000n°2\u2028bis",
		"\u00a0\u00a0",
	}

	for _, input := range inputs {
		got := SanitizeFileName(input)
		if strings.ContainsAny(got, "/\\") || strings.IndexFunc(got, unicode.IsSpace) >= 0 {
			t.Errorf("SanitizeFileName(%q) = %q, contains separator or space", input, got)
		}
		if got == ".." || got == "." {
			t.Errorf("SanitizeFileName(%q) = %q, refers to a directory", input, got)
		}
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "2023", "Science", "Quarter 1", "easy")

	for i := 0; i < 2; i++ {
		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir run %d: %v", i+1, err)
		}
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%s is not a directory", dir)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exam.pdf")

	if err := WriteFile(context.Background(), path, []byte("first")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(context.Background(), path, []byte("%PDF-1.4")); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "%PDF-1.4" {
		t.Errorf("content = %q, want %q", got, "%PDF-1.4")
	}
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "exam.pdf")

	if err := WriteFile(context.Background(), path, []byte("x")); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func TestWriteFile_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "exam.pdf")
	if err := WriteFile(ctx, path, []byte("x")); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file should not exist after cancelled write")
	}
}
