package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	ioutils "github.com/handiism/exercices-downloader/internal/io"
)

// maxFileNameBytes keeps generated names under the common 255 byte limit,
// leaving room for the extension.
const maxFileNameBytes = 240

// Task is one unit of work: a single source URL of a subject.
//
// Tasks are created by Catalog.Tasks and consumed once by the download manager.
//
// Example:
//
//	task := Task{Year: "2023", Subject: "Science", Quarter: 2, SourceURL: u, YearDirectory: "/home/me/Exercices/2023"}
//	task.QuarterDir() // "/home/me/Exercices/2023/Science/Quarter 2"
type Task struct {
	// Year is the year label the task belongs to.
	Year string

	// Subject is the subject name.
	Subject string

	// Quarter is the 1-based position of SourceURL in the subject's URL list.
	Quarter int

	// SourceURL is the listing page (or document) to fetch.
	SourceURL string

	// YearDirectory is root/<year label>.
	YearDirectory string
}

// QuarterDir returns YearDirectory/<subject>/Quarter <n>.
func (t Task) QuarterDir() string {
	return filepath.Join(t.YearDirectory, t.Subject, fmt.Sprintf("Quarter %d", t.Quarter))
}

// DifficultyDir returns the folder a file with the given difficulty is saved to.
func (t Task) DifficultyDir(d Difficulty) string {
	return filepath.Join(t.QuarterDir(), string(d))
}

// OutputPath returns the full path of the PDF for an attachment title:
// YearDirectory/<subject>/Quarter <n>/<difficulty>/<sanitized title>.pdf
//
// Example:
//
//	task.OutputPath(Medium, "Devoir de synthèse 1")
//	// ".../Quarter 1/medium/Devoir_de_synthèse_1.pdf"
func (t Task) OutputPath(d Difficulty, title string) string {
	return filepath.Join(t.DifficultyDir(d), PDFFileName(title))
}

// PDFFileName sanitizes a title and appends the .pdf extension once.
func PDFFileName(title string) string {
	name := ioutils.SanitizeFileName(title)
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
		name = ioutils.SanitizeFileName(name)
	}
	return truncateBytes(name, maxFileNameBytes) + ".pdf"
}

// truncateBytes cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
