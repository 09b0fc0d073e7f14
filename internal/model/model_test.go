package model

import (
	"path/filepath"
	"strings"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{Years: []Year{
		{
			Label: "2023",
			Subjects: []Subject{
				{Name: "Mathématiques", URLs: []string{"https://example.com/math-1", "https://example.com/math-2"}},
				{Name: "Science", URLs: []string{"https://example.com/svt"}},
			},
		},
		{
			Label: "2022",
			Subjects: []Subject{
				{Name: "Anglais", URLs: []string{"https://example.com/anglais"}},
			},
		},
	}}
}

func TestCatalog_Tasks(t *testing.T) {
	tasks := testCatalog().Tasks("/root/Exercices")

	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}

	want := []struct {
		year, subject string
		quarter       int
		url           string
	}{
		{"2023", "Mathématiques", 1, "https://example.com/math-1"},
		{"2023", "Mathématiques", 2, "https://example.com/math-2"},
		{"2023", "Science", 1, "https://example.com/svt"},
		{"2022", "Anglais", 1, "https://example.com/anglais"},
	}

	for i, w := range want {
		got := tasks[i]
		if got.Year != w.year || got.Subject != w.subject || got.Quarter != w.quarter || got.SourceURL != w.url {
			t.Errorf("tasks[%d] = %+v, want %+v", i, got, w)
		}
		if got.YearDirectory != filepath.Join("/root/Exercices", w.year) {
			t.Errorf("tasks[%d].YearDirectory = %q", i, got.YearDirectory)
		}
	}
}

func TestCatalog_URLCount(t *testing.T) {
	if got := testCatalog().URLCount(); got != 4 {
		t.Errorf("URLCount() = %d, want 4", got)
	}
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog *Catalog
		wantErr bool
	}{
		{"valid", testCatalog(), false},
		{"no years", &Catalog{}, true},
		{"empty year label", &Catalog{Years: []Year{{Label: " "}}}, true},
		{"separator in subject", &Catalog{Years: []Year{{Label: "2023", Subjects: []Subject{{Name: "a/b"}}}}}, true},
		{"dot dot year", &Catalog{Years: []Year{{Label: ".."}}}, true},
		{"relative url", &Catalog{Years: []Year{{Label: "2023", Subjects: []Subject{{Name: "Science", URLs: []string{"/svt.pdf"}}}}}}, true},
		{"ftp url", &Catalog{Years: []Year{{Label: "2023", Subjects: []Subject{{Name: "Science", URLs: []string{"ftp://example.com/svt.pdf"}}}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTask_OutputPath(t *testing.T) {
	task := Task{
		Year:          "2023",
		Subject:       "Mathématiques",
		Quarter:       1,
		YearDirectory: "/home/me/Exercices/2023",
	}

	got := task.OutputPath(Medium, "Concours 9eme 2023 math")
	want := "/home/me/Exercices/2023/Mathématiques/Quarter 1/medium/Concours_9eme_2023_math.pdf"
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestPDFFileName(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Devoir 1", "Devoir_1.pdf"},
		{"Devoir 1.pdf", "Devoir_1.pdf"},
		{"Devoir 1.PDF", "Devoir_1.pdf"},
		{".pdf", "untitled.pdf"},
		{"a/b\\c", "a_b_c.pdf"},
		{"Devoir\u00a01", "Devoir_1.pdf"},
		{"Synthèse\u2028n°3\u00a0", "Synthèse_n°3.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := PDFFileName(tt.title); got != tt.want {
				t.Errorf("PDFFileName(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestPDFFileName_LongTitle(t *testing.T) {
	title := strings.Repeat("é", 300)

	got := PDFFileName(title)
	if len(got) > maxFileNameBytes+len(".pdf") {
		t.Errorf("len = %d, want at most %d", len(got), maxFileNameBytes+len(".pdf"))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Errorf("%q should end with .pdf", got)
	}
	if strings.ContainsRune(got, '�') {
		t.Error("truncation split a UTF-8 sequence")
	}
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range AllDifficulties() {
		if !d.Valid() {
			t.Errorf("%q should be valid", d)
		}
	}
	if Difficulty("impossible").Valid() {
		t.Error("unknown difficulty should not be valid")
	}
}
