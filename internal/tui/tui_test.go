package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/download"
	"github.com/handiism/exercices-downloader/internal/model"
)

func testModel() Model {
	settings := config.DefaultSettings()
	settings.OutputRoot = "/tmp/Exercices"
	catalog := &model.Catalog{Years: []model.Year{{
		Label: "2023",
		Subjects: []model.Subject{
			{Name: "Mathématiques", URLs: []string{"https://example.com/a", "https://example.com/b"}},
		},
	}}}
	return newModel(settings, catalog, newRunner(catalog, nil))
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_ReadyViewListsCatalog(t *testing.T) {
	view := testModel().View()

	for _, want := range []string{
		"Catalog: 1 year(s), 2 source URL(s)",
		"• 2023: Mathématiques",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("ready view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "♪") {
		t.Error("ready view still uses the music note bullet")
	}
}

func TestModel_StartRun(t *testing.T) {
	m := testModel()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.dryRun {
		t.Fatal("ctrl+d should enable dry run")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateRunning {
		t.Errorf("state = %v, want StateRunning", m.state)
	}
}

func TestModel_ProgressAndCompletion(t *testing.T) {
	m := testModel()
	m.state = StateRunning

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{
		Message: "Downloaded: Devoir 1 (Subject: Mathématiques, Difficulty: easy)",
		Level:   download.LevelSuccess,
		Year:    "2023",
		Subject: "Mathématiques",
		Quarter: 1,
		Done:    1,
		Total:   2,
	}})

	if m.done != 1 || m.total != 2 {
		t.Errorf("done/total = %d/%d, want 1/2", m.done, m.total)
	}
	if m.percent() != 0.5 {
		t.Errorf("percent() = %v, want 0.5", m.percent())
	}
	if len(m.logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(m.logs))
	}

	m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "Fetching", Level: download.LevelVerbose}})
	if len(m.logs) != 1 {
		t.Errorf("verbose events should be hidden, got %d logs", len(m.logs))
	}

	m = update(t, m, RunDoneMsg{Stats: download.Stats{Listings: 2, Attachments: 1, Downloaded: 1, Bytes: 2048}})
	if m.state != StateComplete {
		t.Errorf("state = %v, want StateComplete", m.state)
	}
	if view := m.View(); !strings.Contains(view, "Files: 1/1") {
		t.Errorf("complete view missing file count:\n%s", view)
	}
}

func TestModel_LogsAreCapped(t *testing.T) {
	m := testModel()
	m.state = StateRunning

	for i := 0; i < maxLogs+5; i++ {
		m = update(t, m, ProgressMsg{Event: download.ProgressEvent{Message: "x", Level: download.LevelInfo}})
	}
	if len(m.logs) != maxLogs {
		t.Errorf("got %d logs, want %d", len(m.logs), maxLogs)
	}
}

func TestModel_RunError(t *testing.T) {
	m := testModel()
	m.state = StateRunning

	m = update(t, m, RunDoneMsg{Err: errors.New("permission denied")})
	if m.state != StateError || m.err == nil {
		t.Errorf("state = %v err = %v, want StateError", m.state, m.err)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.state != StateReady || m.err != nil {
		t.Errorf("r should reset to StateReady, got %v", m.state)
	}
}

func TestModel_Cancel(t *testing.T) {
	m := testModel()
	m.state = StateRunning

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, RunDoneMsg{})

	if !errors.Is(m.err, errCancelled) {
		t.Errorf("err = %v, want errCancelled", m.err)
	}
}
