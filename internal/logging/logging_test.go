package logging

import (
	"errors"
	"testing"

	"github.com/handiism/exercices-downloader/internal/download"
	"github.com/handiism/exercices-downloader/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestProgressFunc_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	progress := ProgressFunc(zap.New(core))

	tests := []struct {
		level download.ProgressLevel
		want  zapcore.Level
	}{
		{download.LevelVerbose, zapcore.DebugLevel},
		{download.LevelInfo, zapcore.InfoLevel},
		{download.LevelSuccess, zapcore.InfoLevel},
		{download.LevelWarning, zapcore.WarnLevel},
		{download.LevelError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		progress(download.ProgressEvent{Message: tt.level.String(), Level: tt.level})
	}

	entries := logs.AllUntimed()
	if len(entries) != len(tests) {
		t.Fatalf("got %d entries, want %d", len(entries), len(tests))
	}
	for i, tt := range tests {
		if entries[i].Level != tt.want {
			t.Errorf("%s logged at %s, want %s", tt.level, entries[i].Level, tt.want)
		}
	}
}

func TestFields(t *testing.T) {
	event := download.ProgressEvent{
		Message:    "Failed to download Devoir 1",
		Level:      download.LevelError,
		Year:       "2023",
		Subject:    "Science",
		Quarter:    2,
		Difficulty: model.Hard,
		URL:        "https://example.com/1.pdf",
		Err:        errors.New("HTTP 404"),
	}

	core, logs := observer.New(zapcore.DebugLevel)
	zap.New(core).Error(event.Message, Fields(event)...)

	ctx := logs.All()[0].ContextMap()
	if ctx["year"] != "2023" || ctx["subject"] != "Science" || ctx["difficulty"] != "hard" {
		t.Errorf("context = %v", ctx)
	}
	if ctx["quarter"] != int64(2) {
		t.Errorf("quarter = %v (%T), want 2", ctx["quarter"], ctx["quarter"])
	}
	if ctx["error"] != "HTTP 404" {
		t.Errorf("error = %v", ctx["error"])
	}
	if _, ok := ctx["path"]; ok {
		t.Error("empty path should be skipped")
	}
}

func TestNew(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := New(Config{Verbose: verbose})
		if err != nil {
			t.Fatalf("New(verbose=%v): %v", verbose, err)
		}
		if got := logger.Core().Enabled(zapcore.DebugLevel); got != verbose {
			t.Errorf("debug enabled = %v, want %v", got, verbose)
		}
	}
}
