package download

import (
	"context"
	"fmt"

	"github.com/handiism/exercices-downloader/internal/classify"
	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/ecoles"
	"github.com/handiism/exercices-downloader/internal/http"
	ioutils "github.com/handiism/exercices-downloader/internal/io"
	"github.com/handiism/exercices-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns a lowercase name for the level.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	}
	return "unknown"
}

// ProgressEvent represents a download progress update.
//
// Fields other than Message and Level are filled in when they apply, so
// callers can log them as structured context.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	Year       string
	Subject    string
	Quarter    int
	URL        string
	Title      string
	Difficulty model.Difficulty
	Path       string
	Err        error

	// Done is the number of source URLs reached so far, including the
	// current one. Total is the number of source URLs in the run.
	Done  int
	Total int
}

// Stats counts what a run did.
type Stats struct {
	// Listings is the number of source URLs processed.
	Listings int
	// ListingErrors is the number of source URLs that could not be fetched.
	ListingErrors  int
	Attachments    int
	Downloaded     int
	DownloadErrors int
	SaveErrors     int
	Bytes          int64
}

// Failed returns the number of failed items: sources that could not be
// fetched plus files that could not be downloaded or saved.
func (s Stats) Failed() int {
	return s.ListingErrors + s.DownloadErrors + s.SaveErrors
}

// Manager runs the fetch, parse, classify and save pipeline over a catalog.
//
// Everything happens sequentially on the calling goroutine. A failure is
// confined to the item it happened on: a listing that cannot be fetched, a
// file that cannot be downloaded and a file that cannot be saved are each
// reported and skipped.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	parser     *ecoles.Parser
	classifier classify.Classifier

	stats Stats
	total int

	onProgress func(ProgressEvent)
}

// NewManager creates a new download Manager.
//
// The client is owned by the caller, who closes it once the run is over.
func NewManager(settings *config.Settings, client *http.Client, classifier classify.Classifier, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		httpClient: client,
		parser:     ecoles.NewParser(),
		classifier: classifier,
		onProgress: onProgress,
	}
}

// Stats returns the counters of the current or last run.
func (m *Manager) Stats() Stats {
	return m.stats
}

// Run downloads every entry of the catalog into the configured output root.
//
// Only a failure to create the output root, or cancellation of ctx, stops
// the run early; both are returned as errors. Per-item failures are reported
// through the progress callback and counted in Stats.
func (m *Manager) Run(ctx context.Context, catalog *model.Catalog) (Stats, error) {
	m.stats = Stats{}
	m.total = catalog.URLCount()
	root := m.settings.OutputRoot

	if err := m.ensureDir(root); err != nil {
		return m.stats, fmt.Errorf("failed to create output directory %s: %w", root, err)
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Saving exercises to %s", root), Level: LevelInfo, Path: root, Total: m.total})

	for _, year := range catalog.Years {
		if err := ctx.Err(); err != nil {
			return m.stats, err
		}

		tasks := year.Tasks(root)

		yearDir := year.Directory(root)
		if err := m.ensureDir(yearDir); err != nil {
			// Every source of the year is lost.
			m.stats.Listings += len(tasks)
			m.stats.ListingErrors += len(tasks)
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Error creating directory %s: %v", yearDir, err),
				Level:   LevelError,
				Year:    year.Label,
				Path:    yearDir,
				Err:     err,
				Done:    m.stats.Listings,
				Total:   m.total,
			})
			continue
		}

		for _, task := range tasks {
			if err := ctx.Err(); err != nil {
				return m.stats, err
			}
			m.processTask(ctx, task)
		}
	}

	if err := ctx.Err(); err != nil {
		return m.stats, err
	}
	return m.stats, nil
}

// processTask fetches one source URL and handles every attachment it lists.
func (m *Manager) processTask(ctx context.Context, task model.Task) {
	m.stats.Listings++

	m.progress(m.taskEvent(task, LevelVerbose, fmt.Sprintf("Fetching %s", task.SourceURL), nil))

	resp, err := m.httpClient.Get(ctx, task.SourceURL)
	if err != nil {
		m.stats.ListingErrors++
		m.progress(m.taskEvent(task, LevelError, fmt.Sprintf("Error fetching URL %s: %v", task.SourceURL, err), err))
		return
	}

	if err := m.ensureDir(task.QuarterDir()); err != nil {
		m.stats.ListingErrors++
		m.progress(m.taskEvent(task, LevelError, fmt.Sprintf("Error creating directory %s: %v", task.QuarterDir(), err), err))
		return
	}

	if ecoles.IsDocument(resp.URL, resp.ContentType, resp.Body) {
		m.processAttachment(ctx, task, model.Attachment{
			Title:   ecoles.TitleFromURL(resp.URL),
			Link:    resp.URL,
			Content: resp.Body,
		})
		return
	}

	found := 0
	for entry := range m.parser.Attachments(resp.URL, resp.Body) {
		if ctx.Err() != nil {
			return
		}
		found++
		m.processAttachment(ctx, task, entry)
	}

	if found == 0 {
		m.progress(m.taskEvent(task, LevelWarning, fmt.Sprintf("No attachments found at %s", task.SourceURL), nil))
	}
}

// processAttachment classifies, downloads and saves a single entry.
func (m *Manager) processAttachment(ctx context.Context, task model.Task, entry model.Attachment) {
	m.stats.Attachments++

	difficulty := m.classifier.Classify(entry)
	if !difficulty.Valid() {
		err := fmt.Errorf("unknown difficulty %q", difficulty)
		m.stats.SaveErrors++
		e := m.taskEvent(task, LevelError, fmt.Sprintf("Failed to save %s: %v", entry.Title, err), err)
		e.URL = entry.Link
		e.Title = entry.Title
		m.progress(e)
		return
	}

	dir := task.DifficultyDir(difficulty)
	path := task.OutputPath(difficulty, entry.Title)

	event := func(level ProgressLevel, msg string, err error) ProgressEvent {
		e := m.taskEvent(task, level, msg, err)
		e.URL = entry.Link
		e.Title = entry.Title
		e.Difficulty = difficulty
		e.Path = path
		return e
	}

	if m.settings.DryRun {
		m.progress(event(LevelInfo, fmt.Sprintf("Would download: %s -> %s", entry.Title, path), nil))
		return
	}

	if err := ioutils.EnsureDir(dir); err != nil {
		m.stats.SaveErrors++
		m.progress(event(LevelError, fmt.Sprintf("Failed to save %s: %v", entry.Title, err), err))
		return
	}

	body := entry.Content
	if !entry.Prefetched() {
		resp, err := m.httpClient.Get(ctx, entry.Link)
		if err != nil {
			m.stats.DownloadErrors++
			m.progress(event(LevelError, fmt.Sprintf("Failed to download %s: %v", entry.Title, err), err))
			return
		}
		body = resp.Body
	}

	if err := ioutils.WriteFile(ctx, path, body); err != nil {
		m.stats.SaveErrors++
		m.progress(event(LevelError, fmt.Sprintf("Failed to save %s: %v", entry.Title, err), err))
		return
	}

	m.stats.Downloaded++
	m.stats.Bytes += int64(len(body))
	m.progress(event(LevelSuccess, fmt.Sprintf("Downloaded: %s (Subject: %s, Difficulty: %s)", entry.Title, task.Subject, difficulty), nil))
}

func (m *Manager) taskEvent(task model.Task, level ProgressLevel, msg string, err error) ProgressEvent {
	return ProgressEvent{
		Message: msg,
		Level:   level,
		Year:    task.Year,
		Subject: task.Subject,
		Quarter: task.Quarter,
		URL:     task.SourceURL,
		Err:     err,
		Done:    m.stats.Listings,
		Total:   m.total,
	}
}

// ensureDir creates path unless the run is a dry run.
func (m *Manager) ensureDir(path string) error {
	if m.settings.DryRun {
		return nil
	}
	return ioutils.EnsureDir(path)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
