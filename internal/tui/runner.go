package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/handiism/exercices-downloader/internal/config"
	"github.com/handiism/exercices-downloader/internal/download"
	"github.com/handiism/exercices-downloader/internal/http"
	"github.com/handiism/exercices-downloader/internal/model"
	"go.uber.org/zap"
)

// runner executes download runs on behalf of the model, one at a time, on a
// goroutine of its own.
type runner struct {
	catalog *model.Catalog
	logger  *zap.Logger

	requests chan *config.Settings
	done     chan struct{}
	send     func(tea.Msg)

	mu     sync.Mutex
	cancel context.CancelFunc
}

func newRunner(catalog *model.Catalog, logger *zap.Logger) *runner {
	return &runner{
		catalog:  catalog,
		logger:   logger,
		requests: make(chan *config.Settings),
		done:     make(chan struct{}),
		send:     func(tea.Msg) {},
	}
}

// start returns a command that hands settings to the worker.
func (r *runner) start(settings *config.Settings) tea.Cmd {
	return func() tea.Msg {
		select {
		case r.requests <- settings:
		case <-r.done:
		}
		return nil
	}
}

// stop cancels the run in progress, if any.
func (r *runner) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

// work serves run requests until the program exits or ctx is done.
func (r *runner) work(ctx context.Context) error {
	for {
		select {
		case <-r.done:
			return nil
		case <-ctx.Done():
			return nil
		case settings := <-r.requests:
			r.run(ctx, settings)
		}
	}
}

func (r *runner) run(ctx context.Context, settings *config.Settings) {
	ctx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()
	defer r.stop()

	client := http.NewClient(settings.ToClientConfig(r.logger))
	defer client.Close()

	manager := download.NewManager(settings, client, settings.NewClassifier(), func(event download.ProgressEvent) {
		r.send(ProgressMsg{Event: event})
	})

	stats, err := manager.Run(ctx, r.catalog)
	r.send(RunDoneMsg{Stats: stats, Err: err})
}
