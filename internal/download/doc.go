// Package download provides the orchestration logic for fetching the
// exercise catalog and sorting the files on disk.
//
// # Manager
//
// The Manager walks the catalog one source URL at a time:
//
//  1. Fetch the listing page (with retries, see package http)
//  2. Parse its attachment entries, or treat the page itself as a PDF
//  3. Pick a difficulty for each entry
//  4. Download the entry
//  5. Save it to <root>/<year>/<subject>/Quarter <n>/<difficulty>/<title>.pdf
//
// # Basic Usage
//
//	client := http.NewClient(settings.ToClientConfig(logger))
//	defer client.Close()
//
//	manager := download.NewManager(settings, client, settings.NewClassifier(), func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	stats, err := manager.Run(ctx, catalog)
//
// # Error Isolation
//
// A listing that cannot be fetched, an entry that cannot be downloaded and a
// file that cannot be written are each reported with LevelError and skipped;
// the run continues with the next item. Run only returns an error when the
// output root cannot be created or ctx is cancelled.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	    ...
//	}
package download
