// Package http provides the HTTP client used to fetch listing pages and
// exercise documents.
//
// The Client in this package handles:
//   - Retries with exponential backoff on 500/502/503/504 and transport errors
//   - Separate connect and read timeouts
//   - A User-Agent header on every request
//   - One connection pool per run, released with Close
//
// # Basic Usage
//
//	client := http.NewClient(http.DefaultClientConfig())
//	defer client.Close()
//
//	resp, err := client.Get(ctx, "https://www.ecoles.com.tn/devoirs/9eme")
//
// # Errors
//
// Non-2xx responses are reported as *StatusError. When retries run out the
// error wraps ErrRetriesExhausted:
//
//	if errors.Is(err, http.ErrRetriesExhausted) {
//	    // the server kept failing
//	}
package http
