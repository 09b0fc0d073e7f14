package http

import (
	"io"
	"time"
)

// idleTimeoutReader cancels the request when a single Read stalls for longer
// than the timeout. The cancel func must abort the request the body belongs to.
type idleTimeoutReader struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
}

func newIdleTimeoutReader(r io.Reader, timeout time.Duration, cancel func()) io.Reader {
	if timeout <= 0 {
		return r
	}
	return &idleTimeoutReader{
		r:       r,
		timeout: timeout,
		timer:   time.AfterFunc(timeout, cancel),
	}
}

func (t *idleTimeoutReader) Read(p []byte) (int, error) {
	t.timer.Reset(t.timeout)
	n, err := t.r.Read(p)
	if err != nil {
		t.timer.Stop()
	}
	return n, err
}
