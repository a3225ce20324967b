package git

import (
	"sync"
	"time"
)

// ProgressFunc receives the total number of bytes transferred so far.
type ProgressFunc func(bytesTransferred int64)

// Reporting bounds: the callback fires at most once per interval unless the
// byte delta alone justifies a report.
const (
	progressInterval  = 2 * time.Second
	progressByteDelta = 5 * 1024 * 1024
)

// progressWriter adapts go-git's sideband progress stream (an io.Writer) into
// a bounded-rate callback.
type progressWriter struct {
	mu         sync.Mutex
	onProgress ProgressFunc
	total      int64
	lastReport time.Time
	lastBytes  int64
	now        func() time.Time
}

func newProgressWriter(onProgress ProgressFunc) *progressWriter {
	return &progressWriter{
		onProgress: onProgress,
		now:        time.Now,
	}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.total += int64(len(p))
	if w.onProgress == nil {
		return len(p), nil
	}

	now := w.now()
	if now.Sub(w.lastReport) < progressInterval && w.total-w.lastBytes < progressByteDelta {
		return len(p), nil
	}

	w.lastReport = now
	w.lastBytes = w.total
	w.onProgress(w.total)
	return len(p), nil
}
