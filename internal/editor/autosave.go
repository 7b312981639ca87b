package editor

import (
	"context"
	"time"
)

// DefaultAutoSaveInterval is how often RunAutoSave saves by default.
const DefaultAutoSaveInterval = 5 * time.Minute

// RunAutoSave saves the document every interval until ctx is done. The save
// itself runs inside post so it happens on the goroutine that owns the
// session. A non-positive interval disables auto save.
func (s *Session) RunAutoSave(ctx context.Context, interval time.Duration, post func(func())) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			post(func() { s.AutoSave() })
		}
	}
}

// AutoSave writes the document to its path if it has one and has unsaved
// changes. It reports whether a file was written.
func (s *Session) AutoSave() bool {
	path := s.doc.Path()
	if path == "" || !s.doc.Dirty() {
		s.logAction("auto save skipped")
		return false
	}
	if err := s.write(path); err != nil {
		s.logAction("auto save failed")
		return false
	}
	s.notify.AutoSave(path)
	s.logAction("auto saved")
	return true
}
