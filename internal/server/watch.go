package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of events editors and copy tools emit per save.
const debounce = 250 * time.Millisecond

// Watch reloads the dataset whenever its file is written or replaced, until ctx is done.
// The parent directory is watched so atomic rename-into-place saves are seen.
func (s *Server) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target, err := filepath.Abs(s.path)
	if err != nil {
		return fmt.Errorf("resolve dataset path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	s.log.Printf("watching %s", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			if err := s.Reload(); err != nil {
				s.log.Printf("⚠ %v (keeping previous dataset)", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Printf("⚠ watcher: %v", err)
		}
	}
}
