package scenario

import (
	"context"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// Watch calls onChange with the re-parsed scenario every time the file at path is
// written, until ctx is cancelled. A file that fails to parse is logged and skipped.
func Watch(ctx context.Context, path string, onChange func(*Scenario)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	log.WithField("path", path).Info("watching scenario")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// editors saving atomically show up as create
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s, err := Load(path)
			if err != nil {
				log.WithFields(log.Fields{"path": path, "err": err}).Error("scenario reload failed")
				continue
			}
			onChange(s)
			_ = watcher.Add(path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithField("err", err).Error("scenario watcher")
		}
	}
}
