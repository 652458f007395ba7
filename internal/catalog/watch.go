package catalog

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce groups the burst of events editors emit for one save.
const debounce = 200 * time.Millisecond

// Watch imports path once, then re-imports whenever the file changes, until
// ctx is cancelled. Catalogs that are not newer are skipped quietly. onImport
// may be nil.
func (im *Importer) Watch(ctx context.Context, path string, onImport func(Result)) error {
	im.reload(ctx, path, onImport)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory so atomic rename-on-save is still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			im.reload(ctx, path, onImport)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Catalog watcher error", "error", err)
		}
	}
}

func (im *Importer) reload(ctx context.Context, path string, onImport func(Result)) {
	res, err := im.ImportFile(ctx, path, false)
	switch {
	case errors.Is(err, ErrNotNewer):
		slog.Debug("Catalog unchanged", "path", path, "version", res.Previous)
	case err != nil:
		slog.Warn("Catalog import failed", "path", path, "error", err)
	default:
		slog.Info("Catalog imported", "path", path, "version", res.Version, "courses", res.Courses)
		if onImport != nil {
			onImport(res)
		}
	}
}
