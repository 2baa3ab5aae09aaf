package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// Watch follows queue create/unlink events on the mqueue filesystem
// until the context is cancelled, printing one line per event. With a
// non-empty filter only the named queues are reported.
func (a *Admin) Watch(ctx context.Context, dir string, filter []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		if os.IsNotExist(err) {
			return fmt.Errorf("mqueue filesystem not mounted at %s: %w", dir, unix.ENOSYS)
		}
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	want := make(map[string]bool, len(filter))
	for _, queue := range filter {
		want[queue] = true
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Closing the watcher ends the event loop below.
		<-ctx.Done()
		return watcher.Close()
	})
	g.Go(func() error {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				name := "/" + filepath.Base(event.Name)
				if len(want) > 0 && !want[name] {
					continue
				}
				switch {
				case event.Op.Has(fsnotify.Create):
					fmt.Fprintf(a.Out, "create %s\n", name)
				case event.Op.Has(fsnotify.Remove):
					fmt.Fprintf(a.Out, "remove %s\n", name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(a.Err, "warning: watch: %v\n", err)
			}
		}
	})
	return g.Wait()
}
