package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/logger"
)

// watchSettle is how long a file must stay quiet before it is uploaded,
// so partially-written files are not ingested.
const watchSettle = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and upload new documents",
	Long: `Watches a directory and uploads every supported document that is
created or modified in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("reading watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for documents. Press Ctrl+C to stop.\n", dir)

	// Writes arrive in bursts; a per-path timer delays the upload until
	// the file settles.
	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	uploadLater := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if timer, ok := pending[path]; ok {
			timer.Stop()
		}
		pending[path] = time.AfterFunc(watchSettle, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()

			doc, err := documentService.Upload(ctx, tenant(), path)
			if err != nil {
				logger.Warn("Upload of %s failed: %v", path, err)
				cmd.Printf("Skipped %s: %v\n", path, err)
				return
			}
			cmd.Printf("Uploaded %s (%s)\n", doc.Filename, doc.ID)
		})
	}

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopping...")
			if processingWaiter != nil {
				processingWaiter.Wait()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if textExtractor == nil || !textExtractor.Supports(event.Name) {
				continue
			}
			uploadLater(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
