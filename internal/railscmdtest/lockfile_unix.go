//go:build unix

// Advisory locking for `railscmdtest` on unix. Parallel transcript runs
// share `/tmp/railskit-transcripts`, so setup that touches shared paths
// holds an flock on `.lock` first.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

const lockPollInterval = 25 * time.Millisecond

func acquireLockFile(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	fd := int(f.Fd())

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()
	for {
		switch err := syscall.Flock(fd, syscall.LOCK_EX|syscall.LOCK_NB); {
		case err == nil:
			return func() {
				_ = syscall.Flock(fd, syscall.LOCK_UN)
				_ = f.Close()
			}, nil
		case !errors.Is(err, syscall.EWOULDBLOCK):
			_ = f.Close()
			return nil, fmt.Errorf("railscmdtest: lock %s: %w", path, err)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, fmt.Errorf("railscmdtest: waiting on lock %s: %w", path, ctx.Err())
		case <-ticker.C:
		}
	}
}
