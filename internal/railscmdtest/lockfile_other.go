//go:build !unix

// Transcripts only run on unix; elsewhere the lock is a no-op.
package main

import (
	"context"
	"time"
)

func acquireLockFile(context.Context, string, time.Duration) (func(), error) {
	return func() {}, nil
}
