package sse

import (
	"log/slog"
	"sync"
	"time"
)

// KeepAliveStrategy defines how keep-alive pings are sent on an open stream
type KeepAliveStrategy interface {
	// Start begins sending pings through writer. The returned channel closes
	// when the strategy stops, either via Stop or after a failed write.
	Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{}

	// Stop terminates the keep-alive loop. Safe to call more than once.
	Stop()
}

// KeepAliveWriter writes a single keep-alive message
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// TickerKeepAlive sends pings at a fixed interval until stopped or a write fails
type TickerKeepAlive struct {
	interval time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewTickerKeepAlive creates a ticker-based keep-alive strategy
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs the ping loop in its own goroutine
func (k *TickerKeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	ticker := time.NewTicker(k.interval)
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Warn("keep-alive write failed, stopping",
						"error", err,
					)
					return
				}

			case <-k.done:
				return
			}
		}
	}()

	return stopped
}

// Stop terminates the keep-alive loop
func (k *TickerKeepAlive) Stop() {
	k.stopOnce.Do(func() { close(k.done) })
}
