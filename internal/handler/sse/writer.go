package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Writer serializes SSE frames onto one response. Events and keep-alives are
// written from different goroutines, so every frame is written and flushed
// under a lock.
type Writer struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	clientID string
}

var _ KeepAliveWriter = (*Writer)(nil)

// NewWriter creates a frame writer for an already-started event stream
func NewWriter(w http.ResponseWriter, flusher http.Flusher, clientID string) *Writer {
	return &Writer{
		w:        w,
		flusher:  flusher,
		clientID: clientID,
	}
}

// ClientID identifies the stream in logs
func (s *Writer) ClientID() string {
	return s.clientID
}

// WriteEvent writes a named event with a JSON data line and flushes
func (s *Writer) WriteEvent(event string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment (": keepalive") and flushes
func (s *Writer) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive failed: %w", err)
	}
	s.flusher.Flush()
	return nil
}
