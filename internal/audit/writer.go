package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/redact"
)

const (
	auditFileMode = 0644
	auditDirMode  = 0755
)

// Event is one guard decision written as a single JSON line. Target and
// Reason are scrubbed before persisting so command text cannot leak
// credentials into the log.
type Event struct {
	Time      time.Time `json:"time"`
	Guard     string    `json:"guard"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Writer appends decision events to <dir>/audit.jsonl.
type Writer struct {
	path string
	mu   sync.Mutex
}

// NewWriter creates an append-only decision log rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{
		path: filepath.Join(dir, "audit.jsonl"),
	}
}

// Append writes one event as one JSONL line.
func (w *Writer) Append(event Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(w.path), auditDirMode); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, auditFileMode)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer file.Close()

	event.Target = redact.Scrub(event.Target)
	event.Reason = redact.Scrub(event.Reason)

	encoded, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	encoded = append(encoded, '\n')

	if _, err := file.Write(encoded); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync audit file: %w", err)
	}
	return nil
}
