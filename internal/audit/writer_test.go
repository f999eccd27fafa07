package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriter_AppendsOneLinePerEvent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	events := []Event{
		{Time: time.Now().UTC(), Guard: "shell_command", Action: "block", Target: "rm -rf /", Reason: "Catastrophic deletion detected"},
		{Time: time.Now().UTC(), Guard: "delegation", Action: "allow", RequestID: "req-7"},
	}
	for _, e := range events {
		if err := w.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	file, err := os.Open(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("open audit log: %v", err)
	}
	defer file.Close()

	var lines []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		lines = append(lines, e)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("expected 2 events, got %d", len(lines))
	}
	if lines[0].Guard != "shell_command" || lines[0].Action != "block" {
		t.Fatalf("unexpected first event: %+v", lines[0])
	}
	if lines[1].RequestID != "req-7" {
		t.Fatalf("expected request id to round-trip, got %+v", lines[1])
	}
}

func TestWriter_ScrubsCredentialsBeforePersisting(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	err := w.Append(Event{
		Time:   time.Now().UTC(),
		Guard:  "shell_command",
		Action: "block",
		Target: `export API_KEY="sk-secret-value" && deploy`,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "audit.jsonl"))
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	if strings.Contains(string(data), "sk-secret-value") {
		t.Fatal("credential leaked into the audit log")
	}
	if !strings.Contains(string(data), "[REDACTED CREDENTIAL]") {
		t.Fatalf("expected redaction placeholder, got %s", data)
	}
}

func TestWriter_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	w := NewWriter(dir)

	if err := w.Append(Event{Time: time.Now().UTC(), Guard: "file_write", Action: "allow"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "audit.jsonl")); err != nil {
		t.Fatalf("audit file missing: %v", err)
	}
}
