package log

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// recorder captures events for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) Log(event Event) {
	r.events = append(r.events, event)
}

func TestEventConstructors(t *testing.T) {
	t.Run("Info", func(t *testing.T) {
		e := Info(StageMatch, "request matched")
		if e.Severity != SeverityInfo || e.Stage != StageMatch {
			t.Errorf("unexpected event: %+v", e)
		}
		if e.Timestamp.IsZero() {
			t.Error("expected timestamp")
		}
	})

	t.Run("WarnWithError", func(t *testing.T) {
		e := Warn(StageResolve, "invalid message", errors.New("boom"))
		if e.Err != "boom" {
			t.Errorf("expected error text, got %q", e.Err)
		}
	})

	t.Run("ErrorWithoutCause", func(t *testing.T) {
		e := Error(StageSchedule, "timer failed", nil)
		if e.Err != "" {
			t.Errorf("expected empty error text, got %q", e.Err)
		}
	})
}

func TestEncodeDecodeEvent(t *testing.T) {
	in := Event{
		Timestamp:   time.Now().UTC(),
		DispatchID:  "d1",
		Stage:       StageEmit,
		Severity:    SeverityInfo,
		Category:    0x7E,
		SourceEID:   8,
		PayloadSize: 4,
		DelayMillis: 50,
		Detail:      "response emitted",
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.DispatchID != in.DispatchID || out.Stage != in.Stage ||
		out.Category != in.Category || out.DelayMillis != in.DelayMillis {
		t.Errorf("round-trip mismatch: %+v vs %+v", out, in)
	}
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.cbor")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}

	fl.Log(Info(StageDispatch, "payload received"))
	fl.Log(Info(StageEmit, "response emitted"))

	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Closed logger ignores further events
	fl.Log(Info(StageDispatch, "ignored"))
	if err := fl.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	dec := NewDecoder(f)
	var count int
	for {
		var e Event
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("decode capture: %v", err)
		}
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 captured events, got %d", count)
	}
}

func TestMultiLogger(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	ml := NewMultiLogger(a, b)

	ml.Log(Info(StageBus, "connection accepted"))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("expected fan-out to both loggers, got %d and %d", len(a.events), len(b.events))
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, nil)))

	e := Warn(StageResolve, "unknown vendor id", errors.New("0x1234"))
	e.DispatchID = "d42"
	adapter.Log(e)

	out := buf.String()
	if !strings.Contains(out, "unknown vendor id") || !strings.Contains(out, "d42") {
		t.Errorf("unexpected slog output: %s", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected WARN level, got: %s", out)
	}
}

func TestOrNoop(t *testing.T) {
	if _, ok := OrNoop(nil).(NoopLogger); !ok {
		t.Error("OrNoop(nil) should return NoopLogger")
	}
	r := &recorder{}
	if OrNoop(r) != Logger(r) {
		t.Error("OrNoop should pass through non-nil loggers")
	}
}
