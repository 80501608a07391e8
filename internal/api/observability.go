package api

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single API request.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	Err       string
}

// Observer receives events about API calls for diagnostics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer (stderr in practice).
type LogObserver struct {
	w io.Writer
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	outcome := fmt.Sprintf("status=%d", event.Status)
	if event.Err != "" {
		outcome = "err=" + event.Err
	}
	fmt.Fprintf(o.w, "[%s] api_call method=%s path=%s latency_ms=%d %s\n",
		ts, event.Method, event.Path, event.LatencyMs, outcome)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
