// Package runlog records every model call made on behalf of a request so the
// prompt and raw output can be inspected later.
package runlog

import (
	"context"
	"time"
)

// Record is one model call. Temperature is nil when the endpoint default was
// used.
type Record struct {
	TS          time.Time `json:"ts"`
	Endpoint    string    `json:"endpoint"`
	Model       string    `json:"model"`
	Temperature *float64  `json:"temperature"`
	InputText   string    `json:"input_text,omitempty"`
	Prompt      string    `json:"prompt"`
	Raw         string    `json:"raw"`
}

// Sink stores records. Implementations must be safe for concurrent use.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// NopSink discards records.
type NopSink struct{}

// Append implements Sink.
func (NopSink) Append(context.Context, Record) error { return nil }
