// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagnostics collects the structured events the core reports for
// expected, non-fatal conditions (spec.md section 6: "rule not recognised,
// unknown type encountered, pass converged, cycles in protocol
// inheritance"). It mirrors the teacher's refactoring.Log/Entry field for
// field (refactoring/log.go), widened with a Kind and an optional source
// range from objcparse instead of a go/token position.
package diagnostics

import (
	"bytes"
	"fmt"

	"github.com/godoctor/swiftrewriter/objcparse"
)

// Severity indicates whether an Event is purely informational, a warning
// worth surfacing, or an error a caller should act on.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies what produced an Event, so a caller can filter the stream
// (e.g. "show me only unknown-type events") without string matching on
// Message.
type Kind int

const (
	UnrecognisedRule Kind = iota
	UnknownType
	PassConverged
	ProtocolInheritanceCycle
	Other
)

// Event is one entry in a Stream. Range is the zero value when the event
// has no associated source location (e.g. PassConverged).
type Event struct {
	Severity Severity
	Kind     Kind
	Message  string
	Range    objcparse.SourceRange
}

func (e Event) String() string {
	var buf bytes.Buffer
	if e.Severity != Info {
		buf.WriteString(e.Severity.String())
		buf.WriteString(": ")
	}
	buf.WriteString(e.Message)
	return buf.String()
}

// Stream accumulates Events in the order they are reported. It is not
// safe for concurrent use, matching the single-threaded, cooperative
// execution model of the rest of the core (spec section 5).
type Stream struct {
	events []Event
}

// NewStream returns an empty Stream.
func NewStream() *Stream {
	return &Stream{}
}

// Events returns every event reported so far, in report order.
func (s *Stream) Events() []Event { return s.events }

// Report appends an Event to the stream.
func (s *Stream) Report(e Event) {
	s.events = append(s.events, e)
}

// Reportf is a convenience wrapper that formats Message with fmt.Sprintf.
func (s *Stream) Reportf(severity Severity, kind Kind, rng objcparse.SourceRange, format string, args ...interface{}) {
	s.Report(Event{Severity: severity, Kind: kind, Message: fmt.Sprintf(format, args...), Range: rng})
}

// HasErrors reports whether any reported event has Error severity.
func (s *Stream) HasErrors() bool {
	for _, e := range s.events {
		if e.Severity == Error {
			return true
		}
	}
	return false
}

// ByKind returns every event of the given kind, in report order.
func (s *Stream) ByKind(k Kind) []Event {
	var out []Event
	for _, e := range s.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
