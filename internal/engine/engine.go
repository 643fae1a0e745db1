// Package engine drives the chat parsing pipeline over a whole export,
// delivering results incrementally as typed events. The host submits
// the full export content and consumes progress, chunk and completion
// events from a channel; the engine never blocks the caller on parse
// work.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
)

const (
	// DefaultChunkSize bounds how many finalized records one chunk
	// event carries.
	DefaultChunkSize = 200

	// DefaultProgressEvery is the line-count cadence for progress
	// events, independent of chunk size.
	DefaultProgressEvery = 500
)

// ErrBusy is returned when a parse is requested while a prior one is
// still in flight. The engine never interleaves two parses.
var ErrBusy = errors.New("engine: parse already in progress")

// Event is a tagged variant delivered on the engine's event channel.
type Event interface{ event() }

// Progress reports how far the scan has advanced.
type Progress struct {
	Processed int
	Total     int
	Ratio     float64
}

// Chunk carries a bounded batch of finalized messages and calls, in
// input order. IsLast is true only on the final batch.
type Chunk struct {
	Messages []chat.Message
	Calls    []chat.CallEvent
	IsLast   bool
}

// Complete carries the aggregates that require the full pass. Messages
// and calls were already delivered via chunks and are not re-carried.
type Complete struct {
	Participants []chat.Participant
	Metadata     chat.ChatMetadata
}

// Error reports an unrecoverable failure. A best-effort Complete still
// follows with whatever was aggregated.
type Error struct{ Err error }

func (Progress) event() {}
func (Chunk) event()    {}
func (Complete) event() {}
func (Error) event()    {}

// Engine runs one parse at a time. It is the sole mutator of its parse
// state; the mutex only guards the busy flag at the command boundary.
type Engine struct {
	chunkSize     int
	progressEvery int

	mu      sync.Mutex
	running bool
}

// Option adjusts engine tuning.
type Option func(*Engine)

// WithChunkSize overrides the chunk record threshold.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithProgressEvery overrides the progress line cadence.
func WithProgressEvery(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.progressEvery = n
		}
	}
}

// New returns an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		chunkSize:     DefaultChunkSize,
		progressEvery: DefaultProgressEvery,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse starts an asynchronous parse of content and returns the event
// channel for this run. The channel is closed after the terminal
// Complete event. Returns ErrBusy if a parse is already running.
func (e *Engine) Parse(content string) (<-chan Event, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer e.release()
		e.run(content, func(ev Event) { events <- ev })
	}()
	return events, nil
}

// Run executes a parse synchronously, invoking emit for every event in
// temporal order. It honors the same single-parse policy as Parse.
func (e *Engine) Run(content string, emit func(Event)) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()
	e.run(content, emit)
	return nil
}

func (e *Engine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return ErrBusy
	}
	e.running = true
	return nil
}

func (e *Engine) release() {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// run is the sequential pass over all lines. Per-line problems resolve
// to safe defaults inside the chat package; only a pipeline panic is
// surfaced, and even then aggregation so far is still completed.
func (e *Engine) run(content string, emit func(Event)) {
	lines := splitLines(content)
	total := len(lines)

	agg := chat.NewAggregator()
	var parser chat.Parser
	var msgs []chat.Message
	var calls []chat.CallEvent

	flush := func(last bool) {
		emit(Chunk{Messages: msgs, Calls: calls, IsLast: last})
		msgs, calls = nil, nil
	}

	observe := func(rec *chat.Record) {
		if rec == nil {
			return
		}
		agg.Observe(*rec)
		switch {
		case rec.Message != nil:
			msgs = append(msgs, *rec.Message)
		case rec.Call != nil:
			calls = append(calls, *rec.Call)
		}
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("parse pipeline: %v", r)
			}
		}()
		for i, line := range lines {
			observe(parser.Line(line))
			if len(msgs)+len(calls) >= e.chunkSize {
				flush(false)
			}
			if (i+1)%e.progressEvery == 0 && i+1 < total {
				emit(Progress{
					Processed: i + 1,
					Total:     total,
					Ratio:     float64(i+1) / float64(total),
				})
			}
		}
		observe(parser.Flush())
		return nil
	}()
	if err != nil {
		emit(Error{Err: err})
	}

	if total > 0 {
		emit(Progress{Processed: total, Total: total, Ratio: 1})
	}
	flush(true)

	participants, metadata := agg.Finalize()
	emit(Complete{Participants: participants, Metadata: metadata})
}

// splitLines splits the export into lines without treating a trailing
// newline as an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}
