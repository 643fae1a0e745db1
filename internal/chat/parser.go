package chat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB max line

// Parser threads the open-entry accumulator through a line-by-line
// scan. Feed lines in input order; each call returns the record
// finalized by that line, if any. Flush closes the last open entry at
// end of input.
type Parser struct {
	open *RawEntry
}

// Line consumes one input line. A header line flushes the previously
// open entry and opens a new one; any other line extends the open
// body with a newline separator. Continuation lines with no open
// entry are dropped, so unrecognized leading content never fails the
// parse.
func (p *Parser) Line(line string) *Record {
	line = strings.TrimSuffix(line, "\r")
	if h, ok := ClassifyLine(line); ok {
		rec := p.Flush()
		p.open = &RawEntry{Sender: h.Sender, Timestamp: h.Timestamp, Body: h.Body}
		return rec
	}
	if p.open != nil {
		p.open.Body += "\n" + line
	}
	return nil
}

// Flush finalizes the currently open entry, if any. System notices
// produce no record.
func (p *Parser) Flush() *Record {
	if p.open == nil {
		return nil
	}
	e := *p.open
	p.open = nil
	return finalize(e)
}

// finalize decodes a raw entry into at most one message or call.
func finalize(e RawEntry) *Record {
	d := DecodeEntry(e)
	switch d.Kind {
	case EntryCall:
		return &Record{Call: d.Call}
	case EntrySystem:
		return nil
	case EntryMedia:
		return &Record{Message: &Message{
			Sender:    e.Sender,
			Timestamp: e.Timestamp,
			Kind:      KindMedia,
			Media:     d.Media,
			Content:   e.Body,
			Metadata:  ExtractMetadata(e.Body),
		}}
	default:
		return &Record{Message: &Message{
			Sender:    e.Sender,
			Timestamp: e.Timestamp,
			Kind:      KindText,
			Content:   e.Body,
			Metadata:  ExtractMetadata(e.Body),
		}}
	}
}

// Parse runs the full pipeline synchronously over r and returns the
// assembled result. Per-line problems degrade to safe defaults rather
// than errors; only scanner failures surface.
func Parse(r io.Reader) (*Result, error) {
	res := &Result{}
	agg := NewAggregator()
	var p Parser

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		collect(res, agg, p.Line(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan export: %w", err)
	}
	collect(res, agg, p.Flush())

	res.Participants, res.Metadata = agg.Finalize()
	return res, nil
}

func collect(res *Result, agg *Aggregator, rec *Record) {
	if rec == nil {
		return
	}
	agg.Observe(*rec)
	switch {
	case rec.Message != nil:
		res.Messages = append(res.Messages, *rec.Message)
	case rec.Call != nil:
		res.Calls = append(res.Calls, *rec.Call)
	}
}

// ParseFile parses an export file, transparently decompressing
// zstd-compressed archives.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		return Parse(dec)
	}
	return Parse(f)
}
