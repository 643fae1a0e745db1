package chat

import (
	"regexp"
	"strings"
	"time"
)

// headerRe matches the export header form
// "[D/M/YYYY, H:MM:SS] Sender Name: body". Day, month and hour may be
// one or two digits; the year may be two or four.
var headerRe = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}), (\d{1,2}:\d{2}:\d{2})\] (.+?): (.*)$`)

// Header is the parsed opening of a new timestamped entry.
type Header struct {
	Sender    string
	Timestamp time.Time
	Body      string // first body fragment
}

// ClassifyLine reports whether line opens a new entry. Any line that
// does not match the header pattern is a continuation of the previous
// entry's body (or noise, if no entry is open).
func ClassifyLine(line string) (Header, bool) {
	m := headerRe.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	ts, err := parseTimestamp(m[1], m[2])
	if err != nil {
		return Header{}, false
	}
	return Header{
		Sender:    strings.TrimSpace(m[3]),
		Timestamp: ts,
		Body:      m[4],
	}, true
}

// parseTimestamp decodes a day-first date plus clock time. Exports mix
// four and two digit years, so both are tried.
func parseTimestamp(date, clock string) (time.Time, error) {
	s := date + " " + clock
	t, err := time.Parse("2/1/2006 15:04:05", s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2/1/06 15:04:05", s)
}
