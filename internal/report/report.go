// Package report computes display-oriented analytics from a parsed
// chat. Everything here is derived from the immutable parse result;
// nothing feeds back into parsing.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/Destrings2/wachatanalyzer-sub000/internal/chat"
)

// SenderStats holds per-sender analytics.
type SenderStats struct {
	Name           string
	Messages       int
	Media          int
	MeanLength     float64
	MedianLength   float64
	AvgResponseMin float64 // mean gap between a sender's consecutive messages
}

// EmojiCount is one row of the emoji leaderboard.
type EmojiCount struct {
	Emoji string
	Count int
}

// DayCount is one day of activity with its smoothed trend.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int
	Trend float64 // 7-day centered moving average
}

// CallSummary aggregates call events.
type CallSummary struct {
	Total               int
	Completed           int
	Missed              int
	TotalMinutes        int
	AvgCompletedMinutes float64
}

// Report is the full analytics view over one parsed chat.
type Report struct {
	TotalMessages int
	ChatType      chat.ChatType
	Start, End    time.Time
	Senders       []SenderStats
	TopEmojis     []EmojiCount
	Hours         [24]int
	Daily         []DayCount
	Calls         CallSummary
}

const topEmojiLimit = 10

// Compute builds a Report from a parse result.
func Compute(res *chat.Result) Report {
	r := Report{
		TotalMessages: res.Metadata.TotalMessages,
		ChatType:      res.Metadata.Type,
		Start:         res.Metadata.Start,
		End:           res.Metadata.End,
	}

	lengths := make(map[string][]int)
	lastSeen := make(map[string]time.Time)
	gapSum := make(map[string]float64)
	gapCount := make(map[string]int)
	senderOrder := []string{}
	senders := make(map[string]*SenderStats)
	emojiCounts := make(map[string]int)
	dayCounts := make(map[string]int)

	for _, m := range res.Messages {
		s, ok := senders[m.Sender]
		if !ok {
			s = &SenderStats{Name: m.Sender}
			senders[m.Sender] = s
			senderOrder = append(senderOrder, m.Sender)
		}
		s.Messages++
		if m.Kind == chat.KindMedia {
			s.Media++
		}
		lengths[m.Sender] = append(lengths[m.Sender], m.Metadata.CharCount)

		if prev, ok := lastSeen[m.Sender]; ok && m.Timestamp.After(prev) {
			gapSum[m.Sender] += m.Timestamp.Sub(prev).Minutes()
			gapCount[m.Sender]++
		}
		lastSeen[m.Sender] = m.Timestamp

		for _, em := range m.Metadata.Emojis {
			emojiCounts[normalizeEmoji(em)]++
		}

		if !m.Timestamp.IsZero() {
			r.Hours[m.Timestamp.Hour()]++
			dayCounts[m.Timestamp.Format("2006-01-02")]++
		}
	}

	for _, name := range senderOrder {
		s := senders[name]
		s.MeanLength, s.MedianLength = meanMedian(lengths[name])
		if gapCount[name] > 0 {
			s.AvgResponseMin = gapSum[name] / float64(gapCount[name])
		}
		r.Senders = append(r.Senders, *s)
	}
	sort.Slice(r.Senders, func(i, j int) bool {
		if r.Senders[i].Messages != r.Senders[j].Messages {
			return r.Senders[i].Messages > r.Senders[j].Messages
		}
		return strings.ToLower(r.Senders[i].Name) < strings.ToLower(r.Senders[j].Name)
	})

	r.TopEmojis = topEmojis(emojiCounts, topEmojiLimit)
	r.Daily = dailyTrend(dayCounts)
	r.Calls = callSummary(res.Calls)

	return r
}

func callSummary(calls []chat.CallEvent) CallSummary {
	var cs CallSummary
	for _, c := range calls {
		cs.Total++
		switch c.Status {
		case chat.CallMissed:
			cs.Missed++
		default:
			cs.Completed++
			cs.TotalMinutes += c.DurationMinutes
		}
	}
	if cs.Completed > 0 {
		cs.AvgCompletedMinutes = float64(cs.TotalMinutes) / float64(cs.Completed)
	}
	return cs
}

func topEmojis(counts map[string]int, limit int) []EmojiCount {
	out := make([]EmojiCount, 0, len(counts))
	for e, n := range counts {
		out = append(out, EmojiCount{Emoji: e, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Emoji < out[j].Emoji
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// dailyTrend orders per-day counts chronologically and attaches a
// 7-day centered moving average (window shrinks at the edges).
func dailyTrend(counts map[string]int) []DayCount {
	days := make([]DayCount, 0, len(counts))
	for d, n := range counts {
		days = append(days, DayCount{Date: d, Count: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	for i := range days {
		lo := i - 3
		if lo < 0 {
			lo = 0
		}
		hi := i + 3
		if hi >= len(days) {
			hi = len(days) - 1
		}
		sum := 0
		for j := lo; j <= hi; j++ {
			sum += days[j].Count
		}
		days[i].Trend = float64(sum) / float64(hi-lo+1)
	}
	return days
}

func meanMedian(values []int) (mean, median float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	sum := 0
	for _, v := range sorted {
		sum += v
	}
	mean = float64(sum) / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = float64(sorted[mid])
	} else {
		median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return mean, median
}

// normalizeEmoji folds presentation variants of the same emoji into
// one leaderboard row: variation selectors and skin-tone modifiers are
// stripped. The parser keeps the original form; grouping is this
// layer's job.
func normalizeEmoji(e string) string {
	var b strings.Builder
	for _, r := range e {
		if r == 0xFE0F || r == 0xFE0E {
			continue
		}
		if r >= 0x1F3FB && r <= 0x1F3FF {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return e
	}
	return b.String()
}
