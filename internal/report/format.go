package report

import (
	"fmt"
	"strings"
)

// Format renders a Report as aligned terminal output.
func Format(r Report, chatName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "wachat parse %s\n", chatName)

	b.WriteString("\nOverview\n")
	fmt.Fprintf(&b, "  %-20s %d\n", "messages", r.TotalMessages)
	fmt.Fprintf(&b, "  %-20s %s\n", "chat type", string(r.ChatType))
	if !r.Start.IsZero() {
		fmt.Fprintf(&b, "  %-20s %s – %s\n", "date range",
			r.Start.Format("2 Jan 2006"), r.End.Format("2 Jan 2006"))
	}

	if len(r.Senders) > 0 {
		b.WriteString("\nSenders\n")
		for _, s := range r.Senders {
			fmt.Fprintf(&b, "  %-24s %5d msgs   %4d media   avg %5.1f ch   median %5.1f ch",
				s.Name, s.Messages, s.Media, s.MeanLength, s.MedianLength)
			if s.AvgResponseMin > 0 {
				fmt.Fprintf(&b, "   resp %s", formatMinutes(s.AvgResponseMin))
			}
			b.WriteString("\n")
		}
	}

	if r.Calls.Total > 0 {
		b.WriteString("\nCalls\n")
		fmt.Fprintf(&b, "  %-20s %d\n", "total", r.Calls.Total)
		fmt.Fprintf(&b, "  %-20s %d\n", "completed", r.Calls.Completed)
		fmt.Fprintf(&b, "  %-20s %d\n", "missed", r.Calls.Missed)
		fmt.Fprintf(&b, "  %-20s %s\n", "talk time", formatMinutes(float64(r.Calls.TotalMinutes)))
		fmt.Fprintf(&b, "  %-20s %s\n", "avg completed", formatMinutes(r.Calls.AvgCompletedMinutes))
	}

	if len(r.TopEmojis) > 0 {
		b.WriteString("\nTop emojis\n")
		for _, e := range r.TopEmojis {
			fmt.Fprintf(&b, "  %-4s %d\n", e.Emoji, e.Count)
		}
	}

	if busiest, count := busiestHour(r.Hours); count > 0 {
		b.WriteString("\nActivity\n")
		fmt.Fprintf(&b, "  %-20s %02d:00–%02d:59 (%d messages)\n", "busiest hour", busiest, busiest, count)
		fmt.Fprintf(&b, "  %-20s %d\n", "active days", len(r.Daily))
		if peak := peakDay(r.Daily); peak.Count > 0 {
			fmt.Fprintf(&b, "  %-20s %s (%d messages)\n", "busiest day", peak.Date, peak.Count)
		}
	}

	return b.String()
}

func busiestHour(hours [24]int) (hour, count int) {
	for h, n := range hours {
		if n > count {
			hour, count = h, n
		}
	}
	return hour, count
}

func peakDay(days []DayCount) DayCount {
	var peak DayCount
	for _, d := range days {
		if d.Count > peak.Count {
			peak = d
		}
	}
	return peak
}

func formatMinutes(min float64) string {
	if min >= 60 {
		h := int(min) / 60
		m := int(min) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%.1fm", min)
}
