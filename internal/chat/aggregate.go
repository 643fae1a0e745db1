package chat

import "time"

// Aggregator folds the decoded record stream into participant and
// chat-level aggregates in a single pass. It observes every record
// once, in input order, and yields final values only after the whole
// input has been consumed.
//
// Call events extend the chat date range but deliberately do not
// create or update participants; only messages drive per-sender stats.
type Aggregator struct {
	participants  map[string]*Participant
	order         []string // first-seen sender order
	totalMessages int
	start, end    time.Time
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{participants: make(map[string]*Participant)}
}

// Observe folds one record into the running aggregates.
func (a *Aggregator) Observe(rec Record) {
	switch {
	case rec.Message != nil:
		a.observeMessage(rec.Message)
	case rec.Call != nil:
		a.observeTime(rec.Call.Timestamp)
	}
}

func (a *Aggregator) observeMessage(m *Message) {
	a.totalMessages++
	a.observeTime(m.Timestamp)

	p, ok := a.participants[m.Sender]
	if !ok {
		p = &Participant{
			Name:         m.Sender,
			FirstMessage: m.Timestamp,
			LastMessage:  m.Timestamp,
		}
		a.participants[m.Sender] = p
		a.order = append(a.order, m.Sender)
	}

	p.MessageCount++
	if m.Kind == KindMedia {
		p.MediaCount++
	}
	if m.Timestamp.Before(p.FirstMessage) {
		p.FirstMessage = m.Timestamp
	}
	if m.Timestamp.After(p.LastMessage) {
		p.LastMessage = m.Timestamp
	}
}

func (a *Aggregator) observeTime(t time.Time) {
	if t.IsZero() {
		return
	}
	if a.start.IsZero() || t.Before(a.start) {
		a.start = t
	}
	if a.end.IsZero() || t.After(a.end) {
		a.end = t
	}
}

// Finalize returns participants in first-seen order plus the completed
// chat metadata. Exactly two distinct senders make an individual chat;
// any other cardinality, including none, is treated as a group.
func (a *Aggregator) Finalize() ([]Participant, ChatMetadata) {
	parts := make([]Participant, 0, len(a.order))
	for _, name := range a.order {
		parts = append(parts, *a.participants[name])
	}

	ct := ChatGroup
	if len(a.order) == 2 {
		ct = ChatIndividual
	}

	return parts, ChatMetadata{
		TotalMessages: a.totalMessages,
		Type:          ct,
		Start:         a.start,
		End:           a.end,
		ExportDate:    time.Now(),
	}
}
