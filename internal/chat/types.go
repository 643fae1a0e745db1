package chat

import "time"

// MessageKind distinguishes plain text from media placeholders.
type MessageKind string

const (
	KindText  MessageKind = "text"
	KindMedia MessageKind = "media"
)

// MediaType identifies which placeholder token a media message carried.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
	MediaSticker  MediaType = "sticker"
	MediaGIF      MediaType = "gif"
)

// Metadata holds data derived from a message body: token counts plus
// every emoji grapheme and URL in original order, duplicates included.
type Metadata struct {
	WordCount int
	CharCount int
	Emojis    []string
	URLs      []string
}

// HasEmoji reports whether the body contained at least one emoji.
func (m Metadata) HasEmoji() bool { return len(m.Emojis) > 0 }

// HasURL reports whether the body contained at least one URL.
func (m Metadata) HasURL() bool { return len(m.URLs) > 0 }

// Message is one finalized text or media message. Immutable once
// produced.
type Message struct {
	Sender    string
	Timestamp time.Time
	Kind      MessageKind
	Media     MediaType // set only when Kind == KindMedia
	Content   string
	Metadata  Metadata
}

// CallType identifies voice vs video calls.
type CallType string

const (
	CallVoice CallType = "voice"
	CallVideo CallType = "video"
)

// CallStatus is the call outcome. Missed calls always carry a zero
// duration.
type CallStatus string

const (
	CallCompleted CallStatus = "completed"
	CallMissed    CallStatus = "missed"
)

// CallEvent is one decoded call entry.
type CallEvent struct {
	Initiator       string
	Timestamp       time.Time
	Type            CallType
	Status          CallStatus
	DurationMinutes int
}

// Participant accumulates per-sender stats. Counts only increase,
// FirstMessage only decreases, LastMessage only increases.
type Participant struct {
	Name         string
	MessageCount int
	MediaCount   int
	FirstMessage time.Time
	LastMessage  time.Time
}

// ChatType is inferred from the number of distinct message senders.
type ChatType string

const (
	ChatIndividual ChatType = "individual"
	ChatGroup      ChatType = "group"
)

// ChatMetadata holds chat-level aggregates, final only once the full
// input has been consumed.
type ChatMetadata struct {
	TotalMessages int
	Type          ChatType
	Start         time.Time
	End           time.Time
	ExportDate    time.Time
}

// RawEntry is an opened timestamped entry whose body may still be
// accumulating continuation lines.
type RawEntry struct {
	Sender    string
	Timestamp time.Time
	Body      string
}

// Record is one finalized export record: exactly one of Message or
// Call is set.
type Record struct {
	Message *Message
	Call    *CallEvent
}

// Result is the complete outcome of parsing one export. Messages and
// calls appear in input line order.
type Result struct {
	Messages     []Message
	Calls        []CallEvent
	Participants []Participant
	Metadata     ChatMetadata
}
