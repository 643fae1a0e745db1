package chat

import "strings"

// EntryKind is the decoder's classification of a finalized entry.
type EntryKind int

const (
	EntryText EntryKind = iota
	EntryMedia
	EntryCall
	EntrySystem
)

// Decoded carries the outcome of decoding one raw entry.
type Decoded struct {
	Kind  EntryKind
	Media MediaType
	Call  *CallEvent
}

var mediaTokens = []struct {
	token string
	typ   MediaType
}{
	{"<image omitted>", MediaImage},
	{"<video omitted>", MediaVideo},
	{"<audio omitted>", MediaAudio},
	{"<document omitted>", MediaDocument},
	{"<sticker omitted>", MediaSticker},
	{"<gif omitted>", MediaGIF},
}

// systemPhrases cover group lifecycle, membership changes, number
// changes and encryption/security notices. Notices are matched on
// content rather than sender name: real exports attribute them to the
// chat itself, not to a distinct "System" sender.
var systemPhrases = []string{
	"messages and calls are end-to-end encrypted",
	"your security code with",
	"security code changed",
	"changed their phone number",
	"changed to a new number",
	"created group",
	"created this group",
	"changed the subject",
	"changed this group's icon",
	"changed the group description",
	"joined using this group's invite link",
	"you're now an admin",
	"added you",
	"you were added",
	"was added",
	"was removed",
	"removed you",
}

// DecodeEntry classifies a finalized entry. First match wins: media
// placeholder, call phrase, system notice, then plain text. There is
// no unrecognized failure mode; anything unmatched is text.
func DecodeEntry(e RawEntry) Decoded {
	lower := strings.ToLower(e.Body)
	for _, mt := range mediaTokens {
		if strings.Contains(lower, mt.token) {
			return Decoded{Kind: EntryMedia, Media: mt.typ}
		}
	}
	if call := decodeCall(e, lower); call != nil {
		return Decoded{Kind: EntryCall, Call: call}
	}
	if isSystemNotice(lower) {
		return Decoded{Kind: EntrySystem}
	}
	return Decoded{Kind: EntryText}
}

// decodeCall recognizes {voice,video} x {missed, completed}. Completed
// calls hand the body to the duration parser; a phrase with no
// duration yields 0.
func decodeCall(e RawEntry, lower string) *CallEvent {
	var typ CallType
	switch {
	case strings.Contains(lower, "voice call"):
		typ = CallVoice
	case strings.Contains(lower, "video call"):
		typ = CallVideo
	default:
		return nil
	}

	call := &CallEvent{
		Initiator: e.Sender,
		Timestamp: e.Timestamp,
		Type:      typ,
		Status:    CallCompleted,
	}
	if strings.Contains(lower, "missed") {
		call.Status = CallMissed
		return call
	}
	call.DurationMinutes = ParseDuration(lower)
	return call
}

func isSystemNotice(lower string) bool {
	for _, p := range systemPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	// Bare membership notices: "Alice left", "Alice left the group".
	if strings.HasSuffix(lower, " left") || strings.HasSuffix(lower, " left the group") {
		return true
	}
	return false
}
