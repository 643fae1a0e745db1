package chat

import (
	"testing"
	"time"
)

func entry(body string) RawEntry {
	return RawEntry{
		Sender:    "Alice",
		Timestamp: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC),
		Body:      body,
	}
}

func TestDecodeEntry_Media(t *testing.T) {
	cases := []struct {
		body string
		want MediaType
	}{
		{"<image omitted>", MediaImage},
		{"<video omitted>", MediaVideo},
		{"<audio omitted>", MediaAudio},
		{"<document omitted>", MediaDocument},
		{"<sticker omitted>", MediaSticker},
		{"<GIF omitted>", MediaGIF},
	}
	for _, c := range cases {
		d := DecodeEntry(entry(c.body))
		if d.Kind != EntryMedia {
			t.Errorf("DecodeEntry(%q).Kind = %v, want EntryMedia", c.body, d.Kind)
			continue
		}
		if d.Media != c.want {
			t.Errorf("DecodeEntry(%q).Media = %q, want %q", c.body, d.Media, c.want)
		}
	}
}

func TestDecodeEntry_CompletedVoiceCall(t *testing.T) {
	d := DecodeEntry(entry("Voice call - 5 minutes"))
	if d.Kind != EntryCall {
		t.Fatalf("Kind = %v, want EntryCall", d.Kind)
	}
	if d.Call.Type != CallVoice {
		t.Errorf("Type = %q, want voice", d.Call.Type)
	}
	if d.Call.Status != CallCompleted {
		t.Errorf("Status = %q, want completed", d.Call.Status)
	}
	if d.Call.DurationMinutes != 5 {
		t.Errorf("DurationMinutes = %d, want 5", d.Call.DurationMinutes)
	}
	if d.Call.Initiator != "Alice" {
		t.Errorf("Initiator = %q, want Alice", d.Call.Initiator)
	}
}

func TestDecodeEntry_CompletedVideoCallWithHours(t *testing.T) {
	d := DecodeEntry(entry("Video call - 1 hour 30 minutes"))
	if d.Kind != EntryCall {
		t.Fatalf("Kind = %v, want EntryCall", d.Kind)
	}
	if d.Call.Type != CallVideo {
		t.Errorf("Type = %q, want video", d.Call.Type)
	}
	if d.Call.DurationMinutes != 90 {
		t.Errorf("DurationMinutes = %d, want 90", d.Call.DurationMinutes)
	}
}

func TestDecodeEntry_MissedCalls(t *testing.T) {
	for _, body := range []string{"Missed voice call", "Missed video call"} {
		d := DecodeEntry(entry(body))
		if d.Kind != EntryCall {
			t.Fatalf("DecodeEntry(%q).Kind = %v, want EntryCall", body, d.Kind)
		}
		if d.Call.Status != CallMissed {
			t.Errorf("DecodeEntry(%q).Status = %q, want missed", body, d.Call.Status)
		}
		if d.Call.DurationMinutes != 0 {
			t.Errorf("DecodeEntry(%q).DurationMinutes = %d, want 0", body, d.Call.DurationMinutes)
		}
	}
}

func TestDecodeEntry_CallWithoutDuration(t *testing.T) {
	d := DecodeEntry(entry("Voice call"))
	if d.Kind != EntryCall {
		t.Fatalf("Kind = %v, want EntryCall", d.Kind)
	}
	if d.Call.Status != CallCompleted {
		t.Errorf("Status = %q, want completed", d.Call.Status)
	}
	if d.Call.DurationMinutes != 0 {
		t.Errorf("DurationMinutes = %d, want 0", d.Call.DurationMinutes)
	}
}

func TestDecodeEntry_SystemNotices(t *testing.T) {
	notices := []string{
		"Messages and calls are end-to-end encrypted. No one outside of this chat can read or listen to them.",
		"Alice created group \"Weekend plans\"",
		"Bob was added",
		"Carol was removed",
		"Dave left",
		"Alice changed their phone number to a new number.",
		"Your security code with Bob changed.",
		"Alice changed the subject to \"Trip\"",
	}
	for _, body := range notices {
		d := DecodeEntry(entry(body))
		if d.Kind != EntrySystem {
			t.Errorf("DecodeEntry(%q).Kind = %v, want EntrySystem", body, d.Kind)
		}
	}
}

func TestDecodeEntry_TextFallback(t *testing.T) {
	bodies := []string{
		"hello there",
		"see you at 5 minutes past",
		"left my keys at home",
	}
	for _, body := range bodies {
		d := DecodeEntry(entry(body))
		if d.Kind != EntryText {
			t.Errorf("DecodeEntry(%q).Kind = %v, want EntryText", body, d.Kind)
		}
	}
}
