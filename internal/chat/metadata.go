package chat

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

var urlRe = regexp.MustCompile(`https?://\S+`)

// ExtractMetadata derives word/char counts and ordered emoji and URL
// occurrences from a message body. Pure: identical input yields
// identical output.
func ExtractMetadata(content string) Metadata {
	return Metadata{
		WordCount: len(strings.Fields(content)),
		CharCount: utf8.RuneCountInString(content),
		Emojis:    extractEmojis(content),
		URLs:      urlRe.FindAllString(content, -1),
	}
}

// extractEmojis walks grapheme clusters so multi-rune sequences (skin
// tones, ZWJ families, flags) stay intact. Clusters are returned in
// their original, unnormalized form; grouping variants together is the
// analytics layer's concern.
func extractEmojis(content string) []string {
	var out []string
	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		if c := gr.Str(); isEmojiCluster(c) {
			out = append(out, c)
		}
	}
	return out
}

// isEmojiCluster reports whether the grapheme contains at least one
// rune from the common emoji blocks.
func isEmojiCluster(cluster string) bool {
	for _, r := range cluster {
		switch {
		case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, symbols
			return true
		case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
			return true
		case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators (flags)
			return true
		}
	}
	return false
}
