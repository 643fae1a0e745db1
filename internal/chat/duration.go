package chat

import (
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`(\d+)\s*(hours?|hrs?|minutes?|mins?)`)

// ParseDuration converts free-form call-duration phrasing into whole
// minutes. Parsing is unit-additive: every recognized unit token adds
// its minute equivalent ("1 hour 30 minutes" is 90). Unrecognized or
// absent phrasing contributes nothing, so the result for arbitrary
// text is 0, never an error.
func ParseDuration(text string) int {
	total := 0
	for _, m := range durationRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if strings.HasPrefix(m[2], "h") {
			total += n * 60
		} else {
			total += n
		}
	}
	return total
}
