package frontier

import (
	"strings"

	"github.com/fieldworkhq/leadspider/internal/config"
)

// Classify assigns a priority to a discovered link by matching its
// absolute URL and anchor text, case-insensitively, against the keyword
// families. Staff keywords outrank contact keywords, which outrank topic
// keywords; a link matching none gets PriorityOther. The seed URL never
// goes through Classify, it is pushed at PriorityInitial directly.
func Classify(rawURL, anchorText string, kw *config.Keywords) Priority {
	if kw == nil {
		kw = config.DefaultKeywords()
	}

	haystack := strings.ToLower(rawURL) + " " + strings.ToLower(anchorText)

	if matchesAny(haystack, kw.Staff) {
		return PriorityStaff
	}
	if matchesAny(haystack, kw.Contact) {
		return PriorityContact
	}
	if matchesAny(haystack, kw.Topic) {
		return PriorityTopic
	}
	return PriorityOther
}

func matchesAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
