package pipeline

import (
	"strings"

	"github.com/pevans/nintendonews/news"
)

// Title-length guard. Titles longer than maxTitleLen are split at the first
// sentence break inside the split window; the cut-off remainder moves into
// the description instead of being lost.
const (
	maxTitleLen = 250
	splitMin    = 10
	splitMax    = 240
)

// normalizeTitle bounds an item's title. When a period occurs between
// characters splitMin and splitMax, the title ends at that period and the
// remainder is prepended to the description. With no suitable period, the
// title is hard-truncated at maxTitleLen with an ellipsis and the remainder
// moves to the description the same way. Short titles pass through
// untouched.
func normalizeTitle(item news.Item) news.Item {
	runes := []rune(item.Title)
	if len(runes) <= maxTitleLen {
		return item
	}

	for i := splitMin; i <= splitMax && i < len(runes); i++ {
		if runes[i] == '.' {
			item.Title = string(runes[:i+1])
			item.Description = prependRemainder(string(runes[i+1:]), item.Description)
			return item
		}
	}

	item.Title = string(runes[:maxTitleLen]) + "..."
	item.Description = prependRemainder(string(runes[maxTitleLen:]), item.Description)
	return item
}

// prependRemainder moves overflow title text to the front of the
// description. A placeholder description is replaced outright rather than
// trailing the overflow.
func prependRemainder(remainder, description string) string {
	remainder = strings.TrimSpace(remainder)
	if remainder == "" {
		return description
	}
	if description == "" || description == news.DefaultDescription {
		return remainder
	}
	return remainder + " " + description
}
