package fallback

import "strings"

// Category is the coarse subject area used to pick a question bank.
type Category string

// Known categories.
const (
	CategoryHistory Category = "history"
	CategoryScience Category = "science"

	DefaultCategory = CategoryScience
)

// categoryKeywords is checked in order; the first category with a keyword
// contained in the topic wins.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryHistory, []string{"history", "war", "president", "ancient", "medieval"}},
	{CategoryScience, []string{"science", "biology", "chemistry", "physics", "planet"}},
}

// Classify maps a free-text topic to a category by case-insensitive substring
// match. Topics matching no keyword fall back to DefaultCategory.
func Classify(topic string) Category {
	t := strings.ToLower(topic)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(t, kw) {
				return c.category
			}
		}
	}
	return DefaultCategory
}
