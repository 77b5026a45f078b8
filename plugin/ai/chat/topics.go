package chat

import "strings"

// topicKeywords maps canonical topic names to the words that surface
// them. Extraction is a plain containment scan; the topics feed the
// session's keyTopics set and the memory summary block.
var topicKeywords = map[string][]string{
	"health":    {"sick", "doctor", "medicine", "hospital", "pain", "pressure", "sugar"},
	"food":      {"cook", "recipe", "food", "meal", "sambar", "rasam", "dosa"},
	"work":      {"work", "office", "job", "project", "salary"},
	"studies":   {"exam", "study", "school", "college", "entrance"},
	"house":     {"house", "home", "renovation", "construction", "budget"},
	"garden":    {"garden", "tulsi", "mango", "plants", "flowers"},
	"festival":  {"pongal", "diwali", "festival", "celebration"},
	"loneliness": {"alone", "lonely", "miss", "missing"},
	"family":    {"family", "children", "visit", "wedding"},
}

// ExtractTopics returns the canonical topics present in the message, in
// no particular order.
func ExtractTopics(message string) []string {
	lower := strings.ToLower(message)
	topics := make([]string, 0, 2)
	for topic, keywords := range topicKeywords {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				topics = append(topics, topic)
				break
			}
		}
	}
	return topics
}

// MergeTopics unions existing and new topics preserving first-seen order.
func MergeTopics(existing, found []string) []string {
	seen := make(map[string]bool, len(existing)+len(found))
	out := make([]string, 0, len(existing)+len(found))
	for _, t := range existing {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range found {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// TruncateTopic shortens message text for the emotional-memory topic
// field.
func TruncateTopic(message string, maxLen int) string {
	if len(message) <= maxLen {
		return message
	}
	return message[:maxLen] + "..."
}
