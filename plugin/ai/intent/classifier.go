// Package intent decides whether user input is a smart-home command or a
// family conversation.
package intent

import "strings"

// Mode is the conversational mode a message is routed to.
type Mode string

const (
	ModeSmartHome  Mode = "smart-home"
	ModeFamilyChat Mode = "family-chat"
)

// Request carries the classifier inputs for one message.
type Request struct {
	Message            string
	CurrentMode        Mode
	IdentifiedMemberID string

	// lower is computed once per classification.
	lower string
}

// Rule is one named classification rule. Evaluate returns the next mode
// and true when the rule fires; rules are tried in order and the first
// match wins.
type Rule struct {
	Name     string
	Evaluate func(c *Classifier, req *Request) (Mode, bool)
}

// Classifier routes messages by case-insensitive substring matching
// against two fixed keyword lists, under a fixed rule priority. It is a
// pure function of its inputs and the static tables; it performs no IO.
type Classifier struct {
	familyKeywords    []string
	smartHomeKeywords []string
	personalQuestions []string
	greetingWords     []string

	// rules is the single point of truth for precedence. The
	// family-keyword rule deliberately precedes the smart-home rule:
	// a message naming a family member routes to family-chat even when
	// it also contains device words. That ordering is intentional
	// product behavior, not an accident.
	rules []Rule
}

// NewClassifier creates a classifier. familyNames extends the family
// keyword list with the household's member names (lower-cased).
func NewClassifier(familyNames []string) *Classifier {
	c := &Classifier{
		familyKeywords: append([]string{
			"amma", "appa", "paatti", "thatha",
			"daughter", "son", "grandson", "granddaughter",
			"mother", "father", "grandma", "grandmother",
			"family", "miss you", "love you",
		}, familyNames...),
		smartHomeKeywords: []string{
			"turn on", "turn off", "switch on", "switch off",
			"light", "fan", "air condition", " ac",
			"temperature", "thermostat",
			"tank", "battery", "solar", "consumption", "power",
			"goodnight scene", "goodnight", "good night",
			"morning scene", "away mode",
			"terrace", "motor", "pump",
		},
		personalQuestions: []string{
			"how are you", "are you okay", "are you ok",
			"how do you feel", "do you remember",
		},
		greetingWords: []string{
			"hello", "hi", "hey", "vanakkam", "good morning", "good evening",
		},
	}

	c.rules = []Rule{
		{
			// An identified family-chat session stays put unless the
			// message carries an explicit device keyword.
			Name: "sticky-identified-session",
			Evaluate: func(c *Classifier, req *Request) (Mode, bool) {
				if req.CurrentMode == ModeFamilyChat && req.IdentifiedMemberID != "" &&
					!containsAny(req.lower, c.smartHomeKeywords) {
					return ModeFamilyChat, true
				}
				return "", false
			},
		},
		{
			Name: "personal-question",
			Evaluate: func(c *Classifier, req *Request) (Mode, bool) {
				if containsAny(req.lower, c.personalQuestions) {
					return ModeFamilyChat, true
				}
				return "", false
			},
		},
		{
			Name: "family-keyword",
			Evaluate: func(c *Classifier, req *Request) (Mode, bool) {
				if containsAny(req.lower, c.familyKeywords) {
					return ModeFamilyChat, true
				}
				return "", false
			},
		},
		{
			Name: "smart-home-keyword",
			Evaluate: func(c *Classifier, req *Request) (Mode, bool) {
				if containsAny(req.lower, c.smartHomeKeywords) {
					return ModeSmartHome, true
				}
				return "", false
			},
		},
		{
			Name: "greeting",
			Evaluate: func(c *Classifier, req *Request) (Mode, bool) {
				for _, w := range c.greetingWords {
					if strings.HasPrefix(req.lower, w) {
						return ModeFamilyChat, true
					}
				}
				return "", false
			},
		},
	}

	return c
}

// Next returns the mode for the message. If no rule fires the current
// mode is kept unchanged.
func (c *Classifier) Next(req Request) Mode {
	req.lower = strings.ToLower(req.Message)
	for i := range c.rules {
		if mode, ok := c.rules[i].Evaluate(c, &req); ok {
			return mode
		}
	}
	return req.CurrentMode
}

// MatchedRule returns the name of the first rule that fires, or "" when
// classification falls through to the current mode. Used for debug logs.
func (c *Classifier) MatchedRule(req Request) string {
	req.lower = strings.ToLower(req.Message)
	for i := range c.rules {
		if _, ok := c.rules[i].Evaluate(c, &req); ok {
			return c.rules[i].Name
		}
	}
	return ""
}

// Rules returns the rule names in priority order.
func (c *Classifier) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.Name
	}
	return names
}

func containsAny(input string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}
