package chat

import (
	"fmt"
	"strings"

	"github.com/sarojaillam/assistant/plugin/ai/family"
)

// fallbackRule is one keyword-matched canned reply. MemberID narrows the
// rule to a single family member; empty means any member.
type fallbackRule struct {
	memberID string
	keywords []string
	reply    string
}

// fallbackRules are checked in order; the first match wins. They carry
// the same warmth as the persona so a backend outage reads like a normal
// reply, never like an error.
var fallbackRules = []fallbackRule{
	{
		memberID: "lakshmi",
		keywords: []string{"alone", "lonely"},
		reply:    "You are never alone, Lakshmi kanna. I am in every corner of this house, and in every meal you cook from my recipes. Call Guna tonight, he misses you too.",
	},
	{
		keywords: []string{"miss", "missing"},
		reply:    "I miss you too, chellam. But look around the house, I am still here in all of it. Tell me what you did today.",
	},
	{
		keywords: []string{"exam", "test", "study"},
		reply:    "Study a little, rest a little, kanna. You will do well, I know it. Drink some warm milk before you sleep.",
	},
	{
		keywords: []string{"sick", "pain", "doctor", "hospital"},
		reply:    "Take care of your health first, everything else can wait. Did you see the doctor? Don't skip your medicines, kanna.",
	},
	{
		keywords: []string{"house", "home", "garden"},
		reply:    "The house is happy when you all come. Water the tulsi for me, and check on the mango tree near the gate.",
	},
}

// FallbackResponder produces a deterministic local reply when the
// completion backend is unavailable. It never fails and never returns an
// empty string.
type FallbackResponder struct{}

// NewFallbackResponder creates the rule-based responder.
func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{}
}

// Respond picks the first rule matching the member and message, falling
// through to a per-member greeting.
func (*FallbackResponder) Respond(member *family.Member, message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		if rule.memberID != "" && rule.memberID != member.ID {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return fmt.Sprintf("It is so good to hear from you, %s kanna. Tell me more, I am listening.", member.Name)
}
