package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClassifier() *Classifier {
	return NewClassifier([]string{"lakshmi", "guna", "raman", "meena", "arjun", "priya"})
}

func TestNext(t *testing.T) {
	c := newTestClassifier()

	testCases := []struct {
		name     string
		message  string
		mode     Mode
		memberID string
		expected Mode
	}{
		// Family keyword beats device keyword: messages naming a family
		// member route to family-chat even with device words present.
		{
			name:     "family_name_beats_device_keyword",
			message:  "Lakshmi, turn on the lights",
			mode:     ModeSmartHome,
			expected: ModeFamilyChat,
		},
		{
			name:     "identified_session_is_sticky",
			message:  "I am doing well today",
			mode:     ModeFamilyChat,
			memberID: "lakshmi",
			expected: ModeFamilyChat,
		},
		{
			name:     "explicit_command_overrides_identified_session",
			message:  "turn off all lights",
			mode:     ModeFamilyChat,
			memberID: "lakshmi",
			expected: ModeSmartHome,
		},
		{
			name:     "personal_question",
			message:  "how are you today?",
			mode:     ModeSmartHome,
			expected: ModeFamilyChat,
		},
		{
			name:     "relation_word",
			message:  "your grandson called",
			mode:     ModeSmartHome,
			expected: ModeFamilyChat,
		},
		{
			name:     "device_command",
			message:  "switch off the fan upstairs",
			mode:     ModeFamilyChat,
			expected: ModeSmartHome,
		},
		{
			name:     "scene_command",
			message:  "goodnight",
			mode:     ModeFamilyChat,
			expected: ModeSmartHome,
		},
		{
			name:     "greeting_prefix",
			message:  "vanakkam, anyone there?",
			mode:     ModeSmartHome,
			expected: ModeFamilyChat,
		},
		{
			name:     "no_rule_keeps_current_mode_smart_home",
			message:  "the weather is nice",
			mode:     ModeSmartHome,
			expected: ModeSmartHome,
		},
		{
			name:     "no_rule_keeps_current_mode_family_chat",
			message:  "the weather is nice",
			mode:     ModeFamilyChat,
			expected: ModeFamilyChat,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Next(Request{
				Message:            tc.message,
				CurrentMode:        tc.mode,
				IdentifiedMemberID: tc.memberID,
			})
			require.Equal(t, tc.expected, got)
		})
	}
}

// The rule slice is the single point of truth for precedence; pin it.
func TestRulePriorityOrder(t *testing.T) {
	c := newTestClassifier()
	require.Equal(t, []string{
		"sticky-identified-session",
		"personal-question",
		"family-keyword",
		"smart-home-keyword",
		"greeting",
	}, c.Rules())
}

func TestMatchedRule(t *testing.T) {
	c := newTestClassifier()

	require.Equal(t, "family-keyword", c.MatchedRule(Request{
		Message:     "Lakshmi, turn on the lights",
		CurrentMode: ModeSmartHome,
	}))
	require.Equal(t, "smart-home-keyword", c.MatchedRule(Request{
		Message:            "turn off all lights",
		CurrentMode:        ModeFamilyChat,
		IdentifiedMemberID: "guna",
	}))
	require.Equal(t, "", c.MatchedRule(Request{
		Message:     "the weather is nice",
		CurrentMode: ModeSmartHome,
	}))
}

func TestNextIsCaseInsensitive(t *testing.T) {
	c := newTestClassifier()
	require.Equal(t, ModeSmartHome, c.Next(Request{
		Message:     "TURN ON THE LIGHT",
		CurrentMode: ModeFamilyChat,
	}))
}
