package chat

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/store"
)

func testMember() *family.Member {
	return &family.Member{
		ID:               "lakshmi",
		Name:             "Lakshmi",
		Relation:         "daughter",
		Location:         "Chennai",
		EmotionalContext: "Misses her mother deeply.",
		CurrentSituation: "Living in Chennai with her family.",
		// HealthConcerns and SpecialNotes deliberately empty.
	}
}

// The assembled prompt contains its sections in the fixed order: persona
// preamble, situational facts (non-empty fields only), memory summary,
// exactly the last 6 of 8 history turns, then the quoted new message.
func TestBuildPromptSectionOrdering(t *testing.T) {
	history := make([]store.Message, 0, 8)
	for i := 1; i <= 8; i++ {
		role := store.MessageRoleUser
		if i%2 == 0 {
			role = store.MessageRoleAssistant
		}
		history = append(history, store.Message{
			Role:    role,
			Content: fmt.Sprintf("turn-%d", i),
			Mode:    store.MessageModeFamilyChat,
		})
	}

	prompt := BuildPrompt(PromptInput{
		Member:      testMember(),
		UserMessage: "I cooked your sambar today",
		History:     history,
		LastSession: &store.ConversationSession{
			Messages:       []store.Message{{Role: store.MessageRoleAssistant, Content: "Sleep well, kanna."}},
			EmotionalState: "sad",
			KeyTopics:      []string{"loneliness", "food"},
			StartTime:      time.Now().Add(-24 * time.Hour),
		},
		Memories: []*store.EmotionalMemory{
			{Topic: "missing amma", EmotionalState: "sad"},
			{Topic: "made rasam", EmotionalState: "happy"},
		},
	})

	wantInOrder := []string{
		"You are Saroja",
		"You are speaking with Lakshmi, your daughter.",
		"Emotional context: Misses her mother deeply.",
		"What you remember:",
		"Last time you spoke: Sleep well, kanna.",
		"They seemed sad.",
		"- missing amma (sad)",
		"The conversation so far:",
		"turn-3",
		"turn-8",
		`Lakshmi says: "I cooked your sambar today"`,
		"Respond as Saroja",
	}

	pos := 0
	for _, want := range wantInOrder {
		idx := strings.Index(prompt[pos:], want)
		require.GreaterOrEqual(t, idx, 0, "missing or out of order: %q", want)
		pos += idx + len(want)
	}

	// Only the last 6 turns survive the window.
	require.NotContains(t, prompt, "turn-1")
	require.NotContains(t, prompt, "turn-2")

	// Empty fields are excluded explicitly.
	require.NotContains(t, prompt, "Health concerns:")
	require.NotContains(t, prompt, "Special notes:")
}

func TestBuildPromptIsReproducible(t *testing.T) {
	in := PromptInput{
		Member:      testMember(),
		UserMessage: "hello amma",
	}
	require.Equal(t, BuildPrompt(in), BuildPrompt(in))
}

func TestBuildPromptWithoutMemoryOrHistory(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Member:      testMember(),
		UserMessage: "hello",
	})
	require.NotContains(t, prompt, "What you remember:")
	require.NotContains(t, prompt, "The conversation so far:")
	require.Contains(t, prompt, `Lakshmi says: "hello"`)
}

func TestBuildPromptCapsMemoryLines(t *testing.T) {
	memories := make([]*store.EmotionalMemory, 7)
	for i := range memories {
		memories[i] = &store.EmotionalMemory{
			Topic:          fmt.Sprintf("memory-%d", i),
			EmotionalState: "neutral",
		}
	}
	prompt := BuildPrompt(PromptInput{
		Member:      testMember(),
		UserMessage: "hello",
		Memories:    memories,
	})
	require.Contains(t, prompt, "memory-4 (neutral)")
	require.NotContains(t, prompt, "memory-5")
	require.NotContains(t, prompt, "memory-6")
}
