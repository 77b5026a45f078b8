// Package chat assembles family-chat prompts, calls the completion
// backend, and orchestrates one conversational turn end to end.
package chat

import (
	"fmt"
	"strings"

	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/store"
)

// maxHistoryTurns is the rolling window of prior turns included in the
// prompt.
const maxHistoryTurns = 6

// maxMemoryLines is how many emotional-memory records are rendered.
const maxMemoryLines = 5

// PromptInput carries everything the builder needs for one prompt.
// History is expected to already contain only family-chat turns.
type PromptInput struct {
	Member      *family.Member
	UserMessage string
	History     []store.Message

	// LastSession is the member's previous conversation session, nil
	// when none exists.
	LastSession *store.ConversationSession
	// Memories are the member's emotional-memory records, newest first.
	Memories []*store.EmotionalMemory
}

// includeFact reports whether a situational fact takes part in the
// prompt. Inclusion is an explicit emptiness check, not field presence.
func includeFact(value string) bool {
	return strings.TrimSpace(value) != ""
}

// BuildPrompt assembles the prompt in its fixed section order:
// persona preamble, situational facts, memory summary, recent turns,
// the quoted new message, closing instruction. The order must not
// change; downstream behavior and tests depend on it.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	// 1. Persona preamble.
	b.WriteString(personaPreamble)
	b.WriteString("\n\n")

	// 2. Situational facts, only non-empty fields.
	fmt.Fprintf(&b, "You are speaking with %s, your %s.\n", in.Member.Name, in.Member.Relation)
	if includeFact(in.Member.Location) {
		fmt.Fprintf(&b, "They live in %s.\n", in.Member.Location)
	}
	if includeFact(in.Member.EmotionalContext) {
		fmt.Fprintf(&b, "Emotional context: %s\n", in.Member.EmotionalContext)
	}
	if includeFact(in.Member.CurrentSituation) {
		fmt.Fprintf(&b, "Current situation: %s\n", in.Member.CurrentSituation)
	}
	if includeFact(in.Member.SpecialNotes) {
		fmt.Fprintf(&b, "Special notes: %s\n", in.Member.SpecialNotes)
	}
	if includeFact(in.Member.HealthConcerns) {
		fmt.Fprintf(&b, "Health concerns: %s\n", in.Member.HealthConcerns)
	}
	b.WriteString("\n")

	// 3. Memory summary from the previous session and stored memories.
	if memoryBlock := buildMemoryBlock(in.LastSession, in.Memories); memoryBlock != "" {
		b.WriteString(memoryBlock)
		b.WriteString("\n")
	}

	// 4. Rolling window of recent turns, oldest first.
	if historyBlock := buildHistoryBlock(in.Member, in.History); historyBlock != "" {
		b.WriteString(historyBlock)
		b.WriteString("\n")
	}

	// 5. The new message, quoted.
	fmt.Fprintf(&b, "%s says: %q\n\n", in.Member.Name, in.UserMessage)

	// 6. Closing instruction.
	b.WriteString(closingInstruction)

	return b.String()
}

func buildMemoryBlock(lastSession *store.ConversationSession, memories []*store.EmotionalMemory) string {
	if lastSession == nil && len(memories) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("What you remember:\n")
	if lastSession != nil {
		if summary := lastSummaryLine(lastSession); summary != "" {
			fmt.Fprintf(&b, "Last time you spoke: %s\n", summary)
		}
		if lastSession.EmotionalState != "" {
			fmt.Fprintf(&b, "They seemed %s.\n", lastSession.EmotionalState)
		}
		if len(lastSession.KeyTopics) > 0 {
			fmt.Fprintf(&b, "You talked about: %s\n", strings.Join(lastSession.KeyTopics, ", "))
		}
	}

	count := len(memories)
	if count > maxMemoryLines {
		count = maxMemoryLines
	}
	for i := 0; i < count; i++ {
		fmt.Fprintf(&b, "- %s (%s)\n", memories[i].Topic, memories[i].EmotionalState)
	}
	return b.String()
}

// lastSummaryLine is the final message of the previous session, the
// closest thing the record keeps to a summary.
func lastSummaryLine(session *store.ConversationSession) string {
	if len(session.Messages) == 0 {
		return ""
	}
	return session.Messages[len(session.Messages)-1].Content
}

func buildHistoryBlock(member *family.Member, history []store.Message) string {
	if len(history) == 0 {
		return ""
	}

	start := 0
	if len(history) > maxHistoryTurns {
		start = len(history) - maxHistoryTurns
	}

	var b strings.Builder
	b.WriteString("The conversation so far:\n")
	for _, msg := range history[start:] {
		label := member.Name
		if msg.Role == store.MessageRoleAssistant {
			label = "Saroja"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, msg.Content)
	}
	return b.String()
}
