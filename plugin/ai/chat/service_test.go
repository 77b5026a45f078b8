package chat

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/sarojaillam/assistant/plugin/ai"
	"github.com/sarojaillam/assistant/plugin/ai/emotion"
	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/plugin/ai/intent"
	"github.com/sarojaillam/assistant/plugin/ai/memory"
	"github.com/sarojaillam/assistant/plugin/home"
	"github.com/sarojaillam/assistant/store"
)

// mockLLM returns a fixed reply, or an error when failing is set.
type mockLLM struct {
	reply   string
	failing bool
	prompts []string
}

func (m *mockLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	if len(messages) > 0 {
		m.prompts = append(m.prompts, messages[0].Content)
	}
	if m.failing {
		return "", errors.New("backend unreachable")
	}
	return m.reply, nil
}

func newTestService(llm ai.LLMService) (*Service, *memory.MockStore) {
	registry := family.NewRegistry()
	mock := memory.NewMockStore()
	mem := memory.NewService(mock, nil)
	return NewService(registry, llm, mem, home.NewState()), mock
}

func TestHandleTurnGreetingStage(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "hello"})

	// Unidentified speaker with no recognizable name stays in the
	// greeting stage.
	result, err := svc.HandleTurn(context.Background(), "", "hello there")
	require.NoError(t, err)
	require.Equal(t, intent.ModeFamilyChat, result.Mode)
	require.Equal(t, clarifyingPrompt, result.Reply)
	require.Empty(t, result.FamilyMemberID)

	// Identification resolves the greeting stage.
	result2, err := svc.HandleTurn(context.Background(), result.SessionID, "this is Lakshmi")
	require.NoError(t, err)
	require.Equal(t, "lakshmi", result2.FamilyMemberID)
	require.NotEmpty(t, result2.Reply)
}

func TestHandleTurnSmartHomeCommand(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "hello"})

	result, err := svc.HandleTurn(context.Background(), "", "turn on the lights")
	require.NoError(t, err)
	require.Equal(t, intent.ModeSmartHome, result.Mode)
	require.Equal(t, "lights_on", result.CommandToken)
	require.NotEmpty(t, result.Reply)
}

// A message naming a family member routes to family-chat even when it
// also contains device words.
func TestHandleTurnFamilyNameBeatsDeviceWords(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "I am here, kanna."})

	result, err := svc.HandleTurn(context.Background(), "", "Lakshmi, turn on the lights")
	require.NoError(t, err)
	require.Equal(t, intent.ModeFamilyChat, result.Mode)
	require.Equal(t, "lakshmi", result.FamilyMemberID)
	require.Empty(t, result.CommandToken)
}

func TestHandleTurnIdentifiedSessionSwitchesOnCommand(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "I am here."})
	ctx := context.Background()

	r1, err := svc.HandleTurn(ctx, "", "hello, this is guna")
	require.NoError(t, err)
	require.Equal(t, "guna", r1.FamilyMemberID)

	// Sticky family chat without device keywords.
	r2, err := svc.HandleTurn(ctx, r1.SessionID, "I am doing well today")
	require.NoError(t, err)
	require.Equal(t, intent.ModeFamilyChat, r2.Mode)

	// Unambiguous command switches modes.
	r3, err := svc.HandleTurn(ctx, r1.SessionID, "turn off all lights")
	require.NoError(t, err)
	require.Equal(t, intent.ModeSmartHome, r3.Mode)
	require.Equal(t, "lights_off", r3.CommandToken)
}

// A failing backend produces a normal-looking, non-empty reply.
func TestHandleTurnFallbackNeverFails(t *testing.T) {
	svc, _ := newTestService(&mockLLM{failing: true})

	result, err := svc.HandleTurn(context.Background(), "", "Lakshmi here, I feel alone")
	require.NoError(t, err)
	require.True(t, result.UsedFallback)
	require.NotEmpty(t, result.Reply)
	require.Contains(t, result.Reply, "You are never alone")
}

func TestHandleTurnEmptyReplyFallsBack(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "   "})

	result, err := svc.HandleTurn(context.Background(), "", "this is Meena")
	require.NoError(t, err)
	require.True(t, result.UsedFallback)
	require.NotEmpty(t, result.Reply)
}

func TestHandleTurnPersistsConversationAndMemory(t *testing.T) {
	llm := &mockLLM{reply: "So good to hear you, kanna."}
	svc, mock := newTestService(llm)
	ctx := context.Background()

	result, err := svc.HandleTurn(ctx, "", "this is Lakshmi, I am sad and missing you")
	require.NoError(t, err)
	require.Equal(t, emotion.StateSad, result.EmotionalState)

	sessions, err := mock.ListConversationSessions(ctx, &store.FindConversationSession{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, "lakshmi", sessions[0].FamilyMemberID)
	require.Len(t, sessions[0].Messages, 2)
	require.Equal(t, "sad", sessions[0].EmotionalState)
	require.Contains(t, sessions[0].KeyTopics, "loneliness")

	count, err := mock.CountEmotionalMemories(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// Memory store failures degrade personalization but never fail the turn.
func TestHandleTurnSurvivesStoreFailure(t *testing.T) {
	llm := &mockLLM{reply: "I am listening, kanna."}
	svc, mock := newTestService(llm)
	mock.FailWrites = true

	result, err := svc.HandleTurn(context.Background(), "", "this is Raman")
	require.NoError(t, err)
	require.NotEmpty(t, result.Reply)
}

func TestHandleTurnUsesMemoryInPrompt(t *testing.T) {
	llm := &mockLLM{reply: "I remember, kanna."}
	svc, _ := newTestService(llm)
	ctx := context.Background()

	r1, err := svc.HandleTurn(ctx, "", "this is Arjun, exams are giving me stress")
	require.NoError(t, err)
	require.Equal(t, "arjun", r1.FamilyMemberID)

	// A later session for the same member sees the stored memory.
	_, err = svc.HandleTurn(ctx, "", "Arjun again, hello paatti")
	require.NoError(t, err)

	require.NotEmpty(t, llm.prompts)
	lastPrompt := llm.prompts[len(llm.prompts)-1]
	require.Contains(t, lastPrompt, "What you remember:")
}

func TestHandleTurnRejectsEmptyMessage(t *testing.T) {
	svc, _ := newTestService(&mockLLM{reply: "x"})
	_, err := svc.HandleTurn(context.Background(), "", "")
	require.Error(t, err)
}
