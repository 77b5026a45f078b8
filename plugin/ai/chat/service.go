package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/sarojaillam/assistant/plugin/ai"
	"github.com/sarojaillam/assistant/plugin/ai/emotion"
	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/plugin/ai/intent"
	"github.com/sarojaillam/assistant/plugin/ai/memory"
	"github.com/sarojaillam/assistant/plugin/home"
	"github.com/sarojaillam/assistant/store"
)

// ErrTurnInFlight is returned when a turn for the session is already
// being processed. The transcript ordering guarantee depends on one
// in-flight turn per session.
var ErrTurnInFlight = errors.New("a turn is already in progress for this session")

// TurnResult is the outcome of one user turn.
type TurnResult struct {
	SessionID      string
	Mode           intent.Mode
	Reply          string
	FamilyMemberID string
	EmotionalState emotion.State
	CommandToken   string
	UsedFallback   bool
}

// sessionState is the in-memory state of one chat surface.
type sessionState struct {
	mode     intent.Mode
	memberID string

	// stored is the persisted conversation, created on identification.
	stored *store.ConversationSession
	// prevSession is the member's previous conversation, loaded once at
	// identification time for the memory summary block.
	prevSession *store.ConversationSession

	// inFlight serializes turns for this session.
	inFlight *semaphore.Weighted
}

// Service orchestrates one conversational turn: classify, identify,
// assemble context, complete, derive emotion, persist.
type Service struct {
	classifier *intent.Classifier
	registry   *family.Registry
	llm        ai.LLMService
	fallback   *FallbackResponder
	memory     memory.Service
	homeState  *home.State

	mu       sync.Mutex
	sessions map[string]*sessionState
}

// NewService wires the chat service.
func NewService(registry *family.Registry, llm ai.LLMService, mem memory.Service, homeState *home.State) *Service {
	return &Service{
		classifier: intent.NewClassifier(registry.Names()),
		registry:   registry,
		llm:        llm,
		fallback:   NewFallbackResponder(),
		memory:     mem,
		homeState:  homeState,
		sessions:   make(map[string]*sessionState),
	}
}

// HandleTurn processes one user message. sessionID may be empty, in
// which case a new session surface is created.
func (s *Service) HandleTurn(ctx context.Context, sessionID, message string) (*TurnResult, error) {
	if message == "" {
		return nil, errors.New("message required")
	}
	if sessionID == "" {
		sessionID = shortuuid.New()
	}

	state := s.getOrCreateSession(sessionID)
	if !state.inFlight.TryAcquire(1) {
		return nil, ErrTurnInFlight
	}
	defer state.inFlight.Release(1)

	start := time.Now()
	req := intent.Request{
		Message:            message,
		CurrentMode:        state.mode,
		IdentifiedMemberID: state.memberID,
	}
	mode := s.classifier.Next(req)
	slog.Debug("message classified",
		"session_id", sessionID,
		"mode", mode,
		"rule", s.classifier.MatchedRule(req),
		"latency_ms", time.Since(start).Milliseconds())
	state.mode = mode

	if mode == intent.ModeSmartHome {
		return s.handleSmartHomeTurn(sessionID, message), nil
	}
	return s.handleFamilyChatTurn(ctx, sessionID, state, message), nil
}

func (s *Service) getOrCreateSession(sessionID string) *sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[sessionID]; ok {
		return state
	}
	state := &sessionState{
		mode:     intent.ModeFamilyChat,
		inFlight: semaphore.NewWeighted(1),
	}
	s.sessions[sessionID] = state
	return state
}

// handleSmartHomeTurn runs the second-stage command match and mutates
// the mock state. Smart-home turns are not persisted into family
// conversation sessions.
func (s *Service) handleSmartHomeTurn(sessionID, message string) *TurnResult {
	result := &TurnResult{SessionID: sessionID, Mode: intent.ModeSmartHome}

	cmd, ok := home.ParseCommand(message)
	if !ok {
		result.Reply = "I did not catch that, kanna. You can ask me to turn lights on or off, run the goodnight scene, or check on the house."
		return result
	}

	s.homeState.Apply(cmd)
	result.CommandToken = cmd.Token()
	result.Reply = cmd.Acknowledgement()
	slog.Info("smart home command applied", "session_id", sessionID, "command", cmd.Token())
	return result
}

func (s *Service) handleFamilyChatTurn(ctx context.Context, sessionID string, state *sessionState, message string) *TurnResult {
	result := &TurnResult{SessionID: sessionID, Mode: intent.ModeFamilyChat}

	if state.memberID == "" {
		member := s.registry.Identify(message)
		if member == nil {
			// Greeting stage: ask who is speaking and stay there.
			result.Reply = clarifyingPrompt
			return result
		}
		s.identifyMember(ctx, state, member)
	}
	member := s.registry.Get(state.memberID)
	result.FamilyMemberID = member.ID

	memories, err := s.memory.RecentEmotionalMemories(ctx, member.ID, 5)
	if err != nil {
		slog.Warn("emotional memory lookup failed, continuing without", "member", member.ID, "error", err)
		memories = nil
	}

	prompt := BuildPrompt(PromptInput{
		Member:      member,
		UserMessage: message,
		History:     state.stored.Messages,
		LastSession: state.prevSession,
		Memories:    memories,
	})

	reply, err := s.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(prompt),
		ai.UserMessage(message),
	})
	if err != nil {
		slog.Warn("completion failed, using local fallback", "member", member.ID, "error", err)
		reply = s.fallback.Respond(member, message)
		result.UsedFallback = true
	}
	reply = trimReply(reply)
	if reply == "" {
		reply = s.fallback.Respond(member, message)
		result.UsedFallback = true
	}
	result.Reply = reply

	emotionalState := emotion.Classify(message)
	result.EmotionalState = emotionalState

	s.recordTurn(ctx, state, member, message, reply, emotionalState)
	return result
}

func (s *Service) identifyMember(ctx context.Context, state *sessionState, member *family.Member) {
	state.memberID = member.ID

	prev, err := s.memory.GetLastConversation(ctx, member.ID)
	if err != nil {
		slog.Warn("previous conversation lookup failed, continuing without", "member", member.ID, "error", err)
		prev = nil
	}
	state.prevSession = prev

	state.stored = &store.ConversationSession{
		UID:            shortuuid.New(),
		FamilyMemberID: member.ID,
		StartTime:      time.Now(),
		EmotionalState: string(emotion.StateNeutral),
	}
	slog.Info("family member identified", "member", member.ID)
}

// recordTurn appends both turn messages to the session and persists the
// session and an emotional-memory record. All persistence is
// best-effort.
func (s *Service) recordTurn(ctx context.Context, state *sessionState, member *family.Member, userMessage, reply string, emotionalState emotion.State) {
	now := time.Now()
	state.stored.Messages = append(state.stored.Messages,
		store.Message{
			Role:      store.MessageRoleUser,
			Content:   userMessage,
			Timestamp: now,
			Mode:      store.MessageModeFamilyChat,
		},
		store.Message{
			Role:      store.MessageRoleAssistant,
			Content:   reply,
			Timestamp: now,
			Mode:      store.MessageModeFamilyChat,
		},
	)
	state.stored.EmotionalState = string(emotionalState)
	state.stored.KeyTopics = MergeTopics(state.stored.KeyTopics, ExtractTopics(userMessage))

	if err := s.memory.SaveConversation(ctx, state.stored); err != nil {
		slog.Warn("conversation save failed, continuing", "member", member.ID, "error", err)
	}
	if err := s.memory.SaveEmotionalMemory(ctx, &store.EmotionalMemory{
		FamilyMemberID: member.ID,
		Timestamp:      now,
		Topic:          TruncateTopic(userMessage, 60),
		EmotionalState: string(emotionalState),
		KeyPoints:      ExtractTopics(userMessage),
	}); err != nil {
		slog.Warn("emotional memory save failed, continuing", "member", member.ID, "error", err)
	}
}

func trimReply(reply string) string {
	return strings.TrimSpace(reply)
}
