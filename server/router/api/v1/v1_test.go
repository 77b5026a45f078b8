package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/plugin/ai"
	"github.com/sarojaillam/assistant/plugin/ai/chat"
	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/plugin/ai/floorplan"
	"github.com/sarojaillam/assistant/plugin/ai/memory"
	"github.com/sarojaillam/assistant/plugin/home"
	"github.com/sarojaillam/assistant/server/middleware"
)

// newTestService wires the API over an in-memory store and an
// unconfigured completion backend, so every chat reply takes the local
// fallback path.
func newTestService() *APIV1Service {
	registry := family.NewRegistry()
	homeState := home.NewState()
	llm := ai.NewLLMService(&ai.LLMConfig{})
	memoryService := memory.NewService(memory.NewMockStore(), func(id string) string {
		if m := registry.Get(id); m != nil {
			return m.Name
		}
		return id
	})
	return &APIV1Service{
		Profile:           &profile.Profile{Mode: "demo"},
		Registry:          registry,
		HomeState:         homeState,
		ChatService:       chat.NewService(registry, llm, memoryService, homeState),
		MemoryService:     memoryService,
		FloorplanService:  floorplan.NewService(llm),
		suggestionLimiter: middleware.NewRateLimiter(rate.Limit(1000), 1000),
	}
}

func newJSONContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestChatHandler(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/assistant/chat",
		`{"message": "Hello, this is Lakshmi"}`)
	require.NoError(t, svc.Chat(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	require.Equal(t, "family-chat", resp.Mode)
	require.Equal(t, "lakshmi", resp.FamilyMember)
	require.NotEmpty(t, resp.Reply)
}

func TestChatHandlerKeepsSessionAcrossTurns(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/assistant/chat",
		`{"message": "Hi, Meena here"}`)
	require.NoError(t, svc.Chat(c))
	var first ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	c, rec = newJSONContext(http.MethodPost, "/api/v1/assistant/chat",
		`{"session_id": "`+first.SessionID+`", "message": "I am doing well today"}`)
	require.NoError(t, svc.Chat(c))
	var second ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	require.Equal(t, first.SessionID, second.SessionID)
	require.Equal(t, "family-chat", second.Mode)
	require.Equal(t, "meena", second.FamilyMember)
}

func TestChatHandlerRejectsEmptyMessage(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/assistant/chat",
		`{"message": "   "}`)
	require.NoError(t, svc.Chat(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", errorCode(t, rec))
}

func TestGetHomeState(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodGet, "/api/v1/home/state", "")
	require.NoError(t, svc.GetHomeState(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var snap home.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotEmpty(t, snap.Floors)
}

func TestHomeCommand(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/home/command",
		`{"message": "turn on the lights"}`)
	require.NoError(t, svc.HomeCommand(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HomeCommandResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "lights_on", resp.Command)
	require.NotEmpty(t, resp.Reply)
	require.True(t, resp.State.Floors[home.FloorGround].Rooms["hall"].Light)
}

func TestHomeCommandUnmatched(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/home/command",
		`{"message": "sing me a song"}`)
	require.NoError(t, svc.HomeCommand(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "COMMAND_NOT_RECOGNIZED", errorCode(t, rec))
}

func TestExportHistory(t *testing.T) {
	svc := newTestService()

	// Seed one identified conversation through the chat surface.
	c, _ := newJSONContext(http.MethodPost, "/api/v1/assistant/chat",
		`{"message": "Hello, this is Lakshmi"}`)
	require.NoError(t, svc.Chat(c))

	c, rec := newJSONContext(http.MethodGet, "/", "")
	c.SetPath("/api/v1/assistant/history/:member/export")
	c.SetParamNames("member")
	c.SetParamValues("lakshmi")
	require.NoError(t, svc.ExportHistory(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
	require.Contains(t, rec.Body.String(), "Conversation history for Lakshmi")
}

func TestExportHistoryUnknownMember(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodGet, "/", "")
	c.SetPath("/api/v1/assistant/history/:member/export")
	c.SetParamNames("member")
	c.SetParamValues("nobody")
	require.NoError(t, svc.ExportHistory(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "MEMBER_NOT_FOUND", errorCode(t, rec))
}

func TestFloorplanSuggestion(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/floorplan/suggestion",
		`{"selection_id": "sel-1", "instruction": "add a window", "area": {"x": 5, "y": 5, "width": 30, "height": 20}}`)
	require.NoError(t, svc.FloorplanSuggestion(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FloorplanSuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Suggestion)
}

func TestFloorplanSuggestionInvalidArea(t *testing.T) {
	svc := newTestService()

	c, rec := newJSONContext(http.MethodPost, "/api/v1/floorplan/suggestion",
		`{"instruction": "add a window", "area": {"x": 5, "y": 5, "width": 130, "height": 20}}`)
	require.NoError(t, svc.FloorplanSuggestion(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", errorCode(t, rec))
}

func TestFloorplanSuggestionRateLimited(t *testing.T) {
	svc := newTestService()
	svc.suggestionLimiter = middleware.NewRateLimiter(rate.Limit(0), 1)

	body := `{"instruction": "add a window", "area": {"x": 0, "y": 0, "width": 10, "height": 10}}`

	c, rec := newJSONContext(http.MethodPost, "/api/v1/floorplan/suggestion", body)
	require.NoError(t, svc.FloorplanSuggestion(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newJSONContext(http.MethodPost, "/api/v1/floorplan/suggestion", body)
	require.NoError(t, svc.FloorplanSuggestion(c))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "RATE_LIMIT_EXCEEDED", errorCode(t, rec))
}
