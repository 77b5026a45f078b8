package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sarojaillam/assistant/plugin/ai/chat"
	apierrors "github.com/sarojaillam/assistant/server/internal/errors"
	"github.com/sarojaillam/assistant/server/internal/observability"
)

// ChatRequest is one user turn.
type ChatRequest struct {
	// SessionID may be empty; a new session is created and its id
	// returned.
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is the outcome of one turn.
type ChatResponse struct {
	SessionID      string `json:"session_id"`
	Mode           string `json:"mode"`
	Reply          string `json:"reply"`
	FamilyMember   string `json:"family_member,omitempty"`
	EmotionalState string `json:"emotional_state,omitempty"`
	Command        string `json:"command,omitempty"`
	UsedFallback   bool   `json:"used_fallback,omitempty"`
}

// Chat handles POST /api/v1/assistant/chat.
func (s *APIV1Service) Chat(c echo.Context) error {
	logger := observability.NewRequestContext(slog.Default(), "assistant/chat")

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return writeError(c, apierrors.InvalidArgument("message is required"))
	}

	result, err := s.ChatService.HandleTurn(c.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrTurnInFlight) {
			return writeError(c, apierrors.TurnInFlight())
		}
		logger.Error("chat turn failed", err,
			slog.Int(observability.LogFieldMessageLen, len(req.Message)))
		return writeError(c, apierrors.Internal("failed to process turn", err))
	}

	logger.Info("chat turn completed",
		slog.String(observability.LogFieldSessionID, result.SessionID),
		slog.String(observability.LogFieldMode, string(result.Mode)),
		slog.String(observability.LogFieldMemberID, result.FamilyMemberID),
		slog.Bool("used_fallback", result.UsedFallback),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()),
	)

	return c.JSON(http.StatusOK, &ChatResponse{
		SessionID:      result.SessionID,
		Mode:           string(result.Mode),
		Reply:          result.Reply,
		FamilyMember:   result.FamilyMemberID,
		EmotionalState: string(result.EmotionalState),
		Command:        result.CommandToken,
		UsedFallback:   result.UsedFallback,
	})
}

// ExportHistory handles GET /api/v1/assistant/history/:member/export. It
// returns the member's full transcript as plain text.
func (s *APIV1Service) ExportHistory(c echo.Context) error {
	memberID := strings.ToLower(c.Param("member"))
	if s.Registry.Get(memberID) == nil {
		return writeError(c, apierrors.MemberNotFound(memberID))
	}

	transcript, err := s.MemoryService.ExportHistory(c.Request().Context(), memberID)
	if err != nil {
		return writeError(c, apierrors.Internal("failed to export history", err))
	}
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(transcript))
}

// writeError renders the stable error shape with its mapped status.
func writeError(c echo.Context, apiErr *apierrors.APIError) error {
	return c.JSON(apiErr.HTTPStatus(), apiErr)
}
