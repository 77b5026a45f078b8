package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sarojaillam/assistant/plugin/ai/floorplan"
	apierrors "github.com/sarojaillam/assistant/server/internal/errors"
	"github.com/sarojaillam/assistant/server/internal/observability"
)

// FloorplanSuggestionResponse holds the suggestion text. The text is
// never empty; backend failures degrade to a deterministic fallback.
type FloorplanSuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// FloorplanSuggestion handles POST /api/v1/floorplan/suggestion.
func (s *APIV1Service) FloorplanSuggestion(c echo.Context) error {
	logger := observability.NewRequestContext(slog.Default(), "floorplan/suggestion")

	if !s.suggestionLimiter.Allow(c.RealIP()) {
		return writeError(c, apierrors.RateLimitExceeded("too many suggestion requests"))
	}

	var req floorplan.Request
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("malformed request body"))
	}

	suggestion, err := s.FloorplanService.Suggest(c.Request().Context(), &req)
	if err != nil {
		return writeError(c, apierrors.InvalidArgument(err.Error()))
	}

	logger.Info("floor plan suggestion served",
		slog.String("selection_id", req.SelectionID),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()),
	)

	return c.JSON(http.StatusOK, &FloorplanSuggestionResponse{Suggestion: suggestion})
}
