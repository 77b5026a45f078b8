package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sarojaillam/assistant/plugin/home"
	apierrors "github.com/sarojaillam/assistant/server/internal/errors"
	"github.com/sarojaillam/assistant/server/internal/observability"
)

// HomeCommandRequest carries one free-text smart-home instruction.
type HomeCommandRequest struct {
	Message string `json:"message"`
}

// HomeCommandResponse reports the matched command and the resulting
// state.
type HomeCommandResponse struct {
	Command string        `json:"command"`
	Reply   string        `json:"reply"`
	State   home.Snapshot `json:"state"`
}

// GetHomeState handles GET /api/v1/home/state.
func (s *APIV1Service) GetHomeState(c echo.Context) error {
	return c.JSON(http.StatusOK, s.HomeState.Snapshot())
}

// HomeCommand handles POST /api/v1/home/command. This is the
// second-stage match only; intent classification happens in the chat
// turn. An unmatched message is a client error here.
func (s *APIV1Service) HomeCommand(c echo.Context) error {
	logger := observability.NewRequestContext(slog.Default(), "home/command")

	var req HomeCommandRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if strings.TrimSpace(req.Message) == "" {
		return writeError(c, apierrors.InvalidArgument("message is required"))
	}

	cmd, ok := home.ParseCommand(req.Message)
	if !ok {
		return writeError(c, apierrors.CommandNotRecognized("message matched no smart home command"))
	}

	state := s.HomeState.Apply(cmd)
	logger.Info("home command applied",
		slog.String(observability.LogFieldCommand, cmd.Token()),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()),
	)

	return c.JSON(http.StatusOK, &HomeCommandResponse{
		Command: cmd.Token(),
		Reply:   cmd.Acknowledgement(),
		State:   state,
	})
}
