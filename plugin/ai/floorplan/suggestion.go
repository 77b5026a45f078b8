// Package floorplan proxies architectural-modification requests to the
// completion backend and returns the raw suggestion text.
package floorplan

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarojaillam/assistant/plugin/ai"
)

// systemInstruction frames every suggestion request. It is fixed; only
// the user instruction carries per-request content.
const systemInstruction = `You are an experienced residential architect reviewing the floor plan of a South Indian family home. The client selects a rectangular area of the plan and describes a modification. Reply with a short, practical suggestion for the selected area: what to change, rough placement, and one caution to keep in mind. Keep it under 120 words and do not use markdown.`

// Area is the selected rectangle, each field a percentage of the full
// plan in the range 0 to 100.
type Area struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Request is one suggestion call. Duplicate calls with identical input
// may return different text; there is no cache and no idempotency key.
type Request struct {
	SelectionID string `json:"selection_id"`
	Instruction string `json:"instruction"`
	Area        Area   `json:"area"`
}

// Validate checks the request shape. The selection id is opaque and may
// be empty.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Instruction) == "" {
		return errors.New("instruction is required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"x", r.Area.X},
		{"y", r.Area.Y},
		{"width", r.Area.Width},
		{"height", r.Area.Height},
	} {
		if f.value < 0 || f.value > 100 {
			return errors.Errorf("area.%s must be between 0 and 100, got %.1f", f.name, f.value)
		}
	}
	return nil
}

// Service forwards suggestion requests to the completion backend. It has
// no state and no retry logic beyond the backend's own behavior.
type Service struct {
	llm ai.LLMService
}

// NewService creates a suggestion service backed by the given completion
// service. llm may be nil; every call then returns the fallback text.
func NewService(llm ai.LLMService) *Service {
	return &Service{llm: llm}
}

// Suggest returns suggestion text for the selected area. A backend
// failure degrades to a deterministic fallback suggestion; the returned
// text is never empty. One attempt only.
func (s *Service) Suggest(ctx context.Context, req *Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	if s.llm == nil {
		return fallbackSuggestion(req), nil
	}

	reply, err := s.llm.Chat(ctx, []ai.Message{
		ai.SystemPrompt(systemInstruction),
		ai.UserMessage(userInstruction(req)),
	})
	if err != nil {
		slog.Warn("floor plan suggestion backend failed, using fallback",
			"error", err, "selection_id", req.SelectionID)
		return fallbackSuggestion(req), nil
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		return fallbackSuggestion(req), nil
	}
	return reply, nil
}

// userInstruction embeds the selection's width/height percentages and
// the free-text instruction.
func userInstruction(req *Request) string {
	return fmt.Sprintf(
		"The selected area covers %.0f%% of the plan's width and %.0f%% of its height. Requested modification: %s",
		req.Area.Width, req.Area.Height, strings.TrimSpace(req.Instruction))
}

// fallbackSuggestion is the deterministic reply used when the backend is
// unavailable. It restates the request so the client still gets an
// actionable, non-empty suggestion.
func fallbackSuggestion(req *Request) string {
	return fmt.Sprintf(
		"For the selected area (about %.0f%% by %.0f%% of the plan), '%s' looks feasible. Keep load-bearing walls untouched, confirm plumbing and electrical runs with the site engineer, and leave at least 90cm of clear passage around the modified space.",
		req.Area.Width, req.Area.Height, strings.TrimSpace(req.Instruction))
}
