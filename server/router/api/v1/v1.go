package v1

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/sarojaillam/assistant/internal/profile"
	"github.com/sarojaillam/assistant/plugin/ai"
	"github.com/sarojaillam/assistant/plugin/ai/chat"
	"github.com/sarojaillam/assistant/plugin/ai/family"
	"github.com/sarojaillam/assistant/plugin/ai/floorplan"
	"github.com/sarojaillam/assistant/plugin/ai/memory"
	"github.com/sarojaillam/assistant/plugin/home"
	"github.com/sarojaillam/assistant/server/middleware"
	"github.com/sarojaillam/assistant/store"
)

// APIV1Service holds the HTTP surface of the assistant: the chat turn,
// the smart-home mock, transcript export, and the floor-plan suggestion
// proxy.
type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store

	Registry         *family.Registry
	HomeState        *home.State
	ChatService      *chat.Service
	MemoryService    memory.Service
	FloorplanService *floorplan.Service

	// suggestionLimiter throttles the suggestion proxy per client IP.
	// The chat turn is not rate limited; single in-flight serialization
	// per session is enough there.
	suggestionLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the API services over the given store.
func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	registry := family.NewRegistry()
	homeState := home.NewState()

	llm := ai.NewLLMService(&ai.LLMConfig{
		APIKey:      profile.AIAPIKey,
		BaseURL:     profile.AIBaseURL,
		Model:       profile.AIModel,
		MaxTokens:   profile.AIMaxTokens,
		Temperature: profile.AITemperature,
	})

	memoryService := memory.NewService(store, func(id string) string {
		if m := registry.Get(id); m != nil {
			return m.Name
		}
		return id
	})

	return &APIV1Service{
		Profile:          profile,
		Store:            store,
		Registry:         registry,
		HomeState:        homeState,
		ChatService:      chat.NewService(registry, llm, memoryService, homeState),
		MemoryService:    memoryService,
		FloorplanService: floorplan.NewService(llm),
		// 2 requests per second with burst of 5 per client.
		suggestionLimiter: middleware.NewRateLimiter(rate.Limit(2), 5),
	}
}

// Register attaches all v1 routes to the echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	apiGroup := echoServer.Group("/api/v1")
	apiGroup.Use(echomw.CORS())

	apiGroup.POST("/assistant/chat", s.Chat)
	apiGroup.GET("/assistant/history/:member/export", s.ExportHistory)

	apiGroup.GET("/home/state", s.GetHomeState)
	apiGroup.POST("/home/command", s.HomeCommand)

	apiGroup.POST("/floorplan/suggestion", s.FloorplanSuggestion)
}
