package handler

import (
	"net/http"

	"github.com/vicriadty/cafe-app-ai/internal/service"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AssistantHandler struct {
	assistant *service.AssistantService
}

func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// ChatRequest is the assistant chat payload
type ChatRequest struct {
	RestaurantID uint               `json:"restaurant_id"`
	Message      string             `json:"message"`
	History      []service.ChatTurn `json:"history"`
}

// Chat handles a customer question about a restaurant's menu
func (h *AssistantHandler) Chat(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AssistantRequestsCounter.Inc()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	log.Info("Assistant chat request",
		zap.Uint("restaurant_id", req.RestaurantID),
		zap.Int("history_turns", len(req.History)))

	reply, err := h.assistant.Chat(c.Request().Context(), req.RestaurantID, req.Message, req.History)
	if err != nil {
		return respondError(c, log, err)
	}

	if reply.IsFallback {
		log.Warn("Assistant served fallback reply", zap.Uint("restaurant_id", req.RestaurantID))
		prometheus.AssistantFallbackCounter.Inc()
	}
	return c.JSON(http.StatusOK, reply)
}
