package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vicriadty/cafe-app-ai/internal/apperr"
	"github.com/vicriadty/cafe-app-ai/internal/model"
)

// FallbackReply is returned whenever the text-generation collaborator is
// unavailable. Generation failures are never user-fatal.
const FallbackReply = "Sorry, our menu assistant is unavailable right now. " +
	"Please browse the menu above or contact the restaurant directly with any questions."

type AssistantService struct {
	restaurants RestaurantRepository
	generator   Generator
}

// NewAssistantService builds the advisory assistant. generator may be nil
// when no model is configured; every chat then gets the fallback reply.
func NewAssistantService(restaurants RestaurantRepository, generator Generator) *AssistantService {
	return &AssistantService{restaurants: restaurants, generator: generator}
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatReply struct {
	Reply      string `json:"reply"`
	IsFallback bool   `json:"is_fallback"`
}

// Chat answers a customer question about a restaurant's menu.
func (s *AssistantService) Chat(ctx context.Context, restaurantID uint, message string, history []ChatTurn) (*ChatReply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.BadRequest("message is required")
	}

	restaurant, err := s.restaurants.GetByIDWithMenu(ctx, restaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil || !restaurant.Active {
		return nil, apperr.NotFound("restaurant not found or inactive")
	}

	if s.generator == nil {
		return &ChatReply{Reply: FallbackReply, IsFallback: true}, nil
	}

	prompt := buildPrompt(restaurant, message, history)
	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(reply) == "" {
		return &ChatReply{Reply: FallbackReply, IsFallback: true}, nil
	}
	return &ChatReply{Reply: reply, IsFallback: false}, nil
}

// buildPrompt formats the restaurant's available menu and the conversation
// into a single prompt for the generator.
func buildPrompt(restaurant *model.Restaurant, message string, history []ChatTurn) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a helpful assistant for the restaurant %q.", restaurant.Name)
	if restaurant.Description != "" {
		fmt.Fprintf(&b, " About the restaurant: %s.", restaurant.Description)
	}
	b.WriteString(" Answer customer questions about the menu. Current menu:\n")

	for _, category := range restaurant.Categories {
		fmt.Fprintf(&b, "%s:\n", category.Name)
		for _, item := range category.Items {
			if !item.Available {
				continue
			}
			fmt.Fprintf(&b, "- %s ($%s)", item.Name, item.Price.StringFixed(2))
			if item.Description != "" {
				fmt.Fprintf(&b, ": %s", item.Description)
			}
			b.WriteString("\n")
		}
	}

	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
		}
	}

	fmt.Fprintf(&b, "\nCustomer: %s\nAssistant:", message)
	return b.String()
}
