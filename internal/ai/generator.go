package ai

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// LLMGenerator adapts a langchaingo model to the assistant's generator
// interface.
type LLMGenerator struct {
	model llms.Model
}

// NewOpenAIGenerator builds a generator backed by the OpenAI chat API. The
// API key is read from the OPENAI_API_KEY environment variable by the
// client.
func NewOpenAIGenerator(modelName string) (*LLMGenerator, error) {
	model, err := openai.New(openai.WithModel(modelName))
	if err != nil {
		return nil, err
	}
	return &LLMGenerator{model: model}, nil
}

func NewLLMGenerator(model llms.Model) *LLMGenerator {
	return &LLMGenerator{model: model}
}

func (g *LLMGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
}
