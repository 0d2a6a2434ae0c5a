// Package llmservice generates grounded answers from retrieved context
// through a configured chat model.
package llmservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"document-copilot/internal/config"
	"document-copilot/internal/intent"
	"document-copilot/internal/models"
)

// Answer produces a grounded answer for the question from the aggregated
// context. An empty context short-circuits to a fixed message without
// calling the model.
func Answer(ctx context.Context, cfg *config.LLMConfig, question, contextText string, it intent.Intent) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		return models.MsgNoContext, nil
	}

	prompt := buildPrompt(question, contextText, it)
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := GenerateContent(ctx, cfg, messages)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", cfg.Model)
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// GenerateContent calls the configured chat model with the given messages.
func GenerateContent(ctx context.Context, cfg *config.LLMConfig, messages []llms.MessageContent) (*llms.ContentResponse, error) {
	log.Debug().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("Generating content")

	llm, err := newLLM(cfg)
	if err != nil {
		return nil, err
	}
	return llm.GenerateContent(ctx, messages)
}

func newLLM(cfg *config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "ollama":
		return ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	default:
		return openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
	}
}
