// Package ai wraps the Gemini SDK for the commentary drafting and rewriting
// flows. The client is constructed once at process start and injected, never
// lazily initialized behind a global.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/docstore"
)

type Assistant struct {
	client *genai.Client
	config *docstore.AIConfigStore
	log    zerolog.Logger
}

func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

func NewAssistant(client *genai.Client, config *docstore.AIConfigStore, log zerolog.Logger) *Assistant {
	return &Assistant{
		client: client,
		config: config,
		log:    log.With().Str("component", "ai").Logger(),
	}
}

// DraftCommentary asks the model to draft a report section from inspection
// facts. Generation parameters are re-read from the config store on every
// call so a config write takes effect on the next request.
func (a *Assistant) DraftCommentary(ctx context.Context, section string, facts string) (string, error) {
	prompt := fmt.Sprintf(
		"You are assisting a property valuer. Draft the %q section of a valuation report "+
			"in a neutral, professional register. Base the text strictly on these inspection notes, "+
			"do not invent facts:\n\n%s",
		section, facts)
	return a.generate(ctx, prompt)
}

// RewriteText asks the model to rework existing report text per instruction,
// preserving the facts it states.
func (a *Assistant) RewriteText(ctx context.Context, instruction string, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Rewrite the following valuation report text. Keep every factual statement intact. "+
			"Instruction: %s\n\nText:\n%s",
		instruction, text)
	return a.generate(ctx, prompt)
}

func (a *Assistant) generate(ctx context.Context, prompt string) (string, error) {
	cfg, err := a.config.Get(ctx)
	if err != nil {
		return "", err
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopP:            genai.Ptr(cfg.TopP),
		TopK:            genai.Ptr(cfg.TopK),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	resp, err := a.client.Models.GenerateContent(ctx, cfg.Model, genai.Text(prompt), genCfg)
	if err != nil {
		a.log.Error().Err(err).Str("model", cfg.Model).Msg("generation request failed")
		return "", apperr.Wrap(apperr.KindExternal, "text generation failed", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", apperr.New(apperr.KindExternal, "model returned no text")
	}

	a.log.Debug().Str("model", cfg.Model).Int("chars", len(text)).Msg("generation succeeded")
	return text, nil
}
