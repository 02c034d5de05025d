package rewrite

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the subset of *openai.Client used for rewriting, so that any
// OpenAI-compatible backend or a test double can be plugged in.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const systemPrompt = "You turn questions into keyword queries for a spoken-word transcript search engine. " +
	"Keep the speaker's likely wording, drop filler, do not add quotes or operators. " +
	"Return ONLY the rewritten query on one line."

// Rewriter turns free-form user text into a terser transcript query.
type Rewriter struct {
	Client ChatClient
	Model  string
}

// NewOpenAI returns a Rewriter backed by an OpenAI-compatible server.
func NewOpenAI(baseURL, apiKey, model string) *Rewriter {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Rewriter{Client: openai.NewClientWithConfig(cfg), Model: model}
}

// Rewrite returns the rewritten query. Any failure, or an empty answer,
// falls back to the original text.
func (r *Rewriter) Rewrite(ctx context.Context, original string) string {
	if r == nil || r.Client == nil || strings.TrimSpace(original) == "" {
		return original
	}
	resp, err := r.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.Model,
		Temperature: 0.2,
		MaxTokens:   64,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: original},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("query rewrite failed; using original")
		return original
	}
	if len(resp.Choices) == 0 {
		return original
	}
	out := firstLine(resp.Choices[0].Message.Content)
	if out == "" {
		return original
	}
	log.Debug().Str("original", original).Str("rewritten", out).Msg("query rewrite")
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(strings.TrimSpace(s), `"'`)
}
