package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// OpenAIAdapter normalizes the OpenAI chat-completion chunk stream, which
// delivers incremental deltas under choices[0].delta.content.
type OpenAIAdapter struct {
	client     *openai.Client
	configured bool
	logger     *logrus.Logger
}

func NewOpenAIAdapter(apiKey string, logger *logrus.Logger) *OpenAIAdapter {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIAdapter{
		client:     &client,
		configured: apiKey != "",
		logger:     logger,
	}
}

func (a *OpenAIAdapter) Name() string { return "openai" }

func (a *OpenAIAdapter) Configured() bool { return a.configured }

func (a *OpenAIAdapter) model(cc models.ComplexityClass) openai.ChatModel {
	if cc == models.ComplexityComplex {
		return openai.ChatModelGPT4o
	}
	return openai.ChatModelGPT4oMini
}

func (a *OpenAIAdapter) Stream(ctx context.Context, req Request) (<-chan Fragment, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			msgs = append(msgs, openai.UserMessage(m.Content))
		}
	}

	stream := a.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:               a.model(req.Complexity),
		Messages:            msgs,
		MaxCompletionTokens: openai.Int(int64(maxTokensOf(req))),
	})

	// Confirm the provider actually serves before adopting the stream, so
	// the gateway can still fall back on a dead-on-arrival request.
	if !stream.Next() {
		defer stream.Close()
		if err := stream.Err(); err != nil {
			return nil, fmt.Errorf("openai stream: %w", err)
		}
		out := make(chan Fragment)
		close(out)
		return out, nil
	}
	first := stream.Current()

	out := make(chan Fragment)
	go func() {
		defer close(out)
		defer stream.Close()

		emit := func(chunk openai.ChatCompletionChunk) bool {
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				return true
			}
			select {
			case out <- Fragment{Delta: chunk.Choices[0].Delta.Content}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit(first) {
			return
		}
		for stream.Next() {
			if !emit(stream.Current()) {
				return
			}
		}
		if err := stream.Err(); err != nil && a.logger != nil {
			a.logger.WithError(err).Warn("openai stream ended with error")
		}
	}()
	return out, nil
}
