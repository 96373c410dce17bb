package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// AnthropicAdapter normalizes the Anthropic message stream, which delivers
// text as content-block-delta events rather than choice deltas.
type AnthropicAdapter struct {
	client     *anthropic.Client
	configured bool
	logger     *logrus.Logger
}

func NewAnthropicAdapter(apiKey string, logger *logrus.Logger) *AnthropicAdapter {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicAdapter{
		client:     &client,
		configured: apiKey != "",
		logger:     logger,
	}
}

func (a *AnthropicAdapter) Name() string { return "anthropic" }

func (a *AnthropicAdapter) Configured() bool { return a.configured }

func (a *AnthropicAdapter) model(cc models.ComplexityClass) anthropic.Model {
	if cc == models.ComplexityComplex {
		return anthropic.ModelClaudeSonnet4_5
	}
	return anthropic.ModelClaudeHaiku4_5
}

func (a *AnthropicAdapter) Stream(ctx context.Context, req Request) (<-chan Fragment, error) {
	msgs := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case "assistant":
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     a.model(req.Complexity),
		MaxTokens: int64(maxTokensOf(req)),
		Messages:  msgs,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	stream := a.client.Messages.NewStreaming(ctx, params)

	if !stream.Next() {
		defer stream.Close()
		if err := stream.Err(); err != nil {
			return nil, fmt.Errorf("anthropic stream: %w", err)
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

		emit := func(event anthropic.MessageStreamEventUnion) bool {
			delta, ok := textDelta(event)
			if !ok || delta == "" {
				return true
			}
			select {
			case out <- Fragment{Delta: delta}:
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
			a.logger.WithError(err).Warn("anthropic stream ended with error")
		}
	}()
	return out, nil
}

// textDelta extracts the incremental text from a native stream event, if the
// event carries any.
func textDelta(event anthropic.MessageStreamEventUnion) (string, bool) {
	switch ev := event.AsAny().(type) {
	case anthropic.ContentBlockDeltaEvent:
		switch d := ev.Delta.AsAny().(type) {
		case anthropic.TextDelta:
			return d.Text, true
		}
	}
	return "", false
}
