package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// OpenRouterAdapter is the last rung of the chain: an OpenAI-compatible
// aggregator that can route to many upstream models behind one credential.
type OpenRouterAdapter struct {
	simpleLLM  llms.Model
	complexLLM llms.Model
	configured bool
	logger     *logrus.Logger
}

func NewOpenRouterAdapter(apiKey string, logger *logrus.Logger) (*OpenRouterAdapter, error) {
	a := &OpenRouterAdapter{configured: apiKey != "", logger: logger}
	if !a.configured {
		return a, nil
	}

	newModel := func(model string) (llms.Model, error) {
		return lcopenai.New(
			lcopenai.WithToken(apiKey),
			lcopenai.WithBaseURL("https://openrouter.ai/api/v1"),
			lcopenai.WithModel(model),
		)
	}

	var err error
	if a.simpleLLM, err = newModel("openai/gpt-4.1-mini"); err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter LLM: %w", err)
	}
	if a.complexLLM, err = newModel("openai/gpt-4.1"); err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter LLM: %w", err)
	}
	return a, nil
}

func (a *OpenRouterAdapter) Name() string { return "openrouter" }

func (a *OpenRouterAdapter) Configured() bool { return a.configured }

func (a *OpenRouterAdapter) model(cc models.ComplexityClass) llms.Model {
	if cc == models.ComplexityComplex {
		return a.complexLLM
	}
	return a.simpleLLM
}

func (a *OpenRouterAdapter) Stream(ctx context.Context, req Request) (<-chan Fragment, error) {
	content := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if req.System != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	for _, m := range req.Messages {
		role := llms.ChatMessageTypeHuman
		if m.Role == "assistant" {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	out := make(chan Fragment)
	errCh := make(chan error, 1)
	var started sync.Once
	startedCh := make(chan struct{})

	go func() {
		defer close(out)
		_, err := a.model(req.Complexity).GenerateContent(ctx, content,
			llms.WithMaxTokens(maxTokensOf(req)),
			llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
				started.Do(func() { close(startedCh) })
				select {
				case out <- Fragment{Delta: string(chunk)}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		errCh <- err
		if err != nil && a.logger != nil {
			a.logger.WithError(err).Warn("openrouter stream ended with error")
		}
	}()

	// Adopt the stream on the first chunk; surface an error only when the
	// call fails before producing anything.
	select {
	case <-startedCh:
		return out, nil
	case err := <-errCh:
		if err != nil {
			return nil, fmt.Errorf("openrouter stream: %w", err)
		}
		return out, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
