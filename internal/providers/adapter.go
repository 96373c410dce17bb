// Package providers turns a fixed ordered list of LLM backends into one
// canonical streaming surface. Each backend speaks its own wire format; the
// adapters normalize everything into Fragment events so callers understand
// exactly one shape regardless of which provider served the request.
package providers

import (
	"context"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

// Fragment is one incremental chunk of a streamed answer in the canonical
// output format. The stream channel closing is the terminal marker.
type Fragment struct {
	Delta string `json:"delta"`
}

// Request is the normalized completion request handed to every adapter.
type Request struct {
	System     string
	Messages   []models.ChatMessage
	Complexity models.ComplexityClass
	MaxTokens  int
}

// StreamAdapter is implemented once per provider. Stream must confirm the
// provider accepted the request before returning: an error means "this
// provider did not serve, try the next one", while a returned channel means
// the stream is adopted and will be drained to close. Adapters pick their
// simple or complex model variant from the request's complexity class.
type StreamAdapter interface {
	Name() string
	Configured() bool
	Stream(ctx context.Context, req Request) (<-chan Fragment, error)
}

const defaultMaxTokens = 1024

func maxTokensOf(req Request) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return defaultMaxTokens
}
