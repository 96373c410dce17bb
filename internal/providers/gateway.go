package providers

import (
	"context"

	"github.com/sirupsen/logrus"
)

const apologyText = "Sorry, I'm having trouble reaching my answer services right now. " +
	"Please try again in a few minutes."

// Gateway tries a fixed ordered provider list and adopts the first stream
// that starts. This is a linear fallback, not a race: only one provider's
// answer is ever used, and speculative parallel generation would burn quota
// for nothing. The adapter list is immutable after construction.
type Gateway struct {
	adapters []StreamAdapter
	logger   *logrus.Logger
}

func NewGateway(adapters []StreamAdapter, logger *logrus.Logger) *Gateway {
	if logger == nil {
		logger = logrus.New()
	}
	return &Gateway{adapters: adapters, logger: logger}
}

// Providers returns the names of the configured adapters, in fallback order.
func (g *Gateway) Providers() []string {
	var out []string
	for _, a := range g.adapters {
		if a.Configured() {
			out = append(out, a.Name())
		}
	}
	return out
}

// Complete streams the answer via the first provider that serves. The
// returned channel always yields zero or more fragments and then closes;
// when every provider is unreachable or unconfigured, it carries a single
// apology fragment so the caller-facing contract holds unconditionally.
// The second return is the name of the provider that served.
func (g *Gateway) Complete(ctx context.Context, req Request) (<-chan Fragment, string) {
	for _, adapter := range g.adapters {
		if !adapter.Configured() {
			continue
		}
		stream, err := adapter.Stream(ctx, req)
		if err != nil {
			g.logger.WithError(err).WithField("provider", adapter.Name()).
				Warn("provider failed, advancing to next")
			continue
		}
		return stream, adapter.Name()
	}

	g.logger.Error("all providers failed or unconfigured, serving apology stream")
	out := make(chan Fragment, 1)
	out <- Fragment{Delta: apologyText}
	close(out)
	return out, "fallback"
}
