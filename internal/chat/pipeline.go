// Package chat wires the request-time decision pipeline: session load,
// intent routing, entity resolution, the data fan-out, prompt assembly, the
// provider stream, and the fire-and-forget writes that follow it.
package chat

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/assets"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/intent"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/providers"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/session"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/tools"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/usage"
)

type Pipeline struct {
	Sessions     *session.Store
	Resolver     *assets.Resolver
	Orchestrator *tools.Orchestrator
	Gateway      *providers.Gateway
	Ledger       *usage.Ledger
	Logger       *logrus.Logger
}

type TurnInput struct {
	SessionID string
	Identity  string
	IsAdmin   bool
	Messages  []models.ChatMessage
}

// TurnResult carries the adopted provider stream plus Finish, which the
// caller invokes once after the stream has fully closed. Finish first
// releases the provider stream's deadline, then detaches:
// context persistence and the usage entry run on their own goroutine with
// their own deadline, and their failures only ever reach the log.
type TurnResult struct {
	Stream   <-chan providers.Fragment
	Provider string
	Intent   models.Intent
	Finish   func()
}

// Run executes one turn. Every external collaborator is optional at runtime:
// a failing session store or data backend degrades the answer, it never
// aborts the turn.
func (p *Pipeline) Run(ctx context.Context, in TurnInput) *TurnResult {
	utterance := models.LastUserMessage(in.Messages)

	sess, err := p.Sessions.Load(ctx, in.SessionID, in.Messages)
	if err != nil {
		p.Logger.WithError(err).WithField("session", in.SessionID).Warn("session load failed, starting empty")
		sess = &models.SessionContext{SessionID: in.SessionID}
	}

	decision := intent.Route(utterance, sess)

	var resolved []models.ResolvedAsset
	if decision.Intent != models.IntentGeneralChat {
		resolved = p.Resolver.Resolve(ctx, utterance, sess)
	}

	bundle := &tools.Bundle{}
	if len(decision.DataFlags) > 0 || decision.MatchedPreset != nil {
		bundle = p.Orchestrator.Fetch(ctx, decision, resolved)
	}

	req := providers.Request{
		System:     BuildSystemPrompt(decision, resolved, bundle, sess),
		Messages:   in.Messages,
		Complexity: decision.Complexity,
	}

	// The answer stream gets a hard ceiling; Finish releases it once the
	// caller has drained (or abandoned) the stream.
	streamCtx, cancelStream := context.WithTimeout(ctx, constants.ProviderTimeout)
	stream, provider := p.Gateway.Complete(streamCtx, req)

	p.Logger.WithFields(logrus.Fields{
		"session":  in.SessionID,
		"intent":   decision.Intent,
		"assets":   len(resolved),
		"provider": provider,
	}).Info("turn streaming")

	return &TurnResult{
		Stream:   stream,
		Provider: provider,
		Intent:   decision.Intent,
		Finish:   p.finisher(in, sess, resolved, cancelStream),
	}
}

func (p *Pipeline) finisher(in TurnInput, sess *models.SessionContext, resolved []models.ResolvedAsset, cancelStream context.CancelFunc) func() {
	return func() {
		cancelStream()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), constants.PersistTimeout)
			defer cancel()

			session.Touch(sess, resolved)
			if err := p.Sessions.Save(ctx, sess); err != nil {
				p.Logger.WithError(err).WithField("session", sess.SessionID).Error("session persist failed")
			}
			if err := p.Ledger.Record(ctx, in.Identity); err != nil {
				p.Logger.WithError(err).WithField("identity", in.Identity).Error("usage record failed")
			}
		}()
	}
}
