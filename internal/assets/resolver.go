// Package assets maps free-text tokens to canonical asset identifiers. The
// resolver is best-effort by contract: it never asks the user to clarify and
// flags uncertainty with a caveat instead of dropping a token.
package assets

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

type Resolver struct {
	policy *ResolutionPolicy
	logger *logrus.Logger
}

func NewResolver(lookup Lookup, logger *logrus.Logger) *Resolver {
	if logger == nil {
		logger = logrus.New()
	}
	return &Resolver{
		policy: NewResolutionPolicy(lookup),
		logger: logger,
	}
}

// Resolve extracts ticker candidates from the utterance and resolves each
// through the policy chain, capped at five assets with ordering preserved
// (the first asset is the turn's primary subject). An utterance with no
// extractable tickers falls back to the session's most recent asset, so the
// downstream pipeline is never invoked with zero subjects when any context
// exists.
func (r *Resolver) Resolve(ctx context.Context, utterance string, sess *models.SessionContext) []models.ResolvedAsset {
	cands := ExtractCandidates(utterance)
	if len(cands) > constants.MaxAssetsPerTurn {
		cands = cands[:constants.MaxAssetsPerTurn]
	}

	if len(cands) == 0 {
		if recent := sess.MostRecentAsset(); recent != "" {
			return []models.ResolvedAsset{{
				Symbol: recent,
				Kind:   kindOf(recent),
				Source: models.SourceContext,
			}}
		}
		return nil
	}

	out := make([]models.ResolvedAsset, 0, len(cands))
	for _, cand := range cands {
		asset := r.policy.Resolve(ctx, cand)
		if asset.Caveat != "" {
			r.logger.WithFields(logrus.Fields{
				"token":  cand.Token,
				"caveat": asset.Caveat,
			}).Debug("resolved asset with assumption")
		}
		out = append(out, asset)
	}
	return out
}

func kindOf(symbol string) models.AssetKind {
	if k, ok := constants.PopularMajors[symbol]; ok {
		return models.AssetKind(k)
	}
	return models.AssetKindUnknown
}
