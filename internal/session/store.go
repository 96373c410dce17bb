// Package session is the per-session rolling memory: recently mentioned
// assets and addresses, a compact running summary, and the last asset the
// session was about. Backed by redis; rows are last-write-wins at session-id
// granularity, which is safe because a single session never issues
// concurrent turns.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
)

type Store struct {
	client redis.Cmdable
}

func NewStore(client redis.Cmdable) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	return &Store{client: client}, nil
}

// Load returns the session's rolling memory, merging the persisted state
// with entities freshly extracted from the visible history. A session with
// no persisted state starts empty. Deterministic: loading twice with the
// same inputs yields the same ordering.
func (s *Store) Load(ctx context.Context, sessionID string, history []models.ChatMessage) (*models.SessionContext, error) {
	sess := &models.SessionContext{SessionID: sessionID}

	val, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err == nil {
		if uerr := json.Unmarshal([]byte(val), sess); uerr != nil {
			return nil, fmt.Errorf("unmarshal session: %w", uerr)
		}
		sess.SessionID = sessionID
	}

	fresh := ExtractHistoryAssets(history)
	sess.RecentAssets = mergeAssets(fresh, sess.RecentAssets)

	for _, msg := range history {
		for _, addr := range ExtractAddresses(msg.Content) {
			sess.RecentAddresses = mergeAddress(sess.RecentAddresses, addr)
		}
	}

	return sess, nil
}

// Save upserts the session's memory. Callers run this fire-and-forget after
// the response stream has closed; failures are theirs to log.
func (s *Store) Save(ctx context.Context, sess *models.SessionContext) error {
	if sess == nil || sess.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	sess.UpdatedAt = time.Now().UTC()

	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.SessionID), b, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Touch merges the turn's resolved assets into the session and bumps the
// message count. The first asset becomes the session's last resolved asset.
func Touch(sess *models.SessionContext, resolved []models.ResolvedAsset) {
	symbols := make([]string, 0, len(resolved))
	for _, a := range resolved {
		symbols = append(symbols, a.Symbol)
		if a.OnchainAddress != "" {
			sess.RecentAddresses = mergeAddress(sess.RecentAddresses, models.ChainAddress{
				Address: a.OnchainAddress,
				Family:  a.OnchainFamily,
			})
		}
	}
	sess.RecentAssets = mergeAssets(symbols, sess.RecentAssets)
	if len(symbols) > 0 {
		sess.LastResolvedAsset = symbols[0]
	}
	sess.MessageCount++
}

// mergeAssets prepends fresh symbols to the persisted list, most-recent
// first, deduplicated, capped.
func mergeAssets(fresh, persisted []string) []string {
	out := make([]string, 0, constants.MaxRecentAssets)
	seen := make(map[string]bool)
	for _, list := range [][]string{fresh, persisted} {
		for _, sym := range list {
			if sym == "" || seen[sym] {
				continue
			}
			seen[sym] = true
			out = append(out, sym)
			if len(out) >= constants.MaxRecentAssets {
				return out
			}
		}
	}
	return out
}

func mergeAddress(list []models.ChainAddress, addr models.ChainAddress) []models.ChainAddress {
	for _, a := range list {
		if a.Address == addr.Address {
			return list
		}
	}
	return append(list, addr)
}

func sessionKey(id string) string {
	return constants.RedisKeySessionPrefix + id
}
