package chat

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/assets"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/constants"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/models"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/providers"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/session"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/tools"
	"github.com/Cubenft2/xray-alpha-hub-sub000/internal/usage"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use different DB for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	err = client.FlushDB(ctx).Err()
	require.NoError(t, err)

	return client
}

func cleanupTestRedis(client *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = client.FlushDB(ctx).Err()
	_ = client.Close()
}

type scriptedAdapter struct {
	fragments []string
	lastReq   providers.Request
	lastCtx   context.Context
}

func (s *scriptedAdapter) Name() string     { return "scripted" }
func (s *scriptedAdapter) Configured() bool { return true }

func (s *scriptedAdapter) Stream(ctx context.Context, req providers.Request) (<-chan providers.Fragment, error) {
	s.lastReq = req
	s.lastCtx = ctx
	out := make(chan providers.Fragment, len(s.fragments))
	for _, d := range s.fragments {
		out <- providers.Fragment{Delta: d}
	}
	close(out)
	return out, nil
}

func newTestPipeline(t *testing.T, client *redis.Client, adapter providers.StreamAdapter) *Pipeline {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	sessions, err := session.NewStore(client)
	require.NoError(t, err)
	ledger, err := usage.NewLedger(client, 10, "UTC")
	require.NoError(t, err)

	return &Pipeline{
		Sessions:     sessions,
		Resolver:     assets.NewResolver(nil, logger),
		Orchestrator: &tools.Orchestrator{Logger: logger},
		Gateway:      providers.NewGateway([]providers.StreamAdapter{adapter}, logger),
		Ledger:       ledger,
		Logger:       logger,
	}
}

func TestPipeline_Run(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	adapter := &scriptedAdapter{fragments: []string{"BTC is ", "up today."}}
	p := newTestPipeline(t, client, adapter)

	result := p.Run(context.Background(), TurnInput{
		SessionID: "s1",
		Identity:  "user-a",
		Messages:  []models.ChatMessage{{Role: "user", Content: "what's the price of BTC"}},
	})

	assert.Equal(t, "scripted", result.Provider)
	assert.Equal(t, models.IntentPrice, result.Intent)

	var answer string
	for f := range result.Stream {
		answer += f.Delta
	}
	assert.Equal(t, "BTC is up today.", answer)

	// The adapter saw the assembled system prompt with the resolved subject.
	assert.Contains(t, adapter.lastReq.System, "BTC [crypto] (primary)")
	assert.Equal(t, models.ComplexitySimple, adapter.lastReq.Complexity)
}

func TestPipeline_FinishPersistsSessionAndUsage(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	adapter := &scriptedAdapter{fragments: []string{"ok"}}
	p := newTestPipeline(t, client, adapter)

	ctx := context.Background()
	result := p.Run(ctx, TurnInput{
		SessionID: "s2",
		Identity:  "user-b",
		Messages:  []models.ChatMessage{{Role: "user", Content: "analyze SOL for me"}},
	})
	for range result.Stream {
	}
	result.Finish()

	// Finish detaches onto its own goroutine; poll for the writes.
	require.Eventually(t, func() bool {
		sess, err := p.Sessions.Load(ctx, "s2", nil)
		if err != nil || sess.MessageCount != 1 {
			return false
		}
		remaining, err := p.Ledger.Remaining(ctx, "user-b", false)
		return err == nil && remaining == 9
	}, 3*time.Second, 50*time.Millisecond)

	sess, err := p.Sessions.Load(ctx, "s2", nil)
	require.NoError(t, err)
	assert.Equal(t, "SOL", sess.LastResolvedAsset)
	assert.Equal(t, []string{"SOL"}, sess.RecentAssets)
}

func TestPipeline_StreamDeadlineIsBoundedAndReleasedByFinish(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	adapter := &scriptedAdapter{fragments: []string{"ok"}}
	p := newTestPipeline(t, client, adapter)

	result := p.Run(context.Background(), TurnInput{
		SessionID: "s6",
		Identity:  "user-f",
		Messages:  []models.ChatMessage{{Role: "user", Content: "price of BTC"}},
	})

	deadline, ok := adapter.lastCtx.Deadline()
	require.True(t, ok, "the provider call must carry a deadline")
	assert.WithinDuration(t, time.Now().Add(constants.ProviderTimeout), deadline, 5*time.Second)

	for range result.Stream {
	}
	select {
	case <-adapter.lastCtx.Done():
		t.Fatal("stream context canceled before Finish")
	default:
	}

	result.Finish()
	select {
	case <-adapter.lastCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("Finish did not release the stream context")
	}
}

func TestPipeline_GeneralChatSkipsResolutionAndFetch(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	adapter := &scriptedAdapter{fragments: []string{"you're welcome!"}}
	p := newTestPipeline(t, client, adapter)

	result := p.Run(context.Background(), TurnInput{
		SessionID: "s3",
		Identity:  "user-c",
		Messages:  []models.ChatMessage{{Role: "user", Content: "thanks!"}},
	})

	assert.Equal(t, models.IntentGeneralChat, result.Intent)
	for range result.Stream {
	}
	assert.NotContains(t, adapter.lastReq.System, "## Subjects")
}

func TestPipeline_SessionContextCarriesAcrossTurns(t *testing.T) {
	client := setupTestRedis(t)
	defer cleanupTestRedis(client)

	adapter := &scriptedAdapter{fragments: []string{"..."}}
	p := newTestPipeline(t, client, adapter)
	ctx := context.Background()

	first := p.Run(ctx, TurnInput{
		SessionID: "s4",
		Identity:  "user-d",
		Messages:  []models.ChatMessage{{Role: "user", Content: "price of PEPE"}},
	})
	for range first.Stream {
	}
	first.Finish()

	require.Eventually(t, func() bool {
		sess, err := p.Sessions.Load(ctx, "s4", nil)
		return err == nil && sess.LastResolvedAsset == "PEPE"
	}, 3*time.Second, 50*time.Millisecond)

	// A follow-up with no ticker resolves against the remembered asset.
	second := p.Run(ctx, TurnInput{
		SessionID: "s4",
		Identity:  "user-d",
		Messages:  []models.ChatMessage{{Role: "user", Content: "and the chart?"}},
	})
	for range second.Stream {
	}

	assert.Equal(t, models.IntentTechnical, second.Intent)
	assert.Contains(t, adapter.lastReq.System, "PEPE")
}
