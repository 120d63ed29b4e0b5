package scoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/risk"
)

func TestNew_OfflineUsesLocal(t *testing.T) {
	for _, cfg := range []Config{
		DefaultConfig(),
		{URL: "https://scoring.example.com", Offline: true},
	} {
		c, err := New(cfg, nil, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "local", c.Name())
	}
}

func TestNew_RemoteChain(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		jsonHandler(http.StatusOK, okBody, nil)(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.Retry = retryConfig()
	repo := &recordingRepo{}

	c, err := New(cfg, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "http", c.Name())

	a, err := c.Score(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.Equal(t, risk.TierLow, a.Tier)
	assert.Equal(t, 2, calls)

	require.Len(t, repo.submissions, 2, "each attempt is recorded")
	assert.False(t, repo.submissions[0].Success)
	assert.True(t, repo.submissions[1].Success)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(Config{URL: "::bad"}, nil, nil)
	assert.Error(t, err)
}
