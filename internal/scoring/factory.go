package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/store"
)

// New creates a Client from configuration. Remote clients are wrapped
// as caller → retry → logging → breaker → http, so every attempt is
// recorded and the breaker sees each one.
func New(cfg Config, repo store.EventRepo, logger *zap.Logger) (Client, error) {
	if !cfg.Remote() {
		return WithLogging(NewLocalClient(), repo, logger), nil
	}

	base, err := NewHTTPClient(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing scoring client: %w", err)
	}

	guarded := WithBreaker(base, cfg.Breaker, logger)
	logged := WithLogging(guarded, repo, logger)
	return WithRetry(logged, cfg.Retry), nil
}
