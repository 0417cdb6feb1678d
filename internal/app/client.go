package app

import (
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/config"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
)

// NewSodaClient builds the data portal client from configuration.
//
// Behavior:
//   - Applies the configured per-request timeout and retry limit.
//   - Sends the X-App-Token header only when a token is configured;
//     anonymous access works but is throttled by the portal.
//
// Tests point SODA_BASE_URL at a stub portal instead of substituting the
// client, so the whole fetch path stays under test.
func NewSodaClient(cfg config.Config) *soda.Client {
	opts := []soda.ClientOption{
		soda.WithTimeout(time.Duration(cfg.Soda.TimeoutSeconds) * time.Second),
		soda.WithMaxRetries(cfg.Soda.MaxRetries),
	}
	if cfg.Soda.AppToken != "" {
		opts = append(opts, soda.WithAppToken(cfg.Soda.AppToken))
	}
	return soda.NewClient(cfg.Soda.BaseURL, opts...)
}
