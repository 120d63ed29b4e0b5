package scoring

import "time"

// Config holds the scoring client configuration.
type Config struct {
	// URL is the base URL of the scoring service. Empty means offline.
	URL string `mapstructure:"url"`

	// APIVersion is the service version this client speaks. A response
	// advertising a different major version is a contract error.
	APIVersion string `mapstructure:"api_version"`

	// Timeout bounds a single HTTP request.
	Timeout time.Duration `mapstructure:"timeout"`

	// RateLimit caps outgoing requests per second. Zero disables it.
	RateLimit float64 `mapstructure:"rate_limit"`

	// SubjectID is sent as the subject reference. Empty means a fresh
	// id per run.
	SubjectID string `mapstructure:"subject_id"`

	// Offline forces local classification.
	Offline bool `mapstructure:"offline"`

	Retry   RetryConfig   `mapstructure:"retry"`
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// RetryConfig configures retry behavior for transport failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// BreakerConfig configures the circuit breaker around the service.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive transport failures
	// that opens the circuit.
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIVersion: "v1",
		Timeout:    15 * time.Second,
		RateLimit:  2,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Breaker: BreakerConfig{
			FailureThreshold: 5,
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
		},
	}
}

// Remote reports whether submissions go to the scoring service.
func (c Config) Remote() bool {
	return !c.Offline && c.URL != ""
}

// Budget is the longest a single submission may take including retries.
func (c Config) Budget() time.Duration {
	attempts := max(c.Retry.MaxAttempts, 1)
	return time.Duration(attempts)*c.Timeout + time.Duration(attempts-1)*c.Retry.MaxWait
}
