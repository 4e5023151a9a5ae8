package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// MintPolicy values accepted by MINT_POLICY.
const (
	// MintPolicyAny lets any logged-in user mint grants, matching the
	// historical behaviour where only the UI hid the mint form.
	MintPolicyAny = "any"
	// MintPolicyElevated restricts minting to Representative and CEO
	// server-side.
	MintPolicyElevated = "elevated"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	BaseURL  string `env:"BASE_URL, default=http://localhost:8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs session cookies. When empty a random secret is
	// generated at startup, which invalidates all sessions on restart.
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=24h"`

	// MintPolicy is "any" or "elevated"; see the constants above.
	MintPolicy string `env:"MINT_POLICY, default=any"`
	// ClampBalances floors balances at zero when edit-balance would drive
	// them negative.
	ClampBalances bool `env:"CLAMP_BALANCES, default=false"`

	RenderWorkers int   `env:"RENDER_WORKERS, default=4"`
	CEOBalance    int64 `env:"CEO_BALANCE,    default=10000000"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
