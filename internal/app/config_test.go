package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyPlatformDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		env      map[string]string
		wantAddr string
		wantDB   string
	}{
		{
			name:     "Port",
			cfg:      Config{Addr: defaultAddr},
			env:      map[string]string{"PORT": "9000", "DATABASE_URL": "postgres://db"},
			wantAddr: "0.0.0.0:9000",
			wantDB:   "postgres://db",
		},
		{
			name:     "ExplicitWins",
			cfg:      Config{Addr: "127.0.0.1:7000", DatabaseURL: "postgres://mine"},
			env:      map[string]string{"PORT": "9000", "DATABASE_URL": "postgres://db"},
			wantAddr: "127.0.0.1:7000",
			wantDB:   "postgres://mine",
		},
		{
			name:     "Nothing",
			cfg:      Config{Addr: defaultAddr},
			wantAddr: defaultAddr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.applyPlatformDefaults(func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.wantAddr, cfg.Addr)
			assert.Equal(t, tt.wantDB, cfg.DatabaseURL)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	ok := Config{DatabaseURL: "postgres://db", RateLimit: RateLimitConfig{Max: 1, Window: time.Minute}}
	assert.NoError(t, ok.validate())

	noDB := ok
	noDB.DatabaseURL = ""
	assert.ErrorContains(t, noDB.validate(), "database URL is required")

	noLimit := ok
	noLimit.RateLimit.Max = 0
	assert.ErrorContains(t, noLimit.validate(), "invalid rate limit")
}
