package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{TokenSignKey: "secret"},
		Storage: Storage{
			DB: DB{DSN: "cards.db"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Sessions: Sessions{
			IdleTimeout:   15 * time.Minute,
			SweepInterval: time.Minute,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "valid config passes",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "missing token sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "negative idle timeout",
			mutate:  func(cfg *StructuredConfig) { cfg.Sessions.IdleTimeout = -time.Minute },
			wantErr: ErrInvalidSessionConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{App: App{TokenSignKey: "secret"}}
	cfg.applyDefaults()

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultDSN, cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultIdleTimeout, cfg.Sessions.IdleTimeout)
	assert.Equal(t, DefaultSweepInterval, cfg.Sessions.SweepInterval)
}

func TestApplyDefaults_DoesNotOverrideSetValues(t *testing.T) {
	cfg := validConfig()
	cfg.Server.HTTPAddress = "0.0.0.0:7070"
	cfg.applyDefaults()

	assert.Equal(t, "0.0.0.0:7070", cfg.Server.HTTPAddress)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-secret")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/cards")
	t.Setenv("SESSIONS_IDLE_TIMEOUT", "10m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "env-secret", cfg.App.TokenSignKey)
	assert.Equal(t, "postgres://localhost/cards", cfg.Storage.DB.DSN)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.IdleTimeout)
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "localhost with port", input: "localhost:8080", want: "localhost:8080"},
		{name: "ip with port", input: "127.0.0.1:9090", want: "127.0.0.1:9090"},
		{name: "missing port", input: "localhost", wantErr: true},
		{name: "bad port", input: "localhost:http", wantErr: true},
		{name: "zero port", input: "localhost:0", wantErr: true},
		{name: "bad host", input: "not-an-ip:8080", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}
