package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, 60*time.Second, cfg.MaxDuration)
	assert.Equal(t, 5*time.Second, cfg.NoticeTTL)
	assert.Equal(t, 4*time.Second, cfg.FlashTTL)
	assert.Equal(t, time.Second, cfg.FragmentInterval)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, "echo", cfg.Backend)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name        string
		values      map[string]any
		expectError bool
	}{
		{
			name:   "custom server",
			values: map[string]any{"server_url": "https://notes.example.com"},
		},
		{
			name:        "relative server url",
			values:      map[string]any{"server_url": "notes"},
			expectError: true,
		},
		{
			name:        "unsupported sample rate",
			values:      map[string]any{"sample_rate": 44100},
			expectError: true,
		},
		{
			name:        "zero ceiling",
			values:      map[string]any{"max_duration": "0s"},
			expectError: true,
		},
		{
			name:        "unknown backend",
			values:      map[string]any{"backend": "carrier-pigeon"},
			expectError: true,
		},
		{
			name:        "gemini without key",
			values:      map[string]any{"backend": "gemini"},
			expectError: true,
		},
		{
			name:   "gemini with key",
			values: map[string]any{"backend": "gemini", "gemini_api_key": "k"},
		},
		{
			name:        "bad log level",
			values:      map[string]any{"log_level": "loud"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for key, value := range tt.values {
				v.Set(key, value)
			}
			_, err := Load(v)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server_url: http://10.0.0.2:9000\nmax_duration: 2m\nnotice_ttl: 3s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:9000", cfg.ServerURL)
	assert.Equal(t, 2*time.Minute, cfg.MaxDuration)
	assert.Equal(t, 3*time.Second, cfg.NoticeTTL)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	v := viper.New()
	SetDefaults(v)
	require.NoError(t, Save(v, path, map[string]any{"server_url": "http://box:8000"}))

	reread := viper.New()
	reread.SetConfigFile(path)
	require.NoError(t, reread.ReadInConfig())
	cfg, err := Load(reread)
	require.NoError(t, err)
	assert.Equal(t, "http://box:8000", cfg.ServerURL)
}
