package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "")
	t.Setenv("SESSION_DRIVER", "")
	t.Setenv("SESSION_FILE", "/tmp/storefront-test/session.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SessionDriverFile, cfg.SessionDriver)
	assert.Equal(t, "/tmp/storefront-test/session.json", cfg.SessionFile)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "http://localhost:4001")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "5s")
	t.Setenv("SESSION_DRIVER", "MEMORY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4001", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SessionDriverMemory, cfg.SessionDriver)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"timeout not duration": {"STOREFRONT_REQUEST_TIMEOUT": "twenty"},
		"relative url":         {"STOREFRONT_API_URL": "/api"},
		"unknown driver":       {"SESSION_DRIVER": "redis"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
