package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setenv(t *testing.T, kv map[string]string) {
	for k, v := range kv {
		old, had := os.LookupEnv(k)
		_ = os.Setenv(k, v)
		k := k
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, old)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	setenv(t, map[string]string{
		"ENV":             "test",
		"TEST_DEBUG":      "false",
		"PORT":            "8080",
		"DATABASE_ENGINE": "MEMORY",
		"SECRET_KEY":      "s3cr3t",
	})

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.False(t, conf.Debug)
	assert.Equal(t, "EduChain", conf.AppName)
	assert.Equal(t, "s3cr3t", conf.SecretKey)
	assert.Equal(t, ":8080", conf.Server.Address())
	assert.Equal(t, DBEngineMemory, conf.Database.Engine)
	assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, conf.Server.CORSOrigins)
}

func TestNewConfig_debugDefault(t *testing.T) {
	tests := []struct {
		env       string
		wantEnv   string
		wantDebug bool
	}{
		{"", "DEV", true},
		{"dev", "DEV", true},
		{"PROD", "PROD", false},
		{"qa", "QA", false},
	}
	for _, tt := range tests {
		t.Run(tt.wantEnv, func(t *testing.T) {
			setenv(t, map[string]string{"ENV": tt.env})
			conf := NewConfig()
			assert.Equal(t, tt.wantEnv, conf.Env)
			assert.Equal(t, tt.wantDebug, conf.Debug)
			assert.False(t, conf.TestMode)
		})
	}
}
