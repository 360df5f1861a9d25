package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PAGE_FLOW_ADDR", "STORE_DRIVER", "SESSION_TTL", "ADMIN_EMAILS", "CHANNEL_POOL_SIZE", "REJECT_SHARED_PASSWORDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 4, cfg.ChannelPoolSize)
	assert.Nil(t, cfg.AdminEmails)
	assert.False(t, cfg.RejectSharedPasswords)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PAGE_FLOW_ADDR", ":9090")
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ADMIN_EMAILS", " Admin@Example.com, ,ops@example.com")
	t.Setenv("CHANNEL_POOL_SIZE", "not-a-number")
	t.Setenv("REJECT_SHARED_PASSWORDS", "1")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.Equal(t, 4, cfg.ChannelPoolSize)
	assert.True(t, cfg.RejectSharedPasswords)
}
