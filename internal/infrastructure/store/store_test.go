package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/page-flow-backend/internal/infrastructure/config"
)

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), config.Config{StoreDriver: config.DriverMemory})
	require.NoError(t, err)
	assert.NotNil(t, s.Books)
	assert.NotNil(t, s.Carts)
	assert.NotNil(t, s.Orders)
	assert.NotNil(t, s.Users)
	assert.NotNil(t, s.Sessions)
	assert.NoError(t, s.Close(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: "sqlite"})
	assert.ErrorContains(t, err, `unknown STORE_DRIVER "sqlite"`)
}

func TestOpen_PostgresWithoutDSN(t *testing.T) {
	_, err := Open(context.Background(), config.Config{StoreDriver: config.DriverPostgres})
	assert.EqualError(t, err, "DATABASE_URL is not set")
}
