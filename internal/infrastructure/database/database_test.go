package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/tenantdesk/internal/shared/config"
)

func TestHealthChecker_Check(t *testing.T) {
	t.Run("no dependencies", func(t *testing.T) {
		status := NewHealthChecker(nil, nil).Check(context.Background())
		assert.Equal(t, StatusHealthy, status.Status)
		assert.Empty(t, status.Dependencies)
	})

	t.Run("healthy database and redis", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()
		mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()

		status := NewHealthChecker(db, client).Check(context.Background())
		assert.Equal(t, StatusHealthy, status.Status)
		assert.Equal(t, StatusHealthy, status.Dependencies["database"].Status)
		assert.Equal(t, StatusHealthy, status.Dependencies["redis"].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database down is unhealthy", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		status := NewHealthChecker(db, nil).Check(context.Background())
		assert.Equal(t, StatusUnhealthy, status.Status)
		assert.Contains(t, status.Dependencies["database"].Message, "connection refused")
	})

	t.Run("redis down only degrades", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer client.Close()
		mr.Close()

		status := NewHealthChecker(nil, client).Check(context.Background())
		assert.Equal(t, StatusDegraded, status.Status)
		assert.Equal(t, StatusUnhealthy, status.Dependencies["redis"].Status)
	})
}

func TestOpen_SQLite(t *testing.T) {
	gdb, err := Open(&config.DatabaseConfig{Driver: config.DriverSQLite, Database: "file::memory:"})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient(context.Background(), &config.RedisConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	cfg := &config.RedisConfig{Enabled: true, Host: mr.Host()}
	_, err = fmt.Sscan(mr.Port(), &cfg.Port)
	require.NoError(t, err)

	client, err = NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()
}
