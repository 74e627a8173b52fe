package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "5000", cfg.ServerPort)
	require.Equal(t, "sonicstream", cfg.DBName)
	require.Equal(t, "sonicstream", cfg.MinioBucket)
	require.Equal(t, 72, cfg.JWTExpiresIn)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("JWT_EXPIRES_IN", "not-a-number")

	cfg := Load()

	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, 3, cfg.RedisDB)
	require.True(t, cfg.MinioUseSSL)
	// 非法数值回退到默认值
	require.Equal(t, 72, cfg.JWTExpiresIn)
}
