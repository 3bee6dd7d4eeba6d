package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/seabattle/model"
)

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BOARD_SIZE", "12")
	t.Setenv("NOTIFY_URL", "ws://127.0.0.1:7777/events")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 12, cfg.BoardSize)
	assert.Equal(t, "ws://127.0.0.1:7777/events", cfg.NotifyURL)
}

func TestLoadConfigBadBoardSize(t *testing.T) {
	t.Setenv("BOARD_SIZE", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBoardSize, cfg.BoardSize)
}
