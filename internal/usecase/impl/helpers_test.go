package impl

import (
	"io"
	"log/slog"

	"skatehubba/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Chat:    &config.ChatConfig{},
		Storage: &config.StorageConfig{MaxAvatarBytes: 1024},
	}
}
