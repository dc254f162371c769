// Package app assembles the application object graph.
package app

import (
	"github.com/sirupsen/logrus"

	"github.com/atlaslingo/darlingo/internal/adapter/ai"
	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/infrastructure/server"
	"github.com/atlaslingo/darlingo/internal/repository"
	"github.com/atlaslingo/darlingo/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Logger *logrus.Logger
	Server *server.Server
}

// provideAuthUsecase unpacks auth config into the usecase constructor.
func provideAuthUsecase(cfg *config.Config, users repository.UserRepository) usecase.AuthUsecase {
	return usecase.NewAuthUsecase(users, cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
}

// provideChatModel returns the Anthropic client, or a disabled stub when no
// API key is configured so the rest of the API still boots.
func provideChatModel(cfg *config.Config, logger *logrus.Logger) usecase.ChatModel {
	client, err := ai.NewClient(cfg)
	if err != nil {
		logger.WithError(err).Warn("conversation model disabled")
		return ai.Disabled{}
	}
	return client
}
