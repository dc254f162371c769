//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/atlaslingo/darlingo/internal/adapter/httpapi"
	"github.com/atlaslingo/darlingo/internal/adapter/repository"
	"github.com/atlaslingo/darlingo/internal/infrastructure/config"
	"github.com/atlaslingo/darlingo/internal/infrastructure/database"
	"github.com/atlaslingo/darlingo/internal/infrastructure/server"
	"github.com/atlaslingo/darlingo/internal/usecase"
	"github.com/atlaslingo/darlingo/internal/usecase/adaptive"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewLessonRepository,
	repository.NewWeaknessRepository,
	repository.NewProgressRepository,
)

var usecaseSet = wire.NewSet(
	adaptive.NewService,
	wire.Bind(new(usecase.AnswerLedger), new(adaptive.Service)),
	provideAuthUsecase,
	provideChatModel,
	usecase.NewLessonUsecase,
	usecase.NewProgressUsecase,
	usecase.NewConversationUsecase,
)

var serverSet = wire.NewSet(
	httpapi.NewHandler,
	server.NewLogger,
	server.NewServer,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Logger", "Server"),
	)
	return nil, nil, nil
}
