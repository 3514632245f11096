package usecase

import (
	"xpath-finder/internal/config"
	"xpath-finder/internal/ports"
	"xpath-finder/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Finder  adapters.FinderService
	Browser adapters.BrowserService
}

type Params struct {
	fx.In

	Logger  *zap.Logger
	Config  *config.Config
	Browser ports.SessionManager
	Finder  ports.LocatorFinder
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Finder:  factory.CreateFinderService(),
		Browser: factory.CreateBrowserService(),
	}
}
