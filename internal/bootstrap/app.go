package bootstrap

import (
	"time"
	"xpath-finder/internal/browser"
	"xpath-finder/internal/config"
	"xpath-finder/internal/console"
	"xpath-finder/internal/finder"
	"xpath-finder/internal/ports"
	"xpath-finder/internal/usecase"

	"go.uber.org/fx"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.SessionManager))),
			fx.Annotate(finder.NewFinder, fx.As(new(ports.LocatorFinder))),

			usecase.NewUsecase,

			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),

		fx.StartTimeout(10*time.Second),
	)
}
