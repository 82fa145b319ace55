//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"giftdrip/internal"
	"giftdrip/internal/controllers"
	"giftdrip/internal/dispatch"
	"giftdrip/internal/providers"
	"giftdrip/internal/push"
	"giftdrip/internal/schedule"
	"giftdrip/internal/services"
	"giftdrip/internal/store"
	"giftdrip/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		schedule.NewTimezoneResolver,
		schedule.NewUnlockCalculator,
		schedule.NewDueEvaluator,
		store.NewRepository,
		push.NewWebPushSender,
		dispatch.NewCycle,
		services.NewGiftService,
		controllers.NewApiController,
		controllers.NewDispatchController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
