package internal

import (
	"net/http"

	"giftdrip/internal/controllers"
	"giftdrip/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, dispatchController *controllers.DispatchController, healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/v1/health", http.HandlerFunc(healthController.ApiHealth))
	routers.Get("/api/v1/runtime", http.HandlerFunc(healthController.Runtime))
	routers.Get("/api/v1/gift", http.HandlerFunc(apiController.GetGift))
	routers.Post("/api/v1/events/opened", http.HandlerFunc(apiController.RecordOpened))
	routers.Post("/api/v1/notifications/subscriptions", http.HandlerFunc(apiController.UpsertSubscription))
	routers.Delete("/api/v1/notifications/subscriptions", http.HandlerFunc(apiController.DeleteSubscription))
	routers.Post("/api/v1/notifications/dispatch", http.HandlerFunc(dispatchController.Dispatch))
	return routers
}
