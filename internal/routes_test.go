package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftdrip/internal/controllers"
	"giftdrip/internal/dispatch"
	"giftdrip/internal/services"
	"giftdrip/internal/structures"
	"giftdrip/internal/testutil"
)

type routesTestService struct{}

func (routesTestService) GetExperience(_ context.Context, _, _ string, _ time.Time) (*services.GiftExperience, error) {
	return &services.GiftExperience{}, nil
}
func (routesTestService) RecordOpened(_ context.Context, _ services.OpenedEvent) error       { return nil }
func (routesTestService) UpsertSubscription(_ context.Context, _ services.SubscriptionRequest) error {
	return nil
}
func (routesTestService) DeleteSubscription(_ context.Context, _ string) error { return nil }
func (routesTestService) DatabaseHealth(_ context.Context) services.DatabaseHealth {
	return services.DatabaseHealth{OK: true}
}

type routesTestRunner struct{}

func (routesTestRunner) Run(_ context.Context, _ time.Time) (dispatch.Summary, error) {
	return dispatch.Summary{}, nil
}

func TestInitRoutes_RegistersAllEndpoints(t *testing.T) {
	logger := &testutil.MockLogger{}
	conf := &structures.Config{}
	service := routesTestService{}

	apiController := controllers.NewApiController(logger, service, testutil.NewMockCache())
	dispatchController := controllers.NewDispatchController(logger, routesTestRunner{}, conf)
	healthController := controllers.NewHealthController(service, &testutil.MockSender{}, conf)

	router := InitRoutes(apiController, dispatchController, healthController)
	routes := router.GetRoutes()
	require.Len(t, routes, 7)

	urls := make(map[string]int)
	for _, route := range routes {
		urls[route.Url]++
	}
	assert.Equal(t, 1, urls["/api/v1/health"])
	assert.Equal(t, 1, urls["/api/v1/runtime"])
	assert.Equal(t, 1, urls["/api/v1/gift"])
	assert.Equal(t, 1, urls["/api/v1/events/opened"])
	assert.Equal(t, 2, urls["/api/v1/notifications/subscriptions"])
	assert.Equal(t, 1, urls["/api/v1/notifications/dispatch"])
}
