package services_test

import (
	"context"
	"testing"

	"reseller/internal/models"
	"reseller/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsService_Report(t *testing.T) {
	repo := seededOrders(t,
		newOrder("1", models.StatusPending, 50, 15),
		newOrder("3", models.StatusShipped, 30, 13),
		newOrder("4", models.StatusDelivered, 60, 12),
	)
	orders := services.NewOrderService(repo, nil)
	service := services.NewAnalyticsService(sampleSnapshot(), orders)

	report, err := service.Report()
	require.NoError(t, err)
	assert.Equal(t, "1250", report.TotalRevenue.String())
	assert.Equal(t, 15, report.TotalOrders)
	assert.Equal(t, 1, report.Live.PendingCount)
	assert.Equal(t, "60", report.Live.DeliveredProfit.String())

	_, err = orders.TransitionOrder(context.Background(), "3", models.StatusDelivered)
	require.NoError(t, err)

	report, err = service.Report()
	require.NoError(t, err)
	assert.Equal(t, "90", report.Live.DeliveredProfit.String())
	assert.Equal(t, "320", report.TotalProfit.String(), "snapshot figures are fixed")
}

func TestAnalyticsService_ReportDoesNotShareSnapshot(t *testing.T) {
	service := services.NewAnalyticsService(sampleSnapshot(), nil)

	report, err := service.Report()
	require.NoError(t, err)
	report.Monthly[0].Month = "changed"
	report.Tips[0].Title = "changed"

	again, err := service.Report()
	require.NoError(t, err)
	assert.Equal(t, "January", again.Monthly[0].Month)
	assert.Equal(t, "Raise prices gradually", again.Tips[0].Title)
	assert.Zero(t, again.Live.PendingCount)
}
