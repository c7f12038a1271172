package app_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reseller/internal/app"
	"reseller/internal/config"
	"reseller/internal/events"
	"reseller/internal/models"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(driver, dsn string) *config.Config {
	return &config.Config{
		AppPort:        ":0",
		DBDriver:       driver,
		DatabaseDSN:    dsn,
		JWTSecret:      "test_jwt_secret",
		EventsBroker:   config.BrokerNone,
		LinkBaseURL:    "http://localhost:8080/api/v1",
		SellerPassword: "password123",
		SeedData:       true,
	}
}

func TestNew_MemoryStoreServesSeededData(t *testing.T) {
	a, err := app.New(testConfig(config.DriverMemory, ""))
	require.NoError(t, err)
	defer a.Close()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	token, err := a.Auth.Login("mohammed", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = a.Fiber.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 4)
	assert.Equal(t, "1", body.Data[0].ID)
	assert.Equal(t, "50", body.Data[0].Profit.String())

	stats, err := a.Orders.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingCount)
	assert.Equal(t, "60", stats.DeliveredProfit.String())
}

func TestNew_SQLiteStoreAndReseed(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "reseller.db")

	a, err := app.New(testConfig(config.DriverSQLite, dsn))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	// Seeding an existing database must not duplicate anything.
	a, err = app.New(testConfig(config.DriverSQLite, dsn))
	require.NoError(t, err)
	defer a.Close()

	orders, err := a.Orders.GetAllOrders()
	require.NoError(t, err)
	assert.Len(t, orders, 4)
	assert.Equal(t, "1", orders[0].ID, "newest order first")

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var health map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, config.DriverSQLite, health["database"])
}

func TestNew_RejectsBadLinkBase(t *testing.T) {
	cfg := testConfig(config.DriverMemory, "")
	cfg.LinkBaseURL = "not a url"
	_, err := app.New(cfg)
	assert.Error(t, err)
}

func TestSeed_MemoryStores(t *testing.T) {
	stores := app.NewStores(nil)
	require.NoError(t, app.Seed(stores, "secret1"))
	require.NoError(t, app.Seed(stores, "secret1"))

	products, err := stores.Products.GetAll()
	require.NoError(t, err)
	assert.Len(t, products, 4)
	for _, p := range products {
		assert.True(t, p.Profit.Equal(p.SellerPrice.Sub(p.OriginalPrice)), p.ID)
	}

	seller, err := stores.Sellers.GetByID(app.DefaultSellerID)
	require.NoError(t, err)
	assert.Equal(t, "Mohammed Ahmed", seller.DisplayName)
	assert.NotEqual(t, "secret1", seller.Password)
}

func TestAnalyticsSnapshot(t *testing.T) {
	report := app.AnalyticsSnapshot()
	assert.Equal(t, "1250", report.TotalRevenue.String())
	assert.Len(t, report.Monthly, 3)
	assert.Len(t, report.TopProducts, 3)
	assert.Len(t, report.Tips, 3)
}

func TestLogEvent(t *testing.T) {
	body, err := events.Encode(events.OrderCreated, events.OrderCreatedData{Order: models.Order{ID: "o-1"}})
	require.NoError(t, err)

	assert.NoError(t, app.LogEvent(amqp.Delivery{RoutingKey: events.OrderCreated, Body: body}))
	assert.Error(t, app.LogEvent(amqp.Delivery{Body: []byte("not json")}))
}

func TestStartEventConsumer_NoBroker(t *testing.T) {
	a, err := app.New(testConfig(config.DriverMemory, ""))
	require.NoError(t, err)
	defer a.Close()

	assert.NoError(t, a.StartEventConsumer())
}

func TestUnknownDriver(t *testing.T) {
	_, err := app.OpenDB(testConfig("mongo", "x"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "mongo"), fmt.Sprint(err))
}
