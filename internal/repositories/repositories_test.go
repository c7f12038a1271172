package repositories_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"reseller/internal/models"
	"reseller/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a private in-memory SQLite database with the schema
// migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.Seller{}))
	return db
}

type productRepoFactory func(t *testing.T) repositories.ProductRepository
type orderRepoFactory func(t *testing.T) repositories.OrderRepository
type sellerRepoFactory func(t *testing.T) repositories.SellerRepository

func productRepos() map[string]productRepoFactory {
	return map[string]productRepoFactory{
		"mock": func(*testing.T) repositories.ProductRepository { return repositories.NewMockProductRepository() },
		"gorm": func(t *testing.T) repositories.ProductRepository {
			return repositories.NewGORMProductRepository(openTestDB(t))
		},
	}
}

func orderRepos() map[string]orderRepoFactory {
	return map[string]orderRepoFactory{
		"mock": func(*testing.T) repositories.OrderRepository { return repositories.NewMockOrderRepository() },
		"gorm": func(t *testing.T) repositories.OrderRepository {
			return repositories.NewGORMOrderRepository(openTestDB(t))
		},
	}
}

func sellerRepos() map[string]sellerRepoFactory {
	return map[string]sellerRepoFactory{
		"mock": func(*testing.T) repositories.SellerRepository { return repositories.NewMockSellerRepository() },
		"gorm": func(t *testing.T) repositories.SellerRepository {
			return repositories.NewGORMSellerRepository(openTestDB(t))
		},
	}
}

func TestProductRepository(t *testing.T) {
	for name, newRepo := range productRepos() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			watch := &models.Product{
				ID:            "1",
				Name:          "Sports smart watch",
				OriginalPrice: decimal.NewFromInt(150),
				Category:      "Electronics",
				Features:      []string{"Water resistant", "GPS"},
			}
			watch.SetSellerPrice(decimal.NewFromInt(200))
			require.NoError(t, repo.Create(watch))
			require.NoError(t, repo.Create(&models.Product{Name: "Camera", OriginalPrice: decimal.NewFromInt(120)}))

			all, err := repo.GetAll()
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, "1", all[0].ID)
			assert.NotEmpty(t, all[1].ID)

			got, err := repo.GetByID("1")
			require.NoError(t, err)
			assert.Equal(t, []string{"Water resistant", "GPS"}, got.Features)
			assert.True(t, decimal.NewFromInt(50).Equal(got.Profit))

			updated, err := repo.Update("1", func(p *models.Product) error {
				p.SetSellerPrice(decimal.NewFromInt(230))
				return nil
			})
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(80).Equal(updated.Profit))

			got, err = repo.GetByID("1")
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(230).Equal(got.SellerPrice))
			assert.True(t, decimal.NewFromInt(150).Equal(got.OriginalPrice))

			boom := errors.New("boom")
			_, err = repo.Update("1", func(p *models.Product) error {
				p.SetSellerPrice(decimal.NewFromInt(1))
				return boom
			})
			assert.ErrorIs(t, err, boom)
			got, err = repo.GetByID("1")
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(230).Equal(got.SellerPrice), "failed update must not be stored")

			_, err = repo.GetByID("missing")
			assert.ErrorIs(t, err, models.ErrProductNotFound)
			_, err = repo.Update("missing", func(*models.Product) error { return nil })
			assert.ErrorIs(t, err, models.ErrProductNotFound)
		})
	}
}

func TestOrderRepository(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

	for name, newRepo := range orderRepos() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			for _, o := range []models.Order{
				{ID: "3", Status: models.StatusShipped, OrderDate: day(13), Profit: decimal.NewFromInt(30)},
				{ID: "1", Status: models.StatusPending, OrderDate: day(15), Profit: decimal.NewFromInt(50)},
				{ID: "2", Status: models.StatusConfirmed, OrderDate: day(13), Profit: decimal.NewFromInt(80)},
			} {
				o := o
				require.NoError(t, repo.Create(&o))
			}

			all, err := repo.GetAll()
			require.NoError(t, err)
			ids := make([]string, 0, len(all))
			for _, o := range all {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, []string{"1", "2", "3"}, ids)

			updated, err := repo.Update("1", func(o *models.Order) error {
				return o.TransitionTo(models.StatusConfirmed)
			})
			require.NoError(t, err)
			assert.Equal(t, models.StatusConfirmed, updated.Status)

			_, err = repo.Update("1", func(o *models.Order) error {
				return o.TransitionTo(models.StatusDelivered)
			})
			var invalid *models.InvalidTransitionError
			require.ErrorAs(t, err, &invalid)

			got, err := repo.GetByID("1")
			require.NoError(t, err)
			assert.Equal(t, models.StatusConfirmed, got.Status)
			assert.True(t, decimal.NewFromInt(50).Equal(got.Profit))

			_, err = repo.GetByID("nope")
			assert.ErrorIs(t, err, models.ErrOrderNotFound)

			o := &models.Order{Status: models.StatusPending, OrderDate: day(16)}
			require.NoError(t, repo.Create(o))
			_, err = uuid.Parse(o.ID)
			assert.NoError(t, err, "generated order IDs are UUIDs")
		})
	}
}

func TestSellerRepository(t *testing.T) {
	for name, newRepo := range sellerRepos() {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			s := &models.Seller{ID: "user123", Username: "mohammed", DisplayName: "Mohammed Ahmed", Email: "mohammed@example.com", Password: "hash"}
			require.NoError(t, repo.Create(s))

			byName, err := repo.GetByUsername("mohammed")
			require.NoError(t, err)
			assert.Equal(t, "user123", byName.ID)

			byEmail, err := repo.GetByEmail("mohammed@example.com")
			require.NoError(t, err)
			assert.Equal(t, "Mohammed Ahmed", byEmail.DisplayName)

			byID, err := repo.GetByID("user123")
			require.NoError(t, err)
			assert.Equal(t, "mohammed", byID.Username)

			_, err = repo.GetByUsername("ghost")
			assert.ErrorIs(t, err, models.ErrSellerNotFound)

			dup := &models.Seller{Username: "mohammed", DisplayName: "x", Email: "other@example.com", Password: "hash"}
			assert.Error(t, repo.Create(dup))
		})
	}
}
