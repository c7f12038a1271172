package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"reseller/internal/models"
	"reseller/internal/repositories"
	"reseller/internal/services"

	"github.com/shopspring/decimal"
)

// AppVersion is shown on the profile screen.
const AppVersion = "1.0.0"

// DefaultSellerID is the account the demo data belongs to.
const DefaultSellerID = "user123"

func money(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func day(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

func seedProducts() []models.Product {
	products := []models.Product{
		{
			ID:            "1",
			Name:          "Sports smart watch",
			ImageURL:      "https://images.pexels.com/photos/437037/pexels-photo-437037.jpeg",
			OriginalPrice: money(150),
			Category:      "Electronics",
			Description:   "Water-resistant smart watch with heart-rate monitor",
			Features:      []string{"Water resistant", "Heart-rate monitor", "Built-in GPS", "7-day battery"},
		},
		{
			ID:            "2",
			Name:          "Wireless headphones",
			ImageURL:      "https://images.pexels.com/photos/3394650/pexels-photo-3394650.jpeg",
			OriginalPrice: money(80),
			Category:      "Electronics",
			Description:   "High quality Bluetooth headphones with noise cancelling",
			Features:      []string{"Active noise cancelling", "30-hour battery", "Sweat resistant", "High quality sound"},
		},
		{
			ID:            "3",
			Name:          "Modern backpack",
			ImageURL:      "https://images.pexels.com/photos/2905238/pexels-photo-2905238.jpeg",
			OriginalPrice: money(45),
			Category:      "Fashion",
			Description:   "Water-resistant backpack with multiple pockets",
			Features:      []string{"Water resistant", "Multiple pockets", "Padded laptop sleeve"},
		},
		{
			ID:            "4",
			Name:          "Instant camera",
			ImageURL:      "https://images.pexels.com/photos/90946/pexels-photo-90946.jpeg",
			OriginalPrice: money(120),
			Category:      "Electronics",
			Description:   "Colour instant camera with film",
			Features:      []string{"Instant prints", "Built-in flash", "Film included"},
		},
	}
	prices := []int64{200, 120, 75, 180}
	for i := range products {
		products[i].SetSellerPrice(money(prices[i]))
	}
	return products
}

func seedOrders() []models.Order {
	return []models.Order{
		{
			ID: "1", CustomerName: "Ahmed Mohammed", CustomerPhone: "+966501234567", CustomerAddress: "Riyadh",
			ProductID: "1", ProductName: "Sports smart watch", SellerID: DefaultSellerID, SellerName: "Mohammed Ahmed",
			Quantity: 1, TotalPrice: money(200), Profit: money(50), Status: models.StatusPending, OrderDate: day(15),
		},
		{
			ID: "2", CustomerName: "Fatima Ali", CustomerPhone: "+966507654321", CustomerAddress: "Jeddah",
			ProductID: "2", ProductName: "Wireless headphones", SellerID: DefaultSellerID, SellerName: "Mohammed Ahmed",
			Quantity: 2, TotalPrice: money(240), Profit: money(80), Status: models.StatusConfirmed, OrderDate: day(14),
		},
		{
			ID: "3", CustomerName: "Mohammed Alsaad", CustomerPhone: "+966509876543", CustomerAddress: "Dammam",
			ProductID: "3", ProductName: "Modern backpack", SellerID: DefaultSellerID, SellerName: "Mohammed Ahmed",
			Quantity: 1, TotalPrice: money(75), Profit: money(30), Status: models.StatusShipped, OrderDate: day(13),
		},
		{
			ID: "4", CustomerName: "Noura Ahmed", CustomerPhone: "+966502468135", CustomerAddress: "Mecca",
			ProductID: "4", ProductName: "Instant camera", SellerID: DefaultSellerID, SellerName: "Mohammed Ahmed",
			Quantity: 1, TotalPrice: money(180), Profit: money(60), Status: models.StatusDelivered, OrderDate: day(12),
		},
	}
}

// AnalyticsSnapshot is the precomputed dashboard shown on the analytics
// screen.
func AnalyticsSnapshot() models.AnalyticsReport {
	return models.AnalyticsReport{
		TotalRevenue:  money(1250),
		TotalProfit:   money(320),
		TotalOrders:   15,
		TotalProducts: 25,
		Monthly: []models.MonthlyFigures{
			{Month: "January", Revenue: money(450), Profit: money(120)},
			{Month: "February", Revenue: money(380), Profit: money(95)},
			{Month: "March", Revenue: money(420), Profit: money(105)},
		},
		TopProducts: []models.ProductFigures{
			{Name: "Sports smart watch", Sales: 8, Profit: money(400)},
			{Name: "Wireless headphones", Sales: 12, Profit: money(480)},
			{Name: "Modern backpack", Sales: 6, Profit: money(180)},
		},
		Tips: []models.Tip{
			{Title: "Focus on the most profitable products", Description: "Promote the products that earn you the most per sale."},
			{Title: "Improve your profit margins", Description: "Try raising prices gradually and watch how buyers react."},
			{Title: "Share your links more often", Description: "The more buyers see your links, the more orders you get."},
		},
	}
}

// Stores groups the repositories the seed writes to.
type Stores struct {
	Products repositories.ProductRepository
	Orders   repositories.OrderRepository
	Sellers  repositories.SellerRepository
}

// Seed loads the demo catalog, orders and seller. Records that already exist
// are left alone so seeding a persistent database twice is harmless.
func Seed(stores Stores, sellerPassword string) error {
	for _, p := range seedProducts() {
		p := p
		if _, err := stores.Products.GetByID(p.ID); err == nil {
			continue
		} else if !errors.Is(err, models.ErrProductNotFound) {
			return fmt.Errorf("failed to check product %s: %w", p.ID, err)
		}
		if err := stores.Products.Create(&p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
		log.Printf("Seeded product: %s (ID: %s)", p.Name, p.ID)
	}

	for _, o := range seedOrders() {
		o := o
		if _, err := stores.Orders.GetByID(o.ID); err == nil {
			continue
		} else if !errors.Is(err, models.ErrOrderNotFound) {
			return fmt.Errorf("failed to check order %s: %w", o.ID, err)
		}
		if err := stores.Orders.Create(&o); err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.ID, err)
		}
	}

	if _, err := stores.Sellers.GetByID(DefaultSellerID); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrSellerNotFound) {
		return fmt.Errorf("failed to check seller %s: %w", DefaultSellerID, err)
	}
	hashed, err := services.HashPassword(sellerPassword)
	if err != nil {
		return err
	}
	seller := &models.Seller{
		ID:          DefaultSellerID,
		Username:    "mohammed",
		DisplayName: "Mohammed Ahmed",
		Email:       "mohammed@example.com",
		Phone:       "+966 50 123 4567",
		Password:    hashed,
	}
	if err := stores.Sellers.Create(seller); err != nil {
		return fmt.Errorf("failed to seed seller: %w", err)
	}
	log.Printf("Seeded seller %s (%s)", seller.Username, seller.ID)
	return nil
}
