package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"reseller/internal/events"
	"reseller/internal/models"
	"reseller/internal/repositories"
)

// OrderService handles the order lifecycle and the figures shown above the
// order list.
//
// The pending count and delivered profit are kept up to date on every
// transition instead of rescanning the store. They are loaded with one scan
// on first use and assume this service is the only writer of the store.
type OrderService struct {
	orderRepo repositories.OrderRepository
	publisher events.Publisher

	mu    sync.Mutex // serialises writes with the stats update
	stats *models.OrderStats
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, publisher events.Publisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders, newest first.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder stores an order produced by the checkout. This is the explicit
// hand-off from checkout to the order list; new orders always start pending.
func (s *OrderService) PlaceOrder(ctx context.Context, order *models.Order) error {
	if order.Quantity < 1 {
		return models.ErrInvalidQuantity
	}
	order.Status = models.StatusPending
	if order.OrderDate.IsZero() {
		order.OrderDate = models.DateOf(time.Now())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadStatsLocked(); err != nil {
		return err
	}
	if err := s.orderRepo.Create(order); err != nil {
		return fmt.Errorf("failed to create order in repository: %w", err)
	}
	s.stats.Add(order)

	log.Printf("Order %s placed for %s (%d x %s)", order.ID, order.CustomerName, order.Quantity, order.ProductName)
	events.Emit(ctx, s.publisher, events.OrderCreated, order.ID, events.OrderCreatedData{Order: *order})
	return nil
}

// TransitionOrder moves an order to status to. Pairs outside the lifecycle
// table fail with *models.InvalidTransitionError and change nothing.
func (s *OrderService) TransitionOrder(ctx context.Context, id string, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownStatus, to)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadStatsLocked(); err != nil {
		return nil, err
	}

	var from models.OrderStatus
	order, err := s.orderRepo.Update(id, func(o *models.Order) error {
		from = o.Status
		return o.TransitionTo(to)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	s.stats.Move(from, order)

	log.Printf("Order %s moved from %s to %s", id, from, to)
	events.Emit(ctx, s.publisher, events.OrderStatusChanged, id, events.OrderStatusChangedData{
		OrderID: id,
		From:    from,
		To:      to,
		Profit:  order.Profit,
	})
	return order, nil
}

// Stats returns the pending count and delivered profit.
func (s *OrderService) Stats() (models.OrderStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadStatsLocked(); err != nil {
		return models.OrderStats{}, err
	}
	return *s.stats, nil
}

// RecomputeStats rescans the whole store and replaces the running figures.
func (s *OrderService) RecomputeStats() (models.OrderStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats = nil
	if err := s.loadStatsLocked(); err != nil {
		return models.OrderStats{}, err
	}
	return *s.stats, nil
}

func (s *OrderService) loadStatsLocked() error {
	if s.stats != nil {
		return nil
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load order stats: %w", err)
	}
	stats := models.ComputeOrderStats(orders)
	s.stats = &stats
	return nil
}
