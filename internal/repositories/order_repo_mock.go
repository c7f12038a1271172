package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"reseller/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders, newest first.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	sortOrders(orderList)
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order with ID %s already exists", order.ID)
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	r.orders[order.ID] = *order
	return nil
}

// Update applies fn to a copy of the stored order and keeps it on success.
func (r *MockOrderRepository) Update(id string, fn func(*models.Order) error) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
	}
	if err := fn(&order); err != nil {
		return nil, err
	}
	order.ID = id
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}

func sortOrders(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if !orders[i].OrderDate.Equal(orders[j].OrderDate) {
			return orders[i].OrderDate.After(orders[j].OrderDate)
		}
		return orders[i].ID < orders[j].ID
	})
}
