package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/apperr"
	"github.com/shashiranjanraj/pizzeria/pkg/metrics"
	"gorm.io/gorm"
)

// OrderService implements the order lifecycle. Role gates for staff-only
// listings run at the route level (pkg/rbac); ownership gates that need the
// order row live here.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService(orders *repositories.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// Place creates a new PENDING order for the caller. The order is always
// attributed to the authenticated user; any client-supplied user id is
// ignored.
func (s *OrderService) Place(user *models.User, quantity int, size models.PizzaSize) (*models.Order, error) {
	if size == "" {
		size = models.SizeSmall
	}
	if !size.Valid() {
		return nil, apperr.Validation("The selected pizza_size is invalid.")
	}

	order := &models.Order{
		UserID:      user.ID,
		Quantity:    quantity,
		PizzaSize:   size,
		OrderStatus: models.StatusPending,
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.WithLabelValues(string(order.PizzaSize)).Inc()
	return order, nil
}

// ListAll returns every order in the system.
func (s *OrderService) ListAll() ([]models.Order, error) {
	return s.orders.All()
}

// GetByID returns any order by id.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Order not found")
	}
	return order, err
}

// ListOwn returns the caller's orders as code+label projections.
// A caller with no orders gets an empty list, not an error.
func (s *OrderService) ListOwn(user *models.User) ([]models.Summary, error) {
	orders, err := s.orders.FindByUser(user.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.Summary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, models.Summarize(o))
	}
	return summaries, nil
}

// GetOwnByID returns one of the caller's orders. Staff may read any order;
// everyone else only their own.
func (s *OrderService) GetOwnByID(user *models.User, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("No order with such id")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != user.ID && !user.IsStaff {
		return nil, apperr.Forbidden("Not allowed")
	}
	return order, nil
}

// UpdateFields overwrites an order's quantity and size. The status is
// never touched by this path. Staff may update any order; everyone else
// only their own.
func (s *OrderService) UpdateFields(user *models.User, id uint, quantity int, size models.PizzaSize) (*models.Order, error) {
	if !size.Valid() {
		return nil, apperr.Validation("The selected pizza_size is invalid.")
	}

	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != user.ID && !user.IsStaff {
		return nil, apperr.Forbidden("Not allowed")
	}

	order.Quantity = quantity
	order.PizzaSize = size
	if err := s.orders.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order along the delivery lifecycle. Only edges in
// the transition table are allowed; the row is untouched on rejection.
func (s *OrderService) UpdateStatus(id uint, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, apperr.Validation("The selected order_status is invalid.")
	}

	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	from := order.OrderStatus
	if !models.CanTransition(from, to) {
		return nil, apperr.InvalidTransition(string(from), string(to))
	}

	order.OrderStatus = to
	if err := s.orders.Update(order); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	return order, nil
}

// Delete removes an order. Staff may delete any order; everyone else only
// their own. A missing id is reported without touching anything.
func (s *OrderService) Delete(user *models.User, id uint) error {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(fmt.Sprintf("Order with id=%d not found", id))
	}
	if err != nil {
		return err
	}

	if order.UserID != user.ID && !user.IsStaff {
		return apperr.Forbidden("Not allowed")
	}

	return s.orders.Delete(order)
}
