package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrderCreate is the typed request for placing an order.
type OrderCreate struct {
	Price        float64
	UserID       string
	RestaurantID string
}

// OrderService coordinates order placement and lifecycle.
type OrderService struct {
	orders      repository.OrderRepository
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, restaurants repository.RestaurantRepository, dispatcher events.Dispatcher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:      orders,
		users:       users,
		restaurants: restaurants,
		dispatcher:  dispatcher,
		logger:      logger,
	}
}

// Create validates references, persists the order and emits order_created.
func (s *OrderService) Create(ctx context.Context, req OrderCreate) (*domain.Order, error) {
	if req.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}
	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": req.UserID})
		}
		return nil, err
	}
	if _, err := s.restaurants.GetByID(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", map[string]any{"id": req.RestaurantID})
		}
		return nil, err
	}

	order := &domain.Order{
		Price:        req.Price,
		Status:       domain.OrderStatusPending,
		UserID:       req.UserID,
		RestaurantID: req.RestaurantID,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("order created", zap.String("order_id", order.ID), zap.String("user_id", order.UserID))

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderCreated,
		UserID:    order.UserID,
		Timestamp: time.Now(),
		Payload: events.OrderCreatedPayload{
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Price:        order.Price,
		},
	})
	return order, nil
}

// GetByID returns a single order.
func (s *OrderService) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return nil, err
	}
	return order, nil
}

// List returns orders matching the filter.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	return s.orders.List(ctx, filter)
}

// Complete transitions a pending order to completed.
func (s *OrderService) Complete(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusCompleted, events.EventOrderCompleted)
}

// Cancel transitions a pending order to cancelled.
func (s *OrderService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusCancelled, events.EventOrderCancelled)
}

// Remove deletes an order.
func (s *OrderService) Remove(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("order", map[string]any{"id": id})
		}
		return err
	}
	return nil
}

func (s *OrderService) transition(ctx context.Context, id string, status domain.OrderStatus, eventType events.EventType) (*domain.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.NewValidationError("order is not pending",
			map[string]any{"status": order.Status})
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	oldStatus := order.Status
	order.Status = status

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    order.UserID,
		Timestamp: time.Now(),
		Payload: events.OrderStatusPayload{
			OrderID:   order.ID,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
