package service

import (
	"context"
	"fmt"
	"time"

	"copyshop/internal/discount"
	"copyshop/internal/model"
	"copyshop/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	discounts *discount.Resolver
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	discounts *discount.Resolver,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		discounts: discounts,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Checkout freezes a cart into a persisted order. Creation is
// all-or-nothing: if the store rejects the write, no order exists.
func (s *orderService) Checkout(ctx context.Context, cart model.Cart, customerID uuid.UUID, tierID, note string) (*model.Order, error) {
	percent := s.discounts.Resolve(ctx, tierID)

	order, err := model.NewOrder(cart, customerID, percent, time.Now().UTC())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("customer_id", customerID.String()).
			Msg("checkout rejected")
		return nil, err
	}
	order.Note = note

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("customer_id", customerID.String()).
		Int("line_count", len(order.Lines)).
		Int("discount_percent", percent).
		Str("total", order.Total().String()).
		Msg("order created")

	return order, nil
}

// GetByID retrieves an order with its lines and history.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}
	return order, nil
}

// ListByCustomer retrieves a customer's orders, newest first.
func (s *orderService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Str("customer_id", customerID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ChangeState applies a staff lifecycle transition. The read state is
// validated and written back under the version read, so two staff members
// racing on the same order cannot silently overwrite each other's change.
func (s *orderService) ChangeState(ctx context.Context, id uuid.UUID, target model.OrderState, reason string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to load order for transition")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	readVersion := order.Version
	if err := order.Transition(target, reason, time.Now().UTC()); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", id.String()).
			Str("target", string(target)).
			Msg("transition rejected")
		return nil, err
	}

	if err := s.orderRepo.UpdateState(ctx, order, readVersion); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", id.String()).
			Str("target", string(target)).
			Msg("failed to persist transition")
		return nil, err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("state", string(order.State)).
		Msg("order state changed")

	return order, nil
}
