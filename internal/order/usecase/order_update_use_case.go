package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type OrderMutator interface {
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type OrderItemDeleter interface {
	DeleteByOrderID(ctx context.Context, orderID string) error
}

type OrderUpdateUseCase struct {
	orderRepo     OrderMutator
	orderItemRepo OrderItemDeleter
	logger        *zap.Logger
}

func NewOrderUpdateUseCase(orderRepo OrderMutator, orderItemRepo OrderItemDeleter, logger *zap.Logger) *OrderUpdateUseCase {
	return &OrderUpdateUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

func (uc *OrderUpdateUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.IsValidOrderStatus(status) {
		return errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of new, processing, completed, cancelled",
		})
	}

	if err := uc.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	uc.logger.Info("order status updated", zap.String("orderId", id), zap.String("status", status))
	return nil
}

// Delete removes an order and its items. Items go first so a failure cannot
// leave items pointing at a deleted order.
func (uc *OrderUpdateUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.orderItemRepo.DeleteByOrderID(ctx, id); err != nil {
		return err
	}

	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("order deleted", zap.String("orderId", id))
	return nil
}
