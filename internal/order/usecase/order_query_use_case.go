package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	ListPage(ctx context.Context, status string, offset, limit int) ([]domain.Order, error)
}

type OrderItemReader interface {
	ByOrderID(ctx context.Context, orderID string) ([]domain.OrderItem, error)
}

type CustomerReader interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

// OrderQueryUseCase serves the console's order screens: one order with its
// items and customer, and the paged listing.
type OrderQueryUseCase struct {
	orderRepo     OrderReader
	orderItemRepo OrderItemReader
	customerRepo  CustomerReader
	logger        *zap.Logger
}

func NewOrderQueryUseCase(
	orderRepo OrderReader,
	orderItemRepo OrderItemReader,
	customerRepo CustomerReader,
	logger *zap.Logger,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		customerRepo:  customerRepo,
		logger:        logger,
	}
}

func (uc *OrderQueryUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := uc.orderItemRepo.ByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(*order, items)

	// A missing customer row is tolerated here: the console still shows the
	// order, just without the customer card. Any other lookup failure aborts.
	customer, err := uc.customerRepo.FindByID(ctx, order.CustomerID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); !ok {
			return nil, err
		}
		uc.logger.Warn("order customer missing",
			zap.String("orderId", order.ID),
			zap.String("customerId", order.CustomerID))
	} else {
		resp.Customer = toCustomerResponse(*customer)
	}

	return &resp, nil
}

func (uc *OrderQueryUseCase) List(ctx context.Context, status string, page, pageSize int) (*dto.OrderListResponse, error) {
	orders, err := uc.orderRepo.ListPage(ctx, status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := uc.orderItemRepo.ByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, toOrderResponse(order, items))
	}

	return &dto.OrderListResponse{
		Orders:   responses,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
