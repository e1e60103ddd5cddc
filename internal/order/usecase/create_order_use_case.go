package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	customerservice "orderdesk/internal/customer/service"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
)

type IdentityResolver interface {
	ResolveOrCreate(ctx context.Context, in customerservice.ResolveInput) (*domain.Customer, error)
}

type AggregateRecorder interface {
	RecordOrder(ctx context.Context, customer *domain.Customer, orderTotal float64) error
}

type OrderWriter interface {
	Insert(ctx context.Context, order domain.Order) error
}

type OrderItemWriter interface {
	InsertBatch(ctx context.Context, items []domain.OrderItem) error
}

// CreateOrderUseCase runs an order submission end to end: resolve the
// customer, persist the order and its items, bump the customer aggregates.
//
// The four writes (customer insert inside resolution, order, items, aggregate
// update) are independent round-trips with no shared transaction and no
// compensation. A failure partway leaves the earlier writes in place; the
// caller only learns that the submission failed.
type CreateOrderUseCase struct {
	identity      IdentityResolver
	aggregates    AggregateRecorder
	orderRepo     OrderWriter
	orderItemRepo OrderItemWriter
	logger        *zap.Logger
}

func NewCreateOrderUseCase(
	identity IdentityResolver,
	aggregates AggregateRecorder,
	orderRepo OrderWriter,
	orderItemRepo OrderItemWriter,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		identity:      identity,
		aggregates:    aggregates,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		logger:        logger,
	}
}

func (uc *CreateOrderUseCase) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer, err := uc.identity.ResolveOrCreate(ctx, customerservice.ResolveInput{
		CustomerID: req.CustomerID,
		Name:       req.Customer.Name,
		Phone:      req.Customer.Phone,
		Address:    optional(req.Customer.Address),
		Email:      optional(req.Customer.Email),
	})
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(req.Items))
	orderID := uuid.New().String()
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			Name:        item.Name,
			Description: optional(item.Description),
			Price:       item.Price,
			Quantity:    item.Quantity,
		}
	}

	// The total is fixed at write time; reads never re-derive it from items.
	totalAmount := domain.OrderTotal(items)

	now := time.Now().UTC()
	date := now
	if req.Date != nil {
		date = *req.Date
	}
	source := req.Source
	if source == "" {
		source = domain.OrderSourceOther
	}
	status := req.Status
	if status == "" {
		status = domain.OrderStatusNew
	}

	order := domain.Order{
		ID:          orderID,
		CustomerID:  customer.ID,
		Date:        date,
		Source:      source,
		Status:      status,
		TotalAmount: totalAmount,
		CreatedAt:   now,
	}

	if err := uc.orderRepo.Insert(ctx, order); err != nil {
		return nil, err
	}

	if err := uc.orderItemRepo.InsertBatch(ctx, items); err != nil {
		return nil, err
	}

	if err := uc.aggregates.RecordOrder(ctx, customer, totalAmount); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("customerId", customer.ID),
		zap.Int("itemCount", len(items)),
		zap.Float64("totalAmount", totalAmount))

	resp := toOrderResponse(order, items)
	resp.Customer = toCustomerResponse(*customer)
	return &resp, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toOrderResponse(order domain.Order, items []domain.OrderItem) dto.OrderResponse {
	itemResponses := make([]dto.OrderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = dto.OrderItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
		if item.Description != nil {
			itemResponses[i].Description = *item.Description
		}
	}

	return dto.OrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Date:        order.Date,
		Source:      order.Source,
		Status:      order.Status,
		Items:       itemResponses,
		TotalAmount: order.TotalAmount,
	}
}

func toCustomerResponse(c domain.Customer) *dto.CustomerResponse {
	resp := &dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		TotalOrders: c.TotalOrders,
		TotalSpent:  c.TotalSpent,
		CreatedAt:   c.CreatedAt,
	}
	if c.Address != nil {
		resp.Address = *c.Address
	}
	if c.Email != nil {
		resp.Email = *c.Email
	}
	return resp
}
