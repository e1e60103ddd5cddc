package service

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
)

type CustomerUpdater interface {
	UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error
}

// AggregateService maintains the cached totalOrders/totalSpent fields on a
// customer as orders arrive.
type AggregateService struct {
	customerRepo CustomerUpdater
	logger       *zap.Logger
}

func NewAggregateService(customerRepo CustomerUpdater, logger *zap.Logger) *AggregateService {
	return &AggregateService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// RecordOrder bumps the customer's cached aggregates by one order and its
// total. The new values are computed from the resolved customer snapshot, not
// with an in-database increment, and the write is a round-trip of its own: if
// it fails after the order row landed, the aggregates stay understated and
// nothing reconciles them later.
func (s *AggregateService) RecordOrder(ctx context.Context, customer *domain.Customer, orderTotal float64) error {
	totalOrders := customer.TotalOrders + 1
	totalSpent := customer.TotalSpent + orderTotal

	err := s.customerRepo.UpdateFields(ctx, customer.ID, domain.ProposedChanges{
		TotalOrders: &totalOrders,
		TotalSpent:  &totalSpent,
	})
	if err != nil {
		return err
	}

	s.logger.Debug("customer aggregates updated",
		zap.String("customerId", customer.ID),
		zap.Int("totalOrders", totalOrders),
		zap.Float64("totalSpent", totalSpent))

	return nil
}
