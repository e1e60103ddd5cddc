package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/dedup/service"
	"orderdesk/internal/domain"
)

type CustomerScanner interface {
	ScanAll(ctx context.Context, pageSize int, fn func(page []domain.Customer) error) error
}

type OrderCounter interface {
	CountByCustomers(ctx context.Context, customerIDs []string, batchSize int) (map[string]int, error)
}

// DetectDuplicatesUseCase scans every customer, groups them by normalized
// phone and proposes a merge plan per group. It performs no writes.
type DetectDuplicatesUseCase struct {
	customerRepo   CustomerScanner
	orderRepo      OrderCounter
	logger         *zap.Logger
	scanPageSize   int
	countBatchSize int
}

func NewDetectDuplicatesUseCase(
	customerRepo CustomerScanner,
	orderRepo OrderCounter,
	logger *zap.Logger,
	scanPageSize int,
	countBatchSize int,
) *DetectDuplicatesUseCase {
	return &DetectDuplicatesUseCase{
		customerRepo:   customerRepo,
		orderRepo:      orderRepo,
		logger:         logger,
		scanPageSize:   scanPageSize,
		countBatchSize: countBatchSize,
	}
}

func (uc *DetectDuplicatesUseCase) Detect(ctx context.Context) ([]domain.DuplicateGroup, error) {
	var customers []domain.Customer
	err := uc.customerRepo.ScanAll(ctx, uc.scanPageSize, func(page []domain.Customer) error {
		customers = append(customers, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("customer scan complete", zap.Int("customers", len(customers)))

	candidates := service.GroupCandidates(customers)
	if len(candidates) == 0 {
		return []domain.DuplicateGroup{}, nil
	}

	// One batched pass over the order store for the live counts of every
	// would-be duplicate. The cached totalOrders field is NOT consulted here.
	var duplicateIDs []string
	for _, candidate := range candidates {
		duplicateIDs = append(duplicateIDs, candidate.DuplicateIDs()...)
	}

	liveCounts, err := uc.orderRepo.CountByCustomers(ctx, duplicateIDs, uc.countBatchSize)
	if err != nil {
		return nil, err
	}

	groups := make([]domain.DuplicateGroup, 0, len(candidates))
	for _, candidate := range candidates {
		group := service.BuildGroup(candidate, liveCounts)
		uc.logger.Info("duplicate group found",
			zap.String("normalizedPhone", group.NormalizedPhone),
			zap.String("primaryId", group.Primary.ID),
			zap.Int("duplicates", len(group.Duplicates)),
			zap.Int("ordersToTransfer", group.OrdersToTransfer))
		groups = append(groups, group)
	}

	return groups, nil
}
