package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type OrderReassigner interface {
	ReassignCustomer(ctx context.Context, fromCustomerID, toCustomerID string) (int, error)
}

type CustomerMerger interface {
	UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error
	Delete(ctx context.Context, id string) error
}

// CommitMergeUseCase executes an approved merge plan. For each group, in
// order: move every duplicate's orders to the primary, apply the plan's field
// changes to the primary, delete the duplicates. Reassignment must finish
// before deletion so no order ever points at a deleted customer.
//
// No transaction spans the three steps or multiple groups. A group that fails
// partway is reported and left as-is; the remaining groups still run. A fresh
// detect pass is the only recovery, and it will no longer see already-merged
// customers as duplicates.
type CommitMergeUseCase struct {
	orderRepo    OrderReassigner
	customerRepo CustomerMerger
	logger       *zap.Logger
}

func NewCommitMergeUseCase(
	orderRepo OrderReassigner,
	customerRepo CustomerMerger,
	logger *zap.Logger,
) *CommitMergeUseCase {
	return &CommitMergeUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (uc *CommitMergeUseCase) Commit(ctx context.Context, groups []domain.DuplicateGroup) domain.MergeOutcome {
	outcome := domain.MergeOutcome{
		Groups: make([]domain.GroupResult, 0, len(groups)),
	}

	for _, group := range groups {
		result := uc.commitGroup(ctx, group)
		if result.Err != nil {
			uc.logger.Error("merge group failed",
				zap.String("normalizedPhone", group.NormalizedPhone),
				zap.Error(result.Err))
		} else {
			uc.logger.Info("merge group committed",
				zap.String("normalizedPhone", group.NormalizedPhone),
				zap.String("primaryId", group.Primary.ID),
				zap.Int("ordersTransferred", result.OrdersTransferred),
				zap.Int("customersDeleted", result.CustomersDeleted))
		}
		outcome.Groups = append(outcome.Groups, result)
	}

	return outcome
}

func (uc *CommitMergeUseCase) commitGroup(ctx context.Context, group domain.DuplicateGroup) domain.GroupResult {
	result := domain.GroupResult{NormalizedPhone: group.NormalizedPhone}

	for _, dup := range group.Duplicates {
		moved, err := uc.orderRepo.ReassignCustomer(ctx, dup.ID, group.Primary.ID)
		if err != nil {
			result.Err = errors.NewMergeError(group.NormalizedPhone, "reassign orders", err)
			return result
		}
		result.OrdersTransferred += moved
	}

	if !group.ProposedChanges.IsEmpty() {
		if err := uc.customerRepo.UpdateFields(ctx, group.Primary.ID, group.ProposedChanges); err != nil {
			result.Err = errors.NewMergeError(group.NormalizedPhone, "update primary", err)
			return result
		}
	}

	for _, id := range group.CustomersToDelete {
		if err := uc.customerRepo.Delete(ctx, id); err != nil {
			result.Err = errors.NewMergeError(group.NormalizedPhone, "delete duplicate", err)
			return result
		}
		result.CustomersDeleted++
	}

	return result
}
