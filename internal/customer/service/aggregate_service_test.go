package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type mockCustomerUpdater struct {
	UpdateFieldsFunc func(ctx context.Context, id string, changes domain.ProposedChanges) error
}

func (m *mockCustomerUpdater) UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error {
	return m.UpdateFieldsFunc(ctx, id, changes)
}

func TestRecordOrder_ComputesFromSnapshot(t *testing.T) {
	var gotID string
	var gotChanges domain.ProposedChanges

	repo := &mockCustomerUpdater{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			gotID = id
			gotChanges = changes
			return nil
		},
	}

	svc := NewAggregateService(repo, zap.NewNop())

	customer := &domain.Customer{ID: "c-1", TotalOrders: 2, TotalSpent: 1000}
	if err := svc.RecordOrder(context.Background(), customer, 250); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotID != "c-1" {
		t.Errorf("expected update of c-1, got %s", gotID)
	}
	if gotChanges.TotalOrders == nil || *gotChanges.TotalOrders != 3 {
		t.Errorf("expected totalOrders 3, got %v", gotChanges.TotalOrders)
	}
	if gotChanges.TotalSpent == nil || *gotChanges.TotalSpent != 1250 {
		t.Errorf("expected totalSpent 1250, got %v", gotChanges.TotalSpent)
	}
	if gotChanges.Name != nil || gotChanges.Phone != nil || gotChanges.Address != nil || gotChanges.Email != nil {
		t.Errorf("aggregate update must not touch identity fields")
	}
}

func TestRecordOrder_StoreErrorPropagates(t *testing.T) {
	repo := &mockCustomerUpdater{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			return apperrors.NewStoreError("updating customer", nil)
		},
	}

	svc := NewAggregateService(repo, zap.NewNop())

	err := svc.RecordOrder(context.Background(), &domain.Customer{ID: "c-1"}, 100)
	if _, ok := apperrors.IsStoreError(err); !ok {
		t.Errorf("expected StoreError, got %T", err)
	}
}
