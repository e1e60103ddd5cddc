package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type mockOrderReassigner struct {
	ReassignCustomerFunc func(ctx context.Context, fromCustomerID, toCustomerID string) (int, error)
}

func (m *mockOrderReassigner) ReassignCustomer(ctx context.Context, fromCustomerID, toCustomerID string) (int, error) {
	return m.ReassignCustomerFunc(ctx, fromCustomerID, toCustomerID)
}

type mockCustomerMerger struct {
	UpdateFieldsFunc func(ctx context.Context, id string, changes domain.ProposedChanges) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *mockCustomerMerger) UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error {
	return m.UpdateFieldsFunc(ctx, id, changes)
}

func (m *mockCustomerMerger) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func intPtr(v int) *int { return &v }

func singleGroup() domain.DuplicateGroup {
	return domain.DuplicateGroup{
		NormalizedPhone:   "79991234567",
		Primary:           domain.Customer{ID: "primary"},
		Duplicates:        []domain.Customer{{ID: "dup"}},
		CustomersToDelete: []string{"dup"},
		ProposedChanges:   domain.ProposedChanges{TotalOrders: intPtr(3)},
		OrdersToTransfer:  1,
	}
}

func TestCommit_ReassignRunsBeforeDelete(t *testing.T) {
	var calls []string

	orders := &mockOrderReassigner{
		ReassignCustomerFunc: func(ctx context.Context, from, to string) (int, error) {
			calls = append(calls, "reassign "+from+"->"+to)
			return 1, nil
		},
	}
	customers := &mockCustomerMerger{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			calls = append(calls, "update "+id)
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			calls = append(calls, "delete "+id)
			return nil
		},
	}

	uc := NewCommitMergeUseCase(orders, customers, zap.NewNop())

	outcome := uc.Commit(context.Background(), []domain.DuplicateGroup{singleGroup()})

	want := []string{"reassign dup->primary", "update primary", "delete dup"}
	if len(calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, calls)
		}
	}

	if outcome.FailedGroups() != 0 {
		t.Errorf("expected no failed groups")
	}
	if outcome.Groups[0].OrdersTransferred != 1 {
		t.Errorf("expected 1 order transferred, got %d", outcome.Groups[0].OrdersTransferred)
	}
	if outcome.Groups[0].CustomersDeleted != 1 {
		t.Errorf("expected 1 customer deleted, got %d", outcome.Groups[0].CustomersDeleted)
	}
}

func TestCommit_EmptyChangesSkipUpdate(t *testing.T) {
	updated := false

	orders := &mockOrderReassigner{
		ReassignCustomerFunc: func(ctx context.Context, from, to string) (int, error) {
			return 0, nil
		},
	}
	customers := &mockCustomerMerger{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			updated = true
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	uc := NewCommitMergeUseCase(orders, customers, zap.NewNop())

	group := singleGroup()
	group.ProposedChanges = domain.ProposedChanges{}
	uc.Commit(context.Background(), []domain.DuplicateGroup{group})

	if updated {
		t.Errorf("an empty change set must not touch the primary")
	}
}

func TestCommit_ReassignFailureStopsGroupBeforeDeletes(t *testing.T) {
	deleted := false

	orders := &mockOrderReassigner{
		ReassignCustomerFunc: func(ctx context.Context, from, to string) (int, error) {
			return 0, apperrors.NewStoreError("reassigning orders", nil)
		},
	}
	customers := &mockCustomerMerger{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			t.Fatalf("update must not run after a reassign failure")
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}

	uc := NewCommitMergeUseCase(orders, customers, zap.NewNop())

	outcome := uc.Commit(context.Background(), []domain.DuplicateGroup{singleGroup()})

	if deleted {
		t.Errorf("no customer may be deleted while its orders still point at it")
	}
	if outcome.FailedGroups() != 1 {
		t.Fatalf("expected 1 failed group, got %d", outcome.FailedGroups())
	}

	me, ok := apperrors.IsMergeError(outcome.Groups[0].Err)
	if !ok {
		t.Fatalf("expected MergeError, got %T", outcome.Groups[0].Err)
	}
	if me.Step != "reassign orders" {
		t.Errorf("expected failure at reassign step, got %q", me.Step)
	}
}

func TestCommit_FailedGroupDoesNotBlockOthers(t *testing.T) {
	orders := &mockOrderReassigner{
		ReassignCustomerFunc: func(ctx context.Context, from, to string) (int, error) {
			if from == "bad-dup" {
				return 0, apperrors.NewStoreError("reassigning orders", nil)
			}
			return 2, nil
		},
	}
	customers := &mockCustomerMerger{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			return nil
		},
	}

	uc := NewCommitMergeUseCase(orders, customers, zap.NewNop())

	bad := domain.DuplicateGroup{
		NormalizedPhone:   "79991111111",
		Primary:           domain.Customer{ID: "p1"},
		Duplicates:        []domain.Customer{{ID: "bad-dup"}},
		CustomersToDelete: []string{"bad-dup"},
	}
	good := domain.DuplicateGroup{
		NormalizedPhone:   "79992222222",
		Primary:           domain.Customer{ID: "p2"},
		Duplicates:        []domain.Customer{{ID: "good-dup"}},
		CustomersToDelete: []string{"good-dup"},
		ProposedChanges:   domain.ProposedChanges{TotalOrders: intPtr(5)},
	}

	outcome := uc.Commit(context.Background(), []domain.DuplicateGroup{bad, good})

	if len(outcome.Groups) != 2 {
		t.Fatalf("expected results for both groups, got %d", len(outcome.Groups))
	}
	if outcome.Groups[0].Err == nil {
		t.Errorf("expected the first group to fail")
	}
	if outcome.Groups[1].Err != nil {
		t.Errorf("the second group must still commit, got %v", outcome.Groups[1].Err)
	}
	if outcome.Groups[1].OrdersTransferred != 2 {
		t.Errorf("expected 2 orders transferred in the second group, got %d",
			outcome.Groups[1].OrdersTransferred)
	}
	if outcome.FailedGroups() != 1 {
		t.Errorf("expected 1 failed group, got %d", outcome.FailedGroups())
	}
}

func TestCommit_DeleteFailureReportedWithStep(t *testing.T) {
	orders := &mockOrderReassigner{
		ReassignCustomerFunc: func(ctx context.Context, from, to string) (int, error) {
			return 1, nil
		},
	}
	customers := &mockCustomerMerger{
		UpdateFieldsFunc: func(ctx context.Context, id string, changes domain.ProposedChanges) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NewStoreError("deleting customer", nil)
		},
	}

	uc := NewCommitMergeUseCase(orders, customers, zap.NewNop())

	outcome := uc.Commit(context.Background(), []domain.DuplicateGroup{singleGroup()})

	me, ok := apperrors.IsMergeError(outcome.Groups[0].Err)
	if !ok {
		t.Fatalf("expected MergeError, got %T", outcome.Groups[0].Err)
	}
	if me.Step != "delete duplicate" {
		t.Errorf("expected failure at delete step, got %q", me.Step)
	}
	// The orders were already moved; the partial state is reported, not undone.
	if outcome.Groups[0].OrdersTransferred != 1 {
		t.Errorf("expected the transferred count preserved, got %d",
			outcome.Groups[0].OrdersTransferred)
	}
}
