package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	apperrors "orderdesk/internal/errors"
)

type mockCustomerRepository struct {
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Customer, error)
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.Customer, error)
	InsertFunc      func(ctx context.Context, customer domain.Customer) error
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return m.FindByPhoneFunc(ctx, phone)
}

func (m *mockCustomerRepository) Insert(ctx context.Context, customer domain.Customer) error {
	return m.InsertFunc(ctx, customer)
}

func TestResolveOrCreate_MissingNameAndPhone(t *testing.T) {
	svc := NewIdentityService(&mockCustomerRepository{}, zap.NewNop())

	_, err := svc.ResolveOrCreate(context.Background(), ResolveInput{})

	ve, ok := apperrors.IsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(ve.Details) != 2 {
		t.Errorf("expected 2 validation details, got %d", len(ve.Details))
	}
}

func TestResolveOrCreate_ExplicitIDFound(t *testing.T) {
	existing := &domain.Customer{ID: "c-1", Name: "Иван", Phone: "89991234567"}
	inserted := false

	repo := &mockCustomerRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			if id != "c-1" {
				t.Errorf("expected lookup of c-1, got %s", id)
			}
			return existing, nil
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			inserted = true
			return nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	customer, err := svc.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerID: "c-1",
		Name:       "Иван",
		Phone:      "89991234567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID != "c-1" {
		t.Errorf("expected customer c-1, got %s", customer.ID)
	}
	if inserted {
		t.Errorf("no insert expected when explicit id resolves")
	}
}

func TestResolveOrCreate_ExplicitIDOnlyNeedsNoNameOrPhone(t *testing.T) {
	existing := &domain.Customer{ID: "c-1", Name: "Иван", Phone: "89991234567"}

	repo := &mockCustomerRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return existing, nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	customer, err := svc.ResolveOrCreate(context.Background(), ResolveInput{CustomerID: "c-1"})
	if err != nil {
		t.Fatalf("expected resolution via explicit id, got %v", err)
	}
	if customer.ID != "c-1" {
		t.Errorf("expected customer c-1, got %s", customer.ID)
	}
}

func TestResolveOrCreate_UnknownIDWithoutNameAndPhoneRejected(t *testing.T) {
	repo := &mockCustomerRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.ResolveOrCreate(context.Background(), ResolveInput{CustomerID: "missing"})
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("the fallback path still needs name and phone, got %T", err)
	}
}

func TestResolveOrCreate_UnknownIDFallsBackToPhone(t *testing.T) {
	existing := &domain.Customer{ID: "c-2", Name: "Иван", Phone: "89991234567"}

	repo := &mockCustomerRepository{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		FindByPhoneFunc: func(ctx context.Context, phone string) (*domain.Customer, error) {
			return existing, nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	customer, err := svc.ResolveOrCreate(context.Background(), ResolveInput{
		CustomerID: "missing",
		Name:       "Иван",
		Phone:      "89991234567",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID != "c-2" {
		t.Errorf("expected phone match c-2, got %s", customer.ID)
	}
}

// The phone lookup is exact raw-string equality: the repository must receive
// the phone precisely as submitted, never a normalized form.
func TestResolveOrCreate_PhoneLookupIsRawString(t *testing.T) {
	var lookedUp string

	repo := &mockCustomerRepository{
		FindByPhoneFunc: func(ctx context.Context, phone string) (*domain.Customer, error) {
			lookedUp = phone
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			return nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.ResolveOrCreate(context.Background(), ResolveInput{
		Name:  "Иван",
		Phone: "+7 999 123-45-67",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lookedUp != "+7 999 123-45-67" {
		t.Errorf("phone lookup must use the raw string, got %q", lookedUp)
	}
}

func TestResolveOrCreate_CreatesNewCustomer(t *testing.T) {
	var inserted *domain.Customer

	repo := &mockCustomerRepository{
		FindByPhoneFunc: func(ctx context.Context, phone string) (*domain.Customer, error) {
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			inserted = &customer
			return nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	address := "ул. Ленина, 1"
	customer, err := svc.ResolveOrCreate(context.Background(), ResolveInput{
		Name:    "Мария",
		Phone:   "89991234567",
		Address: &address,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted == nil {
		t.Fatalf("expected an insert")
	}
	if inserted.ID == "" {
		t.Errorf("new customer must get an id")
	}
	if inserted.TotalOrders != 0 || inserted.TotalSpent != 0 {
		t.Errorf("new customer must start with zero aggregates, got %d/%f",
			inserted.TotalOrders, inserted.TotalSpent)
	}
	if inserted.CreatedAt.IsZero() || time.Since(inserted.CreatedAt) > time.Minute {
		t.Errorf("createdAt must be stamped at creation time")
	}
	if customer.ID != inserted.ID {
		t.Errorf("returned customer must be the inserted one")
	}
}

func TestResolveOrCreate_SecondCallSamePhoneReturnsExisting(t *testing.T) {
	store := map[string]*domain.Customer{}
	inserts := 0

	repo := &mockCustomerRepository{
		FindByPhoneFunc: func(ctx context.Context, phone string) (*domain.Customer, error) {
			if c, ok := store[phone]; ok {
				return c, nil
			}
			return nil, apperrors.NewNotFoundError("customer not found")
		},
		InsertFunc: func(ctx context.Context, customer domain.Customer) error {
			inserts++
			store[customer.Phone] = &customer
			return nil
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())
	in := ResolveInput{Name: "Иван", Phone: "89991234567"}

	first, err := svc.ResolveOrCreate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ResolveOrCreate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserts != 1 {
		t.Errorf("expected exactly one insert, got %d", inserts)
	}
	if first.ID != second.ID {
		t.Errorf("identical raw phone must resolve to the same customer")
	}
}

func TestResolveOrCreate_StoreErrorAborts(t *testing.T) {
	repo := &mockCustomerRepository{
		FindByPhoneFunc: func(ctx context.Context, phone string) (*domain.Customer, error) {
			return nil, apperrors.NewStoreError("querying customer by phone", nil)
		},
	}

	svc := NewIdentityService(repo, zap.NewNop())

	_, err := svc.ResolveOrCreate(context.Background(), ResolveInput{
		Name:  "Иван",
		Phone: "89991234567",
	})

	if _, ok := apperrors.IsStoreError(err); !ok {
		t.Errorf("expected StoreError, got %T", err)
	}
}
