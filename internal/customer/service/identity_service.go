package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Insert(ctx context.Context, customer domain.Customer) error
}

// ResolveInput is the customer attempt attached to an order submission.
type ResolveInput struct {
	CustomerID string
	Name       string
	Phone      string
	Address    *string
	Email      *string
}

// IdentityService decides which customer an incoming order belongs to.
type IdentityService struct {
	customerRepo CustomerRepository
	logger       *zap.Logger
}

func NewIdentityService(customerRepo CustomerRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// ResolveOrCreate returns the customer an order belongs to, creating one when
// nothing matches. Resolution order: explicit customer id, then exact
// raw-string phone equality, then insert.
//
// The phone lookup is deliberately NOT normalized: "89991234567" and
// "+7 999 123-45-67" resolve to different customers. Duplicate detection exists
// to repair exactly that after the fact, so normalizing here would change the
// system's semantics. Two concurrent calls for the same new phone can also both
// miss the lookup and both insert; nothing guards that race, it is repaired the
// same way.
func (s *IdentityService) ResolveOrCreate(ctx context.Context, in ResolveInput) (*domain.Customer, error) {
	if in.CustomerID != "" {
		customer, err := s.customerRepo.FindByID(ctx, in.CustomerID)
		if err == nil {
			return customer, nil
		}
		if _, ok := errors.IsNotFoundError(err); !ok {
			return nil, err
		}
		s.logger.Warn("supplied customer id not found, falling back to phone lookup",
			zap.String("customerId", in.CustomerID))
	}

	// Name and phone are only needed once the explicit id failed to resolve:
	// the phone lookup and the insert below both depend on them.
	if err := validateResolveInput(in); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByPhone(ctx, in.Phone)
	if err == nil {
		return customer, nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return nil, err
	}

	newCustomer := domain.Customer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Phone:       in.Phone,
		Address:     in.Address,
		Email:       in.Email,
		TotalOrders: 0,
		TotalSpent:  0,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.customerRepo.Insert(ctx, newCustomer); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.String("customerId", newCustomer.ID),
		zap.String("phone", newCustomer.Phone))

	return &newCustomer, nil
}

func validateResolveInput(in ResolveInput) error {
	var details []errors.ValidationDetail

	if in.Name == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "customer.name",
			Message: "name is required",
		})
	}

	if in.Phone == "" {
		details = append(details, errors.ValidationDetail{
			Field:   "customer.phone",
			Message: "phone is required",
		})
	}

	if len(details) > 0 {
		return errors.NewValidationError("validation failed", details...)
	}

	return nil
}
