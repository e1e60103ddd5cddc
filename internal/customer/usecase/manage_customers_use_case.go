package usecase

import (
	"context"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	"orderdesk/internal/errors"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, error)
	UpdateFields(ctx context.Context, id string, changes domain.ProposedChanges) error
}

// ManageCustomersUseCase backs the console's customer screens. Customer rows
// are never deleted here; only a committed merge retires a customer.
type ManageCustomersUseCase struct {
	customerRepo CustomerRepository
	logger       *zap.Logger
}

func NewManageCustomersUseCase(customerRepo CustomerRepository, logger *zap.Logger) *ManageCustomersUseCase {
	return &ManageCustomersUseCase{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (uc *ManageCustomersUseCase) Get(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(*customer), nil
}

func (uc *ManageCustomersUseCase) List(ctx context.Context, page, pageSize int) (*dto.CustomerListResponse, error) {
	customers, err := uc.customerRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, *toCustomerResponse(c))
	}

	return &dto.CustomerListResponse{
		Customers: responses,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

func (uc *ManageCustomersUseCase) Update(ctx context.Context, id string, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	changes := domain.ProposedChanges{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Email:   req.Email,
	}

	if changes.IsEmpty() {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if err := uc.customerRepo.UpdateFields(ctx, id, changes); err != nil {
		return nil, err
	}

	uc.logger.Info("customer updated", zap.String("customerId", id))

	customer, err := uc.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(*customer), nil
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
