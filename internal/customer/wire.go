package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/customer/controller"
	"orderdesk/internal/customer/repository"
	"orderdesk/internal/customer/service"
	"orderdesk/internal/customer/usecase"
)

type Module struct {
	Controller *controller.CustomerController
	Repository *repository.MySQLCustomerRepository
	Identity   *service.IdentityService
	Aggregates *service.AggregateService
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := repository.NewMySQLCustomerRepository(db)
	identity := service.NewIdentityService(repo, logger)
	aggregates := service.NewAggregateService(repo, logger)
	manageUC := usecase.NewManageCustomersUseCase(repo, logger)

	return &Module{
		Controller: controller.NewCustomerController(manageUC, logger),
		Repository: repo,
		Identity:   identity,
		Aggregates: aggregates,
	}
}
