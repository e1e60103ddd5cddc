package order

import (
	"database/sql"

	"go.uber.org/zap"

	customerservice "orderdesk/internal/customer/service"
	"orderdesk/internal/order/controller"
	"orderdesk/internal/order/repository"
	"orderdesk/internal/order/usecase"
)

type Module struct {
	Controller     *controller.OrderController
	Repository     *repository.MySQLOrderRepository
	ItemRepository *repository.MySQLOrderItemRepository
}

func NewModule(
	db *sql.DB,
	identity *customerservice.IdentityService,
	aggregates *customerservice.AggregateService,
	customerRepo usecase.CustomerReader,
	logger *zap.Logger,
) *Module {
	orderRepo := repository.NewMySQLOrderRepository(db)
	orderItemRepo := repository.NewMySQLOrderItemRepository(db)

	createUC := usecase.NewCreateOrderUseCase(identity, aggregates, orderRepo, orderItemRepo, logger)
	queryUC := usecase.NewOrderQueryUseCase(orderRepo, orderItemRepo, customerRepo, logger)
	updateUC := usecase.NewOrderUpdateUseCase(orderRepo, orderItemRepo, logger)

	return &Module{
		Controller:     controller.NewOrderController(createUC, queryUC, updateUC, logger),
		Repository:     orderRepo,
		ItemRepository: orderItemRepo,
	}
}
