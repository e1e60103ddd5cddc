package dedup

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/config"
	"orderdesk/internal/customer/repository"
	"orderdesk/internal/dedup/controller"
	"orderdesk/internal/dedup/usecase"
	orderrepo "orderdesk/internal/order/repository"
)

func NewModule(db *sql.DB, cfg config.DedupConfig, logger *zap.Logger) *controller.DedupController {
	customerRepo := repository.NewMySQLCustomerRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	detectUC := usecase.NewDetectDuplicatesUseCase(
		customerRepo,
		orderRepo,
		logger,
		cfg.ScanPageSize,
		cfg.CountBatchSize,
	)
	commitUC := usecase.NewCommitMergeUseCase(orderRepo, customerRepo, logger)

	session := usecase.NewMergeSession(detectUC, commitUC, logger)

	return controller.NewDedupController(session, logger)
}
