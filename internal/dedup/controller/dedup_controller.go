package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderdesk/internal/dedup/usecase"
	"orderdesk/internal/domain"
	"orderdesk/internal/dto"
	apperrors "orderdesk/internal/errors"
)

type MergeSession interface {
	Detect(ctx context.Context) ([]domain.DuplicateGroup, error)
	Commit(ctx context.Context) (domain.MergeOutcome, error)
	State() usecase.State
}

// DedupController exposes the operator's duplicate-review workflow. Detect
// computes and holds a merge plan; Commit executes the held plan after the
// operator approved it on the review screen.
type DedupController struct {
	session MergeSession
	logger  *zap.Logger
}

func NewDedupController(session MergeSession, logger *zap.Logger) *DedupController {
	return &DedupController{
		session: session,
		logger:  logger,
	}
}

func (c *DedupController) Detect(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	groups, err := c.session.Detect(r.Context())
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp := dto.DetectDuplicatesResponse{
		TraceID: traceID,
		State:   string(c.session.State()),
		Groups:  make([]dto.DuplicateGroupResponse, 0, len(groups)),
	}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, toGroupResponse(group))
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func (c *DedupController) Commit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	outcome, err := c.session.Commit(r.Context())
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp := dto.CommitMergeResponse{
		TraceID:      traceID,
		State:        string(c.session.State()),
		Groups:       make([]dto.MergeGroupResultResponse, 0, len(outcome.Groups)),
		FailedGroups: outcome.FailedGroups(),
	}
	for _, g := range outcome.Groups {
		result := dto.MergeGroupResultResponse{
			NormalizedPhone:   g.NormalizedPhone,
			OrdersTransferred: g.OrdersTransferred,
			CustomersDeleted:  g.CustomersDeleted,
		}
		if g.Err != nil {
			result.Error = g.Err.Error()
		}
		resp.Groups = append(resp.Groups, result)
	}

	c.writeJSON(w, http.StatusOK, resp)
}

func toGroupResponse(group domain.DuplicateGroup) dto.DuplicateGroupResponse {
	duplicates := make([]dto.CustomerResponse, 0, len(group.Duplicates))
	for _, dup := range group.Duplicates {
		duplicates = append(duplicates, toCustomerResponse(dup))
	}

	return dto.DuplicateGroupResponse{
		NormalizedPhone: group.NormalizedPhone,
		Primary:         toCustomerResponse(group.Primary),
		Duplicates:      duplicates,
		ProposedChanges: dto.ProposedChangesResponse{
			Name:        group.ProposedChanges.Name,
			Address:     group.ProposedChanges.Address,
			Email:       group.ProposedChanges.Email,
			Phone:       group.ProposedChanges.Phone,
			TotalOrders: group.ProposedChanges.TotalOrders,
			TotalSpent:  group.ProposedChanges.TotalSpent,
		},
		OrdersToTransfer:  group.OrdersToTransfer,
		CustomersToDelete: group.CustomersToDelete,
	}
}

func toCustomerResponse(c domain.Customer) dto.CustomerResponse {
	resp := dto.CustomerResponse{
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

func (c *DedupController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, traceID, http.StatusConflict, "CONFLICT", ce.Message)
		return
	}

	if se, ok := apperrors.IsStoreError(err); ok {
		logger.Error("store error", zap.Error(se))
		c.writeError(w, traceID, http.StatusInternalServerError, "STORE_ERROR", "the operation could not be completed")
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func (c *DedupController) writeError(w http.ResponseWriter, traceID string, status int, code, message string) {
	c.writeJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *DedupController) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.logger.Error("encoding response", zap.Error(err))
	}
}
