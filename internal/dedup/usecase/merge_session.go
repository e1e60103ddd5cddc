package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"orderdesk/internal/domain"
	"orderdesk/internal/errors"
)

type State string

const (
	StateIdle      State = "idle"
	StateAnalyzed  State = "analyzed"
	StateExecuting State = "executing"
	StateCompleted State = "completed"
)

type Detector interface {
	Detect(ctx context.Context) ([]domain.DuplicateGroup, error)
}

type Committer interface {
	Commit(ctx context.Context, groups []domain.DuplicateGroup) domain.MergeOutcome
}

// MergeSession drives the operator's detect -> review -> commit cycle:
// idle --detect--> analyzed --commit--> executing --> completed. Completed is
// terminal; running detect again is the only way to start another cycle. The
// plan under review is held here between the two calls.
type MergeSession struct {
	mu        sync.Mutex
	state     State
	groups    []domain.DuplicateGroup
	detector  Detector
	committer Committer
	logger    *zap.Logger
}

func NewMergeSession(detector Detector, committer Committer, logger *zap.Logger) *MergeSession {
	return &MergeSession{
		state:     StateIdle,
		detector:  detector,
		committer: committer,
		logger:    logger,
	}
}

func (s *MergeSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Detect runs detection and holds the resulting plan for review. It is legal
// from every state except executing; a repeat call discards the previous plan.
func (s *MergeSession) Detect(ctx context.Context) ([]domain.DuplicateGroup, error) {
	s.mu.Lock()
	if s.state == StateExecuting {
		s.mu.Unlock()
		return nil, errors.NewConflictError("merge commit in progress")
	}
	s.mu.Unlock()

	groups, err := s.detector.Detect(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.state = StateAnalyzed
	s.groups = groups
	s.mu.Unlock()

	s.logger.Info("merge plan analyzed", zap.Int("groups", len(groups)))
	return groups, nil
}

// Commit executes the held plan. Only legal after a detect; the session ends
// up completed whether or not individual groups failed.
func (s *MergeSession) Commit(ctx context.Context) (domain.MergeOutcome, error) {
	s.mu.Lock()
	if s.state != StateAnalyzed {
		s.mu.Unlock()
		return domain.MergeOutcome{}, errors.NewConflictError("no merge plan to commit, run detection first")
	}
	s.state = StateExecuting
	groups := s.groups
	s.mu.Unlock()

	outcome := s.committer.Commit(ctx, groups)

	s.mu.Lock()
	s.state = StateCompleted
	s.groups = nil
	s.mu.Unlock()

	s.logger.Info("merge plan committed",
		zap.Int("groups", len(outcome.Groups)),
		zap.Int("failedGroups", outcome.FailedGroups()))

	return outcome, nil
}
